package utils

import (
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testSecret      = "test-secret-key-for-jwt-testing-0123456789"
	testWrongSecret = "wrong-secret-key-for-jwt-testing-987654321"
	testSubject     = "ada@example.com"
)

// fakeClock is a manually advanced clock shared by codec and issuer.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(d)
}

func newTestCodec(clock *fakeClock) *TokenCodec {
	codec := NewTokenCodec(testSecret)
	if clock != nil {
		codec.now = clock.Now
	}
	return codec
}

func TestTokenCodec_RoundTrip(t *testing.T) {
	// Arrange
	codec := newTestCodec(nil)

	// Act
	token, err := codec.Encode(testSubject, time.Hour, map[string]any{"role": "ADMIN"})
	require.NoError(t, err)
	claims, err := codec.Decode(token)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, testSubject, claims.Subject)
	assert.NotEmpty(t, claims.ID, "token should carry a jti")
	assert.Equal(t, "ADMIN", claims.Extra["role"])
	assert.True(t, claims.ExpiresAt.After(time.Now()))

	subject, err := codec.ExtractSubject(token)
	require.NoError(t, err)
	assert.Equal(t, testSubject, subject)
}

func TestTokenCodec_SameSecondTokensDiffer(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1_700_000_000, 0)}
	codec := newTestCodec(clock)

	first, err := codec.Encode(testSubject, time.Hour, nil)
	require.NoError(t, err)
	second, err := codec.Encode(testSubject, time.Hour, nil)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestTokenCodec_Expiry(t *testing.T) {
	// Arrange
	clock := &fakeClock{now: time.Unix(1_700_000_000, 0)}
	codec := newTestCodec(clock)
	token, err := codec.Encode(testSubject, time.Minute, nil)
	require.NoError(t, err)

	// Assert before expiry
	expired, err := codec.IsExpired(token)
	require.NoError(t, err)
	assert.False(t, expired)

	// Act
	clock.Advance(2 * time.Minute)

	// Assert after expiry
	expired, err = codec.IsExpired(token)
	require.NoError(t, err)
	assert.True(t, expired)

	_, err = codec.Decode(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestTokenCodec_ErrorKinds(t *testing.T) {
	codec := newTestCodec(nil)
	valid, err := codec.Encode(testSubject, time.Hour, nil)
	require.NoError(t, err)

	otherKey, err := NewTokenCodec(testWrongSecret).Encode(testSubject, time.Hour, nil)
	require.NoError(t, err)

	parts := strings.Split(valid, ".")
	tampered := parts[0] + "." + parts[1] + "." + strings.Repeat("A", len(parts[2]))

	noneAlg, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"sub": testSubject,
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	testCases := []struct {
		name  string
		token string
		want  error
	}{
		{name: "garbage", token: "not-a-token", want: ErrMalformedToken},
		{name: "empty", token: "", want: ErrMalformedToken},
		{name: "wrong_secret", token: otherKey, want: ErrInvalidSignature},
		{name: "tampered_signature", token: tampered, want: ErrInvalidSignature},
		{name: "none_algorithm", token: noneAlg, want: ErrInvalidSignature},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := codec.Decode(tc.token)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestTokenIssuer_WaitsForNextSecond(t *testing.T) {
	// Arrange
	clock := &fakeClock{now: time.Unix(1_700_000_000, 250*int64(time.Millisecond))}
	issuer := NewTokenIssuer(newTestCodec(clock), time.Hour, 24*time.Hour)
	issuer.now = clock.Now
	var slept []time.Duration
	issuer.sleep = func(d time.Duration) {
		slept = append(slept, d)
		clock.Advance(d)
	}

	// Act
	first, err := issuer.IssueAccessToken(testSubject)
	require.NoError(t, err)
	second, err := issuer.IssueAccessToken(testSubject)
	require.NoError(t, err)

	// Assert
	require.Len(t, slept, 1, "second call in the same second should wait once")
	assert.Equal(t, 751*time.Millisecond, slept[0])

	c1, err := issuer.Codec().Decode(first)
	require.NoError(t, err)
	c2, err := issuer.Codec().Decode(second)
	require.NoError(t, err)
	assert.Equal(t, c1.IssuedAt.Unix()+1, c2.IssuedAt.Unix())
	assert.NotEqual(t, first, second)
}

func TestTokenIssuer_NoWaitAcrossSeconds(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1_700_000_000, 0)}
	issuer := NewTokenIssuer(newTestCodec(clock), time.Hour, 24*time.Hour)
	issuer.now = clock.Now
	issuer.sleep = func(d time.Duration) { t.Fatalf("unexpected sleep of %s", d) }

	_, err := issuer.IssueAccessToken(testSubject)
	require.NoError(t, err)
	clock.Advance(time.Second)
	_, err = issuer.IssueRefreshToken(testSubject)
	require.NoError(t, err)
}

func TestTokenIssuer_Lifetimes(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1_700_000_000, 0)}
	issuer := NewTokenIssuer(newTestCodec(clock), time.Hour, 24*time.Hour)
	issuer.now = clock.Now
	issuer.sleep = clock.Advance

	access, err := issuer.IssueAccessToken(testSubject)
	require.NoError(t, err)
	refresh, err := issuer.IssueRefreshToken(testSubject)
	require.NoError(t, err)

	ac, err := issuer.Codec().Decode(access)
	require.NoError(t, err)
	rc, err := issuer.Codec().Decode(refresh)
	require.NoError(t, err)

	assert.Equal(t, time.Hour, ac.ExpiresAt.Sub(ac.IssuedAt))
	assert.Equal(t, 24*time.Hour, rc.ExpiresAt.Sub(rc.IssuedAt))
	assert.Equal(t, time.Hour, issuer.AccessTTL())
}

func TestTokenIssuer_ConcurrentCallsProduceDistinctTokens(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1_700_000_000, 0)}
	issuer := NewTokenIssuer(newTestCodec(clock), time.Hour, 24*time.Hour)
	issuer.now = clock.Now
	issuer.sleep = clock.Advance

	const workers = 8
	tokens := make([]string, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			token, err := issuer.IssueAccessToken(testSubject)
			assert.NoError(t, err)
			tokens[i] = token
		}(i)
	}
	wg.Wait()

	seenTokens := map[string]bool{}
	seenSeconds := map[int64]bool{}
	for _, token := range tokens {
		claims, err := issuer.Codec().Decode(token)
		require.NoError(t, err)
		assert.False(t, seenTokens[token])
		assert.False(t, seenSeconds[claims.IssuedAt.Unix()], "every token gets its own issued-at second")
		seenTokens[token] = true
		seenSeconds[claims.IssuedAt.Unix()] = true
	}
}
