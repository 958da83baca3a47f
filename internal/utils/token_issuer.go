package utils

import (
	"sync"
	"time"
)

// TokenIssuer produces access and refresh tokens. Calls are serialized and
// never share an issued-at second, so no two tokens have the same iat.
type TokenIssuer struct {
	codec      *TokenCodec
	accessTTL  time.Duration
	refreshTTL time.Duration

	mu         sync.Mutex
	lastSecond int64
	now        func() time.Time
	sleep      func(time.Duration)
}

func NewTokenIssuer(codec *TokenCodec, accessTTL, refreshTTL time.Duration) *TokenIssuer {
	return &TokenIssuer{
		codec:      codec,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		now:        time.Now,
		sleep:      time.Sleep,
	}
}

// WithClock replaces the time source and the wait used between same-second calls.
func (i *TokenIssuer) WithClock(now func() time.Time, sleep func(time.Duration)) *TokenIssuer {
	i.now = now
	i.sleep = sleep
	return i
}

func (i *TokenIssuer) IssueAccessToken(subject string) (string, error) {
	return i.issue(subject, i.accessTTL)
}

func (i *TokenIssuer) IssueRefreshToken(subject string) (string, error) {
	return i.issue(subject, i.refreshTTL)
}

// AccessTTL is the lifetime of access tokens.
func (i *TokenIssuer) AccessTTL() time.Duration {
	return i.accessTTL
}

func (i *TokenIssuer) Codec() *TokenCodec {
	return i.codec
}

func (i *TokenIssuer) issue(subject string, ttl time.Duration) (string, error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	now := i.now()
	if now.Unix() <= i.lastSecond {
		// wait for the next whole second, plus a millisecond of slack
		next := time.Unix(i.lastSecond+1, 0)
		i.sleep(next.Sub(now) + time.Millisecond)
		now = i.now()
	}
	i.lastSecond = now.Unix()

	return i.codec.encodeAt(subject, ttl, now)
}
