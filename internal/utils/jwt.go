package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken     = errors.New("invalid token")
	ErrMalformedToken   = errors.New("malformed token")
	ErrInvalidSignature = errors.New("invalid token signature")
	ErrExpiredToken     = errors.New("token expired")
)

// Claims is the decoded content of a token.
type Claims struct {
	Subject   string
	ID        string
	IssuedAt  time.Time
	ExpiresAt time.Time
	Extra     map[string]any
}

// TokenCodec signs and verifies HS256 tokens.
type TokenCodec struct {
	secret []byte
	now    func() time.Time
}

func NewTokenCodec(secret string) *TokenCodec {
	return &TokenCodec{secret: []byte(secret), now: time.Now}
}

// Encode builds a signed token for subject that expires after ttl.
// Every token carries a random jti so two tokens are never byte-identical.
func (c *TokenCodec) Encode(subject string, ttl time.Duration, extra map[string]any) (string, error) {
	return c.encode(subject, ttl, c.now(), extra)
}

func (c *TokenCodec) encodeAt(subject string, ttl time.Duration, now time.Time) (string, error) {
	return c.encode(subject, ttl, now, nil)
}

func (c *TokenCodec) encode(subject string, ttl time.Duration, now time.Time, extra map[string]any) (string, error) {
	claims := jwt.MapClaims{}
	for k, v := range extra {
		claims[k] = v
	}
	claims["sub"] = subject
	claims["jti"] = uuid.NewString()
	claims["iat"] = jwt.NewNumericDate(now)
	claims["exp"] = jwt.NewNumericDate(now.Add(ttl))

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
}

// Decode verifies signature and expiry and returns the claims.
func (c *TokenCodec) Decode(tokenString string) (*Claims, error) {
	return c.parse(tokenString, jwt.WithTimeFunc(c.now), jwt.WithExpirationRequired())
}

// IsExpired reports whether a correctly signed token is past its expiry.
func (c *TokenCodec) IsExpired(tokenString string) (bool, error) {
	claims, err := c.parse(tokenString, jwt.WithoutClaimsValidation())
	if err != nil {
		return false, err
	}
	return !c.now().Before(claims.ExpiresAt), nil
}

// ExtractSubject returns the subject of a valid token.
func (c *TokenCodec) ExtractSubject(tokenString string) (string, error) {
	claims, err := c.Decode(tokenString)
	if err != nil {
		return "", err
	}
	return claims.Subject, nil
}

func (c *TokenCodec) parse(tokenString string, opts ...jwt.ParserOption) (*Claims, error) {
	opts = append(opts, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return c.secret, nil
	}, opts...)
	if err != nil {
		return nil, classify(err)
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return toClaims(mapClaims)
}

func classify(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrExpiredToken
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
		return ErrInvalidSignature
	case errors.Is(err, jwt.ErrTokenMalformed):
		return ErrMalformedToken
	default:
		return ErrInvalidToken
	}
}

func toClaims(mc jwt.MapClaims) (*Claims, error) {
	sub, err := mc.GetSubject()
	if err != nil || sub == "" {
		return nil, ErrInvalidToken
	}
	exp, err := mc.GetExpirationTime()
	if err != nil || exp == nil {
		return nil, ErrInvalidToken
	}

	claims := &Claims{Subject: sub, ExpiresAt: exp.Time, Extra: map[string]any{}}
	if iat, err := mc.GetIssuedAt(); err == nil && iat != nil {
		claims.IssuedAt = iat.Time
	}
	if jti, ok := mc["jti"].(string); ok {
		claims.ID = jti
	}
	for k, v := range mc {
		switch k {
		case "sub", "jti", "iat", "exp":
		default:
			claims.Extra[k] = v
		}
	}
	return claims, nil
}
