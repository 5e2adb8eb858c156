package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTokenTTL is how long an issued session token stays valid.
const DefaultTokenTTL = 1 * time.Hour

// SigningError indicates the issuer could not produce a signed token,
// either because the secret is missing or the signing step itself failed.
type SigningError struct {
	Wrapped error
}

func (e *SigningError) Error() string {
	return "signing session token: " + e.Wrapped.Error()
}

func (e *SigningError) Unwrap() error {
	return e.Wrapped
}

// Issuer mints signed, time-limited session tokens. The server keeps no
// record of issued tokens; the signature is the only proof of validity.
type Issuer struct {
	secret []byte
	ttl    time.Duration
}

func NewIssuer(secret []byte, ttl time.Duration) *Issuer {
	if ttl == 0 {
		ttl = DefaultTokenTTL
	}
	return &Issuer{secret: secret, ttl: ttl}
}

// Issue signs the given claims as an HS256 JWT. The payload is accepted
// as-is; only iat and exp are stamped by the issuer, so callers cannot
// extend their own lifetime.
func (i *Issuer) Issue(claims map[string]any) (string, error) {
	if len(i.secret) == 0 {
		return "", &SigningError{Wrapped: errors.New("signing secret is not configured")}
	}

	now := time.Now()
	mc := jwt.MapClaims{}
	for k, v := range claims {
		mc[k] = v
	}
	mc["iat"] = now.Unix()
	mc["exp"] = now.Add(i.ttl).Unix()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, mc)
	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", &SigningError{Wrapped: err}
	}
	return signed, nil
}
