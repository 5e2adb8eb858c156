package auth

import (
	"errors"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/mitchellh/mapstructure"
)

var (
	// ErrMissingToken is returned when no bearer credential is present.
	ErrMissingToken = errors.New("missing bearer token")

	// ErrInvalidToken is returned for a malformed, tampered or expired token.
	ErrInvalidToken = errors.New("invalid or expired session token")
)

// Identity is the decoded claim of a successfully verified session token.
// It can only be constructed by Verifier.Verify, so holding an *Identity is
// proof that verification happened; the admin gate and every protected
// handler take it as an explicit parameter.
type Identity struct {
	// Email identifies the account the token was issued for.
	Email string

	claims jwt.MapClaims
}

// Claims returns a copy of the full decoded claim set.
func (id *Identity) Claims() map[string]any {
	out := make(map[string]any, len(id.claims))
	for k, v := range id.claims {
		out[k] = v
	}
	return out
}

// Verifier validates bearer credentials against the server signing secret.
// Verification is stateless: no store access, no token registry.
type Verifier struct {
	secret []byte
}

func NewVerifier(secret []byte) *Verifier {
	return &Verifier{secret: secret}
}

// Verify validates the raw Authorization header value. The header must use
// the Bearer scheme; the original implementation split on whitespace without
// checking the scheme word, which this tightens.
func (v *Verifier) Verify(authorization string) (*Identity, error) {
	authorization = strings.TrimSpace(authorization)
	if authorization == "" {
		return nil, ErrMissingToken
	}

	scheme, tokenStr, ok := strings.Cut(authorization, " ")
	tokenStr = strings.TrimSpace(tokenStr)
	if !ok || !strings.EqualFold(scheme, "Bearer") || tokenStr == "" {
		return nil, ErrMissingToken
	}

	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}

	var payload struct {
		Email string `mapstructure:"email"`
	}
	if err := mapstructure.Decode(map[string]any(claims), &payload); err != nil {
		return nil, ErrInvalidToken
	}

	return &Identity{Email: payload.Email, claims: claims}, nil
}
