package auth

import (
	"errors"
	"testing"
	"time"
)

func TestIssueVerifyRoundTrip(t *testing.T) {
	secret := []byte("round-trip-secret")
	issuer := NewIssuer(secret, time.Hour)
	verifier := NewVerifier(secret)

	claims := map[string]any{
		"email": "a@x.com",
		"name":  "Alice",
	}

	token, err := issuer.Issue(claims)
	if err != nil {
		t.Fatalf("Issue() error: %v", err)
	}

	id, err := verifier.Verify("Bearer " + token)
	if err != nil {
		t.Fatalf("Verify() error: %v", err)
	}
	if id.Email != "a@x.com" {
		t.Errorf("Email = %q, want %q", id.Email, "a@x.com")
	}

	decoded := id.Claims()
	if decoded["email"] != "a@x.com" || decoded["name"] != "Alice" {
		t.Errorf("decoded claims = %v, want original payload preserved", decoded)
	}
	if _, ok := decoded["exp"]; !ok {
		t.Error("decoded claims missing exp")
	}
	if _, ok := decoded["iat"]; !ok {
		t.Error("decoded claims missing iat")
	}
}

func TestIssueWithoutSecret(t *testing.T) {
	issuer := NewIssuer(nil, time.Hour)

	_, err := issuer.Issue(map[string]any{"email": "a@x.com"})
	if err == nil {
		t.Fatal("Issue() with empty secret should fail")
	}
	var signErr *SigningError
	if !errors.As(err, &signErr) {
		t.Errorf("error = %T, want *SigningError", err)
	}
}

func TestIssueStampsExpiry(t *testing.T) {
	issuer := NewIssuer([]byte("secret"), time.Hour)

	// the caller-supplied exp must not survive signing
	token, err := issuer.Issue(map[string]any{
		"email": "a@x.com",
		"exp":   time.Now().Add(100 * time.Hour).Unix(),
	})
	if err != nil {
		t.Fatalf("Issue() error: %v", err)
	}

	id, err := NewVerifier([]byte("secret")).Verify("Bearer " + token)
	if err != nil {
		t.Fatalf("Verify() error: %v", err)
	}

	exp, ok := id.Claims()["exp"].(float64)
	if !ok {
		t.Fatal("exp claim missing or not numeric")
	}
	limit := time.Now().Add(time.Hour + time.Minute)
	if time.Unix(int64(exp), 0).After(limit) {
		t.Errorf("exp %v exceeds issuer ttl", time.Unix(int64(exp), 0))
	}
}

func TestVerifyRejections(t *testing.T) {
	secret := []byte("verify-secret")
	verifier := NewVerifier(secret)

	valid, err := NewIssuer(secret, time.Hour).Issue(map[string]any{"email": "a@x.com"})
	if err != nil {
		t.Fatalf("Issue() error: %v", err)
	}
	foreign, err := NewIssuer([]byte("other-secret"), time.Hour).Issue(map[string]any{"email": "a@x.com"})
	if err != nil {
		t.Fatalf("Issue() error: %v", err)
	}
	expired, err := NewIssuer(secret, -time.Hour).Issue(map[string]any{"email": "a@x.com"})
	if err != nil {
		t.Fatalf("Issue() error: %v", err)
	}

	tests := []struct {
		name    string
		header  string
		wantErr error
	}{
		{name: "empty header", header: "", wantErr: ErrMissingToken},
		{name: "blank header", header: "   ", wantErr: ErrMissingToken},
		{name: "wrong scheme", header: "Basic " + valid, wantErr: ErrMissingToken},
		{name: "scheme only", header: "Bearer ", wantErr: ErrMissingToken},
		{name: "garbage token", header: "Bearer not.a.jwt", wantErr: ErrInvalidToken},
		{name: "foreign secret", header: "Bearer " + foreign, wantErr: ErrInvalidToken},
		{name: "expired token", header: "Bearer " + expired, wantErr: ErrInvalidToken},
		{name: "lowercase scheme ok", header: "bearer " + valid, wantErr: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := verifier.Verify(tt.header)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Verify() error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr == nil && id == nil {
				t.Fatal("Verify() returned nil identity without error")
			}
			if tt.wantErr != nil && id != nil {
				t.Fatal("Verify() returned identity on failure")
			}
		})
	}
}
