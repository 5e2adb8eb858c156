package stripeapi

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestCreateIntent(t *testing.T) {
	var gotAuth, gotBody string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/v1/payment_intents" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"pi_123","client_secret":"pi_123_secret_abc","amount":1999,"currency":"usd","status":"requires_payment_method"}`))
	}))
	defer srv.Close()

	client := New("sk_test_key", WithBaseURL(srv.URL))

	intent, err := client.CreateIntent(context.Background(), 1999, "usd")
	if err != nil {
		t.Fatalf("CreateIntent() error: %v", err)
	}
	if intent.ClientSecret != "pi_123_secret_abc" {
		t.Errorf("client secret = %q", intent.ClientSecret)
	}
	if gotAuth != "Bearer sk_test_key" {
		t.Errorf("Authorization = %q", gotAuth)
	}
	for _, want := range []string{"amount=1999", "currency=usd", "card"} {
		if !strings.Contains(gotBody, want) {
			t.Errorf("request body %q missing %q", gotBody, want)
		}
	}
}

func TestCreateIntentErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
		_, _ = w.Write([]byte(`{"error":{"type":"card_error","message":"Your card was declined."}}`))
	}))
	defer srv.Close()

	client := New("sk_test_key", WithBaseURL(srv.URL))

	if _, err := client.CreateIntent(context.Background(), 1999, "usd"); err == nil {
		t.Error("CreateIntent() should surface API errors")
	} else if !strings.Contains(err.Error(), "declined") {
		t.Errorf("error %q should carry the API message", err)
	}

	if _, err := client.CreateIntent(context.Background(), 0, "usd"); err == nil {
		t.Error("CreateIntent() should reject a non-positive amount")
	}

	if _, err := New("", WithBaseURL(srv.URL)).CreateIntent(context.Background(), 100, "usd"); err == nil {
		t.Error("CreateIntent() should fail without a secret key")
	}
}
