package servicenow

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	jwt "github.com/golang-jwt/jwt/v5"
)

func writeTestKey(t *testing.T, pkcs8 bool) (string, *rsa.PrivateKey) {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}

	var der []byte
	blockType := "RSA PRIVATE KEY"
	if pkcs8 {
		der, err = x509.MarshalPKCS8PrivateKey(key)
		if err != nil {
			t.Fatalf("marshal pkcs8: %v", err)
		}
		blockType = "PRIVATE KEY"
	} else {
		der = x509.MarshalPKCS1PrivateKey(key)
	}

	path := filepath.Join(t.TempDir(), "key.pem")
	if err := os.WriteFile(path, pem.EncodeToMemory(&pem.Block{Type: blockType, Bytes: der}), 0o600); err != nil {
		t.Fatalf("write key: %v", err)
	}
	return path, key
}

func TestOAuthJWTBearerApply(t *testing.T) {
	keyPath, key := writeTestKey(t, false)

	tokenCalls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/oauth_token.do" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if err := r.ParseForm(); err != nil {
			t.Fatalf("parse form: %v", err)
		}
		if got := r.PostForm.Get("grant_type"); got != "urn:ietf:params:oauth:grant-type:jwt-bearer" {
			t.Errorf("grant_type = %q", got)
		}
		if got := r.PostForm.Get("client_id"); got != "client-1" {
			t.Errorf("client_id = %q", got)
		}

		assertion := r.PostForm.Get("assertion")
		claims := jwt.RegisteredClaims{}
		_, err := jwt.ParseWithClaims(assertion, &claims, func(tok *jwt.Token) (any, error) {
			return &key.PublicKey, nil
		})
		if err != nil {
			t.Errorf("verify assertion: %v", err)
		}
		if claims.Issuer != "client-1" || claims.Subject != "integration.user" {
			t.Errorf("unexpected claims: iss=%q sub=%q", claims.Issuer, claims.Subject)
		}

		tokenCalls++
		io.WriteString(w, `{"access_token": "tok-abc", "expires_in": 1800}`)
	}))
	t.Cleanup(srv.Close)

	creds, err := NewOAuthJWTBearer(srv.URL, "client-1", "integration.user", keyPath)
	if err != nil {
		t.Fatalf("NewOAuthJWTBearer: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "https://example.service-now.com/api/now/table/incident", nil)
	if err := creds.Apply(context.Background(), req); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if got := req.Header.Get("Authorization"); got != "Bearer tok-abc" {
		t.Fatalf("Authorization = %q", got)
	}

	// Second request reuses the cached token.
	req2 := httptest.NewRequest(http.MethodGet, "https://example.service-now.com/api/now/table/incident", nil)
	if err := creds.Apply(context.Background(), req2); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if tokenCalls != 1 {
		t.Fatalf("expected 1 token exchange, got %d", tokenCalls)
	}
}

func TestNewOAuthJWTBearerPKCS8Key(t *testing.T) {
	keyPath, _ := writeTestKey(t, true)
	if _, err := NewOAuthJWTBearer("https://example.service-now.com", "client-1", "user", keyPath); err != nil {
		t.Fatalf("NewOAuthJWTBearer: %v", err)
	}
}

func TestNewOAuthJWTBearerBadKeyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "key.pem")
	if err := os.WriteFile(path, []byte("not a pem"), 0o600); err != nil {
		t.Fatalf("write file: %v", err)
	}
	if _, err := NewOAuthJWTBearer("https://example.service-now.com", "client-1", "user", path); err == nil {
		t.Fatal("expected error for non-PEM key file")
	}
}
