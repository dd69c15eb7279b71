package servicenow

import (
	"context"
	"crypto/rsa"
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"sync"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// OAuthJWTBearer authenticates with the instance's OAuth JWT bearer grant:
// an RS256-signed assertion is exchanged at /oauth_token.do for a short-lived
// access token, cached with a one minute safety buffer before expiry.
type OAuthJWTBearer struct {
	tokenURL   string
	clientID   string
	subject    string
	privateKey *rsa.PrivateKey
	httpClient *http.Client

	mu    sync.Mutex
	token string
	expAt time.Time
}

func NewOAuthJWTBearer(instanceURL, clientID, subject, keyPath string) (*OAuthJWTBearer, error) {
	raw, err := os.ReadFile(keyPath)
	if err != nil {
		return nil, fmt.Errorf("read private key: %w", err)
	}

	block, _ := pem.Decode(raw)
	if block == nil {
		return nil, fmt.Errorf("no PEM block found in %s", keyPath)
	}

	key, err := parseRSAPrivateKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("parse private key: %w", err)
	}

	return &OAuthJWTBearer{
		tokenURL:   strings.TrimRight(instanceURL, "/") + "/oauth_token.do",
		clientID:   clientID,
		subject:    subject,
		privateKey: key,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}, nil
}

func parseRSAPrivateKey(der []byte) (*rsa.PrivateKey, error) {
	if key, err := x509.ParsePKCS1PrivateKey(der); err == nil {
		return key, nil
	}

	pkcs8Key, err := x509.ParsePKCS8PrivateKey(der)
	if err != nil {
		return nil, err
	}
	rsaKey, ok := pkcs8Key.(*rsa.PrivateKey)
	if !ok {
		return nil, fmt.Errorf("private key is not RSA")
	}
	return rsaKey, nil
}

// SECURITY: assertion signed with RS256 per the instance's JWT bearer grant.
// 10 min expiry; the jti claim keeps assertions single-use on the remote side.
func (o *OAuthJWTBearer) makeAssertion() (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Issuer:    o.clientID,
		Subject:   o.subject,
		Audience:  jwt.ClaimStrings{o.clientID},
		IssuedAt:  jwt.NewNumericDate(now.Add(-60 * time.Second)),
		ExpiresAt: jwt.NewNumericDate(now.Add(10 * time.Minute)),
		ID:        uuid.New().String(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	return token.SignedString(o.privateKey)
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
}

func (o *OAuthJWTBearer) accessToken(ctx context.Context) (string, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.token != "" && time.Now().Before(o.expAt.Add(-time.Minute)) {
		return o.token, nil
	}

	assertion, err := o.makeAssertion()
	if err != nil {
		return "", fmt.Errorf("sign assertion: %w", err)
	}

	form := url.Values{}
	form.Set("grant_type", "urn:ietf:params:oauth:grant-type:jwt-bearer")
	form.Set("client_id", o.clientID)
	form.Set("assertion", assertion)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := o.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("request access token: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("access token HTTP %d: %s", resp.StatusCode, body)
	}

	var tok tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tok); err != nil {
		return "", fmt.Errorf("decode token response: %w", err)
	}
	if tok.AccessToken == "" {
		return "", fmt.Errorf("token response has no access_token")
	}

	o.token = tok.AccessToken
	o.expAt = time.Now().Add(time.Duration(tok.ExpiresIn) * time.Second)
	return o.token, nil
}

func (o *OAuthJWTBearer) Apply(ctx context.Context, req *http.Request) error {
	token, err := o.accessToken(ctx)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	return nil
}
