package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newAuthServer(t *testing.T) *httptest.Server {
	t.Helper()
	hash, err := HashPassword("s3cret")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	ts := httptest.NewServer(NewRouter(NewMemStore(), Options{
		JWTSecret:    "test-secret",
		AdminEmail:   "admin@test.local",
		AdminPwdHash: hash,
	}))
	t.Cleanup(ts.Close)
	return ts
}

func login(t *testing.T, baseURL, email, password string) (string, int) {
	t.Helper()
	res, body := doJSON(t, http.MethodPost, baseURL+"/api/auth/login/", map[string]string{
		"email": email, "password": password,
	})
	if res.StatusCode != http.StatusOK {
		return "", res.StatusCode
	}
	var reply map[string]string
	if err := json.Unmarshal(body, &reply); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	return reply["access_token"], res.StatusCode
}

func TestLoginIssuesValidToken(t *testing.T) {
	ts := newAuthServer(t)

	token, status := login(t, ts.URL, "admin@test.local", "s3cret")
	if status != http.StatusOK || token == "" {
		t.Fatalf("login failed with status %d", status)
	}

	claims, err := ParseToken("test-secret", token)
	if err != nil {
		t.Fatalf("issued token does not parse: %v", err)
	}
	if claims.Email != "admin@test.local" {
		t.Fatalf("claims.Email = %q", claims.Email)
	}
	if claims.ExpiresAt == nil || claims.ExpiresAt.Before(time.Now()) {
		t.Fatal("token must carry a future expiry")
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	ts := newAuthServer(t)

	if _, status := login(t, ts.URL, "admin@test.local", "wrong"); status != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", status)
	}
	if _, status := login(t, ts.URL, "else@test.local", "s3cret"); status != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", status)
	}
}

func TestReadsOpenWritesProtected(t *testing.T) {
	ts := newAuthServer(t)

	// Reads pass without credentials.
	res, _ := doJSON(t, http.MethodGet, ts.URL+"/api/employees/", nil)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("unauthenticated read returned %d", res.StatusCode)
	}

	// Writes do not.
	res, body := doJSON(t, http.MethodPost, ts.URL+"/api/employees/", testDraft())
	if res.StatusCode != http.StatusUnauthorized {
		t.Fatalf("unauthenticated write returned %d: %s", res.StatusCode, body)
	}

	token, _ := login(t, ts.URL, "admin@test.local", "s3cret")
	req, _ := http.NewRequest(http.MethodPost, ts.URL+"/api/employees/", jsonBody(t, testDraft()))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	authRes, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer authRes.Body.Close()
	if authRes.StatusCode != http.StatusCreated {
		t.Fatalf("authenticated write returned %d", authRes.StatusCode)
	}
}

func TestGarbageTokenIsRejected(t *testing.T) {
	ts := newAuthServer(t)

	req, _ := http.NewRequest(http.MethodPost, ts.URL+"/api/employees/", jsonBody(t, testDraft()))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer not-a-token")
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", res.StatusCode)
	}
}

func TestOpenModeSkipsAuthEntirely(t *testing.T) {
	ts, _ := newTestServer(t)

	res, body := doJSON(t, http.MethodPost, ts.URL+"/api/employees/", testDraft())
	if res.StatusCode != http.StatusCreated {
		t.Fatalf("open-mode write returned %d: %s", res.StatusCode, body)
	}
}
