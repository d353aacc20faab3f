package google

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

func writeClientSecrets(t *testing.T, tokenURL string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "client_secret.json")
	secrets := fmt.Sprintf(`{"installed":{
		"client_id":"client-123",
		"client_secret":"shh",
		"auth_uri":"https://accounts.example.com/auth",
		"token_uri":%q,
		"redirect_uris":["http://localhost"]
	}}`, tokenURL)
	require.NoError(t, os.WriteFile(path, []byte(secrets), 0o600))
	return path
}

func tokenServer(t *testing.T, refreshToken string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, r.ParseForm())
		assert.Equal(t, "authorization_code", r.PostForm.Get("grant_type"))
		assert.Equal(t, "the-code", r.PostForm.Get("code"))
		assert.Equal(t, "the-verifier", r.PostForm.Get("code_verifier"))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"access_token":  "access",
			"refresh_token": refreshToken,
			"token_type":    "Bearer",
			"expires_in":    3600,
		})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestLoadClientConfig(t *testing.T) {
	cfg, err := LoadClientConfig(writeClientSecrets(t, "https://oauth.example.com/token"))

	require.NoError(t, err)
	assert.Equal(t, "client-123", cfg.ClientID)
	assert.Equal(t, "shh", cfg.ClientSecret)
	assert.Equal(t, Scopes, cfg.Scopes)
	assert.Equal(t, "https://oauth.example.com/token", cfg.Endpoint.TokenURL)
}

func TestLoadClientConfig_Errors(t *testing.T) {
	_, err := LoadClientConfig(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"nope":{}}`), 0o600))
	_, err = LoadClientConfig(bad)
	assert.Error(t, err)
}

func TestAuthCodeURL(t *testing.T) {
	cfg := &oauth2.Config{
		ClientID:    "client-123",
		RedirectURL: "http://localhost:1234/callback",
		Scopes:      Scopes,
		Endpoint:    oauth2.Endpoint{AuthURL: "https://accounts.example.com/auth"},
	}

	u, err := url.Parse(AuthCodeURL(cfg, "state-1", "challenge-1"))
	require.NoError(t, err)

	q := u.Query()
	assert.Equal(t, "state-1", q.Get("state"))
	assert.Equal(t, "offline", q.Get("access_type"))
	assert.Equal(t, "consent", q.Get("prompt"))
	assert.Equal(t, "challenge-1", q.Get("code_challenge"))
	assert.Equal(t, "S256", q.Get("code_challenge_method"))
	assert.Equal(t, "http://localhost:1234/callback", q.Get("redirect_uri"))
}

func TestExchange(t *testing.T) {
	srv := tokenServer(t, "refresh-1")
	cfg, err := LoadClientConfig(writeClientSecrets(t, srv.URL))
	require.NoError(t, err)

	tok, err := Exchange(context.Background(), cfg, "the-code", "the-verifier")

	require.NoError(t, err)
	assert.Equal(t, "access", tok.AccessToken)
	assert.Equal(t, "refresh-1", tok.RefreshToken)
}

func TestExchange_NoRefreshToken(t *testing.T) {
	srv := tokenServer(t, "")
	cfg, err := LoadClientConfig(writeClientSecrets(t, srv.URL))
	require.NoError(t, err)

	_, err = Exchange(context.Background(), cfg, "the-code", "the-verifier")

	assert.ErrorIs(t, err, ErrNoRefreshToken)
}

func TestWriteAuthorizedUser(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", CredentialsFileName)
	cfg := &oauth2.Config{ClientID: "id", ClientSecret: "secret"}

	require.NoError(t, WriteAuthorizedUser(path, cfg, &oauth2.Token{RefreshToken: "refresh"}))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	var got map[string]string
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, map[string]string{
		"type":          "authorized_user",
		"client_id":     "id",
		"client_secret": "secret",
		"refresh_token": "refresh",
	}, got)
}

func TestWriteAuthorizedUser_RequiresRefreshToken(t *testing.T) {
	err := WriteAuthorizedUser(filepath.Join(t.TempDir(), "c.json"), &oauth2.Config{}, &oauth2.Token{})
	assert.ErrorIs(t, err, ErrNoRefreshToken)
}
