package google

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/oauth2"
	googleoauth "golang.org/x/oauth2/google"
)

// ErrNoRefreshToken is returned when Google grants an access token without
// the refresh token needed for unattended index builds.
var ErrNoRefreshToken = errors.New("google: no refresh token granted (revoke kbbot's access and log in again)")

// CredentialsFileName is the default name of the file written by a login.
const CredentialsFileName = "google_credentials.json"

// LoadClientConfig reads an OAuth client secrets file downloaded from the
// Google Cloud console ("Desktop app" or "Web application" clients).
func LoadClientConfig(path string) (*oauth2.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read client secrets: %w", err)
	}
	cfg, err := googleoauth.ConfigFromJSON(data, Scopes...)
	if err != nil {
		return nil, fmt.Errorf("parse client secrets %s: %w", path, err)
	}
	return cfg, nil
}

// AuthCodeURL returns the consent page URL for a PKCE login. Offline
// access and a forced prompt make Google return a refresh token.
func AuthCodeURL(cfg *oauth2.Config, state, codeChallenge string) string {
	return cfg.AuthCodeURL(state,
		oauth2.AccessTypeOffline,
		oauth2.ApprovalForce,
		oauth2.SetAuthURLParam("code_challenge", codeChallenge),
		oauth2.SetAuthURLParam("code_challenge_method", "S256"),
	)
}

// Exchange trades an authorization code for a token.
func Exchange(ctx context.Context, cfg *oauth2.Config, code, codeVerifier string) (*oauth2.Token, error) {
	tok, err := cfg.Exchange(ctx, code, oauth2.VerifierOption(codeVerifier))
	if err != nil {
		return nil, fmt.Errorf("exchange code: %w", err)
	}
	if tok.RefreshToken == "" {
		return nil, ErrNoRefreshToken
	}
	return tok, nil
}

// authorizedUser is the credentials file format Google client libraries
// accept for user accounts.
type authorizedUser struct {
	Type         string `json:"type"`
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
	RefreshToken string `json:"refresh_token"`
}

// WriteAuthorizedUser saves tok as an authorized-user credentials file,
// readable only by the current user. ClientOptions accepts the result.
func WriteAuthorizedUser(path string, cfg *oauth2.Config, tok *oauth2.Token) error {
	if tok.RefreshToken == "" {
		return ErrNoRefreshToken
	}

	data, err := json.MarshalIndent(authorizedUser{
		Type:         "authorized_user",
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		RefreshToken: tok.RefreshToken,
	}, "", "  ")
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create credentials directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write credentials: %w", err)
	}
	return nil
}
