package cli

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/kbbot/internal/adapters/driving/oauth"
	"github.com/custodia-labs/kbbot/internal/connectors/google"
)

// DefaultLoginTimeout bounds how long a login waits for the browser.
const DefaultLoginTimeout = 5 * time.Minute

var (
	authClientSecrets string
	authOutput        string
	authPort          int
	authNoBrowser     bool
	authTimeout       time.Duration

	// openBrowser is swapped out in tests.
	openBrowser = oauth.OpenBrowser
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Authorize access to document backends",
}

var authGoogleCmd = &cobra.Command{
	Use:   "google",
	Short: "Log in to Google Drive with your own account",
	Long: `Log in to Google with an OAuth client and save the resulting credentials
for the drive backend.

Create an OAuth client of type "Desktop app" in the Google Cloud console,
download its JSON file, then run:
  kbbot auth google --client-secrets client_secret.json

The credentials file is written next to the config file and
drive.credentials_file is pointed at it.`,
	RunE: runAuthGoogle,
}

func init() {
	authGoogleCmd.Flags().StringVar(&authClientSecrets, "client-secrets", "", "OAuth client secrets JSON file")
	authGoogleCmd.Flags().StringVarP(&authOutput, "output", "o", "",
		"where to write the credentials (default next to the config file)")
	authGoogleCmd.Flags().IntVar(&authPort, "port", 0, "loopback port for the redirect (default: any free port)")
	authGoogleCmd.Flags().BoolVar(&authNoBrowser, "no-browser", false, "print the login URL instead of opening it")
	authGoogleCmd.Flags().DurationVar(&authTimeout, "timeout", DefaultLoginTimeout, "how long to wait for the login")
	_ = authGoogleCmd.MarkFlagRequired("client-secrets")

	authCmd.AddCommand(authGoogleCmd)
	rootCmd.AddCommand(authCmd)
}

func runAuthGoogle(cmd *cobra.Command, _ []string) error {
	settings, err := settingsService()
	if err != nil {
		return err
	}

	cfg, err := google.LoadClientConfig(authClientSecrets)
	if err != nil {
		return err
	}

	verifier, err := oauth.GenerateCodeVerifier()
	if err != nil {
		return err
	}
	state, err := oauth.GenerateCodeVerifier()
	if err != nil {
		return err
	}

	server := oauth.NewCallbackServer(authPort, state)
	if err := server.Start(); err != nil {
		return err
	}
	defer func() { _ = server.Stop() }()

	cfg.RedirectURL = server.RedirectURI()
	authURL := google.AuthCodeURL(cfg, state, oauth.GenerateCodeChallenge(verifier))

	cmd.Println("Open this URL to authorize kbbot:")
	cmd.Println()
	cmd.Println("  " + authURL)
	cmd.Println()
	if !authNoBrowser {
		if err := openBrowser(authURL); err != nil {
			cmd.PrintErrf("Could not open a browser: %v\n", err)
		}
	}
	cmd.Println("Waiting for authorization...")

	code, err := server.WaitForCode(cmd.Context(), authTimeout)
	if err != nil {
		return err
	}

	tok, err := google.Exchange(cmd.Context(), cfg, code, verifier)
	if err != nil {
		return err
	}

	out := authOutput
	if out == "" {
		out = filepath.Join(filepath.Dir(settings.Path()), google.CredentialsFileName)
	}
	if err := google.WriteAuthorizedUser(out, cfg, tok); err != nil {
		return err
	}

	if err := settings.Set("drive.credentials_file", out); err != nil {
		return errors.Join(fmt.Errorf("credentials saved to %s but not recorded", out), err)
	}

	cmd.Printf("Google credentials saved to %s\n", out)
	return nil
}
