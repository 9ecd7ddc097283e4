package cli

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/addrbook/internal/adapters/driven/auth"
	"github.com/custodia-labs/addrbook/internal/adapters/driving/oauth"
	"github.com/custodia-labs/addrbook/internal/core/domain"
)

var (
	authClientID     string
	authClientSecret string
	authNoBrowser    bool
)

// loginFlow runs the browser sign-in. Tests replace it.
var loginFlow = oauth.Login

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage Google Contacts sign-in",
	Long: `Sign in to Google Contacts so the google store can read your contacts.

You need an OAuth client of type "Desktop app" from the Google Cloud console
with the People API enabled. Its ID and secret are saved to the config file
the first time they are given.`,
}

var authLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in with your Google account",
	Long: `Opens the Google consent page in your browser and waits for the redirect
on a local port. The resulting token is saved to google.token_file.

Examples:
  addrbook auth login --client-id ID --client-secret SECRET
  addrbook auth login --no-browser`,
	Args: cobra.NoArgs,
	RunE: runAuthLogin,
}

var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show whether you are signed in",
	Args:  cobra.NoArgs,
	RunE:  runAuthStatus,
}

var authLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Delete the saved token",
	Args:  cobra.NoArgs,
	RunE:  runAuthLogout,
}

func init() {
	authLoginCmd.Flags().StringVar(&authClientID, "client-id", "", "OAuth client ID")
	authLoginCmd.Flags().StringVar(&authClientSecret, "client-secret", "", "OAuth client secret")
	authLoginCmd.Flags().BoolVar(&authNoBrowser, "no-browser", false, "print the sign-in URL instead of opening it")

	authCmd.AddCommand(authLoginCmd, authStatusCmd, authLogoutCmd)
	rootCmd.AddCommand(authCmd)
}

// googleTokenPath returns the token file of the google store.
func googleTokenPath() (string, error) {
	cfg, dir, err := loadConfig()
	if err != nil {
		return "", err
	}
	source := sourceFor(cfg, dir, domain.StoreTypeGoogle)
	return auth.NewFactory(dir).TokenPath(source), nil
}

func runAuthLogin(cmd *cobra.Command, _ []string) error {
	cfg, dir, err := loadConfig()
	if err != nil {
		return err
	}

	if authClientID != "" {
		if err := cfg.Set("google.client_id", authClientID); err != nil {
			return fmt.Errorf("failed to save client ID: %w", err)
		}
	}
	if authClientSecret != "" {
		if err := cfg.Set("google.client_secret", authClientSecret); err != nil {
			return fmt.Errorf("failed to save client secret: %w", err)
		}
	}

	source := sourceFor(cfg, dir, domain.StoreTypeGoogle)
	clientID := source.ConfigValue("client_id", "")
	clientSecret := source.ConfigValue("client_secret", "")
	if clientID == "" || clientSecret == "" {
		return errors.New("google.client_id and google.client_secret are required; pass --client-id and --client-secret")
	}

	out := cmd.OutOrStdout()
	open := func(url string) error {
		fmt.Fprintf(out, "Open this URL to sign in:\n\n  %s\n\n", url)
		if authNoBrowser {
			return nil
		}
		if err := oauth.OpenBrowser(url); err != nil {
			fmt.Fprintf(out, "Could not open a browser (%v); open the URL manually.\n", err)
		}
		return nil
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), oauth.DefaultLoginTimeout)
	defer cancel()

	tok, err := loginFlow(ctx, auth.GoogleOAuthConfig(clientID, clientSecret, ""), open)
	if err != nil {
		return fmt.Errorf("sign-in failed: %w", err)
	}

	path := auth.NewFactory(dir).TokenPath(source)
	if err := auth.SaveOAuth2Token(path, tok); err != nil {
		return fmt.Errorf("failed to save token: %w", err)
	}

	fmt.Fprintf(out, "Signed in. Token saved to %s\n", path)
	return nil
}

func runAuthStatus(cmd *cobra.Command, _ []string) error {
	path, err := googleTokenPath()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	tok, err := auth.LoadToken(path)
	switch {
	case errors.Is(err, domain.ErrAuthRequired):
		fmt.Fprintln(out, "Not signed in. Run 'addrbook auth login'.")
		return nil
	case err != nil:
		return err
	}

	fmt.Fprintf(out, "Signed in (token file %s)\n", path)
	if !tok.Expiry.IsZero() {
		fmt.Fprintf(out, "Access token expires: %s\n", tok.Expiry.Local().Format(time.RFC3339))
	}
	if tok.RefreshToken != "" {
		fmt.Fprintln(out, "Refresh token: present")
	} else {
		fmt.Fprintln(out, "Refresh token: missing (sign in again when the access token expires)")
	}
	return nil
}

func runAuthLogout(cmd *cobra.Command, _ []string) error {
	path, err := googleTokenPath()
	if err != nil {
		return err
	}

	if err := os.Remove(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			fmt.Fprintln(cmd.OutOrStdout(), "Not signed in.")
			return nil
		}
		return fmt.Errorf("failed to remove token: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Signed out.")
	return nil
}
