package google

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	gmail "google.golang.org/api/gmail/v1"
)

const cacheDirName = "inboxpilot"

// HasToken checks if a cached OAuth token exists.
func HasToken() bool {
	_, err := os.ReadFile(tokenFilePath())
	return err == nil
}

// GetAuthURL returns the OAuth URL for user authorization.
func GetAuthURL() string {
	return getOAuthConfig().AuthCodeURL("state")
}

// SaveToken exchanges an authorization code for tokens and caches them.
func SaveToken(ctx context.Context, authCode string) error {
	conf := getOAuthConfig()

	t, err := conf.Exchange(ctx, authCode)
	if err != nil {
		return fmt.Errorf("failed to exchange auth code: %w", err)
	}

	tokenFile := tokenFilePath()
	if err := os.MkdirAll(filepath.Dir(tokenFile), 0700); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}

	tokenData := t.AccessToken + " " + t.RefreshToken
	if err := os.WriteFile(tokenFile, []byte(tokenData), 0600); err != nil {
		return fmt.Errorf("failed to write token file: %w", err)
	}

	return nil
}

// getOAuthConfig returns the OAuth2 configuration. Only the Gmail
// modify scope is requested; the pipeline reads messages and manages
// labels but never sends mail.
func getOAuthConfig() *oauth2.Config {
	const OOB = "urn:ietf:wg:oauth:2.0:oob"
	return &oauth2.Config{
		ClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
		ClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
		Endpoint:     google.Endpoint,
		RedirectURL:  OOB,
		Scopes: []string{
			gmail.GmailModifyScope,
		},
	}
}

// GetTokenSource returns an OAuth2 token source for the cached token.
func GetTokenSource(ctx context.Context) (oauth2.TokenSource, error) {
	conf := getOAuthConfig()

	slurp, err := os.ReadFile(tokenFilePath())
	if err != nil {
		return nil, fmt.Errorf("no valid Google OAuth token found")
	}

	access, refresh, err := parseToken(slurp)
	if err != nil {
		return nil, err
	}

	ts := conf.TokenSource(ctx, &oauth2.Token{
		AccessToken:  access,
		TokenType:    "Bearer",
		RefreshToken: refresh,
		Expiry:       time.Unix(1, 0),
	})

	if _, err := ts.Token(); err != nil {
		return nil, fmt.Errorf("cached token is invalid: %w", err)
	}

	return ts, nil
}

// parseToken splits the cached "access refresh" token file format.
func parseToken(data []byte) (access, refresh string, err error) {
	f := strings.Fields(strings.TrimSpace(string(data)))
	if len(f) != 2 {
		return "", "", fmt.Errorf("invalid token format")
	}
	return f[0], f[1], nil
}

// GetHTTPClient returns an HTTP client configured with OAuth2
// authentication. The client is configured to use HTTP/1.1 to avoid
// HTTP/2 protocol errors.
func GetHTTPClient(ctx context.Context) (*http.Client, error) {
	ts, err := GetTokenSource(ctx)
	if err != nil {
		return nil, err
	}

	client := oauth2.NewClient(ctx, ts)

	// Force HTTP/1.1 by disabling HTTP/2
	transport := client.Transport.(*oauth2.Transport)
	baseTransport := &http.Transport{
		ForceAttemptHTTP2: false,
	}
	transport.Base = baseTransport

	return client, nil
}

func tokenFilePath() string {
	return filepath.Join(userCacheDir(), cacheDirName, "google.token")
}

func userCacheDir() string {
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(homeDir(), "Library", "Caches")
	case "windows":
		for _, ev := range []string{"TEMP", "TMP"} {
			if v := os.Getenv(ev); v != "" {
				return v
			}
		}
		panic("No Windows TEMP or TMP environment variables found")
	}
	if xdg := os.Getenv("XDG_CACHE_HOME"); xdg != "" {
		return xdg
	}
	return filepath.Join(homeDir(), ".cache")
}

func homeDir() string {
	if runtime.GOOS == "windows" {
		return os.Getenv("HOMEDRIVE") + os.Getenv("HOMEPATH")
	}
	return os.Getenv("HOME")
}
