package auth

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/go-github/v57/github"
)

// AppJWTTTL is the lifetime of app JWTs. GitHub caps this at ten
// minutes; a shorter window tolerates clock skew.
const AppJWTTTL = 9 * time.Minute

// GitHubApp holds GitHub App credentials for installation token
// exchange.
type GitHubApp struct {
	// AppID is the numeric application ID.
	AppID int64

	// InstallationID identifies the installation to mint tokens for.
	InstallationID int64

	// PrivateKey is the app's RSA private key in PEM form.
	PrivateKey []byte
}

// JWT signs a short-lived RS256 app JWT. The issued-at claim is backed
// off one minute to absorb clock skew against GitHub's servers.
func (a *GitHubApp) JWT() (string, error) {
	key, err := jwt.ParseRSAPrivateKeyFromPEM(a.PrivateKey)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidKey, err)
	}

	now := time.Now()
	claims := jwt.RegisteredClaims{
		Issuer:    fmt.Sprintf("%d", a.AppID),
		IssuedAt:  jwt.NewNumericDate(now.Add(-time.Minute)),
		ExpiresAt: jwt.NewNumericDate(now.Add(AppJWTTTL)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	signed, err := token.SignedString(key)
	if err != nil {
		return "", fmt.Errorf("sign app JWT: %w", err)
	}
	return signed, nil
}

// InstallationToken exchanges the app JWT for an installation access
// token, the credential git and API calls actually use.
func (a *GitHubApp) InstallationToken(ctx context.Context) (string, error) {
	appJWT, err := a.JWT()
	if err != nil {
		return "", err
	}

	client := github.NewClient(&http.Client{
		Transport: &bearerTransport{token: appJWT},
	})
	token, _, err := client.Apps.CreateInstallationToken(ctx, a.InstallationID, nil)
	if err != nil {
		return "", fmt.Errorf("create installation token: %w", err)
	}
	return token.GetToken(), nil
}

// GitHubAppFromEnv reads app credentials from GITHUB_APP_ID,
// GITHUB_APP_INSTALLATION_ID, and GITHUB_APP_PRIVATE_KEY_FILE.
// Reports ErrNoToken when any of the variables is unset.
func GitHubAppFromEnv() (*GitHubApp, error) {
	appID := os.Getenv("GITHUB_APP_ID")
	instID := os.Getenv("GITHUB_APP_INSTALLATION_ID")
	keyFile := os.Getenv("GITHUB_APP_PRIVATE_KEY_FILE")
	if appID == "" || instID == "" || keyFile == "" {
		return nil, fmt.Errorf("%w: set GITHUB_APP_ID, GITHUB_APP_INSTALLATION_ID, and GITHUB_APP_PRIVATE_KEY_FILE for app authentication", ErrNoToken)
	}

	id, err := strconv.ParseInt(appID, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("parse GITHUB_APP_ID: %w", err)
	}
	inst, err := strconv.ParseInt(instID, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("parse GITHUB_APP_INSTALLATION_ID: %w", err)
	}
	key, err := os.ReadFile(keyFile)
	if err != nil {
		return nil, fmt.Errorf("read app private key: %w", err)
	}
	return &GitHubApp{AppID: id, InstallationID: inst, PrivateKey: key}, nil
}

// bearerTransport authenticates requests with a static bearer token.
// App JWTs cannot go through oauth2 token sources because GitHub
// requires the Bearer scheme for them.
type bearerTransport struct {
	token string
}

func (t *bearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	clone := req.Clone(req.Context())
	clone.Header.Set("Authorization", "Bearer "+t.token)
	return http.DefaultTransport.RoundTrip(clone)
}
