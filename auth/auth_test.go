package auth

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestGitHubToken(t *testing.T) {
	t.Run("GITHUB_TOKEN", func(t *testing.T) {
		t.Setenv("GITHUB_TOKEN", "tok-a")
		t.Setenv("GH_TOKEN", "")
		got, err := GitHubToken()
		if err != nil {
			t.Fatalf("GitHubToken: %v", err)
		}
		if got != "tok-a" {
			t.Errorf("token = %q, want tok-a", got)
		}
	})

	t.Run("GH_TOKEN fallback", func(t *testing.T) {
		t.Setenv("GITHUB_TOKEN", "")
		t.Setenv("GH_TOKEN", "tok-b")
		got, err := GitHubToken()
		if err != nil {
			t.Fatalf("GitHubToken: %v", err)
		}
		if got != "tok-b" {
			t.Errorf("token = %q, want tok-b", got)
		}
	})

	t.Run("primary wins over fallback", func(t *testing.T) {
		t.Setenv("GITHUB_TOKEN", "tok-a")
		t.Setenv("GH_TOKEN", "tok-b")
		got, _ := GitHubToken()
		if got != "tok-a" {
			t.Errorf("token = %q, want tok-a", got)
		}
	})

	t.Run("missing", func(t *testing.T) {
		t.Setenv("GITHUB_TOKEN", "")
		t.Setenv("GH_TOKEN", "")
		_, err := GitHubToken()
		if !errors.Is(err, ErrNoToken) {
			t.Errorf("error = %v, want ErrNoToken", err)
		}
	})
}

func TestTokenForHost(t *testing.T) {
	t.Setenv("GITLAB_TOKEN", "gl-tok")

	got, err := TokenForHost("gitlab")
	if err != nil {
		t.Fatalf("TokenForHost: %v", err)
	}
	if got != "gl-tok" {
		t.Errorf("token = %q, want gl-tok", got)
	}

	if _, err := TokenForHost("bitbucket"); !errors.Is(err, ErrNoToken) {
		t.Errorf("unknown host error = %v, want ErrNoToken", err)
	}
}

func testPrivateKeyPEM(t *testing.T) ([]byte, *rsa.PrivateKey) {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatal(err)
	}
	pemBytes := pem.EncodeToMemory(&pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(key),
	})
	return pemBytes, key
}

func TestGitHubApp_JWT(t *testing.T) {
	pemBytes, key := testPrivateKeyPEM(t)
	app := &GitHubApp{AppID: 12345, PrivateKey: pemBytes}

	signed, err := app.JWT()
	if err != nil {
		t.Fatalf("JWT: %v", err)
	}

	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(signed, claims, func(tok *jwt.Token) (any, error) {
		if _, ok := tok.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return &key.PublicKey, nil
	})
	if err != nil {
		t.Fatalf("parse signed JWT: %v", err)
	}
	if !token.Valid {
		t.Error("signed JWT does not validate")
	}
	if claims.Issuer != "12345" {
		t.Errorf("issuer = %q, want app ID", claims.Issuer)
	}
	if claims.ExpiresAt == nil || claims.IssuedAt == nil {
		t.Fatal("missing time claims")
	}
	if lifetime := claims.ExpiresAt.Sub(claims.IssuedAt.Time); lifetime > 11*time.Minute {
		t.Errorf("JWT lifetime %v exceeds GitHub's ten minute cap", lifetime)
	}
}

func TestGitHubApp_JWTBadKey(t *testing.T) {
	app := &GitHubApp{AppID: 1, PrivateKey: []byte("not a key")}
	if _, err := app.JWT(); !errors.Is(err, ErrInvalidKey) {
		t.Errorf("error = %v, want ErrInvalidKey", err)
	}
}

func TestGitHubAppFromEnv(t *testing.T) {
	t.Run("missing variables", func(t *testing.T) {
		t.Setenv("GITHUB_APP_ID", "")
		t.Setenv("GITHUB_APP_INSTALLATION_ID", "")
		t.Setenv("GITHUB_APP_PRIVATE_KEY_FILE", "")
		if _, err := GitHubAppFromEnv(); !errors.Is(err, ErrNoToken) {
			t.Errorf("error = %v, want ErrNoToken", err)
		}
	})

	t.Run("complete credentials", func(t *testing.T) {
		pemBytes, _ := testPrivateKeyPEM(t)
		keyFile := filepath.Join(t.TempDir(), "app.pem")
		if err := os.WriteFile(keyFile, pemBytes, 0o600); err != nil {
			t.Fatal(err)
		}
		t.Setenv("GITHUB_APP_ID", "12345")
		t.Setenv("GITHUB_APP_INSTALLATION_ID", "678")
		t.Setenv("GITHUB_APP_PRIVATE_KEY_FILE", keyFile)

		app, err := GitHubAppFromEnv()
		if err != nil {
			t.Fatalf("GitHubAppFromEnv: %v", err)
		}
		if app.AppID != 12345 || app.InstallationID != 678 {
			t.Errorf("ids = %d/%d, want 12345/678", app.AppID, app.InstallationID)
		}
		if _, err := app.JWT(); err != nil {
			t.Errorf("loaded key does not sign: %v", err)
		}
	})

	t.Run("bad app id", func(t *testing.T) {
		pemBytes, _ := testPrivateKeyPEM(t)
		keyFile := filepath.Join(t.TempDir(), "app.pem")
		if err := os.WriteFile(keyFile, pemBytes, 0o600); err != nil {
			t.Fatal(err)
		}
		t.Setenv("GITHUB_APP_ID", "not-a-number")
		t.Setenv("GITHUB_APP_INSTALLATION_ID", "678")
		t.Setenv("GITHUB_APP_PRIVATE_KEY_FILE", keyFile)

		if _, err := GitHubAppFromEnv(); err == nil {
			t.Error("expected error for non-numeric app ID")
		}
	})
}

func TestSSHAgentCheck_NoSocket(t *testing.T) {
	t.Setenv("SSH_AUTH_SOCK", "")
	if err := SSHAgentCheck(); !errors.Is(err, ErrNoSSHAgent) {
		t.Errorf("error = %v, want ErrNoSSHAgent", err)
	}
}

func TestSSHAgentCheck_DeadSocket(t *testing.T) {
	t.Setenv("SSH_AUTH_SOCK", "/nonexistent/agent.sock")
	if err := SSHAgentCheck(); !errors.Is(err, ErrNoSSHAgent) {
		t.Errorf("error = %v, want ErrNoSSHAgent", err)
	}
}
