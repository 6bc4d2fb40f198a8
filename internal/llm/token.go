package llm

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// ErrTokenNotFound is returned when no GitHub token is configured.
var ErrTokenNotFound = errors.New("GitHub token not found: set JARVIS_GITHUB_TOKEN or GITHUB_TOKEN, or sign in to GitHub Copilot in your editor")

// tokenEnvVars are checked in order before the Copilot config files.
var tokenEnvVars = []string{"JARVIS_GITHUB_TOKEN", "GITHUB_TOKEN"}

// LoadGitHubToken loads the GitHub OAuth token used for the Copilot exchange.
// Environment variables win over the github-copilot hosts.json and apps.json files.
func LoadGitHubToken() (string, error) {
	for _, name := range tokenEnvVars {
		if token := strings.TrimSpace(os.Getenv(name)); token != "" {
			return token, nil
		}
	}

	configDir, err := getConfigDir()
	if err != nil {
		return "", fmt.Errorf("getting config directory: %w", err)
	}

	for _, name := range []string{"hosts.json", "apps.json"} {
		token, err := loadTokenFromFile(filepath.Join(configDir, "github-copilot", name))
		if err == nil && token != "" {
			return token, nil
		}
	}
	return "", ErrTokenNotFound
}

// getConfigDir returns the user's config directory based on OS.
func getConfigDir() (string, error) {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return xdgConfig, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	if runtime.GOOS == "windows" {
		if localAppData := os.Getenv("LOCALAPPDATA"); localAppData != "" {
			return localAppData, nil
		}
		return filepath.Join(home, "AppData", "Local"), nil
	}
	return filepath.Join(home, ".config"), nil
}

// copilotHost is one entry of a github-copilot config file.
type copilotHost struct {
	OAuthToken string `json:"oauth_token"`
}

// loadTokenFromFile extracts the oauth_token of the first github.com entry.
func loadTokenFromFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}

	var hosts map[string]copilotHost
	if err := json.Unmarshal(data, &hosts); err != nil {
		return "", fmt.Errorf("parsing %s: %w", path, err)
	}

	for key, host := range hosts {
		if strings.Contains(key, "github.com") && host.OAuthToken != "" {
			return host.OAuthToken, nil
		}
	}
	return "", fmt.Errorf("oauth_token not found in %s", path)
}
