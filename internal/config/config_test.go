package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return dir
}

func TestLoadFromFile(t *testing.T) {
	dir := writeConfigFile(t, `
server:
  log_level: debug
jira:
  url: https://example.atlassian.net
  username: user@example.com
  api_token: secret
`)

	// Make sure a stray ~/.netrc cannot leak into the test.
	t.Setenv("NETRC", filepath.Join(t.TempDir(), "missing"))

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if cfg.Jira.URL != "https://example.atlassian.net" {
		t.Fatalf("unexpected url %q", cfg.Jira.URL)
	}
	if cfg.Jira.Username != "user@example.com" || cfg.Jira.APIToken != "secret" {
		t.Fatalf("unexpected credentials %q %q", cfg.Jira.Username, cfg.Jira.APIToken)
	}
	if cfg.Server.LogLevel != "debug" {
		t.Fatalf("unexpected log level %q", cfg.Server.LogLevel)
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := writeConfigFile(t, `
jira:
  url: https://file.atlassian.net
  username: file-user
  api_token: file-token
`)

	t.Setenv("JIRA_URL", "https://env.atlassian.net")
	t.Setenv("JIRA_USERNAME", "env-user")
	t.Setenv("JIRA_API_TOKEN", "env-token")
	t.Setenv("JIRA_LOG_LEVEL", "warn")

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if cfg.Jira.URL != "https://env.atlassian.net" {
		t.Fatalf("expected env url to win, got %q", cfg.Jira.URL)
	}
	if cfg.Jira.Username != "env-user" || cfg.Jira.APIToken != "env-token" {
		t.Fatalf("expected env credentials to win, got %q %q", cfg.Jira.Username, cfg.Jira.APIToken)
	}
	if cfg.Server.LogLevel != "warn" {
		t.Fatalf("expected env log level, got %q", cfg.Server.LogLevel)
	}
}

func TestLoadMissingCredentials(t *testing.T) {
	dir := writeConfigFile(t, `
jira:
  url: https://example.atlassian.net
`)

	t.Setenv("NETRC", filepath.Join(t.TempDir(), "missing"))

	_, err := Load(dir)
	if err == nil || !strings.Contains(err.Error(), "jira.username") {
		t.Fatalf("expected username error, got %v", err)
	}
}

func TestLoadMissingURL(t *testing.T) {
	dir := writeConfigFile(t, `
jira:
  username: user
  api_token: token
`)

	t.Setenv("JIRA_URL", "")

	_, err := Load(dir)
	if err == nil || !strings.Contains(err.Error(), "jira.url") {
		t.Fatalf("expected url error, got %v", err)
	}
}

func TestLoadCredentialsFromNetrc(t *testing.T) {
	dir := writeConfigFile(t, `
jira:
  url: https://example.atlassian.net
`)

	netrcPath := filepath.Join(t.TempDir(), "netrc")
	netrc := "machine example.atlassian.net\nlogin netrc-user\npassword netrc-token\n"
	if err := os.WriteFile(netrcPath, []byte(netrc), 0o600); err != nil {
		t.Fatalf("write netrc: %v", err)
	}
	t.Setenv("NETRC", netrcPath)

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if cfg.Jira.Username != "netrc-user" || cfg.Jira.APIToken != "netrc-token" {
		t.Fatalf("expected netrc credentials, got %q %q", cfg.Jira.Username, cfg.Jira.APIToken)
	}
}

func TestValidateDefaultsLogLevel(t *testing.T) {
	t.Parallel()

	cfg := &Config{
		Jira: JiraConfig{URL: "https://example.atlassian.net", Username: "user", APIToken: "token"},
	}
	if err := cfg.validate(); err != nil {
		t.Fatalf("validate error: %v", err)
	}
	if cfg.Server.LogLevel != "info" {
		t.Fatalf("expected default log level info, got %q", cfg.Server.LogLevel)
	}
}
