package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeNetrc(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "netrc")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write netrc: %v", err)
	}
	return path
}

func TestParseNetrc(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		want    map[string]netrcEntry
	}{
		{
			name: "multiline entry",
			content: `machine jira.example.com
login user@example.com
password secret123`,
			want: map[string]netrcEntry{
				"jira.example.com": {Machine: "jira.example.com", Login: "user@example.com", Password: "secret123"},
			},
		},
		{
			name:    "single line entry",
			content: "machine jira.example.com login user@example.com password secret123",
			want: map[string]netrcEntry{
				"jira.example.com": {Machine: "jira.example.com", Login: "user@example.com", Password: "secret123"},
			},
		},
		{
			name: "multiple machines",
			content: `machine one.example.com
  login one-user
  password one-token

machine two.example.com
  login two-user
  password two-token`,
			want: map[string]netrcEntry{
				"one.example.com": {Machine: "one.example.com", Login: "one-user", Password: "one-token"},
				"two.example.com": {Machine: "two.example.com", Login: "two-user", Password: "two-token"},
			},
		},
		{
			name: "default entry and comments",
			content: `# credentials
default
login fallback-user
password fallback-token`,
			want: map[string]netrcEntry{
				"default": {Machine: "default", Login: "fallback-user", Password: "fallback-token"},
			},
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			entries, err := parseNetrc(writeNetrc(t, tc.content))
			if err != nil {
				t.Fatalf("parseNetrc error: %v", err)
			}
			if len(entries) != len(tc.want) {
				t.Fatalf("expected %d entries, got %d", len(tc.want), len(entries))
			}
			for machine, want := range tc.want {
				got, ok := entries[machine]
				if !ok {
					t.Fatalf("missing entry for %q", machine)
				}
				if got != want {
					t.Fatalf("entry %q = %+v, want %+v", machine, got, want)
				}
			}
		})
	}
}

func TestParseNetrcMissingFile(t *testing.T) {
	t.Parallel()

	entries, err := parseNetrc(filepath.Join(t.TempDir(), "missing"))
	if err != nil {
		t.Fatalf("missing file should not error, got %v", err)
	}
	if entries != nil {
		t.Fatalf("expected nil entries, got %v", entries)
	}
}

func TestLoadNetrcCredentialsByHost(t *testing.T) {
	path := writeNetrc(t, `machine example.atlassian.net
login user
password token

default
login default-user
password default-token`)
	t.Setenv("NETRC", path)

	login, password, err := loadNetrcCredentials("https://example.atlassian.net")
	if err != nil {
		t.Fatalf("loadNetrcCredentials error: %v", err)
	}
	if login != "user" || password != "token" {
		t.Fatalf("unexpected credentials %q %q", login, password)
	}

	login, password, err = loadNetrcCredentials("https://other.example.com")
	if err != nil {
		t.Fatalf("loadNetrcCredentials error: %v", err)
	}
	if login != "default-user" || password != "default-token" {
		t.Fatalf("expected default entry, got %q %q", login, password)
	}
}

func TestLoadNetrcCredentialsStripsPort(t *testing.T) {
	path := writeNetrc(t, "machine jira.internal login user password token")
	t.Setenv("NETRC", path)

	login, password, err := loadNetrcCredentials("https://jira.internal:8443")
	if err != nil {
		t.Fatalf("loadNetrcCredentials error: %v", err)
	}
	if login != "user" || password != "token" {
		t.Fatalf("unexpected credentials %q %q", login, password)
	}
}

func TestApplyNetrcDefaults(t *testing.T) {
	path := writeNetrc(t, "machine example.atlassian.net login netrc-user password netrc-token")
	t.Setenv("NETRC", path)

	cfg := &Config{Jira: JiraConfig{URL: "https://example.atlassian.net"}}
	if err := cfg.applyNetrcDefaults(); err != nil {
		t.Fatalf("applyNetrcDefaults error: %v", err)
	}
	if cfg.Jira.Username != "netrc-user" || cfg.Jira.APIToken != "netrc-token" {
		t.Fatalf("expected netrc credentials, got %q %q", cfg.Jira.Username, cfg.Jira.APIToken)
	}

	// Explicit credentials are never overwritten.
	cfg = &Config{Jira: JiraConfig{URL: "https://example.atlassian.net", Username: "explicit", APIToken: "kept"}}
	if err := cfg.applyNetrcDefaults(); err != nil {
		t.Fatalf("applyNetrcDefaults error: %v", err)
	}
	if cfg.Jira.Username != "explicit" || cfg.Jira.APIToken != "kept" {
		t.Fatalf("explicit credentials should win, got %q %q", cfg.Jira.Username, cfg.Jira.APIToken)
	}
}
