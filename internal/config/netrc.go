package config

import (
	"bufio"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// netrcEntry represents credentials for a single machine in .netrc.
type netrcEntry struct {
	Machine  string
	Login    string
	Password string
}

// parseNetrc reads a .netrc file into a map of machine -> entry. A missing
// file is not an error.
func parseNetrc(path string) (map[string]netrcEntry, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("netrc: open: %w", err)
	}
	defer file.Close()

	entries := make(map[string]netrcEntry)
	var current netrcEntry

	save := func() {
		if current.Machine != "" {
			entries[current.Machine] = current
		}
	}

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		tokens := strings.Fields(line)
		for i := 0; i < len(tokens); i++ {
			switch tokens[i] {
			case "machine":
				save()
				if i+1 < len(tokens) {
					current = netrcEntry{Machine: tokens[i+1]}
					i++
				}
			case "default":
				save()
				current = netrcEntry{Machine: "default"}
			case "login":
				if i+1 < len(tokens) {
					current.Login = tokens[i+1]
					i++
				}
			case "password":
				if i+1 < len(tokens) {
					current.Password = tokens[i+1]
					i++
				}
			case "account":
				// Recognised but unused.
				if i+1 < len(tokens) {
					i++
				}
			}
		}
	}
	save()

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("netrc: scan: %w", err)
	}

	return entries, nil
}

// findNetrcPath locates the .netrc file, checking the NETRC environment
// variable before falling back to ~/.netrc.
func findNetrcPath() string {
	if netrcPath := os.Getenv("NETRC"); netrcPath != "" {
		return netrcPath
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".netrc")
}

// loadNetrcCredentials returns the login/password for the host of the given
// site URL, or empty strings when no matching entry exists.
func loadNetrcCredentials(site string) (login, password string, err error) {
	netrcPath := findNetrcPath()
	if netrcPath == "" {
		return "", "", nil
	}

	entries, err := parseNetrc(netrcPath)
	if err != nil {
		return "", "", err
	}

	if len(entries) == 0 {
		return "", "", nil
	}

	hostname := site
	if parsed, err := url.Parse(site); err == nil && parsed.Host != "" {
		hostname = parsed.Host
	}

	if entry, ok := entries[hostname]; ok {
		return entry.Login, entry.Password, nil
	}

	if host := strings.Split(hostname, ":")[0]; host != hostname {
		if entry, ok := entries[host]; ok {
			return entry.Login, entry.Password, nil
		}
	}

	if entry, ok := entries["default"]; ok {
		return entry.Login, entry.Password, nil
	}

	return "", "", nil
}

// applyNetrcDefaults fills in missing username/api_token from .netrc.
func (c *Config) applyNetrcDefaults() error {
	if c.Jira.URL == "" || c.Jira.Username != "" || c.Jira.APIToken != "" {
		return nil
	}

	login, password, err := loadNetrcCredentials(c.Jira.URL)
	if err != nil {
		return fmt.Errorf("config: load netrc: %w", err)
	}

	if login != "" && password != "" {
		c.Jira.Username = login
		c.Jira.APIToken = password
	}

	return nil
}
