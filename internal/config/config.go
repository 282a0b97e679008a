package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/viper"
)

// Config represents the full application configuration loaded from file/env.
type Config struct {
	Server ServerConfig `mapstructure:"server"`
	Jira   JiraConfig   `mapstructure:"jira"`
}

// ServerConfig holds server-specific options.
type ServerConfig struct {
	LogLevel string `mapstructure:"log_level"`
}

// JiraConfig describes the Jira site and the credentials used for basic auth.
type JiraConfig struct {
	URL      string `mapstructure:"url"`
	Username string `mapstructure:"username"`
	APIToken string `mapstructure:"api_token"`
}

// Load reads configuration from the provided directory and environment variables.
// The environment variables JIRA_URL, JIRA_USERNAME, JIRA_API_TOKEN and
// JIRA_LOG_LEVEL take precedence over values from the config file.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	if path != "" {
		info, err := os.Stat(path)
		if err == nil && info.IsDir() {
			v.AddConfigPath(path)
		} else {
			v.SetConfigFile(path)
		}
	} else {
		v.AddConfigPath(".")
	}

	v.SetDefault("server.log_level", "info")

	_ = v.BindEnv("jira.url", "JIRA_URL")
	_ = v.BindEnv("jira.username", "JIRA_USERNAME")
	_ = v.BindEnv("jira.api_token", "JIRA_API_TOKEN")
	_ = v.BindEnv("server.log_level", "JIRA_LOG_LEVEL")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: read: %w", err)
		}
	}

	cfg := new(Config)
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}

	if err := cfg.applyNetrcDefaults(); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.Jira.URL == "" {
		return fmt.Errorf("config: jira.url is required (set JIRA_URL)")
	}

	if c.Jira.Username == "" {
		return fmt.Errorf("config: jira.username is required (set JIRA_USERNAME)")
	}

	if c.Jira.APIToken == "" {
		return fmt.Errorf("config: jira.api_token is required (set JIRA_API_TOKEN)")
	}

	if c.Server.LogLevel == "" {
		c.Server.LogLevel = "info"
	}

	return nil
}
