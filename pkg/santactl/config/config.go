package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v2"
)

const (
	VersionV1 = "v1"
)

type Config struct {
	Version  string      `yaml:"version"`
	SMTP     SMTPConfig  `yaml:"smtp,omitempty"`
	IMAP     IMAPConfig  `yaml:"imap,omitempty"`
	Giphy    GiphyConfig `yaml:"giphy,omitempty"`
	Settings Settings    `yaml:"settings,omitempty"`
}

type SMTPConfig struct {
	Host            string `yaml:"host"`
	Port            int    `yaml:"port,omitempty"`
	Username        string `yaml:"username,omitempty"`
	SenderAddress   string `yaml:"sender-address,omitempty"`
	SenderName      string `yaml:"sender-name,omitempty"`
	InsecureSkipTLS bool   `yaml:"insecure-skip-tls-verify,omitempty"`
}

type IMAPConfig struct {
	Host        string `yaml:"host,omitempty"`
	Port        int    `yaml:"port,omitempty"`
	SentMailbox string `yaml:"sent-mailbox,omitempty"`
	// Disabled turns off sent-mail housekeeping entirely.
	Disabled bool `yaml:"disabled,omitempty"`
}

type GiphyConfig struct {
	Tag    string `yaml:"tag,omitempty"`
	Rating string `yaml:"rating,omitempty"`
	// Disabled sends letters without an embedded GIF.
	Disabled bool `yaml:"disabled,omitempty"`
}

type Settings struct {
	OutputFormat string `yaml:"output-format,omitempty"`
	Subject      string `yaml:"subject,omitempty"`
	BrandingName string `yaml:"branding-name,omitempty"`
	KeepGIFsDir  string `yaml:"keep-gifs-dir,omitempty"`
}

func DefaultConfig() Config {
	return Config{
		Version: VersionV1,
		SMTP: SMTPConfig{
			Host: "smtp.gmail.com",
			Port: 587,
		},
		IMAP: IMAPConfig{
			Host:        "imap.gmail.com",
			Port:        993,
			SentMailbox: "[Gmail]/Sent Mail",
		},
		Giphy: GiphyConfig{
			Tag:    "Merry Christmas",
			Rating: "PG-13",
		},
		Settings: Settings{
			OutputFormat: "table",
			Subject:      "Secret Santa",
		},
	}
}

func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is required")
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(content, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if cfg.Version == "" {
		cfg.Version = VersionV1
	}
	return &cfg, nil
}

func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errors.New("config is nil")
	}
	if cfg.Version == "" {
		cfg.Version = VersionV1
	}
	content, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("failed to create config dir: %w", err)
	}
	return os.WriteFile(path, content, 0o600)
}
