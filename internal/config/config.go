package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the application's configuration model: credentials, cache
// location, fetch behavior, and export storage.
type Config struct {
	Credentials CredentialsConfig `yaml:"credentials"`
	Cache       CacheConfig       `yaml:"cache"`
	Fetch       FetchConfig       `yaml:"fetch"`
	Storage     StorageConfig     `yaml:"storage"`
}

// CredentialsConfig holds OAuth 1.0a key material for the v1.1 API.
// Empty fields fall back to TWITTER_* environment variables.
type CredentialsConfig struct {
	ConsumerKey    string `yaml:"consumerKey"`
	ConsumerSecret string `yaml:"consumerSecret"`
	AccessToken    string `yaml:"accessToken"`
	AccessSecret   string `yaml:"accessSecret"`
}

type CacheConfig struct {
	// Dir is the cache root; the tweets and users areas live under it.
	Dir string `yaml:"dir"`
}

type FetchConfig struct {
	// SuppressWarnings silences non-fatal hydration warnings.
	SuppressWarnings bool `yaml:"suppressWarnings"`
	// Progress prints a cosmetic per-identifier indicator.
	Progress bool `yaml:"progress"`
	// IncludeRetweets keeps retweets in built sets.
	IncludeRetweets bool `yaml:"includeRetweets"`
	// FilterKey/FilterValue configure the optional substring filter.
	FilterKey   string `yaml:"filterKey"`
	FilterValue string `yaml:"filterValue"`
}

type StorageConfig struct {
	DBPath string `yaml:"dbPath"`
}

// Default returns a sensible default configuration.
func Default() Config {
	home, _ := os.UserHomeDir()
	return Config{
		Cache:   CacheConfig{Dir: filepath.Join(home, ".tweetkit", "cache")},
		Fetch:   FetchConfig{IncludeRetweets: true},
		Storage: StorageConfig{DBPath: "./tweetkit.db"},
	}
}

// ResolveEnv fills in credential fields from environment variables if
// not set in the file.
func (c *Config) ResolveEnv() {
	if c.Credentials.ConsumerKey == "" {
		c.Credentials.ConsumerKey = os.Getenv("TWITTER_CONSUMER_KEY")
	}
	if c.Credentials.ConsumerSecret == "" {
		c.Credentials.ConsumerSecret = os.Getenv("TWITTER_CONSUMER_SECRET")
	}
	if c.Credentials.AccessToken == "" {
		c.Credentials.AccessToken = os.Getenv("TWITTER_ACCESS_TOKEN")
	}
	if c.Credentials.AccessSecret == "" {
		c.Credentials.AccessSecret = os.Getenv("TWITTER_ACCESS_SECRET")
	}
}

// Load reads YAML config from path. Fields absent from the file keep
// their Default values, so a credentials-only file behaves like Default
// with credentials filled in.
func Load(path string) (Config, error) {
	cfg := Default()
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, err
	}
	cfg.ResolveEnv()
	return cfg, nil
}

// Save writes YAML config to path, creating directories as needed.
func Save(path string, cfg Config) error {
	if path == "" {
		return errors.New("empty path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	b, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}
