// Package config handles loading and validation of service configuration.
// Supports both development (env vars) and production (Secret Manager) modes.
package config

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"os"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	"cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"

	"catalog-proxy/internal/codec"
)

// Config holds all service configuration.
// Environment determines whether secrets load from env vars (development) or Secret Manager (production).
type Config struct {
	// Server settings
	Port        string
	Environment string // "development" or "production"
	LogLevel    string // "debug", "info", "warn", "error"

	// GCP settings (required in production)
	GCPProject string
	StoreID    string

	// Vendor selects the codec implementation (currently "commercetools")
	Vendor string

	// Defaults applied to queries that carry no locale of their own
	Defaults Defaults

	// Vendor credentials (loaded from secrets)
	Credentials codec.Credentials
}

// Defaults are the locale values used when a request does not specify them.
type Defaults struct {
	Language string `json:"language"`
	Country  string `json:"country"`
	Currency string `json:"currency"`
}

// Load reads configuration from file, environment, or Secret Manager.
// Priority: CONFIG_FILE (if set), then ENV vars / Secret Manager.
// Validates all required fields and returns an error if any are missing.
func Load(ctx context.Context) (*Config, error) {
	// If CONFIG_FILE is set, load everything from the JSON file
	if configPath := os.Getenv("CONFIG_FILE"); configPath != "" {
		return loadFromFile(configPath)
	}

	cfg := &Config{
		Port:        envOrDefault("PORT", "8080"),
		Environment: envOrDefault("ENVIRONMENT", "development"),
		LogLevel:    envOrDefault("LOG_LEVEL", "info"),
		GCPProject:  os.Getenv("GCP_PROJECT"),
		StoreID:     os.Getenv("STORE_ID"),
		Vendor:      envOrDefault("VENDOR", "commercetools"),
		Defaults: Defaults{
			Language: envOrDefault("DEFAULT_LANGUAGE", "en"),
			Country:  envOrDefault("DEFAULT_COUNTRY", "US"),
			Currency: envOrDefault("DEFAULT_CURRENCY", "USD"),
		},
	}

	// Load vendor credentials based on environment
	var err error
	if cfg.Environment == "production" {
		if cfg.GCPProject == "" {
			return nil, fmt.Errorf("GCP_PROJECT required in production environment")
		}
		if cfg.StoreID == "" {
			return nil, fmt.Errorf("STORE_ID required in production environment")
		}
		err = cfg.loadFromSecretManager(ctx)
	} else {
		err = cfg.loadFromEnv()
	}
	if err != nil {
		return nil, fmt.Errorf("loading credentials: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadFromFile reads all configuration from a JSON file.
// Used for local development to avoid multiple ENV vars.
func loadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var fileConfig struct {
		Port        string            `json:"port"`
		Environment string            `json:"environment"`
		LogLevel    string            `json:"log_level"`
		StoreID     string            `json:"store_id"`
		Vendor      string            `json:"vendor"`
		Defaults    Defaults          `json:"defaults"`
		Credentials codec.Credentials `json:"credentials"`
	}

	if err := json.Unmarshal(data, &fileConfig); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	cfg := &Config{
		Port:        withDefault(fileConfig.Port, "8080"),
		Environment: withDefault(fileConfig.Environment, "development"),
		LogLevel:    withDefault(fileConfig.LogLevel, "info"),
		StoreID:     fileConfig.StoreID,
		Vendor:      withDefault(fileConfig.Vendor, "commercetools"),
		Defaults:    fileConfig.Defaults,
		Credentials: fileConfig.Credentials,
	}
	applyLocaleDefaults(&cfg.Defaults)

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// withDefault returns val if non-empty, otherwise defaultVal.
func withDefault(val, defaultVal string) string {
	if val != "" {
		return val
	}
	return defaultVal
}

func applyLocaleDefaults(d *Defaults) {
	d.Language = withDefault(d.Language, "en")
	d.Country = withDefault(d.Country, "US")
	d.Currency = withDefault(d.Currency, "USD")
}

// loadFromSecretManager fetches vendor credentials from GCP Secret Manager.
// Secret name format: projects/{project}/secrets/{store_id}/versions/latest
func (c *Config) loadFromSecretManager(ctx context.Context) error {
	client, err := secretmanager.NewClient(ctx)
	if err != nil {
		return fmt.Errorf("creating secret manager client: %w", err)
	}
	defer client.Close()

	secretName := fmt.Sprintf("projects/%s/secrets/%s/versions/latest",
		c.GCPProject, c.StoreID)

	result, err := client.AccessSecretVersion(ctx, &secretmanagerpb.AccessSecretVersionRequest{
		Name: secretName,
	})
	if err != nil {
		return fmt.Errorf("accessing secret %s: %w", secretName, err)
	}

	if err := json.Unmarshal(result.Payload.Data, &c.Credentials); err != nil {
		return fmt.Errorf("parsing secret JSON: %w", err)
	}

	return nil
}

// loadFromEnv reads vendor credentials from individual environment variables.
// Used in development mode for local testing.
func (c *Config) loadFromEnv() error {
	c.Credentials = codec.Credentials{
		ClientID:     os.Getenv("CT_CLIENT_ID"),
		ClientSecret: os.Getenv("CT_CLIENT_SECRET"),
		OAuthURL:     os.Getenv("CT_OAUTH_URL"),
		APIURL:       os.Getenv("CT_API_URL"),
		Project:      os.Getenv("CT_PROJECT"),
		Scope:        os.Getenv("CT_SCOPE"),
	}
	return nil
}

// validate checks that all required configuration fields are present.
// Credential completeness is the codec type's call; the registry rejects a
// configuration its Validate function does not accept.
func (c *Config) validate() error {
	if c.Vendor == "" {
		return fmt.Errorf("vendor is required")
	}
	if _, ok := codec.Lookup(c.Vendor); !ok {
		return fmt.Errorf("unknown vendor %q (known: %v)", c.Vendor, codec.Vendors())
	}

	if c.Credentials.OAuthURL != "" {
		if _, err := url.Parse(c.Credentials.OAuthURL); err != nil {
			return fmt.Errorf("invalid oauth_url: %w", err)
		}
	}
	if c.Credentials.APIURL != "" {
		if _, err := url.Parse(c.Credentials.APIURL); err != nil {
			return fmt.Errorf("invalid api_url: %w", err)
		}
	}

	return nil
}

// envOrDefault returns the environment variable value or the default if not set.
func envOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
