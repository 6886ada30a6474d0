package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	// Server
	Port        int    `envconfig:"PORT" default:"5000"`
	Environment string `envconfig:"ENV" default:"development"`

	// Database
	DatabaseURL string `envconfig:"DATABASE_URL" required:"true"`

	// Video provider
	ProviderType  string        `envconfig:"PROVIDER_TYPE" default:"heygen"`
	HeyGenAPIURL  string        `envconfig:"HEYGEN_API_URL" default:"https://api.heygen.com"`
	HeyGenTimeout time.Duration `envconfig:"HEYGEN_TIMEOUT" default:"30s"`

	// Webhook endpoint registry
	RegistryRefreshInterval time.Duration `envconfig:"REGISTRY_REFRESH_INTERVAL" default:"60s"`
	RegistryUnmountInactive bool          `envconfig:"REGISTRY_UNMOUNT_INACTIVE" default:"false"`

	// Billing
	StripeSecretKey     string `envconfig:"STRIPE_SECRET_KEY"`
	StripeWebhookSecret string `envconfig:"STRIPE_WEBHOOK_SECRET"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
