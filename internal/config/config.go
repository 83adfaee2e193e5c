package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Environment string `envconfig:"ENV" default:"development"`

	// Evaluation
	Targets   string `envconfig:"EVAL_TARGETS" default:"lfw,cfp_fp,agedb_30,calfw,cplfw"`
	DataDir   string `envconfig:"EVAL_DATA_DIR" default:"data"`
	BatchSize int    `envconfig:"EVAL_BATCH_SIZE" default:"64"`
	NFolds    int    `envconfig:"EVAL_NFOLDS" default:"10"`
	PCA       int    `envconfig:"EVAL_PCA" default:"0"`

	// Provider
	ProviderType string        `envconfig:"PROVIDER_TYPE" default:"mock"`
	EmbedURL     string        `envconfig:"EMBED_URL" default:"http://localhost:8500"`
	EmbedTimeout time.Duration `envconfig:"EMBED_TIMEOUT" default:"30s"`
	EmbedDim     int           `envconfig:"EMBED_DIM" default:"512"`

	// Persistence (optional; runs are stored only when set)
	DatabaseURL string `envconfig:"DATABASE_URL"`
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

// PersistenceEnabled reports whether run results should be written to Postgres.
func (c *Config) PersistenceEnabled() bool {
	return c.DatabaseURL != ""
}
