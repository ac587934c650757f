// Package config gathers every component's settings. Values come from
// defaults and SODKIT_* style environment variables first, then an optional
// TOML file overrides them.
package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/kelseyhightower/envconfig"

	"github.com/go-sod/sodkit/internal/database"
	"github.com/go-sod/sodkit/internal/datasets"
	"github.com/go-sod/sodkit/internal/detector"
	"github.com/go-sod/sodkit/internal/detector/gaussian"
	"github.com/go-sod/sodkit/internal/detector/iforest"
	"github.com/go-sod/sodkit/internal/detector/kde"
	"github.com/go-sod/sodkit/internal/detector/knn"
	"github.com/go-sod/sodkit/internal/detector/lof"
	"github.com/go-sod/sodkit/internal/evaluate"
	"github.com/go-sod/sodkit/internal/setup"
)

var (
	_ setup.DetectorConfigProvider = (*Config)(nil)
	_ setup.DatabaseConfigProvider = (*Config)(nil)
)

type Config struct {
	Debug    bool            `envconfig:"SODKIT_DEBUG" default:"false" toml:"debug"`
	Detector detector.Config `toml:"detector"`
	Dataset  datasets.Config `toml:"dataset"`
	Database database.Config `toml:"database"`
	Evaluate evaluate.Config `toml:"evaluate"`
	LOF      lof.Config      `toml:"lof"`
	KNN      knn.Config      `toml:"knn"`
	IForest  iforest.Config  `toml:"iforest"`
	Gaussian gaussian.Config `toml:"gaussian"`
	KDE      kde.Config      `toml:"kde"`
}

// Load processes the environment and overlays the TOML file at path. An
// empty path skips the file.
func Load(path string) (*Config, error) {
	var c Config
	if err := envconfig.Process("", &c); err != nil {
		return nil, fmt.Errorf("error loading environment variables: %w", err)
	}
	// nested configs are keyed by their own tags, without a field prefix
	for _, sub := range c.sections() {
		if err := envconfig.Process("", sub); err != nil {
			return nil, fmt.Errorf("error loading environment variables: %w", err)
		}
	}
	if path == "" {
		return &c, nil
	}
	if _, err := toml.DecodeFile(path, &c); err != nil {
		return nil, fmt.Errorf("unable to decode config file %s: %w", path, err)
	}
	return &c, nil
}

func (c *Config) sections() []interface{} {
	return []interface{}{
		&c.Detector, &c.Dataset, &c.Database, &c.Evaluate,
		&c.LOF, &c.KNN, &c.IForest, &c.Gaussian, &c.KDE,
	}
}

func (c *Config) DatabaseConfig() *database.Config {
	return &c.Database
}

func (c *Config) DetectorConfig() *detector.Config {
	return &c.Detector
}

func (c *Config) LOFConfig() *lof.Config {
	return &c.LOF
}

func (c *Config) KNNConfig() *knn.Config {
	return &c.KNN
}

func (c *Config) IForestConfig() *iforest.Config {
	return &c.IForest
}

func (c *Config) GaussianConfig() *gaussian.Config {
	return &c.Gaussian
}

func (c *Config) KDEConfig() *kde.Config {
	return &c.KDE
}
