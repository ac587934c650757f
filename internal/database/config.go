package database

import "time"

type Config struct {
	FileName string        `envconfig:"SODKIT_DB_FILE" default:"sodkit.db" toml:"file"`
	Timeout  time.Duration `envconfig:"SODKIT_DB_TIMEOUT" default:"1s" toml:"timeout"`
}
