package lof

import (
	"github.com/go-sod/sodkit/internal/geom"
	"github.com/go-sod/sodkit/internal/neighbors"
)

type Config struct {
	KNum           int                   `envconfig:"LOF_K_NUM" default:"20" toml:"k"`
	MetricFuncType geom.DistanceFuncType `envconfig:"LOF_DISTANCE_FUNC" default:"EUCLIDEAN" toml:"distance"`
	AlgType        neighbors.AlgType     `envconfig:"LOF_ALG_TYPE" default:"AUTO" toml:"algorithm"`
	Novelty        bool                  `envconfig:"LOF_NOVELTY" default:"false" toml:"novelty"`
}

func (c Config) Options() []Option {
	return []Option{
		WithKNum(c.KNum),
		WithDistance(c.MetricFuncType),
		WithAlg(c.AlgType),
		WithNovelty(c.Novelty),
	}
}
