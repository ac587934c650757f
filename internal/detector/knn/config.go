package knn

import (
	"github.com/go-sod/sodkit/internal/geom"
	"github.com/go-sod/sodkit/internal/neighbors"
)

type Config struct {
	KNum           int                   `envconfig:"KNN_K_NUM" default:"5" toml:"k"`
	Aggregation    Aggregation           `envconfig:"KNN_AGGREGATION" default:"LARGEST" toml:"aggregation"`
	MetricFuncType geom.DistanceFuncType `envconfig:"KNN_DISTANCE_FUNC" default:"EUCLIDEAN" toml:"distance"`
	AlgType        neighbors.AlgType     `envconfig:"KNN_ALG_TYPE" default:"AUTO" toml:"algorithm"`
}

func (c Config) Options() []Option {
	return []Option{
		WithKNum(c.KNum),
		WithAggregation(c.Aggregation),
		WithDistance(c.MetricFuncType),
		WithAlg(c.AlgType),
	}
}
