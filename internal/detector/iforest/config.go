package iforest

type Config struct {
	NEstimators int    `envconfig:"IFOREST_N_ESTIMATORS" default:"100" toml:"n_estimators"`
	MaxSamples  int    `envconfig:"IFOREST_MAX_SAMPLES" default:"256" toml:"max_samples"`
	RandomState uint64 `envconfig:"IFOREST_RANDOM_STATE" default:"0" toml:"random_state"`
}

func (c Config) Options() []Option {
	return []Option{
		WithNEstimators(c.NEstimators),
		WithMaxSamples(c.MaxSamples),
		WithRandomState(c.RandomState),
	}
}
