package setup

import (
	"context"
	"fmt"

	"github.com/go-sod/sodkit/internal/database"
	"github.com/go-sod/sodkit/internal/detector"
	"github.com/go-sod/sodkit/internal/detector/gaussian"
	"github.com/go-sod/sodkit/internal/detector/iforest"
	"github.com/go-sod/sodkit/internal/detector/kde"
	"github.com/go-sod/sodkit/internal/detector/knn"
	"github.com/go-sod/sodkit/internal/detector/lof"
	"github.com/go-sod/sodkit/internal/estimator"
	"github.com/go-sod/sodkit/internal/logging"
	"github.com/go-sod/sodkit/internal/srvenv"
)

type DetectorConfigProvider interface {
	DetectorConfig() *detector.Config
	LOFConfig() *lof.Config
	KNNConfig() *knn.Config
	IForestConfig() *iforest.Config
	GaussianConfig() *gaussian.Config
	KDEConfig() *kde.Config
}

type DatabaseConfigProvider interface {
	DatabaseConfig() *database.Config
}

// Setup builds the environment described by config: detector providers when
// it configures detectors, an open database when it configures one.
func Setup(ctx context.Context, config interface{}) (*srvenv.Env, error) {
	logger := logging.FromContext(ctx)
	var envOpts []srvenv.Option

	if detectorConfigProvider, ok := config.(DetectorConfigProvider); ok {
		logger.Debug("Configuring detectors")
		providers, err := ProvideDetectors(detectorConfigProvider)
		if err != nil {
			return nil, err
		}
		for _, t := range detectorConfigProvider.DetectorConfig().Types {
			envOpts = append(envOpts, srvenv.WithDetector(t, providers[t]))
		}
	}

	if dbConfigProvider, ok := config.(DatabaseConfigProvider); ok {
		logger.Debug("Configuring db")
		db, err := database.NewFromEnv(ctx, dbConfigProvider.DatabaseConfig())
		if err != nil {
			return nil, fmt.Errorf("unable to connect to database: %w", err)
		}
		envOpts = append(envOpts, srvenv.WithDatabase(db))
	}

	return srvenv.New(envOpts...), nil
}

// ProvideDetectors returns a provider for every configured detector type.
func ProvideDetectors(provider DetectorConfigProvider) (map[detector.Type]detector.ProvideFn, error) {
	types := provider.DetectorConfig().Types
	if len(types) == 0 {
		return nil, fmt.Errorf("%w: no detectors configured", estimator.ErrInvalidParam)
	}
	providers := make(map[detector.Type]detector.ProvideFn, len(types))
	for _, t := range types {
		provideFn, err := ProvideDetectorFor(t, provider)
		if err != nil {
			return nil, fmt.Errorf("unable create detector provide function: %w", err)
		}
		providers[t] = provideFn
	}
	return providers, nil
}

// ProvideDetectorFor returns a function creating fresh detectors of type t.
// The configuration is validated by building one detector up front.
func ProvideDetectorFor(t detector.Type, provider DetectorConfigProvider) (detector.ProvideFn, error) {
	contamination := provider.DetectorConfig().Contamination

	var provideFn detector.ProvideFn
	switch t {
	case detector.TypeLOF:
		opts := append(provider.LOFConfig().Options(), lof.WithContamination(contamination))
		provideFn = func() (estimator.OutlierDetector, error) {
			return lof.New(opts...)
		}
	case detector.TypeKNN:
		opts := append(provider.KNNConfig().Options(), knn.WithContamination(contamination))
		provideFn = func() (estimator.OutlierDetector, error) {
			return knn.New(opts...)
		}
	case detector.TypeIsolationForest:
		opts := append(provider.IForestConfig().Options(), iforest.WithContamination(contamination))
		provideFn = func() (estimator.OutlierDetector, error) {
			return iforest.New(opts...)
		}
	case detector.TypeGaussian:
		opts := append(provider.GaussianConfig().Options(), gaussian.WithContamination(contamination))
		provideFn = func() (estimator.OutlierDetector, error) {
			return gaussian.New(opts...)
		}
	case detector.TypeKDE:
		opts := append(provider.KDEConfig().Options(), kde.WithContamination(contamination))
		provideFn = func() (estimator.OutlierDetector, error) {
			return kde.New(opts...)
		}
	default:
		return nil, fmt.Errorf("%w: unknown detector type: %s", estimator.ErrInvalidParam, t)
	}

	if _, err := provideFn(); err != nil {
		return nil, fmt.Errorf("invalid %s configuration: %w", t, err)
	}
	return provideFn, nil
}
