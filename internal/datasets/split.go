package datasets

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Config describes a train/test pair of blob datasets centred at the origin.
type Config struct {
	NSamples           int     `envconfig:"SODKIT_DATASET_SAMPLES" default:"100" toml:"samples"`
	NFeatures          int     `envconfig:"SODKIT_DATASET_FEATURES" default:"2" toml:"features"`
	TrainContamination float64 `envconfig:"SODKIT_DATASET_TRAIN_CONTAMINATION" default:"0.01" toml:"train_contamination"`
	TestContamination  float64 `envconfig:"SODKIT_DATASET_TEST_CONTAMINATION" default:"0.1" toml:"test_contamination"`
	TrainSeed          uint64  `envconfig:"SODKIT_DATASET_TRAIN_SEED" default:"0" toml:"train_seed"`
	TestSeed           uint64  `envconfig:"SODKIT_DATASET_TEST_SEED" default:"1" toml:"test_seed"`
}

// Split holds training and test samples with their labels.
type Split struct {
	XTrain *mat.Dense
	XTest  *mat.Dense
	YTrain []int
	YTest  []int
}

// TrainTest generates both halves of the split from independent seeds.
func (c Config) TrainTest() (Split, error) {
	if c.NFeatures <= 0 {
		return Split{}, fmt.Errorf("%w: n_features must be positive, got %d", ErrInvalidOption, c.NFeatures)
	}
	centers := mat.NewDense(1, c.NFeatures, nil)

	XTrain, yTrain, err := MakeBlobs(
		WithCenters(centers),
		WithNFeatures(c.NFeatures),
		WithContamination(c.TrainContamination),
		WithNSamples(c.NSamples),
		WithRandomState(c.TrainSeed),
	)
	if err != nil {
		return Split{}, fmt.Errorf("unable to generate train set: %w", err)
	}

	XTest, yTest, err := MakeBlobs(
		WithCenters(centers),
		WithNFeatures(c.NFeatures),
		WithContamination(c.TestContamination),
		WithNSamples(c.NSamples),
		WithRandomState(c.TestSeed),
	)
	if err != nil {
		return Split{}, fmt.Errorf("unable to generate test set: %w", err)
	}

	return Split{XTrain: XTrain, XTest: XTest, YTrain: yTrain, YTest: yTest}, nil
}
