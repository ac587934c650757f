// Package conformance holds the behaviour every detector shares, as testify
// suites that detector packages run against their own constructors.
package conformance

import (
	"github.com/go-sod/sodkit/internal/datasets"
)

// Fixture is a training set with few outliers and a test set with more.
type Fixture = datasets.Split

var fixtureConfig = datasets.Config{
	NSamples:           100,
	NFeatures:          2,
	TrainContamination: 0.01,
	TestContamination:  0.1,
	TrainSeed:          0,
	TestSeed:           1,
}

// PrepareData builds the shared fixture: two 100x2 blob datasets centred at
// the origin. The result is identical on every call.
func PrepareData() (Fixture, error) {
	return fixtureConfig.TrainTest()
}
