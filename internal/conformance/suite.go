package conformance

import (
	"math"

	"github.com/stretchr/testify/suite"

	"github.com/go-sod/sodkit/internal/estimator"
)

// ModelSuite checks the Score contract.
type ModelSuite struct {
	suite.Suite

	NewSUT func() (estimator.Model, error)

	fixture Fixture
	sut     estimator.Model
}

func (s *ModelSuite) SetupSuite() {
	fixture, err := PrepareData()
	s.Require().NoError(err)
	s.fixture = fixture
}

func (s *ModelSuite) SetupTest() {
	sut, err := s.NewSUT()
	s.Require().NoError(err)
	s.sut = sut
}

func (s *ModelSuite) TestScore() {
	_, err := s.sut.Fit(s.fixture.XTrain)
	s.Require().NoError(err)

	score, err := s.sut.Score(s.fixture.XTest)
	s.Require().NoError(err)
	s.False(math.IsNaN(score))
}

func (s *ModelSuite) TestScoreNotFitted() {
	score, err := s.sut.Score(s.fixture.XTest)
	s.ErrorIs(err, estimator.ErrNotFitted)
	var nf *estimator.NotFittedError
	s.ErrorAs(err, &nf)
	s.Zero(score)
}

// OutlierDetectorSuite checks the detector contract: fitting, labelling,
// scoring and plotting, both after Fit and before it.
type OutlierDetectorSuite struct {
	suite.Suite

	NewSUT func() (estimator.OutlierDetector, error)

	fixture Fixture
	sut     estimator.OutlierDetector
}

func (s *OutlierDetectorSuite) SetupSuite() {
	fixture, err := PrepareData()
	s.Require().NoError(err)
	s.fixture = fixture
}

func (s *OutlierDetectorSuite) SetupTest() {
	sut, err := s.NewSUT()
	s.Require().NoError(err)
	s.sut = sut
}

// fit switches on novelty detection when the detector supports it, then fits
// on the training set, so queries on the test set are legal.
func (s *OutlierDetectorSuite) fit() {
	if nc, ok := s.sut.(estimator.NoveltyConfigurable); ok {
		nc.SetNovelty(true)
	}
	_, err := s.sut.Fit(s.fixture.XTrain)
	s.Require().NoError(err)
}

func (s *OutlierDetectorSuite) TestFit() {
	fitted, err := s.sut.Fit(s.fixture.XTrain)
	s.Require().NoError(err)
	s.Same(s.sut, fitted)
}

func (s *OutlierDetectorSuite) TestFitPredict() {
	y, err := s.sut.FitPredict(s.fixture.XTrain)
	s.Require().NoError(err)
	s.Len(y, len(s.fixture.YTrain))
}

func (s *OutlierDetectorSuite) TestPredict() {
	s.fit()
	y, err := s.sut.Predict(s.fixture.XTest)
	s.Require().NoError(err)
	s.Len(y, len(s.fixture.YTest))
}

func (s *OutlierDetectorSuite) TestPredictNotFitted() {
	_, err := s.sut.Predict(s.fixture.XTest)
	s.ErrorIs(err, estimator.ErrNotFitted)
}

func (s *OutlierDetectorSuite) TestDecisionFunction() {
	s.fit()
	d, err := s.sut.DecisionFunction(s.fixture.XTest)
	s.Require().NoError(err)
	s.Len(d, len(s.fixture.YTest))
}

func (s *OutlierDetectorSuite) TestDecisionFunctionNotFitted() {
	_, err := s.sut.DecisionFunction(s.fixture.XTest)
	s.ErrorIs(err, estimator.ErrNotFitted)
}

func (s *OutlierDetectorSuite) TestScoreSamples() {
	s.fit()
	scores, err := s.sut.ScoreSamples(s.fixture.XTest)
	s.Require().NoError(err)
	s.Len(scores, len(s.fixture.YTest))
}

func (s *OutlierDetectorSuite) TestScoreSamplesNotFitted() {
	_, err := s.sut.ScoreSamples(s.fixture.XTest)
	s.ErrorIs(err, estimator.ErrNotFitted)
}

func (s *OutlierDetectorSuite) TestAnomalyScore() {
	s.fit()
	scores, err := s.sut.AnomalyScore(s.fixture.XTest)
	s.Require().NoError(err)
	s.Len(scores, len(s.fixture.YTest))
}

func (s *OutlierDetectorSuite) TestAnomalyScoreNotFitted() {
	_, err := s.sut.AnomalyScore(s.fixture.XTest)
	s.ErrorIs(err, estimator.ErrNotFitted)
}

func (s *OutlierDetectorSuite) TestPlotAnomalyScore() {
	s.fit()
	p, err := s.sut.PlotAnomalyScore(s.fixture.XTest)
	s.Require().NoError(err)
	s.NotNil(p)
}

func (s *OutlierDetectorSuite) TestPlotAnomalyScoreNotFitted() {
	_, err := s.sut.PlotAnomalyScore(s.fixture.XTest)
	s.ErrorIs(err, estimator.ErrNotFitted)
}

func (s *OutlierDetectorSuite) TestPlotROCCurve() {
	s.fit()
	p, err := s.sut.PlotROCCurve(s.fixture.XTest, s.fixture.YTest)
	s.Require().NoError(err)
	s.NotNil(p)
}

func (s *OutlierDetectorSuite) TestPlotROCCurveNotFitted() {
	_, err := s.sut.PlotROCCurve(s.fixture.XTest, s.fixture.YTest)
	s.ErrorIs(err, estimator.ErrNotFitted)
}

func (s *OutlierDetectorSuite) TestCheckEstimator() {
	s.NoError(CheckEstimator(s.NewSUT, s.fixture))
}
