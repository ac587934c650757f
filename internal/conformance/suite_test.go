package conformance

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/mat"

	"github.com/go-sod/sodkit/internal/estimator"
)

var errNotReady = errors.New("model is not ready")

// sloppy answers queries before Fit with a generic error and can return a
// copy of itself from Fit.
type sloppy struct {
	*norm
	copyOnFit bool
}

func newSloppy(copyOnFit bool) func() (*sloppy, error) {
	return func() (*sloppy, error) {
		n, err := newNorm()
		if err != nil {
			return nil, err
		}
		return &sloppy{norm: n.(*norm), copyOnFit: copyOnFit}, nil
	}
}

func (s *sloppy) Fit(X mat.Matrix) (estimator.Estimator, error) {
	if _, err := s.norm.Fit(X); err != nil {
		return nil, err
	}
	if s.copyOnFit {
		return &sloppy{norm: s.norm}, nil
	}
	return s, nil
}

func (s *sloppy) Predict(X mat.Matrix) ([]int, error) {
	if !s.IsFitted() {
		return nil, errNotReady
	}
	return s.norm.Predict(X)
}

func (s *sloppy) Score(X mat.Matrix) (float64, error) {
	if !s.IsFitted() {
		return math.NaN(), errNotReady
	}
	return s.norm.Score(X)
}

// recordingT collects assertion failures instead of failing the test.
type recordingT struct {
	failures []string
}

func (r *recordingT) Errorf(format string, args ...interface{}) {
	r.failures = append(r.failures, fmt.Sprintf(format, args...))
}

func TestOutlierDetectorSuite_Rejects(t *testing.T) {
	asDetector := func(newSUT func() (*sloppy, error)) func() (estimator.OutlierDetector, error) {
		return func() (estimator.OutlierDetector, error) { return newSUT() }
	}

	tests := []struct {
		name   string
		newSUT func() (estimator.OutlierDetector, error)
		run    func(*OutlierDetectorSuite)
		fails  bool
	}{
		{name: "conforming", newSUT: newNorm, run: (*OutlierDetectorSuite).TestPredictNotFitted},
		{name: "generic_error_before_fit", newSUT: asDetector(newSloppy(false)), run: (*OutlierDetectorSuite).TestPredictNotFitted, fails: true},
		{name: "fit_returns_copy", newSUT: asDetector(newSloppy(true)), run: (*OutlierDetectorSuite).TestFit, fails: true},
	}
	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			s := &OutlierDetectorSuite{NewSUT: test.newSUT}
			s.SetT(t)
			s.SetupSuite()
			s.SetupTest()

			rec := &recordingT{}
			s.Assertions = assert.New(rec)
			test.run(s)
			assert.Equal(t, test.fails, len(rec.failures) > 0, "recorded failures: %v", rec.failures)
		})
	}
}

func TestModelSuite_Rejects(t *testing.T) {
	newSUT := newSloppy(false)
	s := &ModelSuite{NewSUT: func() (estimator.Model, error) { return newSUT() }}
	s.SetT(t)
	s.SetupSuite()
	s.SetupTest()

	rec := &recordingT{}
	s.Assertions = assert.New(rec)
	s.TestScoreNotFitted()
	// neither ErrNotFitted, a NotFittedError nor a zero score
	assert.Len(t, rec.failures, 3)
}
