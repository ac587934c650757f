package estimator

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFitted is matched by every error returned when an operation needs
	// a fitted estimator.
	ErrNotFitted = errors.New("estimator: not fitted")
	// ErrEmptyInput indicates a matrix without rows or columns.
	ErrEmptyInput = errors.New("estimator: input must have at least one row and one column")
	// ErrFeatureMismatch indicates a query with a different number of features
	// than the training data.
	ErrFeatureMismatch = errors.New("estimator: number of features does not match training data")
	// ErrLengthMismatch indicates labels and samples of different lengths.
	ErrLengthMismatch = errors.New("estimator: number of labels does not match number of samples")
	// ErrNoveltyDisabled indicates a query on unseen data while novelty mode is off.
	ErrNoveltyDisabled = errors.New("estimator: novelty detection is disabled")
	// ErrInvalidParam indicates a hyperparameter outside of its domain.
	ErrInvalidParam = errors.New("estimator: invalid parameter")
)

// NotFittedError reports the estimator and the operation that was invoked
// before Fit.
type NotFittedError struct {
	Estimator string
	Op        string
}

func (e *NotFittedError) Error() string {
	return fmt.Sprintf(
		"this %s instance is not fitted yet, call Fit before %s",
		e.Estimator, e.Op,
	)
}

// Is makes errors.Is(err, ErrNotFitted) hold.
func (e *NotFittedError) Is(target error) bool {
	return target == ErrNotFitted
}

// NewNotFittedError returns a *NotFittedError for op on the named estimator.
func NewNotFittedError(estimator, op string) error {
	return &NotFittedError{Estimator: estimator, Op: op}
}
