package estimator

import (
	"errors"
	"fmt"
	"testing"
)

func TestNotFittedError(t *testing.T) {
	err := NewNotFittedError("LOF", "Predict")

	if !errors.Is(err, ErrNotFitted) {
		t.Errorf("errors.Is(%v, ErrNotFitted) = false", err)
	}
	wrapped := fmt.Errorf("scoring: %w", err)
	if !errors.Is(wrapped, ErrNotFitted) {
		t.Errorf("errors.Is(%v, ErrNotFitted) = false", wrapped)
	}

	var nf *NotFittedError
	if !errors.As(wrapped, &nf) {
		t.Fatalf("errors.As(%v) = false", wrapped)
	}
	if nf.Estimator != "LOF" || nf.Op != "Predict" {
		t.Errorf("got %+v", nf)
	}
	want := "this LOF instance is not fitted yet, call Fit before Predict"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
	if errors.Is(err, ErrEmptyInput) {
		t.Errorf("not fitted error matches ErrEmptyInput")
	}
}
