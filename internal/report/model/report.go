package model

import (
	"time"

	"github.com/google/uuid"
)

func NewReport(detector string, contamination float64, createdAt time.Time) Report {
	return Report{
		ID:            uuid.New(),
		Detector:      detector,
		Contamination: contamination,
		CreatedAt:     createdAt,
	}
}

// Report is the outcome of one detector evaluated on a labelled test set.
type Report struct {
	ID            uuid.UUID     `json:"id"`
	Detector      string        `json:"detector"`
	Contamination float64       `json:"contamination"`
	// Dataset fingerprints the train and test matrices the report was made on.
	Dataset       string        `json:"dataset"`
	Threshold     float64       `json:"threshold"`
	AUC           float64       `json:"auc"`
	Precision     float64       `json:"precision"`
	Recall        float64       `json:"recall"`
	F1            float64       `json:"f1"`
	NSamples      int           `json:"nSamples"`
	NOutliers     int           `json:"nOutliers"`
	Predicted     int           `json:"predicted"`
	FitDuration   time.Duration `json:"fitDuration"`
	CreatedAt     time.Time     `json:"createdAt"`
}
