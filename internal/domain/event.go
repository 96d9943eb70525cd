package domain

import (
	"context"
	"time"
)

// TreeRecord is the JSON measurement record published to the source topic.
type TreeRecord struct {
	TreeID  string  `json:"tree_id"`
	Stand   string  `json:"stand,omitempty"`
	Species string  `json:"species"`
	Region  string  `json:"region,omitempty"` // loblolly only
	DBH     float64 `json:"dbh"`
	Height  float64 `json:"height"`
	MTop    float64 `json:"mtop"`
}

// RawEvent represents an unprocessed message from the source topic.
type RawEvent struct {
	Key       []byte
	Value     []byte
	Headers   map[string]string
	Topic     string
	Partition int
	Offset    int64
	Timestamp time.Time
	Commit    func(ctx context.Context) error
}

// Method names the regression form that produced an estimate.
type Method string

// Regression methods recorded on each estimate.
const (
	MethodSlash                Method = "slash"
	MethodLoblollyVolumeLinear Method = "loblolly-volume-linear"
	MethodLoblollyLogLinear    Method = "loblolly-log-linear"
	MethodLongleafTaper        Method = "longleaf-taper"
	MethodLongleafVolumeRatio  Method = "longleaf-volume-ratio"
)

// WeightEstimate is the enriched record written to the sink topic.
type WeightEstimate struct {
	ID              string    `json:"id"`
	TreeID          string    `json:"tree_id,omitempty"`
	Stand           string    `json:"stand,omitempty"`
	Species         Species   `json:"species"`
	Region          string    `json:"region,omitempty"`
	DBH             float64   `json:"dbh"`
	Height          float64   `json:"height"`
	MTop            float64   `json:"mtop"`
	GreenWeightLbs  float64   `json:"green_weight_lbs"`
	GreenWeightTons float64   `json:"green_weight_tons"`
	Method          Method    `json:"method"`
	Provisional     bool      `json:"provisional,omitempty"` // region coefficients are placeholders
	ProcessedAt     time.Time `json:"processed_at"`
}
