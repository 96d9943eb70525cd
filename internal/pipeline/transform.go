package pipeline

import (
	"context"
	"log/slog"

	"github.com/couchcryptid/pine-weight-etl/internal/domain"
)

// EstimateTransformer implements Transformer by parsing a measurement record
// and evaluating the species regression.
type EstimateTransformer struct {
	logger *slog.Logger
}

// NewTransformer creates an EstimateTransformer.
func NewTransformer(logger *slog.Logger) *EstimateTransformer {
	return &EstimateTransformer{logger: logger}
}

func (t *EstimateTransformer) Transform(_ context.Context, raw domain.RawEvent) (domain.WeightEstimate, error) {
	rec, err := domain.ParseRawEvent(raw)
	if err != nil {
		return domain.WeightEstimate{}, err
	}

	est, err := domain.EstimateRecord(rec)
	if err != nil {
		return domain.WeightEstimate{}, err
	}

	if est.Provisional {
		t.logger.Warn("estimate uses provisional region coefficients",
			"tree_id", est.TreeID,
			"region", est.Region,
		)
	}
	t.logger.Debug("tree estimated",
		"tree_id", est.TreeID,
		"species", est.Species,
		"method", est.Method,
		"green_weight_lbs", est.GreenWeightLbs,
	)
	return est, nil
}
