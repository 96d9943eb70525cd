package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

const lbsPerTon = 2000

// ParseRawEvent deserializes a RawEvent's value into a TreeRecord.
// Species and region are normalized to lower case; their validity is checked
// by EstimateRecord.
func ParseRawEvent(raw RawEvent) (TreeRecord, error) {
	var rec TreeRecord
	if err := json.Unmarshal(raw.Value, &rec); err != nil {
		return TreeRecord{}, fmt.Errorf("parse raw event: %w", err)
	}
	rec.Species = strings.ToLower(strings.TrimSpace(rec.Species))
	rec.Region = strings.ToLower(strings.TrimSpace(rec.Region))
	if rec.TreeID == "" && len(raw.Key) > 0 {
		rec.TreeID = string(raw.Key)
	}
	return rec, nil
}

// EstimateRecord evaluates the species regression for a record and stamps the
// result with the current clock time.
func EstimateRecord(rec TreeRecord) (WeightEstimate, error) {
	species, err := ParseSpecies(rec.Species)
	if err != nil {
		return WeightEstimate{}, err
	}

	region := ""
	provisional := false
	if species.NeedsRegion() {
		r, err := ParseRegion(rec.Region)
		if err != nil {
			return WeightEstimate{}, err
		}
		// Canonical name, so synonyms produce the same ID.
		region = r.String()
		provisional = r.Provisional()
	}

	est := NewEstimator(rec.DBH, rec.Height, rec.MTop)
	lbs, err := est.GreenWeight(species, region)
	if err != nil {
		return WeightEstimate{}, fmt.Errorf("estimate tree %q: %w", rec.TreeID, err)
	}

	return WeightEstimate{
		ID:              generateID(species, region, rec),
		TreeID:          rec.TreeID,
		Stand:           rec.Stand,
		Species:         species,
		Region:          region,
		DBH:             rec.DBH,
		Height:          rec.Height,
		MTop:            rec.MTop,
		GreenWeightLbs:  lbs,
		GreenWeightTons: lbs / lbsPerTon,
		Method:          methodFor(species, region, est),
		Provisional:     provisional,
		ProcessedAt:     clock.Now().UTC(),
	}, nil
}

// methodFor assumes species and region have already been validated.
func methodFor(s Species, region string, est Estimator) Method {
	switch s {
	case SpeciesSlash:
		return MethodSlash
	case SpeciesLongleaf:
		if est.LongleafUsesTaper() {
			return MethodLongleafTaper
		}
		return MethodLongleafVolumeRatio
	default:
		r, _ := ParseRegion(region)
		if r.Family() == FamilyLogLinear {
			return MethodLoblollyLogLinear
		}
		return MethodLoblollyVolumeLinear
	}
}

// generateID produces a deterministic ID from the record's inputs, so replays
// of the same measurement land on the same downstream key.
func generateID(s Species, region string, rec TreeRecord) string {
	key := fmt.Sprintf("%s|%s|%s|%s|%.4f|%.4f|%.4f", s, region, rec.Stand, rec.TreeID, rec.DBH, rec.Height, rec.MTop)
	sum := sha256.Sum256([]byte(key))
	return string(s) + "-" + hex.EncodeToString(sum[:8])
}

// ErrorKind classifies an estimation failure for metrics labels and API
// responses. Anything that is not a species, region or numeric failure is
// reported as "parse".
func ErrorKind(err error) string {
	switch {
	case errors.Is(err, ErrInvalidSpecies):
		return "invalid_species"
	case errors.Is(err, ErrInvalidRegion):
		return "invalid_region"
	case errors.Is(err, ErrNumericDomain):
		return "numeric_domain"
	default:
		return "parse"
	}
}
