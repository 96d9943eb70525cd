package domain

import (
	"errors"
	"fmt"
	"math"
)

// ErrNumericDomain is returned when a regression cannot be evaluated for the
// given measurements, e.g. dbh = 0 or a collapsing 4-inch volume.
var ErrNumericDomain = errors.New("numeric domain error")

// Measurements are the field inputs of a single tree.
type Measurements struct {
	DBH    float64 // inches at 4.5 ft
	Height float64 // total height, feet
	MTop   float64 // merchantable top diameter, inches
}

// Estimator computes green weight in pounds from a fixed measurement set.
// Construction does not validate ranges; out-of-domain inputs produce extreme
// values or ErrNumericDomain.
type Estimator struct {
	m Measurements
}

// NewEstimator captures the measurements of one tree.
func NewEstimator(dbh, height, mtop float64) Estimator {
	return Estimator{m: Measurements{DBH: dbh, Height: height, MTop: mtop}}
}

// Measurements returns the estimator's inputs.
func (e Estimator) Measurements() Measurements { return e.m }

// SlashGreenWeight returns slash pine green weight in pounds.
func (e Estimator) SlashGreenWeight() (float64, error) {
	dbh, h, mtop := e.m.DBH, e.m.Height, e.m.MTop
	wt := 0.1763*math.Pow(dbh, 1.9604)*math.Pow(h, 0.9761) -
		0.1167*(math.Pow(mtop, 3.6422)/math.Pow(dbh, 1.5441))*(h-4.5)
	return finite("slash", wt)
}

// LoblollyGreenWeight returns loblolly pine green weight in pounds for a
// case-insensitive region key. Unknown keys return ErrInvalidRegion.
func (e Estimator) LoblollyGreenWeight(region string) (float64, error) {
	r, err := ParseRegion(region)
	if err != nil {
		return 0, err
	}
	return e.LoblollyGreenWeightFor(r)
}

// LoblollyGreenWeightFor is LoblollyGreenWeight for an already parsed region.
func (e Estimator) LoblollyGreenWeightFor(r Region) (float64, error) {
	row, ok := regionTable[r]
	if !ok {
		return 0, fmt.Errorf("%w %d", ErrInvalidRegion, int(r))
	}
	dbh, h, mtop := e.m.DBH, e.m.Height, e.m.MTop
	c := row.coef
	topRatio := math.Pow(mtop, c.E) / math.Pow(dbh, c.F)

	var wt float64
	switch row.family {
	case FamilyVolumeLinear:
		wt = c.A*math.Pow(dbh, c.B)*math.Pow(h, c.C) + c.D*topRatio*(h-4.5)
	case FamilyLogLinear:
		wt = math.Exp(c.A+c.B*math.Log(dbh)+c.C*math.Log(h)) * (1 - c.D*topRatio)
	default:
		return 0, fmt.Errorf("%w: region %s has no regression family", ErrInvalidRegion, r)
	}
	return finite("loblolly "+r.String(), wt)
}

// LongleafGreenWeight returns longleaf pine green weight in pounds.
//
// Weight is referenced to a 4-inch top. Above 4 inches a taper correction is
// applied directly; at or below 4 inches the 4-to-5 inch volume ratio is
// scaled by a merchantability factor. The two branches are not continuous at
// mtop = 4.
func (e Estimator) LongleafGreenWeight() (float64, error) {
	dbh, h, mtop := e.m.DBH, e.m.Height, e.m.MTop
	d2h := dbh * dbh * h

	// The conversion blocks FMA fusion so v4 == 0 is hit identically on every arch.
	v4 := -0.84281 + float64(0.00216*d2h)
	v5 := v4 * (1 - 0.682125*(math.Pow(5, 4.543282)/math.Pow(dbh, 4.369255)))
	coef := (0.00545415 * (mtop*mtop + 16) / 2 * (4 - mtop)) * (1 / (0.00545415 * (16 + 25) / 2))
	wt4 := -36.83043 + 0.15608*d2h

	if mtop > 4 {
		return finite("longleaf", wt4*(1-0.647787*(math.Pow(mtop, 4.321359)/math.Pow(dbh, 4.122653))))
	}
	if v4 == 0 {
		return 0, fmt.Errorf("%w: longleaf 4-inch volume is zero (dbh=%g height=%g)", ErrNumericDomain, dbh, h)
	}
	return finite("longleaf", wt4*(1+coef*((v4-v5)/v4)))
}

// LongleafUsesTaper reports whether LongleafGreenWeight takes the taper branch.
func (e Estimator) LongleafUsesTaper() bool { return e.m.MTop > 4 }

// GreenWeight dispatches to the species regression. region is only consulted
// for loblolly.
func (e Estimator) GreenWeight(s Species, region string) (float64, error) {
	switch s {
	case SpeciesSlash:
		return e.SlashGreenWeight()
	case SpeciesLoblolly:
		return e.LoblollyGreenWeight(region)
	case SpeciesLongleaf:
		return e.LongleafGreenWeight()
	default:
		return 0, fmt.Errorf("%w %q", ErrInvalidSpecies, s)
	}
}

func finite(what string, v float64) (float64, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: %s weight evaluated to %v", ErrNumericDomain, what, v)
	}
	return v, nil
}
