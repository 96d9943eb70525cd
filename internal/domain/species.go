package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidSpecies is returned for species names outside the supported pines.
var ErrInvalidSpecies = errors.New("invalid species")

// Species identifies which regression set to evaluate.
type Species string

// Supported species.
const (
	SpeciesLoblolly Species = "loblolly"
	SpeciesSlash    Species = "slash"
	SpeciesLongleaf Species = "longleaf"
)

// AllSpecies lists the supported species in display order.
var AllSpecies = []Species{SpeciesLoblolly, SpeciesSlash, SpeciesLongleaf}

// ParseSpecies resolves a case-insensitive species name.
func ParseSpecies(name string) (Species, error) {
	s := Species(strings.ToLower(strings.TrimSpace(name)))
	switch s {
	case SpeciesLoblolly, SpeciesSlash, SpeciesLongleaf:
		return s, nil
	}
	return "", fmt.Errorf("%w %q: accepted values are loblolly, slash, longleaf", ErrInvalidSpecies, name)
}

// NeedsRegion reports whether the species regression depends on a region.
func (s Species) NeedsRegion() bool { return s == SpeciesLoblolly }
