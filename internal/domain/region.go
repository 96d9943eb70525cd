package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrInvalidRegion is returned when a loblolly region key is not recognized.
var ErrInvalidRegion = errors.New("invalid region")

// Region is a loblolly regression region. Synonym keys resolve to the same Region.
type Region int

const (
	// RegionLCP is the Lower Coastal Plain.
	RegionLCP Region = iota + 1
	// RegionUCP is the Upper Coastal Plain.
	RegionUCP
	// RegionPiedmont also answers to "pied".
	RegionPiedmont
	// RegionNLA covers north Louisiana and east Texas ("texas", "louisiana").
	RegionNLA
)

// Family is the regression form a region's coefficients are fitted to.
type Family int

const (
	// FamilyVolumeLinear: a·dbh^b·h^c + d·(mtop^e/dbh^f)·(h−4.5)
	FamilyVolumeLinear Family = iota + 1
	// FamilyLogLinear: exp(a + b·ln dbh + c·ln h)·(1 − d·(mtop^e/dbh^f))
	FamilyLogLinear
)

func (f Family) String() string {
	switch f {
	case FamilyVolumeLinear:
		return "volume-linear"
	case FamilyLogLinear:
		return "log-linear"
	default:
		return "unknown"
	}
}

// Coefficients is the six-term regression tuple (a..f) shared by both families.
type Coefficients struct {
	A, B, C, D, E, F float64
}

type regionRow struct {
	name        string
	family      Family
	coef        Coefficients
	provisional bool
}

// regionTable is read-only after init.
//
// TODO: the Piedmont and NLA rows are provisional fits; replace them with the
// published regional coefficients once they are sourced, then clear the flag.
var regionTable = map[Region]regionRow{
	RegionLCP: {
		name:   "lcp",
		family: FamilyVolumeLinear,
		coef:   Coefficients{A: 0.0740959, B: 1.829983, C: 1.247669, D: -0.123329, E: 3.523107, F: 1.449947},
	},
	RegionUCP: {
		name:   "ucp",
		family: FamilyVolumeLinear,
		coef:   Coefficients{A: 0.141534, B: 1.917146, C: 1.038452, D: -0.0932063, E: 3.589155, F: 1.413061},
	},
	RegionPiedmont: {
		name:   "piedmont",
		family: FamilyVolumeLinear,
		coef:   Coefficients{A: 0.101427, B: 1.872331, C: 1.143008, D: -0.108124, E: 3.556131, F: 1.431504},

		provisional: true,
	},
	RegionNLA: {
		name:   "nla",
		family: FamilyLogLinear,
		coef:   Coefficients{A: -2.07146, B: 1.950112, C: 1.049873, D: 0.641275, E: 3.500217, F: 3.401986},

		provisional: true,
	},
}

// regionKeys maps every accepted (lower-case) key to its region.
var regionKeys = map[string]Region{
	"lcp":       RegionLCP,
	"ucp":       RegionUCP,
	"pied":      RegionPiedmont,
	"piedmont":  RegionPiedmont,
	"nla":       RegionNLA,
	"texas":     RegionNLA,
	"louisiana": RegionNLA,
}

// ParseRegion resolves a case-insensitive region key.
func ParseRegion(name string) (Region, error) {
	r, ok := regionKeys[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return 0, fmt.Errorf("%w %q: accepted values are %s", ErrInvalidRegion, name, strings.Join(RegionNames(), ", "))
	}
	return r, nil
}

// RegionNames returns every accepted region key in sorted order.
func RegionNames() []string {
	names := make([]string, 0, len(regionKeys))
	for k := range regionKeys {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// RegionNamesByFamily groups the accepted keys by regression family.
func RegionNamesByFamily() map[Family][]string {
	out := make(map[Family][]string, 2)
	for _, k := range RegionNames() {
		fam := regionKeys[k].Family()
		out[fam] = append(out[fam], k)
	}
	return out
}

func (r Region) String() string {
	if row, ok := regionTable[r]; ok {
		return row.name
	}
	return "unknown"
}

// Family reports which regression form the region uses.
func (r Region) Family() Family {
	return regionTable[r].family
}

// Coefficients returns the region's regression tuple.
func (r Region) Coefficients() Coefficients {
	return regionTable[r].coef
}

// Provisional reports whether the region's coefficients are placeholder fits
// rather than published values. Estimates from these rows are flagged.
func (r Region) Provisional() bool {
	return regionTable[r].provisional
}
