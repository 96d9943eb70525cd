// Package domain models green-weight estimation for southern pines.
//
// # Measurements
//
// Every estimate is a closed-form regression of three field measurements:
//
//	dbh     diameter at breast height (4.5 ft above ground), inches
//	height  total tree height, feet
//	mtop    merchantable top diameter, inches; wood below this diameter
//	        is not counted
//
// Results are green (fresh-cut, moisture included) weight in pounds. Inputs
// are not range checked. A zero dbh, or a 4-inch volume of zero in the
// longleaf equations, yields [ErrNumericDomain] instead of NaN or Inf.
//
// # Species
//
//	Slash:    0.1763·dbh^1.9604·h^0.9761 − 0.1167·(mtop^3.6422/dbh^1.5441)·(h−4.5)
//	Loblolly: regional, see below
//	Longleaf: weight to a 4-inch top, corrected by taper above 4 inches or
//	          by the 4-to-5 inch volume ratio at or below 4 inches
//
// # Loblolly regions
//
// Loblolly coefficients differ by physiographic region. Region keys are case
// insensitive and several are synonyms for one fitted curve:
//
//	lcp                    lower coastal plain     volume-linear
//	ucp                    upper coastal plain     volume-linear
//	pied, piedmont         piedmont                volume-linear
//	nla, texas, louisiana  north Louisiana/Texas   log-linear
//
// Volume-linear regions evaluate a·dbh^b·h^c + d·(mtop^e/dbh^f)·(h−4.5).
// Log-linear regions evaluate exp(a + b·ln dbh + c·ln h)·(1 − d·(mtop^e/dbh^f)).
// Any other key yields [ErrInvalidRegion]; there is no default region.
//
// # ID Generation
//
// Estimate IDs are "<species>-" followed by a truncated SHA-256 of the
// species, canonical region, stand, tree ID and measurements. See [generateID].
package domain
