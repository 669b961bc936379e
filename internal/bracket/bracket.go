// Package bracket defines the per-metric bracket tables and the
// classification and coloring logic derived from them. One table per
// metric is the single source of truth for both the distribution counts
// and the choropleth fill colors.
package bracket

import (
	"math"

	"github.com/rotisserie/eris"
)

// NoDataColor fills areas whose vector is missing for the active key.
const NoDataColor = "#d9d9d9"

// Bracket is a half-open value interval [Lower, Upper) with a display
// label and fill color. Upper == +Inf marks the unbounded last bracket.
type Bracket struct {
	Label string  `json:"label"`
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
	Color string  `json:"color"`
}

// Table is an ordered bracket sequence for one metric. A valid table is
// contiguous and non-overlapping, covers [0, +Inf), and ends unbounded.
type Table []Bracket

// Validate checks the table invariant. A malformed table is a programming
// error; construction sites should use MustValidate and fail fast.
func (t Table) Validate() error {
	if len(t) == 0 {
		return eris.New("bracket: empty table")
	}
	if t[0].Lower != 0 {
		return eris.Errorf("bracket: table must start at 0, got %v", t[0].Lower)
	}
	for i, b := range t {
		if b.Label == "" {
			return eris.Errorf("bracket: bracket %d has no label", i)
		}
		if b.Color == "" {
			return eris.Errorf("bracket: bracket %q has no color", b.Label)
		}
		if b.Upper <= b.Lower {
			return eris.Errorf("bracket: bracket %q is empty or inverted", b.Label)
		}
		if i > 0 && b.Lower != t[i-1].Upper {
			return eris.Errorf("bracket: gap or overlap between %q and %q", t[i-1].Label, b.Label)
		}
	}
	if !math.IsInf(t[len(t)-1].Upper, 1) {
		return eris.New("bracket: last bracket must be unbounded")
	}
	return nil
}

// MustValidate returns the table or panics on a malformed one.
func MustValidate(t Table) Table {
	if err := t.Validate(); err != nil {
		panic(err)
	}
	return t
}

// IndexOf returns the unique bracket holding v. Boundaries are
// half-open, so a value equal to a boundary lands in the upper bracket.
// A value outside [0, +Inf) violates the table contract and panics.
func (t Table) IndexOf(v float64) int {
	for i, b := range t {
		if v >= b.Lower && (v < b.Upper || math.IsInf(b.Upper, 1)) {
			return i
		}
	}
	panic(eris.Errorf("bracket: no bracket for value %v", v))
}

// ColorOf maps a value to its fill color from the same table that drives
// classification, so polygon fills and distribution segments can never
// disagree.
func (t Table) ColorOf(v float64) string {
	return t[t.IndexOf(v)].Color
}
