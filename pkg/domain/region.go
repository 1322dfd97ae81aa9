package domain

// Region is a byte span [Start, End) of a document.
// A Null region carries no input and is never replaced.
type Region struct {
	Start int  `json:"start"`
	End   int  `json:"end"`
	Null  bool `json:"-"`
}

// NullRegion is the region used when the source is none.
var NullRegion = Region{Null: true}

// Len returns the number of bytes covered by the region.
func (r Region) Len() int {
	if r.Null || r.End < r.Start {
		return 0
	}
	return r.End - r.Start
}

// IsEmpty reports whether the region is a cursor (zero length) or null.
func (r Region) IsEmpty() bool {
	return r.Len() == 0
}

// Shift moves the region by delta bytes.
func (r Region) Shift(delta int) Region {
	if r.Null {
		return r
	}
	return Region{Start: r.Start + delta, End: r.End + delta}
}
