// Package design defines the data model for layout density analysis: a
// Design block with precomputed area and density metrics, and a Library
// holding blocks in insertion order.
//
// Coordinates are micrometers (µm); densities are polygons per square
// millimeter, so area derivation carries a µm² → mm² conversion.
package design

// um2PerMM2 converts µm² to mm² (1 mm = 1000 µm).
const um2PerMM2 = 1_000_000.0

// Design represents one rectangular layout block with its polygon
// statistics. AreaMM2 and Density are derived once by New and are not
// recomputed; treat a Design as immutable after construction.
//
// Names are display identifiers only and are not required to be unique.
// The checksum is an opaque digest carried through from the listing; it is
// never recomputed or verified.
type Design struct {
	Name      string  `json:"name"`
	LX        float64 `json:"lx"` // lower-left x, µm
	LY        float64 `json:"ly"` // lower-left y, µm
	UX        float64 `json:"ux"` // upper-right x, µm
	UY        float64 `json:"uy"` // upper-right y, µm
	PolyCount int     `json:"poly_count"`
	Checksum  string  `json:"checksum"`

	AreaMM2 float64 `json:"area_mm2"`
	Density float64 `json:"density"` // polygons per mm²
}

// New constructs a Design and precomputes its derived metrics.
//
// No geometry validation is performed: corners may be inverted or
// coincident. A degenerate block yields zero area and zero density; an
// inverted block yields a negative area and, consequently, a negative
// density. The zero-area guard is an exact float comparison on purpose —
// only a block whose area is exactly zero reports zero density.
func New(name string, lx, ly, ux, uy float64, polyCount int, checksum string) Design {
	d := Design{
		Name:      name,
		LX:        lx,
		LY:        ly,
		UX:        ux,
		UY:        uy,
		PolyCount: polyCount,
		Checksum:  checksum,
	}
	d.AreaMM2 = (ux - lx) * (uy - ly) / um2PerMM2
	if d.AreaMM2 != 0 {
		d.Density = float64(polyCount) / d.AreaMM2
	}
	return d
}
