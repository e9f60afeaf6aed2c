// Package report sorts design libraries by polygon density and renders the
// listing in the tool's fixed text format.
package report

import (
	"fmt"
	"io"
	"sort"

	"github.com/matzehuels/densitool/pkg/design"
)

// Header is the first line of every density report.
const Header = "Designs sorted by density (high → low):"

// rowFormat fixes the report columns: left-justified name, density at six
// decimals, area at two, right-justified polygon count.
const rowFormat = "%-10s density=%10.6f poly/mm²   area=%12.2f mm²   polys=%6d\n"

// ByDensity returns the library's designs sorted by density, highest first.
// The sort is stable: designs with equal density keep their insertion order.
// The library itself is left untouched.
//
// There is no special-casing of negative densities; inverted blocks sort
// below zero-area blocks, which sort below everything with a positive
// density.
func ByDensity(lib *design.Library) []design.Design {
	designs := lib.Designs()
	sort.SliceStable(designs, func(i, j int) bool {
		return designs[i].Density > designs[j].Density
	})
	return designs
}

// Write renders the report header and one row per design to w. The designs
// are written in the order given; pair with ByDensity for the standard
// report.
func Write(w io.Writer, designs []design.Design) error {
	if _, err := fmt.Fprintln(w, Header); err != nil {
		return err
	}
	for _, d := range designs {
		if _, err := fmt.Fprintf(w, rowFormat, d.Name, d.Density, d.AreaMM2, d.PolyCount); err != nil {
			return err
		}
	}
	return nil
}

// Render sorts lib by density and writes the report to w, returning the
// sorted designs for further inspection.
func Render(w io.Writer, lib *design.Library) ([]design.Design, error) {
	designs := ByDensity(lib)
	if err := Write(w, designs); err != nil {
		return nil, err
	}
	return designs, nil
}
