// Package index provides spatial lookup over design blocks using an R-tree.
//
// Blocks are indexed by their layout rectangle in micrometer coordinates.
// Listing names are not unique, so every indexed block is assigned its own
// identity at build time; query results carry that identity alongside the
// design.
package index

import (
	"sort"

	"github.com/dhconnelly/rtreego"
	"github.com/google/uuid"

	"github.com/matzehuels/densitool/pkg/design"
)

const (
	dimensions  = 2
	minChildren = 25
	maxChildren = 50

	// minExtent substitutes for degenerate edges; rtreego rejects
	// rectangles with non-positive side lengths.
	minExtent = 1e-9
)

// Hit is one query result: a design and the identity it was indexed under.
type Hit struct {
	ID     string
	Design design.Design
}

// item wraps a design to implement rtreego.Spatial.
type item struct {
	id   string
	ord  int // insertion order, for deterministic result ordering
	d    design.Design
	rect rtreego.Rect
}

func (it *item) Bounds() *rtreego.Rect { return &it.rect }

// Index is an R-tree over design block rectangles. It is built once from a
// library and queried read-only afterwards.
type Index struct {
	tree  *rtreego.Rtree
	count int
}

// New builds an index over all designs in lib. Inverted corners are
// normalized for indexing only; hits always carry the design as loaded.
func New(lib *design.Library) (*Index, error) {
	idx := &Index{tree: rtreego.NewTree(dimensions, minChildren, maxChildren)}
	for i, d := range lib.Designs() {
		rect, err := blockRect(d)
		if err != nil {
			return nil, err
		}
		idx.tree.Insert(&item{id: uuid.NewString(), ord: i, d: d, rect: *rect})
		idx.count++
	}
	return idx, nil
}

// Len returns the number of indexed blocks.
func (x *Index) Len() int {
	return x.count
}

// Window returns all blocks whose rectangle intersects the query window.
// Corner order does not matter. Results are in library insertion order.
func (x *Index) Window(lx, ly, ux, uy float64) ([]Hit, error) {
	rect, err := queryRect(lx, ly, ux, uy)
	if err != nil {
		return nil, err
	}
	return hits(x.tree.SearchIntersect(rect)), nil
}

// At returns all blocks whose rectangle contains the point (px, py).
// Results are in library insertion order.
func (x *Index) At(px, py float64) ([]Hit, error) {
	rect, err := queryRect(px, py, px, py)
	if err != nil {
		return nil, err
	}
	found := x.tree.SearchIntersect(rect)

	// SearchIntersect over the probe rectangle can return blocks whose
	// padded bounds touch it; filter to true containment.
	contained := found[:0]
	for _, s := range found {
		d := s.(*item).d
		lx, ux := minMax(d.LX, d.UX)
		ly, uy := minMax(d.LY, d.UY)
		if px >= lx && px <= ux && py >= ly && py <= uy {
			contained = append(contained, s)
		}
	}
	return hits(contained), nil
}

// Near returns the k blocks nearest to the point (px, py), closest first.
// Fewer than k hits are returned when the index is smaller than k.
func (x *Index) Near(px, py float64, k int) []Hit {
	if k <= 0 {
		return nil
	}
	found := x.tree.NearestNeighbors(k, rtreego.Point{px, py})
	out := make([]Hit, 0, len(found))
	for _, s := range found {
		if s == nil {
			continue
		}
		it := s.(*item)
		out = append(out, Hit{ID: it.id, Design: it.d})
	}
	return out
}

// hits converts spatial results to Hits sorted by insertion order.
func hits(found []rtreego.Spatial) []Hit {
	items := make([]*item, 0, len(found))
	for _, s := range found {
		items = append(items, s.(*item))
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ord < items[j].ord })

	out := make([]Hit, len(items))
	for i, it := range items {
		out[i] = Hit{ID: it.id, Design: it.d}
	}
	return out
}

func blockRect(d design.Design) (*rtreego.Rect, error) {
	return queryRect(d.LX, d.LY, d.UX, d.UY)
}

func queryRect(x1, y1, x2, y2 float64) (*rtreego.Rect, error) {
	lx, ux := minMax(x1, x2)
	ly, uy := minMax(y1, y2)
	w := ux - lx
	if w <= 0 {
		w = minExtent
	}
	h := uy - ly
	if h <= 0 {
		h = minExtent
	}
	return rtreego.NewRect(rtreego.Point{lx, ly}, []float64{w, h})
}

func minMax(a, b float64) (float64, float64) {
	if a <= b {
		return a, b
	}
	return b, a
}
