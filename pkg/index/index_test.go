package index

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/densitool/pkg/design"
)

func testLibrary() *design.Library {
	lib := design.NewLibrary()
	lib.Add(design.New("core", 0, 0, 1000, 1000, 500, "a"))
	lib.Add(design.New("io_ring", 2000, 0, 4000, 500, 200, "b"))
	lib.Add(design.New("sram", 0, 2000, 500, 3000, 900, "c"))
	return lib
}

func names(hits []Hit) []string {
	out := make([]string, len(hits))
	for i, h := range hits {
		out[i] = h.Design.Name
	}
	return out
}

func TestWindow(t *testing.T) {
	idx, err := New(testLibrary())
	require.NoError(t, err)
	require.Equal(t, 3, idx.Len())

	hits, err := idx.Window(-100, -100, 1500, 1500)
	require.NoError(t, err)
	assert.Equal(t, []string{"core"}, names(hits))

	hits, err = idx.Window(0, 0, 5000, 5000)
	require.NoError(t, err)
	assert.Equal(t, []string{"core", "io_ring", "sram"}, names(hits))
}

func TestWindowCornerOrderIrrelevant(t *testing.T) {
	idx, err := New(testLibrary())
	require.NoError(t, err)

	a, err := idx.Window(-100, -100, 1500, 1500)
	require.NoError(t, err)
	b, err := idx.Window(1500, 1500, -100, -100)
	require.NoError(t, err)
	assert.Equal(t, names(a), names(b))
}

func TestAt(t *testing.T) {
	idx, err := New(testLibrary())
	require.NoError(t, err)

	hits, err := idx.At(500, 500)
	require.NoError(t, err)
	assert.Equal(t, []string{"core"}, names(hits))

	hits, err = idx.At(3000, 250)
	require.NoError(t, err)
	assert.Equal(t, []string{"io_ring"}, names(hits))

	hits, err = idx.At(1500, 1500)
	require.NoError(t, err)
	assert.Empty(t, hits, "point in the gap between blocks")
}

func TestAtOverlappingBlocks(t *testing.T) {
	lib := design.NewLibrary()
	lib.Add(design.New("outer", 0, 0, 2000, 2000, 100, "a"))
	lib.Add(design.New("inner", 500, 500, 1500, 1500, 50, "b"))

	idx, err := New(lib)
	require.NoError(t, err)

	hits, err := idx.At(1000, 1000)
	require.NoError(t, err)
	assert.Equal(t, []string{"outer", "inner"}, names(hits))
}

func TestNear(t *testing.T) {
	idx, err := New(testLibrary())
	require.NoError(t, err)

	hits := idx.Near(100, 100, 1)
	require.Len(t, hits, 1)
	assert.Equal(t, "core", hits[0].Design.Name)

	hits = idx.Near(100, 100, 2)
	require.Len(t, hits, 2)
	assert.Equal(t, "core", hits[0].Design.Name)

	assert.Empty(t, idx.Near(0, 0, 0))
	assert.Len(t, idx.Near(0, 0, 10), 3, "k larger than the index returns everything")
}

func TestDuplicateNamesKeepDistinctIdentities(t *testing.T) {
	lib := design.NewLibrary()
	lib.Add(design.New("macro", 0, 0, 1000, 1000, 10, "a"))
	lib.Add(design.New("macro", 2000, 2000, 3000, 3000, 20, "b"))

	idx, err := New(lib)
	require.NoError(t, err)

	hits, err := idx.Window(-100, -100, 4000, 4000)
	require.NoError(t, err)
	require.Len(t, hits, 2)
	assert.NotEqual(t, hits[0].ID, hits[1].ID)
	assert.NotEmpty(t, hits[0].ID)
}

func TestDegenerateBlocksAreIndexed(t *testing.T) {
	lib := design.NewLibrary()
	lib.Add(design.New("point", 100, 100, 100, 100, 5, "a"))
	lib.Add(design.New("inverted", 1000, 1000, 0, 0, 10, "b"))

	idx, err := New(lib)
	require.NoError(t, err)
	assert.Equal(t, 2, idx.Len())

	hits, err := idx.At(100, 100)
	require.NoError(t, err)
	assert.Contains(t, names(hits), "point")
	assert.Contains(t, names(hits), "inverted")
}

func TestEmptyLibrary(t *testing.T) {
	idx, err := New(design.NewLibrary())
	require.NoError(t, err)
	assert.Equal(t, 0, idx.Len())

	hits, err := idx.Window(0, 0, 1000, 1000)
	require.NoError(t, err)
	assert.Empty(t, hits)
}
