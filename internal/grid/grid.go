// Package grid implements the spatial index the packer queries for
// collision and support candidates: a vector of buckets along the
// container's x (loading) axis, sized GridSize cm each (spec §4.2).
//
// The grid is a write-only append structure for the lifetime of one
// container — placements are never moved or removed once committed —
// so a bucket only ever grows.
package grid

import (
	"github.com/piwi3910/loadplan/internal/geometry"
	"github.com/piwi3910/loadplan/internal/model"
)

// Entry is one committed placement as tracked by the grid: its id
// (used to dedupe multi-bucket hits), its axis-aligned box, and the
// bits of CargoSpec metadata the feasibility and scoring stages need
// without walking back to the full Placement list.
type Entry struct {
	ID          int
	Box         geometry.Box
	CargoSpecID string
	Unstackable bool
}

// Grid buckets placed items by floor(x / GridSize). A placement is
// inserted into every bucket its x-extent crosses.
type Grid struct {
	bucketSize int
	buckets    map[int][]Entry
	nextID     int
}

// New creates an empty grid with the default bucket size.
func New() *Grid {
	return &Grid{
		bucketSize: int(model.GridSize),
		buckets:    make(map[int][]Entry),
	}
}

// Insert adds a placed box to the grid and returns the Entry id it was
// assigned, unique within this grid (global uniqueness across
// containers is not required — spec §9).
func (g *Grid) Insert(box geometry.Box, cargoSpecID string, unstackable bool) int {
	id := g.nextID
	g.nextID++
	entry := Entry{ID: id, Box: box, CargoSpecID: cargoSpecID, Unstackable: unstackable}

	lo := g.bucketIndex(box.X)
	hi := g.bucketIndex(box.XMax())
	// A box whose XMax lands exactly on a bucket boundary still only
	// occupies the bucket below it. The XMax > X guard keeps a
	// zero-length box in its own bucket instead of in none.
	if box.XMax() > box.X && box.XMax()%g.bucketSize == 0 {
		hi--
	}
	for idx := lo; idx <= hi; idx++ {
		g.buckets[idx] = append(g.buckets[idx], entry)
	}
	return id
}

func (g *Grid) bucketIndex(x int) int {
	if x < 0 {
		// Defensive: callers should never query negative x, but avoid
		// a negative-division surprise rather than panic.
		return 0
	}
	return x / g.bucketSize
}

// Query returns every distinct Entry touching the half-open x-range
// [xLo, xHi). Duplicate hits across buckets are filtered by an
// already-seen id set, as the source does (spec §4.2/§9).
func (g *Grid) Query(xLo, xHi int) []Entry {
	lo := g.bucketIndex(xLo)
	hi := g.bucketIndex(xHi - 1)
	if hi < lo {
		hi = lo
	}

	seen := make(map[int]bool)
	var result []Entry
	for idx := lo; idx <= hi; idx++ {
		for _, e := range g.buckets[idx] {
			if seen[e.ID] {
				continue
			}
			seen[e.ID] = true
			result = append(result, e)
		}
	}
	return result
}

// Len returns the number of distinct entries committed to the grid.
func (g *Grid) Len() int { return g.nextID }
