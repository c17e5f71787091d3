// Package candidate implements the packer's anchor-point bookkeeping and
// candidate triple generation (spec §4.4): where the next item could go,
// in which orientation, and with what z-slide correction.
package candidate

import (
	"sort"

	"github.com/piwi3910/loadplan/internal/feasibility"
	"github.com/piwi3910/loadplan/internal/geometry"
	"github.com/piwi3910/loadplan/internal/grid"
	"github.com/piwi3910/loadplan/internal/model"
)

// Anchor is a candidate lower-rear corner for the next placement.
type Anchor struct {
	X, Y, Z int
}

// Set is the packer's growing anchor list. It starts at the origin and
// accrues three new anchors per committed placement.
type Set struct {
	anchors []Anchor
}

// NewSet returns an anchor set seeded with the origin anchor.
func NewSet() *Set {
	return &Set{anchors: []Anchor{{X: 0, Y: 0, Z: 0}}}
}

// Anchors returns the current anchors sorted by (x, y, z) ascending.
func (s *Set) Anchors() []Anchor {
	sorted := make([]Anchor, len(s.anchors))
	copy(sorted, s.anchors)
	sort.Slice(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.X != b.X {
			return a.X < b.X
		}
		if a.Y != b.Y {
			return a.Y < b.Y
		}
		return a.Z < b.Z
	})
	return sorted
}

// Commit records a placement's three derived anchors (top, far-side,
// far-front corners) and prunes anchors that now fall inside a committed
// AABB or outside the container's usable interior.
func (s *Set) Commit(p model.Placement, container model.ContainerSpec, committed []geometry.Box) {
	s.anchors = append(s.anchors,
		Anchor{X: p.X, Y: p.Y + p.H, Z: p.Z},
		Anchor{X: p.X, Y: p.Y, Z: p.Z + p.W},
		Anchor{X: p.X + p.L, Y: p.Y, Z: p.Z},
	)
	s.prune(container, committed)
}

func (s *Set) prune(container model.ContainerSpec, committed []geometry.Box) {
	kept := s.anchors[:0:0]
	for _, a := range s.anchors {
		if !inInterior(a, container) {
			continue
		}
		if insideAny(a, committed) {
			continue
		}
		kept = append(kept, a)
	}
	s.anchors = kept
}

func inInterior(a Anchor, c model.ContainerSpec) bool {
	if a.X < 0 || a.Y < 0 || a.Z < 0 {
		return false
	}
	if float64(a.X) > float64(c.Length)-model.OperationBuffer {
		return false
	}
	if float64(a.Z) > float64(c.Width)-model.OperationBuffer {
		return false
	}
	if float64(a.Y) > float64(c.Height)-model.OperationBuffer-model.ForkliftLiftMargin {
		return false
	}
	return true
}

func insideAny(a Anchor, committed []geometry.Box) bool {
	for _, b := range committed {
		if a.X >= b.X && a.X < b.XMax() &&
			a.Y >= b.Y && a.Y < b.YMax() &&
			a.Z >= b.Z && a.Z < b.ZMax() {
			return true
		}
	}
	return false
}

// Triple is one feasible (box, anchor, orientation) candidate ready for
// scoring, already z-slid when applicable.
type Triple struct {
	Box         model.Box
	AnchorIndex int
	Anchor      Anchor
	Dims        model.Dims
	Rotated     bool
	Pos         feasibility.Pos
}

// Generate enumerates every feasible (box, anchor, orientation) triple for
// the given set of representative boxes, in the stable iteration order
// the spec requires for deterministic tie-breaking: boxes in the order
// given, then anchor index, then orientation (identity before swapped).
func Generate(boxes []model.Box, anchors []Anchor, oracle feasibility.Oracle, g *grid.Grid) []Triple {
	var triples []Triple
	for _, box := range boxes {
		for anchorIdx, anchor := range anchors {
			for _, dims := range box.Orientations() {
				rotated := dims.L != box.Length
				pos := feasibility.Pos{X: anchor.X, Y: anchor.Y, Z: anchor.Z, Dims: dims}
				if !oracle.IsValid(pos, g) {
					continue
				}
				if pos.Y < 1 {
					pos = zSlide(pos, oracle, g)
				}
				triples = append(triples, Triple{
					Box:         box,
					AnchorIndex: anchorIdx,
					Anchor:      anchor,
					Dims:        dims,
					Rotated:     rotated,
					Pos:         pos,
				})
			}
		}
	}
	return triples
}

// zSlide walks a floor-level feasible position toward smaller z in 1 cm
// steps while it remains feasible, stopping at the last feasible step.
func zSlide(pos feasibility.Pos, oracle feasibility.Oracle, g *grid.Grid) feasibility.Pos {
	best := pos
	for z := pos.Z - 1; z >= 0; z-- {
		candidate := best
		candidate.Z = z
		if !oracle.IsValid(candidate, g) {
			break
		}
		best = candidate
	}
	return best
}

// DedupRepresentatives returns one Box per distinct CargoSpecID, in order
// of first occurrence in the pool.
func DedupRepresentatives(pool []model.Box) []model.Box {
	seen := make(map[string]bool)
	var reps []model.Box
	for _, b := range pool {
		if seen[b.CargoSpecID] {
			continue
		}
		seen[b.CargoSpecID] = true
		reps = append(reps, b)
	}
	return reps
}
