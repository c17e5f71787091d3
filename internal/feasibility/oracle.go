// Package feasibility implements the packer's admissibility predicates
// (spec §4.3): boundary, non-overlap, forklift access, and support.
// Checks run cheapest-first and short-circuit on the first failure.
package feasibility

import (
	"github.com/piwi3910/loadplan/internal/geometry"
	"github.com/piwi3910/loadplan/internal/grid"
	"github.com/piwi3910/loadplan/internal/model"
)

// Oracle evaluates candidate placements against a fixed container spec
// and a per-container spatial grid.
type Oracle struct {
	Container model.ContainerSpec
}

// New returns an Oracle bound to the given container spec.
func New(container model.ContainerSpec) Oracle {
	return Oracle{Container: container}
}

// Pos is a candidate placement's position and oriented dimensions.
type Pos struct {
	X, Y, Z int
	Dims    model.Dims
}

func (p Pos) box() geometry.Box {
	return geometry.Box{X: p.X, Y: p.Y, Z: p.Z, L: p.Dims.L, W: p.Dims.W, H: p.Dims.H}
}

// IsValid composes the four placement checks (boundary, non-overlap,
// forklift access, support), cheapest first, short-circuiting on the
// first failure. Door fit is checked separately by DoorFits.
func (o Oracle) IsValid(pos Pos, g *grid.Grid) bool {
	if !o.inBounds(pos) {
		return false
	}
	if o.overlaps(pos, g) {
		return false
	}
	if !forkliftAccessible(pos.box(), o.Container, g) {
		return false
	}
	if pos.Y > 0 && !o.supported(pos, g) {
		return false
	}
	return true
}

// DoorFits reports whether a CargoSpec can pass through this
// container's door in at least one planar orientation (spec §4.3).
func (o Oracle) DoorFits(b model.Box) bool {
	return b.FitsDoor(o.Container.DoorWidth, o.Container.DoorHeight)
}

// inBounds checks Invariant 2: the candidate fits within the interior
// less the operation buffer and, on the vertical axis, the forklift
// lift margin as well.
func (o Oracle) inBounds(pos Pos) bool {
	if pos.X < 0 || pos.Z < 0 || pos.Y < 0 {
		return false
	}
	if float64(pos.X+pos.Dims.L) > float64(o.Container.Length)-model.OperationBuffer {
		return false
	}
	if float64(pos.Z+pos.Dims.W) > float64(o.Container.Width)-model.OperationBuffer {
		return false
	}
	if float64(pos.Y+pos.Dims.H) > float64(o.Container.Height)-model.OperationBuffer-model.ForkliftLiftMargin {
		return false
	}
	return true
}

// overlaps queries the grid over the candidate's x-extent and rejects
// on any AABB intersection (Invariant 1).
func (o Oracle) overlaps(pos Pos, g *grid.Grid) bool {
	candidate := pos.box()
	for _, e := range g.Query(candidate.X, candidate.XMax()) {
		if geometry.Intersects(candidate, e.Box) {
			return true
		}
	}
	return false
}

// supported implements Invariant 3: when stacked, the aggregate
// top-surface area of same-height neighbours under the footprint must
// be >= 70% of the footprint, and none of those neighbours may be
// unstackable.
func (o Oracle) supported(pos Pos, g *grid.Grid) bool {
	candidate := pos.box()
	neighbours := g.Query(candidate.X, candidate.XMax())

	var supportedArea int
	for _, e := range neighbours {
		// Integer coordinates make the 0.1cm tolerance exact: only an
		// exact top-height match counts as support.
		if float64(absDiff(e.Box.YMax(), pos.Y)) > model.SupportTolerance {
			continue
		}
		area := geometry.SupportArea(candidate, e.Box)
		if area <= 0 {
			// Same height but footprint doesn't project underneath:
			// not actually a supporter of this placement.
			continue
		}
		if e.Unstackable {
			return false
		}
		supportedArea += area
	}

	footprint := pos.Dims.L * pos.Dims.W
	return float64(supportedArea) >= model.SupportThresholdHard*float64(footprint)
}

func absDiff(a, b int) int {
	if a > b {
		return a - b
	}
	return b - a
}
