// Package geometry provides the axis-aligned box primitives the rest
// of the packing engine is built on: one-dimensional overlap, 2D
// footprint support area, and 3D AABB intersection.
package geometry

// Box is an axis-aligned cuboid anchored at its minimum corner
// (X, Y, Z) with extents (L, W, H) along the same axes Placement uses:
// x is the loading direction, y is vertical, z is lateral.
type Box struct {
	X, Y, Z int
	L, W, H int
}

// XMax, YMax, ZMax return the box's far corner on each axis.
func (b Box) XMax() int { return b.X + b.L }
func (b Box) YMax() int { return b.Y + b.H }
func (b Box) ZMax() int { return b.Z + b.W }

// OverlapLen returns the length of the overlap between [aMin, aMax) and
// [bMin, bMax) on a single axis, or 0 if they don't overlap.
func OverlapLen(aMin, aMax, bMin, bMax int) int {
	lo := aMin
	if bMin > lo {
		lo = bMin
	}
	hi := aMax
	if bMax < hi {
		hi = bMax
	}
	if hi-lo < 0 {
		return 0
	}
	return hi - lo
}

// SupportArea returns the footprint overlap (x-overlap * z-overlap)
// between a candidate box and another box beneath it. Used both for
// the hard 70%-support feasibility check and for scoring.
func SupportArea(candidate, other Box) int {
	xOverlap := OverlapLen(candidate.X, candidate.XMax(), other.X, other.XMax())
	zOverlap := OverlapLen(candidate.Z, candidate.ZMax(), other.Z, other.ZMax())
	return xOverlap * zOverlap
}

// Intersects reports whether two boxes have strictly positive-volume
// interior overlap on all three axes. Boxes that merely share a face
// (touching, zero-width overlap) do not intersect.
func Intersects(a, b Box) bool {
	return a.X < b.XMax() && a.XMax() > b.X &&
		a.Y < b.YMax() && a.YMax() > b.Y &&
		a.Z < b.ZMax() && a.ZMax() > b.Z
}

// Touches reports whether two footprints (x,z projections) are within
// tolerance cm of each other along any axis — used by the grouping
// adhesion and flush-alignment scoring terms, which treat near-contact
// as contact.
func Touches(a, b Box, tolerance int) bool {
	xGap := axisGap(a.X, a.XMax(), b.X, b.XMax())
	zGap := axisGap(a.Z, a.ZMax(), b.Z, b.ZMax())
	return xGap <= tolerance && zGap <= tolerance
}

// axisGap returns the gap between two 1D intervals: 0 (or negative) if
// they overlap, else the distance between the nearest edges.
func axisGap(aMin, aMax, bMin, bMax int) int {
	if aMax <= bMin {
		return bMin - aMax
	}
	if bMax <= aMin {
		return aMin - bMax
	}
	return 0
}
