// Package scoring implements the composite placement score of spec §4.5:
// lower is better. The score rewards deep/low/side placements, penalizes
// overhangs and wasted headroom, and nudges the packer toward grouping
// same-spec items and building flush layer tops.
package scoring

import (
	"github.com/piwi3910/loadplan/internal/candidate"
	"github.com/piwi3910/loadplan/internal/feasibility"
	"github.com/piwi3910/loadplan/internal/geometry"
	"github.com/piwi3910/loadplan/internal/grid"
	"github.com/piwi3910/loadplan/internal/model"
)

const (
	unstackableTopGapMax = 40.0
	unstackableBurialPen = 1_000_000.0
	unstackableTopBonus  = -500_000.0

	backHalfBonus  = -5_000.0
	zZonePenaltyK  = 50.0
	overhangPen    = 500_000.0
	unstablePen    = 200_000.0
	platformBonus  = -20_000.0
	killZonePen    = 100_000.0
	platformTol    = 5.0

	touchTolerance = 1.0
	flushTolerance = 0.5
)

// Context carries the state the score needs beyond the triple itself:
// the container being packed, its grid, and the distinct heights among
// unstackable CargoSpecs still in the residual pool.
type Context struct {
	Container          model.ContainerSpec
	Grid               *grid.Grid
	UnstackableHeights []int
}

// minUnstackableHeight returns the smallest unstackable height still in
// the residual pool, or 0 if none remain.
func (c Context) minUnstackableHeight() int {
	min := 0
	for _, h := range c.UnstackableHeights {
		if min == 0 || h < min {
			min = h
		}
	}
	return min
}

// Score computes the composite score for a feasible triple; lower is
// better. Returns ok=false if the weight gate rejects the candidate
// before scoring.
func Score(t candidate.Triple, currentWeight int, ctx Context) (score float64, ok bool) {
	if currentWeight+t.Box.Weight > ctx.Container.MaxPayloadKg {
		return 0, false
	}

	pos := t.Pos
	base := 10000.0*float64(pos.X) + 10.0*float64(pos.Y) + float64(pos.Z)

	candidateBox := geometry.Box{X: pos.X, Y: pos.Y, Z: pos.Z, L: pos.Dims.L, W: pos.Dims.W, H: pos.Dims.H}
	topGap := float64(ctx.Container.Height) - float64(pos.Y+pos.Dims.H)

	var s float64
	if t.Box.Unstackable {
		s = unstackableStrategy(topGap)
	} else {
		s = stackableStrategy(candidateBox, pos, ctx, topGap)
	}

	s += groupingAdhesion(candidateBox, t.Box.CargoSpecID, pos.Y, ctx)
	s += flushAlignment(candidateBox, ctx)

	return base + s, true
}

func unstackableStrategy(topGap float64) float64 {
	if topGap > unstackableTopGapMax {
		return unstackableBurialPen
	}
	return unstackableTopBonus
}

func stackableStrategy(candidateBox geometry.Box, pos feasibility.Pos, ctx Context, topGap float64) float64 {
	var s float64

	if float64(pos.X) < float64(ctx.Container.Length)/2.0 {
		s += backHalfBonus
	}

	zoneIndex := pos.Z / int(model.ZZoneSize)
	s += float64(zoneIndex) * float64(pos.Y) * zZonePenaltyK

	if pos.Y > 0 {
		footprint := float64(pos.Dims.L * pos.Dims.W)
		supportArea, maxSupporter := supportStats(candidateBox, ctx)
		if supportArea < model.SupportThresholdScoring*footprint {
			s += overhangPen
		}
		if maxSupporter < 0.90*footprint {
			s += unstablePen
		}
	}

	top := float64(pos.Y + pos.Dims.H)
	for _, h := range ctx.UnstackableHeights {
		platformLevel := float64(ctx.Container.Height) - float64(h)
		if absF(top-platformLevel) <= platformTol {
			s += platformBonus
			break
		}
	}

	if minH := ctx.minUnstackableHeight(); minH > 0 && topGap < float64(minH) && topGap > 5 {
		s += killZonePen
	}

	return s
}

// supportStats returns the aggregate supported area and the largest
// single supporter's footprint area under the candidate, mirroring the
// feasibility oracle's own support computation (spec §4.5).
func supportStats(candidateBox geometry.Box, ctx Context) (aggregate, largest float64) {
	neighbours := ctx.Grid.Query(candidateBox.X, candidateBox.XMax())
	for _, e := range neighbours {
		if absDiffI(e.Box.YMax(), candidateBox.Y) > 0 {
			continue
		}
		area := geometry.SupportArea(candidateBox, e.Box)
		if area <= 0 {
			continue
		}
		aggregate += float64(area)
		if float64(area) > largest {
			largest = float64(area)
		}
	}
	return aggregate, largest
}

// groupingAdhesion rewards a candidate that touches a neighbour sharing
// its CargoSpec (ground level: must be same spec; stacked: any touching
// neighbour qualifies).
func groupingAdhesion(candidateBox geometry.Box, cargoSpecID string, y int, ctx Context) float64 {
	neighbours := ctx.Grid.Query(candidateBox.X-int(touchTolerance), candidateBox.XMax()+int(touchTolerance)+1)
	for _, e := range neighbours {
		if !geometry.Touches(candidateBox, e.Box, int(touchTolerance)) {
			continue
		}
		if y < 1 {
			if e.CargoSpecID == cargoSpecID {
				return -model.AdhesionBonus
			}
			continue
		}
		return -model.AdhesionBonus
	}
	return 0
}

// flushAlignment rewards a candidate whose top surface matches a
// touching lateral neighbour's top surface within tolerance.
func flushAlignment(candidateBox geometry.Box, ctx Context) float64 {
	neighbours := ctx.Grid.Query(candidateBox.X-1, candidateBox.XMax()+2)
	for _, e := range neighbours {
		if !geometry.Touches(candidateBox, e.Box, int(touchTolerance)) {
			continue
		}
		if absF(float64(candidateBox.YMax())-float64(e.Box.YMax())) <= flushTolerance {
			return -model.FlushBonus
		}
	}
	return 0
}

func absF(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func absDiffI(a, b int) int {
	if a > b {
		return a - b
	}
	return b - a
}
