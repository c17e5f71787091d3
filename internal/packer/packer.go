// Package packer implements the single-container packing loop (spec
// §4.6): repeatedly ask the candidate generator for admissible moves,
// score them, commit the best, and update the grid and anchor set until
// no move remains.
package packer

import (
	"context"

	"github.com/piwi3910/loadplan/internal/candidate"
	"github.com/piwi3910/loadplan/internal/feasibility"
	"github.com/piwi3910/loadplan/internal/geometry"
	"github.com/piwi3910/loadplan/internal/grid"
	"github.com/piwi3910/loadplan/internal/model"
	"github.com/piwi3910/loadplan/internal/scoring"
)

// yieldEvery is the iteration interval at which the packer checks for
// cancellation (spec §5): the sole suspension point in the core.
const yieldEvery = 5

// Pack fills a single container from the given Box pool, which must
// already be pre-sorted by the caller (spec §4.7). It returns the
// PackResult for this container and the Boxes left unplaced.
//
// ctx is checked for cancellation every yieldEvery iterations; on
// cancellation the packer stops and returns everything committed so far
// plus the remainder of pool as unplaced, with no partial rollback.
func Pack(ctx context.Context, container model.ContainerSpec, pool []model.Box) model.PackResult {
	result := model.PackResult{ContainerType: container.Type, Container: container}

	remaining := make([]model.Box, len(pool))
	copy(remaining, pool)

	g := grid.New()
	anchorSet := candidate.NewSet()
	oracle := feasibility.New(container)

	var committed []geometry.Box
	var currentWeight int
	sequence := 0
	iteration := 0

	for {
		if iteration%yieldEvery == 0 {
			select {
			case <-ctx.Done():
				result.Unplaced = append(result.Unplaced, remaining...)
				result.Finalize()
				return result
			default:
			}
		}
		iteration++

		remaining = filterDoorFits(remaining, &result, oracle)
		if len(remaining) == 0 {
			break
		}

		reps := candidate.DedupRepresentatives(remaining)
		triples := candidate.Generate(reps, anchorSet.Anchors(), oracle, g)
		if len(triples) == 0 {
			break
		}

		scoringCtx := scoring.Context{
			Container:          container,
			Grid:               g,
			UnstackableHeights: unstackableHeights(remaining),
		}

		bestIdx, bestScore, found := -1, 0.0, false
		for i, t := range triples {
			s, ok := scoring.Score(t, currentWeight, scoringCtx)
			if !ok {
				continue
			}
			if !found || s < bestScore {
				bestIdx, bestScore, found = i, s, true
			}
		}
		if !found {
			break
		}

		best := triples[bestIdx]
		sequence++
		placement := model.Placement{
			Box:            best.Box,
			X:              best.Pos.X,
			Y:              best.Pos.Y,
			Z:              best.Pos.Z,
			L:              best.Pos.Dims.L,
			W:              best.Pos.Dims.W,
			H:              best.Pos.Dims.H,
			Sequence:       sequence,
			ContainerIndex: 0,
		}
		result.Placements = append(result.Placements, placement)

		box := geometry.Box{X: placement.X, Y: placement.Y, Z: placement.Z, L: placement.L, W: placement.W, H: placement.H}
		g.Insert(box, best.Box.CargoSpecID, best.Box.Unstackable)
		committed = append(committed, box)
		anchorSet.Commit(placement, container, committed)
		currentWeight += best.Box.Weight

		remaining = removeOne(remaining, best.Box.CargoSpecID)
	}

	result.Unplaced = append(result.Unplaced, remaining...)
	result.Finalize()
	return result
}

// filterDoorFits removes Boxes that cannot pass the door in any planar
// orientation, diverting them straight to the unplaced list (spec §7,
// DoorTooSmall edge case). Other items continue.
func filterDoorFits(pool []model.Box, result *model.PackResult, oracle feasibility.Oracle) []model.Box {
	kept := pool[:0:0]
	for _, b := range pool {
		if oracle.DoorFits(b) {
			kept = append(kept, b)
		} else {
			result.Unplaced = append(result.Unplaced, b)
		}
	}
	return kept
}

// removeOne removes the first Box matching cargoSpecID from pool.
func removeOne(pool []model.Box, cargoSpecID string) []model.Box {
	for i, b := range pool {
		if b.CargoSpecID == cargoSpecID {
			return append(pool[:i:i], pool[i+1:]...)
		}
	}
	return pool
}

// unstackableHeights returns the distinct heights among unstackable
// Boxes still in the pool, for the scoring stage's platform and
// kill-zone terms.
func unstackableHeights(pool []model.Box) []int {
	seen := make(map[int]bool)
	var heights []int
	for _, b := range pool {
		if !b.Unstackable {
			continue
		}
		if seen[b.Height] {
			continue
		}
		seen[b.Height] = true
		heights = append(heights, b.Height)
	}
	return heights
}
