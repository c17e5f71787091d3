package feasibility

import (
	"sort"

	"github.com/piwi3910/loadplan/internal/geometry"
	"github.com/piwi3910/loadplan/internal/grid"
	"github.com/piwi3910/loadplan/internal/model"
)

// interval is an inclusive [Lo, Hi] admissible range for the forklift
// chassis centreline.
type interval struct {
	Lo, Hi float64
}

// forkliftAccessible implements the forklift access model of spec §4.3:
// the chassis must be able to reach the candidate from the door end,
// subject to wall clearance, side-shift reach, and not colliding with
// any already-placed item below chassis height.
func forkliftAccessible(pos geometry.Box, container model.ContainerSpec, g *grid.Grid) bool {
	halfF := model.ForkliftWidth / 2.0

	wallLo := halfF + model.WallBuffer
	wallHi := float64(container.Width) - halfF - model.WallBuffer

	zTarget := float64(pos.Z) + float64(pos.W)/2.0
	reachLo := zTarget - model.SideShift
	reachHi := zTarget + model.SideShift

	lo := maxF(wallLo, reachLo)
	hi := minF(wallHi, reachHi)
	if lo > hi {
		return false
	}

	admissible := []interval{{Lo: lo, Hi: hi}}

	// The chassis drives in from the door end (x = container.Length)
	// toward decreasing x, stopping where the fork reaches pos.XMax().
	// Anything placed in [pos.XMax(), container.Length) that sits below
	// chassis height and within mast height range can block the path.
	obstacles := g.Query(pos.XMax(), container.Length)
	for _, e := range obstacles {
		if e.Box.XMax() <= pos.XMax() || e.Box.X >= container.Length {
			// Grid buckets can return items that end at or behind the
			// fork face; those are beside the candidate, not in the path.
			continue
		}
		if float64(e.Box.Y) >= model.ForkliftChassisHeight {
			// Bottom at or above chassis height: visual-only obstruction.
			continue
		}
		if geometry.OverlapLen(e.Box.Y, e.Box.YMax(), 0, int(model.ForkliftMastHeight)) <= 0 {
			continue
		}
		forbiddenLo := float64(e.Box.Z) - halfF
		forbiddenHi := float64(e.Box.ZMax()) + halfF
		admissible = subtractInterval(admissible, interval{Lo: forbiddenLo, Hi: forbiddenHi})
		if len(admissible) == 0 {
			return false
		}
	}

	return len(admissible) > 0
}

// subtractInterval removes forbidden from every interval in the set,
// keeping the result a disjoint, sorted interval list.
func subtractInterval(set []interval, forbidden interval) []interval {
	var result []interval
	for _, iv := range set {
		if forbidden.Hi <= iv.Lo || forbidden.Lo >= iv.Hi {
			result = append(result, iv)
			continue
		}
		if forbidden.Lo > iv.Lo {
			result = append(result, interval{Lo: iv.Lo, Hi: forbidden.Lo})
		}
		if forbidden.Hi < iv.Hi {
			result = append(result, interval{Lo: forbidden.Hi, Hi: iv.Hi})
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Lo < result[j].Lo })
	return result
}

func maxF(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

func minF(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
