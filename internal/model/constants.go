// Package model defines the data types shared by every stage of the
// container loading engine: cargo declarations, containers, placements,
// and the results the planner and packer hand back to callers.
package model

// Constants contract (spec §6). Distances are centimetres, mass is
// kilograms, unless noted otherwise.
const (
	// OperationBuffer is the safety margin kept off every interior wall.
	OperationBuffer = 2.0

	// ForkliftLiftMargin is the headroom reserved above the tallest
	// placement so a forklift mast can still lift clear of it.
	ForkliftLiftMargin = 15.0

	// ForkliftWidth is the chassis width of the modelled forklift.
	ForkliftWidth = 110.0

	// ForkliftMastHeight is the vertical extent the mast can occupy.
	ForkliftMastHeight = 160.0

	// ForkliftChassisHeight is the height below which an obstacle blocks
	// the chassis; items entirely above it are visual-only obstructions.
	ForkliftChassisHeight = 140.0

	// SideShift is how far the mast can be displaced laterally from the
	// chassis centreline.
	SideShift = 60.0

	// WallBuffer is the clearance the chassis keeps off the side walls.
	WallBuffer = 2.0

	// SupportThresholdHard is the minimum supported-area fraction a
	// stacked placement must clear to be admissible at all.
	SupportThresholdHard = 0.70

	// SupportThresholdScoring is the stricter fraction used only for
	// scoring (overhang penalty), not feasibility.
	SupportThresholdScoring = 0.85

	// ZZoneSize buckets the lateral axis for the terraced-stacking
	// scoring penalty.
	ZZoneSize = 150.0

	// GridSize is the bucket width of the spatial index along x.
	GridSize = 50.0

	// AdhesionBonus rewards placing same-CargoSpec items touching.
	AdhesionBonus = 50.0

	// FlushBonus rewards top-surface alignment with a lateral neighbour.
	FlushBonus = 200.0

	// SupportTolerance is how close two y-values must be to be
	// considered "the same height" when checking support. Integer
	// positions make this exact; kept >= floating point noise and < 1cm.
	SupportTolerance = 0.1
)
