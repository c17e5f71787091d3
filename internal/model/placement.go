package model

// Placement is the committed location of one Box: its minimum corner,
// its chosen oriented dimensions, its loading sequence number within
// the container, and (through Box) the CargoSpec id it belongs to (for
// grouping/adhesion purposes).
//
// ContainerIndex is set to 0 by the packer and is not renumbered by the
// planner; the container a placement belongs to is given by the
// position of its PackResult in Shipment.Results.
//
// Coordinates are integer-valued centimetres. Origin is the
// rear-inner-floor corner of the container: x grows toward the door
// (loading direction), y is vertical, z is lateral.
type Placement struct {
	Box            Box
	X, Y, Z        int
	L, W, H        int // oriented dimensions; {L,W} = {Box.Length,Box.Width} or swapped
	Sequence       int
	ContainerIndex int
}

// Rotated reports whether this placement swapped the Box's L/W.
func (p Placement) Rotated() bool {
	return p.L == p.Box.Width && p.W == p.Box.Length && p.Box.Length != p.Box.Width
}

// Volume returns the oriented volume occupied by this placement.
func (p Placement) Volume() float64 {
	return float64(p.L) * float64(p.W) * float64(p.H)
}

// XMax, YMax, ZMax return the placement's far corner on each axis.
func (p Placement) XMax() int { return p.X + p.L }
func (p Placement) YMax() int { return p.Y + p.H }
func (p Placement) ZMax() int { return p.Z + p.W }

// PackResult is the outcome of packing one container: the container
// type used, the ordered placements committed into it, the boxes that
// could not be placed, and summary utilisation statistics.
type PackResult struct {
	ContainerType     string
	Container         ContainerSpec
	Placements        []Placement
	Unplaced          []Box
	UsedVolume        float64
	VolumeUtilization float64
	TotalWeight       int
	WeightUtilization float64
}

// Finalize recomputes the derived statistics fields from Placements and
// Unplaced. Callers that mutate Placements directly must call this
// before reading the utilisation fields.
func (r *PackResult) Finalize() {
	var usedVolume float64
	var totalWeight int
	for _, p := range r.Placements {
		usedVolume += p.Volume()
		totalWeight += p.Box.Weight
	}
	r.UsedVolume = usedVolume
	r.TotalWeight = totalWeight

	containerVolume := r.Container.Volume()
	if containerVolume > 0 {
		r.VolumeUtilization = usedVolume / containerVolume
	}
	if r.Container.MaxPayloadKg > 0 {
		r.WeightUtilization = float64(totalWeight) / float64(r.Container.MaxPayloadKg)
	}
}

// Shipment is the ordered list of PackResults produced by the planner.
// Invariant: the union of every PackResult's Placements plus the last
// PackResult's Unplaced equals the input cargo, as multisets of Boxes.
type Shipment struct {
	Results []PackResult
}

// TotalPlaced returns how many boxes were placed across the whole
// shipment.
func (s Shipment) TotalPlaced() int {
	n := 0
	for _, r := range s.Results {
		n += len(r.Placements)
	}
	return n
}

// Residual returns the boxes left unplaced at the end of the shipment
// (only the last PackResult carries a non-empty Unplaced list, per the
// planner's aggregation rule).
func (s Shipment) Residual() []Box {
	if len(s.Results) == 0 {
		return nil
	}
	return s.Results[len(s.Results)-1].Unplaced
}
