package model

import "github.com/google/uuid"

// CargoSpec is a declared item type: a shape, weight and quantity the
// shipper wants loaded. Length and width are interchangeable under a
// vertical-axis rotation; height is fixed, items are never tipped.
type CargoSpec struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Length      int    `json:"l"`      // cm
	Width       int    `json:"w"`      // cm
	Height      int    `json:"h"`      // cm
	Weight      int    `json:"weight"` // kg
	Quantity    int    `json:"qty"`
	Unstackable bool   `json:"unstackable"`
	Tag         string `json:"tag,omitempty"` // opaque visual tag, ignored by the core
}

// NewCargoSpec builds a CargoSpec with a generated ID, mirroring the
// teacher's NewPart constructor.
func NewCargoSpec(name string, l, w, h, weight, qty int) CargoSpec {
	return CargoSpec{
		ID:       uuid.New().String()[:8],
		Name:     name,
		Length:   l,
		Width:    w,
		Height:   h,
		Weight:   weight,
		Quantity: qty,
	}
}

// BaseArea returns the L*W footprint area of one unit of this spec.
func (c CargoSpec) BaseArea() int { return c.Length * c.Width }

// Box is a single unit occurrence expanded from a CargoSpec. Boxes are
// immutable once created and are consumed (removed from the residual
// pool) the moment they are placed.
type Box struct {
	CargoSpecID string
	Name        string
	Length      int
	Width       int
	Height      int
	Weight      int
	Unstackable bool
	Tag         string
}

// FromCargoSpec builds the Box representation of one unit of spec.
func FromCargoSpec(spec CargoSpec) Box {
	return Box{
		CargoSpecID: spec.ID,
		Name:        spec.Name,
		Length:      spec.Length,
		Width:       spec.Width,
		Height:      spec.Height,
		Weight:      spec.Weight,
		Unstackable: spec.Unstackable,
		Tag:         spec.Tag,
	}
}

// Expand turns a CargoSpec's quantity into that many independent Box
// occurrences, all carrying a back-reference to the originating spec.
func Expand(specs []CargoSpec) []Box {
	var boxes []Box
	for _, spec := range specs {
		for i := 0; i < spec.Quantity; i++ {
			boxes = append(boxes, FromCargoSpec(spec))
		}
	}
	return boxes
}

// Dims is an oriented (length, width, height) triple for a Box.
type Dims struct {
	L, W, H int
}

// Orientations returns the two planar orientations admissible for a
// Box: identity, and the L<->W swap. Height never changes — cargo is
// never tipped onto a side.
func (b Box) Orientations() []Dims {
	identity := Dims{L: b.Length, W: b.Width, H: b.Height}
	if b.Length == b.Width {
		return []Dims{identity}
	}
	swapped := Dims{L: b.Width, W: b.Length, H: b.Height}
	return []Dims{identity, swapped}
}

// FitsDoor reports whether this Box can pass through a door opening of
// (doorW, doorH) in at least one planar orientation (spec §4.3).
func (b Box) FitsDoor(doorW, doorH int) bool {
	if b.Width <= doorW && b.Height <= doorH {
		return true
	}
	if b.Length <= doorW && b.Height <= doorH {
		return true
	}
	return false
}
