package feasibility

import (
	"testing"

	"github.com/piwi3910/loadplan/internal/geometry"
	"github.com/piwi3910/loadplan/internal/grid"
	"github.com/piwi3910/loadplan/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testContainer() model.ContainerSpec {
	cat := model.NewCatalogue()
	return cat.MustGet(model.Type40GP)
}

func TestIsValid_FloorPlacementWithinBounds(t *testing.T) {
	o := New(testContainer())
	g := grid.New()
	pos := Pos{X: 0, Y: 0, Z: 0, Dims: model.Dims{L: 120, W: 100, H: 100}}
	require.True(t, o.IsValid(pos, g))
}

func TestIsValid_RejectsOutOfBounds(t *testing.T) {
	o := New(testContainer())
	g := grid.New()
	c := testContainer()
	pos := Pos{X: c.Length - 10, Y: 0, Z: 0, Dims: model.Dims{L: 50, W: 50, H: 50}}
	assert.False(t, o.IsValid(pos, g))
}

func TestIsValid_RejectsOverlap(t *testing.T) {
	o := New(testContainer())
	g := grid.New()
	g.Insert(geometry.Box{X: 0, Y: 0, Z: 0, L: 100, W: 100, H: 100}, "spec-a", false)

	overlapping := Pos{X: 50, Y: 0, Z: 50, Dims: model.Dims{L: 100, W: 100, H: 100}}
	assert.False(t, o.IsValid(overlapping, g))

	flush := Pos{X: 100, Y: 0, Z: 0, Dims: model.Dims{L: 100, W: 100, H: 100}}
	assert.True(t, o.IsValid(flush, g))
}

func TestIsValid_SupportFractionBelowThresholdRejected(t *testing.T) {
	o := New(testContainer())
	g := grid.New()
	// Base is only 40x100 under a 100x100 candidate: 40% support < 70%.
	g.Insert(geometry.Box{X: 0, Y: 0, Z: 0, L: 40, W: 100, H: 80}, "spec-a", false)

	pos := Pos{X: 0, Y: 80, Z: 0, Dims: model.Dims{L: 100, W: 100, H: 80}}
	assert.False(t, o.IsValid(pos, g))
}

func TestIsValid_SupportOnUnstackableRejected(t *testing.T) {
	o := New(testContainer())
	g := grid.New()
	g.Insert(geometry.Box{X: 0, Y: 0, Z: 0, L: 100, W: 100, H: 80}, "spec-a", true)

	pos := Pos{X: 0, Y: 80, Z: 0, Dims: model.Dims{L: 100, W: 100, H: 80}}
	assert.False(t, o.IsValid(pos, g))
}

func TestIsValid_FullSupportAccepted(t *testing.T) {
	o := New(testContainer())
	g := grid.New()
	g.Insert(geometry.Box{X: 0, Y: 0, Z: 0, L: 100, W: 100, H: 80}, "spec-a", false)

	pos := Pos{X: 0, Y: 80, Z: 0, Dims: model.Dims{L: 100, W: 100, H: 80}}
	assert.True(t, o.IsValid(pos, g))
}

func TestDoorFits(t *testing.T) {
	o := New(testContainer())
	fits := model.Box{Length: 200, Width: 100, Height: 100}
	assert.True(t, o.DoorFits(fits))

	tooTall := model.Box{Length: 100, Width: 100, Height: 300}
	assert.False(t, o.DoorFits(tooTall))
}

// TestForkliftBlocking exercises scenario S6 of the spec: an item sitting
// between a candidate and the door can block the straight-line fork path
// to that candidate even though the two never overlap in space.
func TestForkliftBlocking(t *testing.T) {
	o := New(testContainer())
	g := grid.New()

	// A sits further from the door-facing wall than any candidate here
	// (higher x), low to the floor and narrow in z, hugging the near
	// side wall.
	g.Insert(geometry.Box{X: 300, Y: 0, Z: 0, L: 100, W: 20, H: 100}, "A", false)

	// A candidate in the same z-band as A: the chassis's side-shift
	// envelope can't clear A's footprint to reach it.
	blocked := Pos{X: 0, Y: 0, Z: 0, Dims: model.Dims{L: 100, W: 20, H: 100}}
	assert.False(t, o.IsValid(blocked, g))

	// The same candidate shifted to the far side wall is well outside
	// A's blocking interval and remains reachable.
	clear := Pos{X: 0, Y: 0, Z: 200, Dims: model.Dims{L: 100, W: 20, H: 100}}
	assert.True(t, o.IsValid(clear, g))
}
