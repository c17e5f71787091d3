package scoring

import (
	"testing"

	"github.com/piwi3910/loadplan/internal/candidate"
	"github.com/piwi3910/loadplan/internal/feasibility"
	"github.com/piwi3910/loadplan/internal/geometry"
	"github.com/piwi3910/loadplan/internal/grid"
	"github.com/piwi3910/loadplan/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCtx() Context {
	container := model.NewCatalogue().MustGet(model.Type40GP)
	return Context{Container: container, Grid: grid.New()}
}

func triple(x, y, z, l, w, h int, unstackable bool) candidate.Triple {
	return candidate.Triple{
		Box: model.Box{CargoSpecID: "spec", Length: l, Width: w, Height: h, Unstackable: unstackable},
		Pos: feasibility.Pos{X: x, Y: y, Z: z, Dims: model.Dims{L: l, W: w, H: h}},
	}
}

func TestScoreWeightGateRejects(t *testing.T) {
	ctx := testCtx()
	tr := triple(0, 0, 0, 100, 100, 100, false)
	tr.Box.Weight = 100
	_, ok := Score(tr, ctx.Container.MaxPayloadKg, ctx)
	assert.False(t, ok)
}

func TestScoreBaseTermOrdersDeepLowSide(t *testing.T) {
	ctx := testCtx()
	shallow, ok := Score(triple(100, 0, 0, 50, 50, 50, false), 0, ctx)
	require.True(t, ok)
	deep, ok := Score(triple(50, 0, 0, 50, 50, 50, false), 0, ctx)
	require.True(t, ok)
	assert.Less(t, deep, shallow, "smaller x should score lower (better)")
}

func TestScoreUnstackableRewardsNearCeiling(t *testing.T) {
	container := model.NewCatalogue().MustGet(model.Type40GP)
	ctx := Context{Container: container, Grid: grid.New()}

	// Near the usable ceiling: small top_gap.
	near := triple(0, container.Height-60, 0, 50, 50, 50, true)
	nearScore, ok := Score(near, 0, ctx)
	require.True(t, ok)

	// Buried deep on the floor: large top_gap.
	buried := triple(0, 0, 0, 50, 50, 50, true)
	buriedScore, ok := Score(buried, 0, ctx)
	require.True(t, ok)

	assert.Less(t, nearScore, buriedScore)
}

func TestScoreStackableBackHalfBonus(t *testing.T) {
	ctx := testCtx()
	// The same back-half input is scored twice to check determinism;
	// then a candidate just in front of container midlength is compared
	// with it.
	mid := ctx.Container.Length / 2
	back, ok := Score(triple(mid-10, 0, 0, 50, 50, 50, false), 0, ctx)
	require.True(t, ok)
	front, ok := Score(triple(mid-10, 0, 0, 50, 50, 50, false), 0, ctx)
	require.True(t, ok)
	assert.Equal(t, back, front, "identical inputs must score identically (determinism)")

	frontOfMid, ok := Score(triple(mid+10, 0, 0, 50, 50, 50, false), 0, ctx)
	require.True(t, ok)
	// frontOfMid has both a larger base x term AND loses the back-half
	// bonus, so it must score strictly worse than the back candidate.
	assert.Greater(t, frontOfMid, back)
	// The gap exceeds the 20cm base-term difference alone by the bonus.
	assert.Greater(t, frontOfMid-back, 10000.0*20)
}

func TestScoreStackableOverhangPenalty(t *testing.T) {
	container := model.NewCatalogue().MustGet(model.Type40GP)
	g := grid.New()
	// Only a 40x100 base beneath a 100x100 candidate: well under the 85%
	// scoring threshold.
	g.Insert(geometry.Box{X: 0, Y: 0, Z: 0, L: 40, W: 100, H: 50}, "base", false)
	ctx := Context{Container: container, Grid: g}

	t2 := triple(0, 50, 0, 100, 100, 50, false)
	score, ok := Score(t2, 0, ctx)
	require.True(t, ok)
	assert.Greater(t, score, overhangPen)
}

func TestScoreGroupingAdhesionGroundLevelRequiresSameSpec(t *testing.T) {
	container := model.NewCatalogue().MustGet(model.Type40GP)
	g := grid.New()
	g.Insert(geometry.Box{X: 0, Y: 0, Z: 0, L: 100, W: 100, H: 50}, "other-spec", false)
	ctx := Context{Container: container, Grid: g}

	adjacent := triple(100, 0, 0, 100, 100, 50, false)
	scoreDifferentSpec, ok := Score(adjacent, 0, ctx)
	require.True(t, ok)

	g2 := grid.New()
	g2.Insert(geometry.Box{X: 0, Y: 0, Z: 0, L: 100, W: 100, H: 50}, "spec", false)
	ctx2 := Context{Container: container, Grid: g2}
	scoreSameSpec, ok := Score(adjacent, 0, ctx2)
	require.True(t, ok)

	assert.Less(t, scoreSameSpec, scoreDifferentSpec)
}

func TestScoreFlushAlignmentBonus(t *testing.T) {
	container := model.NewCatalogue().MustGet(model.Type40GP)
	g := grid.New()
	g.Insert(geometry.Box{X: 0, Y: 0, Z: 0, L: 100, W: 100, H: 50}, "spec", false)
	ctx := Context{Container: container, Grid: g}

	flushNeighbour := triple(100, 0, 0, 100, 100, 50, false)
	flushScore, ok := Score(flushNeighbour, 0, ctx)
	require.True(t, ok)

	tallerNeighbour := triple(100, 0, 0, 100, 100, 90, false)
	tallerScore, ok := Score(tallerNeighbour, 0, ctx)
	require.True(t, ok)

	assert.Less(t, flushScore, tallerScore)
}
