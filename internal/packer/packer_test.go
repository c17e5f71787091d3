package packer

import (
	"context"
	"testing"

	"github.com/piwi3910/loadplan/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boxesFromSpec(spec model.CargoSpec) []model.Box {
	return model.Expand([]model.CargoSpec{spec})
}

func TestPackSingleItemFitsFloor(t *testing.T) {
	container := model.NewCatalogue().MustGet(model.Type20GP)
	spec := model.NewCargoSpec("pallet", 120, 100, 100, 50, 1)
	pool := boxesFromSpec(spec)

	result := Pack(context.Background(), container, pool)

	require.Len(t, result.Placements, 1)
	p := result.Placements[0]
	assert.Equal(t, 0, p.X)
	assert.Equal(t, 0, p.Y)
	assert.Equal(t, 0, p.Z)
	assert.Equal(t, 1, p.Sequence)
	assert.Empty(t, result.Unplaced)
	assert.Greater(t, result.VolumeUtilization, 0.0)
}

func TestPackSequenceNumbersStrictlyIncreasing(t *testing.T) {
	container := model.NewCatalogue().MustGet(model.Type20GP)
	spec := model.NewCargoSpec("crate", 80, 80, 80, 20, 10)
	pool := boxesFromSpec(spec)

	result := Pack(context.Background(), container, pool)
	require.NotEmpty(t, result.Placements)
	for i, p := range result.Placements {
		assert.Equal(t, i+1, p.Sequence)
	}
}

func TestPackDoorTooSmallGoesToUnplaced(t *testing.T) {
	container := model.NewCatalogue().MustGet(model.Type20GP)
	// Neither planar orientation fits the door: door is 234x228.
	oversized := model.NewCargoSpec("oversized", 300, 300, 100, 500, 1)
	pool := boxesFromSpec(oversized)

	result := Pack(context.Background(), container, pool)
	assert.Empty(t, result.Placements)
	require.Len(t, result.Unplaced, 1)
	assert.Equal(t, "oversized", result.Unplaced[0].Name)
}

func TestPackRespectsWeightCap(t *testing.T) {
	container := model.NewCatalogue().MustGet(model.Type20GP)
	// Each item weighs more than half the container's payload cap, so
	// only one of two can be placed.
	spec := model.NewCargoSpec("heavy", 100, 100, 100, container.MaxPayloadKg/2+1, 2)
	pool := boxesFromSpec(spec)

	result := Pack(context.Background(), container, pool)
	assert.Len(t, result.Placements, 1)
	assert.Len(t, result.Unplaced, 1)
	assert.LessOrEqual(t, result.TotalWeight, container.MaxPayloadKg)
}

func TestPackCancellationStopsAndReturnsResidual(t *testing.T) {
	container := model.NewCatalogue().MustGet(model.Type40GP)
	spec := model.NewCargoSpec("box", 60, 60, 60, 10, 50)
	pool := boxesFromSpec(spec)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result := Pack(ctx, container, pool)
	assert.Len(t, result.Unplaced, len(pool))
	assert.Empty(t, result.Placements)
}
