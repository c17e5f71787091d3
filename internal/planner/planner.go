// Package planner implements the multi-container shipment planner (spec
// §4.7): pre-sorting the cargo pool and deciding, container by
// container, which ContainerSpec to open next under one of three
// strategies.
package planner

import (
	"context"
	"sort"
	"time"

	"github.com/piwi3910/loadplan/internal/metrics"
	"github.com/piwi3910/loadplan/internal/model"
	"github.com/piwi3910/loadplan/internal/packer"
	"github.com/piwi3910/loadplan/internal/progress"
)

const (
	areaEpsilon = 50
	qtyEpsilon  = 10
	// minVolumeMarginM3 is the volume threshold, in cubic metres, by
	// which a 40HQ must exceed a 40GP candidate (at equal item counts)
	// to be worth the extra cost (spec §4.7).
	minVolumeMarginM3 = 2.0
)

// Presort orders a Box pool per spec §4.7: stackable before unstackable,
// then base area descending (epsilon 50 cm^2), quantity descending
// (epsilon 10; quantity here is the count of same-spec boxes still in
// pool), then weight descending.
func Presort(pool []model.Box) []model.Box {
	sorted := make([]model.Box, len(pool))
	copy(sorted, pool)

	qty := make(map[string]int)
	for _, b := range sorted {
		qty[b.CargoSpecID]++
	}

	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.Unstackable != b.Unstackable {
			return !a.Unstackable
		}
		areaA, areaB := a.Length*a.Width, b.Length*b.Width
		if absInt(areaA-areaB) > areaEpsilon {
			return areaA > areaB
		}
		qtyA, qtyB := qty[a.CargoSpecID], qty[b.CargoSpecID]
		if absInt(qtyA-qtyB) > qtyEpsilon {
			return qtyA > qtyB
		}
		return a.Weight > b.Weight
	})
	return sorted
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// packAndInstrument runs the single-container packer for a committed
// container decision and records its duration and utilisation in the
// engine's Prometheus metrics (ambient instrumentation only; the core
// packing loop itself never consults a wall clock).
func packAndInstrument(ctx context.Context, container model.ContainerSpec, remaining []model.Box) model.PackResult {
	start := time.Now()
	result := packer.Pack(ctx, container, remaining)
	metrics.PackDuration.Observe(time.Since(start).Seconds())
	metrics.ContainersPackedTotal.WithLabelValues(container.Type).Inc()
	metrics.ItemsPlacedTotal.Add(float64(len(result.Placements)))
	metrics.VolumeUtilization.WithLabelValues(container.Type).Set(result.VolumeUtilization)
	metrics.WeightUtilization.WithLabelValues(container.Type).Set(result.WeightUtilization)
	return result
}

// Plan packs a pre-sorted pool into a Fixed sequence of ContainerSpecs,
// piping residuals forward. Stops when no items remain or the sequence
// is exhausted.
func Plan(ctx context.Context, sequence []model.ContainerSpec, pool []model.Box, reporter progress.Reporter) model.Shipment {
	var shipment model.Shipment
	remaining := pool

	for i, container := range sequence {
		if len(remaining) == 0 {
			break
		}
		if ctx.Err() != nil {
			shipment.Results = append(shipment.Results, model.PackResult{Unplaced: remaining})
			return shipment
		}
		reporter.Report(progress.Stagef("Packing container %d (%s)...", i+1, container.Type))
		result := packAndInstrument(ctx, container, remaining)
		remaining = result.Unplaced
		result.Unplaced = nil
		shipment.Results = append(shipment.Results, result)
	}

	if len(remaining) > 0 {
		appendResidual(&shipment, remaining)
	}
	return shipment
}

// Uniform repeatedly packs containers of a single spec until the
// residual is empty or a container places zero items.
func Uniform(ctx context.Context, container model.ContainerSpec, pool []model.Box, reporter progress.Reporter) model.Shipment {
	var shipment model.Shipment
	remaining := pool
	n := 0

	for len(remaining) > 0 {
		if ctx.Err() != nil {
			break
		}
		n++
		reporter.Report(progress.Stagef("Packing container %d (%s)...", n, container.Type))
		result := packAndInstrument(ctx, container, remaining)
		placed := len(result.Placements)
		remaining = result.Unplaced
		result.Unplaced = nil
		shipment.Results = append(shipment.Results, result)
		if placed == 0 {
			break
		}
	}

	if len(remaining) > 0 {
		appendResidual(&shipment, remaining)
	}
	return shipment
}

// SmartMix implements the SMART_MIX heuristic: try the cheapest
// container first, escalate only when the residual demands it (spec
// §4.7).
func SmartMix(ctx context.Context, catalogue *model.Catalogue, pool []model.Box, reporter progress.Reporter) model.Shipment {
	var shipment model.Shipment
	remaining := pool
	n := 0

	for len(remaining) > 0 {
		if ctx.Err() != nil {
			break
		}
		n++
		container := chooseContainer(ctx, catalogue, remaining, n, reporter)
		reporter.Report(progress.Stagef("Packing container %d (%s)...", n, container.Type))
		result := packAndInstrument(ctx, container, remaining)
		placed := len(result.Placements)
		remaining = result.Unplaced
		result.Unplaced = nil
		shipment.Results = append(shipment.Results, result)
		if placed == 0 {
			break
		}
	}

	if len(remaining) > 0 {
		appendResidual(&shipment, remaining)
	}
	return shipment
}

// chooseContainer runs the SMART_MIX decision tree for one container
// slot: 20GP if it clears the whole residual, 40HQ if any item exceeds
// 40GP's usable height, else a simulated comparison between 40GP and
// 40HQ.
func chooseContainer(ctx context.Context, catalogue *model.Catalogue, remaining []model.Box, n int, reporter progress.Reporter) model.ContainerSpec {
	reporter.Report(progress.Stagef("Simulating container %d candidates...", n))

	small := catalogue.MustGet(model.Type20GP)
	simSmall := packer.Pack(ctx, small, remaining)
	if len(simSmall.Unplaced) == 0 {
		return small
	}

	mid := catalogue.MustGet(model.Type40GP)
	large := catalogue.MustGet(model.Type40HQ)
	midUsableHeight := float64(mid.Height) - model.OperationBuffer - model.ForkliftLiftMargin
	if hasExtraTall(remaining, midUsableHeight) {
		return large
	}

	simMid := packer.Pack(ctx, mid, remaining)
	simLarge := packer.Pack(ctx, large, remaining)

	placedMid := len(simMid.Placements)
	placedLarge := len(simLarge.Placements)

	if placedLarge > placedMid {
		return large
	}
	if placedLarge == placedMid {
		if len(simLarge.Unplaced) == 0 && len(simMid.Unplaced) > 0 {
			return large
		}
		if simLarge.UsedVolume-simMid.UsedVolume >= minVolumeMarginM3*1_000_000 {
			return large
		}
	}
	return mid
}

// hasExtraTall reports whether any Box in pool exceeds the given usable
// height.
func hasExtraTall(pool []model.Box, usableHeight float64) bool {
	for _, b := range pool {
		if float64(b.Height) > usableHeight {
			return true
		}
	}
	return false
}

// appendResidual aggregates leftover Boxes onto the last PackResult, or
// creates an empty-container placeholder result if the shipment packed
// nothing at all (spec §4.7, "unplaced items aggregated onto the last
// PackResult").
func appendResidual(shipment *model.Shipment, remaining []model.Box) {
	if len(shipment.Results) == 0 {
		shipment.Results = append(shipment.Results, model.PackResult{Unplaced: remaining})
		return
	}
	last := &shipment.Results[len(shipment.Results)-1]
	last.Unplaced = append(last.Unplaced, remaining...)
}
