// Package report renders a completed Shipment as a plain-text or JSON
// summary: per-container utilisation and an unplaced-item tally. It is
// adapted from the teacher's internal/export label-collection idea
// (collect a summary struct, then render it), stripped of any
// print/PDF concern since a loading plan has no physical label sheet
// to produce.
package report

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/piwi3910/loadplan/internal/model"
)

// ContainerSummary is the reporting-layer view of one packed
// container: what type it was, how many items it holds, and how full
// it ended up.
type ContainerSummary struct {
	Index             int     `json:"index"`
	ContainerType     string  `json:"container_type"`
	ItemsPlaced       int     `json:"items_placed"`
	UsedVolumeM3      float64 `json:"used_volume_m3"`
	VolumeUtilization float64 `json:"volume_utilization"`
	TotalWeightKg     int     `json:"total_weight_kg"`
	WeightUtilization float64 `json:"weight_utilization"`
}

// UnplacedSummary groups residual boxes by CargoSpecID so the report
// doesn't spell out one line per physical unit.
type UnplacedSummary struct {
	CargoSpecID string `json:"cargo_spec_id"`
	Name        string `json:"name"`
	Count       int    `json:"count"`
}

// Summary is the full shipment report: one entry per packed container,
// plus a grouped tally of whatever never made it into a container.
type Summary struct {
	Containers  []ContainerSummary `json:"containers"`
	Unplaced    []UnplacedSummary  `json:"unplaced"`
	TotalPlaced int                `json:"total_placed"`
}

// Collect builds a Summary from a completed Shipment.
func Collect(shipment model.Shipment) Summary {
	summary := Summary{TotalPlaced: shipment.TotalPlaced()}

	for i, result := range shipment.Results {
		summary.Containers = append(summary.Containers, ContainerSummary{
			Index:             i + 1,
			ContainerType:     result.ContainerType,
			ItemsPlaced:       len(result.Placements),
			UsedVolumeM3:      result.UsedVolume / 1_000_000,
			VolumeUtilization: result.VolumeUtilization,
			TotalWeightKg:     result.TotalWeight,
			WeightUtilization: result.WeightUtilization,
		})
	}

	counts := make(map[string]*UnplacedSummary)
	var order []string
	for _, box := range shipment.Residual() {
		entry, ok := counts[box.CargoSpecID]
		if !ok {
			entry = &UnplacedSummary{CargoSpecID: box.CargoSpecID, Name: box.Name}
			counts[box.CargoSpecID] = entry
			order = append(order, box.CargoSpecID)
		}
		entry.Count++
	}
	sort.Strings(order)
	for _, id := range order {
		summary.Unplaced = append(summary.Unplaced, *counts[id])
	}

	return summary
}

// RenderText formats a Summary as a human-readable report: one line
// per container, a total-placed line, then an unplaced-items section
// ("Unplaced: none" when nothing is left over).
func RenderText(summary Summary) string {
	var b strings.Builder

	for _, c := range summary.Containers {
		fmt.Fprintf(&b, "Container %d (%s): %d items, %.1f m3 (%.0f%% volume, %.0f%% weight)\n",
			c.Index, c.ContainerType, c.ItemsPlaced, c.UsedVolumeM3,
			c.VolumeUtilization*100, c.WeightUtilization*100)
	}

	fmt.Fprintf(&b, "Total placed: %d\n", summary.TotalPlaced)

	if len(summary.Unplaced) == 0 {
		b.WriteString("Unplaced: none\n")
		return b.String()
	}

	b.WriteString("Unplaced:\n")
	for _, u := range summary.Unplaced {
		fmt.Fprintf(&b, "  %s: %d\n", u.Name, u.Count)
	}
	return b.String()
}

// RenderJSON formats a Summary as indented JSON.
func RenderJSON(summary Summary) ([]byte, error) {
	return json.MarshalIndent(summary, "", "  ")
}
