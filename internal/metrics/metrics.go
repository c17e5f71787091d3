// Package metrics - Prometheus metrics for the packing engine.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// PackDuration tracks how long a single container's packing loop
	// takes to run to completion.
	PackDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "loadplan_pack_duration_seconds",
		Help:    "Duration of a single-container packing run",
		Buckets: prometheus.ExponentialBuckets(0.001, 2, 12),
	})

	// ContainersPackedTotal counts containers closed, by container type.
	ContainersPackedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "loadplan_containers_packed_total",
		Help: "Total containers packed, by container type",
	}, []string{"container_type"})

	// ItemsPlacedTotal counts items committed to a container.
	ItemsPlacedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "loadplan_items_placed_total",
		Help: "Total cargo items placed across all containers",
	})

	// ItemsUnplacedTotal counts items left in the residual pool at the
	// end of a shipment.
	ItemsUnplacedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "loadplan_items_unplaced_total",
		Help: "Total cargo items left unplaced at shipment end",
	})

	// VolumeUtilization tracks per-container volume utilisation, by
	// container type.
	VolumeUtilization = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "loadplan_volume_utilization_ratio",
		Help: "Volume utilisation ratio of the most recently closed container",
	}, []string{"container_type"})

	// WeightUtilization tracks per-container weight utilisation, by
	// container type.
	WeightUtilization = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "loadplan_weight_utilization_ratio",
		Help: "Weight utilisation ratio of the most recently closed container",
	}, []string{"container_type"})
)
