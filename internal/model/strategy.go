package model

import (
	"fmt"
	"strings"
)

// StrategyKind selects how the shipment planner chooses container
// types across iterations (spec §4.7).
type StrategyKind int

const (
	// SmartMix simulates 20GP/40GP/40HQ on the residual pool before
	// each new container and commits the best.
	SmartMix StrategyKind = iota
	// Uniform repeatedly packs into containers of a single spec.
	Uniform
	// Plan walks an explicit, caller-supplied sequence of container
	// types, piping residuals forward.
	Plan
)

// Strategy is the tagged selector the planner dispatches on. Exactly
// one of the fields is meaningful, selected by Kind.
type Strategy struct {
	Kind        StrategyKind
	UniformType string   // used when Kind == Uniform
	PlanTypes   []string // used when Kind == Plan
}

// SmartMixStrategy returns the SMART_MIX selector.
func SmartMixStrategy() Strategy { return Strategy{Kind: SmartMix} }

// UniformStrategy returns a strategy that only ever opens containers
// of the given type.
func UniformStrategy(containerType string) Strategy {
	return Strategy{Kind: Uniform, UniformType: containerType}
}

// PlanStrategy returns a strategy that opens containers in the given
// fixed sequence, stopping when the sequence is exhausted.
func PlanStrategy(containerTypes []string) Strategy {
	return Strategy{Kind: Plan, PlanTypes: containerTypes}
}

// ParseStrategy parses the CLI's --strategy flag syntax: "smart-mix",
// "uniform:<type>", or "plan:<type,type,...>".
func ParseStrategy(s string) (Strategy, error) {
	switch {
	case s == "smart-mix":
		return SmartMixStrategy(), nil
	case strings.HasPrefix(s, "uniform:"):
		typeName := strings.TrimPrefix(s, "uniform:")
		if typeName == "" {
			return Strategy{}, fmt.Errorf("uniform strategy requires a container type")
		}
		return UniformStrategy(typeName), nil
	case strings.HasPrefix(s, "plan:"):
		var types []string
		for _, name := range strings.Split(strings.TrimPrefix(s, "plan:"), ",") {
			name = strings.TrimSpace(name)
			if name == "" {
				continue
			}
			types = append(types, name)
		}
		if len(types) == 0 {
			return Strategy{}, fmt.Errorf("plan strategy requires at least one container type")
		}
		return PlanStrategy(types), nil
	default:
		return Strategy{}, fmt.Errorf("unrecognized strategy %q (want smart-mix, uniform:<type>, or plan:<type,...>)", s)
	}
}
