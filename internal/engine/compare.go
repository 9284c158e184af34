package engine

import (
	"fmt"

	"github.com/piwi3910/RoomPlan/internal/model"
)

// ComparisonScenario defines a named set of settings to compare.
type ComparisonScenario struct {
	Name     string
	Settings model.Settings
}

// ComparisonResult holds the solve result and summary figures for a single
// scenario.
type ComparisonResult struct {
	Scenario     ComparisonScenario
	Result       model.Result
	Feasible     bool
	Placed       int
	WallTouching int
	Candidates   int
	Utilization  float64
}

// CompareScenarios solves the same room and items under each scenario's
// settings and returns the results in scenario order. Options (such as a
// logger) apply to every run.
func CompareScenarios(scenarios []ComparisonScenario, room model.Room, items []model.Item, opts ...Option) []ComparisonResult {
	results := make([]ComparisonResult, 0, len(scenarios))

	for _, scenario := range scenarios {
		result := New(scenario.Settings, opts...).Solve(room, items)

		results = append(results, ComparisonResult{
			Scenario:     scenario,
			Result:       result,
			Feasible:     result.Feasible,
			Placed:       result.Placed(),
			WallTouching: result.Stats.WallTouching,
			Candidates:   result.Stats.Candidates,
			Utilization:  result.Stats.Utilization(),
		})
	}

	return results
}

// BuildDefaultScenarios generates a set of comparison scenarios based on
// the current settings, varying the sampling and tolerance parameters to
// show what-if alternatives.
func BuildDefaultScenarios(baseSettings model.Settings) []ComparisonScenario {
	base := baseSettings.WithDefaults()
	scenarios := []ComparisonScenario{
		{
			Name:     "Current Settings",
			Settings: base,
		},
	}

	finer := base
	finer.GridSpacing = base.GridSpacing / 2
	scenarios = append(scenarios, ComparisonScenario{
		Name:     fmt.Sprintf("Grid %.0fmm (finer)", finer.GridSpacing),
		Settings: finer,
	})

	coarser := base
	coarser.GridSpacing = base.GridSpacing * 2
	scenarios = append(scenarios, ComparisonScenario{
		Name:     fmt.Sprintf("Grid %.0fmm (coarser)", coarser.GridSpacing),
		Settings: coarser,
	})

	denser := base
	denser.WallStrideCap = base.WallStrideCap / 2
	denser.WallSubdivisions = base.WallSubdivisions * 2
	scenarios = append(scenarios, ComparisonScenario{
		Name:     fmt.Sprintf("Wall stride %.0fmm (denser)", denser.WallStrideCap),
		Settings: denser,
	})

	// Below 1mm the tolerance stops absorbing float noise from wall offsets.
	if base.TouchTolerance > 2 {
		tight := base
		tight.TouchTolerance = base.TouchTolerance / 2
		scenarios = append(scenarios, ComparisonScenario{
			Name:     fmt.Sprintf("Touch tolerance %.1fmm (tighter)", tight.TouchTolerance),
			Settings: tight,
		})
	}

	return scenarios
}
