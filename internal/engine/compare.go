package engine

import (
	"fmt"

	"github.com/ArvindGuruRK/construction-3d-plan/internal/model"
)

// ComparisonScenario defines a named set of settings to compare.
type ComparisonScenario struct {
	Name     string
	Settings model.Settings
}

// ComparisonResult holds the generated layout and summary figures
// for a single scenario.
type ComparisonResult struct {
	Scenario      ComparisonScenario
	Result        model.Result
	Err           error
	PlacedCount   int
	UnplacedCount int
	Coverage      float64
	DoorCount     int
	WindowCount   int
}

// CompareScenarios generates req under each scenario and returns the results
// in scenario order. A scenario whose settings reject the request keeps its
// error in Err instead of aborting the comparison.
func CompareScenarios(scenarios []ComparisonScenario, req model.RoomRequest, opts ...Option) []ComparisonResult {
	results := make([]ComparisonResult, 0, len(scenarios))

	for _, scenario := range scenarios {
		gen := New(scenario.Settings, opts...)
		res, err := gen.Generate(req)
		if err != nil {
			results = append(results, ComparisonResult{Scenario: scenario, Err: err})
			continue
		}

		results = append(results, ComparisonResult{
			Scenario:      scenario,
			Result:        res,
			PlacedCount:   res.PlacedCount(),
			UnplacedCount: len(res.Unplaced),
			Coverage:      res.Coverage(),
			DoorCount:     res.DoorCount(),
			WindowCount:   res.WindowCount(),
		})
	}

	return results
}

// BestScenario returns the index of the result that placed the most rooms,
// breaking ties by coverage. It returns -1 when every scenario failed.
func BestScenario(results []ComparisonResult) int {
	best := -1
	for i, r := range results {
		if r.Err != nil {
			continue
		}
		if best < 0 || r.PlacedCount > results[best].PlacedCount ||
			(r.PlacedCount == results[best].PlacedCount && r.Coverage > results[best].Coverage) {
			best = i
		}
	}
	return best
}

// BuildDefaultScenarios generates a set of comparison scenarios based on
// the current settings, varying key parameters to show what-if alternatives.
func BuildDefaultScenarios(baseSettings model.Settings) []ComparisonScenario {
	scenarios := []ComparisonScenario{
		{
			Name:     "Current Settings",
			Settings: baseSettings,
		},
	}

	// Scenario: more room for circulation
	loose := baseSettings
	loose.CirculationFactor = baseSettings.CirculationFactor + 0.15
	scenarios = append(scenarios, ComparisonScenario{
		Name:     fmt.Sprintf("Circulation %.2f", loose.CirculationFactor),
		Settings: loose,
	})

	// Scenario: square envelope
	if baseSettings.EnvelopeAspect != 1 {
		square := baseSettings
		square.EnvelopeAspect = 1
		scenarios = append(scenarios, ComparisonScenario{
			Name:     "Square Envelope",
			Settings: square,
		})
	}

	// Scenario: finer grid
	if baseSettings.GridSize > 0.25 {
		fine := baseSettings
		fine.GridSize = baseSettings.GridSize / 2
		fine.MinSplitSize = fine.GridSize
		scenarios = append(scenarios, ComparisonScenario{
			Name:     fmt.Sprintf("Grid %.2fm", fine.GridSize),
			Settings: fine,
		})
	}

	// Scenario: randomized aspect trials with a few seeds
	if !baseSettings.AspectJitter {
		for _, seed := range []int64{1, 2, 3} {
			jitter := baseSettings
			jitter.AspectJitter = true
			jitter.Seed = seed
			scenarios = append(scenarios, ComparisonScenario{
				Name:     fmt.Sprintf("Jitter seed %d", seed),
				Settings: jitter,
			})
		}
	}

	return scenarios
}
