package scenario

import "fmt"

// Numbered is a scenario together with its 1-based position in the suite.
type Numbered struct {
	Index    int
	Scenario Scenario
}

// Select picks scenarios by number. only runs a single scenario, from runs
// that scenario and every later one; zero means unset. only wins over from.
func Select(all []Scenario, only, from int) ([]Numbered, error) {
	switch {
	case only != 0:
		if only < 1 || only > len(all) {
			return nil, fmt.Errorf("%w: must be 1-%d, got %d", ErrScenarioRange, len(all), only)
		}

		return []Numbered{{Index: only, Scenario: all[only-1]}}, nil
	case from != 0:
		if from < 1 || from > len(all) {
			return nil, fmt.Errorf("%w: --from must be 1-%d, got %d", ErrScenarioRange, len(all), from)
		}
	default:
		from = 1
	}

	out := make([]Numbered, 0, len(all)-from+1)
	for i := from - 1; i < len(all); i++ {
		out = append(out, Numbered{Index: i + 1, Scenario: all[i]})
	}

	return out, nil
}
