// ABOUTME: Picks the indicators to run from fuzzy command-line patterns
// ABOUTME: "spin" selects the spinner, "pct" the percentage counter

package main

import (
	"fmt"
	"slices"

	"github.com/sahilm/fuzzy"
)

var indicatorNames = []string{"bar", "percent", "spinner"}

// selectIndicators returns the indicators matched by patterns in demo
// order, each at most once. No patterns selects all of them.
func selectIndicators(patterns []string) ([]string, error) {
	if len(patterns) == 0 {
		return slices.Clone(indicatorNames), nil
	}

	picked := make(map[string]bool, len(indicatorNames))
	for _, p := range patterns {
		matches := fuzzy.Find(p, indicatorNames)
		if len(matches) == 0 {
			return nil, fmt.Errorf("no indicator matches %q (have %v)", p, indicatorNames)
		}
		// Matches are sorted best first.
		picked[matches[0].Str] = true
	}

	var names []string
	for _, n := range indicatorNames {
		if picked[n] {
			names = append(names, n)
		}
	}
	return names, nil
}
