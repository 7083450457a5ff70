package sim

import (
	"context"
	"fmt"
	"slices"

	"github.com/peterkuimelis/amdsim/internal/modifier"
)

// OptionResult is the outcome of simulating one upgrade on top of a deck.
type OptionResult struct {
	Upgrade      modifier.Upgrade `json:"-"`
	Name         string           `json:"name"`
	Differential float64          `json:"differential"`
	Delta        float64          `json:"delta"` // Differential minus the baseline's
}

// Comparison holds a baseline run and one run per remaining upgrade.
type Comparison struct {
	Baseline Summary        `json:"baseline"`
	Options  []OptionResult `json:"options"`
}

// Ranked returns the options ordered from largest to smallest gain.
func (c Comparison) Ranked() []OptionResult {
	out := slices.Clone(c.Options)
	slices.SortStableFunc(out, func(a, b OptionResult) int {
		switch {
		case a.Delta > b.Delta:
			return -1
		case a.Delta < b.Delta:
			return 1
		default:
			return 0
		}
	})
	return out
}

// Compare simulates deck as a baseline, then each distinct upgrade still
// available on it, applied to a copy. Every run uses the same cfg, so all
// of them see the same seed.
func Compare(ctx context.Context, deck *modifier.Deck, gen BaseGenerator, cfg Config) (Comparison, error) {
	return CompareEach(ctx, deck, gen, cfg, nil)
}

// CompareEach is Compare with a callback invoked as each option finishes.
// An error from fn stops the comparison.
func CompareEach(ctx context.Context, deck *modifier.Deck, gen BaseGenerator, cfg Config, fn func(OptionResult) error) (Comparison, error) {
	baseline, err := Run(deck, gen, cfg)
	if err != nil {
		return Comparison{}, fmt.Errorf("baseline: %w", err)
	}

	cmp := Comparison{Baseline: baseline}
	for _, u := range deck.DistinctOptions() {
		if err := ctx.Err(); err != nil {
			return cmp, err
		}

		d := deck.Clone()
		if err := d.Upgrade(u); err != nil {
			return cmp, err
		}
		diff, err := Simulate(d, gen, cfg)
		if err != nil {
			return cmp, fmt.Errorf("%s: %w", u, err)
		}

		res := OptionResult{
			Upgrade:      u,
			Name:         u.String(),
			Differential: diff,
			Delta:        diff - baseline.Differential,
		}
		cmp.Options = append(cmp.Options, res)
		if fn != nil {
			if err := fn(res); err != nil {
				return cmp, err
			}
		}
	}
	return cmp, nil
}
