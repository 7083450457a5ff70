package sim

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peterkuimelis/amdsim/internal/modifier"
)

func compareConfig() Config {
	cfg := DefaultConfig()
	cfg.Trials = 2000
	return cfg
}

func TestCompare_CoversRemainingOptions(t *testing.T) {
	deck := modifier.NewDeck()
	_, err := deck.ApplyUpgrades("remove two -1 cards", "remove two -1 cards")
	require.NoError(t, err)

	cmp, err := Compare(context.Background(), deck, DefaultBase, compareConfig())
	require.NoError(t, err)

	// Both "remove two -1 cards" slots are used up.
	require.Len(t, cmp.Options, 6)
	for i, opt := range cmp.Options {
		assert.NotEqual(t, modifier.RemoveTwoMinusOne, opt.Upgrade)
		assert.Equal(t, opt.Upgrade.String(), opt.Name)
		assert.InDelta(t, opt.Differential-cmp.Baseline.Differential, opt.Delta, 1e-12)
		if i > 0 {
			assert.Less(t, cmp.Options[i-1].Name, opt.Name)
		}
	}
}

func TestCompare_MatchesIndividualRuns(t *testing.T) {
	deck := modifier.NewDeck()
	cfg := compareConfig()

	cmp, err := Compare(context.Background(), deck, DefaultBase, cfg)
	require.NoError(t, err)

	baseline, err := Simulate(deck, DefaultBase, cfg)
	require.NoError(t, err)
	assert.Equal(t, baseline, cmp.Baseline.Differential)

	upgraded := deck.Clone()
	require.NoError(t, upgraded.Upgrade(modifier.AddTwoRollingPlusOne))
	want, err := Simulate(upgraded, DefaultBase, cfg)
	require.NoError(t, err)

	var found bool
	for _, opt := range cmp.Options {
		if opt.Upgrade == modifier.AddTwoRollingPlusOne {
			found = true
			assert.Equal(t, want, opt.Differential)
		}
	}
	assert.True(t, found)
}

func TestComparison_Ranked(t *testing.T) {
	cmp := Comparison{Options: []OptionResult{
		{Name: "a", Delta: 0.01},
		{Name: "b", Delta: 0.07},
		{Name: "c", Delta: -0.02},
	}}

	ranked := cmp.Ranked()
	require.Len(t, ranked, 3)
	assert.Equal(t, "b", ranked[0].Name)
	assert.Equal(t, "a", ranked[1].Name)
	assert.Equal(t, "c", ranked[2].Name)
	assert.Equal(t, "a", cmp.Options[0].Name, "Ranked must not reorder the source")
}

func TestCompareEach_Callback(t *testing.T) {
	var names []string
	cmp, err := CompareEach(context.Background(), modifier.NewDeck(), DefaultBase, compareConfig(), func(res OptionResult) error {
		names = append(names, res.Name)
		return nil
	})
	require.NoError(t, err)
	require.Len(t, names, len(cmp.Options))

	stop := errors.New("stop")
	calls := 0
	_, err = CompareEach(context.Background(), modifier.NewDeck(), DefaultBase, compareConfig(), func(OptionResult) error {
		calls++
		return stop
	})
	assert.ErrorIs(t, err, stop)
	assert.Equal(t, 1, calls)
}

func TestCompare_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cmp, err := Compare(ctx, modifier.NewDeck(), DefaultBase, compareConfig())
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, cmp.Options)
}
