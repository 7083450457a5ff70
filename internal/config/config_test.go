package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peterkuimelis/amdsim/internal/sim"
)

func TestLoad_Defaults(t *testing.T) {
	d, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 100000, d.Trials)
	assert.Equal(t, uint64(747), d.Seed)
	assert.Equal(t, 9, d.HandSize)
	assert.Equal(t, sim.DefaultBase, d.Base())
	assert.Equal(t, "scenarios.yaml", d.Scenarios)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("AMDSIM_TRIALS", "2500")
	t.Setenv("AMDSIM_SEED", "12")
	t.Setenv("AMDSIM_HAND_SIZE", "11")
	t.Setenv("AMDSIM_BASE_MIN", "1")
	t.Setenv("AMDSIM_BASE_MAX", "4")

	d, err := Load()
	require.NoError(t, err)

	cfg := d.SimConfig()
	assert.Equal(t, 2500, cfg.Trials)
	assert.Equal(t, uint64(12), cfg.Seed)
	assert.Equal(t, 11, cfg.HandSize)
	assert.Equal(t, sim.Uniform{Min: 1, Max: 4}, d.Base())
}

func TestLoad_Invalid(t *testing.T) {
	t.Run("not a number", func(t *testing.T) {
		t.Setenv("AMDSIM_TRIALS", "lots")
		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("empty base range", func(t *testing.T) {
		t.Setenv("AMDSIM_BASE_MIN", "5")
		t.Setenv("AMDSIM_BASE_MAX", "5")
		_, err := Load()
		assert.ErrorIs(t, err, sim.ErrInvalidBounds)
	})
}
