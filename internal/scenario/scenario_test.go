package scenario

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peterkuimelis/amdsim/internal/log"
	"github.com/peterkuimelis/amdsim/internal/modifier"
	"github.com/peterkuimelis/amdsim/internal/sim"
)

const sampleYAML = `
scenarios:
  - name: Starter
  - name: Brute
    upgrades:
      - remove two -1 cards
      - remove two -1 cards
      - remove two -1 cards
    trials: 5000
    seed: 0
    hand_size: 10
    base: {min: 3, max: 7}
    curse: 2
    curse_card: "null"
  - name: Flat
    cards:
      - {card: "+1", count: 3}
      - {card: "2x", count: 1}
`

func writeSample(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenarios.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleYAML), 0o644))
	return path
}

func TestParseFile(t *testing.T) {
	f, err := ParseFile(writeSample(t))
	require.NoError(t, err)
	require.Len(t, f.Scenarios, 3)

	assert.Equal(t, "Starter", f.Scenarios[0].Name)
	assert.Len(t, f.Scenarios[1].Upgrades, 3)
	assert.Equal(t, &BaseRange{Min: 3, Max: 7}, f.Scenarios[1].Base)
	assert.Len(t, f.Scenarios[2].Cards, 2)
}

func TestParse_Invalid(t *testing.T) {
	_, err := Parse([]byte("scenarios: [unterminated"))
	assert.Error(t, err)
}

func TestByNumber(t *testing.T) {
	path := writeSample(t)

	s, err := ByNumber(path, 2)
	require.NoError(t, err)
	assert.Equal(t, "Brute", s.Name)

	_, err = ByNumber(path, 4)
	assert.ErrorContains(t, err, "scenario 4 not found")
	_, err = ByNumber(path, 0)
	assert.Error(t, err)
}

func TestScenario_Deck(t *testing.T) {
	f, err := ParseFile(writeSample(t))
	require.NoError(t, err)

	logger := log.NewMemoryLogger()
	brute, err := f.Scenarios[1].Deck(logger)
	require.NoError(t, err)
	assert.Equal(t, 16, brute.Len())
	assert.Equal(t, 1, brute.Count(modifier.Nominal(-1)))
	assert.Len(t, logger.EventsOfType(log.EventUpgradeSkipped), 1, "third slot does not exist")

	flat, err := f.Scenarios[2].Deck(nil)
	require.NoError(t, err)
	assert.Equal(t, 4, flat.Len())
	assert.Equal(t, 3, flat.Count(modifier.Nominal(1)))
	assert.Equal(t, 1, flat.Count(modifier.Double))
}

func TestScenario_DeckBadCard(t *testing.T) {
	s := Scenario{Name: "bad", Cards: []CardEntry{{Card: "stun", Count: 1}}}
	_, err := s.Deck(nil)
	assert.ErrorIs(t, err, modifier.ErrUnknownCard)
}

func TestScenario_Config(t *testing.T) {
	f, err := ParseFile(writeSample(t))
	require.NoError(t, err)

	defaults := sim.DefaultConfig()

	starter, err := f.Scenarios[0].Config(defaults)
	require.NoError(t, err)
	assert.Equal(t, defaults, starter)
	assert.Equal(t, sim.DefaultBase, f.Scenarios[0].BaseGenerator(sim.DefaultBase))

	brute, err := f.Scenarios[1].Config(defaults)
	require.NoError(t, err)
	assert.Equal(t, 5000, brute.Trials)
	assert.Equal(t, uint64(0), brute.Seed, "explicit zero seed overrides the default")
	assert.Equal(t, 10, brute.HandSize)
	assert.Equal(t, 2, brute.Curse)
	require.NotNil(t, brute.CurseCard)
	assert.Equal(t, modifier.Null, *brute.CurseCard)
	assert.Equal(t, sim.Uniform{Min: 3, Max: 7}, f.Scenarios[1].BaseGenerator(sim.DefaultBase))
}

func TestScenario_Prepare(t *testing.T) {
	f, err := ParseFile(writeSample(t))
	require.NoError(t, err)

	p, err := f.Scenarios[1].Prepare(sim.DefaultConfig(), sim.DefaultBase)
	require.NoError(t, err)
	assert.Equal(t, 16, p.Deck.Len())
	assert.Nil(t, p.Deck.Logger)
	assert.Equal(t, sim.Uniform{Min: 3, Max: 7}, p.Base)
	assert.Equal(t, 5000, p.Config.Trials)
	require.Len(t, p.Skipped, 1)
	assert.Contains(t, p.Skipped[0], "remove two -1 cards")
}

func TestScenario_PrepareInvalid(t *testing.T) {
	tests := []struct {
		name    string
		sc      Scenario
		wantErr error
	}{
		{"negative trials", Scenario{Trials: -5}, sim.ErrNoTrials},
		{"hand size one", Scenario{HandSize: 1}, sim.ErrInvalidHandSize},
		{"empty base", Scenario{Base: &BaseRange{Min: 6, Max: 2}}, sim.ErrInvalidBounds},
		{"bad curse card", Scenario{CurseCard: "stun"}, modifier.ErrUnknownCard},
		{"hand size too large", Scenario{HandSize: 4_000_000_000_000_000_000}, ErrHandTooLarge},
		{"negative card count", Scenario{Cards: []CardEntry{{Card: "+1", Count: -1}}}, ErrNegativeCount},
		{"huge card count", Scenario{Cards: []CardEntry{{Card: "+1", Count: MaxCards + 1}}}, ErrTooManyCards},
		{"cards add up past limit", Scenario{Cards: []CardEntry{
			{Card: "+1", Count: MaxCards / 2},
			{Card: "-1", Count: MaxCards / 2},
			{Card: "2x", Count: 1},
		}}, ErrTooManyCards},
		{"huge bless", Scenario{Bless: 1 << 40}, ErrTooManyCards},
		{"curse past limit", Scenario{Curse: MaxCards - 5}, ErrTooManyCards},
		{"negative bless", Scenario{Bless: -1}, ErrNegativeCount},
		{"missing card for upgrade", Scenario{
			Cards:    []CardEntry{{Card: "+1", Count: 2}},
			Upgrades: []string{"remove four +0 cards"},
		}, modifier.ErrCardNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.sc.Prepare(sim.DefaultConfig(), sim.DefaultBase)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestScenario_ZeroCurseCard(t *testing.T) {
	sc := Scenario{Curse: 2, CurseCard: "+0"}
	cfg, err := sc.Config(sim.DefaultConfig())
	require.NoError(t, err)
	require.NotNil(t, cfg.CurseCard)
	assert.Equal(t, modifier.Nominal(0), *cfg.CurseCard)

	p, err := sc.Prepare(sim.DefaultConfig(), sim.DefaultBase)
	require.NoError(t, err)
	logger := log.NewMemoryLogger()
	p.Config.Trials = 1
	p.Config.Logger = logger
	_, err = sim.Run(p.Deck, p.Base, p.Config)
	require.NoError(t, err)

	curses := logger.EventsOfType(log.EventCurse)
	require.Len(t, curses, 1)
	assert.Equal(t, "+0", curses[0].Card)
}

func TestScenario_DefaultCurseCardIsNil(t *testing.T) {
	cfg, err := Scenario{Curse: 2}.Config(sim.DefaultConfig())
	require.NoError(t, err)
	assert.Nil(t, cfg.CurseCard)
}
