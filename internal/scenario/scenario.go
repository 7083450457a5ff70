// Package scenario loads named simulation setups from YAML files.
package scenario

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/peterkuimelis/amdsim/internal/log"
	"github.com/peterkuimelis/amdsim/internal/modifier"
	"github.com/peterkuimelis/amdsim/internal/sim"
)

// File represents the top-level YAML structure.
type File struct {
	Scenarios []Scenario `yaml:"scenarios"`
}

// Scenario represents a single deck setup in the YAML file. Zero-valued
// numeric fields fall back to the caller's defaults.
type Scenario struct {
	Name      string      `yaml:"name" json:"name"`
	Cards     []CardEntry `yaml:"cards,omitempty" json:"cards,omitempty"` // replaces the standard deck when set
	Upgrades  []string    `yaml:"upgrades,omitempty" json:"upgrades,omitempty"`
	Trials    int         `yaml:"trials,omitempty" json:"trials,omitempty"`
	Seed      *uint64     `yaml:"seed,omitempty" json:"seed,omitempty"`
	HandSize  int         `yaml:"hand_size,omitempty" json:"hand_size,omitempty"`
	Base      *BaseRange  `yaml:"base,omitempty" json:"base,omitempty"`
	Bless     int         `yaml:"bless,omitempty" json:"bless,omitempty"`
	Curse     int         `yaml:"curse,omitempty" json:"curse,omitempty"`
	CurseCard string      `yaml:"curse_card,omitempty" json:"curse_card,omitempty"`
}

// CardEntry represents a card and its count in a custom deck.
type CardEntry struct {
	Card  string `yaml:"card" json:"card"`
	Count int    `yaml:"count" json:"count"`
}

// BaseRange is the half-open range of base attack values.
type BaseRange struct {
	Min int `yaml:"min" json:"min"`
	Max int `yaml:"max" json:"max"`
}

// Parse parses YAML scenario data.
func Parse(data []byte) (File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return File{}, fmt.Errorf("parse scenario YAML: %w", err)
	}
	return f, nil
}

// ParseFile reads and parses a YAML scenario file.
func ParseFile(path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, err
	}
	return Parse(data)
}

// ByNumber returns the Nth scenario (1-indexed) from the file.
func ByNumber(path string, n int) (Scenario, error) {
	f, err := ParseFile(path)
	if err != nil {
		return Scenario{}, err
	}
	if n < 1 || n > len(f.Scenarios) {
		return Scenario{}, fmt.Errorf("scenario %d not found (have %d scenarios)", n, len(f.Scenarios))
	}
	return f.Scenarios[n-1], nil
}

// Deck builds the scenario's deck and applies its upgrades. Unavailable
// upgrades are reported to logger, which may be nil.
func (s Scenario) Deck(logger log.EventLogger) (*modifier.Deck, error) {
	var d *modifier.Deck
	if len(s.Cards) == 0 {
		d = modifier.NewDeck()
	} else {
		var cards []modifier.Card
		for _, entry := range s.Cards {
			card, err := modifier.ParseCard(entry.Card)
			if err != nil {
				return nil, fmt.Errorf("scenario %q: %w", s.Name, err)
			}
			for i := 0; i < entry.Count; i++ {
				cards = append(cards, card)
			}
		}
		d = modifier.NewDeckFrom(cards)
	}

	d.Logger = logger
	if _, err := d.ApplyUpgrades(s.Upgrades...); err != nil {
		return nil, fmt.Errorf("scenario %q: %w", s.Name, err)
	}
	return d, nil
}

// Config overlays the scenario's settings on defaults.
func (s Scenario) Config(defaults sim.Config) (sim.Config, error) {
	cfg := defaults
	if s.Trials != 0 {
		cfg.Trials = s.Trials
	}
	if s.Seed != nil {
		cfg.Seed = *s.Seed
	}
	if s.HandSize != 0 {
		cfg.HandSize = s.HandSize
	}
	if s.Bless != 0 {
		cfg.Bless = s.Bless
	}
	if s.Curse != 0 {
		cfg.Curse = s.Curse
	}
	if s.CurseCard != "" {
		card, err := modifier.ParseCard(s.CurseCard)
		if err != nil {
			return sim.Config{}, fmt.Errorf("scenario %q: curse_card: %w", s.Name, err)
		}
		cfg.CurseCard = &card
	}
	return cfg, nil
}

// BaseGenerator returns the scenario's base range, or fallback if unset.
func (s Scenario) BaseGenerator(fallback sim.Uniform) sim.Uniform {
	if s.Base == nil {
		return fallback
	}
	return sim.Uniform{Min: s.Base.Min, Max: s.Base.Max}
}

// Limits applied by Prepare so a single scenario stays cheap to simulate.
const (
	MaxHandSize = 64
	MaxCards    = 10_000
)

// Prepared is a scenario resolved against defaults and ready to simulate.
type Prepared struct {
	Deck    *modifier.Deck
	Base    sim.Uniform
	Config  sim.Config
	Skipped []string // reports for upgrades that had no slot left
}

// Prepare builds the deck, config and base range of the scenario and
// checks them before any trial runs.
func (s Scenario) Prepare(defaults sim.Config, base sim.Uniform) (Prepared, error) {
	cfg, err := s.Config(defaults)
	if err != nil {
		return Prepared{}, err
	}
	if cfg.Trials < 1 {
		return Prepared{}, fmt.Errorf("scenario %q: %w", s.Name, sim.ErrNoTrials)
	}
	if cfg.HandSize > MaxHandSize {
		return Prepared{}, fmt.Errorf("scenario %q: hand size %d above %d: %w", s.Name, cfg.HandSize, MaxHandSize, ErrHandTooLarge)
	}
	if sim.Duration(cfg.HandSize) < 1 {
		return Prepared{}, fmt.Errorf("scenario %q: hand size %d: %w", s.Name, cfg.HandSize, sim.ErrInvalidHandSize)
	}
	if cfg.Bless < 0 || cfg.Curse < 0 {
		return Prepared{}, fmt.Errorf("scenario %q: bless and curse: %w", s.Name, ErrNegativeCount)
	}
	if err := s.checkSize(cfg); err != nil {
		return Prepared{}, fmt.Errorf("scenario %q: %w", s.Name, err)
	}
	gen := s.BaseGenerator(base)
	if err := gen.Validate(); err != nil {
		return Prepared{}, fmt.Errorf("scenario %q: %w", s.Name, err)
	}

	logger := log.NewMemoryLogger()
	d, err := s.Deck(logger)
	if err != nil {
		return Prepared{}, err
	}
	d.Logger = nil

	p := Prepared{Deck: d, Base: gen, Config: cfg}
	for _, e := range logger.EventsOfType(log.EventUpgradeSkipped) {
		p.Skipped = append(p.Skipped, e.Details)
	}
	return p, nil
}

// checkSize bounds the number of cards the deck can hold once bless and
// curse cards are shuffled in.
func (s Scenario) checkSize(cfg sim.Config) error {
	if cfg.Bless > MaxCards || cfg.Curse > MaxCards {
		return fmt.Errorf("%d bless, %d curse: %w", cfg.Bless, cfg.Curse, ErrTooManyCards)
	}
	total := cfg.Bless + cfg.Curse
	if len(s.Cards) == 0 {
		total += len(modifier.StandardCards())
	}
	for _, entry := range s.Cards {
		if entry.Count < 0 {
			return fmt.Errorf("%s x%d: %w", entry.Card, entry.Count, ErrNegativeCount)
		}
		if entry.Count > MaxCards {
			return fmt.Errorf("%s x%d: %w", entry.Card, entry.Count, ErrTooManyCards)
		}
		total += entry.Count
	}
	if total > MaxCards {
		return fmt.Errorf("%d cards: %w", total, ErrTooManyCards)
	}
	return nil
}
