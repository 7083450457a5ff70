// Package sim estimates how a modifier deck changes attack output by
// resolving many seeded attacks and comparing them with their base values.
package sim

import (
	"fmt"
	"math/rand/v2"

	"github.com/peterkuimelis/amdsim/internal/log"
	"github.com/peterkuimelis/amdsim/internal/modifier"
)

const (
	DefaultTrials   = 1000
	DefaultSeed     = 747
	DefaultHandSize = 9
)

// Config holds the parameters of one simulation run.
type Config struct {
	Trials    int            // attacks to resolve, at least one
	Seed      uint64         // seed of the single random source
	HandSize  int            // cards per hand (0 = DefaultHandSize)
	Bless     int            // bless cards shuffled in before the run
	Curse     int            // curse cards shuffled in before the run
	CurseCard *modifier.Card // card added per curse (nil = curse)
	Logger    log.EventLogger
}

// DefaultConfig returns the reference parameters.
func DefaultConfig() Config {
	return Config{
		Trials:   DefaultTrials,
		Seed:     DefaultSeed,
		HandSize: DefaultHandSize,
	}
}

func (c Config) withDefaults() Config {
	if c.HandSize == 0 {
		c.HandSize = DefaultHandSize
	}
	return c
}

func (c Config) curseCard() modifier.Card {
	if c.CurseCard == nil {
		return modifier.Curse
	}
	return *c.CurseCard
}

// Summary describes a finished run.
type Summary struct {
	Trials       int     `json:"trials"`
	Hands        int     `json:"hands"`
	TurnsPerHand int     `json:"turns_per_hand"`
	MeanBase     float64 `json:"mean_base"`
	MeanResolved float64 `json:"mean_resolved"`
	Differential float64 `json:"differential"`
}

// Simulate returns the relative differential of deck over cfg.Trials
// attacks: (mean resolved - mean base) / mean base.
func Simulate(deck *modifier.Deck, gen BaseGenerator, cfg Config) (float64, error) {
	s, err := Run(deck, gen, cfg)
	if err != nil {
		return 0, err
	}
	return s.Differential, nil
}

// Run simulates deck and returns the full summary. The deck itself is
// never modified.
//
// Every random decision comes from one source seeded with cfg.Seed, in
// call order: the initial shuffle, bless and curse shuffles, then for each
// trial any new-hand shuffle, the base value, and the draws of the attack.
// A new hand starts every Duration(cfg.HandSize) trials with a fresh
// shuffled copy of the prepared deck.
func Run(deck *modifier.Deck, gen BaseGenerator, cfg Config) (Summary, error) {
	cfg = cfg.withDefaults()
	if gen == nil {
		gen = DefaultBase
	}
	if v, ok := gen.(interface{ Validate() error }); ok {
		if err := v.Validate(); err != nil {
			return Summary{}, err
		}
	}
	if cfg.Trials < 1 {
		return Summary{}, fmt.Errorf("%d trials: %w", cfg.Trials, ErrNoTrials)
	}
	turns := Duration(cfg.HandSize)
	if turns < 1 {
		return Summary{}, fmt.Errorf("hand size %d: %w", cfg.HandSize, ErrInvalidHandSize)
	}

	r := rand.New(rand.NewPCG(cfg.Seed, 0))

	prepared := deck.Clone()
	prepared.Logger = cfg.Logger
	prepared.Shuffle(r)
	if cfg.Bless > 0 {
		prepared.Bless(r, cfg.Bless)
	}
	if cfg.Curse > 0 {
		prepared.Curse(r, cfg.curseCard(), cfg.Curse)
	}

	var (
		hand        *modifier.Deck
		hands       int
		sumBase     int64
		sumResolved int64
	)
	for i := 0; i < cfg.Trials; i++ {
		if i%turns == 0 {
			if cfg.Logger != nil {
				cfg.Logger.Log(log.NewHandEvent(i, turns))
			}
			hand = prepared.Clone()
			hand.Shuffle(r)
			hands++
		}

		base, err := gen.Next(r)
		if err != nil {
			return Summary{}, fmt.Errorf("trial %d: base value: %w", i, err)
		}
		value, err := hand.Evaluate(r, base)
		if err != nil {
			return Summary{}, fmt.Errorf("trial %d: %w", i, err)
		}
		sumBase += int64(base)
		sumResolved += int64(value)
	}

	n := float64(cfg.Trials)
	s := Summary{
		Trials:       cfg.Trials,
		Hands:        hands,
		TurnsPerHand: turns,
		MeanBase:     float64(sumBase) / n,
		MeanResolved: float64(sumResolved) / n,
	}
	if sumBase == 0 {
		return s, &DegenerateBaselineError{Trials: cfg.Trials, MeanResolved: s.MeanResolved}
	}
	s.Differential = (s.MeanResolved - s.MeanBase) / s.MeanBase
	return s, nil
}
