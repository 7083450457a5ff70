package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/peterkuimelis/amdsim/internal/config"
	amdlog "github.com/peterkuimelis/amdsim/internal/log"
	"github.com/peterkuimelis/amdsim/internal/modifier"
	"github.com/peterkuimelis/amdsim/internal/scenario"
	"github.com/peterkuimelis/amdsim/internal/sim"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cmd := os.Args[1]
	switch cmd {
	case "simulate":
		runSimulate(os.Args[2:])
	case "compare":
		runCompare(os.Args[2:])
	case "upgrades":
		runUpgrades()
	default:
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  amdsim simulate [deck flags]")
	fmt.Println("  amdsim compare  [deck flags] [--ranked]")
	fmt.Println("  amdsim upgrades")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  simulate  Print the relative differential of a deck")
	fmt.Println("  compare   Print how much each remaining upgrade changes the differential")
	fmt.Println("  upgrades  List every upgrade and its slot count")
	fmt.Println()
	fmt.Println("Deck flags:")
	fmt.Println("  --scenarios FILE --scenario N --upgrade NAME (repeatable)")
	fmt.Println("  --trials N --seed S --hand H --min A --max B")
	fmt.Println("  --bless N --curse N --curse-card CARD --trace")
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

// deckFlags are the flags shared by simulate and compare.
type deckFlags struct {
	fs        *flag.FlagSet
	scenarios *string
	number    *int
	upgrades  []string
	trials    *int
	seed      *uint64
	hand      *int
	min       *int
	max       *int
	bless     *int
	curse     *int
	curseCard *string
	trace     *bool
}

func newDeckFlags(name string, defaults config.Defaults) *deckFlags {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	f := &deckFlags{fs: fs}
	f.scenarios = fs.String("scenarios", defaults.Scenarios, "path to scenarios YAML file")
	f.number = fs.Int("scenario", 0, "scenario number to start from (from the scenarios file)")
	fs.Func("upgrade", "upgrade to apply, in order (repeatable)", func(s string) error {
		f.upgrades = append(f.upgrades, s)
		return nil
	})
	f.trials = fs.Int("trials", defaults.Trials, "number of attacks to simulate")
	f.seed = fs.Uint64("seed", defaults.Seed, "random seed")
	f.hand = fs.Int("hand", defaults.HandSize, "cards per hand")
	f.min = fs.Int("min", defaults.BaseMin, "smallest base attack value (inclusive)")
	f.max = fs.Int("max", defaults.BaseMax, "largest base attack value (exclusive)")
	f.bless = fs.Int("bless", 0, "bless cards shuffled in before the run")
	f.curse = fs.Int("curse", 0, "curse cards shuffled in before the run")
	f.curseCard = fs.String("curse-card", "", "card added per curse (default curse)")
	f.trace = fs.Bool("trace", false, "print every deck event")
	return f
}

// prepare resolves the parsed flags into a ready deck. Flags given on the
// command line override the scenario, which overrides the defaults.
func (f *deckFlags) prepare(defaults config.Defaults) scenario.Prepared {
	set := make(map[string]bool)
	f.fs.Visit(func(fl *flag.Flag) { set[fl.Name] = true })

	var sc scenario.Scenario
	if *f.number != 0 {
		var err error
		sc, err = scenario.ByNumber(*f.scenarios, *f.number)
		if err != nil {
			fatal(err)
		}
	}
	sc.Upgrades = append(sc.Upgrades, f.upgrades...)

	cfg := defaults.SimConfig()
	if set["trials"] {
		sc.Trials = *f.trials
		if sc.Trials < 1 {
			fatal(sim.ErrNoTrials)
		}
	}
	if set["seed"] {
		sc.Seed = f.seed
	}
	if set["hand"] {
		sc.HandSize = *f.hand
	}
	if set["bless"] {
		sc.Bless = *f.bless
	}
	if set["curse"] {
		sc.Curse = *f.curse
	}
	if set["curse-card"] {
		sc.CurseCard = *f.curseCard
	}

	base := sc.BaseGenerator(defaults.Base())
	if set["min"] {
		base.Min = *f.min
	}
	if set["max"] {
		base.Max = *f.max
	}
	sc.Base = &scenario.BaseRange{Min: base.Min, Max: base.Max}

	p, err := sc.Prepare(cfg, base)
	if err != nil {
		fatal(err)
	}
	for _, s := range p.Skipped {
		fmt.Fprintln(os.Stderr, s)
	}

	if *f.trace {
		p.Config.Logger = amdlog.NewTextLogger(os.Stdout)
	} else {
		p.Config.Logger = amdlog.NewWarnLogger(os.Stderr)
	}
	return p
}

func loadDefaults() config.Defaults {
	defaults, err := config.Load()
	if err != nil {
		fatal(err)
	}
	return defaults
}

func runSimulate(args []string) {
	defaults := loadDefaults()
	f := newDeckFlags("simulate", defaults)
	f.fs.Parse(args)
	p := f.prepare(defaults)

	s, err := sim.Run(p.Deck, p.Base, p.Config)
	if err != nil {
		fatal(err)
	}

	fmt.Printf("Deck: %d cards\n", p.Deck.Len())
	fmt.Printf("Trials: %d (%d hands of %d attacks)\n", s.Trials, s.Hands, s.TurnsPerHand)
	fmt.Printf("Mean base: %.3f\n", s.MeanBase)
	fmt.Printf("Mean resolved: %.3f\n", s.MeanResolved)
	fmt.Printf("Differential: %.2f%%\n", 100*s.Differential)
}

func runCompare(args []string) {
	defaults := loadDefaults()
	f := newDeckFlags("compare", defaults)
	ranked := f.fs.Bool("ranked", false, "order upgrades by gain instead of by name")
	f.fs.Parse(args)
	p := f.prepare(defaults)

	cmp, err := sim.Compare(context.Background(), p.Deck, p.Base, p.Config)
	if err != nil {
		fatal(err)
	}

	options := cmp.Options
	if *ranked {
		options = cmp.Ranked()
	}

	fmt.Printf("Baseline: %.2f%%\n\n", 100*cmp.Baseline.Differential)
	for _, opt := range options {
		fmt.Printf("%s:\n", opt.Name)
		fmt.Printf("%.2f%%\n\n", 100*opt.Delta)
	}
}

func runUpgrades() {
	slots := make(map[modifier.Upgrade]int)
	for _, u := range modifier.StandardOptions() {
		slots[u]++
	}
	for _, u := range modifier.AllUpgrades() {
		fmt.Printf("%-40s %s\n", u, strings.Repeat("*", slots[u]))
	}
}
