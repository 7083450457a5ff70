package modifier

import (
	"fmt"
	"slices"

	"github.com/peterkuimelis/amdsim/internal/log"
)

// Upgrade identifies a deck improvement.
type Upgrade int

const (
	RemoveTwoMinusOne Upgrade = iota
	RemoveFourZero
	ReplaceMinusTwoWithZero
	ReplaceMinusOneWithPlusOne
	ReplaceZeroWithPlusTwo
	IgnoreNegativeEffects
	AddTwoRollingPlusOne
)

// upgradeDef pairs an upgrade's display name with its transformation.
type upgradeDef struct {
	name  string
	apply func(d *Deck) error
}

// upgradeRegistry maps each upgrade to its definition.
var upgradeRegistry = map[Upgrade]upgradeDef{
	RemoveTwoMinusOne: {
		name:  "remove two -1 cards",
		apply: removeCards(Nominal(-1), 2),
	},
	RemoveFourZero: {
		name:  "remove four +0 cards",
		apply: removeCards(Nominal(0), 4),
	},
	ReplaceMinusTwoWithZero: {
		name:  "replace one -2 card with one +0 card",
		apply: replaceCard(Nominal(-2), Nominal(0)),
	},
	ReplaceMinusOneWithPlusOne: {
		name:  "replace one -1 card with one +1 card",
		apply: replaceCard(Nominal(-1), Nominal(1)),
	},
	ReplaceZeroWithPlusTwo: {
		name:  "replace one +0 card with one +2 card",
		apply: replaceCard(Nominal(0), Nominal(2)),
	},
	IgnoreNegativeEffects: {
		name: "ignore negative scenario effects",
		apply: func(d *Deck) error {
			d.immune = true
			return nil
		},
	},
	AddTwoRollingPlusOne: {
		name: "add two rolling +1 cards",
		apply: func(d *Deck) error {
			d.AddCard(RollingPlus1)
			d.AddCard(RollingPlus1)
			return nil
		},
	},
}

// StandardOptions returns the upgrade slots of a fresh deck. Some upgrades
// can be taken twice and so appear twice.
func StandardOptions() []Upgrade {
	return []Upgrade{
		RemoveTwoMinusOne,
		RemoveTwoMinusOne,
		RemoveFourZero,
		ReplaceMinusTwoWithZero,
		ReplaceMinusOneWithPlusOne,
		ReplaceZeroWithPlusTwo,
		ReplaceZeroWithPlusTwo,
		IgnoreNegativeEffects,
		AddTwoRollingPlusOne,
	}
}

func (u Upgrade) String() string {
	if def, ok := upgradeRegistry[u]; ok {
		return def.name
	}
	return fmt.Sprintf("Upgrade(%d)", int(u))
}

// ParseUpgrade looks up an upgrade by its display name.
func ParseUpgrade(name string) (Upgrade, error) {
	for u, def := range upgradeRegistry {
		if def.name == name {
			return u, nil
		}
	}
	return 0, fmt.Errorf("%q: %w", name, ErrUnknownUpgrade)
}

// AllUpgrades returns every known upgrade, sorted by name.
func AllUpgrades() []Upgrade {
	all := make([]Upgrade, 0, len(upgradeRegistry))
	for u := range upgradeRegistry {
		all = append(all, u)
	}
	sortByName(all)
	return all
}

// Options returns the upgrade slots not yet used on this deck.
func (d *Deck) Options() []Upgrade {
	return slices.Clone(d.options)
}

// DistinctOptions returns the remaining upgrades without duplicates,
// sorted by name.
func (d *Deck) DistinctOptions() []Upgrade {
	seen := make(map[Upgrade]bool)
	var out []Upgrade
	for _, u := range d.options {
		if !seen[u] {
			seen[u] = true
			out = append(out, u)
		}
	}
	sortByName(out)
	return out
}

// Upgrade applies u without consuming an upgrade slot.
func (d *Deck) Upgrade(u Upgrade) error {
	def, ok := upgradeRegistry[u]
	if !ok {
		return fmt.Errorf("apply %s: %w", u, ErrUnknownUpgrade)
	}
	if err := def.apply(d); err != nil {
		return fmt.Errorf("apply %q: %w", def.name, err)
	}
	if d.Logger != nil {
		d.log(log.NewUpgradeEvent(def.name))
	}
	return nil
}

// ApplyUpgrades consumes one slot per name and applies the upgrade. Names
// with no slot left, and names that aren't upgrades at all, are skipped:
// they are returned and also reported to the logger. A failing upgrade
// stops the batch.
func (d *Deck) ApplyUpgrades(names ...string) (skipped []string, err error) {
	for _, name := range names {
		i := d.slotIndex(name)
		if i < 0 {
			skipped = append(skipped, name)
			d.log(log.NewUpgradeSkippedEvent(name))
			continue
		}
		u := d.options[i]
		d.options = slices.Delete(d.options, i, i+1)
		if err := d.Upgrade(u); err != nil {
			return skipped, err
		}
	}
	return skipped, nil
}

func (d *Deck) slotIndex(name string) int {
	for i, u := range d.options {
		if u.String() == name {
			return i
		}
	}
	return -1
}

func removeCards(card Card, n int) func(d *Deck) error {
	return func(d *Deck) error {
		for i := 0; i < n; i++ {
			if err := d.RemoveCard(card); err != nil {
				return err
			}
		}
		return nil
	}
}

func replaceCard(old, with Card) func(d *Deck) error {
	return func(d *Deck) error {
		if err := d.RemoveCard(old); err != nil {
			return err
		}
		d.AddCard(with)
		return nil
	}
}

func sortByName(us []Upgrade) {
	slices.SortFunc(us, func(a, b Upgrade) int {
		switch {
		case a.String() < b.String():
			return -1
		case a.String() > b.String():
			return 1
		default:
			return 0
		}
	})
}
