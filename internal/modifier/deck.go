package modifier

import (
	"fmt"
	"math/rand/v2"

	"github.com/peterkuimelis/amdsim/internal/log"
)

// StandardCards returns the composition of an unmodified attack deck:
// six +0, five +1, five -1, one +2, one -2, one 2x and one null.
func StandardCards() []Card {
	cards := make([]Card, 0, 20)
	for i := 0; i < 6; i++ {
		cards = append(cards, Nominal(0))
	}
	for i := 0; i < 5; i++ {
		cards = append(cards, Nominal(1))
	}
	for i := 0; i < 5; i++ {
		cards = append(cards, Nominal(-1))
	}
	cards = append(cards, Nominal(2), Nominal(-2), Double, Null)
	return cards
}

// Deck is an attack modifier deck. Cards before the cursor have been drawn
// since the last shuffle; the cursor reaching the end forces a reshuffle.
type Deck struct {
	cards   []Card
	cursor  int
	immune  bool
	options []Upgrade

	// Logger receives deck events. Nil disables logging.
	Logger log.EventLogger
}

// NewDeck creates a standard deck with every upgrade slot available.
func NewDeck() *Deck {
	return NewDeckFrom(StandardCards())
}

// NewDeckFrom creates a deck holding a copy of cards, in order, with every
// upgrade slot available.
func NewDeckFrom(cards []Card) *Deck {
	d := &Deck{
		cards:   make([]Card, len(cards)),
		options: StandardOptions(),
	}
	copy(d.cards, cards)
	return d
}

// Len returns the number of cards in the deck.
func (d *Deck) Len() int {
	return len(d.cards)
}

// Cursor returns the index of the next card to draw.
func (d *Deck) Cursor() int {
	return d.cursor
}

// Immune reports whether curses are ignored.
func (d *Deck) Immune() bool {
	return d.immune
}

// Cards returns a copy of the cards in current deck order.
func (d *Deck) Cards() []Card {
	out := make([]Card, len(d.cards))
	copy(out, d.cards)
	return out
}

// Count returns how many copies of card the deck holds.
func (d *Deck) Count(card Card) int {
	n := 0
	for _, c := range d.cards {
		if c == card {
			n++
		}
	}
	return n
}

// Clone returns an independent copy of the deck. The logger is shared.
func (d *Deck) Clone() *Deck {
	c := &Deck{
		cards:   make([]Card, len(d.cards)),
		cursor:  d.cursor,
		immune:  d.immune,
		options: make([]Upgrade, len(d.options)),
		Logger:  d.Logger,
	}
	copy(c.cards, d.cards)
	copy(c.options, d.options)
	return c
}

// Shuffle randomizes card order in place and resets the cursor.
func (d *Deck) Shuffle(r *rand.Rand) {
	r.Shuffle(len(d.cards), func(i, j int) {
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	})
	d.cursor = 0
	if d.Logger != nil {
		d.log(log.NewShuffleEvent(len(d.cards)))
	}
}

// Draw returns the card at the cursor and advances it, reshuffling first
// when the deck is exhausted.
func (d *Deck) Draw(r *rand.Rand) (Card, error) {
	if len(d.cards) == 0 {
		return Card{}, ErrEmptyDeck
	}
	if d.cursor >= len(d.cards) {
		if d.Logger != nil {
			d.log(log.NewReshuffleEvent(len(d.cards)))
		}
		d.Shuffle(r)
	}

	card := d.cards[d.cursor]
	d.cursor++
	if d.Logger != nil {
		d.log(log.NewDrawEvent(card.String(), d.cursor-1))
	}
	return card, nil
}

// Evaluate resolves one attack with the given base value.
//
// Rolling cards add one to base and draw again until another card comes
// up. Null and 2x reshuffle the deck. Bless and curse are removed after
// use, stepping the cursor back by one. The final card then decides the
// value: bless and 2x double it, curse and null zero it, anything else
// adds its modifier with a floor of zero.
func (d *Deck) Evaluate(r *rand.Rand, base int) (int, error) {
	rolled := 0
	for {
		card, err := d.Draw(r)
		if err != nil {
			return 0, err
		}

		if card.Rolling() {
			base++
			rolled++
			if d.Logger != nil {
				d.log(log.NewRollingBonusEvent(rolled))
			}
			if rolled > len(d.cards) && !d.hasTerminal() {
				return 0, ErrNoTerminalCard
			}
			continue
		}

		switch {
		case card.TriggersShuffle():
			d.Shuffle(r)
		case card.Consumable():
			if err := d.RemoveCard(card); err != nil {
				return 0, fmt.Errorf("consume %s: %w", card, err)
			}
			d.cursor--
			if d.Logger != nil {
				d.log(log.NewConsumeEvent(card.String(), len(d.cards)))
			}
		}

		value := card.Apply(base)
		if d.Logger != nil {
			d.log(log.NewResolveEvent(card.String(), base, value))
		}
		return value, nil
	}
}

// AddCard appends card to the end of the deck.
func (d *Deck) AddCard(card Card) {
	d.cards = append(d.cards, card)
	if d.Logger != nil {
		d.log(log.NewAddCardEvent(card.String()))
	}
}

// RemoveCard removes the first copy of card. The cursor is left as is.
func (d *Deck) RemoveCard(card Card) error {
	for i, c := range d.cards {
		if c == card {
			d.cards = append(d.cards[:i], d.cards[i+1:]...)
			if d.Logger != nil {
				d.log(log.NewRemoveCardEvent(card.String()))
			}
			return nil
		}
	}
	return fmt.Errorf("remove %s: %w", card, ErrCardNotFound)
}

// Bless adds n bless cards and shuffles.
func (d *Deck) Bless(r *rand.Rand, n int) {
	for i := 0; i < n; i++ {
		d.AddCard(Bless)
	}
	if d.Logger != nil {
		d.log(log.NewBlessEvent(n))
	}
	d.Shuffle(r)
}

// Curse adds n copies of card and shuffles, unless the deck is immune.
func (d *Deck) Curse(r *rand.Rand, card Card, n int) {
	if d.immune {
		if d.Logger != nil {
			d.log(log.NewCurseIgnoredEvent(card.String(), n))
		}
		return
	}
	for i := 0; i < n; i++ {
		d.AddCard(card)
	}
	if d.Logger != nil {
		d.log(log.NewCurseEvent(card.String(), n))
	}
	d.Shuffle(r)
}

func (d *Deck) hasTerminal() bool {
	for _, c := range d.cards {
		if !c.Rolling() {
			return true
		}
	}
	return false
}

func (d *Deck) log(e log.Event) {
	if d.Logger != nil {
		d.Logger.Log(e)
	}
}
