package modifier

import "errors"

var (
	// ErrCardNotFound is returned when removing a card the deck doesn't hold.
	ErrCardNotFound = errors.New("card not found in deck")
	// ErrEmptyDeck is returned when drawing from a deck with no cards.
	ErrEmptyDeck = errors.New("deck is empty")
	// ErrNoTerminalCard is returned when every card in the deck is a rolling
	// card, so an attack could never resolve.
	ErrNoTerminalCard = errors.New("deck holds only rolling cards")
	// ErrUnknownCard is returned by ParseCard.
	ErrUnknownCard = errors.New("unknown card")
	// ErrUnknownUpgrade is returned by ParseUpgrade.
	ErrUnknownUpgrade = errors.New("unknown upgrade")
)
