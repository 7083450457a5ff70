package modifier

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind distinguishes nominal cards from the effect-triggering ones.
type Kind int

const (
	KindNominal Kind = iota
	KindBless
	KindDouble
	KindCurse
	KindNull
	KindRollingPlus1
)

func (k Kind) String() string {
	switch k {
	case KindNominal:
		return "nominal"
	case KindBless:
		return "bless"
	case KindDouble:
		return "2x"
	case KindCurse:
		return "curse"
	case KindNull:
		return "null"
	case KindRollingPlus1:
		return "rolling +1"
	default:
		return "unknown"
	}
}

// Legacy integer codes for the special cards. Only used by Code and
// CardFromCode; the deck itself never stores them.
const (
	CodeBless        = 99
	CodeDouble       = 98
	CodeCurse        = -99
	CodeNull         = -98
	CodeRollingPlus1 = 97
)

// Card is one attack modifier. Value is meaningful only for nominal cards,
// so a special card never equals a nominal one.
type Card struct {
	Kind  Kind
	Value int
}

var (
	Bless        = Card{Kind: KindBless}
	Double       = Card{Kind: KindDouble}
	Curse        = Card{Kind: KindCurse}
	Null         = Card{Kind: KindNull}
	RollingPlus1 = Card{Kind: KindRollingPlus1}
)

// Nominal returns a flat modifier card.
func Nominal(v int) Card {
	return Card{Kind: KindNominal, Value: v}
}

// IsSpecial reports whether the card triggers an effect.
func (c Card) IsSpecial() bool {
	return c.Kind != KindNominal
}

// Rolling reports whether the card adds a bonus and forces another draw.
func (c Card) Rolling() bool {
	return c.Kind == KindRollingPlus1
}

// TriggersShuffle reports whether drawing the card reshuffles the deck.
func (c Card) TriggersShuffle() bool {
	return c.Kind == KindNull || c.Kind == KindDouble
}

// Consumable reports whether the card leaves the deck once drawn.
func (c Card) Consumable() bool {
	return c.Kind == KindBless || c.Kind == KindCurse
}

// Apply returns the attack value after this card modifies base.
func (c Card) Apply(base int) int {
	switch c.Kind {
	case KindBless, KindDouble:
		return 2 * base
	case KindCurse, KindNull:
		return 0
	default:
		return max(base+c.Value, 0)
	}
}

// Code returns the legacy integer encoding of the card.
func (c Card) Code() int {
	switch c.Kind {
	case KindBless:
		return CodeBless
	case KindDouble:
		return CodeDouble
	case KindCurse:
		return CodeCurse
	case KindNull:
		return CodeNull
	case KindRollingPlus1:
		return CodeRollingPlus1
	default:
		return c.Value
	}
}

// CardFromCode decodes a legacy integer code.
func CardFromCode(code int) Card {
	switch code {
	case CodeBless:
		return Bless
	case CodeDouble:
		return Double
	case CodeCurse:
		return Curse
	case CodeNull:
		return Null
	case CodeRollingPlus1:
		return RollingPlus1
	default:
		return Nominal(code)
	}
}

func (c Card) String() string {
	if c.Kind != KindNominal {
		return c.Kind.String()
	}
	if c.Value < 0 {
		return strconv.Itoa(c.Value)
	}
	return "+" + strconv.Itoa(c.Value)
}

// ParseCard accepts the names printed by String ("+1", "-2", "bless", "2x",
// "rolling +1", ...) plus "double" and "rolling" as aliases.
func ParseCard(s string) (Card, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "bless":
		return Bless, nil
	case "2x", "double":
		return Double, nil
	case "curse":
		return Curse, nil
	case "null":
		return Null, nil
	case "rolling +1", "rolling", "rolling+1":
		return RollingPlus1, nil
	}
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return Card{}, fmt.Errorf("parse card %q: %w", s, ErrUnknownCard)
	}
	return Nominal(v), nil
}
