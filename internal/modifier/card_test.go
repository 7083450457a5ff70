package modifier

import (
	"errors"
	"testing"
)

func TestCardClassification(t *testing.T) {
	tests := []struct {
		card       Card
		rolling    bool
		shuffle    bool
		consumable bool
	}{
		{Nominal(0), false, false, false},
		{Nominal(-2), false, false, false},
		{Bless, false, false, true},
		{Curse, false, false, true},
		{Null, false, true, false},
		{Double, false, true, false},
		{RollingPlus1, true, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.card.String(), func(t *testing.T) {
			if tt.card.Rolling() != tt.rolling {
				t.Errorf("Rolling() = %v", tt.card.Rolling())
			}
			if tt.card.TriggersShuffle() != tt.shuffle {
				t.Errorf("TriggersShuffle() = %v", tt.card.TriggersShuffle())
			}
			if tt.card.Consumable() != tt.consumable {
				t.Errorf("Consumable() = %v", tt.card.Consumable())
			}
		})
	}
}

func TestSpecialNeverEqualsNominal(t *testing.T) {
	for _, special := range []Card{Bless, Double, Curse, Null, RollingPlus1} {
		if special == Nominal(special.Code()) {
			t.Errorf("%s equals nominal %d", special, special.Code())
		}
		if special == Nominal(0) {
			t.Errorf("%s equals +0", special)
		}
	}
}

func TestCardCodes(t *testing.T) {
	tests := []struct {
		card Card
		code int
	}{
		{Bless, 99},
		{Double, 98},
		{Curse, -99},
		{Null, -98},
		{RollingPlus1, 97},
		{Nominal(-1), -1},
		{Nominal(2), 2},
	}
	for _, tt := range tests {
		if got := tt.card.Code(); got != tt.code {
			t.Errorf("%s.Code() = %d, want %d", tt.card, got, tt.code)
		}
		if got := CardFromCode(tt.code); got != tt.card {
			t.Errorf("CardFromCode(%d) = %s, want %s", tt.code, got, tt.card)
		}
	}
}

func TestParseCard(t *testing.T) {
	tests := []struct {
		in   string
		want Card
	}{
		{"+1", Nominal(1)},
		{"-2", Nominal(-2)},
		{"0", Nominal(0)},
		{"bless", Bless},
		{"Curse", Curse},
		{"2x", Double},
		{"double", Double},
		{"null", Null},
		{"rolling +1", RollingPlus1},
	}
	for _, tt := range tests {
		got, err := ParseCard(tt.in)
		if err != nil {
			t.Errorf("ParseCard(%q) error = %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseCard(%q) = %s, want %s", tt.in, got, tt.want)
		}
		if back, _ := ParseCard(got.String()); back != got {
			t.Errorf("ParseCard(%q.String()) = %s", got, back)
		}
	}

	if _, err := ParseCard("stun"); !errors.Is(err, ErrUnknownCard) {
		t.Errorf("Expected ErrUnknownCard, got %v", err)
	}
}
