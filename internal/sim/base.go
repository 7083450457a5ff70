package sim

import (
	"fmt"
	"math/rand/v2"
)

// BaseGenerator produces the base attack value for one trial. It must draw
// from r so that a seeded run is reproducible.
type BaseGenerator interface {
	Next(r *rand.Rand) (int, error)
}

// BaseFunc adapts a function to BaseGenerator.
type BaseFunc func(r *rand.Rand) (int, error)

func (f BaseFunc) Next(r *rand.Rand) (int, error) {
	return f(r)
}

// Uniform yields integers in [Min, Max).
type Uniform struct {
	Min int
	Max int
}

// DefaultBase is the reference base attack: 2 to 5 inclusive.
var DefaultBase = Uniform{Min: 2, Max: 6}

func (u Uniform) Validate() error {
	if u.Max <= u.Min {
		return fmt.Errorf("[%d, %d): %w", u.Min, u.Max, ErrInvalidBounds)
	}
	return nil
}

func (u Uniform) Next(r *rand.Rand) (int, error) {
	if err := u.Validate(); err != nil {
		return 0, err
	}
	return u.Min + r.IntN(u.Max-u.Min), nil
}

// Constant always yields the same base value. It never touches the source.
type Constant int

func (c Constant) Next(*rand.Rand) (int, error) {
	return int(c), nil
}
