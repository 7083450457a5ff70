package scenario

import "errors"

var (
	ErrHandTooLarge  = errors.New("hand size exceeds the limit")
	ErrTooManyCards  = errors.New("deck would exceed the card limit")
	ErrNegativeCount = errors.New("card counts must not be negative")
)
