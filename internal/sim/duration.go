package sim

// Duration returns the expected number of attacks in a hand of handSize
// cards: each turn plays two cards, one of which is lost, so the hand
// shrinks by one per turn.
func Duration(handSize int) int {
	turns := 0
	for handSize > 1 {
		turns += handSize / 2
		handSize--
	}
	return turns
}
