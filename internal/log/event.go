package log

// EventType enumerates all observable deck and simulation events.
type EventType int

const (
	EventDraw EventType = iota
	EventShuffle
	EventReshuffle // implicit shuffle on an exhausted deck
	EventRollingBonus
	EventConsume // bless/curse removed after being drawn
	EventResolve
	EventAddCard
	EventRemoveCard
	EventUpgrade
	EventUpgradeSkipped
	EventBless
	EventCurse
	EventCurseIgnored
	EventNewHand
)

func (e EventType) String() string {
	switch e {
	case EventDraw:
		return "Draw"
	case EventShuffle:
		return "Shuffle"
	case EventReshuffle:
		return "Reshuffle"
	case EventRollingBonus:
		return "RollingBonus"
	case EventConsume:
		return "Consume"
	case EventResolve:
		return "Resolve"
	case EventAddCard:
		return "AddCard"
	case EventRemoveCard:
		return "RemoveCard"
	case EventUpgrade:
		return "Upgrade"
	case EventUpgradeSkipped:
		return "UpgradeSkipped"
	case EventBless:
		return "Bless"
	case EventCurse:
		return "Curse"
	case EventCurseIgnored:
		return "CurseIgnored"
	case EventNewHand:
		return "NewHand"
	default:
		return "Unknown"
	}
}

// Event represents a single observable event on a deck.
type Event struct {
	Seq     int       // monotonic sequence number
	Hand    int       // which hand (1-based, 0 outside a simulation)
	Type    EventType // event type
	Card    string    // card name (if applicable)
	Value   int       // resolved value, bonus or count depending on type
	Details string    // human-readable detail string
}
