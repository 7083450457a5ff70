package log

import (
	"fmt"
	"io"
	"strings"
)

// EventLogger is the interface for logging deck events.
type EventLogger interface {
	Log(event Event)
	Events() []Event
}

// --- MemoryLogger: stores events in memory for test assertions ---

type MemoryLogger struct {
	events []Event
	seq    int
	hand   int
}

func NewMemoryLogger() *MemoryLogger {
	return &MemoryLogger{}
}

// Log stamps the event with a sequence number and the current hand.
// A NewHand event starts the next hand.
func (l *MemoryLogger) Log(event Event) {
	l.seq++
	if event.Type == EventNewHand {
		l.hand++
	}
	event.Seq = l.seq
	event.Hand = l.hand
	l.events = append(l.events, event)
}

func (l *MemoryLogger) Events() []Event {
	return l.events
}

// EventsOfType returns all events matching the given type.
func (l *MemoryLogger) EventsOfType(t EventType) []Event {
	var result []Event
	for _, e := range l.events {
		if e.Type == t {
			result = append(result, e)
		}
	}
	return result
}

// LastEvent returns the most recent event, or a zero event if none.
func (l *MemoryLogger) LastEvent() Event {
	if len(l.events) == 0 {
		return Event{}
	}
	return l.events[len(l.events)-1]
}

// Reset drops all recorded events.
func (l *MemoryLogger) Reset() {
	l.events = nil
	l.seq = 0
	l.hand = 0
}

// --- TextLogger: writes human-readable lines to an io.Writer, keeps nothing ---

// TextLogger stamps events like MemoryLogger but only writes them out, so
// a traced run of any length holds no events in memory.
type TextLogger struct {
	w    io.Writer
	seq  int
	hand int
}

func NewTextLogger(w io.Writer) *TextLogger {
	return &TextLogger{w: w}
}

func (l *TextLogger) Log(event Event) {
	l.seq++
	if event.Type == EventNewHand {
		l.hand++
	}
	event.Seq = l.seq
	event.Hand = l.hand
	fmt.Fprintln(l.w, FormatEvent(event))
}

func (l *TextLogger) Events() []Event {
	return nil
}

// --- WarnLogger: writes only non-fatal reports, keeps nothing ---

// WarnLogger forwards skipped-upgrade and ignored-curse reports to w and
// drops everything else. Drivers use it so long runs don't buffer every draw.
type WarnLogger struct {
	w io.Writer
}

func NewWarnLogger(w io.Writer) *WarnLogger {
	return &WarnLogger{w: w}
}

func (l *WarnLogger) Log(event Event) {
	switch event.Type {
	case EventUpgradeSkipped, EventCurseIgnored:
		fmt.Fprintln(l.w, event.Details)
	}
}

func (l *WarnLogger) Events() []Event {
	return nil
}

// --- Formatting ---

// FormatEvent formats a single event as a human-readable line.
func FormatEvent(e Event) string {
	kind := e.Type.String()
	// Pad type to 14 chars for alignment
	for len(kind) < 14 {
		kind += " "
	}

	return fmt.Sprintf("H%-3d %s| %s", e.Hand, kind, e.Details)
}

// FormatAll formats all events as a multi-line string.
func FormatAll(events []Event) string {
	var sb strings.Builder
	for _, e := range events {
		sb.WriteString(FormatEvent(e))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// --- Helper constructors for common events ---

func NewDrawEvent(card string, cursor int) Event {
	return Event{
		Type:    EventDraw,
		Card:    card,
		Value:   cursor,
		Details: fmt.Sprintf("draws %s (position %d)", card, cursor),
	}
}

func NewShuffleEvent(size int) Event {
	return Event{
		Type:    EventShuffle,
		Value:   size,
		Details: fmt.Sprintf("deck shuffled (%d cards)", size),
	}
}

func NewReshuffleEvent(size int) Event {
	return Event{
		Type:    EventReshuffle,
		Value:   size,
		Details: fmt.Sprintf("deck exhausted, reshuffling %d cards", size),
	}
}

func NewRollingBonusEvent(bonus int) Event {
	return Event{
		Type:    EventRollingBonus,
		Card:    "rolling +1",
		Value:   bonus,
		Details: fmt.Sprintf("rolling +1, bonus now %d", bonus),
	}
}

func NewConsumeEvent(card string, remaining int) Event {
	return Event{
		Type:    EventConsume,
		Card:    card,
		Value:   remaining,
		Details: fmt.Sprintf("%s is removed from the deck (%d cards left)", card, remaining),
	}
}

func NewResolveEvent(card string, base, value int) Event {
	return Event{
		Type:    EventResolve,
		Card:    card,
		Value:   value,
		Details: fmt.Sprintf("base %d with %s → %d", base, card, value),
	}
}

func NewAddCardEvent(card string) Event {
	return Event{
		Type:    EventAddCard,
		Card:    card,
		Details: fmt.Sprintf("%s added to the deck", card),
	}
}

func NewRemoveCardEvent(card string) Event {
	return Event{
		Type:    EventRemoveCard,
		Card:    card,
		Details: fmt.Sprintf("%s removed from the deck", card),
	}
}

func NewUpgradeEvent(name string) Event {
	return Event{
		Type:    EventUpgrade,
		Details: fmt.Sprintf("upgrade applied: %s", name),
	}
}

func NewUpgradeSkippedEvent(name string) Event {
	return Event{
		Type:    EventUpgradeSkipped,
		Details: fmt.Sprintf("%q not available. Ignoring.", name),
	}
}

func NewBlessEvent(n int) Event {
	return Event{
		Type:    EventBless,
		Card:    "bless",
		Value:   n,
		Details: fmt.Sprintf("%d bless card(s) shuffled in", n),
	}
}

func NewCurseEvent(card string, n int) Event {
	return Event{
		Type:    EventCurse,
		Card:    card,
		Value:   n,
		Details: fmt.Sprintf("%d %s card(s) shuffled in", n, card),
	}
}

func NewCurseIgnoredEvent(card string, n int) Event {
	return Event{
		Type:    EventCurseIgnored,
		Card:    card,
		Value:   n,
		Details: fmt.Sprintf("deck is immune, %d %s card(s) not added", n, card),
	}
}

func NewHandEvent(trial, turns int) Event {
	return Event{
		Type:    EventNewHand,
		Value:   trial,
		Details: fmt.Sprintf("=== New hand at trial %d (%d attacks) ===", trial, turns),
	}
}
