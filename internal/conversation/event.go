// Package conversation implements the booking conversation: the state
// machine that turns inbound messages into replies and booking actions, and
// the engine that executes those actions against external collaborators.
package conversation

import "strings"

// Selection ids carried by interactive replies.
const (
	SelectionCallNow      = "CALL_NOW"
	SelectionChatContinue = "CHAT_CONTINUE"

	datePrefix = "date_"
	timePrefix = "time_"
)

// Event is one inbound user event: free text or an interactive selection.
type Event struct {
	Text        string
	SelectionID string
}

// TextEvent builds a free-text event.
func TextEvent(text string) Event {
	return Event{Text: strings.TrimSpace(text)}
}

// SelectionEvent builds an interactive-selection event.
func SelectionEvent(id string) Event {
	return Event{SelectionID: id}
}

// DateKey extracts the YYYY-MM-DD key from a date selection.
func (e Event) DateKey() (string, bool) {
	if !strings.HasPrefix(e.SelectionID, datePrefix) {
		return "", false
	}
	return strings.TrimPrefix(e.SelectionID, datePrefix), true
}

// SlotValue extracts the canonical slot value from a time selection.
func (e Event) SlotValue() (string, bool) {
	if !strings.HasPrefix(e.SelectionID, timePrefix) {
		return "", false
	}
	return strings.TrimPrefix(e.SelectionID, timePrefix), true
}

// fillerWords are casual acknowledgements swallowed without a reply so the
// bot does not answer every "ok" with a menu.
var fillerWords = map[string]struct{}{
	"ok": {}, "okay": {}, "k": {}, "kk": {},
	"hmm": {}, "hm": {},
	"thanks": {}, "thank you": {}, "thx": {},
	"👍": {}, "👌": {}, "🙂": {}, "✅": {},
}

func isFiller(text string) bool {
	_, ok := fillerWords[strings.ToLower(strings.TrimSpace(text))]
	return ok
}
