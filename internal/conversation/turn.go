package conversation

import (
	"fmt"
	"time"
)

// Speaker identifies one of the two conversation parties
type Speaker string

const (
	SpeakerA Speaker = "A"
	SpeakerB Speaker = "B"
)

// Other returns the opposite party
func (s Speaker) Other() Speaker {
	if s == SpeakerA {
		return SpeakerB
	}
	return SpeakerA
}

// TurnState is the explicit lifecycle state of one turn
type TurnState string

const (
	// StateCaptured means the transcript was received
	StateCaptured TurnState = "captured"
	// StateTranslating means the placeholder translation is shown while the remote call runs
	StateTranslating TurnState = "translating"
	// StateTranslated means the final translation was applied; the turn is immutable from here
	StateTranslated TurnState = "translated"
	// StateFailed means the translation call errored
	StateFailed TurnState = "failed"
)

// PlaceholderTranslation is shown strictly between capture and completion
const PlaceholderTranslation = "Translating..."

// FailedTranslation replaces the placeholder when the remote call errors
const FailedTranslation = "Translation failed."

// Turn is one captured utterance and its eventual translation. Turns are
// created in the translating state, mutated exactly once to their final
// translation, and never deleted.
type Turn struct {
	ID          int64     `json:"id"`
	Speaker     Speaker   `json:"speaker"`
	Original    string    `json:"original"`
	Translation string    `json:"translation"`
	Language    string    `json:"language"`
	State       TurnState `json:"state"`
	CreatedAt   time.Time `json:"created_at"`
}

// transition validates a state change; invalid transitions indicate a
// programming error in the pipeline
func (t *Turn) transition(to TurnState) error {
	valid := false
	switch t.State {
	case StateCaptured:
		valid = to == StateTranslating
	case StateTranslating:
		valid = to == StateTranslated || to == StateFailed
	}
	if !valid {
		return fmt.Errorf("invalid turn transition %s -> %s (turn %d)", t.State, to, t.ID)
	}
	t.State = to
	return nil
}
