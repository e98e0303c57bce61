package conversation

import (
	"sync"
	"sync/atomic"
	"time"

	"go-translation-lens/internal/catalog"
	"go-translation-lens/internal/request"
)

// Session holds the append-only turn log and the two party languages for
// one active conversation. Completions update only their own turn slot by
// ID, so out-of-order remote replies are safe.
type Session struct {
	mu     sync.RWMutex
	turns  []*Turn
	langA  catalog.Language
	langB  catalog.Language
	nextID atomic.Int64
}

// NewSession creates a session with the given party languages
func NewSession(langA, langB catalog.Language) *Session {
	return &Session{langA: langA, langB: langB}
}

// SetLanguages replaces the party languages for subsequent turns
func (s *Session) SetLanguages(langA, langB catalog.Language) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.langA = langA
	s.langB = langB
}

// Languages returns the languages of the given speaker and the other party
func (s *Session) Languages(speaker Speaker) (own, other catalog.Language) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if speaker == SpeakerA {
		return s.langA, s.langB
	}
	return s.langB, s.langA
}

// Capture appends a new turn for the transcript. The turn enters the
// translating state synchronously, with the placeholder translation set.
func (s *Session) Capture(speaker Speaker, transcript string) *Turn {
	own, _ := s.Languages(speaker)
	turn := &Turn{
		ID:          s.nextID.Add(1),
		Speaker:     speaker,
		Original:    transcript,
		Translation: PlaceholderTranslation,
		Language:    own.Name,
		State:       StateCaptured,
		CreatedAt:   time.Now().UTC(),
	}
	// Captured -> Translating is synchronous with transcript arrival
	_ = turn.transition(StateTranslating)

	s.mu.Lock()
	s.turns = append(s.turns, turn)
	s.mu.Unlock()
	return turn
}

// Complete applies the final translation to the turn with the given ID.
// It is a no-op for unknown IDs and for turns already finalized.
func (s *Session) Complete(id int64, translation string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	turn := s.findLocked(id)
	if turn == nil || turn.transition(StateTranslated) != nil {
		return false
	}
	turn.Translation = translation
	return true
}

// Fail marks the turn as failed, replacing the placeholder with the
// failure text
func (s *Session) Fail(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	turn := s.findLocked(id)
	if turn == nil || turn.transition(StateFailed) != nil {
		return false
	}
	turn.Translation = FailedTranslation
	return true
}

// Turn returns a snapshot of the turn with the given ID
func (s *Session) Turn(id int64) (Turn, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if t := s.findLocked(id); t != nil {
		return *t, true
	}
	return Turn{}, false
}

// Turns returns a snapshot of the full log in capture order
func (s *Session) Turns() []Turn {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Turn, len(s.turns))
	for i, t := range s.turns {
		out[i] = *t
	}
	return out
}

// HistoryBefore returns up to request.MaxHistoryTurns prior exchanges for
// use as translation context, excluding the turn with the given ID and
// anything after it.
func (s *Session) HistoryBefore(id int64) []request.HistoryEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var prior []*Turn
	for _, t := range s.turns {
		if t.ID >= id {
			break
		}
		prior = append(prior, t)
	}
	if len(prior) > request.MaxHistoryTurns {
		prior = prior[len(prior)-request.MaxHistoryTurns:]
	}
	out := make([]request.HistoryEntry, len(prior))
	for i, t := range prior {
		out[i] = request.HistoryEntry{Language: t.Language, Original: t.Original}
	}
	return out
}

func (s *Session) findLocked(id int64) *Turn {
	for _, t := range s.turns {
		if t.ID == id {
			return t
		}
	}
	return nil
}
