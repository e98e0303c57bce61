package conversation

import (
	"context"
	"sync"
	"sync/atomic"

	apperrors "go-translation-lens/internal/errors"
)

// RecognitionResult is the single terminal event of one listening
// operation: a final transcript or an error, never both
type RecognitionResult struct {
	Transcript string
	Err        error
}

// Recognizer is the speech recognition collaborator. Start begins
// listening with the given locale hint and reports the terminal result
// through the callback at most once. Stop aborts listening.
type Recognizer interface {
	Start(ctx context.Context, locale string, onResult func(RecognitionResult)) error
	Stop()
}

// Listener wraps a Recognizer as a cancellable operation yielding at most
// one terminal transcript-or-error event. Stop is idempotent and
// immediately prevents further result callbacks.
type Listener struct {
	recognizer Recognizer
	onResult   func(RecognitionResult)

	mu      sync.Mutex
	active  bool
	stopped atomic.Bool
}

// NewListener creates a listener delivering results to onResult
func NewListener(recognizer Recognizer, onResult func(RecognitionResult)) *Listener {
	return &Listener{recognizer: recognizer, onResult: onResult}
}

// Start begins a listening operation. Only one may be active at a time.
func (l *Listener) Start(ctx context.Context, locale string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.active {
		return apperrors.NewValidationError("already listening", nil)
	}
	l.stopped.Store(false)

	err := l.recognizer.Start(ctx, locale, func(res RecognitionResult) {
		// A stop that raced the recognizer wins: late results are dropped
		if l.stopped.Load() {
			return
		}
		l.mu.Lock()
		l.active = false
		l.mu.Unlock()
		l.onResult(res)
	})
	if err != nil {
		return apperrors.NewCaptureUnavailableError("speech recognition could not start")
	}
	l.active = true
	return nil
}

// Stop aborts the current listening operation. Idempotent; any result
// arriving after Stop is discarded.
func (l *Listener) Stop() {
	if l.stopped.Swap(true) {
		return
	}
	l.mu.Lock()
	wasActive := l.active
	l.active = false
	l.mu.Unlock()
	if wasActive {
		l.recognizer.Stop()
	}
}

// Listening reports whether a listening operation is active
func (l *Listener) Listening() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.active
}
