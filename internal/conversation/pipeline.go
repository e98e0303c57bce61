package conversation

import (
	"context"

	"github.com/sirupsen/logrus"

	"go-translation-lens/internal/logger"
	"go-translation-lens/internal/request"
)

// Translator performs the remote translation call for one utterance
type Translator interface {
	Translate(ctx context.Context, text, sourceLang, targetLang string, history []request.HistoryEntry) (string, error)
}

// SpeechOutput speaks translated text in the given language. forceCode
// overrides locale resolution when non-empty.
type SpeechOutput interface {
	Speak(ctx context.Context, text, languageName, forceCode string)
}

// Pipeline drives a turn through its lifecycle: capture, translate,
// complete or fail, then speak the translation in the other party's
// language. Within one turn translation always completes (or fails)
// before speech is attempted; across turns completions may interleave.
type Pipeline struct {
	session    *Session
	translator Translator
	speech     SpeechOutput
	pool       *WorkerPool
}

// NewPipeline creates a conversation pipeline running turn jobs on the pool
func NewPipeline(session *Session, translator Translator, speech SpeechOutput, pool *WorkerPool) *Pipeline {
	pool.Start()
	return &Pipeline{
		session:    session,
		translator: translator,
		speech:     speech,
		pool:       pool,
	}
}

// Session exposes the underlying turn log
func (p *Pipeline) Session() *Session {
	return p.session
}

// OnTranscript handles one captured utterance. The turn is appended with
// its placeholder synchronously; the remote call and playback run on the
// worker pool. The returned snapshot reflects the translating state.
func (p *Pipeline) OnTranscript(ctx context.Context, speaker Speaker, transcript string) Turn {
	turn := p.session.Capture(speaker, transcript)
	snapshot := *turn

	own, other := p.session.Languages(speaker)
	history := p.session.HistoryBefore(turn.ID)

	p.pool.Submit(func() {
		p.processTurn(context.WithoutCancel(ctx), turn.ID, transcript, own.Name, other.Name, history)
	})
	return snapshot
}

func (p *Pipeline) processTurn(ctx context.Context, id int64, transcript, sourceLang, targetLang string, history []request.HistoryEntry) {
	translation, err := p.translator.Translate(ctx, transcript, sourceLang, targetLang, history)
	if err != nil {
		logger.WithError(err).WithFields(logrus.Fields{
			"turn_id": id,
			"source":  sourceLang,
			"target":  targetLang,
		}).Error("Turn translation failed")
		p.session.Fail(id)
		return
	}

	if !p.session.Complete(id, translation) {
		return
	}

	// Speech strictly follows translation for this turn; playback is
	// best-effort and spoken in the other party's language.
	p.speech.Speak(ctx, translation, targetLang, "")
}
