// Package speech speaks translated text in a target language, preferring
// local synthesis and falling back to cloud synthesis when no local voice
// matches. Playback is best-effort: failures are logged, never surfaced.
package speech

import (
	"context"
	"strings"
	"sync"

	"github.com/arbovm/levenshtein"
	"github.com/sirupsen/logrus"

	"go-translation-lens/internal/catalog"
	"go-translation-lens/internal/gemini"
	"go-translation-lens/internal/logger"
)

// Orchestrator owns exclusive control of the audio output channel: at
// most one locally synthesized utterance plays at a time and new requests
// preempt the current one.
type Orchestrator struct {
	local      Synthesizer
	cloud      gemini.Client
	player     Player
	ttsModel   string
	cloudVoice string

	mu sync.Mutex
}

// NewOrchestrator creates a speech orchestrator
func NewOrchestrator(local Synthesizer, cloud gemini.Client, player Player, ttsModel, cloudVoice string) *Orchestrator {
	return &Orchestrator{
		local:      local,
		cloud:      cloud,
		player:     player,
		ttsModel:   ttsModel,
		cloudVoice: cloudVoice,
	}
}

// Speak runs the two-tier algorithm synchronously. forceCode overrides the
// catalog locale resolution when non-empty (e.g. a known regional variant).
// Errors are logged and swallowed; speech never raises a user-facing error.
func (o *Orchestrator) Speak(ctx context.Context, text, languageName, forceCode string) {
	if strings.TrimSpace(text) == "" {
		return
	}

	// Preempt whatever is playing before resolving the new utterance
	o.local.Cancel()

	if voice, ok := o.resolveVoice(languageName, forceCode); ok {
		o.mu.Lock()
		err := o.local.Speak(text, voice)
		o.mu.Unlock()
		if err != nil {
			logger.WithError(err).WithFields(logrus.Fields{
				"voice":  voice.Name,
				"locale": voice.Locale,
			}).Warn("Local speech synthesis failed")
		}
		return
	}

	o.speakViaCloud(ctx, text, languageName)
}

// SpeakAsync runs Speak on its own goroutine so callers never block on
// playback. A later call preempts the local utterance but does not cancel
// an in-flight cloud synthesis call.
func (o *Orchestrator) SpeakAsync(ctx context.Context, text, languageName, forceCode string) {
	go o.Speak(context.WithoutCancel(ctx), text, languageName, forceCode)
}

// resolveVoice searches local voices by exact locale, then language
// prefix ("es" matches "es-MX"), then fuzzy containment of the language
// name in the voice name, picking the closest candidate by edit distance.
func (o *Orchestrator) resolveVoice(languageName, forceCode string) (Voice, bool) {
	lang, known := catalog.ByName(languageName)
	code := forceCode
	if code == "" {
		if known {
			code = lang.Code
		} else {
			code = catalog.Default().Code
		}
	}

	voices := o.local.Voices()

	for _, v := range voices {
		if v.Locale == code {
			return v, true
		}
	}

	short := strings.SplitN(code, "-", 2)[0]
	for _, v := range voices {
		if v.Locale == short || strings.HasPrefix(v.Locale, short+"-") {
			return v, true
		}
	}

	if known {
		target := strings.ToLower(lang.Name)
		best := -1
		bestDist := 0
		for i, v := range voices {
			name := strings.ToLower(v.Name)
			if !strings.Contains(name, target) {
				continue
			}
			d := levenshtein.Distance(name, target)
			if best == -1 || d < bestDist {
				best, bestDist = i, d
			}
		}
		if best >= 0 {
			return voices[best], true
		}
	}

	return Voice{}, false
}

func (o *Orchestrator) speakViaCloud(ctx context.Context, text, languageName string) {
	logger.WithFields(logrus.Fields{
		"language": languageName,
		"model":    o.ttsModel,
	}).Info("No local voice found, using cloud TTS")

	resp, err := o.cloud.GenerateContent(ctx, gemini.GenerateRequest{
		Model:       o.ttsModel,
		Parts:       []gemini.Part{{Text: text}},
		AudioOutput: true,
		Voice:       o.cloudVoice,
	})
	if err != nil {
		logger.WithError(err).Warn("Cloud speech synthesis failed")
		return
	}

	buf, err := DecodePCM16(resp.Audio, DefaultSampleRate)
	if err != nil {
		logger.WithError(err).WithField("mime_type", resp.AudioMIMEType).Warn("Could not decode cloud audio payload")
		return
	}

	if err := o.player.Play(buf); err != nil {
		logger.WithError(err).Warn("Audio playback failed")
	}
}
