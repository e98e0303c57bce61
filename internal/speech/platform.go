package speech

import (
	"github.com/sirupsen/logrus"

	"go-translation-lens/internal/logger"
)

// nullSynthesizer is the headless default: it exposes no voices, so
// every request takes the cloud fallback tier
type nullSynthesizer struct{}

// NewNullSynthesizer creates a synthesizer with no installed voices
func NewNullSynthesizer() Synthesizer {
	return nullSynthesizer{}
}

func (nullSynthesizer) Voices() []Voice           { return nil }
func (nullSynthesizer) Speak(string, Voice) error { return nil }
func (nullSynthesizer) Cancel()                   {}

// loggingPlayer stands in for a platform audio output; it records that a
// buffer was ready to play. Platform integrations supply a real Player.
type loggingPlayer struct{}

// NewLoggingPlayer creates the default playback sink
func NewLoggingPlayer() Player {
	return loggingPlayer{}
}

func (loggingPlayer) Play(buf *AudioBuffer) error {
	seconds := float64(len(buf.Samples)) / float64(buf.SampleRate)
	logger.WithFields(logrus.Fields{
		"samples":     len(buf.Samples),
		"sample_rate": buf.SampleRate,
		"duration_s":  seconds,
	}).Info("Audio buffer ready for playback")
	return nil
}
