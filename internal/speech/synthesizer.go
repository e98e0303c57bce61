package speech

// Voice identifies one locally installed synthesis voice
type Voice struct {
	Name   string
	Locale string
}

// Synthesizer is the local speech synthesis collaborator. Speak plays
// immediately, preempting any currently playing utterance; Cancel stops
// the current utterance and is safe to call when nothing is playing.
type Synthesizer interface {
	Voices() []Voice
	Speak(text string, voice Voice) error
	Cancel()
}

// AudioBuffer is a playable buffer of normalized mono samples
type AudioBuffer struct {
	Samples    []float32
	SampleRate int
	Channels   int
}

// Player plays a decoded audio buffer on the single shared output channel
type Player interface {
	Play(buf *AudioBuffer) error
}
