package speech

import (
	"encoding/binary"
	"fmt"
)

// DefaultSampleRate is the nominal rate of cloud TTS audio payloads
const DefaultSampleRate = 24000

// DecodePCM16 builds a playable buffer from raw 16-bit signed
// little-endian mono samples, normalizing each sample into [-1, 1)
// by dividing by 32768.
func DecodePCM16(data []byte, sampleRate int) (*AudioBuffer, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("empty audio payload")
	}
	if len(data)%2 != 0 {
		return nil, fmt.Errorf("odd-length PCM payload (%d bytes)", len(data))
	}
	if sampleRate <= 0 {
		sampleRate = DefaultSampleRate
	}

	samples := make([]float32, len(data)/2)
	for i := range samples {
		s := int16(binary.LittleEndian.Uint16(data[2*i:]))
		samples[i] = float32(s) / 32768.0
	}
	return &AudioBuffer{
		Samples:    samples,
		SampleRate: sampleRate,
		Channels:   1,
	}, nil
}
