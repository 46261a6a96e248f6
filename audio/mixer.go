// Package audio provides the fixed-voice sample mixer that feeds the
// pulse-to-audio renderers once the pulse output lines are retired.
package audio

import (
	"fmt"
	"sync"
)

type voice struct {
	samples []int16 // interleaved frames
	pos     int
	loop    bool
	active  bool
}

// Mixer sums a fixed table of 16-bit signed voices into interleaved
// frames. Renderers pull frames from it on their own clock; the mixer is
// safe for one producer and one consumer.
type Mixer struct {
	mu         sync.Mutex
	voices     []voice
	sampleRate int
	channels   int
}

// NewMixer builds a mixer with the given voice table size.
func NewMixer(voiceCount, sampleRate, channels int) *Mixer {
	if voiceCount < 1 {
		voiceCount = 1
	}
	if channels < 1 {
		channels = 1
	}
	return &Mixer{
		voices:     make([]voice, voiceCount),
		sampleRate: sampleRate,
		channels:   channels,
	}
}

func (m *Mixer) SampleRate() int {
	return m.sampleRate
}

func (m *Mixer) Channels() int {
	return m.channels
}

// Play starts a voice playing the given interleaved samples, replacing
// whatever it was playing. Looping voices repeat until stopped.
func (m *Mixer) Play(voiceNum int, samples []int16, loop bool) error {
	if voiceNum < 0 || voiceNum >= len(m.voices) {
		return fmt.Errorf("audio: voice %d out of range (0-%d)", voiceNum, len(m.voices)-1)
	}
	if len(samples)%m.channels != 0 {
		return fmt.Errorf("audio: sample count %d not a multiple of %d channels", len(samples), m.channels)
	}
	m.mu.Lock()
	m.voices[voiceNum] = voice{samples: samples, loop: loop, active: len(samples) > 0}
	m.mu.Unlock()
	return nil
}

// Stop silences a voice.
func (m *Mixer) Stop(voiceNum int) error {
	if voiceNum < 0 || voiceNum >= len(m.voices) {
		return fmt.Errorf("audio: voice %d out of range (0-%d)", voiceNum, len(m.voices)-1)
	}
	m.mu.Lock()
	m.voices[voiceNum].active = false
	m.mu.Unlock()
	return nil
}

// ReadFrames fills dst with interleaved frames, summing the active voices
// with saturation. It always fills all of dst, with silence when nothing
// is playing, and returns the number of frames written.
func (m *Mixer) ReadFrames(dst []int16) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	frames := len(dst) / m.channels
	for i := range dst {
		dst[i] = 0
	}

	for f := 0; f < frames; f++ {
		base := f * m.channels
		for ch := 0; ch < m.channels; ch++ {
			var sum int32
			for v := range m.voices {
				vo := &m.voices[v]
				if !vo.active {
					continue
				}
				sum += int32(vo.samples[vo.pos+ch])
			}
			if sum > 32767 {
				sum = 32767
			} else if sum < -32768 {
				sum = -32768
			}
			dst[base+ch] = int16(sum)
		}
		m.advance()
	}
	return frames
}

// advance steps every active voice by one frame.
func (m *Mixer) advance() {
	for v := range m.voices {
		vo := &m.voices[v]
		if !vo.active {
			continue
		}
		vo.pos += m.channels
		if vo.pos >= len(vo.samples) {
			vo.pos = 0
			if !vo.loop {
				vo.active = false
			}
		}
	}
}
