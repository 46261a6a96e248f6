// Package sim provides host-side stand-ins for the module's hardware.
// The audio renderer here plays the retired pulse outputs through the
// machine's sound device instead of the physical jacks.
package sim

import (
	"github.com/ebitengine/oto/v3"

	"github.com/vincent-maurer/Workshop-Computer/audio"
	"github.com/vincent-maurer/Workshop-Computer/core"
)

// OtoRenderer implements core.AudioRenderer on an oto playback context.
type OtoRenderer struct {
	ctx    *oto.Context
	player *oto.Player
	mix    *audio.Mixer
	buf    []int16
}

func NewOtoRenderer() *OtoRenderer {
	return &OtoRenderer{}
}

// Claim starts playback of the mixer. The pin arguments are accepted for
// interface compatibility; on the host there is nothing to release.
func (r *OtoRenderer) Claim(left, right core.GPIOPin, mix *audio.Mixer, cfg core.AudioConfig) error {
	op := &oto.NewContextOptions{
		SampleRate:   int(cfg.SampleRate),
		ChannelCount: cfg.ChannelCount,
		Format:       oto.FormatSignedInt16LE,
	}
	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return err
	}
	<-ready

	r.ctx = ctx
	r.mix = mix
	r.player = ctx.NewPlayer(r)
	r.player.Play()
	return nil
}

// Read implements io.Reader for the oto player: little-endian int16
// frames pulled from the mixer.
func (r *OtoRenderer) Read(p []byte) (int, error) {
	n := len(p) / 2
	if cap(r.buf) < n {
		r.buf = make([]int16, n)
	}
	buf := r.buf[:n]
	r.mix.ReadFrames(buf)
	for i, s := range buf {
		p[2*i] = byte(s)
		p[2*i+1] = byte(uint16(s) >> 8)
	}
	return n * 2, nil
}
