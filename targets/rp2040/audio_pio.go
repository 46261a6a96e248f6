//go:build rp2040

package main

// PIO PWM audio on the retired pulse output pins.
// Once the facade converts the pulse outs to audio, each pin is driven by
// its own PIO state machine generating one PWM carrier period per sample;
// the FIFO depth paces the feeder at the sample rate.

import (
	"machine"

	rp2pio "github.com/tinygo-org/pio/rp2-pio"

	"github.com/vincent-maurer/Workshop-Computer/audio"
	"github.com/vincent-maurer/Workshop-Computer/core"
)

// PIO program for one-period-per-word PWM
// Word format (shift right, so the first field sits in the low bits):
//
//	Bits 0-15:  high ticks
//	Bits 16-31: low ticks
//
// buildPWMAudioProgram creates the carrier program using AssemblerV0
func buildPWMAudioProgram() []uint16 {
	asm := rp2pio.AssemblerV0{SidesetBits: 0}
	return []uint16{
		// .wrap_target
		asm.Pull(false, true).Encode(),        // 0: pull block
		asm.Out(rp2pio.OutDestX, 16).Encode(), // 1: out x, 16 (high ticks)
		asm.Out(rp2pio.OutDestY, 16).Encode(), // 2: out y, 16 (low ticks)
		// high_loop:
		asm.Set(rp2pio.SetDestPins, 1).Encode(),  // 3: set pins, 1
		asm.Jmp(3, rp2pio.JmpXNZeroDec).Encode(), // 4: jmp x--, 3
		// low_loop:
		asm.Set(rp2pio.SetDestPins, 0).Encode(),  // 5: set pins, 0
		asm.Jmp(5, rp2pio.JmpYNZeroDec).Encode(), // 6: jmp y--, 5
		// .wrap
	}
}

const audioPIOOrigin = 0 // Load at offset 0 for correct jump addresses

// PIOAudioRenderer implements core.AudioRenderer on PIO0, state machines
// 0 (left) and 1 (right).
type PIOAudioRenderer struct {
	pio    *rp2pio.PIO
	sms    [2]rp2pio.StateMachine
	period uint32
}

func NewPIOAudioRenderer() *PIOAudioRenderer {
	return &PIOAudioRenderer{pio: rp2pio.PIO0}
}

// Claim loads the carrier program, takes over both pins and starts the
// feeder. The facade has already released the pins as GPIO outputs.
func (r *PIOAudioRenderer) Claim(left, right core.GPIOPin, mix *audio.Mixer, cfg core.AudioConfig) error {
	program := buildPWMAudioProgram()
	offset, err := r.pio.AddProgram(program, audioPIOOrigin)
	if err != nil {
		return err
	}

	// One carrier period per sample: each loop tick is 2 cycles, plus
	// the 3-instruction fetch overhead per word.
	cycles := machine.CPUFrequency() / cfg.SampleRate
	r.period = (cycles - 7) / 2

	pins := [2]machine.Pin{machine.Pin(left), machine.Pin(right)}
	for i, pin := range pins {
		sm := r.pio.StateMachine(uint8(i))
		sm.TryClaim()

		pin.Configure(machine.PinConfig{Mode: r.pio.PinMode()})

		smCfg := rp2pio.DefaultStateMachineConfig()
		smCfg.SetSetPins(pin, 1)
		smCfg.SetOutShift(true, false, 32)
		smCfg.SetWrap(offset+uint8(len(program))-1, offset)
		smCfg.SetClkDivIntFrac(1, 0)

		sm.Init(offset, smCfg)
		sm.SetPindirsConsecutive(pin, 1, true)
		sm.SetPinsConsecutive(pin, 1, false)
		sm.SetEnabled(true)
		r.sms[i] = sm
	}

	go r.feed(mix, cfg.ChannelCount)
	return nil
}

func (r *PIOAudioRenderer) feed(mix *audio.Mixer, channels int) {
	frames := make([]int16, 64*channels)
	for {
		mix.ReadFrames(frames)
		for i := 0; i < len(frames); i += channels {
			l := frames[i]
			rt := l
			if channels > 1 {
				rt = frames[i+1]
			}
			r.push(0, l)
			r.push(1, rt)
		}
	}
}

// push converts one signed sample into a high/low tick pair and queues
// it on a state machine FIFO.
func (r *PIOAudioRenderer) push(sm int, sample int16) {
	high := uint32(uint64(uint32(int32(sample)+32768)) * uint64(r.period) >> 16)
	low := r.period - high
	word := high | low<<16

	for r.sms[sm].IsTxFIFOFull() {
		// Busy wait - drained at the sample rate by the state machine
	}
	r.sms[sm].TxPut(word)
}
