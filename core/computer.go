// Computer facade.
// Composes the mux scanner, DAC, PWM outputs, pulse lines and LEDs behind
// the module's named logical signals. All values cross this surface in
// the uniform unsigned 16-bit logical domain (booleans for pulses);
// scaling and polarity conventions are applied underneath.
package core

import (
	"errors"
	"fmt"

	"github.com/vincent-maurer/Workshop-Computer/audio"
)

// ErrPulseOutsRetired is returned by the pulse output setters after
// ConvertPulsesToAudio has handed the physical lines to the renderer.
var ErrPulseOutsRetired = errors.New("pulse outputs retired for audio playback")

// primeUpdates is how many scan cycles run at construction so the
// smoothing filter converges from its zero initial state before the first
// meaningful read.
const primeUpdates = 4

// Computer is the facade over all module I/O. It is driven by a single
// cooperative loop: call Update once per iteration, then read inputs and
// write outputs. One explicitly owned instance per module; pass it by
// pointer into the polling routine.
type Computer struct {
	cfg Config
	hw  Hardware

	mux *MuxScanner
	dac *DACDriver

	pulseIn  [2]*PulseInput
	pulseOut [2]*PulseOutput

	// Last logical values written, per output. Physical codes are
	// recomputed from the logical value on every write, never cached.
	audioOutState [2]uint16
	cvOutState    [2]uint16
	pulseOutState [2]bool
	ledState      [6]uint16

	pulsesRetired bool
}

// New wires the facade to the injected hardware capability set, brings up
// every pin it owns and primes the smoothing filter. The SPI bus and the
// board-level peripherals behind the drivers must already be configured
// by target code.
func New(cfg Config, hw Hardware) (*Computer, error) {
	if hw.Digital == nil || hw.ADC == nil || hw.PWM == nil || hw.SPI == nil {
		return nil, errors.New("computer: digital, adc, pwm and spi capabilities are required")
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	c := &Computer{
		cfg: cfg,
		hw:  hw,
		mux: NewMuxScanner(hw.Digital, hw.ADC, cfg),
		dac: NewDACDriver(hw.SPI, hw.Digital, cfg.Pins.DACChipSelect),
		pulseIn: [2]*PulseInput{
			NewPulseInput(hw.Digital, cfg.Pins.PulseIn1),
			NewPulseInput(hw.Digital, cfg.Pins.PulseIn2),
		},
		pulseOut: [2]*PulseOutput{
			NewPulseOutput(hw.Digital, cfg.Pins.PulseOut1),
			NewPulseOutput(hw.Digital, cfg.Pins.PulseOut2),
		},
	}

	if err := c.bringUp(); err != nil {
		return nil, err
	}

	// Pre-read all the mux inputs.
	for i := 0; i < primeUpdates; i++ {
		if err := c.Update(); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func (c *Computer) bringUp() error {
	if err := c.mux.Configure(); err != nil {
		return fmt.Errorf("mux: %w", err)
	}
	for _, ch := range []ADCChannelID{c.cfg.Pins.Audio1ADC, c.cfg.Pins.Audio2ADC} {
		if err := c.hw.ADC.ConfigureChannel(ch); err != nil {
			return fmt.Errorf("audio adc %d: %w", ch, err)
		}
	}
	if err := c.dac.Configure(); err != nil {
		return fmt.Errorf("dac: %w", err)
	}
	for i, in := range c.pulseIn {
		if err := in.Configure(); err != nil {
			return fmt.Errorf("pulse in %d: %w", i+1, err)
		}
	}
	for i, out := range c.pulseOut {
		if err := out.Configure(); err != nil {
			return fmt.Errorf("pulse out %d: %w", i+1, err)
		}
	}
	for i, pin := range []PWMPin{c.cfg.Pins.CV1PWM, c.cfg.Pins.CV2PWM} {
		if err := c.hw.PWM.ConfigurePin(pin, c.cfg.PWMFrequencyHz); err != nil {
			return fmt.Errorf("cv %d pwm: %w", i+1, err)
		}
		if err := c.hw.PWM.SetDuty(pin, CVZeroPoint); err != nil {
			return fmt.Errorf("cv %d pwm: %w", i+1, err)
		}
	}
	for i, pin := range c.cfg.Pins.LEDs {
		if err := c.hw.PWM.ConfigurePin(pin, c.cfg.PWMFrequencyHz); err != nil {
			return fmt.Errorf("led %d pwm: %w", i, err)
		}
	}
	return nil
}

// Update advances the mux state machine by exactly one phase. The polling
// loop must call it once per iteration before reading input signals.
func (c *Computer) Update() error {
	return c.mux.Update()
}

// Phase returns the current mux phase, for diagnostics and tests.
func (c *Computer) Phase() uint8 {
	return c.mux.Phase()
}

// Channels returns a snapshot of the raw smoothed channel table.
func (c *Computer) Channels() [ChannelCount]uint16 {
	return c.mux.Channels()
}

// KnobMain returns the main knob position, 0-65535.
func (c *Computer) KnobMain() uint16 { return c.mux.Channel(ChanKnobMain) }

// KnobX returns the X-knob position, 0-65535.
func (c *Computer) KnobX() uint16 { return c.mux.Channel(ChanKnobX) }

// KnobY returns the Y-knob position, 0-65535.
func (c *Computer) KnobY() uint16 { return c.mux.Channel(ChanKnobY) }

// Switch returns the Z-switch position, 0-65535.
func (c *Computer) Switch() uint16 { return c.mux.Channel(ChanSwitch) }

// AudioIn1 samples the first audio input. The input buffer inverts, so
// the raw reading is flipped back to the logical domain.
func (c *Computer) AudioIn1() (uint16, error) { return c.audioIn(c.cfg.Pins.Audio1ADC) }

// AudioIn2 samples the second audio input.
func (c *Computer) AudioIn2() (uint16, error) { return c.audioIn(c.cfg.Pins.Audio2ADC) }

func (c *Computer) audioIn(ch ADCChannelID) (uint16, error) {
	raw, err := c.hw.ADC.ReadRaw(ch)
	if err != nil {
		return 0, err
	}
	return InvertInput(uint16(raw)), nil
}

// CVIn1 returns the first CV input from the channel table, polarity
// corrected. Note the mux write path already stores this slot under the
// inverting buffer convention, so the net sign here may not match the
// apparent design intent; the observed arithmetic is preserved exactly,
// pending clarification with the hardware owners.
func (c *Computer) CVIn1() uint16 { return InvertInput(c.mux.Channel(ChanCV1)) }

// CVIn2 returns the second CV input, same convention as CVIn1.
func (c *Computer) CVIn2() uint16 { return InvertInput(c.mux.Channel(ChanCV2)) }

// PulseIn1 returns true while the first pulse input is driven.
func (c *Computer) PulseIn1() (bool, error) { return c.pulseIn[0].Get() }

// PulseIn2 returns true while the second pulse input is driven.
func (c *Computer) PulseIn2() (bool, error) { return c.pulseIn[1].Get() }

// SetAudioOut1 writes a 16-bit sample to DAC channel A. A contended bus
// drops the physical write (see DACDriver.Write); the logical value is
// recorded regardless.
func (c *Computer) SetAudioOut1(v uint16) {
	c.audioOutState[0] = v
	c.dac.Write(0, AudioToDACCode(v))
}

// SetAudioOut2 writes a 16-bit sample to DAC channel B.
func (c *Computer) SetAudioOut2(v uint16) {
	c.audioOutState[1] = v
	c.dac.Write(1, AudioToDACCode(v))
}

// AudioOut1 returns the last logical value written to DAC channel A.
func (c *Computer) AudioOut1() uint16 { return c.audioOutState[0] }

// AudioOut2 returns the last logical value written to DAC channel B.
func (c *Computer) AudioOut2() uint16 { return c.audioOutState[1] }

// SetCVOut1 writes a logical CV value to the first PWM output.
func (c *Computer) SetCVOut1(v uint16) error {
	c.cvOutState[0] = v
	return c.hw.PWM.SetDuty(c.cfg.Pins.CV1PWM, CVToDuty(v))
}

// SetCVOut2 writes a logical CV value to the second PWM output.
func (c *Computer) SetCVOut2(v uint16) error {
	c.cvOutState[1] = v
	return c.hw.PWM.SetDuty(c.cfg.Pins.CV2PWM, CVToDuty(v))
}

// CVOut1 returns the last logical value written to the first CV output.
func (c *Computer) CVOut1() uint16 { return c.cvOutState[0] }

// CVOut2 returns the last logical value written to the second CV output.
func (c *Computer) CVOut2() uint16 { return c.cvOutState[1] }

// SetPulseOut1 drives the first pulse output (logical true = line low).
func (c *Computer) SetPulseOut1(v bool) error { return c.setPulseOut(0, v) }

// SetPulseOut2 drives the second pulse output.
func (c *Computer) SetPulseOut2(v bool) error { return c.setPulseOut(1, v) }

func (c *Computer) setPulseOut(i int, v bool) error {
	if c.pulsesRetired {
		return ErrPulseOutsRetired
	}
	if err := c.pulseOut[i].Set(v); err != nil {
		return err
	}
	c.pulseOutState[i] = v
	return nil
}

// PulseOut1 returns the last logical state written to the first pulse output.
func (c *Computer) PulseOut1() bool { return c.pulseOutState[0] }

// PulseOut2 returns the last logical state written to the second pulse output.
func (c *Computer) PulseOut2() bool { return c.pulseOutState[1] }

// SetLED sets the brightness of one of the six LEDs. The value is
// pre-gamma; correction is applied before the duty write.
func (c *Computer) SetLED(i int, brightness uint16) error {
	if i < 0 || i >= len(c.ledState) {
		return fmt.Errorf("led %d out of range (0-%d)", i, len(c.ledState)-1)
	}
	c.ledState[i] = brightness
	return c.hw.PWM.SetDuty(c.cfg.Pins.LEDs[i], GammaCorrect(brightness))
}

// LED returns the last pre-gamma brightness written to one LED.
func (c *Computer) LED(i int) uint16 {
	if i < 0 || i >= len(c.ledState) {
		return 0
	}
	return c.ledState[i]
}

// ConvertPulsesToAudio hands the two physical pulse output pins to the
// injected audio renderer and returns the mixer that feeds it. Zero
// fields of acfg take the configured defaults. Afterwards the pulse
// output setters fail with ErrPulseOutsRetired for the rest of the
// process lifetime.
func (c *Computer) ConvertPulsesToAudio(acfg AudioConfig) (*audio.Mixer, error) {
	if c.pulsesRetired {
		return nil, ErrPulseOutsRetired
	}
	if c.hw.Audio == nil {
		return nil, errors.New("computer: no audio renderer installed")
	}
	c.cfg.applyAudioDefaults(&acfg)

	mix := audio.NewMixer(acfg.VoiceCount, int(acfg.SampleRate), acfg.ChannelCount)
	if err := c.hw.Audio.Claim(c.pulseOut[0].Pin(), c.pulseOut[1].Pin(), mix, acfg); err != nil {
		return nil, err
	}
	c.pulsesRetired = true
	return mix, nil
}
