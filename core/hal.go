// Hardware abstraction interfaces for the conditioning layer.
// Target code (targets/) provides real implementations; mock_hal.go
// provides the doubles used by tests and the host simulator.
package core

import (
	"tinygo.org/x/drivers"

	"github.com/vincent-maurer/Workshop-Computer/audio"
)

// GPIOPin identifies a hardware GPIO pin number.
type GPIOPin uint32

// PWMPin identifies a hardware pin driven by a PWM slice.
type PWMPin uint32

// ADCChannelID identifies a logical ADC channel.
type ADCChannelID uint8

// ADCValue is the "raw" ADC reading as seen by the rest of the layer.
// Convention here: 16-bit value, even if underlying hardware is 12 bits.
type ADCValue uint16

// DigitalDriver is the abstract GPIO interface the conditioning layer uses.
type DigitalDriver interface {
	// ConfigureOutput configures a pin as a digital output.
	ConfigureOutput(pin GPIOPin) error

	// ConfigureInputPullUp configures a pin as a digital input with
	// pull-up resistor. The line idles high.
	ConfigureInputPullUp(pin GPIOPin) error

	// SetPin sets the pin to high (true) or low (false).
	SetPin(pin GPIOPin, value bool) error

	// GetPin reads the current pin state.
	GetPin(pin GPIOPin) (bool, error)
}

// ADCDriver is the abstract ADC interface the conditioning layer uses.
type ADCDriver interface {
	// ConfigureChannel prepares a channel for analog input.
	// For pin-muxed channels, this should set the pin to analog mode.
	ConfigureChannel(ch ADCChannelID) error

	// ReadRaw performs a one-shot sample from the given channel.
	// Returns a 16-bit scaled value (e.g. 12-bit HW value left-shifted).
	ReadRaw(ch ADCChannelID) (ADCValue, error)
}

// PWMDriver is the abstract PWM interface the conditioning layer uses.
// Duty cycles are 16-bit regardless of the underlying counter width.
type PWMDriver interface {
	// ConfigurePin configures a pin for PWM output at the given carrier
	// frequency with an initial duty of zero.
	ConfigurePin(pin PWMPin, freqHz uint32) error

	// SetDuty sets the 16-bit duty cycle for a configured pin.
	SetDuty(pin PWMPin, duty uint16) error
}

// AudioConfig carries the playback parameters handed to an AudioRenderer
// when the pulse outputs are converted to audio.
type AudioConfig struct {
	SampleRate   uint32 `json:"sample_rate"`
	VoiceCount   int    `json:"voice_count"`
	ChannelCount int    `json:"channel_count"`
}

// AudioRenderer takes permanent ownership of the two physical pulse
// output pins and plays the mixer on them.
type AudioRenderer interface {
	Claim(left, right GPIOPin, mix *audio.Mixer, cfg AudioConfig) error
}

// Hardware is the capability set injected into New. Digital, ADC, PWM and
// SPI are required; Audio is only needed for ConvertPulsesToAudio.
type Hardware struct {
	Digital DigitalDriver
	ADC     ADCDriver
	PWM     PWMDriver
	SPI     drivers.SPI
	Audio   AudioRenderer
}
