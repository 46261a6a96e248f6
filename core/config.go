package core

import (
	"encoding/json"
	"fmt"
)

// PinConfig names every hardware resource the layer touches. The
// defaults reproduce the Workshop Computer board wiring; a different
// board revision can override them through LoadConfig.
type PinConfig struct {
	// Mux select lines.
	MuxSelA GPIOPin `json:"mux_sel_a"`
	MuxSelB GPIOPin `json:"mux_sel_b"`

	// Pulse jacks.
	PulseIn1  GPIOPin `json:"pulse_in_1"`
	PulseIn2  GPIOPin `json:"pulse_in_2"`
	PulseOut1 GPIOPin `json:"pulse_out_1"`
	PulseOut2 GPIOPin `json:"pulse_out_2"`

	// MCP4822 chip select. Bus pins belong to target bring-up.
	DACChipSelect GPIOPin `json:"dac_chip_select"`

	// CV outputs (PWM-as-DAC) and the six LED channels.
	CV1PWM PWMPin    `json:"cv_1_pwm"`
	CV2PWM PWMPin    `json:"cv_2_pwm"`
	LEDs   [6]PWMPin `json:"leds"`

	// ADC channels: dedicated audio inputs plus the two shared mux buses.
	Audio1ADC ADCChannelID `json:"audio_1_adc"`
	Audio2ADC ADCChannelID `json:"audio_2_adc"`
	Mux1ADC   ADCChannelID `json:"mux_1_adc"`
	Mux2ADC   ADCChannelID `json:"mux_2_adc"`
}

// Config is the full configuration for the conditioning layer.
type Config struct {
	Pins            PinConfig   `json:"pins"`
	SmoothingFactor float64     `json:"smoothing_factor"`
	PWMFrequencyHz  uint32      `json:"pwm_frequency_hz"`
	Audio           AudioConfig `json:"audio"`
}

// DefaultConfig returns the stock Workshop Computer configuration.
func DefaultConfig() Config {
	return Config{
		Pins: PinConfig{
			MuxSelA:       24,
			MuxSelB:       25,
			PulseIn1:      2,
			PulseIn2:      3,
			PulseOut1:     8,
			PulseOut2:     9,
			DACChipSelect: 21,
			CV1PWM:        23,
			CV2PWM:        22,
			LEDs:          [6]PWMPin{10, 11, 12, 13, 14, 15},
			Audio1ADC:     1, // GP27
			Audio2ADC:     0, // GP26
			Mux1ADC:       2, // GP28
			Mux2ADC:       3, // GP29
		},
		SmoothingFactor: DefaultSmoothingFactor,
		PWMFrequencyHz:  60_000,
		Audio: AudioConfig{
			SampleRate:   22050,
			VoiceCount:   5,
			ChannelCount: 2,
		},
	}
}

// LoadConfig parses a JSON configuration, layered over the defaults so a
// partial document only overrides what it names.
func LoadConfig(jsonData []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := json.Unmarshal(jsonData, &cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.SmoothingFactor < 0 || c.SmoothingFactor >= 1 {
		return fmt.Errorf("smoothing factor %v outside [0, 1)", c.SmoothingFactor)
	}
	if c.PWMFrequencyHz == 0 {
		return fmt.Errorf("pwm frequency must be non-zero")
	}
	return nil
}

// applyAudioDefaults fills zero fields of an AudioConfig from cfg.Audio.
func (c *Config) applyAudioDefaults(a *AudioConfig) {
	if a.SampleRate == 0 {
		a.SampleRate = c.Audio.SampleRate
	}
	if a.VoiceCount == 0 {
		a.VoiceCount = c.Audio.VoiceCount
	}
	if a.ChannelCount == 0 {
		a.ChannelCount = c.Audio.ChannelCount
	}
}
