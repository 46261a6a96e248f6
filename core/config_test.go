package core

import "testing"

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.SmoothingFactor != 0.3 {
		t.Errorf("smoothing factor = %v, want 0.3", cfg.SmoothingFactor)
	}
	if cfg.PWMFrequencyHz != 60000 {
		t.Errorf("pwm frequency = %d, want 60000", cfg.PWMFrequencyHz)
	}
	if cfg.Pins.PulseOut1 != 8 || cfg.Pins.PulseOut2 != 9 {
		t.Errorf("pulse out pins = %d/%d, want 8/9", cfg.Pins.PulseOut1, cfg.Pins.PulseOut2)
	}
	if cfg.Audio.SampleRate != 22050 || cfg.Audio.VoiceCount != 5 || cfg.Audio.ChannelCount != 2 {
		t.Errorf("audio defaults = %+v", cfg.Audio)
	}
}

func TestLoadConfigLayersOverDefaults(t *testing.T) {
	cfg, err := LoadConfig([]byte(`{"smoothing_factor": 0.5, "pins": {"dac_chip_select": 5}}`))
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.SmoothingFactor != 0.5 {
		t.Errorf("override lost: smoothing factor = %v", cfg.SmoothingFactor)
	}
	if cfg.Pins.DACChipSelect != 5 {
		t.Errorf("override lost: dac cs = %d", cfg.Pins.DACChipSelect)
	}
	// Untouched fields keep their defaults.
	if cfg.Pins.MuxSelA != 24 || cfg.PWMFrequencyHz != 60000 {
		t.Error("defaults lost under partial document")
	}
}

func TestLoadConfigRejectsBadValues(t *testing.T) {
	if _, err := LoadConfig([]byte(`{"smoothing_factor": 1.5}`)); err == nil {
		t.Error("accepted smoothing factor outside [0, 1)")
	}
	if _, err := LoadConfig([]byte(`{"pwm_frequency_hz": 0}`)); err == nil {
		t.Error("accepted zero pwm frequency")
	}
	if _, err := LoadConfig([]byte(`{not json`)); err == nil {
		t.Error("accepted malformed json")
	}
}
