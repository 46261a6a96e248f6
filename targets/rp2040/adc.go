//go:build rp2040

package main

import (
	"errors"
	"machine"

	"github.com/vincent-maurer/Workshop-Computer/core"
)

// RpADCDriver implements core.ADCDriver using TinyGo's machine.ADC.
// Channel IDs are the RP2040 ADC input numbers 0-3 (GPIO26-GPIO29).
type RpADCDriver struct {
	channels map[core.ADCChannelID]machine.ADC
}

// NewRpADCDriver powers up the ADC peripheral and returns the driver.
func NewRpADCDriver() *RpADCDriver {
	machine.InitADC()
	return &RpADCDriver{
		channels: make(map[core.ADCChannelID]machine.ADC),
	}
}

func (d *RpADCDriver) ConfigureChannel(ch core.ADCChannelID) error {
	if _, ok := d.channels[ch]; ok {
		// already configured
		return nil
	}

	var adc machine.ADC
	switch ch {
	case 0:
		adc = machine.ADC{Pin: machine.ADC0}
	case 1:
		adc = machine.ADC{Pin: machine.ADC1}
	case 2:
		adc = machine.ADC{Pin: machine.ADC2}
	case 3:
		adc = machine.ADC{Pin: machine.ADC3}
	default:
		return errors.New("unsupported ADC channel")
	}

	if err := adc.Configure(machine.ADCConfig{}); err != nil {
		return err
	}
	d.channels[ch] = adc
	return nil
}

func (d *RpADCDriver) ReadRaw(ch core.ADCChannelID) (core.ADCValue, error) {
	adc, ok := d.channels[ch]
	if !ok {
		return 0, errors.New("ADC channel not configured")
	}
	// machine.ADC.Get returns a 16-bit scaled value already.
	return core.ADCValue(adc.Get()), nil
}
