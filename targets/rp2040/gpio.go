//go:build rp2040

package main

import (
	"machine"

	"github.com/vincent-maurer/Workshop-Computer/core"
)

// RpDigitalDriver implements core.DigitalDriver on machine.Pin.
type RpDigitalDriver struct{}

func (d *RpDigitalDriver) ConfigureOutput(pin core.GPIOPin) error {
	machine.Pin(pin).Configure(machine.PinConfig{Mode: machine.PinOutput})
	return nil
}

func (d *RpDigitalDriver) ConfigureInputPullUp(pin core.GPIOPin) error {
	machine.Pin(pin).Configure(machine.PinConfig{Mode: machine.PinInputPullup})
	return nil
}

func (d *RpDigitalDriver) SetPin(pin core.GPIOPin, value bool) error {
	machine.Pin(pin).Set(value)
	return nil
}

func (d *RpDigitalDriver) GetPin(pin core.GPIOPin) (bool, error) {
	return machine.Pin(pin).Get(), nil
}
