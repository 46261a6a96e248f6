//go:build rp2040

package main

import (
	"errors"
	"machine"

	"github.com/vincent-maurer/Workshop-Computer/core"
)

// pwmPeripheral is an interface for PWM hardware peripherals.
// This abstracts over TinyGo's unexported *pwmGroup type.
type pwmPeripheral interface {
	Configure(config machine.PWMConfig) error
	Channel(pin machine.Pin) (uint8, error)
	Top() uint32
	Set(channel uint8, value uint32)
}

// RpPWMDriver implements core.PWMDriver on the RP2040's 8 PWM slices.
// Logical 16-bit duty values are rescaled to each slice's counter top.
type RpPWMDriver struct {
	// Key: slice number (0-7).
	peripherals map[uint8]pwmPeripheral

	// Key: pin number, value: channel within its slice.
	channels map[core.PWMPin]uint8
}

func NewRpPWMDriver() *RpPWMDriver {
	return &RpPWMDriver{
		peripherals: make(map[uint8]pwmPeripheral),
		channels:    make(map[core.PWMPin]uint8),
	}
}

// sliceFor maps GPIO pin N to its PWM slice: (N >> 1) & 0x7.
func sliceFor(pin core.PWMPin) uint8 {
	return uint8((pin >> 1) & 0x7)
}

func (d *RpPWMDriver) getPWMPeripheral(slice uint8) pwmPeripheral {
	switch slice {
	case 0:
		return machine.PWM0
	case 1:
		return machine.PWM1
	case 2:
		return machine.PWM2
	case 3:
		return machine.PWM3
	case 4:
		return machine.PWM4
	case 5:
		return machine.PWM5
	case 6:
		return machine.PWM6
	default:
		return machine.PWM7
	}
}

func (d *RpPWMDriver) ConfigurePin(pin core.PWMPin, freqHz uint32) error {
	if freqHz == 0 {
		return errors.New("pwm frequency must be non-zero")
	}
	slice := sliceFor(pin)
	pwm, ok := d.peripherals[slice]
	if !ok {
		pwm = d.getPWMPeripheral(slice)
		if err := pwm.Configure(machine.PWMConfig{
			Period: uint64(1e9) / uint64(freqHz),
		}); err != nil {
			return err
		}
		d.peripherals[slice] = pwm
	}

	ch, err := pwm.Channel(machine.Pin(pin))
	if err != nil {
		return err
	}
	d.channels[pin] = ch
	pwm.Set(ch, 0)
	return nil
}

func (d *RpPWMDriver) SetDuty(pin core.PWMPin, duty uint16) error {
	pwm, ok := d.peripherals[sliceFor(pin)]
	if !ok {
		return errors.New("pwm pin not configured")
	}
	ch, ok := d.channels[pin]
	if !ok {
		return errors.New("pwm pin not configured")
	}
	top := uint64(pwm.Top())
	pwm.Set(ch, uint32(uint64(duty)*top/65535))
	return nil
}
