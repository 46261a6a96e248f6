//go:build rp2040

package main

import (
	"machine"

	"tinygo.org/x/drivers"
)

// DAC bus pins on the Workshop Computer: SPI0 with SCK on GP18 and SDI
// (module side SDO) on GP19. Nothing is read back from the MCP4822, but
// the controller still needs a valid SDI pin assignment.
const (
	dacSCK = machine.GPIO18
	dacSDO = machine.GPIO19
	dacSDI = machine.GPIO16
)

// newDACBus configures SPI0 for the MCP4822: mode 0, 20 MHz.
// machine.SPI satisfies drivers.SPI, which is the bus capability type
// the core expects.
func newDACBus() (drivers.SPI, error) {
	spi := machine.SPI0
	err := spi.Configure(machine.SPIConfig{
		Frequency: 20_000_000,
		SCK:       dacSCK,
		SDO:       dacSDO,
		SDI:       dacSDI,
		Mode:      0,
	})
	if err != nil {
		return nil, err
	}
	return spi, nil
}
