// MCP4822 dual 12-bit DAC on the shared SPI bus.
package core

import (
	"sync"

	"tinygo.org/x/drivers"
)

// Gain/buffer configuration headers (Buffered, 1x Gain: 0011 / 1011).
const (
	dacConfigChanA = uint16(0b0011000000000000)
	dacConfigChanB = uint16(0b1011000000000000)
)

// DACDriver serializes channel writes into 2-byte frames on the shared
// SPI bus, framed by the chip-select line.
type DACDriver struct {
	bus     drivers.SPI
	digital DigitalDriver
	cs      GPIOPin
	mu      sync.Mutex
}

// NewDACDriver builds a driver over the given bus and chip-select pin.
func NewDACDriver(bus drivers.SPI, digital DigitalDriver, cs GPIOPin) *DACDriver {
	return &DACDriver{bus: bus, digital: digital, cs: cs}
}

// Configure sets up the chip-select line, deasserted (high).
func (d *DACDriver) Configure() error {
	if err := d.digital.ConfigureOutput(d.cs); err != nil {
		return err
	}
	return d.digital.SetPin(d.cs, true)
}

// Write sends a 12-bit code to channel 0 (A) or 1 (B). The frame is the
// per-channel configuration header OR'd with the code, sent big-endian
// with CS asserted low around the transfer.
//
// The bus is shared between the two channels; if the lock is already held
// the write is dropped rather than blocked, leaving the DAC output stale
// until the next successful write.
func (d *DACDriver) Write(channel uint8, code uint16) {
	frame := dacConfigChanA
	if channel != 0 {
		frame = dacConfigChanB
	}
	frame |= code & 0x0FFF

	if !d.mu.TryLock() {
		DebugPrintln("dac: bus busy, write dropped")
		return
	}
	defer d.mu.Unlock()

	if err := d.digital.SetPin(d.cs, false); err != nil {
		DebugPrintln("dac: cs assert failed: " + err.Error())
		return
	}
	buf := []byte{byte(frame >> 8), byte(frame)}
	if err := d.bus.Tx(buf, nil); err != nil {
		DebugPrintln("dac: transfer failed: " + err.Error())
	}
	if err := d.digital.SetPin(d.cs, true); err != nil {
		DebugPrintln("dac: cs deassert failed: " + err.Error())
	}
}
