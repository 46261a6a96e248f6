// Round-robin multiplexer scanning.
// Drives the two mux select lines through a 4-phase cycle and samples both
// shared ADC buses into the channel table.
package core

// ChannelCount is the number of slots in the channel table.
const ChannelCount = 8

// Channel table slots. Slots 0 and 1 are unused by the mux (the audio
// inputs have dedicated ADC channels).
const (
	ChanCV1      = 2
	ChanCV2      = 3
	ChanKnobMain = 4
	ChanKnobX    = 5
	ChanKnobY    = 6
	ChanSwitch   = 7
)

// muxTargets maps each phase to the two slots it services: mux bus 1
// feeds the knob/switch slot, mux bus 2 feeds a CV slot. The CV slots are
// serviced twice per 4-phase cycle, the knob/switch slots once.
var muxTargets = [4][2]uint8{
	{ChanKnobMain, ChanCV1},
	{ChanKnobX, ChanCV2},
	{ChanKnobY, ChanCV1},
	{ChanSwitch, ChanCV2},
}

// MuxScanner owns the channel table and the write path into it.
type MuxScanner struct {
	digital DigitalDriver
	adc     ADCDriver

	selA, selB GPIOPin
	bus1, bus2 ADCChannelID
	smooth     Smoother

	phase uint8
	table [ChannelCount]uint16
}

// NewMuxScanner builds a scanner over the given drivers using the pin map
// and smoothing factor from cfg.
func NewMuxScanner(digital DigitalDriver, adc ADCDriver, cfg Config) *MuxScanner {
	return &MuxScanner{
		digital: digital,
		adc:     adc,
		selA:    cfg.Pins.MuxSelA,
		selB:    cfg.Pins.MuxSelB,
		bus1:    cfg.Pins.Mux1ADC,
		bus2:    cfg.Pins.Mux2ADC,
		smooth:  Smoother{Factor: cfg.SmoothingFactor},
	}
}

// Configure sets up the select lines and both ADC buses.
func (m *MuxScanner) Configure() error {
	if err := m.digital.ConfigureOutput(m.selA); err != nil {
		return err
	}
	if err := m.digital.ConfigureOutput(m.selB); err != nil {
		return err
	}
	if err := m.adc.ConfigureChannel(m.bus1); err != nil {
		return err
	}
	return m.adc.ConfigureChannel(m.bus2)
}

// Update advances the scan by one phase: the select lines take the low
// two bits of the current phase, both buses are sampled into the phase's
// two slots through the smoother, then the phase counter advances mod 4.
// There is no settling delay between the select change and the sample;
// no call site of the hardware design asks for one.
func (m *MuxScanner) Update() error {
	if err := m.digital.SetPin(m.selA, m.phase&1 != 0); err != nil {
		return err
	}
	if err := m.digital.SetPin(m.selB, (m.phase>>1)&1 != 0); err != nil {
		return err
	}

	raw1, err := m.adc.ReadRaw(m.bus1)
	if err != nil {
		return err
	}
	raw2, err := m.adc.ReadRaw(m.bus2)
	if err != nil {
		return err
	}

	t := muxTargets[m.phase]
	m.table[t[0]] = m.smooth.Apply(m.table[t[0]], uint16(raw1))
	m.table[t[1]] = m.smooth.Apply(m.table[t[1]], uint16(raw2))

	m.phase = (m.phase + 1) % 4
	return nil
}

// Phase returns the number of completed updates mod 4.
func (m *MuxScanner) Phase() uint8 {
	return m.phase
}

// Channel returns the current smoothed value of one table slot.
func (m *MuxScanner) Channel(slot int) uint16 {
	return m.table[slot]
}

// Channels returns a snapshot of the whole channel table.
func (m *MuxScanner) Channels() [ChannelCount]uint16 {
	return m.table
}
