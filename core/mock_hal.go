// Mock hardware drivers.
// Shipped rather than test-only so the host simulator (cmd/sim) can run
// the full facade without a board attached. Tests use them as doubles.
package core

import (
	"fmt"

	"github.com/vincent-maurer/Workshop-Computer/audio"
)

// MockDigital implements DigitalDriver over an in-memory pin map.
type MockDigital struct {
	levels  map[GPIOPin]bool
	outputs map[GPIOPin]bool
	inputs  map[GPIOPin]bool
}

func NewMockDigital() *MockDigital {
	return &MockDigital{
		levels:  make(map[GPIOPin]bool),
		outputs: make(map[GPIOPin]bool),
		inputs:  make(map[GPIOPin]bool),
	}
}

func (m *MockDigital) ConfigureOutput(pin GPIOPin) error {
	m.outputs[pin] = true
	delete(m.inputs, pin)
	return nil
}

func (m *MockDigital) ConfigureInputPullUp(pin GPIOPin) error {
	m.inputs[pin] = true
	delete(m.outputs, pin)
	m.levels[pin] = true // pull-up idles high
	return nil
}

func (m *MockDigital) SetPin(pin GPIOPin, value bool) error {
	if !m.outputs[pin] {
		return fmt.Errorf("mock digital: pin %d not configured as output", pin)
	}
	m.levels[pin] = value
	return nil
}

func (m *MockDigital) GetPin(pin GPIOPin) (bool, error) {
	if !m.outputs[pin] && !m.inputs[pin] {
		return false, fmt.Errorf("mock digital: pin %d not configured", pin)
	}
	return m.levels[pin], nil
}

// Drive sets the physical level of a simulated input line.
func (m *MockDigital) Drive(pin GPIOPin, level bool) {
	m.levels[pin] = level
}

// Level peeks at the physical level of any pin.
func (m *MockDigital) Level(pin GPIOPin) bool {
	return m.levels[pin]
}

// MockADC implements ADCDriver; tests and the simulator feed it values
// per channel.
type MockADC struct {
	configured map[ADCChannelID]bool
	values     map[ADCChannelID]ADCValue
}

func NewMockADC() *MockADC {
	return &MockADC{
		configured: make(map[ADCChannelID]bool),
		values:     make(map[ADCChannelID]ADCValue),
	}
}

func (m *MockADC) ConfigureChannel(ch ADCChannelID) error {
	m.configured[ch] = true
	return nil
}

func (m *MockADC) ReadRaw(ch ADCChannelID) (ADCValue, error) {
	if !m.configured[ch] {
		return 0, fmt.Errorf("mock adc: channel %d not configured", ch)
	}
	return m.values[ch], nil
}

// Feed sets the raw value the channel will return from now on.
func (m *MockADC) Feed(ch ADCChannelID, value ADCValue) {
	m.values[ch] = value
}

// MockPWM implements PWMDriver, recording frequency and duty per pin.
type MockPWM struct {
	freqs  map[PWMPin]uint32
	duties map[PWMPin]uint16
}

func NewMockPWM() *MockPWM {
	return &MockPWM{
		freqs:  make(map[PWMPin]uint32),
		duties: make(map[PWMPin]uint16),
	}
}

func (m *MockPWM) ConfigurePin(pin PWMPin, freqHz uint32) error {
	m.freqs[pin] = freqHz
	m.duties[pin] = 0
	return nil
}

func (m *MockPWM) SetDuty(pin PWMPin, duty uint16) error {
	if _, ok := m.freqs[pin]; !ok {
		return fmt.Errorf("mock pwm: pin %d not configured", pin)
	}
	m.duties[pin] = duty
	return nil
}

// Duty returns the last duty written to a pin.
func (m *MockPWM) Duty(pin PWMPin) uint16 {
	return m.duties[pin]
}

// Frequency returns the configured carrier frequency of a pin.
func (m *MockPWM) Frequency(pin PWMPin) uint32 {
	return m.freqs[pin]
}

// MockSPI implements drivers.SPI and records every transmitted frame.
type MockSPI struct {
	Frames [][]byte
}

func (m *MockSPI) Tx(w, r []byte) error {
	m.Frames = append(m.Frames, append([]byte(nil), w...))
	for i := range r {
		r[i] = 0
	}
	return nil
}

func (m *MockSPI) Transfer(b byte) (byte, error) {
	m.Frames = append(m.Frames, []byte{b})
	return 0, nil
}

// MockAudioRenderer records the claim handed to it.
type MockAudioRenderer struct {
	Claimed     bool
	Left, Right GPIOPin
	Mix         *audio.Mixer
	Cfg         AudioConfig
}

func (m *MockAudioRenderer) Claim(left, right GPIOPin, mix *audio.Mixer, cfg AudioConfig) error {
	m.Claimed = true
	m.Left = left
	m.Right = right
	m.Mix = mix
	m.Cfg = cfg
	return nil
}
