package core

import (
	"fmt"
	"testing"
)

func newTestDAC(t *testing.T) (*DACDriver, *MockSPI, *MockDigital) {
	t.Helper()
	spi := &MockSPI{}
	dig := NewMockDigital()
	d := NewDACDriver(spi, dig, 21)
	if err := d.Configure(); err != nil {
		t.Fatalf("Configure failed: %v", err)
	}
	return d, spi, dig
}

func TestDACFrameEncoding(t *testing.T) {
	d, spi, _ := newTestDAC(t)

	cases := []struct {
		channel uint8
		code    uint16
		want    [2]byte
	}{
		// 0b0011000000000000 | 1250 = 0x34E2
		{0, 1250, [2]byte{0x34, 0xE2}},
		// 0b1011000000000000 | 0xABC = 0xBABC
		{1, 0xABC, [2]byte{0xBA, 0xBC}},
		{0, 0, [2]byte{0x30, 0x00}},
		{1, 4095, [2]byte{0xBF, 0xFF}},
		// Codes above 12 bits are masked, not clamped.
		{0, 0xF001, [2]byte{0x30, 0x01}},
	}
	for i, c := range cases {
		d.Write(c.channel, c.code)
		if len(spi.Frames) != i+1 {
			t.Fatalf("case %d: expected %d frames, have %d", i, i+1, len(spi.Frames))
		}
		frame := spi.Frames[i]
		if len(frame) != 2 || frame[0] != c.want[0] || frame[1] != c.want[1] {
			t.Errorf("case %d: frame = %x, want %x", i, frame, c.want)
		}
	}
}

// eventDigital and eventBus record the interleaving of chip-select edges
// and bus traffic.
type eventDigital struct {
	MockDigital
	events *[]string
}

func (e *eventDigital) SetPin(pin GPIOPin, value bool) error {
	if err := e.MockDigital.SetPin(pin, value); err != nil {
		return err
	}
	*e.events = append(*e.events, fmt.Sprintf("cs=%v", value))
	return nil
}

type eventBus struct {
	events *[]string
}

func (e *eventBus) Tx(w, r []byte) error {
	*e.events = append(*e.events, fmt.Sprintf("tx %x", w))
	return nil
}

func (e *eventBus) Transfer(b byte) (byte, error) {
	*e.events = append(*e.events, fmt.Sprintf("transfer %x", b))
	return 0, nil
}

func TestDACChipSelectFramesTransfer(t *testing.T) {
	var events []string
	dig := &eventDigital{MockDigital: *NewMockDigital(), events: &events}
	d := NewDACDriver(&eventBus{events: &events}, dig, 21)
	if err := d.Configure(); err != nil {
		t.Fatalf("Configure failed: %v", err)
	}
	events = nil // drop the bring-up CS raise

	d.Write(0, 1250)
	want := []string{"cs=false", "tx 34e2", "cs=true"}
	if len(events) != len(want) {
		t.Fatalf("events = %v, want %v", events, want)
	}
	for i := range want {
		if events[i] != want[i] {
			t.Errorf("event %d = %q, want %q", i, events[i], want[i])
		}
	}
}

func TestDACDropsWriteOnContention(t *testing.T) {
	d, spi, dig := newTestDAC(t)

	var logged []string
	SetDebugWriter(func(s string) { logged = append(logged, s) })
	defer SetDebugWriter(func(string) {})

	d.mu.Lock()
	d.Write(0, 1250)
	d.mu.Unlock()

	if len(spi.Frames) != 0 {
		t.Errorf("contended write reached the bus: %x", spi.Frames)
	}
	if dig.Level(21) != true {
		t.Error("chip select toggled during a dropped write")
	}
	if len(logged) != 1 {
		t.Fatalf("expected one log line, got %v", logged)
	}

	// The next uncontended write goes through.
	d.Write(0, 1250)
	if len(spi.Frames) != 1 {
		t.Errorf("follow-up write did not reach the bus")
	}
}
