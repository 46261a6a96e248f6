package core

import "testing"

func newTestScanner(t *testing.T) (*MuxScanner, *MockDigital, *MockADC, Config) {
	t.Helper()
	cfg := DefaultConfig()
	dig := NewMockDigital()
	adc := NewMockADC()
	m := NewMuxScanner(dig, adc, cfg)
	if err := m.Configure(); err != nil {
		t.Fatalf("Configure failed: %v", err)
	}
	return m, dig, adc, cfg
}

func TestMuxPhaseSequence(t *testing.T) {
	m, _, _, _ := newTestScanner(t)
	if m.Phase() != 0 {
		t.Fatalf("fresh scanner phase = %d, want 0", m.Phase())
	}
	for n := 1; n <= 12; n++ {
		if err := m.Update(); err != nil {
			t.Fatalf("Update %d failed: %v", n, err)
		}
		if got := m.Phase(); got != uint8(n%4) {
			t.Errorf("after %d updates phase = %d, want %d", n, got, n%4)
		}
	}
}

func TestMuxSelectLines(t *testing.T) {
	m, dig, _, cfg := newTestScanner(t)
	// Update samples with the pre-advance phase, so after the k-th call
	// the select lines hold the low two bits of k-1.
	for k := 1; k <= 8; k++ {
		if err := m.Update(); err != nil {
			t.Fatalf("Update failed: %v", err)
		}
		phase := uint8((k - 1) % 4)
		if got := dig.Level(cfg.Pins.MuxSelA); got != (phase&1 != 0) {
			t.Errorf("update %d: select A = %v, want %v", k, got, phase&1 != 0)
		}
		if got := dig.Level(cfg.Pins.MuxSelB); got != (phase>>1&1 != 0) {
			t.Errorf("update %d: select B = %v, want %v", k, got, phase>>1&1 != 0)
		}
	}
}

func TestMuxSlotOwnership(t *testing.T) {
	m, _, adc, cfg := newTestScanner(t)
	adc.Feed(cfg.Pins.Mux1ADC, 1000)
	adc.Feed(cfg.Pins.Mux2ADC, 40000)

	// Phase 0 services exactly the main knob and CV1 slots.
	if err := m.Update(); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	table := m.Channels()
	if table[ChanKnobMain] != 700 { // round(0.7 * 1000)
		t.Errorf("main knob slot = %d, want 700", table[ChanKnobMain])
	}
	if table[ChanCV1] != 28000 { // round(0.7 * 40000)
		t.Errorf("cv1 slot = %d, want 28000", table[ChanCV1])
	}
	for _, slot := range []int{0, 1, ChanCV2, ChanKnobX, ChanKnobY, ChanSwitch} {
		if table[slot] != 0 {
			t.Errorf("slot %d mutated by phase 0: %d", slot, table[slot])
		}
	}
}

func TestMuxCVServicedTwicePerCycle(t *testing.T) {
	m, _, adc, cfg := newTestScanner(t)
	adc.Feed(cfg.Pins.Mux1ADC, 1000)
	adc.Feed(cfg.Pins.Mux2ADC, 40000)

	for i := 0; i < 4; i++ {
		if err := m.Update(); err != nil {
			t.Fatalf("Update failed: %v", err)
		}
	}
	table := m.Channels()

	// CV slots smoothed twice: 28000 then 0.3*28000 + 0.7*40000.
	if table[ChanCV1] != 36400 {
		t.Errorf("cv1 after one cycle = %d, want 36400", table[ChanCV1])
	}
	if table[ChanCV2] != 36400 {
		t.Errorf("cv2 after one cycle = %d, want 36400", table[ChanCV2])
	}
	// Knob and switch slots smoothed once each.
	for _, slot := range []int{ChanKnobMain, ChanKnobX, ChanKnobY, ChanSwitch} {
		if table[slot] != 700 {
			t.Errorf("slot %d after one cycle = %d, want 700", slot, table[slot])
		}
	}
}

func TestMuxConvergesTowardInput(t *testing.T) {
	m, _, adc, cfg := newTestScanner(t)
	adc.Feed(cfg.Pins.Mux1ADC, 50000)
	adc.Feed(cfg.Pins.Mux2ADC, 50000)

	for i := 0; i < 60; i++ {
		if err := m.Update(); err != nil {
			t.Fatalf("Update failed: %v", err)
		}
	}
	for slot := ChanCV1; slot <= ChanSwitch; slot++ {
		if got := m.Channel(slot); got != 50000 {
			t.Errorf("slot %d did not converge: %d", slot, got)
		}
	}
}
