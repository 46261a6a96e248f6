//go:build rp2040

package main

import (
	"strconv"
	"time"

	"github.com/vincent-maurer/Workshop-Computer/core"
)

func main() {
	// Give USB CDC a moment to enumerate so early output is visible.
	time.Sleep(2 * time.Second)

	core.SetDebugWriter(func(s string) {
		println(s)
	})

	bus, err := newDACBus()
	if err != nil {
		fatal("dac bus: " + err.Error())
	}

	hw := core.Hardware{
		Digital: &RpDigitalDriver{},
		ADC:     NewRpADCDriver(),
		PWM:     NewRpPWMDriver(),
		SPI:     bus,
		Audio:   NewPIOAudioRenderer(),
	}

	comp, err := core.New(core.DefaultConfig(), hw)
	if err != nil {
		fatal("bring-up: " + err.Error())
	}

	runDemo(comp)
}

func fatal(msg string) {
	for {
		println(msg)
		time.Sleep(time.Second)
	}
}

// Switch thresholds for the three-position Z-switch.
const (
	switchUp   = 50000
	switchDown = 15000
)

// runDemo mirrors every input to its matching output while the switch is
// up, parks the outputs otherwise, and logs a telemetry tuple at 10 Hz.
func runDemo(comp *core.Computer) {
	lastLog := time.Now()

	for {
		if err := comp.Update(); err != nil {
			core.DebugPrintln("update: " + err.Error())
			continue
		}

		a1, _ := comp.AudioIn1()
		a2, _ := comp.AudioIn2()
		cv1 := comp.CVIn1()
		cv2 := comp.CVIn2()
		p1, _ := comp.PulseIn1()
		p2, _ := comp.PulseIn2()
		sw := comp.Switch()

		var leds [6]uint16
		audioOut1 := uint16(32768) // 0V
		audioOut2 := uint16(32768)
		pulseOut1 := false
		pulseOut2 := false

		switch {
		case sw > switchUp:
			// All outputs mirror their inputs.
			comp.SetCVOut1(cv1)
			comp.SetCVOut2(cv2)
			audioOut1 = a1
			audioOut2 = a2
			pulseOut1 = p1
			pulseOut2 = p2

			leds[0] = core.RectScale(a1)
			leds[1] = core.RectScale(a2)
			leds[2] = core.RectScale(cv1)
			leds[3] = core.RectScale(cv2)
			if p1 {
				leds[4] = 65535
			}
			if p2 {
				leds[5] = 65535
			}
		case sw < switchDown:
			comp.SetCVOut1(32768)
			comp.SetCVOut2(32768)
		}

		comp.SetAudioOut1(audioOut1)
		comp.SetAudioOut2(audioOut2)
		comp.SetPulseOut1(pulseOut1)
		comp.SetPulseOut2(pulseOut2)
		for i, b := range leds {
			comp.SetLED(i, b)
		}

		if time.Since(lastLog) >= 100*time.Millisecond {
			lastLog = time.Now()
			core.DebugPrintln(telemetry(comp, a1, a2, cv1, cv2, p1, p2))
		}
	}
}

// telemetry formats the tuple the cvmon host tool tails.
func telemetry(comp *core.Computer, a1, a2, cv1, cv2 uint16, p1, p2 bool) string {
	vals := []uint16{
		a1, a2, cv1, cv2,
		comp.KnobMain(), comp.KnobX(), comp.KnobY(), comp.Switch(),
		levelFor(p1), levelFor(p2),
	}
	line := "("
	for i, v := range vals {
		if i > 0 {
			line += ", "
		}
		line += strconv.Itoa(int(v))
	}
	return line + ")"
}

func levelFor(p bool) uint16 {
	if p {
		return 65535
	}
	return 32768
}
