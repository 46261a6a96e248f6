// sim runs the conditioning layer against the mock hardware drivers so
// the demo loop can be exercised on a development machine. Synthetic
// knob/CV/audio signals are fed into the mock ADC; with -audio the pulse
// outputs are converted and a test tone plays through the sound device.
package main

import (
	"flag"
	"log"
	"math"
	"time"

	"github.com/vincent-maurer/Workshop-Computer/core"
	"github.com/vincent-maurer/Workshop-Computer/sim"
)

func main() {
	var (
		iterations = flag.Int("n", 400, "loop iterations (0 = run until interrupted)")
		interval   = flag.Duration("interval", 5*time.Millisecond, "loop interval")
		withAudio  = flag.Bool("audio", false, "convert the pulse outs and play a test tone")
	)
	flag.Parse()

	core.SetDebugWriter(func(s string) { log.Println(s) })

	dig := core.NewMockDigital()
	adc := core.NewMockADC()
	pwm := core.NewMockPWM()
	spi := &core.MockSPI{}

	hw := core.Hardware{Digital: dig, ADC: adc, PWM: pwm, SPI: spi}
	if *withAudio {
		hw.Audio = sim.NewOtoRenderer()
	}

	cfg := core.DefaultConfig()
	comp, err := core.New(cfg, hw)
	if err != nil {
		log.Fatalf("bring-up: %v", err)
	}

	if *withAudio {
		mix, err := comp.ConvertPulsesToAudio(core.AudioConfig{})
		if err != nil {
			log.Fatalf("pulse-to-audio: %v", err)
		}
		if err := mix.Play(0, sine(440, mix.SampleRate(), mix.Channels()), true); err != nil {
			log.Fatalf("play: %v", err)
		}
		log.Println("pulse outs retired; playing 440 Hz on voice 0")
	}

	lastLog := time.Now()
	for i := 0; *iterations == 0 || i < *iterations; i++ {
		t := float64(i) * interval.Seconds()

		// Knobs sweep slowly, CV wobbles, audio carries a fast sine;
		// the switch is held up so the demo mirrors inputs.
		adc.Feed(cfg.Pins.Mux1ADC, core.ADCValue(60000))
		adc.Feed(cfg.Pins.Mux2ADC, bipolar(math.Sin(2*math.Pi*0.5*t)))
		adc.Feed(cfg.Pins.Audio1ADC, bipolar(math.Sin(2*math.Pi*50*t)))
		adc.Feed(cfg.Pins.Audio2ADC, bipolar(math.Cos(2*math.Pi*50*t)))
		dig.Drive(cfg.Pins.PulseIn1, math.Mod(t, 1) > 0.5)

		if err := comp.Update(); err != nil {
			log.Fatalf("update: %v", err)
		}

		a1, _ := comp.AudioIn1()
		comp.SetAudioOut1(a1)
		comp.SetCVOut1(comp.CVIn1())
		p1, _ := comp.PulseIn1()
		if !*withAudio {
			comp.SetPulseOut1(p1)
		}
		comp.SetLED(0, core.RectScale(a1))

		if time.Since(lastLog) >= 100*time.Millisecond {
			lastLog = time.Now()
			log.Printf("(%d, %d, %d, %d, %d, %v) cv1 duty=%d dac frames=%d",
				a1, comp.CVIn1(), comp.KnobMain(), comp.KnobX(), comp.Switch(), p1,
				pwm.Duty(cfg.Pins.CV1PWM), len(spi.Frames))
		}
		time.Sleep(*interval)
	}
}

// bipolar maps [-1, 1] onto the 16-bit ADC range.
func bipolar(x float64) core.ADCValue {
	return core.ADCValue(32768 + x*32767)
}

// sine renders one second of a test tone as interleaved frames.
func sine(freq float64, sampleRate, channels int) []int16 {
	frames := make([]int16, sampleRate*channels)
	for f := 0; f < sampleRate; f++ {
		s := int16(10000 * math.Sin(2*math.Pi*freq*float64(f)/float64(sampleRate)))
		for ch := 0; ch < channels; ch++ {
			frames[f*channels+ch] = s
		}
	}
	return frames
}
