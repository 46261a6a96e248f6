// Active-low pulse line adapters.
// The pulse jacks are wired through inverting transistor stages: the
// physical lines idle high and a logical true drives them low. Input
// lines sit behind pull-ups, so an unpatched jack reads logical false.
package core

// PulseInput exposes an active-low physical line as an active-high
// logical boolean.
type PulseInput struct {
	digital DigitalDriver
	pin     GPIOPin
}

func NewPulseInput(digital DigitalDriver, pin GPIOPin) *PulseInput {
	return &PulseInput{digital: digital, pin: pin}
}

func (p *PulseInput) Configure() error {
	return p.digital.ConfigureInputPullUp(p.pin)
}

// Get returns true when the physical line is low.
func (p *PulseInput) Get() (bool, error) {
	v, err := p.digital.GetPin(p.pin)
	if err != nil {
		return false, err
	}
	return !v, nil
}

// PulseOutput drives an active-low physical line from an active-high
// logical boolean. Last-written logical state is tracked by the facade,
// not here.
type PulseOutput struct {
	digital DigitalDriver
	pin     GPIOPin
}

func NewPulseOutput(digital DigitalDriver, pin GPIOPin) *PulseOutput {
	return &PulseOutput{digital: digital, pin: pin}
}

// Configure sets the line up as an output in the idle (physical high,
// logical inactive) state.
func (p *PulseOutput) Configure() error {
	if err := p.digital.ConfigureOutput(p.pin); err != nil {
		return err
	}
	return p.digital.SetPin(p.pin, true)
}

// Set drives the physical line low for logical true.
func (p *PulseOutput) Set(value bool) error {
	return p.digital.SetPin(p.pin, !value)
}

// Pin returns the physical pin, used when the line is handed off to an
// audio renderer.
func (p *PulseOutput) Pin() GPIOPin {
	return p.pin
}
