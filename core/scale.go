// Value scaling between the logical 16-bit domain and the physical output
// and input domains (12-bit DAC codes, 16-bit PWM duty cycles, LED drive).
package core

// Rough calibration anchors from one device. Kept for reference; the
// scaling below uses the direct formulas. CVZeroPoint doubles as the
// bring-up duty for the CV PWM outputs.
// NB MCP4822 wrongly configured - -5 to +5V, was supposed to be +-6.
const (
	CVZeroPoint = 2085 * 16 // 0V (PWM duty cycle is 16-bit)
	CVLowPoint  = 100 * 16  // -6V
	CVHighPoint = 4065 * 16 // +6V

	DACZeroPoint = 1657 // 0V
	DACLowPoint  = 3031 // -5V
	DACHighPoint = 281  // +5V
)

// AudioToDACCode maps a logical 16-bit sample onto the inverted 12-bit DAC
// range. 16 logical units share one DAC code, so the low 4 bits are lost.
func AudioToDACCode(v uint16) uint16 {
	return 4095 - v/16
}

// CVToDuty maps a logical CV value onto the inverted PWM duty cycle.
// Exact inversion: DutyToCV(CVToDuty(v)) == v for all v.
func CVToDuty(v uint16) uint16 {
	return 65535 - v
}

// DutyToCV recovers the logical CV value from a PWM duty cycle.
func DutyToCV(d uint16) uint16 {
	return 65535 - d
}

// InvertInput corrects the polarity of the inverting input buffers in
// front of the ADC.
func InvertInput(raw uint16) uint16 {
	return 65535 - raw
}

// RectScale rectifies a bipolar-centered value (center 32768) for LED
// drive: only the positive half lights, doubled back toward full scale.
// Maximum output is 65534.
func RectScale(raw uint16) uint16 {
	if raw > 32768 {
		return (raw - 32768) * 2
	}
	return 0
}

// GammaCorrect is simple and dumb LED brightness gamma-correction.
// Fixed points at 0 and 65535, monotonic non-decreasing in between.
func GammaCorrect(x uint16) uint16 {
	// x*x needs 32 bits (65535^2 ~ 4.29e9).
	return uint16(uint32(x) * uint32(x) / 65535)
}
