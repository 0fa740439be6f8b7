package twi

import (
	"math"

	"twicalc/x/mathx"
)

// Faults marks the form fields whose values violate the active mode's
// limits. Fields are read whole for these checks, so empty text counts as 0
// and text with trailing characters is never marked. The supply voltage is
// marked whenever no logic-low threshold can be derived.
type Faults struct {
	Voltage      bool `json:"voltage"`
	Capacitance  bool `json:"capacitance"`
	Pullup       bool `json:"pullup"`
	BusFrequency bool `json:"bus_frequency"`
	Baud         bool `json:"baud"`
}

// Any reports whether any field is marked.
func (f Faults) Any() bool {
	return f.Voltage || f.Capacitance || f.Pullup || f.BusFrequency || f.Baud
}

// VoltageInvalid reports that no logic-low threshold exists for the supply.
func (e *Engine) VoltageInvalid() bool {
	return math.IsNaN(e.LowVoltageThreshold())
}

// CapacitanceInvalid reports a bus capacitance above the mode's limit.
func (e *Engine) CapacitanceInvalid() bool {
	return mathx.Exceeds(coerceNumber(e.form.Capacitance), e.ActiveSpec().MaxCapacitancePF)
}

// PullupInvalid reports a pull-up outside the open window (MinPullupKOhm, MaxPullupKOhm).
func (e *Engine) PullupInvalid() bool {
	return mathx.Outside(coerceNumber(e.form.Pullup), e.MinPullupKOhm(), e.MaxPullupKOhm())
}

// BusFrequencyInvalid reports a bus frequency above the mode's limit.
func (e *Engine) BusFrequencyInvalid() bool {
	return mathx.Exceeds(coerceNumber(e.form.BusFrequency), e.ActiveSpec().MaxBusKHz)
}

// BaudInvalid reports a BAUD register below the mode's minimum.
func (e *Engine) BaudInvalid() bool {
	return mathx.Below(e.BaudRegister(), float64(e.ActiveSpec().MinBaud))
}

// Faults evaluates every validity check against the current form.
func (e *Engine) Faults() Faults {
	return Faults{
		Voltage:      e.VoltageInvalid(),
		Capacitance:  e.CapacitanceInvalid(),
		Pullup:       e.PullupInvalid(),
		BusFrequency: e.BusFrequencyInvalid(),
		Baud:         e.BaudInvalid(),
	}
}
