package twi

import "math"

// RiseFactor relates the pull-up RC time constant to the 30%-70% rise time
// the I2C specification bounds (ln(0.7/0.3) ≈ 0.8473).
const RiseFactor = 0.8473

// Sink current a bus driver must handle, in mA.
const (
	sinkMA       = 3
	sinkLowVccMA = 2
)

// lowSupplyVolts is where the I2C specification switches to the reduced sink
// current and, for Fast Mode and above, the relative logic-low threshold.
const lowSupplyVolts = 2

// overheadCycles is the fixed number of MCU cycles the TWI clock generator
// adds to each bus period.
const overheadCycles = 10

// Engine derives bus parameters from a FormState. The zero value is not
// usable; create one with New or NewWithForm.
type Engine struct {
	form FormState
}

// New returns an engine holding DefaultForm.
func New() *Engine {
	return NewWithForm(DefaultForm())
}

// NewWithForm returns an engine holding f. An unknown mode falls back to Standard.
func NewWithForm(f FormState) *Engine {
	if _, ok := Lookup(f.Mode); !ok {
		f.Mode = Standard
	}
	return &Engine{form: f}
}

// Form returns a copy of the current form.
func (e *Engine) Form() FormState { return e.form }

// SetMode selects a bus mode and resets the bus frequency to the mode's
// maximum. Unknown IDs are ignored.
func (e *Engine) SetMode(id ModeID) {
	m, ok := Lookup(id)
	if !ok {
		return
	}
	e.form.Mode = id
	e.form.BusFrequency = m.DefaultBusFrequency()
}

// SetSupplyVoltage stores the VCC field text, in volts.
func (e *Engine) SetSupplyVoltage(text string) { e.form.SupplyVoltage = text }

// SetCapacitance stores the bus capacitance field text, in pF.
func (e *Engine) SetCapacitance(text string) { e.form.Capacitance = text }

// SetPullup stores the pull-up resistor field text, in kΩ.
func (e *Engine) SetPullup(text string) { e.form.Pullup = text }

// SetMCUFrequency stores the MCU clock field text, in MHz.
func (e *Engine) SetMCUFrequency(text string) { e.form.MCUFrequency = text }

// SetBusFrequency stores the bus frequency field text, in kHz.
func (e *Engine) SetBusFrequency(text string) { e.form.BusFrequency = text }

// ActiveSpec returns the selected bus mode.
func (e *Engine) ActiveSpec() BusMode {
	m, _ := Lookup(e.form.Mode)
	return m
}

// SupplyVoltage is the VCC field read with ParseNumber.
func (e *Engine) SupplyVoltage() float64 { return ParseNumber(e.form.SupplyVoltage) }

// CapacitancePF is the bus capacitance field read with ParseNumber.
func (e *Engine) CapacitancePF() float64 { return ParseNumber(e.form.Capacitance) }

// PullupKOhm is the pull-up field read with ParseNumber.
func (e *Engine) PullupKOhm() float64 { return ParseNumber(e.form.Pullup) }

// MCUFrequencyMHz is the MCU clock field read with ParseNumber.
func (e *Engine) MCUFrequencyMHz() float64 { return ParseNumber(e.form.MCUFrequency) }

// BusFrequencyKHz is the bus frequency field read with ParseNumber.
func (e *Engine) BusFrequencyKHz() float64 { return ParseNumber(e.form.BusFrequency) }

// BusRateHz is the bus frequency in Hz for programming a bus clock. ok is
// false unless the field gives a positive rate that fits in a uint32.
func (e *Engine) BusRateHz() (hz uint32, ok bool) {
	rate := e.BusFrequencyKHz() * 1000
	if math.IsNaN(rate) || rate < 1 || rate > math.MaxUint32 {
		return 0, false
	}
	return uint32(rate), true
}

// RiseTimeNs is the expected bus rise time for the entered pull-up and
// capacitance (kΩ × pF gives ns).
func (e *Engine) RiseTimeNs() float64 {
	return RiseFactor * e.PullupKOhm() * e.CapacitancePF()
}

// SinkCurrentMA is the current a bus driver must be able to sink at the
// entered supply voltage.
func (e *Engine) SinkCurrentMA() float64 {
	if e.SupplyVoltage() >= lowSupplyVolts {
		return sinkMA
	}
	return sinkLowVccMA
}

// LowVoltageThreshold is the highest voltage still read as logic low. It is
// NaN when the supply does not parse or the mode has no value below 2 V.
func (e *Engine) LowVoltageThreshold() float64 {
	vcc := e.SupplyVoltage()
	spec := e.ActiveSpec()
	if vcc >= lowSupplyVolts {
		return spec.MaxLowVoltage
	}
	return spec.LowVoltageAt(vcc)
}

// MinPullupKOhm is the smallest pull-up that still lets a driver pull the
// bus below the logic-low threshold.
func (e *Engine) MinPullupKOhm() float64 {
	return (e.SupplyVoltage() - e.LowVoltageThreshold()) / e.SinkCurrentMA()
}

// MaxPullupKOhm is the largest pull-up that keeps the rise time within the
// mode's limit for the entered capacitance.
func (e *Engine) MaxPullupKOhm() float64 {
	return e.ActiveSpec().MaxRiseNs / (RiseFactor * e.CapacitancePF())
}

// BaudValue is the unrounded baud register value: MCU cycles per bus period,
// less the cycles spent rising and the fixed generator overhead, split over
// the two half periods.
func (e *Engine) BaudValue() float64 {
	rise := e.RiseTimeNs() / 1e9
	mcuHz := e.MCUFrequencyMHz() * 1e6
	busHz := e.BusFrequencyKHz() * 1e3
	return (mcuHz - busHz*mcuHz*rise - busHz*overheadCycles) / (busHz * 2)
}

// BaudRegister is BaudValue rounded up, the value to program. It is NaN
// whenever BaudValue is.
func (e *Engine) BaudRegister() float64 {
	return math.Ceil(e.BaudValue())
}
