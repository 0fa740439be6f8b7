package report

import (
	"encoding/json"
	"io"

	"twicalc/twi"
)

// Number is a float64 that encodes NaN and ±Inf as JSON null.
type Number float64

func (n Number) MarshalJSON() ([]byte, error) {
	if !finite(float64(n)) {
		return []byte("null"), nil
	}
	return json.Marshal(float64(n))
}

// Mode describes a bus mode for machine consumers.
type Mode struct {
	ID                 int     `json:"id"`
	Name               string  `json:"name"`
	Label              string  `json:"label"`
	MaxBusKHz          float64 `json:"max_bus_khz"`
	MaxRiseNs          float64 `json:"max_rise_ns"`
	MaxCapacitancePF   float64 `json:"max_capacitance_pf"`
	MaxLowVoltage      float64 `json:"max_low_voltage"`
	LowVoltageBelowTwo bool    `json:"low_voltage_below_2v"`
	MinBaud            int     `json:"min_baud"`
}

// Form echoes the raw form fields.
type Form struct {
	Mode          int    `json:"mode"`
	SupplyVoltage string `json:"supply_voltage"`
	Capacitance   string `json:"capacitance_pf"`
	Pullup        string `json:"pullup_kohm"`
	MCUFrequency  string `json:"mcu_frequency_mhz"`
	BusFrequency  string `json:"bus_frequency_khz"`
}

// Result is the machine-readable form of a calculation.
type Result struct {
	Mode          Mode       `json:"mode"`
	Form          Form       `json:"form"`
	RiseTimeNs    Number     `json:"rise_time_ns"`
	SinkCurrentMA Number     `json:"sink_current_ma"`
	LowVoltage    Number     `json:"low_voltage"`
	MinPullupKOhm Number     `json:"min_pullup_kohm"`
	MaxPullupKOhm Number     `json:"max_pullup_kohm"`
	BaudValue     Number     `json:"baud_value"`
	Baud          Number     `json:"baud"`
	Faults        twi.Faults `json:"faults"`
	Notes         []string   `json:"notes,omitempty"`
}

// ModeOf converts a bus mode.
func ModeOf(m twi.BusMode) Mode {
	return Mode{
		ID:                 int(m.ID),
		Name:               m.Name,
		Label:              m.Label(),
		MaxBusKHz:          m.MaxBusKHz,
		MaxRiseNs:          m.MaxRiseNs,
		MaxCapacitancePF:   m.MaxCapacitancePF,
		MaxLowVoltage:      m.MaxLowVoltage,
		LowVoltageBelowTwo: m.LowVoltageBelowTwo != nil,
		MinBaud:            m.MinBaud,
	}
}

// Modes converts the whole mode table.
func Modes() []Mode {
	var out []Mode
	for _, m := range twi.Modes() {
		out = append(out, ModeOf(m))
	}
	return out
}

// Build evaluates the engine once into a Result.
func Build(e *twi.Engine) Result {
	s := e.Snapshot()
	return Result{
		Mode: ModeOf(s.Mode),
		Form: Form{
			Mode:          int(s.Form.Mode),
			SupplyVoltage: s.Form.SupplyVoltage,
			Capacitance:   s.Form.Capacitance,
			Pullup:        s.Form.Pullup,
			MCUFrequency:  s.Form.MCUFrequency,
			BusFrequency:  s.Form.BusFrequency,
		},
		RiseTimeNs:    Number(s.RiseTimeNs),
		SinkCurrentMA: Number(s.SinkCurrentMA),
		LowVoltage:    Number(s.LowVoltage),
		MinPullupKOhm: Number(s.MinPullupKOhm),
		MaxPullupKOhm: Number(s.MaxPullupKOhm),
		BaudValue:     Number(s.BaudValue),
		Baud:          Number(s.BaudRegister),
		Faults:        s.Faults,
		Notes:         Notes(s),
	}
}

// RenderJSON writes Build(e) as indented JSON.
func RenderJSON(out io.Writer, e *twi.Engine) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(Build(e))
}

// RenderModesJSON writes the mode table as indented JSON.
func RenderModesJSON(out io.Writer) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(Modes())
}
