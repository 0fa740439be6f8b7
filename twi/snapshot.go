package twi

// Snapshot captures the form and every derived value at one instant.
type Snapshot struct {
	Form          FormState
	Mode          BusMode
	RiseTimeNs    float64
	SinkCurrentMA float64
	LowVoltage    float64
	MinPullupKOhm float64
	MaxPullupKOhm float64
	BaudValue     float64
	BaudRegister  float64
	Faults        Faults
}

// Snapshot evaluates all derived values once.
func (e *Engine) Snapshot() Snapshot {
	return Snapshot{
		Form:          e.Form(),
		Mode:          e.ActiveSpec(),
		RiseTimeNs:    e.RiseTimeNs(),
		SinkCurrentMA: e.SinkCurrentMA(),
		LowVoltage:    e.LowVoltageThreshold(),
		MinPullupKOhm: e.MinPullupKOhm(),
		MaxPullupKOhm: e.MaxPullupKOhm(),
		BaudValue:     e.BaudValue(),
		BaudRegister:  e.BaudRegister(),
		Faults:        e.Faults(),
	}
}
