package twi

// FormState is the calculator input exactly as the user typed it.
type FormState struct {
	Mode          ModeID
	SupplyVoltage string // V
	Capacitance   string // pF
	Pullup        string // kΩ
	MCUFrequency  string // MHz
	BusFrequency  string // kHz
}

// DefaultForm returns the form a new calculator starts with.
func DefaultForm() FormState {
	return FormState{
		Mode:          Standard,
		SupplyVoltage: "5.0",
		Capacitance:   "40",
		Pullup:        "4.7",
		MCUFrequency:  "20",
		BusFrequency:  "100",
	}
}
