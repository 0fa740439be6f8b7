package twi

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ModeID identifies one of the I2C bus speed modes.
type ModeID int

const (
	Standard ModeID = iota // Standard Mode, 100 kHz
	Fast                   // Fast Mode, 400 kHz
	FastPlus               // Fast Mode Plus, 1 MHz
)

// LowVoltageFunc maps a supply voltage below 2 V to the logic-low threshold.
// A nil LowVoltageFunc means the mode does not define one.
type LowVoltageFunc func(vcc float64) float64

// BusMode holds the limits the I2C specification sets for a bus speed mode.
type BusMode struct {
	ID               ModeID
	Name             string
	MaxBusKHz        float64
	MaxRiseNs        float64
	MaxCapacitancePF float64

	// MaxLowVoltage is the logic-low threshold when the supply is at least 2 V.
	MaxLowVoltage float64

	// LowVoltageBelowTwo gives the threshold below 2 V; nil when undefined.
	LowVoltageBelowTwo LowVoltageFunc

	// MinBaud is the smallest legal baud register value in this mode.
	MinBaud int
}

func fractionOfSupply(vcc float64) float64 { return 0.2 * vcc }

var modes = [...]BusMode{
	{
		ID:               Standard,
		Name:             "Standard Mode",
		MaxBusKHz:        100,
		MaxRiseNs:        1000,
		MaxCapacitancePF: 400,
		MaxLowVoltage:    0.4,
		MinBaud:          1,
	},
	{
		ID:                 Fast,
		Name:               "Fast Mode",
		MaxBusKHz:          400,
		MaxRiseNs:          300,
		MaxCapacitancePF:   400,
		MaxLowVoltage:      0.4,
		LowVoltageBelowTwo: fractionOfSupply,
		MinBaud:            1,
	},
	{
		ID:                 FastPlus,
		Name:               "Fast Mode Plus",
		MaxBusKHz:          1000,
		MaxRiseNs:          120,
		MaxCapacitancePF:   550,
		MaxLowVoltage:      0.4,
		LowVoltageBelowTwo: fractionOfSupply,
		MinBaud:            3,
	},
}

// Modes returns the three bus modes in ID order.
func Modes() []BusMode {
	out := make([]BusMode, len(modes))
	copy(out, modes[:])
	return out
}

// Lookup returns the mode with the given ID.
func Lookup(id ModeID) (BusMode, bool) {
	if id < Standard || int(id) >= len(modes) {
		return BusMode{}, false
	}
	return modes[id], true
}

// LowVoltageAt returns the logic-low threshold for a supply below 2 V,
// or NaN when the mode leaves it undefined.
func (m BusMode) LowVoltageAt(vcc float64) float64 {
	if m.LowVoltageBelowTwo == nil {
		return math.NaN()
	}
	return m.LowVoltageBelowTwo(vcc)
}

// MaxBusHz is MaxBusKHz in hertz.
func (m BusMode) MaxBusHz() float64 {
	return m.MaxBusKHz * 1000
}

// DefaultBusFrequency is the bus-frequency field text selecting the mode
// puts in the form.
func (m BusMode) DefaultBusFrequency() string {
	return strconv.FormatFloat(m.MaxBusKHz, 'f', -1, 64)
}

// Label renders the mode name with its maximum bus clock, e.g. "Fast Mode (400 kHz)".
func (m BusMode) Label() string {
	return m.Name + " (" + FriendlyFrequency(m.MaxBusHz()) + ")"
}

func (id ModeID) String() string {
	if m, ok := Lookup(id); ok {
		return m.Name
	}
	return "ModeID(" + strconv.Itoa(int(id)) + ")"
}

var modeAliases = map[string]ModeID{
	"standard":       Standard,
	"standard-mode":  Standard,
	"sm":             Standard,
	"fast":           Fast,
	"fast-mode":      Fast,
	"fm":             Fast,
	"fast-plus":      FastPlus,
	"fast-mode-plus": FastPlus,
	"fastplus":       FastPlus,
	"fm+":            FastPlus,
	"fmp":            FastPlus,
}

// ParseModeID accepts a numeric ID ("0".."2"), a short alias ("sm", "fm",
// "fm+") or a mode name in any case with spaces or dashes ("Fast Mode Plus").
func ParseModeID(s string) (ModeID, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	if n, err := strconv.Atoi(key); err == nil {
		if _, ok := Lookup(ModeID(n)); ok {
			return ModeID(n), nil
		}
		return 0, fmt.Errorf("unknown bus mode id %d", n)
	}
	key = strings.Join(strings.Fields(strings.ReplaceAll(key, "_", " ")), "-")
	if id, ok := modeAliases[key]; ok {
		return id, nil
	}
	return 0, fmt.Errorf("unknown bus mode %q", s)
}
