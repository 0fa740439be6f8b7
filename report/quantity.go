package report

import (
	"math"
	"strconv"

	"periph.io/x/conn/v3/physic"
)

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// volts formats a voltage with periph's SI rendering, e.g. "400mV".
func volts(v float64) string {
	if !finite(v) {
		return "undefined"
	}
	if !fitsNano(v, float64(physic.Volt)) {
		return beyondRange(v, "V")
	}
	return physic.ElectricPotential(math.Round(v * float64(physic.Volt))).String()
}

// milliamps formats a current given in mA, e.g. "3mA".
func milliamps(ma float64) string {
	if !finite(ma) {
		return "undefined"
	}
	if !fitsNano(ma, float64(physic.MilliAmpere)) {
		return beyondRange(ma, "mA")
	}
	return physic.ElectricCurrent(math.Round(ma * float64(physic.MilliAmpere))).String()
}

// kilohms formats a resistance given in kΩ, e.g. "1.533kΩ".
func kilohms(k float64) string {
	if !finite(k) {
		return "undefined"
	}
	if !fitsNano(k, float64(physic.KiloOhm)) {
		return beyondRange(k, "kΩ")
	}
	return physic.ElectricResistance(math.Round(k * float64(physic.KiloOhm))).String()
}

// fitsNano reports whether v units fit periph's int64 nano-unit quantities.
func fitsNano(v, unit float64) bool {
	return math.Abs(v*unit) < math.MaxInt64
}

func beyondRange(v float64, suffix string) string {
	return strconv.FormatFloat(v, 'g', 4, 64) + suffix
}

// fixed1 mirrors JavaScript's toFixed(1).
func fixed1(v float64) string {
	if !finite(v) {
		return jsNumber(v)
	}
	return strconv.FormatFloat(v, 'f', 1, 64)
}

// whole renders v after rounding with round the way a browser prints a
// number: plain digits below 1e21, exponent form above, NaN/Infinity words.
func whole(v float64, round func(float64) float64) string {
	v = round(v)
	switch {
	case !finite(v) || math.Abs(v) >= 1e21:
		return jsNumber(v)
	case v == 0:
		return "0" // no "-0"
	}
	return strconv.FormatFloat(v, 'f', 0, 64)
}

func jsNumber(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// number formats a limit from the mode table without trailing zeros.
func number(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
