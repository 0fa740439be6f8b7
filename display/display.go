// Package display renders a compact calculator readout on small
// monochrome panels such as the SSD1306.
package display

import (
	"fmt"
	"image/color"
	"math"
	"strconv"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"

	"twicalc/twi"
)

// LineHeight is the pixel pitch of the proggy TinySZ font.
const LineHeight = 10

var (
	white = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	black = color.RGBA{A: 255}
)

// Lines returns the readout: mode, rise time, pull-up window, BAUD and a
// status line. The font has no Ω, so resistances read "k".
func Lines(e *twi.Engine) []string {
	s := e.Snapshot()
	status := "OK"
	if s.Faults.Any() {
		status = "! " + faultList(s.Faults)
	}
	return []string{
		s.Mode.Label(),
		fmt.Sprintf("Trise %s ns", whole(s.RiseTimeNs)),
		fmt.Sprintf("R %.1fk-%.1fk", s.MinPullupKOhm, s.MaxPullupKOhm),
		fmt.Sprintf("BAUD %s", whole(s.BaudRegister)),
		status,
	}
}

func faultList(f twi.Faults) string {
	var out string
	add := func(set bool, name string) {
		if !set {
			return
		}
		if out != "" {
			out += " "
		}
		out += name
	}
	add(f.Voltage, "VCC")
	add(f.Capacitance, "C")
	add(f.Pullup, "R")
	add(f.BusFrequency, "F")
	add(f.Baud, "BAUD")
	return out
}

func whole(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "--"
	}
	if v = math.Trunc(v); v == 0 {
		return "0"
	}
	return strconv.FormatFloat(v, 'f', 0, 64)
}

// Draw clears d, writes Lines(e) from the top-left corner and pushes the
// frame to the panel.
func Draw(d drivers.Displayer, e *twi.Engine) error {
	blank(d)
	for i, line := range Lines(e) {
		tinyfont.WriteLine(d, &proggy.TinySZ8pt7b, 0, int16((i+1)*LineHeight)-2, line, white)
	}
	return d.Display()
}

func blank(d drivers.Displayer) {
	w, h := d.Size()
	for y := int16(0); y < h; y++ {
		for x := int16(0); x < w; x++ {
			d.SetPixel(x, y, black)
		}
	}
}
