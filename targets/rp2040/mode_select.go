//go:build rp2040

package main

import (
	"machine"

	"twicalc/twi"
)

// modeSelector cycles the bus mode on each press of the mode button.
type modeSelector struct {
	pin     machine.Pin
	pressed bool
}

func newModeSelector(pin machine.Pin) *modeSelector {
	pin.Configure(machine.PinConfig{Mode: machine.PinInputPullup})
	return &modeSelector{pin: pin}
}

// poll advances eng to the next mode on a button press. The button pulls
// the pin low.
func (s *modeSelector) poll(eng *twi.Engine) bool {
	down := !s.pin.Get()
	edge := down && !s.pressed
	s.pressed = down
	if !edge {
		return false
	}
	next := eng.Form().Mode + 1
	if _, ok := twi.Lookup(next); !ok {
		next = twi.Standard
	}
	eng.SetMode(next)
	return true
}
