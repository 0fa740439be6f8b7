// Package report renders calculator results for terminals and scripts.
package report

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"twicalc/twi"
)

// Options controls text rendering.
type Options struct {
	// Color highlights out-of-range rows and notes with terminal styles.
	Color bool
}

var (
	faultStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	titleStyle = lipgloss.NewStyle().Bold(true)
)

type writer struct {
	b    strings.Builder
	opts Options
}

func (w *writer) line(s string, style lipgloss.Style, styled bool) {
	if w.opts.Color && styled {
		s = style.Render(s)
	}
	w.b.WriteString(s)
	w.b.WriteByte('\n')
}

func (w *writer) row(label, value string, bad bool) {
	s := fmt.Sprintf("  %-20s %s", label, value)
	if bad {
		s += "  (out of range)"
	}
	w.line(s, faultStyle, bad)
}

// Render writes the text report for the engine's current form.
func Render(out io.Writer, e *twi.Engine, opts Options) error {
	s := e.Snapshot()
	f := s.Form
	spec := s.Mode
	w := &writer{opts: opts}

	w.line(spec.Label(), titleStyle, true)
	w.row("Max Trise", number(spec.MaxRiseNs)+" ns", false)
	w.row("Max capacitance", number(spec.MaxCapacitancePF)+" pF", false)
	w.line("", lipgloss.Style{}, false)

	w.row("VCC", f.SupplyVoltage+" V", s.Faults.Voltage)
	w.row("Bus capacitance", f.Capacitance+" pF", s.Faults.Capacitance)
	w.row("Bus pull-up", fmt.Sprintf("%s kΩ (>%s kΩ, <%s kΩ)",
		f.Pullup, fixed1(s.MinPullupKOhm), fixed1(s.MaxPullupKOhm)), s.Faults.Pullup)
	w.row("MCU frequency", f.MCUFrequency+" MHz", false)
	w.row("Bus frequency", f.BusFrequency+" kHz", s.Faults.BusFrequency)
	w.line("", lipgloss.Style{}, false)

	w.row("Sink current", milliamps(s.SinkCurrentMA), false)
	w.row("Logic-low threshold", volts(s.LowVoltage), s.Faults.Voltage)
	w.row("Min pull-up", kilohms(s.MinPullupKOhm), false)
	w.row("Max pull-up", kilohms(s.MaxPullupKOhm), false)
	w.line("", lipgloss.Style{}, false)

	w.line("Trise is "+whole(s.RiseTimeNs, math.Trunc)+" ns", lipgloss.Style{}, false)
	w.line("BAUD is "+whole(s.BaudRegister, math.Ceil), lipgloss.Style{}, false)
	for _, note := range Notes(s) {
		w.line(note, faultStyle, true)
	}

	_, err := io.WriteString(out, w.b.String())
	return err
}

// Notes explains each fault in s, one sentence per marked field.
func Notes(s twi.Snapshot) []string {
	spec := s.Mode
	var notes []string
	if s.Faults.Voltage {
		notes = append(notes, fmt.Sprintf("Logic-low threshold is undefined for %s VCC in %s", s.Form.SupplyVoltage, spec.Name))
	}
	if s.Faults.Capacitance {
		notes = append(notes, fmt.Sprintf("Bus capacitance cannot exceed %s pF in %s", number(spec.MaxCapacitancePF), spec.Name))
	}
	if s.Faults.Pullup {
		notes = append(notes, fmt.Sprintf("Pull-up must be between %s kΩ and %s kΩ", fixed1(s.MinPullupKOhm), fixed1(s.MaxPullupKOhm)))
	}
	if s.Faults.BusFrequency {
		notes = append(notes, fmt.Sprintf("Bus frequency cannot exceed %s in %s", twi.FriendlyFrequency(spec.MaxBusHz()), spec.Name))
	}
	if s.Faults.Baud {
		notes = append(notes, fmt.Sprintf("Baud cannot be less than %d in %s", spec.MinBaud, spec.Name))
	}
	return notes
}

// RenderModes writes the bus mode table.
func RenderModes(out io.Writer) error {
	var b strings.Builder
	fmt.Fprintf(&b, "%-3s %-26s %9s %10s %8s %8s\n", "ID", "MODE", "MAX TRISE", "MAX C", "VOL<2V", "MIN BAUD")
	for _, m := range twi.Modes() {
		below := "-"
		if m.LowVoltageBelowTwo != nil {
			below = number(m.LowVoltageAt(1)) + "·VCC"
		}
		fmt.Fprintf(&b, "%-3d %-26s %6s ns %7s pF %8s %8d\n",
			int(m.ID), m.Label(), number(m.MaxRiseNs), number(m.MaxCapacitancePF), below, m.MinBaud)
	}
	_, err := io.WriteString(out, b.String())
	return err
}
