// Package repl is an interactive session over a twi.Engine. Each command
// edits one form field, and the report is printed again after every change.
package repl

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/google/shlex"

	"twicalc/report"
	"twicalc/twi"
)

// ErrUnknownCommand is wrapped by Exec for input that names no command or field.
var ErrUnknownCommand = errors.New("unknown command")

// Prompt precedes each line read by Run.
const Prompt = "> "

type setter func(e *twi.Engine, text string)

// fields maps field names and their short forms to the engine setters.
var fields = map[string]setter{
	"vcc":            (*twi.Engine).SetSupplyVoltage,
	"supply_voltage": (*twi.Engine).SetSupplyVoltage,
	"pf":             (*twi.Engine).SetCapacitance,
	"capacitance":    (*twi.Engine).SetCapacitance,
	"kohm":           (*twi.Engine).SetPullup,
	"pullup":         (*twi.Engine).SetPullup,
	"mhz":            (*twi.Engine).SetMCUFrequency,
	"mcu_frequency":  (*twi.Engine).SetMCUFrequency,
	"khz":            (*twi.Engine).SetBusFrequency,
	"bus_frequency":  (*twi.Engine).SetBusFrequency,
}

// Session holds the engine being edited and where output goes.
type Session struct {
	eng  *twi.Engine
	out  io.Writer
	opts report.Options
}

// New returns a session editing eng.
func New(eng *twi.Engine, out io.Writer, opts report.Options) *Session {
	return &Session{eng: eng, out: out, opts: opts}
}

// Engine returns the engine being edited.
func (s *Session) Engine() *twi.Engine { return s.eng }

// Run reads commands from in until quit or end of input. Command errors are
// printed and the session goes on.
func (s *Session) Run(in io.Reader) error {
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(s.out, Prompt)
		if !scanner.Scan() {
			fmt.Fprintln(s.out)
			break
		}
		quit, err := s.Exec(scanner.Text())
		if err != nil {
			fmt.Fprintf(s.out, "Error: %v\n", err)
		}
		if quit {
			return nil
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading input: %w", err)
	}
	return nil
}

// Exec runs one command line.
func (s *Session) Exec(line string) (quit bool, err error) {
	args, err := shlex.Split(line)
	if err != nil {
		return false, err
	}
	if len(args) == 0 {
		return false, nil
	}

	cmd, args := strings.ToLower(args[0]), args[1:]
	switch cmd {
	case "quit", "exit", "q":
		return true, nil

	case "help", "?":
		s.help()
		return false, nil

	case "show":
		return false, report.Render(s.out, s.eng, s.opts)

	case "json":
		return false, report.RenderJSON(s.out, s.eng)

	case "modes":
		return false, report.RenderModes(s.out)

	case "form":
		s.form()
		return false, nil

	case "mode":
		if len(args) != 1 {
			return false, errors.New("usage: mode <name|id>")
		}
		id, err := twi.ParseModeID(args[0])
		if err != nil {
			return false, err
		}
		s.eng.SetMode(id)
		return false, report.Render(s.out, s.eng, s.opts)

	case "set":
		if len(args) != 2 {
			return false, errors.New("usage: set <field> <value>")
		}
		return false, s.set(strings.ToLower(args[0]), args[1])
	}

	if _, ok := fields[cmd]; ok {
		if len(args) != 1 {
			return false, fmt.Errorf("usage: %s <value>", cmd)
		}
		return false, s.set(cmd, args[0])
	}
	return false, fmt.Errorf("%w: %s (type 'help' for available commands)", ErrUnknownCommand, cmd)
}

func (s *Session) set(field, text string) error {
	fn, ok := fields[field]
	if !ok {
		return fmt.Errorf("unknown field %q", field)
	}
	fn(s.eng, text)
	return report.Render(s.out, s.eng, s.opts)
}

func (s *Session) form() {
	f := s.eng.Form()
	fmt.Fprintf(s.out, "mode %s\n", f.Mode)
	fmt.Fprintf(s.out, "vcc  %q\n", f.SupplyVoltage)
	fmt.Fprintf(s.out, "pf   %q\n", f.Capacitance)
	fmt.Fprintf(s.out, "kohm %q\n", f.Pullup)
	fmt.Fprintf(s.out, "mhz  %q\n", f.MCUFrequency)
	fmt.Fprintf(s.out, "khz  %q\n", f.BusFrequency)
}

func (s *Session) help() {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Fprintln(s.out, "Available commands:")
	fmt.Fprintln(s.out, "  mode <name|id>      - Select bus mode (resets bus frequency)")
	fmt.Fprintln(s.out, "  vcc <volts>         - Supply voltage")
	fmt.Fprintln(s.out, "  pf <picofarads>     - Bus capacitance")
	fmt.Fprintln(s.out, "  kohm <kilohms>      - Pull-up resistance")
	fmt.Fprintln(s.out, "  mhz <megahertz>     - MCU clock")
	fmt.Fprintln(s.out, "  khz <kilohertz>     - Bus frequency")
	fmt.Fprintln(s.out, "  set <field> <value> - Set any field by name")
	fmt.Fprintln(s.out, "  show                - Print the report")
	fmt.Fprintln(s.out, "  json                - Print the report as JSON")
	fmt.Fprintln(s.out, "  form                - Print the raw form fields")
	fmt.Fprintln(s.out, "  modes               - List bus modes")
	fmt.Fprintln(s.out, "  quit/exit/q         - Leave")
	fmt.Fprintf(s.out, "Fields: %s\n", strings.Join(names, ", "))
}
