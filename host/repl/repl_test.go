package repl

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	qt "github.com/frankban/quicktest"

	"twicalc/report"
	"twicalc/twi"
)

func newSession() (*Session, *bytes.Buffer) {
	var out bytes.Buffer
	return New(twi.New(), &out, report.Options{}), &out
}

func TestExecSetters(t *testing.T) {
	c := qt.New(t)
	s, out := newSession()

	quit, err := s.Exec("kohm 2.2")
	c.Assert(err, qt.IsNil)
	c.Assert(quit, qt.IsFalse)
	c.Assert(s.Engine().Form().Pullup, qt.Equals, "2.2")
	c.Assert(out.String(), qt.Contains, "BAUD is")

	_, err = s.Exec("set pf 100")
	c.Assert(err, qt.IsNil)
	c.Assert(s.Engine().Form().Capacitance, qt.Equals, "100")

	_, err = s.Exec("set MHZ 16")
	c.Assert(err, qt.IsNil)
	c.Assert(s.Engine().Form().MCUFrequency, qt.Equals, "16")
}

func TestExecQuotedEmptyClearsField(t *testing.T) {
	c := qt.New(t)
	s, out := newSession()

	_, err := s.Exec(`kohm ""`)
	c.Assert(err, qt.IsNil)
	c.Assert(s.Engine().Form().Pullup, qt.Equals, "")
	c.Assert(out.String(), qt.Contains, "Trise is NaN ns")
}

func TestExecMode(t *testing.T) {
	c := qt.New(t)
	s, out := newSession()

	_, err := s.Exec(`mode "fast mode plus"`)
	c.Assert(err, qt.IsNil)
	c.Assert(s.Engine().Form().Mode, qt.Equals, twi.FastPlus)
	c.Assert(s.Engine().Form().BusFrequency, qt.Equals, "1000")
	c.Assert(out.String(), qt.Contains, "Fast Mode Plus (1 MHz)")

	_, err = s.Exec("mode 1")
	c.Assert(err, qt.IsNil)
	c.Assert(s.Engine().Form().Mode, qt.Equals, twi.Fast)

	_, err = s.Exec("mode turbo")
	c.Assert(err, qt.ErrorMatches, `unknown bus mode "turbo"`)
	c.Assert(s.Engine().Form().Mode, qt.Equals, twi.Fast)
}

func TestExecErrors(t *testing.T) {
	c := qt.New(t)
	s, _ := newSession()

	_, err := s.Exec("frobnicate")
	c.Assert(errors.Is(err, ErrUnknownCommand), qt.IsTrue)

	_, err = s.Exec("vcc")
	c.Assert(err, qt.ErrorMatches, "usage: vcc <value>")

	_, err = s.Exec("set colour red")
	c.Assert(err, qt.ErrorMatches, `unknown field "colour"`)

	_, err = s.Exec(`vcc "3.3`)
	c.Assert(err, qt.Not(qt.IsNil))
}

func TestExecViews(t *testing.T) {
	c := qt.New(t)
	s, out := newSession()

	for _, cmd := range []string{"", "show", "json", "modes", "form", "help"} {
		quit, err := s.Exec(cmd)
		c.Assert(err, qt.IsNil, qt.Commentf("command %q", cmd))
		c.Assert(quit, qt.IsFalse)
	}
	text := out.String()
	c.Assert(text, qt.Contains, `"baud": 94`)
	c.Assert(text, qt.Contains, "Fast Mode Plus")
	c.Assert(text, qt.Contains, `kohm "4.7"`)
	c.Assert(text, qt.Contains, "Available commands:")
}

func TestRun(t *testing.T) {
	c := qt.New(t)
	s, out := newSession()

	err := s.Run(strings.NewReader("vcc 3.3\nbogus\nquit\nvcc 1.0\n"))
	c.Assert(err, qt.IsNil)
	c.Assert(s.Engine().Form().SupplyVoltage, qt.Equals, "3.3")
	c.Assert(out.String(), qt.Contains, "Error: unknown command: bogus")
}

func TestRunEndOfInput(t *testing.T) {
	c := qt.New(t)
	s, out := newSession()

	c.Assert(s.Run(strings.NewReader("khz 50")), qt.IsNil)
	c.Assert(s.Engine().Form().BusFrequency, qt.Equals, "50")
	c.Assert(strings.HasSuffix(out.String(), Prompt+"\n"), qt.IsTrue)
}
