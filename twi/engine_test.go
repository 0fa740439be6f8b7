package twi

import (
	"math"
	"testing"

	qt "github.com/frankban/quicktest"
)

func assertNear(c *qt.C, got, want float64) {
	c.Helper()
	c.Assert(math.Abs(got-want) < 1e-4, qt.IsTrue, qt.Commentf("got %v, want %v", got, want))
}

func TestDefaults(t *testing.T) {
	c := qt.New(t)
	e := New()

	c.Assert(e.Form(), qt.Equals, DefaultForm())
	c.Assert(e.ActiveSpec().ID, qt.Equals, Standard)
	assertNear(c, e.RiseTimeNs(), 159.2924)
	assertNear(c, e.SinkCurrentMA(), 3)
	assertNear(c, e.LowVoltageThreshold(), 0.4)
	assertNear(c, e.MinPullupKOhm(), 1.533333)
	assertNear(c, e.MaxPullupKOhm(), 29.505488)
	assertNear(c, e.BaudValue(), 93.407076)
	c.Assert(e.BaudRegister(), qt.Equals, 94.0)
	c.Assert(e.Faults(), qt.Equals, Faults{})
}

func TestRiseTimeFastMode(t *testing.T) {
	c := qt.New(t)
	e := New()
	e.SetMode(Fast)
	e.SetSupplyVoltage("5.0")
	e.SetCapacitance("40")
	e.SetPullup("4.7")

	assertNear(c, e.RiseTimeNs(), 159.2924)
	assertNear(c, e.BaudValue(), 18.407076)
	c.Assert(e.BaudRegister(), qt.Equals, 19.0)
}

func TestSinkCurrent(t *testing.T) {
	c := qt.New(t)
	e := New()

	for _, tc := range []struct {
		vcc  string
		want float64
	}{
		{"5", 3},
		{"2", 3},
		{"2.0", 3},
		{"1.99", 2},
		{"0", 2},
		{"", 2},
		{"abc", 2},
	} {
		e.SetSupplyVoltage(tc.vcc)
		c.Check(e.SinkCurrentMA(), qt.Equals, tc.want, qt.Commentf("vcc=%q", tc.vcc))
	}
}

func TestLowVoltageThreshold(t *testing.T) {
	c := qt.New(t)
	e := New()

	e.SetSupplyVoltage("1.8")
	c.Assert(math.IsNaN(e.LowVoltageThreshold()), qt.IsTrue)
	c.Assert(math.IsNaN(e.MinPullupKOhm()), qt.IsTrue)

	e.SetMode(Fast)
	assertNear(c, e.LowVoltageThreshold(), 0.36)
	assertNear(c, e.MinPullupKOhm(), (1.8-0.36)/2)

	e.SetMode(FastPlus)
	e.SetSupplyVoltage("1.5")
	assertNear(c, e.LowVoltageThreshold(), 0.3)

	e.SetMode(Standard)
	e.SetSupplyVoltage("3.3")
	assertNear(c, e.LowVoltageThreshold(), 0.4)

	e.SetSupplyVoltage("not a number")
	for _, id := range []ModeID{Standard, Fast, FastPlus} {
		e.SetMode(id)
		c.Check(math.IsNaN(e.LowVoltageThreshold()), qt.IsTrue, qt.Commentf("mode %v", id))
	}
}

func TestMaxPullupFastPlus(t *testing.T) {
	c := qt.New(t)
	e := New()
	e.SetMode(FastPlus)
	e.SetCapacitance("40")

	assertNear(c, e.MaxPullupKOhm(), 3.540659)
}

func TestSetModeResetsBusFrequency(t *testing.T) {
	c := qt.New(t)
	e := New()

	e.SetBusFrequency("250")
	e.SetMode(Fast)
	c.Assert(e.Form().BusFrequency, qt.Equals, "400")

	e.SetBusFrequency("999")
	e.SetMode(Fast)
	c.Assert(e.Form().BusFrequency, qt.Equals, "400")
	e.SetMode(Fast)
	c.Assert(e.Form().BusFrequency, qt.Equals, "400")

	e.SetMode(FastPlus)
	c.Assert(e.Form().BusFrequency, qt.Equals, "1000")
	e.SetMode(Standard)
	c.Assert(e.Form().BusFrequency, qt.Equals, "100")
}

func TestSetModeUnknownIgnored(t *testing.T) {
	c := qt.New(t)
	e := New()
	e.SetMode(Fast)
	e.SetBusFrequency("123")

	e.SetMode(ModeID(7))
	e.SetMode(ModeID(-1))
	c.Assert(e.Form().Mode, qt.Equals, Fast)
	c.Assert(e.Form().BusFrequency, qt.Equals, "123")
}

func TestNewWithFormUnknownMode(t *testing.T) {
	c := qt.New(t)
	f := DefaultForm()
	f.Mode = ModeID(42)

	e := NewWithForm(f)
	c.Assert(e.ActiveSpec().ID, qt.Equals, Standard)
	c.Assert(e.Form().BusFrequency, qt.Equals, "100")
}

func TestSettersStoreTextVerbatim(t *testing.T) {
	c := qt.New(t)
	e := New()
	e.SetSupplyVoltage(" 3.3 ")
	e.SetCapacitance("4.")
	e.SetPullup("")
	e.SetMCUFrequency("abc")
	e.SetBusFrequency("1e2")

	c.Assert(e.Form(), qt.Equals, FormState{
		Mode:          Standard,
		SupplyVoltage: " 3.3 ",
		Capacitance:   "4.",
		Pullup:        "",
		MCUFrequency:  "abc",
		BusFrequency:  "1e2",
	})
}

func TestUnparseableInputsYieldNaN(t *testing.T) {
	c := qt.New(t)
	e := New()

	e.SetPullup("")
	c.Assert(math.IsNaN(e.RiseTimeNs()), qt.IsTrue)
	c.Assert(math.IsNaN(e.BaudValue()), qt.IsTrue)
	c.Assert(math.IsNaN(e.BaudRegister()), qt.IsTrue)

	e = New()
	e.SetCapacitance("x")
	c.Assert(math.IsNaN(e.RiseTimeNs()), qt.IsTrue)
	c.Assert(math.IsNaN(e.MaxPullupKOhm()), qt.IsTrue)

	e = New()
	e.SetMCUFrequency(".")
	c.Assert(math.IsNaN(e.BaudValue()), qt.IsTrue)
}

func TestDerivationsAreDeterministic(t *testing.T) {
	c := qt.New(t)
	e := New()
	e.SetMode(Fast)
	e.SetSupplyVoltage("3.3")
	e.SetCapacitance("120")
	e.SetPullup("2.2")

	a, b := e.Snapshot(), e.Snapshot()
	c.Assert(a.Form, qt.Equals, b.Form)
	c.Assert(a.RiseTimeNs, qt.Equals, b.RiseTimeNs)
	c.Assert(a.MinPullupKOhm, qt.Equals, b.MinPullupKOhm)
	c.Assert(a.MaxPullupKOhm, qt.Equals, b.MaxPullupKOhm)
	c.Assert(a.BaudValue, qt.Equals, b.BaudValue)
	c.Assert(a.Faults, qt.Equals, b.Faults)
	c.Assert(e.BaudValue(), qt.Equals, a.BaudValue)
}

func TestSnapshotMatchesMethods(t *testing.T) {
	c := qt.New(t)
	e := New()
	s := e.Snapshot()

	c.Assert(s.Mode.Name, qt.Equals, "Standard Mode")
	c.Assert(s.RiseTimeNs, qt.Equals, e.RiseTimeNs())
	c.Assert(s.SinkCurrentMA, qt.Equals, e.SinkCurrentMA())
	c.Assert(s.LowVoltage, qt.Equals, e.LowVoltageThreshold())
	c.Assert(s.BaudRegister, qt.Equals, 94.0)
}

func TestBusRateHz(t *testing.T) {
	c := qt.New(t)
	e := New()

	hz, ok := e.BusRateHz()
	c.Assert(ok, qt.IsTrue)
	c.Assert(hz, qt.Equals, uint32(100000))

	e.SetBusFrequency("400.5")
	hz, ok = e.BusRateHz()
	c.Assert(ok, qt.IsTrue)
	c.Assert(hz, qt.Equals, uint32(400500))

	for _, text := range []string{"", "abc", "0", "-100", "0.0001", "5e6", "Infinity"} {
		e.SetBusFrequency(text)
		_, ok := e.BusRateHz()
		c.Check(ok, qt.IsFalse, qt.Commentf("bus frequency %q", text))
	}
}
