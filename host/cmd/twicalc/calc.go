package main

import (
	"errors"
	"flag"
	"fmt"
	"io"

	"twicalc/config"
	"twicalc/host/repl"
	"twicalc/report"
	"twicalc/twi"
)

// errFaults is returned by calc -check when a field is out of range.
var errFaults = errors.New("bus parameters out of range")

// formFlags are the form fields every calculating command accepts.
type formFlags struct {
	configPath string
	mode       string
	vcc        string
	pf         string
	kohm       string
	mhz        string
	khz        string
}

func (f *formFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&f.configPath, "config", "", "JSON preset file")
	fs.StringVar(&f.mode, "mode", "", "bus mode: sm, fm, fm+ or 0..2")
	fs.StringVar(&f.vcc, "vcc", "", "supply voltage (V)")
	fs.StringVar(&f.pf, "pf", "", "bus capacitance (pF)")
	fs.StringVar(&f.kohm, "kohm", "", "pull-up resistance (kΩ)")
	fs.StringVar(&f.mhz, "mhz", "", "MCU clock (MHz)")
	fs.StringVar(&f.khz, "khz", "", "bus frequency (kHz)")
}

// load builds the preset and an engine from it, with any flag the user set
// overriding the preset. Selecting a mode resets the bus frequency unless
// -khz is also given.
func (f *formFlags) load(fs *flag.FlagSet) (*config.Config, *twi.Engine, error) {
	cfg := config.DefaultConfig()
	if f.configPath != "" {
		var err error
		if cfg, err = config.LoadFile(f.configPath); err != nil {
			return nil, nil, err
		}
	}
	form, err := cfg.FormState()
	if err != nil {
		return nil, nil, err
	}
	eng := twi.NewWithForm(form)

	set := map[string]bool{}
	fs.Visit(func(fl *flag.Flag) { set[fl.Name] = true })

	if set["mode"] {
		id, err := twi.ParseModeID(f.mode)
		if err != nil {
			return nil, nil, err
		}
		eng.SetMode(id)
	}
	if set["vcc"] {
		eng.SetSupplyVoltage(f.vcc)
	}
	if set["pf"] {
		eng.SetCapacitance(f.pf)
	}
	if set["kohm"] {
		eng.SetPullup(f.kohm)
	}
	if set["mhz"] {
		eng.SetMCUFrequency(f.mhz)
	}
	if set["khz"] {
		eng.SetBusFrequency(f.khz)
	}
	return cfg, eng, nil
}

type outputFlags struct {
	format string
	color  bool
	check  bool
}

func (o *outputFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&o.format, "format", "text", "output format: text or json")
	fs.BoolVar(&o.color, "color", false, "highlight out-of-range values")
	fs.BoolVar(&o.check, "check", false, "exit with status 1 when any value is out of range")
}

func (o *outputFlags) validate() error {
	if o.format != "text" && o.format != "json" {
		return fmt.Errorf("%w: unknown format %q", errUsage, o.format)
	}
	return nil
}

func (o *outputFlags) write(w io.Writer, eng *twi.Engine) error {
	var err error
	if o.format == "json" {
		err = report.RenderJSON(w, eng)
	} else {
		err = report.Render(w, eng, report.Options{Color: o.color})
	}
	if err != nil {
		return err
	}
	if o.check && eng.Faults().Any() {
		return errFaults
	}
	return nil
}

func runCalc(args []string, stdout, stderr io.Writer) error {
	fs := newFlagSet("calc", stderr)
	var form formFlags
	var out outputFlags
	form.register(fs)
	out.register(fs)
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if err := out.validate(); err != nil {
		fmt.Fprintln(stderr, err)
		return err
	}

	_, eng, err := form.load(fs)
	if err != nil {
		return err
	}
	return out.write(stdout, eng)
}

func runModes(args []string, stdout, stderr io.Writer) error {
	fs := newFlagSet("modes", stderr)
	format := fs.String("format", "text", "output format: text or json")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	switch *format {
	case "text":
		return report.RenderModes(stdout)
	case "json":
		return report.RenderModesJSON(stdout)
	}
	fmt.Fprintf(stderr, "unknown format %q\n", *format)
	return errUsage
}

func runRepl(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs := newFlagSet("repl", stderr)
	var form formFlags
	form.register(fs)
	color := fs.Bool("color", false, "highlight out-of-range values")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	_, eng, err := form.load(fs)
	if err != nil {
		return err
	}
	s := repl.New(eng, stdout, report.Options{Color: *color})
	if err := report.Render(stdout, eng, report.Options{Color: *color}); err != nil {
		return err
	}
	return s.Run(stdin)
}
