package main

import (
	"fmt"
	"io"
	"strconv"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/host/v3"

	"twicalc/busscan"
)

// openBus opens a Linux I2C bus by name or number; "" picks the first one.
var openBus = func(name string) (i2c.BusCloser, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialise host drivers: %w", err)
	}
	b, err := i2creg.Open(name)
	if err != nil {
		return nil, fmt.Errorf("failed to open I2C bus %q: %w", name, err)
	}
	return b, nil
}

func runScan(args []string, stdout, stderr io.Writer) error {
	fs := newFlagSet("scan", stderr)
	busName := fs.String("bus", "", "I2C bus name or number (default: first bus)")
	calc := fs.Bool("calc", false, "use the estimated capacitance in a calculation")
	setSpeed := fs.Bool("set-speed", false, "with -calc, set the bus clock to the form's bus frequency when in range")
	quiet := fs.Bool("quiet", false, "suppress warnings")
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

	b, err := openBus(*busName)
	if err != nil {
		return err
	}
	defer b.Close()

	res := busscan.Estimate(b)
	fmt.Fprintf(stdout, "Found %d device(s) on %s:", len(res.Addresses), b)
	for _, addr := range res.Addresses {
		fmt.Fprintf(stdout, " 0x%02x", addr)
	}
	fmt.Fprintln(stdout)
	fmt.Fprintf(stdout, "Estimated capacitance: %s pF\n", strconv.FormatFloat(res.CapacitancePF, 'f', -1, 64))

	if !*calc {
		return nil
	}

	_, eng, err := form.load(fs)
	if err != nil {
		return err
	}
	if len(res.Addresses) == 0 {
		Warnf(stderr, *quiet, "no devices answered; keeping capacitance %s pF", eng.Form().Capacitance)
	} else {
		eng.SetCapacitance(strconv.FormatFloat(res.CapacitancePF, 'f', -1, 64))
	}
	fmt.Fprintln(stdout)
	reportErr := out.write(stdout, eng)
	if reportErr != nil && reportErr != errFaults {
		return reportErr
	}

	if *setSpeed {
		hz, ok := eng.BusRateHz()
		switch {
		case eng.Faults().Any():
			Warnf(stderr, *quiet, "bus parameters out of range; leaving %s speed unchanged", b)
		case !ok:
			Warnf(stderr, *quiet, "bus frequency %q is not a usable rate; leaving %s speed unchanged", eng.Form().BusFrequency, b)
		default:
			f := physic.Frequency(hz) * physic.Hertz
			if err := b.SetSpeed(f); err != nil {
				return fmt.Errorf("failed to set %s speed: %w", b, err)
			}
			fmt.Fprintf(stdout, "Set %s speed to %s\n", b, f)
		}
	}
	return reportErr
}
