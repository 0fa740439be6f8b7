package main

import (
	"flag"
	"fmt"
	"io"
	"strconv"

	"twicalc/host/mcu"
	"twicalc/host/serial"
	"twicalc/report"
)

// openPort opens the MCU link and discards stale input.
var openPort = func(cfg *serial.Config) (serial.Port, error) {
	p, err := serial.Open(cfg)
	if err != nil {
		return nil, err
	}
	if err := p.Flush(); err != nil {
		p.Close()
		return nil, fmt.Errorf("failed to flush %s: %w", cfg.Device, err)
	}
	return p, nil
}

// addrFlag parses a 7-bit I2C address in decimal, hex (0x3c) or octal.
type addrFlag struct {
	v   uint8
	set bool
}

func (a *addrFlag) String() string {
	if a == nil {
		return "0x00"
	}
	return fmt.Sprintf("0x%02x", a.v)
}

func (a *addrFlag) Set(s string) error {
	n, err := strconv.ParseUint(s, 0, 8)
	if err != nil || n > 0x7F {
		return fmt.Errorf("invalid 7-bit address %q", s)
	}
	a.v, a.set = uint8(n), true
	return nil
}

func runApply(args []string, stdout, stderr io.Writer) error {
	fs := newFlagSet("apply", stderr)
	var form formFlags
	form.register(fs)
	device := fs.String("device", "", "serial device of the MCU (e.g. /dev/ttyACM0)")
	baud := fs.Int("baud", 0, "baud rate (ignored for USB CDC)")
	oid := fs.Uint("oid", 0, "object ID for the I2C device on the MCU")
	bus := fs.Uint("bus", 0, "MCU I2C bus number")
	var addr addrFlag
	fs.Var(&addr, "addr", "7-bit I2C device address")
	mcuClock := fs.Bool("mcu-clock", false, "take the MCU frequency from the dictionary's CLOCK_FREQ")
	force := fs.Bool("force", false, "program the bus rate even when values are out of range")
	color := fs.Bool("color", false, "highlight out-of-range values")
	verbose := fs.Bool("verbose", false, "print progress")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	cfg, eng, err := form.load(fs)
	if err != nil {
		return err
	}
	set := map[string]bool{}
	fs.Visit(func(fl *flag.Flag) { set[fl.Name] = true })
	if set["device"] {
		cfg.Serial.Device = *device
	}
	if set["baud"] {
		cfg.Serial.Baud = *baud
	}
	if set["oid"] {
		cfg.I2C.OID = uint8(*oid)
	}
	if set["bus"] {
		cfg.I2C.Bus = uint32(*bus)
	}
	if addr.set {
		cfg.I2C.Address = addr.v
	}
	if cfg.I2C.Address == 0 {
		fmt.Fprintln(stderr, "apply: -addr is required")
		return errUsage
	}

	Verbosef(stderr, *verbose, "Connecting to MCU on %s...", cfg.Serial.Device)
	port, err := openPort(&cfg.Serial)
	if err != nil {
		return err
	}
	m := mcu.NewMCU()
	if *verbose {
		m.Progress = stderr
	}
	m.Attach(port)
	defer m.Close()

	if err := m.RetrieveDictionary(); err != nil {
		return fmt.Errorf("failed to retrieve dictionary: %w", err)
	}

	if *mcuClock {
		hz, err := m.ClockFrequencyHz()
		if err != nil {
			return err
		}
		eng.SetMCUFrequency(strconv.FormatFloat(hz/1e6, 'f', -1, 64))
		Verbosef(stderr, *verbose, "MCU clock from dictionary: %s", eng.Form().MCUFrequency)
	}

	if err := report.Render(stdout, eng, report.Options{Color: *color}); err != nil {
		return err
	}
	if eng.Faults().Any() {
		if !*force {
			return fmt.Errorf("%w; not programming the MCU (use -force to override)", errFaults)
		}
		Warnf(stderr, false, "programming out-of-range bus settings")
	}

	target := mcu.I2CTarget{OID: cfg.I2C.OID, Bus: cfg.I2C.Bus, Address: cfg.I2C.Address}
	rate, ok := eng.BusRateHz()
	if !ok {
		return fmt.Errorf("bus frequency %q is not a usable rate", eng.Form().BusFrequency)
	}
	if err := m.ConfigureI2C(target, rate); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Programmed i2c_set_bus oid=%d i2c_bus=%d rate=%d address=0x%02x\n",
		target.OID, target.Bus, rate, target.Address)
	return nil
}
