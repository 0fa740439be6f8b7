// Command twicalc computes TWI/I2C bus parameters: rise time, the pull-up
// window and the TWI baud register, for a chosen bus mode.
//
// Usage:
//
//	twicalc [calc] [-mode fm] [-vcc 3.3] [-pf 100] [-kohm 2.2] [-mhz 16] [-khz 400]
//	twicalc modes
//	twicalc repl
//	twicalc scan -bus 1 [-calc]
//	twicalc apply -device /dev/ttyACM0 -oid 0 -bus 0 -addr 0x3c
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
)

// errUsage marks errors already reported by a FlagSet.
var errUsage = errors.New("usage")

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cmd := "calc"
	if len(args) > 0 && len(args[0]) > 0 && args[0][0] != '-' {
		cmd, args = args[0], args[1:]
	}

	var err error
	switch cmd {
	case "calc":
		err = runCalc(args, stdout, stderr)
	case "modes":
		err = runModes(args, stdout, stderr)
	case "repl":
		err = runRepl(args, stdin, stdout, stderr)
	case "scan":
		err = runScan(args, stdout, stderr)
	case "apply":
		err = runApply(args, stdout, stderr)
	case "help":
		printUsage(stdout)
		return 0
	default:
		fmt.Fprintf(stderr, "Error: unknown command %q\n", cmd)
		printUsage(stderr)
		return 2
	}

	switch {
	case err == nil:
		return 0
	case errors.Is(err, flag.ErrHelp):
		return 0
	case errors.Is(err, errUsage):
		return 2
	case err == errFaults:
		// The report already shows what is out of range.
		return 1
	}
	fmt.Fprintf(stderr, "Error: %v\n", err)
	return 1
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: twicalc <command> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  calc    Compute bus parameters (default)")
	fmt.Fprintln(w, "  modes   List bus modes")
	fmt.Fprintln(w, "  repl    Edit the form interactively")
	fmt.Fprintln(w, "  scan    Probe a Linux I2C bus and estimate its capacitance")
	fmt.Fprintln(w, "  apply   Program the computed bus rate into a Gopper MCU")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'twicalc <command> -h' for command flags.")
}

func newFlagSet(name string, stderr io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	return fs
}

func parseFlags(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return err
		}
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	if fs.NArg() > 0 {
		fmt.Fprintf(fs.Output(), "unexpected arguments: %v\n", fs.Args())
		return errUsage
	}
	return nil
}
