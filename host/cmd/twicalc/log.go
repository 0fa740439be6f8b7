package main

import (
	"fmt"
	"io"
)

// Warnf prints a WARN line unless quiet is set.
func Warnf(w io.Writer, quiet bool, format string, args ...any) {
	if quiet {
		return
	}
	fmt.Fprintf(w, "WARN: "+format+"\n", args...)
}

// Verbosef prints a progress line when verbose is set.
func Verbosef(w io.Writer, verbose bool, format string, args ...any) {
	if !verbose {
		return
	}
	fmt.Fprintf(w, format+"\n", args...)
}
