//go:build !(js && wasm)

package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Fprintln(os.Stderr, "Error: build with GOOS=js GOARCH=wasm and load from a browser page")
	os.Exit(1)
}
