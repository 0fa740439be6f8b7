//go:build js && wasm

package main

import (
	"syscall/js"

	"twicalc/twi"
)

var calc = newBridge()

func main() {
	js.Global().Set("twicalc", js.ValueOf(map[string]any{
		"setMode":           js.FuncOf(setModeWrapper),
		"setSupplyVoltage":  js.FuncOf(fieldSetter("supplyVoltage")),
		"setCapacitance":    js.FuncOf(fieldSetter("capacitance")),
		"setPullup":         js.FuncOf(fieldSetter("pullup")),
		"setMCUFrequency":   js.FuncOf(fieldSetter("mcuFrequency")),
		"setBusFrequency":   js.FuncOf(fieldSetter("busFrequency")),
		"form":              js.FuncOf(jsonResult(calc.formJSON)),
		"snapshot":          js.FuncOf(jsonResult(calc.snapshotJSON)),
		"modes":             js.FuncOf(jsonResult(modesJSON)),
		"friendlyFrequency": js.FuncOf(friendlyFrequencyWrapper),
		"setBusFrame":       js.FuncOf(setBusFrameWrapper),
		"decodeFrames":      js.FuncOf(decodeFramesWrapper),
	}))

	// Keep the program running
	select {}
}

// setModeWrapper selects a bus mode. Args: id (number)
func setModeWrapper(this js.Value, args []js.Value) any {
	if len(args) < 1 {
		return errorResult("missing mode argument")
	}
	calc.setMode(args[0].Int())
	return js.Undefined()
}

// fieldSetter returns a setter taking the field text as typed.
func fieldSetter(name string) func(js.Value, []js.Value) any {
	return func(this js.Value, args []js.Value) any {
		if len(args) < 1 {
			return errorResult("missing value argument")
		}
		if err := calc.setField(name, args[0].String()); err != nil {
			return errorResult(err.Error())
		}
		return js.Undefined()
	}
}

// jsonResult parses fn's JSON output into a JavaScript value.
func jsonResult(fn func() (string, error)) func(js.Value, []js.Value) any {
	return func(this js.Value, args []js.Value) any {
		s, err := fn()
		if err != nil {
			return errorResult(err.Error())
		}
		return js.Global().Get("JSON").Call("parse", s)
	}
}

// friendlyFrequencyWrapper formats a frequency. Args: hz (number)
func friendlyFrequencyWrapper(this js.Value, args []js.Value) any {
	if len(args) < 1 {
		return errorResult("missing frequency argument")
	}
	return js.ValueOf(twi.FriendlyFrequency(args[0].Float()))
}

// setBusFrameWrapper builds an i2c_set_bus frame for the current form.
// Args: seq, cmdID, oid, bus, address (numbers)
// Returns: hex string or {error}
func setBusFrameWrapper(this js.Value, args []js.Value) any {
	if len(args) < 5 {
		return errorResult("expected seq, cmdID, oid, bus, address")
	}
	s, err := calc.setBusFrame(uint8(args[0].Int()), uint32(args[1].Int()),
		uint32(args[2].Int()), uint32(args[3].Int()), uint32(args[4].Int()))
	if err != nil {
		return errorResult(err.Error())
	}
	return js.ValueOf(s)
}

// decodeFramesWrapper decodes received bytes. Args: hexString
// Returns: [{sequence, ack, args, rest}] or {error}
func decodeFramesWrapper(this js.Value, args []js.Value) any {
	if len(args) < 1 {
		return errorResult("missing hex string argument")
	}
	return jsonResult(func() (string, error) { return decodeFrames(args[0].String()) })(this, nil)
}

func errorResult(msg string) js.Value {
	return js.ValueOf(map[string]any{"error": msg})
}
