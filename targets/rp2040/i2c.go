//go:build rp2040

package main

import (
	"machine"

	"twicalc/busscan"
	"twicalc/twi"
)

// configureBuses brings up both I2C peripherals.
func configureBuses() error {
	if err := targetBus.Configure(machine.I2CConfig{Frequency: scanFrequency}); err != nil {
		return err
	}
	return displayBus.Configure(machine.I2CConfig{Frequency: 400 * machine.KHz})
}

// measure scans the target bus at the scan frequency and loads the
// estimate into eng. An empty bus keeps the previous capacitance.
func measure(eng *twi.Engine) busscan.Result {
	targetBus.SetBaudRate(scanFrequency)
	res := busscan.Estimate(targetBus)
	if len(res.Addresses) > 0 {
		eng.SetCapacitance(formatWhole(res.CapacitancePF))
	}
	return res
}

// applyRate clocks the target bus at the form's bus frequency when every
// value is in range. It reports whether the rate was applied.
func applyRate(eng *twi.Engine) bool {
	if eng.Faults().Any() {
		return false
	}
	hz, ok := eng.BusRateHz()
	if !ok {
		return false
	}
	return targetBus.SetBaudRate(hz) == nil
}
