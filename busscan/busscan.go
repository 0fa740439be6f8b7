// Package busscan finds devices on an I2C bus and estimates the bus
// capacitance they add.
package busscan

import (
	"tinygo.org/x/drivers"
)

// Valid 7-bit addresses; 0x00-0x07 and 0x78-0x7F are reserved.
const (
	FirstAddress = 0x08
	LastAddress  = 0x77
)

// PerDevicePF is the rough capacitance each device adds on a short bus.
const PerDevicePF = 20

// Result of a bus scan.
type Result struct {
	Addresses     []uint16
	CapacitancePF float64
}

// Scan probes every valid 7-bit address with a one-byte read and returns the
// addresses that acknowledged, in ascending order. A NACK surfaces as an
// error from the bus and just means nothing answered at that address.
func Scan(bus drivers.I2C) []uint16 {
	var found []uint16
	buf := make([]byte, 1)
	for addr := uint16(FirstAddress); addr <= LastAddress; addr++ {
		if err := bus.Tx(addr, nil, buf); err == nil {
			found = append(found, addr)
		}
	}
	return found
}

// EstimateCapacitancePF returns the capacitance n devices add to a short bus.
func EstimateCapacitancePF(n int) float64 {
	if n < 0 {
		n = 0
	}
	return float64(n) * PerDevicePF
}

// Estimate scans bus and converts the device count to a capacitance.
func Estimate(bus drivers.I2C) Result {
	addrs := Scan(bus)
	return Result{
		Addresses:     addrs,
		CapacitancePF: EstimateCapacitancePF(len(addrs)),
	}
}
