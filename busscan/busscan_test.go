package busscan

import (
	"errors"
	"testing"

	qt "github.com/frankban/quicktest"
	"tinygo.org/x/drivers"
)

// Compile-time check.
var _ drivers.I2C = (*fakeBus)(nil)

var errNack = errors.New("i2c: nack")

type fakeBus struct {
	present map[uint16]bool
	probed  []uint16
}

func (f *fakeBus) Tx(addr uint16, w, r []byte) error {
	f.probed = append(f.probed, addr)
	if !f.present[addr] {
		return errNack
	}
	for i := range r {
		r[i] = 0xFF
	}
	return nil
}

func TestScanFindsDevices(t *testing.T) {
	c := qt.New(t)
	bus := &fakeBus{present: map[uint16]bool{0x3C: true, 0x68: true, 0x76: true}}

	c.Assert(Scan(bus), qt.DeepEquals, []uint16{0x3C, 0x68, 0x76})
}

func TestScanSkipsReservedAddresses(t *testing.T) {
	c := qt.New(t)
	bus := &fakeBus{present: map[uint16]bool{0x00: true, 0x07: true, 0x78: true, 0x7F: true}}

	c.Assert(Scan(bus), qt.HasLen, 0)
	c.Assert(bus.probed, qt.HasLen, LastAddress-FirstAddress+1)
	c.Assert(bus.probed[0], qt.Equals, uint16(FirstAddress))
	c.Assert(bus.probed[len(bus.probed)-1], qt.Equals, uint16(LastAddress))
}

func TestEstimate(t *testing.T) {
	c := qt.New(t)
	bus := &fakeBus{present: map[uint16]bool{0x20: true, 0x21: true}}

	got := Estimate(bus)
	c.Assert(got.Addresses, qt.DeepEquals, []uint16{0x20, 0x21})
	c.Assert(got.CapacitancePF, qt.Equals, 40.0)
}

func TestEstimateCapacitancePF(t *testing.T) {
	c := qt.New(t)
	c.Assert(EstimateCapacitancePF(0), qt.Equals, 0.0)
	c.Assert(EstimateCapacitancePF(5), qt.Equals, 100.0)
	c.Assert(EstimateCapacitancePF(-3), qt.Equals, 0.0)
}
