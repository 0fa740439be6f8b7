package mcu

import (
	"errors"
	"fmt"
)

// I2CTarget names the MCU-side I2C object to reconfigure.
type I2CTarget struct {
	OID     uint8
	Bus     uint32
	Address uint8
}

// ConfigureI2C allocates the target's oid and sets its bus rate in Hz.
func (m *MCU) ConfigureI2C(t I2CTarget, rateHz uint32) error {
	if rateHz == 0 {
		return errors.New("bus rate must be positive")
	}
	if t.Address > 0x7F {
		return fmt.Errorf("address 0x%02x is not a 7-bit address", t.Address)
	}

	if err := m.SendCommand("config_i2c", uint32(t.OID)); err != nil {
		return err
	}
	return m.SendCommand("i2c_set_bus", uint32(t.OID), t.Bus, rateHz, uint32(t.Address))
}
