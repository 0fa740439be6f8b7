//go:build rp2040

package main

import "machine"

// Board wiring. The bus under test is I2C0 on its default pins (SDA GP4,
// SCL GP5); the readout panel sits on I2C1 (SDA GP6, SCL GP7) so it never
// counts toward the measured bus.
var (
	targetBus  = machine.I2C0
	displayBus = machine.I2C1

	modeButton = machine.GP15
)

const (
	// RP2040 GPIO runs from 3.3 V.
	supplyVoltage = "3.3"

	// Pull-ups fitted on the board under test, in kΩ.
	boardPullup = "4.7"

	displayAddress = 0x3C
	displayWidth   = 128
	displayHeight  = 64

	// Bus clock while scanning, before the computed rate is known.
	scanFrequency = 100 * machine.KHz
)
