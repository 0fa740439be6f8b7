//go:build rp2040

// Firmware for a bench I2C checker: it scans the bus under test, estimates
// its capacitance from the device count, computes the bus parameters for
// the selected mode and clocks the bus at that rate when everything is in
// range. Results go to an SSD1306 panel and the USB serial console.
package main

import (
	"machine"
	"strconv"
	"time"

	"tinygo.org/x/drivers/ssd1306"

	"twicalc/display"
	"twicalc/twi"
)

const (
	scanInterval = 2 * time.Second
	pollInterval = 20 * time.Millisecond
)

func main() {
	// Give the panel time to power up after a cold boot.
	time.Sleep(time.Second)

	if err := configureBuses(); err != nil {
		fail("I2C configure failed: " + err.Error())
	}

	panel := ssd1306.NewI2C(displayBus)
	panel.Configure(ssd1306.Config{
		Width:    displayWidth,
		Height:   displayHeight,
		Address:  displayAddress,
		VccState: ssd1306.SWITCHCAPVCC,
	})
	panel.ClearDisplay()

	eng := twi.New()
	eng.SetSupplyVoltage(supplyVoltage)
	eng.SetPullup(boardPullup)
	eng.SetMCUFrequency(formatWhole(float64(machine.CPUFrequency()) / 1e6))

	modes := newModeSelector(modeButton)
	lastScan := time.Time{}
	for {
		changed := modes.poll(eng)
		if changed || time.Since(lastScan) >= scanInterval {
			lastScan = time.Now()
			res := measure(eng)
			applied := applyRate(eng)

			println("devices:", len(res.Addresses), "applied:", applied)
			for _, line := range display.Lines(eng) {
				println(line)
			}
			if err := display.Draw(&panel, eng); err != nil {
				println("display:", err.Error())
			}
		}
		time.Sleep(pollInterval)
	}
}

func formatWhole(v float64) string {
	return strconv.FormatFloat(v, 'f', 0, 64)
}

// fail blinks the LED forever.
func fail(msg string) {
	led := machine.LED
	led.Configure(machine.PinConfig{Mode: machine.PinOutput})
	for {
		println(msg)
		led.High()
		time.Sleep(100 * time.Millisecond)
		led.Low()
		time.Sleep(100 * time.Millisecond)
	}
}
