// Package config loads calculator presets: the form to start from, the
// serial link to a Gopper MCU and the MCU-side I2C object to reconfigure.
package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"twicalc/host/serial"
	"twicalc/twi"
)

// Config is a preset file.
type Config struct {
	Form   FormConfig    `json:"form"`
	Serial serial.Config `json:"serial"`
	I2C    I2CConfig     `json:"i2c"`
}

// FormConfig mirrors twi.FormState with the mode given by name or number.
type FormConfig struct {
	Mode          string `json:"mode"`
	SupplyVoltage Text   `json:"supply_voltage"`
	Capacitance   Text   `json:"capacitance_pf"`
	Pullup        Text   `json:"pullup_kohm"`
	MCUFrequency  Text   `json:"mcu_frequency_mhz"`
	BusFrequency  Text   `json:"bus_frequency_khz"`
}

// I2CConfig identifies the I2C object on the MCU.
type I2CConfig struct {
	OID     uint8  `json:"oid"`
	Bus     uint32 `json:"bus"`
	Address uint8  `json:"address"`
}

// Text is a form field. Presets may write it as a JSON string or number;
// a number keeps its literal spelling.
type Text string

func (t *Text) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = Text(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("form field must be a string or number: %s", data)
	}
	*t = Text(n)
	return nil
}

// LoadConfig parses a JSON preset and fills in missing values.
func LoadConfig(jsonData []byte) (*Config, error) {
	var cfg Config
	if err := json.Unmarshal(jsonData, &cfg); err != nil {
		return nil, err
	}

	applyDefaults(&cfg)

	if _, err := twi.ParseModeID(cfg.Form.Mode); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadFile reads a preset from path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg, err := LoadConfig(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// applyDefaults fills empty fields from the calculator's initial form and
// the standard Klipper serial settings.
func applyDefaults(cfg *Config) {
	form := twi.DefaultForm()

	if cfg.Form.Mode == "" {
		cfg.Form.Mode = form.Mode.String()
	}
	if cfg.Form.SupplyVoltage == "" {
		cfg.Form.SupplyVoltage = Text(form.SupplyVoltage)
	}
	if cfg.Form.Capacitance == "" {
		cfg.Form.Capacitance = Text(form.Capacitance)
	}
	if cfg.Form.Pullup == "" {
		cfg.Form.Pullup = Text(form.Pullup)
	}
	if cfg.Form.MCUFrequency == "" {
		cfg.Form.MCUFrequency = Text(form.MCUFrequency)
	}
	if cfg.Form.BusFrequency == "" {
		if mode, err := twi.ParseModeID(cfg.Form.Mode); err == nil && mode != form.Mode {
			if spec, ok := twi.Lookup(mode); ok {
				cfg.Form.BusFrequency = Text(spec.DefaultBusFrequency())
			}
		}
		if cfg.Form.BusFrequency == "" {
			cfg.Form.BusFrequency = Text(form.BusFrequency)
		}
	}

	if cfg.Serial.Baud == 0 {
		cfg.Serial.Baud = serial.DefaultBaud
	}
	if cfg.Serial.ReadTimeout == 0 {
		cfg.Serial.ReadTimeout = serial.DefaultReadTimeout
	}
}

// DefaultConfig returns the preset used when no file is given.
func DefaultConfig() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// FormState converts the preset form into calculator state.
func (c *Config) FormState() (twi.FormState, error) {
	mode, err := twi.ParseModeID(c.Form.Mode)
	if err != nil {
		return twi.FormState{}, err
	}
	return twi.FormState{
		Mode:          mode,
		SupplyVoltage: string(c.Form.SupplyVoltage),
		Capacitance:   string(c.Form.Capacitance),
		Pullup:        string(c.Form.Pullup),
		MCUFrequency:  string(c.Form.MCUFrequency),
		BusFrequency:  string(c.Form.BusFrequency),
	}, nil
}
