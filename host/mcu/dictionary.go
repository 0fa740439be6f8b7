package mcu

import (
	"bytes"
	"compress/zlib"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Dictionary is the data dictionary an MCU reports through identify.
type Dictionary struct {
	Version       string                    `json:"version"`
	BuildVersions string                    `json:"build_versions"`
	Config        map[string]any            `json:"config"`
	Commands      map[string]int            `json:"commands"`
	Responses     map[string]int            `json:"responses"`
	Enumerations  map[string]map[string]any `json:"enumerations,omitempty"`
}

// ParseDictionary decodes raw identify data, inflating it first when it
// carries a zlib header.
func ParseDictionary(raw []byte) (*Dictionary, error) {
	data := raw
	if len(raw) >= 2 && raw[0] == 0x78 {
		inflated, err := inflate(raw)
		if err != nil {
			return nil, fmt.Errorf("failed to decompress dictionary: %w", err)
		}
		data = inflated
	}

	dict := &Dictionary{}
	if err := json.Unmarshal(data, dict); err != nil {
		return nil, fmt.Errorf("failed to unmarshal dictionary: %w", err)
	}
	return dict, nil
}

func inflate(data []byte) ([]byte, error) {
	r, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return io.ReadAll(r)
}

// Constant returns a config value as a number. Gopper reports constants as
// strings, Klipper as JSON numbers; both are accepted.
func (d *Dictionary) Constant(name string) (float64, bool) {
	v, ok := d.Config[name]
	if !ok {
		return 0, false
	}
	switch v := v.(type) {
	case float64:
		return v, true
	case string:
		f, err := strconv.ParseFloat(v, 64)
		return f, err == nil
	}
	return 0, false
}

// CommandID finds a command by name. Dictionary keys are full formats such
// as "i2c_set_bus oid=%c i2c_bus=%u rate=%u address=%u"; only the first
// word is compared.
func (d *Dictionary) CommandID(name string) (uint32, bool) {
	for format, id := range d.Commands {
		if commandName(format) == name {
			return uint32(id), true
		}
	}
	return 0, false
}

func commandName(format string) string {
	if i := strings.IndexByte(format, ' '); i >= 0 {
		return format[:i]
	}
	return format
}
