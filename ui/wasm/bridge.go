package main

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"

	"twicalc/protocol"
	"twicalc/report"
	"twicalc/twi"
)

// bridge is the page's view of one engine. Results cross into JavaScript
// as JSON so NaN reaches the page as null.
type bridge struct {
	eng *twi.Engine
}

func newBridge() *bridge {
	return &bridge{eng: twi.New()}
}

func (b *bridge) setMode(id int) {
	b.eng.SetMode(twi.ModeID(id))
}

func (b *bridge) setField(name, text string) error {
	switch name {
	case "supplyVoltage":
		b.eng.SetSupplyVoltage(text)
	case "capacitance":
		b.eng.SetCapacitance(text)
	case "pullup":
		b.eng.SetPullup(text)
	case "mcuFrequency":
		b.eng.SetMCUFrequency(text)
	case "busFrequency":
		b.eng.SetBusFrequency(text)
	default:
		return fmt.Errorf("unknown field %q", name)
	}
	return nil
}

func (b *bridge) formJSON() (string, error) {
	return marshal(report.Build(b.eng).Form)
}

func (b *bridge) snapshotJSON() (string, error) {
	return marshal(report.Build(b.eng))
}

func modesJSON() (string, error) {
	return marshal(report.Modes())
}

func marshal(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// setBusFrame builds a framed i2c_set_bus command for a WebSerial link.
// cmdID comes from the MCU's dictionary.
func (b *bridge) setBusFrame(seq uint8, cmdID, oid, bus, addr uint32) (string, error) {
	if b.eng.Faults().Any() {
		return "", errors.New("bus parameters out of range")
	}
	rate, ok := b.eng.BusRateHz()
	if !ok {
		return "", fmt.Errorf("bus frequency %q is not a usable rate", b.eng.Form().BusFrequency)
	}
	msg, err := protocol.EncodeFrame(seq, protocol.EncodeCommand(cmdID, oid, bus, rate, addr))
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(msg), nil
}

// frameInfo is a decoded frame for display in the page's serial log.
type frameInfo struct {
	Sequence int      `json:"sequence"`
	Ack      bool     `json:"ack"`
	Args     []uint32 `json:"args"`
	Rest     int      `json:"rest"`
}

// decodeFrames splits hex input into frames and decodes each payload as
// unsigned VLQs. Bytes that do not decode as a VLQ are counted in Rest.
func decodeFrames(hexStr string) (string, error) {
	data, err := hex.DecodeString(hexStr)
	if err != nil {
		return "", fmt.Errorf("invalid hex string: %w", err)
	}

	var d protocol.Decoder
	d.Write(data)
	frames := []frameInfo{}
	for f, ok := d.Next(); ok; f, ok = d.Next() {
		info := frameInfo{Sequence: int(f.Sequence), Ack: f.IsAck(), Args: []uint32{}}
		payload := f.Payload
		for len(payload) > 0 {
			v, err := protocol.DecodeUint(&payload)
			if err != nil {
				break
			}
			info.Args = append(info.Args, v)
		}
		info.Rest = len(payload)
		frames = append(frames, info)
	}
	return marshal(frames)
}
