package main

import (
	"encoding/json"
	"testing"

	qt "github.com/frankban/quicktest"

	"twicalc/protocol"
)

func TestBridgeSnapshot(t *testing.T) {
	c := qt.New(t)
	b := newBridge()
	b.setMode(1)
	c.Assert(b.setField("pullup", "2.2"), qt.IsNil)
	c.Assert(b.setField("colour", "red"), qt.ErrorMatches, `unknown field "colour"`)

	s, err := b.snapshotJSON()
	c.Assert(err, qt.IsNil)
	var snap struct {
		Mode struct {
			Label string `json:"label"`
		} `json:"mode"`
		Baud   float64         `json:"baud"`
		Faults map[string]bool `json:"faults"`
	}
	c.Assert(json.Unmarshal([]byte(s), &snap), qt.IsNil)
	c.Assert(snap.Mode.Label, qt.Equals, "Fast Mode (400 kHz)")
	c.Assert(snap.Baud, qt.Equals, 20.0)
	c.Assert(snap.Faults["pullup"], qt.IsFalse)

	f, err := b.formJSON()
	c.Assert(err, qt.IsNil)
	c.Assert(f, qt.Contains, `"pullup_kohm":"2.2"`)
	c.Assert(f, qt.Contains, `"bus_frequency_khz":"400"`)
}

func TestBridgeNaNIsNull(t *testing.T) {
	c := qt.New(t)
	b := newBridge()
	c.Assert(b.setField("capacitance", ""), qt.IsNil)

	s, err := b.snapshotJSON()
	c.Assert(err, qt.IsNil)
	c.Assert(s, qt.Contains, `"rise_time_ns":null`)
}

func TestModesJSON(t *testing.T) {
	c := qt.New(t)
	s, err := modesJSON()
	c.Assert(err, qt.IsNil)
	var modes []map[string]any
	c.Assert(json.Unmarshal([]byte(s), &modes), qt.IsNil)
	c.Assert(modes, qt.HasLen, 3)
}

func TestSetBusFrameRoundTrip(t *testing.T) {
	c := qt.New(t)
	b := newBridge()

	h, err := b.setBusFrame(protocol.SeqDest|2, 8, 4, 1, 0x3c)
	c.Assert(err, qt.IsNil)

	s, err := decodeFrames(h)
	c.Assert(err, qt.IsNil)
	var frames []frameInfo
	c.Assert(json.Unmarshal([]byte(s), &frames), qt.IsNil)
	c.Assert(frames, qt.DeepEquals, []frameInfo{{
		Sequence: 0x12,
		Args:     []uint32{8, 4, 1, 100000, 0x3c},
	}})

	b.eng.SetBusFrequency("900")
	_, err = b.setBusFrame(protocol.SeqDest, 8, 4, 1, 0x3c)
	c.Assert(err, qt.ErrorMatches, "bus parameters out of range")

	b.eng.SetBusFrequency("")
	c.Assert(b.eng.Faults().Any(), qt.IsFalse)
	_, err = b.setBusFrame(protocol.SeqDest, 8, 4, 1, 0x3c)
	c.Assert(err, qt.ErrorMatches, `bus frequency "" is not a usable rate`)

	_, err = decodeFrames("zz")
	c.Assert(err, qt.ErrorMatches, "invalid hex string: .*")
}
