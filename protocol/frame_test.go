package protocol

import (
	"bytes"
	"errors"
	"testing"
)

func TestEncodeFrameAck(t *testing.T) {
	msg, err := EncodeFrame(SeqDest|1, nil)
	if err != nil {
		t.Fatalf("EncodeFrame failed: %v", err)
	}
	expected := []byte{0x05, 0x11, 0x8F, 0x08, SyncByte}
	if !bytes.Equal(msg, expected) {
		t.Errorf("Expected %X, got %X", expected, msg)
	}
}

func TestEncodeFrameTooLong(t *testing.T) {
	_, err := EncodeFrame(SeqDest, make([]byte, FrameMax-FrameMin+1))
	if !errors.Is(err, ErrFrameTooLong) {
		t.Errorf("Expected ErrFrameTooLong, got %v", err)
	}
	if _, err := EncodeFrame(SeqDest, make([]byte, FrameMax-FrameMin)); err != nil {
		t.Errorf("Expected max-size payload to fit, got %v", err)
	}
}

func TestDecoderRoundTrip(t *testing.T) {
	payload := EncodeCommand(5, 1, 2, 3)
	msg, err := EncodeFrame(SeqDest|7, payload)
	if err != nil {
		t.Fatalf("EncodeFrame failed: %v", err)
	}

	var d Decoder
	// Deliver byte by byte to exercise partial input.
	for i, b := range msg {
		d.Write([]byte{b})
		f, ok := d.Next()
		if i < len(msg)-1 {
			if ok {
				t.Fatalf("Frame returned early at byte %d", i)
			}
			continue
		}
		if !ok {
			t.Fatal("Expected a frame after the last byte")
		}
		if f.Sequence != SeqDest|7 {
			t.Errorf("Expected sequence 0x17, got 0x%02X", f.Sequence)
		}
		if !bytes.Equal(f.Payload, payload) {
			t.Errorf("Expected payload %v, got %v", payload, f.Payload)
		}
		if f.IsAck() {
			t.Error("Command frame reported as ACK")
		}
	}
	if d.Buffered() != 0 {
		t.Errorf("Expected empty buffer, got %d bytes", d.Buffered())
	}
}

func TestDecoderResync(t *testing.T) {
	good, _ := EncodeFrame(SeqDest|2, nil)
	corrupt, _ := EncodeFrame(SeqDest|1, []byte{1, 2, 3})
	corrupt[3] ^= 0xFF

	var d Decoder
	d.Write([]byte{0x00, 0xFF})
	d.Write(corrupt)
	d.Write(good)

	f, ok := d.Next()
	if !ok {
		t.Fatal("Expected decoder to recover the frame after the corrupt one")
	}
	if f.Sequence != SeqDest|2 || !f.IsAck() {
		t.Errorf("Expected ACK with sequence 0x12, got 0x%02X %v", f.Sequence, f.Payload)
	}
	if _, ok := d.Next(); ok {
		t.Error("Expected no further frames")
	}
}

func TestDecoderMultipleFrames(t *testing.T) {
	var stream []byte
	for i := uint8(0); i < 3; i++ {
		msg, _ := EncodeFrame(NextSeq(SeqDest+i), []byte{i + 1})
		stream = append(stream, msg...)
	}

	var d Decoder
	d.Write(stream)
	count := 0
	for f, ok := d.Next(); ok; f, ok = d.Next() {
		count++
		if len(f.Payload) != 1 || f.Payload[0] != uint8(count) {
			t.Errorf("Frame %d: unexpected payload %v", count, f.Payload)
		}
	}
	if count != 3 {
		t.Errorf("Expected 3 frames, got %d", count)
	}
}

func TestNextSeqWraps(t *testing.T) {
	if got := NextSeq(SeqDest | 0x0F); got != SeqDest {
		t.Errorf("Expected wrap to 0x10, got 0x%02X", got)
	}
	if got := NextSeq(SeqDest); got != SeqDest|1 {
		t.Errorf("Expected 0x11, got 0x%02X", got)
	}
}
