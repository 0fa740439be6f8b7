package protocol

import (
	"bytes"
	"errors"
	"fmt"
)

var ErrFrameTooLong = errors.New("frame too long")

// Frame is one decoded message block. An empty payload is an ACK (or NAK)
// carrying the sequence number the MCU expects next.
type Frame struct {
	Sequence uint8
	Payload  []byte
}

// IsAck reports whether f carries no commands.
func (f Frame) IsAck() bool { return len(f.Payload) == 0 }

// EncodeFrame wraps payload in a message block with the given sequence byte.
func EncodeFrame(seq uint8, payload []byte) ([]byte, error) {
	n := HeaderSize + len(payload) + TrailerSize
	if n > FrameMax {
		return nil, fmt.Errorf("%w: %d bytes (max %d)", ErrFrameTooLong, n, FrameMax)
	}
	msg := make([]byte, 0, n)
	msg = append(msg, byte(n), seq)
	msg = append(msg, payload...)
	crc := CRC16(msg)
	return append(msg, byte(crc>>8), byte(crc), SyncByte), nil
}

// Decoder splits a byte stream into frames. After a corrupt block it drops
// input up to the next sync byte. The zero value is ready to use.
type Decoder struct {
	buf  []byte
	lost bool
}

// Write appends received bytes.
func (d *Decoder) Write(p []byte) {
	d.buf = append(d.buf, p...)
}

// Next returns the next complete frame, or false when more input is needed.
func (d *Decoder) Next() (Frame, bool) {
	for len(d.buf) > 0 {
		if d.lost {
			i := bytes.IndexByte(d.buf, SyncByte)
			if i < 0 {
				d.buf = d.buf[:0]
				return Frame{}, false
			}
			d.buf = d.buf[i+1:]
			d.lost = false
			continue
		}
		if d.buf[0] == SyncByte {
			d.buf = d.buf[1:]
			continue
		}
		if len(d.buf) < FrameMin {
			return Frame{}, false
		}
		n := int(d.buf[posLen])
		if n < FrameMin || n > FrameMax {
			d.lost = true
			continue
		}
		if len(d.buf) < n {
			return Frame{}, false
		}
		if d.buf[n-1] != SyncByte {
			d.lost = true
			continue
		}
		crc := uint16(d.buf[n-3])<<8 | uint16(d.buf[n-2])
		if crc != CRC16(d.buf[:n-TrailerSize]) {
			d.lost = true
			continue
		}
		f := Frame{
			Sequence: d.buf[posSeq],
			Payload:  append([]byte(nil), d.buf[HeaderSize:n-TrailerSize]...),
		}
		d.buf = d.buf[n:]
		return f, true
	}
	return Frame{}, false
}

// Buffered returns the number of bytes waiting for a complete frame.
func (d *Decoder) Buffered() int { return len(d.buf) }
