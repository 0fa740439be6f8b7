// Package protocol speaks the Klipper serial protocol used by Gopper
// firmware, from the host side: VLQ argument encoding, CRC16-framed
// messages and a transport that waits for the MCU's acknowledgements.
package protocol

// Frame layout: len, seq, payload..., crc_hi, crc_lo, sync.
const (
	HeaderSize  = 2
	TrailerSize = 3
	FrameMin    = HeaderSize + TrailerSize
	FrameMax    = 64

	posLen = 0
	posSeq = 1

	SyncByte = 0x7E

	// Sequence bytes carry 0x10 in the high nibble and a wrapping counter in
	// the low nibble.
	SeqDest = 0x10
	SeqMask = 0x0F
)

// NextSeq returns the sequence number following seq.
func NextSeq(seq uint8) uint8 {
	return ((seq + 1) & SeqMask) | SeqDest
}
