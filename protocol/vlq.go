package protocol

import "errors"

var (
	ErrInvalidVLQ     = errors.New("invalid VLQ encoding")
	ErrBufferTooSmall = errors.New("buffer too small for VLQ")
)

// AppendVLQ appends v in Klipper's variable-length quantity encoding: seven
// bits per byte, most significant group first, with the continuation bit set
// on all but the last byte. Values in [-32, 96) take a single byte.
func AppendVLQ(dst []byte, v int32) []byte {
	if v < -(1<<26) || v >= 3<<26 {
		dst = append(dst, byte(v>>28)&0x7F|0x80)
	}
	if v < -(1<<19) || v >= 3<<19 {
		dst = append(dst, byte(v>>21)&0x7F|0x80)
	}
	if v < -(1<<12) || v >= 3<<12 {
		dst = append(dst, byte(v>>14)&0x7F|0x80)
	}
	if v < -(1<<5) || v >= 3<<5 {
		dst = append(dst, byte(v>>7)&0x7F|0x80)
	}
	return append(dst, byte(v)&0x7F)
}

// AppendUint appends an unsigned argument (%u, %c, %hu).
func AppendUint(dst []byte, v uint32) []byte {
	return AppendVLQ(dst, int32(v))
}

// AppendBytes appends a length-prefixed buffer argument (%*s).
func AppendBytes(dst []byte, b []byte) []byte {
	dst = AppendUint(dst, uint32(len(b)))
	return append(dst, b...)
}

// DecodeVLQ decodes one VLQ from the front of *data and advances it.
func DecodeVLQ(data *[]byte) (int32, error) {
	if len(*data) == 0 {
		return 0, ErrBufferTooSmall
	}
	c := uint32((*data)[0])
	*data = (*data)[1:]

	v := c & 0x7F
	if c&0x60 == 0x60 {
		// Negative: sign-extend from bit 5 of the first group.
		v |= ^uint32(0x1F)
	}
	for n := 1; c&0x80 != 0; n++ {
		if n == 5 {
			return 0, ErrInvalidVLQ
		}
		if len(*data) == 0 {
			return 0, ErrBufferTooSmall
		}
		c = uint32((*data)[0])
		*data = (*data)[1:]
		v = v<<7 | c&0x7F
	}
	return int32(v), nil
}

// DecodeUint decodes an unsigned argument.
func DecodeUint(data *[]byte) (uint32, error) {
	v, err := DecodeVLQ(data)
	return uint32(v), err
}

// DecodeBytes decodes a length-prefixed buffer argument. The result aliases *data.
func DecodeBytes(data *[]byte) ([]byte, error) {
	n, err := DecodeUint(data)
	if err != nil {
		return nil, err
	}
	if uint32(len(*data)) < n {
		return nil, ErrBufferTooSmall
	}
	b := (*data)[:n]
	*data = (*data)[n:]
	return b, nil
}

// EncodeCommand builds a command payload: the command ID followed by its
// integer arguments in dictionary order.
func EncodeCommand(id uint32, args ...uint32) []byte {
	p := AppendUint(nil, id)
	for _, a := range args {
		p = AppendUint(p, a)
	}
	return p
}
