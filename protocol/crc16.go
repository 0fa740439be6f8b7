package protocol

// CRC16 is the frame checksum Klipper uses (CRC-16/MCRF4XX, reflected
// polynomial 0x8408, initial value 0xFFFF).
func CRC16(data []byte) uint16 {
	crc := uint16(0xFFFF)
	for _, b := range data {
		b ^= byte(crc)
		b ^= b << 4
		x := uint16(b)
		crc = x<<8 ^ crc>>8 ^ x>>4 ^ x<<3
	}
	return crc
}
