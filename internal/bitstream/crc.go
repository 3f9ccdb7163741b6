// crc.go implements the table-driven CRC-8 and CRC-16 used by FLAC frames.

package bitstream

// FLAC frames carry two checksums: a CRC-8 (polynomial x^8+x^2+x+1, 0x07)
// over the frame header, and a CRC-16 (polynomial x^16+x^15+x^2+1, 0x8005)
// over the entire frame. Both are MSB-first with initial value 0.

var crc8Table = makeCRC8Table()

var crc16Table = makeCRC16Table()

func makeCRC8Table() [256]uint8 {
	var table [256]uint8
	for i := range table {
		crc := uint8(i)
		for b := 0; b < 8; b++ {
			if crc&0x80 != 0 {
				crc = crc<<1 ^ 0x07
			} else {
				crc <<= 1
			}
		}
		table[i] = crc
	}
	return table
}

func makeCRC16Table() [256]uint16 {
	var table [256]uint16
	for i := range table {
		crc := uint16(i) << 8
		for b := 0; b < 8; b++ {
			if crc&0x8000 != 0 {
				crc = crc<<1 ^ 0x8005
			} else {
				crc <<= 1
			}
		}
		table[i] = crc
	}
	return table
}

// CRC8 computes the frame-header CRC-8 of data from a zero initial state.
func CRC8(data []byte) uint8 {
	var crc uint8
	for _, b := range data {
		crc = crc8Table[crc^b]
	}
	return crc
}

// CRC16 computes the whole-frame CRC-16 of data from a zero initial state.
func CRC16(data []byte) uint16 {
	var crc uint16
	for _, b := range data {
		crc = crc<<8 ^ crc16Table[byte(crc>>8)^b]
	}
	return crc
}
