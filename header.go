// header.go decodes the FLAC frame header: the sync pattern, coded
// parameter fields, the variable-length position integer, and the CRC-8
// checkpoint over all header bytes.

package goflac

import (
	"math/bits"
)

// sampleRates maps sample rate codes 1 to 11 to rates in Hz. Code 0 defers
// to stream metadata and codes 12 to 14 read the rate from the stream.
var sampleRates = [12]int{-1, 88200, 176400, 192000, 8000, 16000, 22050, 24000, 32000, 44100, 48000, 96000}

// sampleDepths maps the 3-bit sample depth code to bits per sample. Code 0
// defers to stream metadata; -2 marks the two reserved codes.
var sampleDepths = [8]int{-1, 8, 12, -2, 16, 20, 24, -2}

// readHeader parses the frame header, filling in meta and validating the
// output buffers against the decoded channel count and block size. The first
// header byte has already been consumed by the caller. It returns the raw
// channel assignment code for subframe decoding.
func (d *FrameDecoder) readHeader(first byte, meta *FrameMetadata, out [][]int32, offset int) (int, error) {
	// The 14-bit sync code, with its first 8 bits pre-read by the caller.
	low, err := d.br.ReadUint(6)
	if err != nil {
		return 0, err
	}
	if uint32(first)<<6|low != 0x3FFE {
		return 0, ErrSyncMismatch
	}

	reserved, err := d.br.ReadUint(1)
	if err != nil {
		return 0, err
	}
	if reserved != 0 {
		return 0, ErrReservedField
	}
	blockStrategy, err := d.br.ReadUint(1)
	if err != nil {
		return 0, err
	}
	blockSizeCode, err := d.br.ReadUint(4)
	if err != nil {
		return 0, err
	}
	sampleRateCode, err := d.br.ReadUint(4)
	if err != nil {
		return 0, err
	}
	chanAsgn, err := d.br.ReadUint(4)
	if err != nil {
		return 0, err
	}
	switch {
	case chanAsgn <= 7:
		meta.NumChannels = int(chanAsgn) + 1
	case chanAsgn <= 10:
		meta.NumChannels = 2
	default:
		return 0, ErrReservedField
	}
	if len(out) < meta.NumChannels {
		return 0, ErrBufferTooSmall
	}
	depthCode, err := d.br.ReadUint(3)
	if err != nil {
		return 0, err
	}
	depth := sampleDepths[depthCode]
	if depth == -2 {
		return 0, ErrReservedField
	}
	meta.SampleDepth = depth
	reserved, err = d.br.ReadUint(1)
	if err != nil {
		return 0, err
	}
	if reserved != 0 {
		return 0, ErrReservedField
	}

	// The frame index (fixed block size) or first-sample offset (variable).
	position, err := d.readPosition()
	if err != nil {
		return 0, err
	}
	if blockStrategy == 0 {
		if position>>31 != 0 {
			return 0, ErrFrameIndexTooLarge
		}
		meta.FrameIndex = position
		meta.SampleOffset = -1
	} else {
		meta.SampleOffset = position
		meta.FrameIndex = -1
	}

	blockSize, err := d.decodeBlockSize(blockSizeCode)
	if err != nil {
		return 0, err
	}
	for ch := 0; ch < meta.NumChannels; ch++ {
		if offset > len(out[ch])-blockSize {
			return 0, ErrBufferTooSmall
		}
	}
	d.blockSize = blockSize
	meta.BlockSize = blockSize

	meta.SampleRate, err = d.decodeSampleRate(sampleRateCode)
	if err != nil {
		return 0, err
	}

	computed := d.br.CRC8()
	stored, err := d.br.ReadUint(8)
	if err != nil {
		return 0, err
	}
	if uint8(stored) != computed {
		return 0, ErrCRC8Mismatch
	}
	return int(chanAsgn), nil
}

// readPosition reads the 1 to 7 byte UTF-8 style coded number holding the
// frame index or sample offset. The longest form carries 6 + 5*6 = 36 bits,
// so the result needs no separate upper-bound check.
func (d *FrameDecoder) readPosition() (int64, error) {
	head, err := d.br.ReadUint(8)
	if err != nil {
		return 0, err
	}
	n := bits.LeadingZeros8(^uint8(head)) // number of leading 1s in the byte
	switch {
	case n == 0:
		return int64(head), nil
	case n == 1 || n == 8:
		return 0, ErrInvalidVarInt
	}
	v := int64(head & (0x7F >> n))
	for i := 0; i < n-1; i++ {
		b, err := d.br.ReadUint(8)
		if err != nil {
			return 0, err
		}
		if b&0xC0 != 0x80 {
			return 0, ErrInvalidVarInt
		}
		v = v<<6 | int64(b&0x3F)
	}
	return v, nil
}

// decodeBlockSize maps the 4-bit block size code to samples per channel,
// reading 0 to 2 extra bytes. The result is in the range [1, 65536].
func (d *FrameDecoder) decodeBlockSize(code uint32) (int, error) {
	switch {
	case code == 0:
		return 0, ErrReservedField
	case code == 1:
		return 192, nil
	case code <= 5:
		return 576 << (code - 2), nil
	case code == 6:
		b, err := d.br.ReadUint(8)
		if err != nil {
			return 0, err
		}
		return int(b) + 1, nil
	case code == 7:
		b, err := d.br.ReadUint(16)
		if err != nil {
			return 0, err
		}
		return int(b) + 1, nil
	default: // 8 to 15
		return 256 << (code - 8), nil
	}
}

// decodeSampleRate maps the 4-bit sample rate code to a rate in Hz, reading
// 0 to 2 extra bytes. Code 0 yields -1: the frame defers to stream metadata.
func (d *FrameDecoder) decodeSampleRate(code uint32) (int, error) {
	switch code {
	case 12:
		b, err := d.br.ReadUint(8)
		if err != nil {
			return 0, err
		}
		return int(b), nil
	case 13:
		b, err := d.br.ReadUint(16)
		if err != nil {
			return 0, err
		}
		return int(b), nil
	case 14:
		b, err := d.br.ReadUint(16)
		if err != nil {
			return 0, err
		}
		return int(b) * 10, nil
	case 15:
		return 0, ErrInvalidSampleRate
	default: // 0 to 11
		return sampleRates[code], nil
	}
}
