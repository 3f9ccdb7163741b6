// Package bitstream provides the bit-level reader that backs FLAC frame
// decoding: MSB-first fixed-width field reads, byte alignment, running
// CRC-8/CRC-16 accumulation over every consumed byte, and batched decoding
// of Rice-coded values.
package bitstream

import (
	"io"
	"math/bits"
)

// chunkSize is the read-ahead buffer size for the underlying source.
const chunkSize = 4096

// Reader consumes a byte stream as a sequence of big-endian bit fields.
//
// A Reader is stateful and NOT safe for concurrent use. Between field reads
// it holds at most 7 unconsumed bits, so the CRC accumulators always cover
// exactly the bytes consumed so far whenever the stream is byte-aligned.
//
// End-of-input handling distinguishes two cases: ReadByte on a byte boundary
// reports a clean end of stream as io.EOF, while running out of input in the
// middle of any other field reports io.ErrUnexpectedEOF.
type Reader struct {
	src io.Reader

	buf []byte // read-ahead chunk from src
	pos int    // next unconsumed byte in buf
	end int    // number of valid bytes in buf

	bitBuf   uint64 // unconsumed bits in the low bitCount bits (above may hold garbage)
	bitCount uint   // number of unconsumed bits, 0 to 7 between field reads

	byteCount int64 // total bytes consumed from src

	crc8  uint8
	crc16 uint16
}

// NewReader returns a Reader consuming bits from src.
func NewReader(src io.Reader) *Reader {
	return &Reader{src: src, buf: make([]byte, chunkSize)}
}

// fetchByte consumes the next byte from the source, folding it into both
// CRC accumulators and the byte count. A clean end of input is io.EOF.
func (r *Reader) fetchByte() (byte, error) {
	for r.pos >= r.end {
		n, err := r.src.Read(r.buf)
		if n > 0 {
			r.pos, r.end = 0, n
			break
		}
		if err != nil {
			return 0, err
		}
	}
	b := r.buf[r.pos]
	r.pos++
	r.byteCount++
	r.crc8 = crc8Table[r.crc8^b]
	r.crc16 = r.crc16<<8 ^ crc16Table[byte(r.crc16>>8)^b]
	return b, nil
}

// ReadUint reads an n-bit unsigned big-endian field, 0 <= n <= 32.
// Running out of input mid-field reports io.ErrUnexpectedEOF.
func (r *Reader) ReadUint(n uint) (uint32, error) {
	if n > 32 {
		panic("bitstream: bit count out of range")
	}
	for r.bitCount < n {
		b, err := r.fetchByte()
		if err != nil {
			if err == io.EOF {
				err = io.ErrUnexpectedEOF
			}
			return 0, err
		}
		r.bitBuf = r.bitBuf<<8 | uint64(b)
		r.bitCount += 8
	}
	r.bitCount -= n
	v := uint32(r.bitBuf >> r.bitCount)
	if n < 32 {
		v &= 1<<n - 1
	}
	return v, nil
}

// ReadSignedInt reads an n-bit two's-complement field and sign-extends it.
func (r *Reader) ReadSignedInt(n uint) (int32, error) {
	v, err := r.ReadUint(n)
	if err != nil {
		return 0, err
	}
	return int32(v<<(32-n)) >> (32 - n), nil
}

// ReadByte consumes the next byte. The stream must be byte-aligned; a clean
// end of input is reported as io.EOF so callers can detect stream boundaries.
func (r *Reader) ReadByte() (byte, error) {
	if r.bitCount != 0 {
		panic("bitstream: ReadByte on unaligned stream")
	}
	return r.fetchByte()
}

// AlignToByte skips ahead to the next byte boundary. It returns the skipped
// bits (MSB-first) and their count so the caller can validate padding.
func (r *Reader) AlignToByte() (uint32, int, error) {
	n := r.bitCount
	v, err := r.ReadUint(n)
	return v, int(n), err
}

// ByteCount reports the cumulative number of bytes consumed from the source.
func (r *Reader) ByteCount() int64 {
	return r.byteCount
}

// ResetCRCs restarts both CRC accumulators. Call once per frame, on a byte
// boundary, before reading the first header byte.
func (r *Reader) ResetCRCs() {
	r.crc8 = 0
	r.crc16 = 0
}

// CRC8 returns the CRC-8 of every byte consumed since the last ResetCRCs.
func (r *Reader) CRC8() uint8 {
	return r.crc8
}

// CRC16 returns the CRC-16 of every byte consumed since the last ResetCRCs.
func (r *Reader) CRC16() uint16 {
	return r.crc16
}

// readUnary counts zero bits up to a terminating one bit, consuming the
// terminator. The count is the Rice quotient of the value being decoded.
func (r *Reader) readUnary() (uint64, error) {
	var q uint64
	for {
		if r.bitCount == 0 {
			b, err := r.fetchByte()
			if err != nil {
				if err == io.EOF {
					err = io.ErrUnexpectedEOF
				}
				return 0, err
			}
			r.bitBuf = r.bitBuf<<8 | uint64(b)
			r.bitCount = 8
		}
		window := uint32(r.bitBuf) & (1<<r.bitCount - 1)
		if window == 0 {
			q += uint64(r.bitCount)
			r.bitCount = 0
			continue
		}
		zeros := r.bitCount - uint(bits.Len32(window))
		q += uint64(zeros)
		r.bitCount -= zeros + 1
		return q, nil
	}
}

// ReadRiceSignedInts bulk-decodes len(dst) Rice-coded values with the given
// parameter. Each value is a unary quotient, param remainder bits, and a
// zigzag mapping from unsigned code space back to signed.
func (r *Reader) ReadRiceSignedInts(param uint, dst []int64) error {
	for i := range dst {
		q, err := r.readUnary()
		if err != nil {
			return err
		}
		rem, err := r.ReadUint(param)
		if err != nil {
			return err
		}
		v := q<<param | uint64(rem)
		dst[i] = int64(v>>1) ^ -int64(v&1)
	}
	return nil
}
