// frame_test.go holds test-side builders that assemble bit-exact synthetic
// frames, including both CRCs, for the decoder tests.

package goflac

import (
	"github.com/thesyncim/goflac/internal/bitstream"
)

// bitWriter appends MSB-first bit fields to a byte slice.
type bitWriter struct {
	data   []byte
	bitBuf uint64
	nBits  uint
}

func (w *bitWriter) writeBits(v uint64, n uint) {
	if n == 0 {
		return
	}
	w.bitBuf = w.bitBuf<<n | v&(1<<n-1)
	w.nBits += n
	for w.nBits >= 8 {
		w.nBits -= 8
		w.data = append(w.data, byte(w.bitBuf>>w.nBits))
	}
}

func (w *bitWriter) writeSigned(v int64, n uint) {
	w.writeBits(uint64(v), n)
}

// writeRice emits one Rice code: zigzag to unsigned, unary quotient,
// param remainder bits.
func (w *bitWriter) writeRice(v int64, param uint) {
	u := uint64(v<<1) ^ uint64(v>>63)
	q := u >> param
	for i := uint64(0); i < q; i++ {
		w.writeBits(0, 1)
	}
	w.writeBits(1, 1)
	w.writeBits(u, param)
}

// writePosition emits the UTF-8 style coded number used by the frame
// index / sample offset field.
func (w *bitWriter) writePosition(v uint64) {
	if v < 0x80 {
		w.writeBits(v, 8)
		return
	}
	k := 1 // number of continuation bytes
	for v >= 1<<(6+5*k) {
		k++
	}
	ones := uint(k + 1)
	head := uint64(0xFF&^(0xFF>>ones)) | v>>(6*k)
	w.writeBits(head, 8)
	for i := k - 1; i >= 0; i-- {
		w.writeBits(0x80|v>>(6*i)&0x3F, 8)
	}
}

// testFrame holds the header fields of a synthetic frame.
type testFrame struct {
	variableBlocking bool
	position         uint64
	blockSizeCode    uint64
	blockSize        int // written after the position field for codes 6 and 7
	sampleRateCode   uint64
	sampleRate       int // written for codes 12 to 14
	chanAsgn         uint64
	depthCode        uint64
	padOnes          bool // fill frame padding with ones instead of zeros
}

// buildFrame assembles a complete frame: header with CRC-8, the subframe
// bits written by body, padding to a byte boundary, and the CRC-16.
func buildFrame(f testFrame, body func(w *bitWriter)) []byte {
	w := &bitWriter{}
	w.writeBits(0x3FFE, 14)
	w.writeBits(0, 1)
	strategy := uint64(0)
	if f.variableBlocking {
		strategy = 1
	}
	w.writeBits(strategy, 1)
	w.writeBits(f.blockSizeCode, 4)
	w.writeBits(f.sampleRateCode, 4)
	w.writeBits(f.chanAsgn, 4)
	w.writeBits(f.depthCode, 3)
	w.writeBits(0, 1)
	w.writePosition(f.position)
	switch f.blockSizeCode {
	case 6:
		w.writeBits(uint64(f.blockSize-1), 8)
	case 7:
		w.writeBits(uint64(f.blockSize-1), 16)
	}
	switch f.sampleRateCode {
	case 12:
		w.writeBits(uint64(f.sampleRate), 8)
	case 13:
		w.writeBits(uint64(f.sampleRate), 16)
	case 14:
		w.writeBits(uint64(f.sampleRate/10), 16)
	}
	w.writeBits(uint64(bitstream.CRC8(w.data)), 8)

	if body != nil {
		body(w)
	}

	pad := uint64(0)
	if f.padOnes {
		pad = 1
	}
	for w.nBits != 0 {
		w.writeBits(pad, 1)
	}
	w.writeBits(uint64(bitstream.CRC16(w.data)), 16)
	return w.data
}

// writeSubframeHeader emits the padding bit, 6-bit type code and the
// wasted-bits prefix (wasted >= 1 means that many factored-out zero bits).
func writeSubframeHeader(w *bitWriter, typ uint64, wasted int) {
	w.writeBits(0, 1)
	w.writeBits(typ, 6)
	if wasted == 0 {
		w.writeBits(0, 1)
		return
	}
	w.writeBits(1, 1)
	for i := 1; i < wasted; i++ {
		w.writeBits(0, 1)
	}
	w.writeBits(1, 1)
}

// writeConstantSubframe emits a constant subframe at the given effective
// depth (the nominal depth minus wasted bits).
func writeConstantSubframe(w *bitWriter, value int64, depth uint) {
	writeSubframeHeader(w, 0, 0)
	w.writeSigned(value, depth)
}

// writeVerbatimSubframe emits a verbatim subframe at the given effective depth.
func writeVerbatimSubframe(w *bitWriter, samples []int64, depth uint) {
	writeSubframeHeader(w, 1, 0)
	for _, s := range samples {
		w.writeSigned(s, depth)
	}
}

// writeRiceSection emits a method-0 residual section with a single
// partition using one Rice parameter.
func writeRiceSection(w *bitWriter, param uint, residuals []int64) {
	w.writeBits(0, 2)
	w.writeBits(0, 4)
	w.writeBits(uint64(param), 4)
	for _, v := range residuals {
		w.writeRice(v, param)
	}
}

// writeFixedSubframe emits a fixed-prediction subframe: warm-up samples at
// the given depth and a single-partition Rice residual section.
func writeFixedSubframe(w *bitWriter, order int, depth uint, warmup, residuals []int64, param uint) {
	writeSubframeHeader(w, uint64(8+order), 0)
	for _, s := range warmup {
		w.writeSigned(s, depth)
	}
	writeRiceSection(w, param, residuals)
}

// writeLPCSubframe emits a linear-predictive subframe with quantized
// coefficients and a single-partition Rice residual section.
func writeLPCSubframe(w *bitWriter, depth uint, warmup []int64, coefs []int64, precision uint, shift int64, residuals []int64, param uint) {
	writeSubframeHeader(w, uint64(31+len(coefs)), 0)
	for _, s := range warmup {
		w.writeSigned(s, depth)
	}
	w.writeBits(uint64(precision-1), 4)
	w.writeSigned(shift, 5)
	for _, c := range coefs {
		w.writeSigned(c, precision)
	}
	writeRiceSection(w, param, residuals)
}

// newOutput allocates channel buffers for decoding.
func newOutput(channels, samples int) [][]int32 {
	out := make([][]int32, channels)
	for i := range out {
		out[i] = make([]int32, samples)
	}
	return out
}
