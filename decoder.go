// decoder.go implements the public FrameDecoder API for FLAC frame decoding.

package goflac

import (
	"fmt"
	"io"
	"math"

	"github.com/thesyncim/goflac/internal/bitstream"
)

// maxBlockSize is the largest block size a frame header can express
// (block size code 7: a 16-bit field plus one).
const maxBlockSize = 65536

// minFrameSize is the smallest possible encoded frame: sync and header
// fields, position byte, CRC-8, one subframe, padding and CRC-16.
const minFrameSize = 10

// FrameMetadata describes one successfully decoded frame. A fresh value is
// returned per DecodeFrame call; the caller owns it outright.
type FrameMetadata struct {
	// FrameIndex is the frame number for fixed-block-size streams, in the
	// range [0, 2^31). It is -1 for variable-block-size streams.
	FrameIndex int64

	// SampleOffset is the offset of the frame's first sample for
	// variable-block-size streams, in the range [0, 2^36). It is -1 for
	// fixed-block-size streams.
	SampleOffset int64

	// NumChannels is the number of audio channels, 1 to 8.
	NumChannels int

	// SampleDepth is the bits per sample: 8, 12, 16, 20 or 24. It is -1 when
	// the frame defers to the stream's metadata.
	SampleDepth int

	// SampleRate is the sample rate in Hz. It is -1 when the frame defers to
	// the stream's metadata.
	SampleRate int

	// BlockSize is the number of samples per channel, 1 to 65536.
	BlockSize int

	// FrameSize is the encoded frame length in bytes, including both CRCs.
	FrameSize int
}

// FrameDecoder decodes FLAC frames from a byte stream into PCM samples.
//
// A FrameDecoder owns reusable scratch buffers and per-call decode state, so
// it is NOT safe for concurrent or reentrant use: at most one DecodeFrame
// call may be outstanding per instance.
type FrameDecoder struct {
	br *bitstream.Reader

	// Scratch buffers for up to two jointly coded channels, sized to the
	// maximum block size. Stereo methods like mid/side need two, and all
	// other multi-channel audio is processed one channel at a time.
	temp0 []int64
	temp1 []int64

	// blockSize is the current frame's samples per channel. It is valid only
	// while DecodeFrame is on the call stack, and -1 otherwise.
	blockSize int
}

// NewFrameDecoder creates a frame decoder reading from r, which must be
// positioned at a frame boundary.
func NewFrameDecoder(r io.Reader) *FrameDecoder {
	return &FrameDecoder{
		br:        bitstream.NewReader(r),
		temp0:     make([]int64, maxBlockSize),
		temp1:     make([]int64, maxBlockSize),
		blockSize: -1,
	}
}

// Reset rebinds the decoder to a new byte source positioned at a frame
// boundary. After a format error the decoder does not resynchronize on its
// own; the caller locates the next frame and hands the stream back here.
func (d *FrameDecoder) Reset(r io.Reader) {
	d.br = bitstream.NewReader(r)
	d.blockSize = -1
}

// DecodeFrame reads the next frame from the stream, decodes it, and stores
// the output samples into out[ch][offset : offset+blockSize] for each of the
// frame's channels. It returns a new metadata value describing the frame.
//
// A frame may have up to 8 channels and 65536 samples per channel, so the
// output buffers need to be sized accordingly. If the stream ends cleanly
// before any byte of a new frame is read, DecodeFrame returns io.EOF.
func (d *FrameDecoder) DecodeFrame(out [][]int32, offset int) (*FrameMetadata, error) {
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: no output channels", ErrInvalidArgument)
	}
	if offset < 0 || offset > len(out[0]) {
		return nil, fmt.Errorf("%w: offset %d out of range", ErrInvalidArgument, offset)
	}

	startByte := d.br.ByteCount()
	d.br.ResetCRCs()
	first, err := d.br.ReadByte()
	if err != nil {
		if err == io.EOF {
			return nil, io.EOF // clean stream boundary: no more frames
		}
		return nil, err
	}

	meta := &FrameMetadata{}
	chanAsgn, err := d.readHeader(first, meta, out, offset)
	if err != nil {
		return nil, err
	}

	if err := d.decodeSubframes(meta.SampleDepth, chanAsgn, out, offset); err != nil {
		return nil, err
	}

	// Advance to the next byte boundary, verifying zero padding.
	pad, n, err := d.br.AlignToByte()
	if err != nil {
		return nil, err
	}
	if n > 0 && pad != 0 {
		return nil, ErrInvalidPadding
	}

	computed := d.br.CRC16()
	stored, err := d.br.ReadUint(16)
	if err != nil {
		return nil, err
	}
	if uint16(stored) != computed {
		return nil, ErrCRC16Mismatch
	}

	frameSize := d.br.ByteCount() - startByte
	if frameSize < minFrameSize {
		return nil, fmt.Errorf("%w: impossible frame size %d", ErrInternal, frameSize)
	}
	if frameSize > math.MaxInt32 {
		return nil, ErrFrameTooLarge
	}
	meta.FrameSize = int(frameSize)
	d.blockSize = -1
	return meta, nil
}
