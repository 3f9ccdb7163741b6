// errors.go defines public error types for the goflac package.

package goflac

import (
	"errors"
	"fmt"
)

// Error categories. Every error returned by DecodeFrame wraps exactly one of
// these, except io.EOF (no more frames at a clean stream boundary) and
// io.ErrUnexpectedEOF (input ran out in the middle of a frame). Use
// errors.Is to test either a category or a specific condition below.
var (
	// ErrFormat indicates malformed frame data. The current frame cannot be
	// decoded; the caller may resynchronize the input and try the next one.
	ErrFormat = errors.New("goflac: malformed frame")

	// ErrInternal indicates corruption that slipped past the checksums, or a
	// decoder fault. The decode session should not be continued.
	ErrInternal = errors.New("goflac: internal decoder error")

	// ErrInvalidArgument indicates unusable caller-supplied arguments, such
	// as an undersized output buffer. The input stream may have been
	// partially consumed by the failed call.
	ErrInvalidArgument = errors.New("goflac: invalid argument")
)

// Format error conditions. Each wraps ErrFormat.
var (
	// ErrSyncMismatch indicates the 14-bit frame sync code was not found.
	ErrSyncMismatch = formatError("sync code expected")

	// ErrReservedField indicates a reserved bit or field value was used.
	ErrReservedField = formatError("reserved field value")

	// ErrInvalidVarInt indicates a malformed UTF-8 style coded number in the
	// frame index / sample offset field.
	ErrInvalidVarInt = formatError("invalid UTF-8 coded number")

	// ErrFrameIndexTooLarge indicates a fixed-block-size frame index that
	// does not fit in 31 bits.
	ErrFrameIndexTooLarge = formatError("frame index too large")

	// ErrInvalidSampleRate indicates the invalid sample rate code 15.
	ErrInvalidSampleRate = formatError("invalid sample rate")

	// ErrInvalidPadding indicates a non-zero padding bit, either in a
	// subframe header or in the zero padding before the frame CRC-16.
	ErrInvalidPadding = formatError("invalid padding bit")

	// ErrInvalidWastedBits indicates a wasted-bits count that reaches or
	// exceeds the sample depth.
	ErrInvalidWastedBits = formatError("wasted bits-per-sample exceeds sample depth")

	// ErrInvalidLPCPrecision indicates the invalid LPC precision code 15.
	ErrInvalidLPCPrecision = formatError("invalid LPC precision")

	// ErrInvalidLPCShift indicates a negative LPC coefficient shift.
	ErrInvalidLPCShift = formatError("invalid LPC shift")

	// ErrIndivisiblePartitions indicates a Rice partition count that does
	// not evenly divide the block size.
	ErrIndivisiblePartitions = formatError("block size not divisible by number of Rice partitions")

	// ErrCRC8Mismatch indicates the frame header failed its CRC-8 check.
	ErrCRC8Mismatch = formatError("CRC-8 mismatch")

	// ErrCRC16Mismatch indicates the frame failed its CRC-16 check.
	ErrCRC16Mismatch = formatError("CRC-16 mismatch")

	// ErrFrameTooLarge indicates an encoded frame larger than 2^31-1 bytes.
	ErrFrameTooLarge = formatError("frame size exceeds 32-bit limit")
)

// ErrBitDepthOverflow indicates a reconstructed sample outside the signed
// range of the frame's sample depth. It wraps ErrInternal: the checksums
// failed to catch corruption before reconstruction, or the decoder is at
// fault, so the session should be abandoned.
var ErrBitDepthOverflow = fmt.Errorf("%w: decoded sample exceeds bit depth", ErrInternal)

// Argument error conditions. Each wraps ErrInvalidArgument.
var (
	// ErrBufferTooSmall indicates the output buffers cannot hold the frame's
	// channels or block of samples at the requested offset.
	ErrBufferTooSmall = fmt.Errorf("%w: output buffer too small", ErrInvalidArgument)

	// ErrUnknownSampleDepth indicates a frame that defers its sample depth
	// to stream metadata, which a standalone frame decode cannot resolve.
	ErrUnknownSampleDepth = fmt.Errorf("%w: frame defers sample depth to stream metadata", ErrInvalidArgument)
)

func formatError(reason string) error {
	return fmt.Errorf("%w: %s", ErrFormat, reason)
}
