// Package goflac implements a FLAC audio frame decoder in pure Go.
//
// FLAC (Free Lossless Audio Codec) stores audio as a sequence of
// independently decodable frames, each covering one block of samples across
// up to 8 channels. This package decodes single frames into linear PCM; it
// does not parse stream containers or metadata blocks, seek, or encode.
// It requires no cgo dependencies.
//
// # Frame Structure
//
// Every frame starts with a header:
//   - 14-bit sync code 0x3FFE, a reserved bit, and a blocking-strategy bit
//   - coded block size, sample rate, channel assignment and sample depth
//   - a variable-length (1 to 7 byte) frame index or sample offset
//   - a CRC-8 over all header bytes
//
// The header is followed by one subframe per channel, each using constant,
// verbatim, fixed-prediction or linear-predictive (LPC) coding with
// partitioned Rice-coded residuals, then zero padding to a byte boundary
// and a CRC-16 over the whole frame.
//
// # Usage
//
// A FrameDecoder reads frames sequentially from an io.Reader positioned at
// a frame boundary:
//
//	dec := goflac.NewFrameDecoder(r)
//	out := make([][]int32, 8)
//	for i := range out {
//	    out[i] = make([]int32, 65536)
//	}
//	for {
//	    meta, err := dec.DecodeFrame(out, 0)
//	    if err == io.EOF {
//	        break // no more frames
//	    }
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    process(out, meta)
//	}
//
// A FrameDecoder maintains internal scratch state and is NOT safe for
// concurrent use. Each goroutine should create its own instance.
package goflac
