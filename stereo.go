// stereo.go routes per-channel subframe decoding and reverses the joint
// stereo encodings: left/side, side/right and mid/side.

package goflac

// decodeSubframes decodes every subframe of the frame, undoes stereo
// decorrelation where applicable, and writes the final samples to
// out[0 : numChannels][offset : offset+d.blockSize].
func (d *FrameDecoder) decodeSubframes(sampleDepth, chanAsgn int, out [][]int32, offset int) error {
	if sampleDepth == -1 {
		return ErrUnknownSampleDepth
	}

	switch {
	case chanAsgn <= 7:
		// 1 to 8 independently coded channels.
		numChannels := chanAsgn + 1
		for ch := 0; ch < numChannels; ch++ {
			if err := d.decodeSubframe(sampleDepth, d.temp0); err != nil {
				return err
			}
			outChan := out[ch]
			for i := 0; i < d.blockSize; i++ {
				v, ok := checkBitDepth(d.temp0[i], sampleDepth)
				if !ok {
					return ErrBitDepthOverflow
				}
				outChan[offset+i] = v
			}
		}

	case chanAsgn <= 10:
		// Side-coded stereo. The side channel is stored one bit deeper than
		// the nominal depth: channel 1 for left/side and mid/side, channel 0
		// for side/right.
		extra0, extra1 := 0, 1
		if chanAsgn == 9 {
			extra0, extra1 = 1, 0
		}
		if err := d.decodeSubframe(sampleDepth+extra0, d.temp0); err != nil {
			return err
		}
		if err := d.decodeSubframe(sampleDepth+extra1, d.temp1); err != nil {
			return err
		}

		switch chanAsgn {
		case 8: // left/side: right = left - side
			for i := 0; i < d.blockSize; i++ {
				d.temp1[i] = d.temp0[i] - d.temp1[i]
			}
		case 9: // side/right: left = side + right
			for i := 0; i < d.blockSize; i++ {
				d.temp0[i] += d.temp1[i]
			}
		case 10: // mid/side: the side's low bit completes the doubled mid
			for i := 0; i < d.blockSize; i++ {
				s := d.temp1[i]
				m := d.temp0[i]<<1 | s&1
				d.temp0[i] = (m + s) >> 1
				d.temp1[i] = (m - s) >> 1
			}
		}

		outLeft, outRight := out[0], out[1]
		for i := 0; i < d.blockSize; i++ {
			l, ok := checkBitDepth(d.temp0[i], sampleDepth)
			if !ok {
				return ErrBitDepthOverflow
			}
			r, ok := checkBitDepth(d.temp1[i], sampleDepth)
			if !ok {
				return ErrBitDepthOverflow
			}
			outLeft[offset+i] = l
			outRight[offset+i] = r
		}

	default: // 11 to 15: rejected by the header parser already
		return ErrReservedField
	}
	return nil
}

// checkBitDepth reports whether v fits a signed depth-bit integer, narrowing
// it for output. For depth 16 the valid range is [-32768, 32767].
func checkBitDepth(v int64, depth int) (int32, bool) {
	if s := v >> (depth - 1); s != 0 && s != -1 {
		return 0, false
	}
	return int32(v), true
}
