// subframe.go decodes one channel's subframe: the type and wasted-bits
// prefix, the constant, verbatim, fixed-prediction and LPC encodings, and
// the predictor reconstruction shared by the latter two.

package goflac

// fixedCoefs holds the predictor coefficients for fixed-prediction
// orders 0 to 4. Fixed predictors always use shift 0.
var fixedCoefs = [5][]int32{
	{},
	{1},
	{2, -1},
	{3, -3, 1},
	{4, -6, 4, -1},
}

// decodeSubframe reads and decodes a single subframe into
// result[0 : d.blockSize]. sampleDepth is the channel's effective depth,
// already adjusted for side-coded stereo.
func (d *FrameDecoder) decodeSubframe(sampleDepth int, result []int64) error {
	pad, err := d.br.ReadUint(1)
	if err != nil {
		return err
	}
	if pad != 0 {
		return ErrInvalidPadding
	}
	typ, err := d.br.ReadUint(6)
	if err != nil {
		return err
	}
	flag, err := d.br.ReadUint(1)
	if err != nil {
		return err
	}
	shift := int(flag) // wasted bits per sample
	if flag == 1 {
		// Unary coding: count additional wasted bits up to a 1 terminator.
		// The count must leave at least one effective bit of depth.
		for {
			bit, err := d.br.ReadUint(1)
			if err != nil {
				return err
			}
			if bit != 0 {
				break
			}
			shift++
			if shift >= sampleDepth {
				return ErrInvalidWastedBits
			}
		}
	}
	sampleDepth -= shift

	switch {
	case typ == 0:
		// Constant coding: one value broadcast to the whole block.
		v, err := d.br.ReadSignedInt(uint(sampleDepth))
		if err != nil {
			return err
		}
		for i := 0; i < d.blockSize; i++ {
			result[i] = int64(v)
		}
	case typ == 1:
		// Verbatim coding: every sample stored literally.
		for i := 0; i < d.blockSize; i++ {
			v, err := d.br.ReadSignedInt(uint(sampleDepth))
			if err != nil {
				return err
			}
			result[i] = int64(v)
		}
	case typ >= 8 && typ <= 12:
		if err := d.decodeFixedSubframe(int(typ)-8, sampleDepth, result); err != nil {
			return err
		}
	case typ >= 32:
		if err := d.decodeLPCSubframe(int(typ)-31, sampleDepth, result); err != nil {
			return err
		}
	default:
		return ErrReservedField
	}

	// Restore the factored-out trailing zero bits.
	if shift > 0 {
		for i := 0; i < d.blockSize; i++ {
			result[i] <<= shift
		}
	}
	return nil
}

// decodeFixedSubframe decodes a fixed-prediction subframe of the given
// order (0 to 4) into result[0 : d.blockSize].
func (d *FrameDecoder) decodeFixedSubframe(order, sampleDepth int, result []int64) error {
	// Unpredicted warm-up samples.
	for i := 0; i < order; i++ {
		v, err := d.br.ReadSignedInt(uint(sampleDepth))
		if err != nil {
			return err
		}
		result[i] = int64(v)
	}
	if err := d.readResiduals(order, result); err != nil {
		return err
	}
	restoreLPC(result[:d.blockSize], fixedCoefs[order], 0)
	return nil
}

// decodeLPCSubframe decodes a linear-predictive subframe of the given order
// (1 to 32) into result[0 : d.blockSize].
func (d *FrameDecoder) decodeLPCSubframe(order, sampleDepth int, result []int64) error {
	// Unpredicted warm-up samples.
	for i := 0; i < order; i++ {
		v, err := d.br.ReadSignedInt(uint(sampleDepth))
		if err != nil {
			return err
		}
		result[i] = int64(v)
	}

	// Quantized coefficient parameters.
	precCode, err := d.br.ReadUint(4)
	if err != nil {
		return err
	}
	precision := uint(precCode) + 1
	if precision == 16 {
		return ErrInvalidLPCPrecision
	}
	shift, err := d.br.ReadSignedInt(5)
	if err != nil {
		return err
	}
	if shift < 0 {
		return ErrInvalidLPCShift
	}

	coefs := make([]int32, order)
	for i := range coefs {
		c, err := d.br.ReadSignedInt(precision)
		if err != nil {
			return err
		}
		coefs[i] = c
	}

	if err := d.readResiduals(order, result); err != nil {
		return err
	}
	restoreLPC(result[:d.blockSize], coefs, int(shift))
	return nil
}

// restoreLPC applies the prediction recurrence in place: each sample past
// the warm-up region becomes its residual plus the arithmetically shifted
// dot product of the previous len(coefs) samples with the coefficients.
// The recurrence is strictly sequential; warm-up samples are untouched.
func restoreLPC(result []int64, coefs []int32, shift int) {
	for i := len(coefs); i < len(result); i++ {
		var sum int64
		for j, c := range coefs {
			sum += result[i-1-j] * int64(c)
		}
		result[i] += sum >> shift
	}
}
