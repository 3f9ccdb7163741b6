// residual.go decodes the partitioned Rice-coded residual section of a
// subframe.

package goflac

// readResiduals reads the residual coding method, partition layout and
// per-partition parameters, storing decoded residuals into
// result[warmup : d.blockSize].
//
// Partition 0 holds (blockSize >> partitionOrder) - warmup residuals; every
// later partition holds blockSize >> partitionOrder. An all-ones parameter
// escapes to raw storage: a 5-bit width followed by plain signed fields.
func (d *FrameDecoder) readResiduals(warmup int, result []int64) error {
	method, err := d.br.ReadUint(2)
	if err != nil {
		return err
	}
	if method >= 2 {
		return ErrReservedField
	}
	paramBits := uint(4 + method)      // 4-bit parameters for method 0, 5-bit for method 1
	escape := uint32(1)<<paramBits - 1 // all-ones parameter marks a raw partition

	partitionOrder, err := d.br.ReadUint(4)
	if err != nil {
		return err
	}
	numPartitions := 1 << partitionOrder
	if d.blockSize%numPartitions != 0 {
		return ErrIndivisiblePartitions
	}

	inc := d.blockSize >> partitionOrder
	idx := warmup
	for partEnd := inc; partEnd <= d.blockSize; partEnd += inc {
		param, err := d.br.ReadUint(paramBits)
		if err != nil {
			return err
		}
		if param == escape {
			width, err := d.br.ReadUint(5)
			if err != nil {
				return err
			}
			for ; idx < partEnd; idx++ {
				v, err := d.br.ReadSignedInt(uint(width))
				if err != nil {
					return err
				}
				result[idx] = int64(v)
			}
		} else if idx < partEnd {
			if err := d.br.ReadRiceSignedInts(uint(param), result[idx:partEnd]); err != nil {
				return err
			}
			idx = partEnd
		}
	}
	return nil
}
