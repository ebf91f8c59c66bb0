package frame

import (
	"github.com/waveflac/flac/internal/bitutil"
	"github.com/waveflac/flac/internal/ferrors"
)

// decodeResiduals decodes the partitioned Rice-coded residual for a subframe
// of blockSize samples and the given predictor order (§4.4.2).
func decodeResiduals(br *bitutil.Reader, blockSize, order int) ([]int32, error) {
	const component = "frame.decodeResiduals"

	method, err := br.Uint(2)
	if err != nil {
		return nil, err
	}
	var paramBits uint8
	switch method {
	case 0:
		paramBits = 4
	case 1:
		paramBits = 5
	default:
		return nil, ferrors.NewProtocol(component, "reserved residual coding method %d", method)
	}
	escape := uint64(1)<<paramBits - 1

	partOrder, err := br.Uint(4)
	if err != nil {
		return nil, err
	}
	partitionCount := 1 << partOrder
	if blockSize%partitionCount != 0 {
		return nil, ferrors.NewProtocol(component, "partition count %d does not divide block size %d", partitionCount, blockSize)
	}
	partitionSize := blockSize / partitionCount

	residuals := make([]int32, blockSize-order)
	idx := 0
	for i := 0; i < partitionCount; i++ {
		start := i * partitionSize
		end := (i + 1) * partitionSize
		if i == 0 {
			start = order
		}

		param, err := br.Uint(paramBits)
		if err != nil {
			return nil, err
		}
		if param == escape {
			bitCount, err := br.Uint(5)
			if err != nil {
				return nil, err
			}
			for j := start; j < end; j++ {
				if bitCount == 0 {
					residuals[idx] = 0
				} else {
					v, err := br.Int(uint8(bitCount))
					if err != nil {
						return nil, err
					}
					residuals[idx] = int32(v)
				}
				idx++
			}
			continue
		}

		k := uint8(param)
		for j := start; j < end; j++ {
			q, err := br.Unary()
			if err != nil {
				return nil, err
			}
			var r uint64
			if k > 0 {
				r, err = br.Uint(k)
				if err != nil {
					return nil, err
				}
			}
			u := uint64(q)<<k | r
			residuals[idx] = int32(bitutil.UnfoldZigZag(u))
			idx++
		}
	}
	return residuals, nil
}
