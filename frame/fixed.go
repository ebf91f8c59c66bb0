package frame

import "github.com/waveflac/flac/internal/bitutil"

// fixedCoeffs holds the fixed-predictor coefficients per order, applied as
// x[i] += sum(c[j] * x[i-1-j]) with no shift (§4.4).
var fixedCoeffs = [5][]int64{
	{},
	{1},
	{2, -1},
	{3, -3, 1},
	{4, -6, 4, -1},
}

// decodeFixed reads order warmup samples, decodes the residual, and applies
// the fixed-predictor restoration for the given order.
func decodeFixed(br *bitutil.Reader, sf *Subframe, bps uint8, blockSize, order int) error {
	samples := make([]int32, blockSize)
	for i := 0; i < order; i++ {
		v, err := br.Int(bps)
		if err != nil {
			return err
		}
		samples[i] = int32(v)
	}

	residuals, err := decodeResiduals(br, blockSize, order)
	if err != nil {
		return err
	}

	coeffs := fixedCoeffs[order]
	for i := order; i < blockSize; i++ {
		var sum int64
		for j, c := range coeffs {
			sum += c * int64(samples[i-1-j])
		}
		samples[i] = int32(sum + int64(residuals[i-order]))
	}

	sf.Samples = samples
	return nil
}
