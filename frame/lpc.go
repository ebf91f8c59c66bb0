package frame

import "github.com/waveflac/flac/internal/bitutil"

// decodeLPC reads order warmup samples, the quantized coefficients and
// shift, decodes the residual, and applies the linear-prediction
// restoration for the given order (§4.4).
func decodeLPC(br *bitutil.Reader, sf *Subframe, bps uint8, blockSize, order int) error {
	samples := make([]int32, blockSize)
	for i := 0; i < order; i++ {
		v, err := br.Int(bps)
		if err != nil {
			return err
		}
		samples[i] = int32(v)
	}

	precisionCode, err := br.Uint(4)
	if err != nil {
		return err
	}
	precision := uint8(precisionCode) + 1

	shift, err := br.Int(5)
	if err != nil {
		return err
	}

	coeffs := make([]int64, order)
	for i := range coeffs {
		v, err := br.Int(precision)
		if err != nil {
			return err
		}
		coeffs[i] = v
	}

	residuals, err := decodeResiduals(br, blockSize, order)
	if err != nil {
		return err
	}

	for i := order; i < blockSize; i++ {
		var sum int64
		for j, c := range coeffs {
			sum += c * int64(samples[i-1-j])
		}
		// Go's >> on a signed integer is an arithmetic (sign-propagating)
		// shift; a negative shift count instead means "shift left" (in
		// practice real FLAC streams never encode one).
		var predicted int64
		if shift >= 0 {
			predicted = sum >> uint(shift)
		} else {
			predicted = sum << uint(-shift)
		}
		samples[i] = int32(predicted + int64(residuals[i-order]))
	}

	sf.Samples = samples
	return nil
}
