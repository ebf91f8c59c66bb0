package frame

import (
	"github.com/waveflac/flac/internal/bitutil"
	"github.com/waveflac/flac/internal/ferrors"
)

// Pred identifies a subframe's prediction method.
type Pred uint8

// Prediction methods, per the subframe type code (§4.3).
const (
	PredConstant Pred = iota
	PredVerbatim
	PredFixed
	PredLPC
)

// Subframe holds one channel's decoded samples within a frame.
type Subframe struct {
	// Pred is the prediction method used to decode this subframe.
	Pred Pred
	// Order is the predictor order: 0-4 for PredFixed, 1-32 for PredLPC,
	// unused otherwise.
	Order int
	// Wasted is the number of low-order zero bits removed from every sample
	// before encoding and reinserted here via a left shift.
	Wasted uint8
	// Samples holds one decoded sample per position in [0, blockSize), at
	// the subframe's original bit depth (after the wasted-bits shift).
	Samples []int32
}

// DecodeSubframe decodes one subframe of bps bits per sample and blockSize
// samples (§4.3).
func DecodeSubframe(br *bitutil.Reader, bps uint8, blockSize int) (*Subframe, error) {
	const component = "frame.DecodeSubframe"

	// Zero-padding bit: this decoder does not enforce it (§4.3).
	if _, err := br.Uint(1); err != nil {
		return nil, err
	}

	typeCode, err := br.Uint(6)
	if err != nil {
		return nil, err
	}

	hasWasted, err := br.Uint(1)
	if err != nil {
		return nil, err
	}
	var wasted uint8
	if hasWasted != 0 {
		q, err := br.Unary()
		if err != nil {
			return nil, err
		}
		wasted = uint8(q)
	}
	if wasted >= bps {
		return nil, ferrors.NewProtocol(component, "wasted bit count %d leaves no bits of precision at bit depth %d", wasted, bps)
	}
	effectiveBps := bps - wasted

	sf := &Subframe{Wasted: wasted}
	switch {
	case typeCode == 0:
		sf.Pred = PredConstant
		if err := decodeConstant(br, sf, effectiveBps, blockSize); err != nil {
			return nil, err
		}
	case typeCode == 1:
		sf.Pred = PredVerbatim
		if err := decodeVerbatim(br, sf, effectiveBps, blockSize); err != nil {
			return nil, err
		}
	case typeCode >= 2 && typeCode <= 7:
		return nil, ferrors.NewProtocol(component, "reserved subframe type code %d", typeCode)
	case typeCode >= 8 && typeCode <= 12:
		order := int(typeCode - 8)
		sf.Pred = PredFixed
		sf.Order = order
		if err := decodeFixed(br, sf, effectiveBps, blockSize, order); err != nil {
			return nil, err
		}
	case typeCode >= 13 && typeCode <= 31:
		return nil, ferrors.NewProtocol(component, "reserved subframe type code %d", typeCode)
	default: // 32..63
		order := int(typeCode-32) + 1
		sf.Pred = PredLPC
		sf.Order = order
		if err := decodeLPC(br, sf, effectiveBps, blockSize, order); err != nil {
			return nil, err
		}
	}

	if wasted > 0 {
		for i, s := range sf.Samples {
			sf.Samples[i] = s << wasted
		}
	}
	return sf, nil
}

func decodeConstant(br *bitutil.Reader, sf *Subframe, bps uint8, blockSize int) error {
	v, err := br.Int(bps)
	if err != nil {
		return err
	}
	samples := make([]int32, blockSize)
	for i := range samples {
		samples[i] = int32(v)
	}
	sf.Samples = samples
	return nil
}

func decodeVerbatim(br *bitutil.Reader, sf *Subframe, bps uint8, blockSize int) error {
	samples := make([]int32, blockSize)
	for i := range samples {
		v, err := br.Int(bps)
		if err != nil {
			return err
		}
		samples[i] = int32(v)
	}
	sf.Samples = samples
	return nil
}
