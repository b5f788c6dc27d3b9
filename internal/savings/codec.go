package savings

import (
	"fmt"

	json "github.com/goccy/go-json"
)

// DecodeInput decodes the JSON form of the input for category c.
func DecodeInput(c Category, data []byte) (Input, error) {
	var (
		in  Input
		err error
	)
	switch c {
	case Plates:
		in, err = decodeAs[PlateInput](data)
	case AdjustmentSpeed:
		in, err = decodeAs[AdjustmentInput](data)
	case PrintSpeed:
		in, err = decodeAs[PrintSpeedInput](data)
	case WhiteInk:
		in, err = decodeAs[WhiteInkInput](data)
	case ColoredInk:
		in, err = decodeAs[ColoredInkInput](data)
	case PlateStopRatio:
		in, err = decodeAs[PlateStopInput](data)
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownCategory, int(c))
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s input: %w", c, err)
	}
	return in, nil
}

// DecodeResult decodes the JSON form of a result previously produced for category c.
func DecodeResult(c Category, data []byte) (Result, error) {
	var (
		r   Result
		err error
	)
	switch c {
	case Plates:
		r, err = decodeAs[PlateResult](data)
	case AdjustmentSpeed:
		r, err = decodeAs[AdjustmentResult](data)
	case PrintSpeed:
		r, err = decodeAs[PrintSpeedResult](data)
	case WhiteInk, ColoredInk:
		var ink InkResult
		ink, err = decodeAs[InkResult](data)
		ink.Kind = c
		r = ink
	case PlateStopRatio:
		r, err = decodeAs[PlateStopResult](data)
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownCategory, int(c))
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s result: %w", c, err)
	}
	return r, nil
}

// MarshalResults encodes results as an object keyed by category key.
func MarshalResults(results map[Category]Result) ([]byte, error) {
	keyed := make(map[string]Result, len(results))
	for c, r := range results {
		keyed[c.String()] = r
	}
	return json.Marshal(keyed)
}

// UnmarshalResults is the inverse of MarshalResults.
func UnmarshalResults(data []byte) (map[Category]Result, error) {
	var keyed map[string]json.RawMessage
	if err := json.Unmarshal(data, &keyed); err != nil {
		return nil, fmt.Errorf("decode results: %w", err)
	}
	results := make(map[Category]Result, len(keyed))
	for key, raw := range keyed {
		c, err := ParseCategory(key)
		if err != nil {
			return nil, err
		}
		r, err := DecodeResult(c, raw)
		if err != nil {
			return nil, err
		}
		results[c] = r
	}
	return results, nil
}

func decodeAs[T any](data []byte) (T, error) {
	var v T
	err := json.Unmarshal(data, &v)
	return v, err
}
