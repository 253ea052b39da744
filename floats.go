package bc1ep

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
)

// FloatPairs encodes every value as a JSON float, so 0 is written as 0.0.
type FloatPairs [][2]float64

// MarshalJSON implements json.Marshaler.
func (p FloatPairs) MarshalJSON() ([]byte, error) {
	rows := make([][]float64, len(p))
	for i := range p {
		rows[i] = p[i][:]
	}
	return marshalFloatRows(rows)
}

// FloatSextets encodes every value as a JSON float, so 1 is written as 1.0.
type FloatSextets [][6]float64

// MarshalJSON implements json.Marshaler.
func (p FloatSextets) MarshalJSON() ([]byte, error) {
	rows := make([][]float64, len(p))
	for i := range p {
		rows[i] = p[i][:]
	}
	return marshalFloatRows(rows)
}

func marshalFloatRows(rows [][]float64) ([]byte, error) {
	if rows == nil {
		return []byte("[]"), nil
	}

	var err error
	b := make([]byte, 0, 2+len(rows)*24)
	b = append(b, '[')
	for i, row := range rows {
		if i > 0 {
			b = append(b, ',')
		}
		b = append(b, '[')
		for j, v := range row {
			if j > 0 {
				b = append(b, ',')
			}
			if b, err = appendFloat(b, v); err != nil {
				return nil, err
			}
		}
		b = append(b, ']')
	}
	return append(b, ']'), nil
}

// appendFloat writes f the way encoding/json does, keeping a fractional
// part on integral values.
func appendFloat(b []byte, f float64) ([]byte, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, fmt.Errorf("%w: unsupported float %v", ErrInvalidEncoding, f)
	}

	format := byte('f')
	if abs := math.Abs(f); abs != 0 && (abs < 1e-6 || abs >= 1e21) {
		format = 'e'
	}

	start := len(b)
	b = strconv.AppendFloat(b, f, format, -1, 64)
	if !bytes.ContainsAny(b[start:], ".e") {
		b = append(b, '.', '0')
	}
	return b, nil
}
