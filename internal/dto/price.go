package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// Price is a decimal amount with two fraction digits. It is written as a
// string ("25.00") and read from either a JSON number or a numeric string.
type Price float64

// NewPrice rounds v to cents. A result of negative zero becomes zero.
func NewPrice(v float64) Price {
	r := math.Round(v*100) / 100
	if r == 0 {
		return 0
	}
	return Price(r)
}

func (p Price) Float64() float64 {
	return float64(p)
}

func (p Price) String() string {
	return strconv.FormatFloat(float64(p), 'f', 2, 64)
}

func (p Price) MarshalJSON() ([]byte, error) {
	return []byte(`"` + p.String() + `"`), nil
}

func (p *Price) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)

	var raw string
	if len(data) > 0 && data[0] == '"' {
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
	} else {
		raw = string(data)
	}

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("price: %q is not a decimal number", raw)
	}

	// negative amounts are kept unrounded so validation still sees the sign
	if v < 0 {
		*p = Price(v)
		return nil
	}

	*p = NewPrice(v)
	return nil
}
