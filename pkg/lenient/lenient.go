// Package lenient decodes JSON numbers that may arrive as numbers, numeric
// strings or garbage. Anything that is not a number decodes to zero.
package lenient

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// Int is an integer that decodes from a JSON number or numeric string.
// Fractions are truncated toward zero.
type Int int64

// UnmarshalJSON never fails; non-numeric input yields 0.
func (i *Int) UnmarshalJSON(data []byte) error {
	*i = 0

	d, ok := parse(data)
	if !ok {
		return nil
	}

	f, _ := d.Truncate(0).Float64()
	switch {
	case f > math.MaxInt64:
		*i = math.MaxInt64
	case f < math.MinInt64:
		*i = math.MinInt64
	default:
		*i = Int(d.IntPart())
	}
	return nil
}

// Decimal is a decimal that decodes from a JSON number or numeric string.
type Decimal struct {
	decimal.Decimal
}

// UnmarshalJSON never fails; non-numeric input yields 0.
func (d *Decimal) UnmarshalJSON(data []byte) error {
	v, ok := parse(data)
	if !ok {
		d.Decimal = decimal.Zero
		return nil
	}
	d.Decimal = v
	return nil
}

// Inputs past these bounds are treated as non-numeric. Rescaling a decimal
// with a huge exponent allocates a big.Int of that many digits.
const (
	maxDigits   = 40
	maxExponent = 20
)

func parse(data []byte) (decimal.Decimal, bool) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return decimal.Zero, false
	}

	var raw string
	switch data[0] {
	case '"':
		if err := json.Unmarshal(data, &raw); err != nil {
			return decimal.Zero, false
		}
		raw = strings.TrimSpace(raw)
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		raw = string(data)
	default:
		return decimal.Zero, false
	}

	if len(raw) > maxDigits {
		return decimal.Zero, false
	}

	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, false
	}
	if exp := d.Exponent(); exp > maxExponent || exp < -maxExponent {
		return decimal.Zero, false
	}
	return d, true
}
