package model

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// Money is an amount in minor units (kobo). JSON carries it as a decimal
// number of major units, e.g. 15000 <-> 150.00.
type Money int64

const minorPerMajor = 100

func NewMoney(major float64) Money {
	return Money(math.Round(major * minorPerMajor))
}

func (m Money) Major() float64 {
	return float64(m) / minorPerMajor
}

// Percent returns round(m * rate) in minor units.
func (m Money) Percent(rate float64) Money {
	return Money(math.Round(float64(m) * rate))
}

func (m Money) String() string {
	sign := ""
	v := int64(m)
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/minorPerMajor, v%minorPerMajor)
}

func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *Money) UnmarshalJSON(data []byte) error {
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("money must be a number: %w", err)
	}
	f, err := strconv.ParseFloat(n.String(), 64)
	if err != nil {
		return fmt.Errorf("money must be a number: %w", err)
	}
	*m = NewMoney(f)
	return nil
}
