package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
)

// Amount is a money value. It decodes leniently from JSON (numbers, numeric
// strings, null or anything else) and always encodes as a plain JSON number.
type Amount struct {
	decimal.Decimal
}

func NewAmount(v any) Amount {
	return Amount{Decimal: ParseAmount(v)}
}

func AmountFromInt(v int64) Amount {
	return Amount{Decimal: decimal.NewFromInt(v)}
}

func AmountOf(d decimal.Decimal) Amount {
	return Amount{Decimal: d}
}

func (a Amount) Add(b Amount) Amount {
	return Amount{Decimal: a.Decimal.Add(b.Decimal)}
}

func (a Amount) Sub(b Amount) Amount {
	return Amount{Decimal: a.Decimal.Sub(b.Decimal)}
}

func (a Amount) IsPositive() bool {
	return a.Decimal.Sign() > 0
}

// Float64 is used by renderers that only take float values (xlsx, pdf).
func (a Amount) Float64() float64 {
	f, _ := a.Decimal.Float64()
	return f
}

func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.Decimal.String()), nil
}

func (a *Amount) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		a.Decimal = decimal.Zero
		return nil
	}
	a.Decimal = ParseAmount(raw)
	return nil
}

// ParseAmount returns the number represented by v, or zero when v is nil, an
// empty string, unparseable, NaN, infinite or outside the supported range.
// It never panics.
func ParseAmount(v any) decimal.Decimal {
	switch x := v.(type) {
	case nil:
		return decimal.Zero
	case decimal.Decimal:
		return x
	case *decimal.Decimal:
		if x == nil {
			return decimal.Zero
		}
		return *x
	case Amount:
		return x.Decimal
	case *Amount:
		if x == nil {
			return decimal.Zero
		}
		return x.Decimal
	case float64:
		return fromFloat(x)
	case float32:
		return fromFloat(float64(x))
	case int:
		return decimal.NewFromInt(int64(x))
	case int8:
		return decimal.NewFromInt(int64(x))
	case int16:
		return decimal.NewFromInt(int64(x))
	case int32:
		return decimal.NewFromInt(int64(x))
	case int64:
		return decimal.NewFromInt(x)
	case uint:
		return fromUint(uint64(x))
	case uint8:
		return fromUint(uint64(x))
	case uint16:
		return fromUint(uint64(x))
	case uint32:
		return fromUint(uint64(x))
	case uint64:
		return fromUint(x)
	case json.Number:
		return parseString(string(x))
	case string:
		return parseString(x)
	case []byte:
		return parseString(string(x))
	case bool:
		return decimal.Zero
	case fmt.Stringer:
		return parseString(x.String())
	default:
		return decimal.Zero
	}
}

// Limits on parsed amounts. Arithmetic rescales operands to a common
// exponent, so an unbounded exponent makes a single Add arbitrarily slow.
const (
	maxAmountExponent = 20
	maxAmountDigits   = 40
)

// bounded returns zero for values outside the supported exponent or
// precision range.
func bounded(d decimal.Decimal) decimal.Decimal {
	exp := d.Exponent()
	if exp < -maxAmountExponent || exp > maxAmountExponent || d.NumDigits() > maxAmountDigits {
		return decimal.Zero
	}
	return d
}

func fromFloat(f float64) decimal.Decimal {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero
	}
	return bounded(decimal.NewFromFloat(f))
}

func fromUint(u uint64) decimal.Decimal {
	return decimal.NewFromBigInt(new(big.Int).SetUint64(u), 0)
}

func parseString(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return bounded(d)
}
