package domain

import (
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  string
	}{
		{"Nil", nil, "0"},
		{"Empty string", "", "0"},
		{"Whitespace", "   ", "0"},
		{"Numeric string", "1250.75", "1250.75"},
		{"Padded string", " 300 ", "300"},
		{"Exponent", "1e3", "1000"},
		{"Negative kept", "-40", "-40"},
		{"Garbage", "12abc", "0"},
		{"Tiny exponent", "1e-900000000", "0"},
		{"Huge exponent", "1e900000000", "0"},
		{"Too many digits", "1" + strings.Repeat("0", 60), "0"},
		{"Long fraction kept", "0.12345678901234567890", "0.12345678901234567890"},
		{"Thousands separator", "12,000", "0"},
		{"NaN string", "NaN", "0"},
		{"Infinity string", "Infinity", "0"},
		{"Int", 42, "42"},
		{"Int64", int64(-7), "-7"},
		{"Uint64", uint64(math.MaxUint64), "18446744073709551615"},
		{"Float", 99.5, "99.5"},
		{"Float NaN", math.NaN(), "0"},
		{"Float Inf", math.Inf(1), "0"},
		{"Float -Inf", math.Inf(-1), "0"},
		{"Bool", true, "0"},
		{"JSON number", json.Number("15.5"), "15.5"},
		{"Bytes", []byte("8"), "8"},
		{"Amount", AmountFromInt(11), "11"},
		{"Object", map[string]any{"a": 1}, "0"},
		{"Slice", []int{1}, "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got decimal.Decimal
			assert.NotPanics(t, func() { got = ParseAmount(tt.input) })
			assert.True(t, decimal.RequireFromString(tt.want).Equal(got), "want %s, got %s", tt.want, got)
		})
	}
}

func TestAmountJSON(t *testing.T) {
	t.Run("Decodes numbers and strings", func(t *testing.T) {
		var c Charges
		err := json.Unmarshal([]byte(`{"dealAmount":"10000","advancePaid":2000.5,"commission":null,"hamali":"x","tds":{}}`), &c)
		require.NoError(t, err)

		assert.Equal(t, "10000", c.DealAmount.String())
		assert.Equal(t, "2000.5", c.AdvancePaid.String())
		assert.True(t, c.Commission.IsZero())
		assert.True(t, c.Hamali.IsZero())
		assert.True(t, c.TDS.IsZero())
	})

	t.Run("Encodes as number", func(t *testing.T) {
		out, err := json.Marshal(struct {
			A Amount `json:"a"`
		}{A: NewAmount("12.50")})
		require.NoError(t, err)
		assert.JSONEq(t, `{"a":12.5}`, string(out))
	})

	t.Run("Legacy fields are omitted when zero", func(t *testing.T) {
		out, err := json.Marshal(Charges{DealAmount: AmountFromInt(1)})
		require.NoError(t, err)
		assert.NotContains(t, string(out), "vehicleCostParty")
		assert.Contains(t, string(out), `"dealAmount":1`)
	})
}

func TestDomainErrors(t *testing.T) {
	assert.True(t, IsNotFound(NotFoundError{Resource: "booking", ID: int64(4)}))
	assert.Equal(t, "booking 4 not found", NotFoundError{Resource: "booking", ID: int64(4)}.Error())
	assert.True(t, IsInvalidAmount(InvalidAmountError{Value: "abc"}))
	assert.True(t, IsConflict(ConflictError{Resource: "booking", Msg: "duplicate"}))
	assert.True(t, IsComputation(ComputationError{Msg: "cannot compute totals"}))

	verr := ValidationError{Problems: []string{"a is required", "b is required"}}
	assert.True(t, IsValidation(verr))
	assert.Equal(t, []string{"a is required", "b is required"}, verr.Details())
	assert.Equal(t, []string{"x: bad"}, ValidationError{Field: "x", Msg: "bad"}.Details())
}
