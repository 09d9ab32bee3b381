package utils

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMonth(t *testing.T) {
	tests := []struct {
		input    string
		expected time.Month
		hasErr   bool
	}{
		{input: "01", expected: time.January},
		{input: "1", expected: time.January},
		{input: "12", expected: time.December},
		{input: " 03 ", expected: time.March},
		{input: "00", hasErr: true},
		{input: "13", hasErr: true},
		{input: "abc", hasErr: true},
		{input: "", hasErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			month, err := ParseMonth(tt.input)
			if tt.hasErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, month)
		})
	}
}

func TestMonthRange(t *testing.T) {
	start, end := MonthRange(2024, time.December, time.UTC)
	assert.Equal(t, time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), end)
}

func TestIDs(t *testing.T) {
	_, err := uuid.Parse(NewProductID())
	assert.NoError(t, err)
	assert.NotEqual(t, NewProductID(), NewProductID())

	id, err := GeneratePublicID()
	require.NoError(t, err)
	assert.Len(t, id, 12)
}

func TestRounding(t *testing.T) {
	assert.Equal(t, 80.0, RoundWithTwoDecimalPlace(80.0000001))
	assert.Equal(t, 0.0, RoundWithTwoDecimalPlace(0))
	assert.Equal(t, 33.33, DecimalToFloat(decimal.NewFromInt(100).Div(decimal.NewFromInt(3))))
}

func TestPrettyJSON(t *testing.T) {
	out, err := PrettyJSON([]map[string]int{{"a": 1}})
	require.NoError(t, err)
	assert.Equal(t, "[\n  {\n    \"a\": 1\n  }\n]", string(out))
}
