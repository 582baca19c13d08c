package balances

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddTokenCreatesZeroEntry(t *testing.T) {
	b := New()
	b.AddToken("0xabc", decimal.Zero)

	assert.Equal(t, 1, b.Len())
	assert.True(t, b.Has("0xabc"))
	assert.True(t, b.Get("0xabc").IsZero())
}

func TestAddTokenAccumulates(t *testing.T) {
	b := New()
	b.AddToken("0xabc", decimal.RequireFromString("1.25"))
	b.AddToken("0xabc", decimal.RequireFromString("2.5"))
	b.AddToken("0xdef", decimal.NewFromInt(7))

	assert.True(t, b.Get("0xabc").Equal(decimal.RequireFromString("3.75")))
	assert.Equal(t, []string{"0xabc", "0xdef"}, b.Tokens())
	assert.False(t, b.Has("0x123"))
	assert.True(t, b.Get("0x123").IsZero())
}

func TestTokenKeysAreVerbatim(t *testing.T) {
	b := New()
	b.AddToken("0xABCDEF", decimal.NewFromInt(1))
	b.AddToken("0xabcdef", decimal.NewFromInt(1))

	assert.Equal(t, 2, b.Len())
}

func TestEqual(t *testing.T) {
	a := New()
	a.AddToken("x", decimal.RequireFromString("1.0"))
	b := New()
	b.AddToken("x", decimal.RequireFromString("1"))

	assert.True(t, a.Equal(b))

	b.AddToken("y", decimal.Zero)
	assert.False(t, a.Equal(b))
}

func TestMarshalJSON(t *testing.T) {
	b := New()
	b.AddToken("0xabc", decimal.RequireFromString("12.5"))
	b.AddToken("0xdef", decimal.Zero)

	raw, err := json.Marshal(b)
	require.NoError(t, err)

	var got map[string]string
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, map[string]string{"0xabc": "12.5", "0xdef": "0"}, got)
}
