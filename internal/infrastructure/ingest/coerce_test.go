package ingest

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func TestCoerceInt64(t *testing.T) {
	t.Run("accepts native integers", func(t *testing.T) {
		n, err := coerceInt64(gjson.Parse(`250`))
		require.NoError(t, err)
		assert.Equal(t, int64(250), n)
	})

	t.Run("accepts numeric text", func(t *testing.T) {
		n, err := coerceInt64(gjson.Parse(`"250"`))
		require.NoError(t, err)
		assert.Equal(t, int64(250), n)
	})

	t.Run("accepts text with a zero fractional part", func(t *testing.T) {
		n, err := coerceInt64(gjson.Parse(`"12.0"`))
		require.NoError(t, err)
		assert.Equal(t, int64(12), n)
	})

	t.Run("accepts a native number with a zero fractional part", func(t *testing.T) {
		n, err := coerceInt64(gjson.Parse(`12.0`))
		require.NoError(t, err)
		assert.Equal(t, int64(12), n)
	})

	t.Run("rejects fractional values", func(t *testing.T) {
		_, err := coerceInt64(gjson.Parse(`12.5`))
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "fractional")

		_, err = coerceInt64(gjson.Parse(`"12.5"`))
		assert.Error(t, err)
	})

	t.Run("rejects non-numeric text", func(t *testing.T) {
		_, err := coerceInt64(gjson.Parse(`"abc"`))
		assert.Error(t, err)
	})

	t.Run("rejects overflow instead of wrapping", func(t *testing.T) {
		_, err := coerceInt64(gjson.Parse(`9223372036854775808`))
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "overflow")

		_, err = coerceInt64(gjson.Parse(`"92233720368547758080000"`))
		assert.Error(t, err)
	})

	t.Run("accepts the int64 boundaries", func(t *testing.T) {
		n, err := coerceInt64(gjson.Parse(`9223372036854775807`))
		require.NoError(t, err)
		assert.Equal(t, int64(9223372036854775807), n)

		n, err = coerceInt64(gjson.Parse(`"-9223372036854775808"`))
		require.NoError(t, err)
		assert.Equal(t, int64(-9223372036854775808), n)
	})

	t.Run("accepts negative values", func(t *testing.T) {
		n, err := coerceInt64(gjson.Parse(`-42`))
		require.NoError(t, err)
		assert.Equal(t, int64(-42), n)
	})

	t.Run("rejects other value kinds", func(t *testing.T) {
		for _, raw := range []string{`true`, `false`, `null`, `{}`, `[1]`} {
			_, err := coerceInt64(gjson.Parse(raw))
			assert.Error(t, err, "raw: %s", raw)
		}
	})

	t.Run("rejects a missing value", func(t *testing.T) {
		_, err := coerceInt64(gjson.Parse(`{}`).Get("absent"))
		assert.Error(t, err)
	})
}

func TestCoerceDecimal(t *testing.T) {
	t.Run("accepts native numbers exactly", func(t *testing.T) {
		d, err := coerceDecimal(gjson.Parse(`10.5`))
		require.NoError(t, err)
		assert.True(t, d.Equal(decimal.RequireFromString("10.5")))
	})

	t.Run("parses the literal text so precision is never lost", func(t *testing.T) {
		d, err := coerceDecimal(gjson.Parse(`0.1`))
		require.NoError(t, err)
		assert.Equal(t, "0.1", d.String())
	})

	t.Run("accepts numeric text", func(t *testing.T) {
		d, err := coerceDecimal(gjson.Parse(`"2.625"`))
		require.NoError(t, err)
		assert.True(t, d.Equal(decimal.RequireFromString("2.625")))
	})

	t.Run("rejects non-numeric text", func(t *testing.T) {
		_, err := coerceDecimal(gjson.Parse(`"lots"`))
		assert.Error(t, err)
	})

	t.Run("rejects other value kinds", func(t *testing.T) {
		for _, raw := range []string{`true`, `null`, `{"a":1}`, `[]`} {
			_, err := coerceDecimal(gjson.Parse(raw))
			assert.Error(t, err, "raw: %s", raw)
		}
	})
}

func TestCoerceText(t *testing.T) {
	t.Run("strings pass through", func(t *testing.T) {
		s, ok := coerceText(gjson.Parse(`"C1"`))
		assert.True(t, ok)
		assert.Equal(t, "C1", s)
	})

	t.Run("numbers convert to their literal text", func(t *testing.T) {
		s, ok := coerceText(gjson.Parse(`42`))
		assert.True(t, ok)
		assert.Equal(t, "42", s)
	})

	t.Run("nulls and containers do not convert", func(t *testing.T) {
		_, ok := coerceText(gjson.Parse(`null`))
		assert.False(t, ok)

		_, ok = coerceText(gjson.Parse(`{"a":1}`))
		assert.False(t, ok)

		_, ok = coerceText(gjson.Parse(`{}`).Get("absent"))
		assert.False(t, ok)
	})
}

func TestIsBlank(t *testing.T) {
	assert.True(t, isBlank(""))
	assert.True(t, isBlank("   "))
	assert.True(t, isBlank("\t\n"))
	assert.False(t, isBlank("C1"))
	assert.False(t, isBlank(" C1 "))
}
