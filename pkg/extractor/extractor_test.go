package extractor

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtract(t *testing.T) {
	data := map[string]any{
		"address": map[string]any{
			"city":     "Hyderabad",
			"pin_code": "502032",
		},
		"pages": []any{
			map[string]any{"number": 1.0},
			map[string]any{"number": 2.0},
		},
	}

	e := New()

	t.Run("should return the data itself for an empty path", func(t *testing.T) {
		result, err := e.Extract(data, "")
		assert.NoError(t, err)
		assert.Equal(t, data, result)
	})

	t.Run("should extract nested keys with dot notation", func(t *testing.T) {
		result, err := e.Extract(data, "address.city")
		assert.NoError(t, err)
		assert.Equal(t, "Hyderabad", result)
	})

	t.Run("should extract array elements by index", func(t *testing.T) {
		result, err := e.Extract(data, "pages[1].number")
		assert.NoError(t, err)
		assert.Equal(t, 2.0, result)
	})

	t.Run("should return nil for missing keys", func(t *testing.T) {
		result, err := e.Extract(data, "address.street")
		assert.NoError(t, err)
		assert.Nil(t, result)
	})

	t.Run("should return nil for out-of-range indexes", func(t *testing.T) {
		result, err := e.Extract(data, "pages[5]")
		assert.NoError(t, err)
		assert.Nil(t, result)
	})

	t.Run("should error when descending into a scalar", func(t *testing.T) {
		_, err := e.Extract(data, "address.city.inner")
		assert.Error(t, err)
	})
}

func TestExtractString(t *testing.T) {
	e := New()

	t.Run("should stringify numeric values", func(t *testing.T) {
		result, err := e.ExtractString(map[string]any{"area": 1516.5}, "area")
		assert.NoError(t, err)
		assert.NotNil(t, result)
		assert.Equal(t, "1516.5", *result)
	})

	t.Run("should return nil for missing values", func(t *testing.T) {
		result, err := e.ExtractString(map[string]any{}, "area")
		assert.NoError(t, err)
		assert.Nil(t, result)
	})
}

func TestFromJSON(t *testing.T) {
	t.Run("should parse an object payload", func(t *testing.T) {
		m, err := FromJSON(json.RawMessage(`{"city": "Hyderabad"}`))
		assert.NoError(t, err)
		assert.Equal(t, "Hyderabad", m["city"])
	})

	t.Run("should reject non-object payloads", func(t *testing.T) {
		_, err := FromJSON(json.RawMessage(`[1, 2]`))
		assert.Error(t, err)
	})
}
