package audit

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeSnapshot(t *testing.T) {
	t.Run("flat fields plus nested collections", func(t *testing.T) {
		raw, err := EncodeSnapshot(Snapshot{
			Fields: map[string]any{"product_name": "Shirt", "price": 19.99},
			Variations: []Variation{
				{ColorCode: "#FF0000", Size: "M", Quantity: 3},
			},
			FAQs:  []FAQ{{Question: "Q1", Answer: "A1"}},
			Media: &Media{MainImage: "https://cdn/x.jpg", SubImages: []string{"https://cdn/y.jpg"}},
		})
		require.NoError(t, err)

		var decoded map[string]any
		require.NoError(t, json.Unmarshal(raw, &decoded))
		assert.Equal(t, "Shirt", decoded["product_name"])
		assert.Equal(t, "https://cdn/x.jpg", decoded["mainImage"])
		assert.Len(t, decoded["variations"], 1)
		assert.Len(t, decoded["faqs"], 1)
		assert.Len(t, decoded["subImages"], 1)
	})

	t.Run("absent fields are omitted, not errors", func(t *testing.T) {
		raw, err := EncodeSnapshot(Snapshot{})
		require.NoError(t, err)
		assert.JSONEq(t, `{}`, string(raw))

		raw, err = EncodeSnapshot(Snapshot{Media: &Media{}})
		require.NoError(t, err)
		assert.JSONEq(t, `{}`, string(raw))
	})

	t.Run("empty collections are omitted", func(t *testing.T) {
		raw, err := EncodeSnapshot(Snapshot{
			Fields:     map[string]any{"name": "x"},
			Variations: []Variation{},
			FAQs:       []FAQ{},
		})
		require.NoError(t, err)
		assert.JSONEq(t, `{"name":"x"}`, string(raw))
	})
}

func TestEncodeUpdate(t *testing.T) {
	t.Run("wraps updated data", func(t *testing.T) {
		raw, err := EncodeUpdate(Snapshot{Fields: map[string]any{"name": "new"}}, nil)
		require.NoError(t, err)

		var decoded map[string]json.RawMessage
		require.NoError(t, json.Unmarshal(raw, &decoded))
		assert.Contains(t, decoded, "updatedData")
		assert.NotContains(t, decoded, "originalData")
	})

	t.Run("original data included when present", func(t *testing.T) {
		original := Snapshot{Fields: map[string]any{"name": "old"}}
		raw, err := EncodeUpdate(Snapshot{Fields: map[string]any{"name": "new"}}, &original)
		require.NoError(t, err)

		var decoded map[string]map[string]any
		require.NoError(t, json.Unmarshal(raw, &decoded))
		assert.Equal(t, "new", decoded["updatedData"]["name"])
		assert.Equal(t, "old", decoded["originalData"]["name"])
	})
}
