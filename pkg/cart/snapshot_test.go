package cart_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dashmarket/storefront/pkg/cart"
)

func TestSnapshot(t *testing.T) {
	t.Run("round trip preserves order", func(t *testing.T) {
		items := []cart.Item{item("9", "Z", 5), item("1", "A", 49), item("5", "M", 0)}

		data, err := cart.MarshalSnapshot(items)
		require.NoError(t, err)

		got, dropped, err := cart.UnmarshalSnapshot(data)
		require.NoError(t, err)
		assert.Zero(t, dropped)
		assert.Equal(t, items, got)
	})

	t.Run("empty cart encodes an empty list", func(t *testing.T) {
		data, err := cart.MarshalSnapshot(nil)
		require.NoError(t, err)
		assert.JSONEq(t, `{"version":1,"items":[]}`, string(data))
	})

	t.Run("drops malformed and duplicate items", func(t *testing.T) {
		data := []byte(`{"version":1,"items":[
			{"id":"1","title":"A","price":49},
			{"id":"","title":"no id","price":1},
			{"id":"2","title":"B","price":-3},
			{"id":"1","title":"A again","price":10}
		]}`)

		got, dropped, err := cart.UnmarshalSnapshot(data)
		require.NoError(t, err)
		assert.Equal(t, 3, dropped)
		require.Len(t, got, 1)
		assert.Equal(t, "A", got[0].Title)
	})

	t.Run("unknown version", func(t *testing.T) {
		_, _, err := cart.UnmarshalSnapshot([]byte(`{"version":7,"items":[]}`))
		assert.ErrorIs(t, err, cart.ErrUnsupportedSnapshot)
	})
}

func TestItem_Validate(t *testing.T) {
	assert.NoError(t, item("1", "A", 49).Validate())
	assert.ErrorIs(t, cart.Item{Price: 1}.Validate(), cart.ErrInvalidItem)
	assert.ErrorIs(t, cart.Item{ID: "1", Price: -1}.Validate(), cart.ErrInvalidItem)
}

func TestContains(t *testing.T) {
	items := []cart.Item{item("1", "A", 49)}
	assert.True(t, cart.Contains(items, "1"))
	assert.False(t, cart.Contains(items, "2"))
	assert.False(t, cart.Contains(nil, "1"))
}
