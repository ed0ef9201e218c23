package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderUserRefMarshal(t *testing.T) {
	bare, err := json.Marshal(OrderUserRef{ID: "u1"})
	require.NoError(t, err)
	assert.JSONEq(t, `"u1"`, string(bare))

	resolved, err := json.Marshal(OrderUserRef{ID: "u1", Name: "Asha", Email: "asha@example.com"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"_id":"u1","name":"Asha","email":"asha@example.com"}`, string(resolved))
}

func TestOrderWireShape(t *testing.T) {
	o := Order{
		ID:     "o1",
		UserID: "u1",
		User:   OrderUserRef{ID: "u1"},
		Items: []OrderItem{
			{ProductID: "p1", Name: "Tee", Price: 499, Quantity: 2, SelectedSize: "M"},
		},
		Subtotal:      998,
		GST:           179.64,
		Total:         1177.64,
		Status:        StatusPending,
		PaymentMethod: "COD / Stripe",
	}

	data, err := json.Marshal(o)
	require.NoError(t, err)

	var wire map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &wire))

	assert.Equal(t, "o1", wire["_id"])
	assert.Equal(t, "u1", wire["user"])
	assert.NotContains(t, wire, "userID", "internal user id field stays off the wire")

	items := wire["items"].([]interface{})
	item := items[0].(map[string]interface{})
	assert.Equal(t, "p1", item["product"])
	assert.Equal(t, "M", item["selectedSize"])
}

func TestOrderStatusValid(t *testing.T) {
	assert.True(t, StatusPending.Valid())
	assert.True(t, StatusCompleted.Valid())
	assert.True(t, StatusCancelled.Valid())
	assert.False(t, OrderStatus("Shipped").Valid())
	assert.False(t, OrderStatus("").Valid())
}
