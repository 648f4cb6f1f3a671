package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntityTypeValid(t *testing.T) {
	for _, et := range AllEntityTypes() {
		assert.True(t, et.Valid(), string(et))
	}
	assert.False(t, EntityType("invoice").Valid())
	assert.False(t, EntityType("").Valid())
}

func TestSupplierJSONTags(t *testing.T) {
	data := []byte(`{
		"id": "p1",
		"name": "Netflix Supplier",
		"isActive": true,
		"creditBalance": 1250.5,
		"lowBalanceThreshold": 100
	}`)

	var s Supplier
	require.NoError(t, json.Unmarshal(data, &s))

	assert.Equal(t, "p1", s.ID)
	assert.True(t, s.IsActive)
	assert.Equal(t, 1250.5, s.CreditBalance)
	assert.Equal(t, "p1", s.EntityID())
}

func TestMovementJSONTags(t *testing.T) {
	data := []byte(`{
		"id": "m1",
		"supplierId": "p1",
		"type": "sale_deduction",
		"amount": -950,
		"previousBalance": 1750,
		"newBalance": 800
	}`)

	var m CreditMovement
	require.NoError(t, json.Unmarshal(data, &m))

	assert.Equal(t, MovementSaleDeduction, m.Type)
	assert.Equal(t, -950.0, m.Amount)
	assert.Equal(t, "m1", m.EntityID())
}
