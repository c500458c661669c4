package types

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestClampQuantity(t *testing.T) {
	t.Parallel()

	require.Equal(t, MinQuantity, ClampQuantity(-3))
	require.Equal(t, MinQuantity, ClampQuantity(0))
	require.Equal(t, 5, ClampQuantity(5))
	require.Equal(t, MaxQuantity, ClampQuantity(99))
}

func TestLineTotal(t *testing.T) {
	t.Parallel()

	item := LineItem{UnitPrice: decimal.RequireFromString("12.50"), Quantity: 3}
	require.True(t, item.LineTotal().Equal(decimal.RequireFromString("37.50")))
}

func TestSameVariant(t *testing.T) {
	t.Parallel()

	base := LineItem{ProductID: "p1", SelectedOptions: map[string]string{"size": "M"}}

	require.True(t, base.SameVariant(LineItem{ProductID: "p1", SelectedOptions: map[string]string{"size": "M"}}))
	require.False(t, base.SameVariant(LineItem{ProductID: "p2", SelectedOptions: map[string]string{"size": "M"}}))
	require.False(t, base.SameVariant(LineItem{ProductID: "p1", SelectedOptions: map[string]string{"size": "L"}}))
	require.False(t, base.SameVariant(LineItem{ProductID: "p1"}))
}

func TestMissingFields(t *testing.T) {
	t.Parallel()

	complete := CustomerInfo{
		FirstName:  "Tendai",
		LastName:   "Moyo",
		Email:      "tendai@example.com",
		Phone:      "+263771234567",
		Address:    "12 Samora Machel Ave",
		City:       "Harare",
		PostalCode: "0000",
		Country:    "ZW",
	}
	require.Empty(t, complete.MissingFields())

	partial := complete
	partial.Email = "  "
	partial.City = ""
	require.Equal(t, []string{"email", "city"}, partial.MissingFields())
}
