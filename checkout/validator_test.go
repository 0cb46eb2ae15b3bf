package checkout

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OmNinave/E-commerce-sub001/models"
	"github.com/OmNinave/E-commerce-sub001/store"
)

type fakeProducts map[uint]*models.Product

func (f fakeProducts) GetProduct(_ context.Context, id uint) (*models.Product, error) {
	p, ok := f[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (f fakeProducts) DecrementStock(_ context.Context, id uint, qty int) (bool, error) {
	p, ok := f[id]
	if !ok || p.Stock < qty {
		return false, nil
	}
	p.Stock -= qty
	return true, nil
}

func TestValidateCartUsesAuthoritativePrices(t *testing.T) {
	products := fakeProducts{
		1: {ID: 1, Name: "P1", Price: 100, Stock: 5},
		2: {ID: 2, Name: "P2", Price: 49.99, Stock: 10},
	}

	cart, err := ValidateCart(context.Background(), products, []CartLineInput{
		{ProductID: 1, Quantity: 2},
		{ProductID: 2, Quantity: 3},
	})
	require.NoError(t, err)

	assert.InDelta(t, 200+149.97, cart.Subtotal, 1e-9)
	require.Len(t, cart.Lines, 2)
	assert.Equal(t, uint(1), cart.Lines[0].ProductID)
	assert.InDelta(t, 100.0, cart.Lines[0].UnitPrice, 1e-9)
	assert.InDelta(t, 200.0, cart.Lines[0].LineTotal, 1e-9)
	assert.InDelta(t, 149.97, cart.Lines[1].LineTotal, 1e-9)
}

func TestValidateCartProductNotFound(t *testing.T) {
	products := fakeProducts{1: {ID: 1, Name: "P1", Price: 100, Stock: 5}}

	_, err := ValidateCart(context.Background(), products, []CartLineInput{
		{ProductID: 99, Quantity: 1},
	})
	require.Error(t, err)
	assert.Equal(t, KindProductNotFound, KindOf(err))
}

func TestValidateCartInvalidQuantity(t *testing.T) {
	products := fakeProducts{1: {ID: 1, Name: "P1", Price: 100, Stock: 5}}

	for _, qty := range []int{0, -1, -100} {
		_, err := ValidateCart(context.Background(), products, []CartLineInput{
			{ProductID: 1, Quantity: qty},
		})
		require.Error(t, err, "quantity %d", qty)
		assert.Equal(t, KindInvalidQuantity, KindOf(err))
	}
}

func TestValidateCartEmpty(t *testing.T) {
	_, err := ValidateCart(context.Background(), fakeProducts{}, nil)
	require.Error(t, err)
	assert.Equal(t, KindInvalidQuantity, KindOf(err))
}

// Shortage must fail outright; the validator never silently clamps the
// quantity down to what is available.
func TestValidateCartInsufficientStock(t *testing.T) {
	products := fakeProducts{1: {ID: 1, Name: "P1", Price: 100, Stock: 5}}

	_, err := ValidateCart(context.Background(), products, []CartLineInput{
		{ProductID: 1, Quantity: 10},
	})
	require.Error(t, err)
	assert.Equal(t, KindInsufficientStock, KindOf(err))

	var ce *Error
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, uint(1), ce.ProductID)
}

// Validation is a pure read: stock is untouched even on success.
func TestValidateCartHasNoSideEffects(t *testing.T) {
	products := fakeProducts{1: {ID: 1, Name: "P1", Price: 100, Stock: 5}}

	_, err := ValidateCart(context.Background(), products, []CartLineInput{
		{ProductID: 1, Quantity: 2},
	})
	require.NoError(t, err)
	assert.Equal(t, 5, products[1].Stock)
}

func TestValidateCartMergesDuplicateLines(t *testing.T) {
	products := fakeProducts{1: {ID: 1, Name: "P1", Price: 100, Stock: 5}}

	cart, err := ValidateCart(context.Background(), products, []CartLineInput{
		{ProductID: 1, Quantity: 2},
		{ProductID: 1, Quantity: 2},
	})
	require.NoError(t, err)

	require.Len(t, cart.Lines, 1)
	assert.Equal(t, 4, cart.Lines[0].Quantity)
	assert.InDelta(t, 400.0, cart.Lines[0].LineTotal, 1e-9)
	assert.InDelta(t, 400.0, cart.Subtotal, 1e-9)
}

func TestValidateCartDuplicateLinesExceedingStock(t *testing.T) {
	products := fakeProducts{1: {ID: 1, Name: "P1", Price: 100, Stock: 5}}

	// 3+3 of a product with 5 in stock is a plain shortage, caught here
	// rather than surfacing as a lost race in the writer.
	_, err := ValidateCart(context.Background(), products, []CartLineInput{
		{ProductID: 1, Quantity: 3},
		{ProductID: 1, Quantity: 3},
	})
	require.Error(t, err)
	assert.Equal(t, KindInsufficientStock, KindOf(err))

	var ce *Error
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, uint(1), ce.ProductID)
}
