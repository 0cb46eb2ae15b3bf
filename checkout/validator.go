package checkout

import (
	"context"
	"errors"
	"fmt"

	"github.com/OmNinave/E-commerce-sub001/store"
)

// CartLineInput is an untrusted client-supplied cart line. Any price the
// client sends alongside is discarded; only id and quantity are read.
// Quantity carries no binding tag: zero must reach the validator so the
// client gets an InvalidQuantity kind, not a generic binding error.
type CartLineInput struct {
	ProductID uint `json:"productId" binding:"required"`
	Quantity  int  `json:"quantity"`
}

// ValidatedLine carries the authoritative price fetched from the catalog.
type ValidatedLine struct {
	ProductID   uint    `json:"product_id"`
	ProductName string  `json:"product_name"`
	UnitPrice   float64 `json:"unit_price"`
	Quantity    int     `json:"quantity"`
	LineTotal   float64 `json:"line_total"`
}

// ValidatedCart is the validator's output, consumed unchanged by the fee
// calculator and the order writer.
type ValidatedCart struct {
	Subtotal float64         `json:"subtotal"`
	Lines    []ValidatedLine `json:"lines"`
}

// ValidateCart re-fetches the authoritative price and stock for every line
// and recomputes the subtotal from store data alone. It is a pure
// read-and-check: stock is not reserved here, the order writer settles any
// race at commit time.
func ValidateCart(ctx context.Context, products store.Products, lines []CartLineInput) (*ValidatedCart, error) {
	if len(lines) == 0 {
		return nil, newError(KindInvalidQuantity, "cart is empty")
	}

	// Duplicate lines for the same product are merged first, so the stock
	// check sees the aggregate quantity and a shortage reads as
	// InsufficientStock rather than a lost race at commit time.
	merged := make([]CartLineInput, 0, len(lines))
	byProduct := make(map[uint]int, len(lines))
	for _, line := range lines {
		if line.Quantity <= 0 {
			return nil, lineError(KindInvalidQuantity, line.ProductID,
				"quantity must be a positive integer, got %d", line.Quantity)
		}
		if i, ok := byProduct[line.ProductID]; ok {
			merged[i].Quantity += line.Quantity
			continue
		}
		byProduct[line.ProductID] = len(merged)
		merged = append(merged, line)
	}

	cart := &ValidatedCart{Lines: make([]ValidatedLine, 0, len(merged))}
	for _, line := range merged {
		product, err := products.GetProduct(ctx, line.ProductID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return nil, lineError(KindProductNotFound, line.ProductID,
					"product %d does not exist", line.ProductID)
			}
			return nil, fmt.Errorf("fetch product %d: %w", line.ProductID, err)
		}

		if product.Stock < line.Quantity {
			return nil, lineError(KindInsufficientStock, product.ID,
				"requested %d of %q, only %d in stock", line.Quantity, product.Name, product.Stock)
		}

		lineTotal := round2(product.Price * float64(line.Quantity))
		cart.Lines = append(cart.Lines, ValidatedLine{
			ProductID:   product.ID,
			ProductName: product.Name,
			UnitPrice:   product.Price,
			Quantity:    line.Quantity,
			LineTotal:   lineTotal,
		})
		cart.Subtotal = round2(cart.Subtotal + lineTotal)
	}

	return cart, nil
}
