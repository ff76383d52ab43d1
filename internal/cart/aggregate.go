// Package cart derives the aggregated order view of a session's cart.
package cart

import (
	"fmt"

	"github.com/ubermelon/shop/internal/domain"
)

// ItemResolver resolves catalog items by id.
type ItemResolver interface {
	GetByID(id int) (domain.Item, error)
}

// Aggregate groups the cart's item ids into order lines and computes
// the grand total. Lines are keyed by item id so repeated units of the
// same melon collapse into one line, and appear in first-occurrence
// order. An id the catalog cannot resolve is a data-integrity fault
// and fails the whole aggregation. An empty cart yields a zero-value
// Order, not an error.
func Aggregate(ids []int, catalog ItemResolver) (domain.Order, error) {
	var order domain.Order
	linePos := make(map[int]int, len(ids))

	for _, id := range ids {
		if pos, ok := linePos[id]; ok {
			line := &order.Lines[pos]
			line.Quantity++
			line.Subtotal += line.UnitPrice
			order.Total += line.UnitPrice
			continue
		}

		item, err := catalog.GetByID(id)
		if err != nil {
			return domain.Order{}, fmt.Errorf("cart: resolve item %d: %w", id, err)
		}

		linePos[id] = len(order.Lines)
		order.Lines = append(order.Lines, domain.OrderLine{
			Item:      item,
			Quantity:  1,
			UnitPrice: item.Price,
			Subtotal:  item.Price,
		})
		order.Total += item.Price
	}

	return order, nil
}
