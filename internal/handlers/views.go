package handlers

import (
	"html/template"

	"github.com/ubermelon/shop/internal/domain"
	"github.com/ubermelon/shop/internal/format"
)

// pageData is the view model shared by every HTML page.
type pageData struct {
	Title     string
	Email     string
	Flashes   []string
	CartUnits int

	Items []itemView
	Item  *itemView
	Order *orderView
}

// itemView decorates a catalog item with display fields.
type itemView struct {
	domain.Item
	PriceDisplay    string
	DescriptionHTML template.HTML
}

// orderView decorates an aggregated order for the cart page.
type orderView struct {
	Lines        []orderLineView
	Total        int64
	TotalDisplay string
	Empty        bool
}

type orderLineView struct {
	domain.OrderLine
	UnitPriceDisplay string
	SubtotalDisplay  string
}

func (h *Handlers) itemView(item domain.Item) itemView {
	return itemView{
		Item:            item,
		PriceDisplay:    format.Price(item.Price),
		DescriptionHTML: h.renderer.Markdown(item.Description),
	}
}

func (h *Handlers) itemViews(items []domain.Item) []itemView {
	out := make([]itemView, 0, len(items))
	for _, item := range items {
		out = append(out, h.itemView(item))
	}
	return out
}

func orderViewOf(order domain.Order) *orderView {
	view := &orderView{
		Total:        order.Total,
		TotalDisplay: format.Price(order.Total),
		Empty:        len(order.Lines) == 0,
	}
	for _, line := range order.Lines {
		view.Lines = append(view.Lines, orderLineView{
			OrderLine:        line,
			UnitPriceDisplay: format.Price(line.UnitPrice),
			SubtotalDisplay:  format.Price(line.Subtotal),
		})
	}
	return view
}
