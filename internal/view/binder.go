// Package view projects a cart snapshot onto whichever cart slots the
// current page has.
package view

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"strconv"

	"github.com/nikolayk812/storefront-demo/internal/domain"
	"github.com/nikolayk812/storefront-demo/internal/port"
	"go.uber.org/zap"
)

const (
	SlotItemList     = "cartItems"
	SlotTotal        = "cartTotal"
	SlotCheckout     = "checkoutBtn"
	SlotDesktopBadge = "cartCount"
	SlotMobileBadge  = "cartBadge"
)

var itemListTemplate = template.Must(template.New("cartItems").Parse(
	`{{range $i, $line := .Lines}}<li class="list-group-item d-flex justify-content-between align-items-center">` +
		`<span>{{$line.Name}} × {{$line.Quantity}} – {{$.Symbol}}{{$line.Subtotal}}</span>` +
		`<button class="btn btn-sm btn-danger" data-action="remove" data-index="{{$i}}">✕ Remove</button>` +
		`</li>{{end}}`))

type CartSource interface {
	Snapshot(ctx context.Context) (domain.Cart, error)
}

type Binder struct {
	source CartSource
	symbol string
	log    *zap.Logger
}

func NewBinder(source CartSource, currencySymbol string, log *zap.Logger) *Binder {
	if log == nil {
		log = zap.NewNop()
	}

	return &Binder{
		source: source,
		symbol: currencySymbol,
		log:    log,
	}
}

// Render loads the current cart and binds it to page.
func (b *Binder) Render(ctx context.Context, page port.Page) error {
	cart, err := b.source.Snapshot(ctx)
	if err != nil {
		return fmt.Errorf("source.Snapshot: %w", err)
	}

	return b.Bind(cart, page)
}

// Bind writes cart into every cart slot present on page and skips the rest.
func (b *Binder) Bind(cart domain.Cart, page port.Page) error {
	if el, ok := page.Element(SlotItemList); ok {
		html, err := b.renderItems(cart)
		if err != nil {
			return err
		}
		el.SetHTML(html)
	}

	if el, ok := page.Element(SlotTotal); ok {
		el.SetText(cart.Total().StringFixed(2))
	}

	if el, ok := page.Element(SlotCheckout); ok {
		el.SetDisabled(cart.IsEmpty())
	}

	count := cart.Count()

	if el, ok := page.Element(SlotDesktopBadge); ok {
		el.SetText(strconv.Itoa(count))
	}

	if el, ok := page.Element(SlotMobileBadge); ok {
		el.SetText(strconv.Itoa(count))
		el.SetVisible(count > 0)
	}

	b.log.Debug("cart bound", zap.Int("lines", len(cart.Items)), zap.Int("count", count))

	return nil
}

type itemLine struct {
	Name     string
	Quantity int
	Subtotal string
}

func (b *Binder) renderItems(cart domain.Cart) (string, error) {
	lines := make([]itemLine, 0, len(cart.Items))
	for _, item := range cart.Items {
		lines = append(lines, itemLine{
			Name:     item.Name,
			Quantity: item.Quantity,
			Subtotal: item.Subtotal().StringFixed(2),
		})
	}

	var buf bytes.Buffer
	err := itemListTemplate.Execute(&buf, struct {
		Symbol string
		Lines  []itemLine
	}{
		Symbol: b.symbol,
		Lines:  lines,
	})
	if err != nil {
		return "", fmt.Errorf("itemListTemplate.Execute: %w", err)
	}

	return buf.String(), nil
}
