package view_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/nikolayk812/storefront-demo/internal/domain"
	"github.com/nikolayk812/storefront-demo/internal/page"
	"github.com/nikolayk812/storefront-demo/internal/view"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedSource struct {
	cart domain.Cart
	err  error
}

func (s fixedSource) Snapshot(context.Context) (domain.Cart, error) {
	return s.cart, s.err
}

var allSlots = []string{
	view.SlotItemList,
	view.SlotTotal,
	view.SlotCheckout,
	view.SlotDesktopBadge,
	view.SlotMobileBadge,
}

func sampleCart() domain.Cart {
	return domain.Cart{Items: []domain.LineItem{
		{Name: "Red Heels", Price: decimal.NewFromInt(850), Quantity: 2},
		{Name: "Flip Flops", Price: decimal.RequireFromString("99.5"), Quantity: 1},
	}}
}

func TestBind(t *testing.T) {
	tests := []struct {
		name         string
		cart         domain.Cart
		wantTotal    string
		wantCount    string
		wantDisabled bool
		wantVisible  bool
		wantLines    int
	}{
		{
			name:        "cart with items",
			cart:        sampleCart(),
			wantTotal:   "1799.50",
			wantCount:   "3",
			wantVisible: true,
			wantLines:   2,
		},
		{
			name:         "empty cart",
			cart:         domain.Cart{},
			wantTotal:    "0.00",
			wantCount:    "0",
			wantDisabled: true,
			wantVisible:  false,
			wantLines:    0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := page.New().WithElements(allSlots...)
			binder := view.NewBinder(fixedSource{}, "₹", nil)

			require.NoError(t, binder.Bind(tt.cart, doc))

			total, _ := doc.Get(view.SlotTotal)
			assert.Equal(t, tt.wantTotal, total.Text())

			checkout, _ := doc.Get(view.SlotCheckout)
			assert.Equal(t, tt.wantDisabled, checkout.Disabled())

			desktop, _ := doc.Get(view.SlotDesktopBadge)
			assert.Equal(t, tt.wantCount, desktop.Text())
			assert.True(t, desktop.Visible())

			mobile, _ := doc.Get(view.SlotMobileBadge)
			assert.Equal(t, tt.wantCount, mobile.Text())
			assert.Equal(t, tt.wantVisible, mobile.Visible())

			items, _ := doc.Get(view.SlotItemList)
			assert.Equal(t, tt.wantLines, strings.Count(items.HTML(), "<li "))
		})
	}
}

func TestBindItemList(t *testing.T) {
	doc := page.New().WithElements(view.SlotItemList)
	binder := view.NewBinder(fixedSource{}, "₹", nil)

	require.NoError(t, binder.Bind(sampleCart(), doc))

	items, _ := doc.Get(view.SlotItemList)
	html := items.HTML()
	assert.Contains(t, html, "Red Heels × 2 – ₹1700.00")
	assert.Contains(t, html, "Flip Flops × 1 – ₹99.50")
	assert.Contains(t, html, `data-index="0"`)
	assert.Contains(t, html, `data-index="1"`)
}

func TestBindEscapesItemNames(t *testing.T) {
	doc := page.New().WithElements(view.SlotItemList)
	binder := view.NewBinder(fixedSource{}, "₹", nil)

	c := domain.Cart{Items: []domain.LineItem{
		{Name: `<img src=x onerror="alert(1)">`, Price: decimal.NewFromInt(1), Quantity: 1},
	}}
	require.NoError(t, binder.Bind(c, doc))

	items, _ := doc.Get(view.SlotItemList)
	assert.NotContains(t, items.HTML(), "<img")
	assert.Contains(t, items.HTML(), "&lt;img")
}

func TestBindSkipsAbsentSlots(t *testing.T) {
	tests := []struct {
		name  string
		slots []string
	}{
		{name: "no slots", slots: nil},
		{name: "mobile badge only", slots: []string{view.SlotMobileBadge}},
		{name: "total and checkout", slots: []string{view.SlotTotal, view.SlotCheckout}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := page.New().WithElements(tt.slots...)
			binder := view.NewBinder(fixedSource{}, "₹", nil)

			require.NoError(t, binder.Bind(sampleCart(), doc))

			for _, id := range allSlots {
				_, ok := doc.Get(id)
				assert.Equal(t, contains(tt.slots, id), ok, id)
			}
		})
	}
}

func TestRender(t *testing.T) {
	doc := page.New().WithElements(view.SlotDesktopBadge)

	binder := view.NewBinder(fixedSource{cart: sampleCart()}, "₹", nil)
	require.NoError(t, binder.Render(t.Context(), doc))

	badge, _ := doc.Get(view.SlotDesktopBadge)
	assert.Equal(t, "3", badge.Text())

	errBoom := errors.New("boom")
	binder = view.NewBinder(fixedSource{err: errBoom}, "₹", nil)
	require.ErrorIs(t, binder.Render(t.Context(), doc), errBoom)
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
