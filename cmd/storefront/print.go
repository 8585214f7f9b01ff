package main

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/nikolayk812/storefront-demo/internal/page"
	"github.com/nikolayk812/storefront-demo/internal/payment"
	"github.com/nikolayk812/storefront-demo/internal/review"
	"github.com/nikolayk812/storefront-demo/internal/view"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	mutedStyle  = lipgloss.NewStyle().Faint(true)
	starStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#f59e0b"))
)

func (a *app) printCart(ctx context.Context) error {
	cart, err := a.store.Snapshot(ctx)
	if err != nil {
		return fmt.Errorf("store.Snapshot: %w", err)
	}

	fmt.Fprintln(a.out, headerStyle.Render("Cart"))

	if cart.IsEmpty() {
		fmt.Fprintln(a.out, mutedStyle.Render("Your cart is empty."))
	}
	for i, item := range cart.Items {
		fmt.Fprintf(a.out, "%2d. %s × %d – %s%s\n", i, item.Name, item.Quantity, a.cfg.Currency.Symbol, item.Subtotal().StringFixed(2))
	}

	total, _ := a.doc.Get(view.SlotTotal)
	count, _ := a.doc.Get(view.SlotDesktopBadge)
	checkoutBtn, _ := a.doc.Get(view.SlotCheckout)

	fmt.Fprintf(a.out, "Total: %s%s (%s items)\n", a.cfg.Currency.Symbol, total.Text(), count.Text())
	if checkoutBtn.Disabled() {
		fmt.Fprintln(a.out, mutedStyle.Render("Checkout is unavailable until the cart has items."))
	}

	return nil
}

func (a *app) printSlots() {
	for _, id := range []string{
		view.SlotItemList,
		view.SlotTotal,
		view.SlotCheckout,
		view.SlotDesktopBadge,
		view.SlotMobileBadge,
	} {
		el, ok := a.doc.Get(id)
		if !ok {
			continue
		}

		content := el.HTML()
		if content == "" {
			content = el.Text()
		}
		fmt.Fprintf(a.out, "#%s disabled=%t visible=%t\n%s\n", id, el.Disabled(), el.Visible(), content)
	}
}

func (a *app) printReviews(doc *page.Document) {
	fmt.Fprintln(a.out, headerStyle.Render("Customer reviews"))

	reviews := a.reviews.Cached()
	if len(reviews) == 0 {
		// placeholder or inline load error
		if el, ok := doc.Get(review.SlotList); ok {
			fmt.Fprintln(a.out, mutedStyle.Render(el.HTML()))
		}
		return
	}

	for _, r := range reviews {
		fmt.Fprintf(a.out, "%s  %s\n", starStyle.Render(review.Stars(r)), r.Name)
		fmt.Fprintf(a.out, "    %s\n", mutedStyle.Render(r.Text))
	}
}

func printPayment(out io.Writer, summary payment.Summary, symbol string) {
	fmt.Fprintln(out, headerStyle.Render("Payment"))

	for _, item := range summary.Items {
		fmt.Fprintf(out, "  %s × %d – %s%s\n", item.Name, item.Quantity, symbol, item.Subtotal().StringFixed(2))
	}

	fmt.Fprintf(out, "Items: %d\n", summary.Count)
	fmt.Fprintf(out, "Amount due: %s\n", summary.Total.Format(symbol))
}
