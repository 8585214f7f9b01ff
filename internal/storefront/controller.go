// Package storefront wires the cart store, the view binder, the review
// widget, the checkout and the notifier into the page flow: load renders
// the current state, every user action mutates, re-renders and notifies.
package storefront

import (
	"context"
	"errors"
	"fmt"

	"github.com/nikolayk812/storefront-demo/internal/cart"
	"github.com/nikolayk812/storefront-demo/internal/checkout"
	"github.com/nikolayk812/storefront-demo/internal/domain"
	"github.com/nikolayk812/storefront-demo/internal/port"
	"github.com/nikolayk812/storefront-demo/internal/review"
	"github.com/nikolayk812/storefront-demo/internal/view"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	msgCartCleared = "Cart cleared."
	msgInvalidItem = "This item cannot be added to the cart."
)

type Controller struct {
	store    *cart.Store
	binder   *view.Binder
	reviews  *review.Widget
	checkout *checkout.Service
	notifier port.Notifier
	log      *zap.Logger
}

func NewController(
	store *cart.Store,
	binder *view.Binder,
	reviews *review.Widget,
	checkoutSvc *checkout.Service,
	notifier port.Notifier,
	log *zap.Logger,
) *Controller {
	if log == nil {
		log = zap.NewNop()
	}

	return &Controller{
		store:    store,
		binder:   binder,
		reviews:  reviews,
		checkout: checkoutSvc,
		notifier: notifier,
		log:      log,
	}
}

// Load is the page load: it renders the cart slots and, when the page has
// a review list, the reviews.
func (c *Controller) Load(ctx context.Context, page port.Page) error {
	if err := c.binder.Render(ctx, page); err != nil {
		return fmt.Errorf("binder.Render: %w", err)
	}

	if c.reviews != nil {
		if err := c.reviews.Load(ctx, page); err != nil {
			return fmt.Errorf("reviews.Load: %w", err)
		}
	}

	return nil
}

func (c *Controller) AddToCart(ctx context.Context, page port.Page, name string, price decimal.Decimal, quantity int) error {
	if quantity == 0 {
		quantity = 1
	}

	snapshot, err := c.store.Add(ctx, name, price, quantity)
	if errors.Is(err, domain.ErrInvalidLineItem) {
		c.notifier.Notify(msgInvalidItem, domain.NotificationError)
		return err
	}
	if err != nil {
		return fmt.Errorf("store.Add: %w", err)
	}

	if err := c.binder.Bind(snapshot, page); err != nil {
		return fmt.Errorf("binder.Bind: %w", err)
	}

	c.notifier.Notify(fmt.Sprintf("✅ \"%s\" ×%d added to cart!", name, quantity), domain.NotificationSuccess)

	return nil
}

func (c *Controller) RemoveFromCart(ctx context.Context, page port.Page, index int) error {
	snapshot, err := c.store.Remove(ctx, index)
	if err != nil {
		return fmt.Errorf("store.Remove: %w", err)
	}

	if err := c.binder.Bind(snapshot, page); err != nil {
		return fmt.Errorf("binder.Bind: %w", err)
	}

	return nil
}

func (c *Controller) SetQuantity(ctx context.Context, page port.Page, name string, quantity int) error {
	snapshot, err := c.store.SetQuantity(ctx, name, quantity)
	if err != nil {
		return fmt.Errorf("store.SetQuantity: %w", err)
	}

	if err := c.binder.Bind(snapshot, page); err != nil {
		return fmt.Errorf("binder.Bind: %w", err)
	}

	return nil
}

func (c *Controller) ClearCart(ctx context.Context, page port.Page) error {
	if err := c.store.Clear(ctx); err != nil {
		return fmt.Errorf("store.Clear: %w", err)
	}

	if err := c.binder.Bind(domain.Cart{}, page); err != nil {
		return fmt.Errorf("binder.Bind: %w", err)
	}

	c.notifier.Notify(msgCartCleared, domain.NotificationError)

	return nil
}

func (c *Controller) Checkout(ctx context.Context, ref checkout.Reference) error {
	if c.checkout == nil {
		return fmt.Errorf("checkout is not configured")
	}

	return c.checkout.Checkout(ctx, ref)
}

func (c *Controller) SubmitReview(ctx context.Context, page port.Page) error {
	if c.reviews == nil {
		return fmt.Errorf("reviews are not configured")
	}

	return c.reviews.SubmitForm(ctx, page)
}
