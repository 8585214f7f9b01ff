// Package payment is the payment view: it reads the persisted cart and the
// cached total directly, nothing is handed over by the checkout.
package payment

import (
	"context"
	"fmt"

	"github.com/nikolayk812/storefront-demo/internal/domain"
	"github.com/nikolayk812/storefront-demo/internal/port"
	"go.uber.org/zap"
	"golang.org/x/text/currency"
)

type Summary struct {
	Items []domain.LineItem
	Count int
	Total domain.Money

	// TotalFromCache is false when the cached total was absent and the
	// total had to be recomputed from the items.
	TotalFromCache bool
}

type View struct {
	repo     port.CartRepository
	currency currency.Unit
	log      *zap.Logger
}

func NewView(repo port.CartRepository, unit currency.Unit, log *zap.Logger) *View {
	if log == nil {
		log = zap.NewNop()
	}

	return &View{
		repo:     repo,
		currency: unit,
		log:      log,
	}
}

func (v *View) Summary(ctx context.Context) (Summary, error) {
	cart, err := v.repo.Load(ctx)
	if err != nil {
		return Summary{}, fmt.Errorf("repo.Load: %w", err)
	}

	total, ok, err := v.repo.CachedTotal(ctx)
	if err != nil {
		return Summary{}, fmt.Errorf("repo.CachedTotal: %w", err)
	}
	if !ok {
		total = cart.Total()
		v.log.Debug("cart total not cached, recomputed", zap.String("total", total.StringFixed(2)))
	}

	return Summary{
		Items:          cart.Items,
		Count:          cart.Count(),
		Total:          domain.Money{Amount: total, Currency: v.currency},
		TotalFromCache: ok,
	}, nil
}
