// Package cart implements the cart store: line item mutations over a
// CartRepository, each one a single read-modify-write.
package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/nikolayk812/storefront-demo/internal/domain"
	"github.com/nikolayk812/storefront-demo/internal/port"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// errUnchanged aborts an update that would not modify the cart.
var errUnchanged = errors.New("cart unchanged")

type Store struct {
	repo port.CartRepository
	log  *zap.Logger
}

func NewStore(repo port.CartRepository, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}

	return &Store{
		repo: repo,
		log:  log,
	}
}

// Add puts quantity units of name into the cart. A zero quantity adds one
// unit. Adding a name already in the cart increments its quantity.
func (s *Store) Add(ctx context.Context, name string, price decimal.Decimal, quantity int) (domain.Cart, error) {
	if quantity == 0 {
		quantity = 1
	}

	item := domain.LineItem{Name: name, Price: price, Quantity: quantity}
	if err := item.Validate(); err != nil {
		return domain.Cart{}, err
	}

	cart, err := s.repo.Update(ctx, func(cart domain.Cart) (domain.Cart, error) {
		if i, ok := cart.Find(name); ok {
			merged, err := cart.Items[i].AddQuantity(quantity)
			if err != nil {
				return cart, err
			}
			cart.Items[i] = merged
			return cart, nil
		}

		cart.Items = append(cart.Items, item)
		return cart, nil
	})
	if err != nil {
		return domain.Cart{}, fmt.Errorf("repo.Update: %w", err)
	}

	s.log.Debug("added to cart",
		zap.String("name", name),
		zap.Int("quantity", quantity),
		zap.Int("count", cart.Count()))

	return cart, nil
}

// Remove deletes the line at index. Out of range indices leave the cart as
// it is and are not an error.
func (s *Store) Remove(ctx context.Context, index int) (domain.Cart, error) {
	return s.update(ctx, func(cart domain.Cart) (domain.Cart, error) {
		if index < 0 || index >= len(cart.Items) {
			return cart, errUnchanged
		}

		cart.Items = append(cart.Items[:index], cart.Items[index+1:]...)
		return cart, nil
	})
}

// SetQuantity overwrites the quantity of the named line. A quantity of zero
// or less removes the line; an unknown name is ignored.
func (s *Store) SetQuantity(ctx context.Context, name string, quantity int) (domain.Cart, error) {
	return s.update(ctx, func(cart domain.Cart) (domain.Cart, error) {
		i, ok := cart.Find(name)
		if !ok {
			return cart, errUnchanged
		}

		if quantity <= 0 {
			cart.Items = append(cart.Items[:i], cart.Items[i+1:]...)
			return cart, nil
		}

		cart.Items[i].Quantity = quantity
		return cart, nil
	})
}

func (s *Store) Clear(ctx context.Context) error {
	if err := s.repo.Clear(ctx); err != nil {
		return fmt.Errorf("repo.Clear: %w", err)
	}

	return nil
}

func (s *Store) Snapshot(ctx context.Context) (domain.Cart, error) {
	cart, err := s.repo.Load(ctx)
	if err != nil {
		return domain.Cart{}, fmt.Errorf("repo.Load: %w", err)
	}

	return cart, nil
}

// Total is recomputed from the line items on every call.
func (s *Store) Total(ctx context.Context) (decimal.Decimal, error) {
	cart, err := s.Snapshot(ctx)
	if err != nil {
		return decimal.Zero, err
	}

	return cart.Total(), nil
}

// Count is the sum of quantities, used for the badges.
func (s *Store) Count(ctx context.Context) (int, error) {
	cart, err := s.Snapshot(ctx)
	if err != nil {
		return 0, err
	}

	return cart.Count(), nil
}

func (s *Store) update(ctx context.Context, fn func(cart domain.Cart) (domain.Cart, error)) (domain.Cart, error) {
	var unchanged domain.Cart

	cart, err := s.repo.Update(ctx, func(cart domain.Cart) (domain.Cart, error) {
		next, err := fn(cart)
		if errors.Is(err, errUnchanged) {
			unchanged = cart
		}
		return next, err
	})
	if errors.Is(err, errUnchanged) {
		return unchanged, nil
	}
	if err != nil {
		return domain.Cart{}, fmt.Errorf("repo.Update: %w", err)
	}

	return cart, nil
}
