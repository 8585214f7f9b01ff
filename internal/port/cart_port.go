package port

import (
	"context"

	"github.com/nikolayk812/storefront-demo/internal/domain"
	"github.com/shopspring/decimal"
)

// Storage is a profile-scoped key/value store, the equivalent of browser
// local storage. Missing keys are reported with ok == false, not an error.
type Storage interface {
	GetItem(ctx context.Context, key string) (value string, ok bool, err error)
	SetItem(ctx context.Context, key, value string) error
	RemoveItem(ctx context.Context, keys ...string) error

	// Atomically runs fn against a view of the storage that is isolated from
	// other writers of the same profile until fn returns.
	Atomically(ctx context.Context, fn func(s Storage) error) error
}

type CartRepository interface {
	Load(ctx context.Context) (domain.Cart, error)
	Save(ctx context.Context, cart domain.Cart) error
	Clear(ctx context.Context) error
	CachedTotal(ctx context.Context) (decimal.Decimal, bool, error)

	// Update loads the cart, applies fn and saves the result together with
	// the cached total as a single read-modify-write.
	Update(ctx context.Context, fn func(cart domain.Cart) (domain.Cart, error)) (domain.Cart, error)
}
