package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nikolayk812/storefront-demo/internal/domain"
	"github.com/nikolayk812/storefront-demo/internal/port"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	KeyCart      = "cart"
	KeyCartTotal = "cartTotal"
)

type cartRepository struct {
	storage port.Storage
	log     *zap.Logger
}

// lineItemRecord is the persisted shape of a line item. Price is kept as a
// JSON number so the payment view can read it without a decimal library.
type lineItemRecord struct {
	Name     string      `json:"name"`
	Price    json.Number `json:"price"`
	Quantity int         `json:"quantity"`
}

func NewCart(storage port.Storage, log *zap.Logger) port.CartRepository {
	if log == nil {
		log = zap.NewNop()
	}

	return &cartRepository{
		storage: storage,
		log:     log,
	}
}

// Load never fails on bad persisted data: an absent or malformed cart is an
// empty cart.
func (r *cartRepository) Load(ctx context.Context) (domain.Cart, error) {
	raw, ok, err := r.storage.GetItem(ctx, KeyCart)
	if err != nil {
		return domain.Cart{}, fmt.Errorf("storage.GetItem: %w", err)
	}
	if !ok || raw == "" {
		return domain.Cart{}, nil
	}

	var records []lineItemRecord
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		r.log.Warn("discarding malformed cart", zap.Error(err))
		return domain.Cart{}, nil
	}

	items, err := mapRecordsToDomain(records)
	if err != nil {
		r.log.Warn("discarding malformed cart", zap.Error(err))
		return domain.Cart{}, nil
	}

	return domain.Cart{Items: items}, nil
}

func (r *cartRepository) Save(ctx context.Context, cart domain.Cart) error {
	raw, err := json.Marshal(mapDomainToRecords(cart.Items))
	if err != nil {
		return fmt.Errorf("json.Marshal: %w", err)
	}

	if err := r.storage.SetItem(ctx, KeyCart, string(raw)); err != nil {
		return fmt.Errorf("storage.SetItem: %w", err)
	}

	return nil
}

func (r *cartRepository) Clear(ctx context.Context) error {
	if err := r.storage.RemoveItem(ctx, KeyCart, KeyCartTotal); err != nil {
		return fmt.Errorf("storage.RemoveItem: %w", err)
	}

	return nil
}

func (r *cartRepository) CachedTotal(ctx context.Context) (decimal.Decimal, bool, error) {
	raw, ok, err := r.storage.GetItem(ctx, KeyCartTotal)
	if err != nil {
		return decimal.Zero, false, fmt.Errorf("storage.GetItem: %w", err)
	}
	if !ok {
		return decimal.Zero, false, nil
	}

	total, err := decimal.NewFromString(raw)
	if err != nil {
		r.log.Warn("ignoring malformed cart total", zap.String("value", raw), zap.Error(err))
		return decimal.Zero, false, nil
	}

	return total, true, nil
}

func (r *cartRepository) Update(ctx context.Context, fn func(cart domain.Cart) (domain.Cart, error)) (domain.Cart, error) {
	var result domain.Cart

	err := r.storage.Atomically(ctx, func(s port.Storage) error {
		txRepo := &cartRepository{storage: s, log: r.log}

		current, err := txRepo.Load(ctx)
		if err != nil {
			return err
		}

		next, err := fn(current.Clone())
		if err != nil {
			return err
		}

		if err := txRepo.Save(ctx, next); err != nil {
			return err
		}

		if err := s.SetItem(ctx, KeyCartTotal, next.Total().StringFixed(2)); err != nil {
			return fmt.Errorf("storage.SetItem: %w", err)
		}

		result = next
		return nil
	})
	if err != nil {
		return domain.Cart{}, err
	}

	return result, nil
}

func mapRecordToDomain(record lineItemRecord) (domain.LineItem, error) {
	price, err := decimal.NewFromString(record.Price.String())
	if err != nil {
		return domain.LineItem{}, fmt.Errorf("price[%s] is not valid: %w", record.Price, err)
	}

	item := domain.LineItem{
		Name:     record.Name,
		Price:    price,
		Quantity: record.Quantity,
	}
	if err := item.Validate(); err != nil {
		return domain.LineItem{}, fmt.Errorf("item.Validate: %w", err)
	}

	return item, nil
}

func mapRecordsToDomain(records []lineItemRecord) ([]domain.LineItem, error) {
	var items []domain.LineItem
	seen := make(map[string]struct{}, len(records))

	for _, record := range records {
		item, err := mapRecordToDomain(record)
		if err != nil {
			return nil, fmt.Errorf("mapRecordToDomain: %w", err)
		}

		if _, ok := seen[item.Name]; ok {
			return nil, fmt.Errorf("name[%s] is duplicated", item.Name)
		}
		seen[item.Name] = struct{}{}

		items = append(items, item)
	}

	return items, nil
}

func mapDomainToRecords(items []domain.LineItem) []lineItemRecord {
	records := make([]lineItemRecord, 0, len(items))

	for _, item := range items {
		records = append(records, lineItemRecord{
			Name:     item.Name,
			Price:    json.Number(item.Price.String()),
			Quantity: item.Quantity,
		})
	}

	return records
}
