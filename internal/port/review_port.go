package port

import (
	"context"

	"github.com/nikolayk812/storefront-demo/internal/domain"
)

type ReviewEndpoint interface {
	List(ctx context.Context) ([]domain.Review, error)
	Submit(ctx context.Context, review domain.Review) error
}
