package domain

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyCart           = errors.New("cart is empty")
	ErrMissingReference    = errors.New("customer reference is incomplete")
	ErrMissingReviewFields = errors.New("review fields are incomplete")
	ErrInvalidLineItem     = errors.New("line item is invalid")
	ErrReviewRejected      = errors.New("review endpoint rejected the request")
)

func invalidLineItem(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidLineItem, fmt.Sprintf(format, args...))
}
