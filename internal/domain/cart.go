package domain

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

type Cart struct {
	Items []LineItem
}

// LineItem is one distinct product in the cart, identified by Name.
type LineItem struct {
	Name     string
	Price    decimal.Decimal
	Quantity int
}

func (i LineItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

func (i LineItem) Validate() error {
	if strings.TrimSpace(i.Name) == "" {
		return invalidLineItem("name is empty")
	}
	if i.Price.IsNegative() {
		return invalidLineItem("price[%s] is negative", i.Price)
	}
	if i.Quantity <= 0 {
		return invalidLineItem("quantity[%d] is not positive", i.Quantity)
	}
	return nil
}

// AddQuantity returns i with quantity more units. The sum must stay a
// positive int.
func (i LineItem) AddQuantity(quantity int) (LineItem, error) {
	if quantity <= 0 {
		return i, invalidLineItem("quantity[%d] is not positive", quantity)
	}
	if quantity > math.MaxInt-i.Quantity {
		return i, invalidLineItem("quantity[%d] + quantity[%d] overflows", i.Quantity, quantity)
	}

	i.Quantity += quantity
	return i, nil
}

func (c Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// Find returns the position of the line item with exactly the given name.
func (c Cart) Find(name string) (int, bool) {
	for i, item := range c.Items {
		if item.Name == name {
			return i, true
		}
	}
	return -1, false
}

// Count is the number of units in the cart, not the number of lines.
func (c Cart) Count() int {
	var count int
	for _, item := range c.Items {
		count += item.Quantity
	}
	return count
}

// Total is the sum of price times quantity rounded to 2 decimal places.
func (c Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.Items {
		total = total.Add(item.Subtotal())
	}
	return total.Round(2)
}

// Clone returns a copy whose Items slice can be mutated independently.
func (c Cart) Clone() Cart {
	if c.Items == nil {
		return Cart{}
	}
	items := make([]LineItem, len(c.Items))
	copy(items, c.Items)
	return Cart{Items: items}
}
