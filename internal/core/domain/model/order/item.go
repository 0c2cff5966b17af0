package order

import (
	"fmt"
	"strings"

	"dispatch/internal/pkg/errs"
)

// Item is one line of an order.
type Item struct {
	name     string
	quantity int
}

// NewItem requires a non-blank name and a quantity of at least one.
func NewItem(name string, quantity int) (Item, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Item{}, errs.NewValueIsRequiredError("item name")
	}
	if quantity < 1 {
		return Item{}, errs.NewValueIsInvalidErrorWithCause(
			"item quantity", fmt.Errorf("%d is not greater than 0", quantity))
	}
	return Item{name: name, quantity: quantity}, nil
}

func (i Item) Name() string {
	return i.name
}

func (i Item) Quantity() int {
	return i.quantity
}
