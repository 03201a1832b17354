package order

import (
	"errors"
	"fmt"
)

// ErrEmptyCart means there was nothing to check out: the buyer has no cart
// or the cart holds no entries. The two cases are indistinguishable on
// purpose.
var ErrEmptyCart = errors.New("the cart is empty")

// SelfPurchaseError aborts a checkout containing the buyer's own listing.
type SelfPurchaseError struct {
	Name string
}

func (e *SelfPurchaseError) Error() string {
	return fmt.Sprintf("you cannot purchase your own art: %q", e.Name)
}

// OutOfStockError aborts a checkout when any entry is already sold out.
type OutOfStockError struct {
	Name string
}

func (e *OutOfStockError) Error() string {
	return fmt.Sprintf("item %q is out of stock", e.Name)
}
