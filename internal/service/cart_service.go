package service

import (
	"errors"
	"fmt"

	"merchant-console/internal/domain"
)

var (
	ErrCartFull     = errors.New("the shopping cart is full")
	ErrOutOfStock   = errors.New("this product is currently out of stock")
	ErrAtItemLimit  = fmt.Errorf("you already have %d of this product in the cart", domain.ItemQuantityLimit)
	ErrBadQuantity  = errors.New("quantity must be between 0 and the per-product limit")
)

// StockExceededError reports a requested quantity over the product's
// current stock; it always carries the live numbers.
type StockExceededError struct {
	Stock  int
	InCart int
}

func (e *StockExceededError) Error() string {
	if e.InCart > 0 {
		return fmt.Sprintf("only %d in stock and %d already in your cart", e.Stock, e.InCart)
	}
	return fmt.Sprintf("only %d left in stock", e.Stock)
}

// LimitExceededError reports a merge that would push a cart item over
// the per-product quantity limit.
type LimitExceededError struct {
	InCart int
}

func (e *LimitExceededError) Error() string {
	return fmt.Sprintf("you already have %d in the cart; at most %d of one product is allowed",
		e.InCart, domain.ItemQuantityLimit)
}

// CartService applies the reservation rules between the session cart
// and the live inventory. All checks run against current stock and
// current cart contents; nothing here mutates the inventory.
type CartService interface {
	Cart() *domain.ShoppingCart
	CanAccept() error
	CanSelect(p *domain.Product) error
	Add(p *domain.Product, quantity int) error
}

type cartService struct {
	cart *domain.ShoppingCart
}

// NewCartService creates a cart service holding a fresh session cart.
func NewCartService() CartService {
	return &cartService{cart: domain.NewShoppingCart()}
}

// Cart returns the session cart.
func (s *cartService) Cart() *domain.ShoppingCart {
	return s.cart
}

// CanAccept reports whether the cart can take another item at all.
func (s *cartService) CanAccept() error {
	if s.cart.Size() == domain.CartItemLimit {
		return ErrCartFull
	}
	return nil
}

// CanSelect reports whether the product is selectable for adding:
// it rejects products already at the per-item limit in the cart, out of
// stock, or with the whole remaining stock already in the cart.
func (s *cartService) CanSelect(p *domain.Product) error {
	inCart := s.cart.ProductQuantity(p)
	switch {
	case inCart == domain.ItemQuantityLimit:
		return ErrAtItemLimit
	case p.Quantity == 0:
		return ErrOutOfStock
	case inCart > 0 && inCart == p.Quantity:
		return &StockExceededError{Stock: p.Quantity, InCart: inCart}
	}
	return nil
}

// Add merges the requested quantity into the cart, subject to the
// per-product limit and the product's current stock. An existing item
// is topped up rather than duplicated.
func (s *cartService) Add(p *domain.Product, quantity int) error {
	if quantity < 0 || quantity > domain.ItemQuantityLimit {
		return ErrBadQuantity
	}

	inCart := s.cart.ProductQuantity(p)
	if inCart == 0 {
		if quantity > p.Quantity {
			return &StockExceededError{Stock: p.Quantity}
		}
		s.cart.AddItem(p, quantity)
		return nil
	}

	if inCart+quantity > domain.ItemQuantityLimit {
		return &LimitExceededError{InCart: inCart}
	}
	if inCart+quantity > p.Quantity {
		return &StockExceededError{Stock: p.Quantity, InCart: inCart}
	}
	s.cart.SetItemQuantity(p, inCart+quantity)
	return nil
}
