package service

import (
	"errors"
	"fmt"

	"merchant-console/internal/domain"
	"merchant-console/internal/repository"
)

var (
	ErrInsufficientCredit = errors.New("not enough credits to pay for this order")
	ErrNotACustomer       = errors.New("only customers can check out")
)

// CheckoutService computes order totals and applies confirmed checkouts.
// Validation happens entirely before any mutation: once Apply starts
// touching state there is no failure path short of a persistence error.
type CheckoutService interface {
	Prepare(user *domain.User, cart *domain.ShoppingCart) (*domain.Order, error)
	Apply(user *domain.User, cart *domain.ShoppingCart, order *domain.Order) error
}

type checkoutService struct {
	products repository.ProductRepository
	users    UserService
}

// NewCheckoutService creates a new instance of CheckoutService.
func NewCheckoutService(products repository.ProductRepository, users UserService) CheckoutService {
	return &checkoutService{products: products, users: users}
}

// Prepare validates the customer's balance against the cart total and
// returns the order snapshot that a confirmed checkout would record.
// The caller's stores are untouched regardless of outcome.
func (s *checkoutService) Prepare(user *domain.User, cart *domain.ShoppingCart) (*domain.Order, error) {
	if user.Customer == nil {
		return nil, ErrNotACustomer
	}

	total := cart.TotalPrice()
	if user.IsMember() {
		total = cart.TotalMemberPrice()
	}

	credits := user.Customer.Credits
	if total > credits {
		return nil, ErrInsufficientCredit
	}

	return domain.NewOrder(cart.TotalPrice(), cart.TotalMemberPrice(),
		credits, credits-total, user.IsMember()), nil
}

// Apply commits a prepared checkout: decrement stock per cart item,
// debit credits, record the order, clear the cart, and persist the
// inventory and user stores. There is no partial-commit path.
func (s *checkoutService) Apply(user *domain.User, cart *domain.ShoppingCart, order *domain.Order) error {
	for _, item := range cart.Items() {
		item.Product.Quantity -= item.Quantity
	}
	if err := s.products.PersistAll(); err != nil {
		return fmt.Errorf("failed to persist inventory after checkout: %w", err)
	}

	if err := s.users.ApplyCheckout(order.CreditAfter, order); err != nil {
		return err
	}

	cart.Clear()
	return nil
}
