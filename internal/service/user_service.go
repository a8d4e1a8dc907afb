package service

import (
	"errors"
	"fmt"
	"strings"

	"merchant-console/internal/domain"
	"merchant-console/internal/repository"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrNoActiveSession    = errors.New("no user is logged in")
)

// UserService defines authentication, the active session and the
// per-customer order history. Order history lives in memory for the
// lifetime of the process only; it is never persisted.
type UserService interface {
	Login(email, password string) (*domain.User, error)
	Logout()
	CurrentUser() *domain.User
	RecordOrder(user *domain.User, order *domain.Order)
	Orders(user *domain.User) []*domain.Order
	ApplyCheckout(remainingCredits float64, order *domain.Order) error
}

type userService struct {
	users   repository.UserRepository
	current *domain.User
	orders  map[string][]*domain.Order
}

// NewUserService creates a new instance of UserService.
func NewUserService(users repository.UserRepository) UserService {
	return &userService{
		users:  users,
		orders: make(map[string][]*domain.Order),
	}
}

// Login matches email and password case-insensitively against the user
// store and makes the matched account the active session.
func (s *userService) Login(email, password string) (*domain.User, error) {
	for _, user := range s.users.Users() {
		if strings.EqualFold(user.Email, email) && strings.EqualFold(user.Password, password) {
			s.current = user
			return user, nil
		}
	}
	return nil, ErrInvalidCredentials
}

// Logout clears the active session.
func (s *userService) Logout() {
	s.current = nil
}

// CurrentUser returns the active session's account, or nil.
func (s *userService) CurrentUser() *domain.User {
	return s.current
}

// RecordOrder appends an order to the user's in-memory history.
func (s *userService) RecordOrder(user *domain.User, order *domain.Order) {
	key := strings.ToLower(user.Email)
	s.orders[key] = append(s.orders[key], order)
}

// Orders returns the user's in-memory order history.
func (s *userService) Orders(user *domain.User) []*domain.Order {
	return s.orders[strings.ToLower(user.Email)]
}

// ApplyCheckout debits the active customer's credits, records the order
// and persists the user store.
func (s *userService) ApplyCheckout(remainingCredits float64, order *domain.Order) error {
	if s.current == nil || s.current.Customer == nil {
		return ErrNoActiveSession
	}
	s.current.Customer.Credits = remainingCredits
	s.RecordOrder(s.current, order)
	if err := s.users.PersistAll(); err != nil {
		return fmt.Errorf("failed to persist users after checkout: %w", err)
	}
	return nil
}
