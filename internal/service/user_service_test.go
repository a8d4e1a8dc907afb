package service

import (
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"merchant-console/internal/domain"
	"merchant-console/internal/repository"
)

func newUserService(t *testing.T) UserService {
	t.Helper()
	users := repository.NewUserRepository(repository.NewFileStore(afero.NewMemMapFs(), "users.txt"))
	_, err := users.Load()
	require.NoError(t, err)
	return NewUserService(users)
}

func TestLoginMatchesCredentialsCaseInsensitively(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		password string
	}{
		{"exact", repository.DefaultAdminEmail, repository.DefaultAdminPassword},
		{"upper email", strings.ToUpper(repository.DefaultAdminEmail), repository.DefaultAdminPassword},
		{"upper password", repository.DefaultCustomerEmail, strings.ToUpper(repository.DefaultCustomerPassword)},
		{"mixed case both", "Member@Student.Monash.Edu", "monash1234"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc := newUserService(t)
			user, err := svc.Login(tc.email, tc.password)
			require.NoError(t, err)
			assert.Same(t, user, svc.CurrentUser())
		})
	}
}

func TestLoginRejectsWrongCredentials(t *testing.T) {
	svc := newUserService(t)

	_, err := svc.Login(repository.DefaultAdminEmail, "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.Login("nobody@merchant.monash.edu", repository.DefaultAdminPassword)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Nil(t, svc.CurrentUser())
}

func TestLogoutClearsTheSession(t *testing.T) {
	svc := newUserService(t)
	_, err := svc.Login(repository.DefaultAdminEmail, repository.DefaultAdminPassword)
	require.NoError(t, err)

	svc.Logout()
	assert.Nil(t, svc.CurrentUser())
}

func TestOrderHistoryIsPerUserAndInMemoryOnly(t *testing.T) {
	svc := newUserService(t)
	customer, err := svc.Login(repository.DefaultCustomerEmail, repository.DefaultCustomerPassword)
	require.NoError(t, err)

	first := domain.NewOrder(100, 80, 1000, 920, false)
	second := domain.NewOrder(50, 40, 920, 870, false)
	svc.RecordOrder(customer, first)
	svc.RecordOrder(customer, second)

	orders := svc.Orders(customer)
	require.Len(t, orders, 2)
	assert.Equal(t, first.ID, orders[0].ID)
	assert.Equal(t, second.ID, orders[1].ID)

	admin := domain.NewAdmin("other@merchant.monash.edu", "pw")
	assert.Empty(t, svc.Orders(admin))
}

func TestApplyCheckoutRequiresACustomerSession(t *testing.T) {
	svc := newUserService(t)
	order := domain.NewOrder(10, 8, 1000, 990, false)

	assert.ErrorIs(t, svc.ApplyCheckout(990, order), ErrNoActiveSession)

	_, err := svc.Login(repository.DefaultAdminEmail, repository.DefaultAdminPassword)
	require.NoError(t, err)
	assert.ErrorIs(t, svc.ApplyCheckout(990, order), ErrNoActiveSession)
}

func TestApplyCheckoutDebitsAndRecords(t *testing.T) {
	svc := newUserService(t)
	customer, err := svc.Login(repository.DefaultCustomerEmail, repository.DefaultCustomerPassword)
	require.NoError(t, err)

	order := domain.NewOrder(10, 8, 1000, 990, false)
	require.NoError(t, svc.ApplyCheckout(990, order))

	assert.InDelta(t, 990, customer.Customer.Credits, 1e-9)
	assert.Len(t, svc.Orders(customer), 1)
}
