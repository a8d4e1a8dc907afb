package service

import (
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"merchant-console/internal/domain"
	"merchant-console/internal/repository"
)

type checkoutFixture struct {
	fs       afero.Fs
	users    repository.UserRepository
	products repository.ProductRepository
	userSvc  UserService
	checkout CheckoutService
	cart     CartService
	customer *domain.User
}

// newCheckoutFixture logs the default customer in against in-memory
// stores seeded with two products.
func newCheckoutFixture(t *testing.T) *checkoutFixture {
	t.Helper()
	fs := afero.NewMemMapFs()

	users := repository.NewUserRepository(repository.NewFileStore(fs, "users.txt"))
	_, err := users.Load()
	require.NoError(t, err)

	products := repository.NewProductRepository(repository.NewFileStore(fs, "products.txt"))
	_, err = products.Load()
	require.NoError(t, err)
	products.Add(&domain.Product{Name: "phone", Price: 300, MemberPrice: 250, Quantity: 5, Category: "Electronics", Subcategory: "Phones"})
	products.Add(&domain.Product{Name: "novel", Price: 20, MemberPrice: 15, Quantity: 9, Category: "Books", Subcategory: "Horror"})
	require.NoError(t, products.PersistAll())

	userSvc := NewUserService(users)
	customer, err := userSvc.Login(repository.DefaultCustomerEmail, repository.DefaultCustomerPassword)
	require.NoError(t, err)

	return &checkoutFixture{
		fs:       fs,
		users:    users,
		products: products,
		userSvc:  userSvc,
		checkout: NewCheckoutService(products, userSvc),
		cart:     NewCartService(),
		customer: customer,
	}
}

func (f *checkoutFixture) add(t *testing.T, id, quantity int) {
	t.Helper()
	p, err := f.products.FindByID(id)
	require.NoError(t, err)
	require.NoError(t, f.cart.Add(p, quantity))
}

func TestPrepareUsesNormalPricesForNonMembers(t *testing.T) {
	f := newCheckoutFixture(t)
	f.add(t, 1, 2) // 600
	f.add(t, 2, 5) // 100

	order, err := f.checkout.Prepare(f.customer, f.cart.Cart())
	require.NoError(t, err)
	assert.InDelta(t, 700, order.Price, 1e-9)
	assert.InDelta(t, 575, order.MemberPrice, 1e-9)
	assert.False(t, order.MemberPriceApplied)
	assert.InDelta(t, 1000, order.CreditBefore, 1e-9)
	assert.InDelta(t, 300, order.CreditAfter, 1e-9)
}

func TestPrepareUsesMemberPricesForActiveMembers(t *testing.T) {
	f := newCheckoutFixture(t)
	expiry := time.Now().Add(24 * time.Hour)
	f.customer.Customer.MemberExpiry = &expiry
	f.add(t, 1, 2)

	order, err := f.checkout.Prepare(f.customer, f.cart.Cart())
	require.NoError(t, err)
	assert.True(t, order.MemberPriceApplied)
	assert.InDelta(t, 1000-500, order.CreditAfter, 1e-9)
}

func TestExpiredMembershipPaysNormalPrices(t *testing.T) {
	f := newCheckoutFixture(t)
	expiry := time.Now().Add(-time.Hour)
	f.customer.Customer.MemberExpiry = &expiry
	f.add(t, 1, 1)

	order, err := f.checkout.Prepare(f.customer, f.cart.Cart())
	require.NoError(t, err)
	assert.False(t, order.MemberPriceApplied)
	assert.InDelta(t, 1000-300, order.CreditAfter, 1e-9)
}

func TestPrepareRejectsInsufficientCreditsWithoutMutation(t *testing.T) {
	f := newCheckoutFixture(t)
	f.add(t, 1, 4) // 1200 > 1000 credits

	_, err := f.checkout.Prepare(f.customer, f.cart.Cart())
	assert.ErrorIs(t, err, ErrInsufficientCredit)

	// Nothing changed: credits, stock and the cart are untouched.
	assert.InDelta(t, 1000, f.customer.Customer.Credits, 1e-9)
	p, err := f.products.FindByID(1)
	require.NoError(t, err)
	assert.Equal(t, 5, p.Quantity)
	assert.Equal(t, 1, f.cart.Cart().Size())

	// Rejection is repeatable with the same outcome.
	_, err = f.checkout.Prepare(f.customer, f.cart.Cart())
	assert.ErrorIs(t, err, ErrInsufficientCredit)
	assert.InDelta(t, 1000, f.customer.Customer.Credits, 1e-9)
}

func TestPrepareRejectsAdmins(t *testing.T) {
	f := newCheckoutFixture(t)
	admin, err := f.userSvc.Login(repository.DefaultAdminEmail, repository.DefaultAdminPassword)
	require.NoError(t, err)

	_, err = f.checkout.Prepare(admin, f.cart.Cart())
	assert.ErrorIs(t, err, ErrNotACustomer)
}

func TestSpendingDownToZeroCreditsSurvivesReload(t *testing.T) {
	f := newCheckoutFixture(t)
	f.add(t, 1, 3) // 900
	f.add(t, 2, 5) // 100, exactly the full balance

	order, err := f.checkout.Prepare(f.customer, f.cart.Cart())
	require.NoError(t, err)
	assert.Zero(t, order.CreditAfter)
	require.NoError(t, f.checkout.Apply(f.customer, f.cart.Cart(), order))

	reloaded := repository.NewUserRepository(repository.NewFileStore(f.fs, "users.txt"))
	_, err = reloaded.Load()
	require.NoError(t, err)
	saved, err := reloaded.FindByEmail(repository.DefaultCustomerEmail)
	require.NoError(t, err)
	assert.Zero(t, saved.Customer.Credits)
}

func TestApplyCommitsTheWholeCheckout(t *testing.T) {
	f := newCheckoutFixture(t)
	f.add(t, 1, 2)
	f.add(t, 2, 3)

	order, err := f.checkout.Prepare(f.customer, f.cart.Cart())
	require.NoError(t, err)
	require.NoError(t, f.checkout.Apply(f.customer, f.cart.Cart(), order))

	// Stock decremented and persisted.
	p1, err := f.products.FindByID(1)
	require.NoError(t, err)
	assert.Equal(t, 3, p1.Quantity)
	p2, err := f.products.FindByID(2)
	require.NoError(t, err)
	assert.Equal(t, 6, p2.Quantity)

	reloaded := repository.NewProductRepository(repository.NewFileStore(f.fs, "products.txt"))
	_, err = reloaded.Load()
	require.NoError(t, err)
	persisted, err := reloaded.FindByID(1)
	require.NoError(t, err)
	assert.Equal(t, 3, persisted.Quantity)

	// Credits debited and persisted.
	assert.InDelta(t, 1000-660, f.customer.Customer.Credits, 1e-9)
	reloadedUsers := repository.NewUserRepository(repository.NewFileStore(f.fs, "users.txt"))
	_, err = reloadedUsers.Load()
	require.NoError(t, err)
	saved, err := reloadedUsers.FindByEmail(repository.DefaultCustomerEmail)
	require.NoError(t, err)
	assert.InDelta(t, 1000-660, saved.Customer.Credits, 1e-9)

	// Cart cleared, order recorded in memory.
	assert.Zero(t, f.cart.Cart().Size())
	orders := f.userSvc.Orders(f.customer)
	require.Len(t, orders, 1)
	assert.Equal(t, order.ID, orders[0].ID)
}
