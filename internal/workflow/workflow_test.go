package workflow

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"merchant-console/internal/domain"
	"merchant-console/internal/prompt"
	"merchant-console/internal/render"
	"merchant-console/internal/repository"
	"merchant-console/internal/service"
)

type sessionFixture struct {
	fs       afero.Fs
	out      *bytes.Buffer
	users    repository.UserRepository
	products repository.ProductRepository
}

// runSession feeds the scripted lines through a full session over
// in-memory stores and returns the fixture for assertions.
func runSession(t *testing.T, lines ...string) *sessionFixture {
	t.Helper()
	fs := afero.NewMemMapFs()

	users := repository.NewUserRepository(repository.NewFileStore(fs, "users.txt"))
	_, err := users.Load()
	require.NoError(t, err)

	products := repository.NewProductRepository(repository.NewFileStore(fs, "products.txt"))
	_, err = products.Load()
	require.NoError(t, err)
	products.Add(&domain.Product{Name: "phone", Brand: "ring", Description: "a phone",
		Price: 300, MemberPrice: 250, Quantity: 5, Category: "Electronics", Subcategory: "Phones"})
	require.NoError(t, products.PersistAll())

	categories := repository.NewCategoryRepository(repository.NewFileStore(fs, "categories.txt"))
	_, err = categories.Load()
	require.NoError(t, err)

	var out bytes.Buffer
	ui := render.NewConsole(&out)
	in := prompt.NewReader(strings.NewReader(strings.Join(lines, "\n")), ui)

	userService := service.NewUserService(users)
	inventoryService := service.NewInventoryService(products, categories)
	checkoutService := service.NewCheckoutService(products, userService)

	session := NewSession(ui, in, zap.NewNop(), userService, inventoryService, checkoutService, products, categories)
	session.Run()

	return &sessionFixture{fs: fs, out: &out, users: users, products: products}
}

func TestSessionExitsOnConfirmedExit(t *testing.T) {
	f := runSession(t,
		"2", "y",
	)
	assert.Contains(t, f.out.String(), "Welcome to Monash Merchant")
}

func TestSessionRejectsBadCredentialsThenLogsIn(t *testing.T) {
	f := runSession(t,
		"1",
		"admin@merchant.monash.edu", "wrongpass",
		"ADMIN@MERCHANT.MONASH.EDU", "12345678",
		"5", "y",
		"2", "y",
	)
	out := f.out.String()
	assert.Contains(t, out, "email or password is incorrect")
	assert.Contains(t, out, "Welcome, Admin")
}

func TestAdminCreatesProductEndToEnd(t *testing.T) {
	f := runSession(t,
		"1",
		"admin@merchant.monash.edu", "12345678",
		"2",
		"books", "horror",
		"Dracula",
		"", // brand left blank
		"a classic",
		"30", "25", "4",
		"y",
		"5", "y",
		"2", "y",
	)

	assert.Contains(t, f.out.String(), "product created with ID 2")

	reloaded := repository.NewProductRepository(repository.NewFileStore(f.fs, "products.txt"))
	_, err := reloaded.Load()
	require.NoError(t, err)
	created, err := reloaded.FindByID(2)
	require.NoError(t, err)
	assert.Equal(t, "Dracula", created.Name)
	assert.Equal(t, prompt.NotSpecified, created.Brand)
	assert.Equal(t, "Books", created.Category)
	assert.Equal(t, "Horror", created.Subcategory)
	assert.Nil(t, created.Food)
}

func TestAdminCreateUnwindsWhollyOnBackEscape(t *testing.T) {
	f := runSession(t,
		"1",
		"admin@merchant.monash.edu", "12345678",
		"2",
		"books", "horror",
		`\b`, // escape in the name field abandons the whole draft
		"5", "y",
		"2", "y",
	)

	assert.NotContains(t, f.out.String(), "product created")
	assert.Len(t, f.products.Products(), 1)
}

func TestAdminEditsPriceWithConfirmation(t *testing.T) {
	f := runSession(t,
		"1",
		"admin@merchant.monash.edu", "12345678",
		"3", "1",
		"6", "120", "y", // new price, confirmed
		"0",
		"5", "y",
		"2", "y",
	)

	assert.Contains(t, f.out.String(), "[Success] edit product completed.")

	reloaded := repository.NewProductRepository(repository.NewFileStore(f.fs, "products.txt"))
	_, err := reloaded.Load()
	require.NoError(t, err)
	p, err := reloaded.FindByID(1)
	require.NoError(t, err)
	assert.InDelta(t, 120, p.Price, 1e-9)
}

func TestAdminEditDeclinedLeavesProductUntouched(t *testing.T) {
	f := runSession(t,
		"1",
		"admin@merchant.monash.edu", "12345678",
		"3", "1",
		"6", "120", "n", // decline the confirmation
		"0",
		"5", "y",
		"2", "y",
	)

	assert.Contains(t, f.out.String(), "[Cancelled] edit product was cancelled.")

	p, err := f.products.FindByID(1)
	require.NoError(t, err)
	assert.InDelta(t, 300, p.Price, 1e-9)
}

func TestEditMenuBackOptionReturnsToAdminMenu(t *testing.T) {
	f := runSession(t,
		"1",
		"admin@merchant.monash.edu", "12345678",
		"3", "1",
		"0",      // back to the admin menu
		"5", "y", // must read as logout, not as a field edit
		"2", "y",
	)

	out := f.out.String()
	assert.NotContains(t, out, "[Success] edit product completed.")
	// The next menu rendered is the admin menu, not another field prompt.
	assert.NotContains(t, out, "Please enter description")

	p, err := f.products.FindByID(1)
	require.NoError(t, err)
	assert.Equal(t, "a phone", p.Description)
	assert.Equal(t, "phone", p.Name)
}

func TestAdminMovesProductAcrossTheFoodBoundary(t *testing.T) {
	f := runSession(t,
		"1",
		"admin@merchant.monash.edu", "12345678",
		"3", "1", // edit product 1
		"1",              // edit category
		"food", "bread",  // new pair crosses into food
		"2030 1 1",       // expiry date
		"metal", "dry", "none",
		"y",
		"0",
		"5", "y",
		"2", "y",
	)

	assert.Contains(t, f.out.String(), "food-type category")

	moved, err := f.products.FindByID(1)
	require.NoError(t, err)
	assert.Equal(t, "Food", moved.Category)
	assert.Equal(t, "Bread", moved.Subcategory)
	require.NotNil(t, moved.Food)
	assert.Equal(t, "metal", moved.Food.Ingredients)
	// Identity and numerics survive the switch.
	assert.Equal(t, 1, moved.ID)
	assert.InDelta(t, 300, moved.Price, 1e-9)
	assert.Equal(t, 5, moved.Quantity)
}

func TestCustomerAddsToCartAndChecksOut(t *testing.T) {
	f := runSession(t,
		"1",
		"member@student.monash.edu", "Monash1234",
		"2",      // add product to cart
		"1",      // product ID
		"2", "y", // quantity, confirm
		"3",      // view cart
		"1",      // checkout
		"1", "y", // pay with credits, confirm
		"4", "y",
		"2", "y",
	)

	out := f.out.String()
	assert.Contains(t, out, "Welcome, Louis Li")
	assert.Contains(t, out, "[Success] checkout completed.")

	// Stock and credits both changed and were persisted.
	p, err := f.products.FindByID(1)
	require.NoError(t, err)
	assert.Equal(t, 3, p.Quantity)

	reloadedUsers := repository.NewUserRepository(repository.NewFileStore(f.fs, "users.txt"))
	_, err = reloadedUsers.Load()
	require.NoError(t, err)
	customer, err := reloadedUsers.FindByEmail("member@student.monash.edu")
	require.NoError(t, err)
	assert.InDelta(t, 1000-600, customer.Customer.Credits, 1e-9)
}

func TestCustomerCannotOverdrawCredits(t *testing.T) {
	f := runSession(t,
		"1",
		"member@student.monash.edu", "Monash1234",
		"2",
		"1",
		"4", "y", // 4 x 300 = 1200 > 1000 credits
		"3",
		"1",
		"1",  // pay attempt fails
		"0",  // back to the cart
		"0",  // back to the menu
		"4", "y",
		"2", "y",
	)

	assert.Contains(t, f.out.String(), "not enough credits")

	// Nothing was committed.
	p, err := f.products.FindByID(1)
	require.NoError(t, err)
	assert.Equal(t, 5, p.Quantity)
}

func TestLogoutTokenEndsTheSessionImmediately(t *testing.T) {
	f := runSession(t,
		"1",
		"member@student.monash.edu", "Monash1234",
		"2",
		`\l`, // straight back to the welcome page, no confirmation
		"2", "y",
	)

	out := f.out.String()
	// The guest menu rendered again after the shortcut logout.
	assert.GreaterOrEqual(t, strings.Count(out, "Welcome to Monash Merchant"), 2)
}

func TestPagingAlertsAtTheEdges(t *testing.T) {
	f := runSession(t,
		"1",
		"member@student.monash.edu", "Monash1234",
		"1",
		"<",  // already on the first page
		">",  // only one page of products
		"0",
		"4", "y",
		"2", "y",
	)

	out := f.out.String()
	assert.Contains(t, out, "already the first page")
	assert.Contains(t, out, "already the last page")
}
