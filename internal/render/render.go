// Package render prints every screen of the console: menus, tables,
// prompts and alerts. It owns stdout so nothing else in the process
// writes user-facing text.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"merchant-console/internal/domain"
)

const lineWidth = 73

var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	alertStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	mutedStyle   = lipgloss.NewStyle().Faint(true)
	headerStyle  = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle    = lipgloss.NewStyle().Padding(0, 1)
)

// Console renders every user-facing screen to one writer.
type Console struct {
	out io.Writer
}

// NewConsole creates a console renderer writing to out.
func NewConsole(out io.Writer) *Console {
	return &Console{out: out}
}

func (c *Console) printf(format string, args ...any) {
	fmt.Fprintf(c.out, format, args...)
}

func (c *Console) println(args ...any) {
	fmt.Fprintln(c.out, args...)
}

func (c *Console) frame(title string) {
	c.println()
	c.println(strings.Repeat("+", lineWidth))
	c.println(titleStyle.Render(strings.Repeat(" ", 20) + title))
	c.println(strings.Repeat("+", lineWidth))
}

// Banner prints the system usage screen shown once at startup.
func (c *Console) Banner() {
	c.println()
	c.println("<------------------SYSTEM USAGE--------------------->")
	c.println("<  Type the number before an option to choose it.    >")
	c.println("<                                                    >")
	c.println(`<  Type \b in any input field to GO BACK to the      >`)
	c.println(`<  previous page, or \l to directly LOG OUT.         >`)
	c.println("<                                                    >")
	c.println("<  Logging out via the shortcut will NOT ask for     >")
	c.println("<  confirmation, please use it with care.            >")
	c.println("<--------------------------------------------------->")
	c.println()
}

// GuestMenu prints the pre-login menu.
func (c *Console) GuestMenu() {
	c.frame("Welcome to Monash Merchant")
	c.println("1. Login")
	c.println("2. Exit")
	c.println("Please enter an option:")
}

// CustomerMenu prints the customer main menu.
func (c *Console) CustomerMenu(name string) {
	c.frame("Welcome, " + name)
	c.println("1. View inventory")
	c.println("2. Add product to shopping cart")
	c.println("3. View shopping cart")
	c.println("4. Logout")
	c.println("Please enter an option:")
}

// AdminMenu prints the admin main menu.
func (c *Console) AdminMenu() {
	c.frame("Welcome, Admin")
	c.println("1. View inventory")
	c.println("2. Add new product")
	c.println("3. Edit existing product")
	c.println("4. Remove product")
	c.println("5. Logout")
	c.println("Please enter an option:")
}

// EditProductMenu prints the field-selection menu for a product edit,
// scoped to the product's current type.
func (c *Console) EditProductMenu(p *domain.Product) {
	c.frame("Edit product")
	c.ProductOverview(p, "Current product")
	c.println("1.  Edit category")
	c.println("2.  Edit subcategory")
	c.println("3.  Edit name")
	c.println("4.  Edit brand")
	c.println("5.  Edit description")
	c.println("6.  Edit price")
	c.println("7.  Edit member price")
	c.println("8.  Edit stock quantity")
	if p.IsFood() {
		c.println("9.  Edit expiry date")
		c.println("10. Edit ingredients")
		c.println("11. Edit storage instructions")
		c.println("12. Edit allergen info")
	}
	c.println("0. Back to main page")
	c.println("Please enter an option:")
}

func (c *Console) pageFooter(page, totalPages int) {
	c.printf("%sPage %03d/%03d\n", strings.Repeat(" ", 28), page, totalPages)
	c.println(mutedStyle.Render(strings.Repeat(" ", 12) + "Input '>' for next page, '<' for previous page"))
	c.println()
}

// InventoryMenu prints the paging footer and options of the inventory view.
func (c *Console) InventoryMenu(page, totalPages int) {
	c.pageFooter(page, totalPages)
	c.println("0. Back to main page")
	c.println("Please enter an option:")
}

// AddToCartMenu prints the paging footer and options of the
// product-selection view.
func (c *Console) AddToCartMenu(page, totalPages int) {
	c.pageFooter(page, totalPages)
	c.println("Enter a product ID to add it to your cart")
	c.println("0. Back to main page")
	c.println("Please enter an option:")
}

// CartMenu prints the paging footer and options of the cart view.
func (c *Console) CartMenu(page, totalPages int) {
	c.pageFooter(page, totalPages)
	c.println("1. Checkout")
	c.println("0. Back to main page")
	c.println("Please enter an option:")
}

// CheckoutMenu prints the paging footer and options of the order summary.
func (c *Console) CheckoutMenu(page, totalPages int) {
	c.pageFooter(page, totalPages)
	c.println("1. Pay with credits")
	c.println("0. Back to shopping cart page")
	c.println("Please enter an option:")
}

// table renders rows under headers with per-column widths.
func (c *Console) table(headers []string, rows [][]string) {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if w := lipgloss.Width(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}
	for i := range widths {
		widths[i] += 2
	}

	var sb strings.Builder
	for i, h := range headers {
		sb.WriteString(headerStyle.Width(widths[i]).Render(h))
	}
	sb.WriteString("\n")
	for _, row := range rows {
		for i, cell := range row {
			sb.WriteString(cellStyle.Width(widths[i]).Render(cell))
		}
		sb.WriteString("\n")
	}
	c.printf("%s", sb.String())
}

func formatMoney(f float64) string {
	return fmt.Sprintf("%.2f", f)
}

func orNotSpecified(s string) string {
	if s == "" {
		return "Not specified"
	}
	return s
}

// InventoryPage prints one page of the inventory table.
func (c *Console) InventoryPage(products []*domain.Product) {
	c.frame("Inventory")
	rows := make([][]string, 0, len(products))
	for _, p := range products {
		rows = append(rows, []string{
			fmt.Sprintf("%d", p.ID), p.Name, orNotSpecified(p.Brand),
			formatMoney(p.Price), formatMoney(p.MemberPrice),
			fmt.Sprintf("%d", p.Quantity), p.Category, p.Subcategory,
		})
	}
	c.table([]string{"ID", "Name", "Brand", "Price", "Member", "Stock", "Category", "Subcategory"}, rows)
}

// CartPage prints one page of the shopping cart, priced for the
// session's membership status.
func (c *Console) CartPage(items []*domain.Item, isMember bool) {
	c.frame("Shopping cart")
	rows := make([][]string, 0, len(items))
	for _, item := range items {
		price := item.TotalPrice()
		if isMember {
			price = item.TotalMemberPrice()
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d", item.Product.ID), item.Product.Name,
			fmt.Sprintf("%d", item.Quantity), formatMoney(price),
		})
	}
	c.table([]string{"ID", "Name", "Quantity", "Subtotal"}, rows)
}

// OrderSummary prints one page of the pre-checkout summary with the
// totals and the customer's balance.
func (c *Console) OrderSummary(cart *domain.ShoppingCart, items []*domain.Item, user *domain.User) {
	c.frame("Order summary")
	rows := make([][]string, 0, len(items))
	for _, item := range items {
		rows = append(rows, []string{
			fmt.Sprintf("%d", item.Product.ID), item.Product.Name,
			fmt.Sprintf("%d", item.Quantity),
			formatMoney(item.TotalPrice()), formatMoney(item.TotalMemberPrice()),
		})
	}
	c.table([]string{"ID", "Name", "Quantity", "Subtotal", "Member subtotal"}, rows)

	c.println()
	c.printf("Total price:        %s\n", formatMoney(cart.TotalPrice()))
	c.printf("Member total:       %s\n", formatMoney(cart.TotalMemberPrice()))
	c.printf("Member discount:    %s\n", formatMoney(cart.MemberDiscount()))
	if user.IsMember() {
		c.println(successStyle.Render("Membership active: member prices apply."))
	}
	c.printf("Your credits:       %s\n", formatMoney(user.Customer.Credits))
}

// ProductOverview prints every field of one product under a caption.
func (c *Console) ProductOverview(p *domain.Product, caption string) {
	c.println()
	c.println(titleStyle.Render(caption))
	c.printf("  Product ID:    %d\n", p.ID)
	c.printf("  Name:          %s\n", p.Name)
	c.printf("  Brand:         %s\n", orNotSpecified(p.Brand))
	c.printf("  Description:   %s\n", orNotSpecified(p.Description))
	c.printf("  Price:         %s\n", formatMoney(p.Price))
	c.printf("  Member price:  %s\n", formatMoney(p.MemberPrice))
	c.printf("  Stock:         %d\n", p.Quantity)
	c.printf("  Category:      %s / %s\n", p.Category, p.Subcategory)
	if p.Food != nil {
		expiry := "Not specified"
		if p.Food.Expiry != nil {
			expiry = p.Food.Expiry.Format("2006-01-02")
		}
		c.printf("  Expiry date:   %s\n", expiry)
		c.printf("  Ingredients:   %s\n", orNotSpecified(p.Food.Ingredients))
		c.printf("  Storage:       %s\n", orNotSpecified(p.Food.Storage))
		c.printf("  Allergen info: %s\n", orNotSpecified(p.Food.Allergen))
	}
}

// OrderBrief prints the order snapshot shown before the final checkout
// confirmation.
func (c *Console) OrderBrief(o *domain.Order) {
	c.println()
	c.println(titleStyle.Render("Order brief"))
	c.printf("  Normal price:   %s\n", formatMoney(o.Price))
	c.printf("  Member price:   %s\n", formatMoney(o.MemberPrice))
	if o.MemberPriceApplied {
		c.println("  Member discount applies to this order.")
	}
	c.printf("  Credits before: %s\n", formatMoney(o.CreditBefore))
	c.printf("  Credits after:  %s\n", formatMoney(o.CreditAfter))
}

// AvailableCategories lists the catalog's categories.
func (c *Console) AvailableCategories(catalog *domain.Catalog) {
	c.println("Available categories: " + strings.Join(catalog.Categories(), " / "))
}

// AvailableSubcategories lists the subcategories of one category.
func (c *Console) AvailableSubcategories(catalog *domain.Catalog, category string) {
	c.println("Available subcategories: " + strings.Join(catalog.Subcategories(category), " / "))
}

// PromptField asks for one named field.
func (c *Console) PromptField(field string) {
	c.printf("Please enter %s:\n", field)
}

// PromptDate asks for a date in the interactive entry format.
func (c *Console) PromptDate(field string) {
	c.printf("Please enter %s in format (yyyy M d), e.g. 2023 3 5:\n", field)
}

// PromptConfirm asks for the final y/n confirmation of an operation.
func (c *Console) PromptConfirm(operation string) {
	c.printf("Please confirm to %s (y/n):\n", operation)
}

// Success reports a completed operation.
func (c *Console) Success(operation string) {
	c.println(successStyle.Render(fmt.Sprintf("[Success] %s completed.", operation)))
}

// ProductCreated reports a newly created product and its assigned ID.
func (c *Console) ProductCreated(id int) {
	c.println(successStyle.Render(fmt.Sprintf("[Success] product created with ID %d.", id)))
}

// Cancelled reports an aborted operation.
func (c *Console) Cancelled(operation string) {
	c.println(mutedStyle.Render(fmt.Sprintf("[Cancelled] %s was cancelled.", operation)))
}

// Alert prints a standardized error alert.
func (c *Console) Alert(msg string) {
	c.println(alertStyle.Render("[Alert] " + msg))
}

// AlertUnformatted reports input that could not be parsed for a field.
func (c *Console) AlertUnformatted(field string) {
	c.Alert(fmt.Sprintf("the input is not a valid %s, please try again", field))
}

// AlertInvalid reports a syntactically valid value outside a field's range.
func (c *Console) AlertInvalid(field string) {
	c.Alert(fmt.Sprintf("the %s is invalid, please try again", field))
}

// AlertFirstPage reports backward navigation from the first page.
func (c *Console) AlertFirstPage() {
	c.Alert("this is already the first page")
}

// AlertLastPage reports forward navigation past the last page.
func (c *Console) AlertLastPage() {
	c.Alert("this is already the last page")
}

// AlertMainMenu reports a back escape at a main menu.
func (c *Console) AlertMainMenu() {
	c.Alert("this is the main page, there is no previous page")
}

// AlertTypeChange warns before a food/non-food variant switch.
func (c *Console) AlertTypeChange(toFood bool) {
	if toFood {
		c.Alert("the new category is a food-type category; the food fields will now be collected")
	} else {
		c.Alert("the new category is not a food-type category; expiry date, ingredients, storage instructions and allergen info will be dropped")
	}
}

// StoreNotice reports the outcome of a store load: seeded defaults or
// a count of skipped lines.
func (c *Console) StoreNotice(path string, seededDefaults bool, invalidLines int) {
	if seededDefaults {
		c.Alert(fmt.Sprintf("%s is missing or has no valid content, default data is used", path))
		return
	}
	if invalidLines > 0 {
		c.Alert(fmt.Sprintf("%s contains %d invalid line(s), they were skipped", path, invalidLines))
	}
}
