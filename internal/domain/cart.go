package domain

const (
	// CartItemLimit is the maximum number of distinct items in a cart.
	CartItemLimit = 20

	// ItemQuantityLimit is the maximum quantity of one product per cart.
	ItemQuantityLimit = 10
)

// Item pairs a product reference with the quantity reserved in a cart.
type Item struct {
	Product  *Product
	Quantity int
}

// TotalPrice returns the item's subtotal at the normal price.
func (i *Item) TotalPrice() float64 {
	return i.Product.Price * float64(i.Quantity)
}

// TotalMemberPrice returns the item's subtotal at the member price.
func (i *Item) TotalMemberPrice() float64 {
	return i.Product.MemberPrice * float64(i.Quantity)
}

// ShoppingCart holds the items of the active session. It is created at
// login and discarded on logout or checkout; it is never persisted.
type ShoppingCart struct {
	items []*Item
}

// NewShoppingCart creates an empty shopping cart.
func NewShoppingCart() *ShoppingCart {
	return &ShoppingCart{}
}

// Items returns the cart's items in insertion order.
func (c *ShoppingCart) Items() []*Item {
	return c.items
}

// Size returns the number of distinct items in the cart.
func (c *ShoppingCart) Size() int {
	return len(c.items)
}

// TotalPrice returns the cart total at normal prices.
func (c *ShoppingCart) TotalPrice() float64 {
	var total float64
	for _, item := range c.items {
		total += item.TotalPrice()
	}
	return total
}

// TotalMemberPrice returns the cart total at member prices.
func (c *ShoppingCart) TotalMemberPrice() float64 {
	var total float64
	for _, item := range c.items {
		total += item.TotalMemberPrice()
	}
	return total
}

// MemberDiscount returns the amount a member saves over normal prices.
func (c *ShoppingCart) MemberDiscount() float64 {
	var discount float64
	for _, item := range c.items {
		discount += (item.Product.Price - item.Product.MemberPrice) * float64(item.Quantity)
	}
	return discount
}

// ItemByProduct returns the cart item holding the given product, or nil.
func (c *ShoppingCart) ItemByProduct(p *Product) *Item {
	for _, item := range c.items {
		if item.Product.ID == p.ID {
			return item
		}
	}
	return nil
}

// ProductQuantity returns how many units of the product the cart holds.
func (c *ShoppingCart) ProductQuantity(p *Product) int {
	if item := c.ItemByProduct(p); item != nil {
		return item.Quantity
	}
	return 0
}

// AddItem appends a new item for the product. Callers must have checked
// the cart and quantity limits; merging with an existing item is done
// through SetItemQuantity.
func (c *ShoppingCart) AddItem(p *Product, quantity int) {
	c.items = append(c.items, &Item{Product: p, Quantity: quantity})
}

// SetItemQuantity replaces the quantity of the item holding the product.
func (c *ShoppingCart) SetItemQuantity(p *Product, quantity int) {
	if item := c.ItemByProduct(p); item != nil {
		item.Quantity = quantity
	}
}

// Clear empties the cart.
func (c *ShoppingCart) Clear() {
	c.items = nil
}
