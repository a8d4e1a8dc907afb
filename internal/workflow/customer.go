package workflow

import (
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"merchant-console/internal/domain"
	"merchant-console/internal/prompt"
	"merchant-console/internal/service"
)

// runCustomer drives the customer console until logout. The shopping
// cart lives only for this login.
func (s *Session) runCustomer(user *domain.User) {
	cart := service.NewCartService()
	for {
		s.ui.CustomerMenu(user.DisplayName())
		reply := s.in.Read()
		switch reply.Kind {
		case prompt.Back:
			s.ui.AlertMainMenu()
			continue
		case prompt.Logout:
			return
		}

		switch reply.Value {
		case "1":
			if s.browseInventory() == prompt.Logout {
				return
			}
		case "2":
			if s.addToCart(cart) == prompt.Logout {
				return
			}
		case "3":
			if s.viewCart(user, cart) == prompt.Logout {
				return
			}
		case "4":
			confirmed, kind := s.in.Confirm("log out")
			if kind == prompt.Logout || confirmed {
				return
			}
		default:
			s.ui.AlertUnformatted("option")
		}
	}
}

// browseInventory pages through the inventory read-only.
func (s *Session) browseInventory() prompt.Kind {
	page := 1
	for {
		items := s.products.Products()
		pages := totalPages(len(items), ProductPageSize)
		if page > pages {
			page = pages
		}
		s.ui.InventoryPage(pageSlice(items, page, ProductPageSize))
		s.ui.InventoryMenu(page, pages)

		reply := s.in.Read()
		switch reply.Kind {
		case prompt.Back:
			return prompt.Back
		case prompt.Logout:
			return prompt.Logout
		}

		if next, turned := turnPage(reply.Value, page, pages, s.ui.AlertFirstPage, s.ui.AlertLastPage); turned {
			page = next
			continue
		}
		if reply.Value == "0" {
			return prompt.Accepted
		}
		s.ui.AlertUnformatted("option")
	}
}

// addToCart pages through the inventory and takes a product ID to add.
// The cart-full check runs before any product is selected.
func (s *Session) addToCart(cart service.CartService) prompt.Kind {
	if err := cart.CanAccept(); err != nil {
		s.ui.Alert(err.Error())
		return prompt.Accepted
	}

	page := 1
	for {
		items := s.products.Products()
		pages := totalPages(len(items), ProductPageSize)
		if page > pages {
			page = pages
		}
		s.ui.InventoryPage(pageSlice(items, page, ProductPageSize))
		s.ui.AddToCartMenu(page, pages)

		reply := s.in.Read()
		switch reply.Kind {
		case prompt.Back:
			return prompt.Back
		case prompt.Logout:
			return prompt.Logout
		}

		if next, turned := turnPage(reply.Value, page, pages, s.ui.AlertFirstPage, s.ui.AlertLastPage); turned {
			page = next
			continue
		}
		if reply.Value == "0" {
			return prompt.Accepted
		}

		product, err := s.lookupProduct(reply.Value)
		if err != nil {
			s.ui.Alert(err.Error())
			continue
		}
		if err := cart.CanSelect(product); err != nil {
			s.ui.Alert(err.Error())
			continue
		}

		switch s.collectQuantity(cart, product) {
		case prompt.Logout:
			return prompt.Logout
		case prompt.Back:
			continue
		}
		return prompt.Accepted
	}
}

// collectQuantity reads and confirms the quantity for one selected
// product, merging it into the cart.
func (s *Session) collectQuantity(cart service.CartService, product *domain.Product) prompt.Kind {
	for {
		quantity, kind := s.in.Int("quantity to add", func(q int) error {
			if q <= 0 || q > domain.ItemQuantityLimit {
				return fmt.Errorf("quantity must be between 1 and %d", domain.ItemQuantityLimit)
			}
			return nil
		})
		if kind != prompt.Accepted {
			return kind
		}

		confirmed, kind := s.in.Confirm(fmt.Sprintf("add %d x %s to the shopping cart", quantity, product.Name))
		if kind == prompt.Logout {
			return prompt.Logout
		}
		if !confirmed {
			s.ui.Cancelled("add to cart")
			return prompt.Back
		}

		if err := cart.Add(product, quantity); err != nil {
			s.ui.Alert(err.Error())
			continue
		}
		s.ui.Success("add to cart")
		return prompt.Accepted
	}
}

// viewCart pages through the cart and offers checkout.
func (s *Session) viewCart(user *domain.User, cart service.CartService) prompt.Kind {
	if cart.Cart().Size() == 0 {
		s.ui.Alert("the shopping cart is empty")
		return prompt.Accepted
	}

	page := 1
	for {
		items := cart.Cart().Items()
		pages := totalPages(len(items), CartPageSize)
		if page > pages {
			page = pages
		}
		s.ui.CartPage(pageSlice(items, page, CartPageSize), user.IsMember())
		s.ui.CartMenu(page, pages)

		reply := s.in.Read()
		switch reply.Kind {
		case prompt.Back:
			return prompt.Back
		case prompt.Logout:
			return prompt.Logout
		}

		if next, turned := turnPage(reply.Value, page, pages, s.ui.AlertFirstPage, s.ui.AlertLastPage); turned {
			page = next
			continue
		}
		switch reply.Value {
		case "0":
			return prompt.Accepted
		case "1":
			switch s.checkoutFlow(user, cart) {
			case prompt.Logout:
				return prompt.Logout
			case prompt.Accepted:
				// Checkout went through; the cart is empty now.
				return prompt.Accepted
			}
		default:
			s.ui.AlertUnformatted("option")
		}
	}
}

// checkoutFlow shows the order summary and pays on confirmation.
// A completed checkout returns Accepted; Back means the user returned
// to the cart without paying.
func (s *Session) checkoutFlow(user *domain.User, cart service.CartService) prompt.Kind {
	if cart.Cart().Size() == 0 {
		s.ui.Alert("the shopping cart is empty, there is nothing to check out")
		return prompt.Back
	}

	page := 1
	for {
		items := cart.Cart().Items()
		pages := totalPages(len(items), CartPageSize)
		s.ui.OrderSummary(cart.Cart(), pageSlice(items, page, CartPageSize), user)
		s.ui.CheckoutMenu(page, pages)

		reply := s.in.Read()
		switch reply.Kind {
		case prompt.Back:
			return prompt.Back
		case prompt.Logout:
			return prompt.Logout
		}

		if next, turned := turnPage(reply.Value, page, pages, s.ui.AlertFirstPage, s.ui.AlertLastPage); turned {
			page = next
			continue
		}
		switch reply.Value {
		case "0":
			return prompt.Back
		case "1":
			order, err := s.checkout.Prepare(user, cart.Cart())
			if err != nil {
				s.ui.Alert(err.Error())
				continue
			}
			s.ui.OrderBrief(order)

			confirmed, kind := s.in.Confirm("pay with credits")
			if kind == prompt.Logout {
				return prompt.Logout
			}
			if !confirmed {
				s.ui.Cancelled("checkout")
				continue
			}

			if err := s.checkout.Apply(user, cart.Cart(), order); err != nil {
				s.log.Error("checkout failed to persist", zap.Error(err))
				s.ui.Alert("checkout could not be saved, please try again")
				continue
			}
			s.ui.Success("checkout")
			return prompt.Accepted
		default:
			s.ui.AlertUnformatted("option")
		}
	}
}

// lookupProduct parses a product ID entered in a paged view.
func (s *Session) lookupProduct(input string) (*domain.Product, error) {
	id, err := strconv.Atoi(input)
	if err != nil {
		return nil, fmt.Errorf("%q is not a product ID", input)
	}
	return s.products.FindByID(id)
}
