package workflow

import (
	"fmt"

	"go.uber.org/zap"

	"merchant-console/internal/domain"
	"merchant-console/internal/prompt"
	"merchant-console/internal/service"
)

// runAdmin drives the admin console until logout.
func (s *Session) runAdmin() {
	for {
		s.ui.AdminMenu()
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
			if s.createProduct() == prompt.Logout {
				return
			}
		case "3":
			if s.editProduct() == prompt.Logout {
				return
			}
		case "4":
			if s.removeProduct() == prompt.Logout {
				return
			}
		case "5":
			confirmed, kind := s.in.Confirm("log out")
			if kind == prompt.Logout || confirmed {
				return
			}
		default:
			s.ui.AlertUnformatted("option")
		}
	}
}

// askCategory resolves a category name against the catalog,
// re-prompting on unknown names.
func (s *Session) askCategory() (string, prompt.Kind) {
	s.ui.AvailableCategories(s.categories.Catalog())
	var category string
	reply := s.in.Until("category", func(in string) error {
		c, err := s.inventory.ResolveCategory(in)
		if err != nil {
			return err
		}
		category = c
		return nil
	})
	return category, reply.Kind
}

// askSubcategory resolves a subcategory under an already-resolved
// category.
func (s *Session) askSubcategory(category string) (string, prompt.Kind) {
	s.ui.AvailableSubcategories(s.categories.Catalog(), category)
	var subcategory string
	reply := s.in.Until("subcategory", func(in string) error {
		sc, err := s.inventory.ResolveSubcategory(category, in)
		if err != nil {
			return err
		}
		subcategory = sc
		return nil
	})
	return subcategory, reply.Kind
}

// collectFoodDetails reads the food-only fields. The expiry date may
// be left blank.
func (s *Session) collectFoodDetails() (*domain.FoodDetails, prompt.Kind) {
	expiry, kind := s.in.Date("expiry date (leave blank if none)")
	if kind != prompt.Accepted {
		return nil, kind
	}
	ingredients := s.in.Optional("ingredients")
	if ingredients.Escaped() {
		return nil, ingredients.Kind
	}
	storage := s.in.Optional("storage instructions")
	if storage.Escaped() {
		return nil, storage.Kind
	}
	allergen := s.in.Optional("allergen info")
	if allergen.Escaped() {
		return nil, allergen.Kind
	}
	return &domain.FoodDetails{
		Expiry:      expiry,
		Ingredients: ingredients.Value,
		Storage:     storage.Value,
		Allergen:    allergen.Value,
	}, prompt.Accepted
}

// createProduct walks through every field of a new product, shows the
// draft, and inserts it on confirmation. Any escape unwinds the whole
// workflow without touching the inventory.
func (s *Session) createProduct() prompt.Kind {
	category, kind := s.askCategory()
	if kind != prompt.Accepted {
		return kind
	}
	subcategory, kind := s.askSubcategory(category)
	if kind != prompt.Accepted {
		return kind
	}
	name := s.in.NonEmpty("product name")
	if name.Escaped() {
		return name.Kind
	}
	brand := s.in.Optional("brand")
	if brand.Escaped() {
		return brand.Kind
	}
	description := s.in.Optional("description")
	if description.Escaped() {
		return description.Kind
	}
	price, kind := s.in.Float("price", func(p float64) error {
		if p <= 0 || p >= domain.PriceLimit {
			return service.ErrBadPrice
		}
		return nil
	})
	if kind != prompt.Accepted {
		return kind
	}
	memberPrice, kind := s.in.Float("member price", func(m float64) error {
		if m <= 0 || m > price {
			return service.ErrBadMemberPrice
		}
		return nil
	})
	if kind != prompt.Accepted {
		return kind
	}
	quantity, kind := s.in.Int("stock quantity", func(q int) error {
		if q < 0 {
			return service.ErrNegativeQuantity
		}
		return nil
	})
	if kind != prompt.Accepted {
		return kind
	}

	var food *domain.FoodDetails
	if domain.IsFoodCategory(category) {
		food, kind = s.collectFoodDetails()
		if kind != prompt.Accepted {
			return kind
		}
	}

	draft := &domain.Product{
		Name:        name.Value,
		Brand:       brand.Value,
		Description: description.Value,
		Price:       price,
		MemberPrice: memberPrice,
		Quantity:    quantity,
		Category:    category,
		Subcategory: subcategory,
		Food:        food,
	}
	s.ui.ProductOverview(draft, "New product")

	confirmed, kind := s.in.Confirm("create this product")
	if kind == prompt.Logout {
		return prompt.Logout
	}
	if !confirmed {
		s.ui.Cancelled("create product")
		return prompt.Back
	}

	id, err := s.inventory.CreateProduct(draft)
	if err != nil {
		s.log.Error("product creation failed", zap.Error(err))
		s.ui.Alert(err.Error())
		return prompt.Back
	}
	s.ui.ProductCreated(id)
	return prompt.Accepted
}

// askProduct resolves a product ID against the inventory,
// re-prompting on unknown or malformed IDs.
func (s *Session) askProduct() (*domain.Product, prompt.Kind) {
	var product *domain.Product
	reply := s.in.Until("product ID", func(in string) error {
		p, err := s.lookupProduct(in)
		if err != nil {
			return err
		}
		product = p
		return nil
	})
	return product, reply.Kind
}

// editProduct selects a product and loops on its field menu until the
// admin goes back. Every accepted field change persists immediately.
func (s *Session) editProduct() prompt.Kind {
	product, kind := s.askProduct()
	if kind != prompt.Accepted {
		return kind
	}

	for {
		s.ui.EditProductMenu(product)
		reply := s.in.Read()
		switch reply.Kind {
		case prompt.Back:
			return prompt.Back
		case prompt.Logout:
			return prompt.Logout
		}

		if reply.Value == "0" {
			return prompt.Accepted
		}

		kind, edited := s.applyEdit(product, reply.Value)
		if kind == prompt.Logout {
			return prompt.Logout
		}
		if edited {
			if err := s.inventory.SaveProduct(); err != nil {
				s.log.Error("product edit failed to persist", zap.Error(err))
				s.ui.Alert("the change could not be saved")
				continue
			}
			s.ui.Success("edit product")
		}
	}
}

// confirmEdit gates one field change behind a y/n confirmation.
func (s *Session) confirmEdit(field string) (bool, prompt.Kind) {
	confirmed, kind := s.in.Confirm("update the " + field)
	if kind == prompt.Accepted && !confirmed {
		s.ui.Cancelled("edit product")
	}
	return confirmed, kind
}

// applyEdit mutates one field chosen on the edit menu, confirming
// before the value is applied. It reports whether the product changed;
// a Back escape inside a field leaves the product as it was and
// returns to the menu.
func (s *Session) applyEdit(product *domain.Product, option string) (prompt.Kind, bool) {
	setText := func(field string, read func() prompt.Reply, assign func(string)) (prompt.Kind, bool) {
		reply := read()
		if reply.Escaped() {
			return reply.Kind, false
		}
		ok, kind := s.confirmEdit(field)
		if kind != prompt.Accepted || !ok {
			return kind, false
		}
		assign(reply.Value)
		return prompt.Accepted, true
	}

	switch option {
	case "1":
		return s.editCategory(product)
	case "2":
		subcategory, kind := s.askSubcategory(product.Category)
		if kind != prompt.Accepted {
			return kind, false
		}
		ok, kind := s.confirmEdit("subcategory")
		if kind != prompt.Accepted || !ok {
			return kind, false
		}
		product.Subcategory = subcategory
		return prompt.Accepted, true
	case "3":
		return setText("product name",
			func() prompt.Reply { return s.in.NonEmpty("product name") },
			func(v string) { product.Name = v })
	case "4":
		return setText("brand",
			func() prompt.Reply { return s.in.Optional("brand") },
			func(v string) { product.Brand = v })
	case "5":
		return setText("description",
			func() prompt.Reply { return s.in.Optional("description") },
			func(v string) { product.Description = v })
	case "6":
		price, kind := s.in.Float("price", func(p float64) error {
			if p <= 0 || p >= domain.PriceLimit {
				return service.ErrBadPrice
			}
			if p < product.MemberPrice {
				return fmt.Errorf("price cannot drop below the member price of %.2f", product.MemberPrice)
			}
			return nil
		})
		if kind != prompt.Accepted {
			return kind, false
		}
		ok, kind := s.confirmEdit("price")
		if kind != prompt.Accepted || !ok {
			return kind, false
		}
		product.Price = price
		return prompt.Accepted, true
	case "7":
		memberPrice, kind := s.in.Float("member price", func(m float64) error {
			if m <= 0 || m > product.Price {
				return service.ErrBadMemberPrice
			}
			return nil
		})
		if kind != prompt.Accepted {
			return kind, false
		}
		ok, kind := s.confirmEdit("member price")
		if kind != prompt.Accepted || !ok {
			return kind, false
		}
		product.MemberPrice = memberPrice
		return prompt.Accepted, true
	case "8":
		quantity, kind := s.in.Int("stock quantity", func(q int) error {
			if q < 0 {
				return service.ErrNegativeQuantity
			}
			return nil
		})
		if kind != prompt.Accepted {
			return kind, false
		}
		ok, kind := s.confirmEdit("stock quantity")
		if kind != prompt.Accepted || !ok {
			return kind, false
		}
		product.Quantity = quantity
		return prompt.Accepted, true
	}

	if product.IsFood() {
		switch option {
		case "9":
			expiry, kind := s.in.Date("expiry date (leave blank if none)")
			if kind != prompt.Accepted {
				return kind, false
			}
			ok, kind := s.confirmEdit("expiry date")
			if kind != prompt.Accepted || !ok {
				return kind, false
			}
			product.Food.Expiry = expiry
			return prompt.Accepted, true
		case "10":
			return setText("ingredients",
				func() prompt.Reply { return s.in.Optional("ingredients") },
				func(v string) { product.Food.Ingredients = v })
		case "11":
			return setText("storage instructions",
				func() prompt.Reply { return s.in.Optional("storage instructions") },
				func(v string) { product.Food.Storage = v })
		case "12":
			return setText("allergen info",
				func() prompt.Reply { return s.in.Optional("allergen info") },
				func(v string) { product.Food.Allergen = v })
		}
	}

	s.ui.AlertUnformatted("option")
	return prompt.Accepted, false
}

// editCategory moves a product to a new category pair, collecting or
// discarding the food fields when the change crosses the food
// boundary. The product keeps its ID and numeric fields either way.
func (s *Session) editCategory(product *domain.Product) (prompt.Kind, bool) {
	category, kind := s.askCategory()
	if kind != prompt.Accepted {
		return kind, false
	}
	subcategory, kind := s.askSubcategory(category)
	if kind != prompt.Accepted {
		return kind, false
	}

	var food *domain.FoodDetails
	switch {
	case domain.IsFoodCategory(category) && !product.IsFood():
		s.ui.AlertTypeChange(true)
		food, kind = s.collectFoodDetails()
		if kind != prompt.Accepted {
			return kind, false
		}
	case !domain.IsFoodCategory(category) && product.IsFood():
		s.ui.AlertTypeChange(false)
	}

	confirmed, kind := s.in.Confirm(fmt.Sprintf("move this product to %s / %s", category, subcategory))
	if kind == prompt.Logout {
		return prompt.Logout, false
	}
	if !confirmed {
		s.ui.Cancelled("edit category")
		return prompt.Accepted, false
	}

	if err := s.inventory.ChangeCategory(product, category, subcategory, food); err != nil {
		s.log.Error("category change failed", zap.Error(err))
		s.ui.Alert(err.Error())
		return prompt.Accepted, false
	}
	s.ui.Success("edit category")
	// ChangeCategory persisted already; no second save needed.
	return prompt.Accepted, false
}

// removeProduct selects a product, shows it, and deletes it on
// confirmation.
func (s *Session) removeProduct() prompt.Kind {
	product, kind := s.askProduct()
	if kind != prompt.Accepted {
		return kind
	}
	s.ui.ProductOverview(product, "Product to remove")

	confirmed, kind := s.in.Confirm("remove this product")
	if kind == prompt.Logout {
		return prompt.Logout
	}
	if !confirmed {
		s.ui.Cancelled("remove product")
		return prompt.Back
	}

	if err := s.inventory.RemoveProduct(product.ID); err != nil {
		s.log.Error("product removal failed", zap.Error(err))
		s.ui.Alert(err.Error())
		return prompt.Back
	}
	s.ui.Success("remove product")
	return prompt.Accepted
}
