package service

import (
	"errors"
	"fmt"

	"merchant-console/internal/domain"
	"merchant-console/internal/repository"
)

var (
	ErrUnknownCategory    = errors.New("no such category")
	ErrUnknownSubcategory = errors.New("no such subcategory")
	ErrBadPrice           = fmt.Errorf("price must be above 0 and below %.0f", domain.PriceLimit)
	ErrBadMemberPrice     = errors.New("member price must be above 0 and not above the normal price")
	ErrNegativeQuantity   = errors.New("stock quantity cannot be negative")
	ErrMissingFoodDetails = errors.New("food-type products require food details")
)

// InventoryService owns the admin-side inventory mutations: create,
// per-field edit, category changes across the food boundary, and
// removal. Every successful mutation persists the whole inventory file
// before returning.
type InventoryService interface {
	ResolveCategory(category string) (string, error)
	ResolveSubcategory(category, subcategory string) (string, error)
	CreateProduct(draft *domain.Product) (int, error)
	SaveProduct() error
	ChangeCategory(p *domain.Product, category, subcategory string, food *domain.FoodDetails) error
	RemoveProduct(id int) error
}

type inventoryService struct {
	products   repository.ProductRepository
	categories repository.CategoryRepository
}

// NewInventoryService creates a new instance of InventoryService.
func NewInventoryService(products repository.ProductRepository, categories repository.CategoryRepository) InventoryService {
	return &inventoryService{products: products, categories: categories}
}

// ResolveCategory validates a category name case-insensitively and
// returns the catalog's canonical casing.
func (s *inventoryService) ResolveCategory(category string) (string, error) {
	canonical, ok := s.categories.Catalog().CanonicalCategory(category)
	if !ok {
		return "", ErrUnknownCategory
	}
	return canonical, nil
}

// ResolveSubcategory validates a subcategory under a category and
// returns the catalog's canonical casing.
func (s *inventoryService) ResolveSubcategory(category, subcategory string) (string, error) {
	canonical, ok := s.categories.Catalog().CanonicalSubcategory(category, subcategory)
	if !ok {
		return "", ErrUnknownSubcategory
	}
	return canonical, nil
}

// validateDraft enforces the product invariants shared by create and edit.
func validateDraft(p *domain.Product) error {
	if p.Price <= 0 || p.Price >= domain.PriceLimit {
		return ErrBadPrice
	}
	if p.MemberPrice <= 0 || p.MemberPrice >= domain.PriceLimit || p.MemberPrice > p.Price {
		return ErrBadMemberPrice
	}
	if p.Quantity < 0 {
		return ErrNegativeQuantity
	}
	if p.IsFood() && p.Food == nil {
		return ErrMissingFoodDetails
	}
	return nil
}

// CreateProduct validates the draft, assigns the next product id,
// inserts it and persists the inventory. The assigned id is returned.
func (s *inventoryService) CreateProduct(draft *domain.Product) (int, error) {
	if err := validateDraft(draft); err != nil {
		return 0, err
	}
	id := s.products.Add(draft)
	if err := s.products.PersistAll(); err != nil {
		return 0, fmt.Errorf("failed to persist new product: %w", err)
	}
	return id, nil
}

// SaveProduct persists the inventory after an in-place field edit.
func (s *inventoryService) SaveProduct() error {
	if err := s.products.PersistAll(); err != nil {
		return fmt.Errorf("failed to persist product edit: %w", err)
	}
	return nil
}

// ChangeCategory moves a product to a new category/subcategory pair,
// switching the food variant in place while preserving the id and the
// numeric fields, then persists the inventory. Crossing into a
// food-type category requires the food details up front.
func (s *inventoryService) ChangeCategory(p *domain.Product, category, subcategory string, food *domain.FoodDetails) error {
	if domain.IsFoodCategory(category) && p.Food == nil && food == nil {
		return ErrMissingFoodDetails
	}
	p.SetCategory(category, subcategory, food)
	return s.SaveProduct()
}

// RemoveProduct deletes a product and persists the inventory.
func (s *inventoryService) RemoveProduct(id int) error {
	if err := s.products.Remove(id); err != nil {
		return err
	}
	if err := s.products.PersistAll(); err != nil {
		return fmt.Errorf("failed to persist product removal: %w", err)
	}
	return nil
}
