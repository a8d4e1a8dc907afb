package repository

import (
	"errors"
	"sort"

	"merchant-console/internal/codec"
	"merchant-console/internal/domain"
)

var (
	ErrProductNotFound = errors.New("product not found")
)

// ProductRepository defines the inventory store. It owns the product id
// counter: ids are assigned monotonically on create and never reused,
// with the next id derived from the highest existing id at load time.
type ProductRepository interface {
	Load() (LoadReport, error)
	PersistAll() error
	FindByID(id int) (*domain.Product, error)
	Products() []*domain.Product
	Add(p *domain.Product) int
	Remove(id int) error
}

type productRepository struct {
	store    *FileStore
	products []*domain.Product
	nextID   int
}

// NewProductRepository creates an inventory store backed by the given file.
func NewProductRepository(store *FileStore) ProductRepository {
	return &productRepository{store: store, nextID: 1}
}

// Load reads every product line, skipping and counting invalid ones.
// An empty inventory is a valid state; there are no seed products.
func (r *productRepository) Load() (LoadReport, error) {
	lines, err := r.store.ReadLines()
	if err != nil {
		return LoadReport{}, err
	}

	var report LoadReport
	r.products = nil
	r.nextID = 1
	for _, line := range lines {
		product, err := codec.DecodeProduct(line)
		if err != nil {
			report.InvalidLines++
			continue
		}
		r.products = append(r.products, product)
		if product.ID >= r.nextID {
			r.nextID = product.ID + 1
		}
	}
	r.sortByID()
	return report, nil
}

// PersistAll rewrites the whole inventory file from the in-memory
// collection.
func (r *productRepository) PersistAll() error {
	lines := make([]string, 0, len(r.products))
	for _, product := range r.products {
		lines = append(lines, codec.EncodeProduct(product))
	}
	return r.store.WriteLines(lines)
}

// FindByID looks a product up by its id.
func (r *productRepository) FindByID(id int) (*domain.Product, error) {
	for _, product := range r.products {
		if product.ID == id {
			return product, nil
		}
	}
	return nil, ErrProductNotFound
}

// Products returns the inventory ordered by id.
func (r *productRepository) Products() []*domain.Product {
	return r.products
}

// Add assigns the next id to the product, inserts it and returns the id.
func (r *productRepository) Add(p *domain.Product) int {
	p.ID = r.nextID
	r.nextID++
	r.products = append(r.products, p)
	r.sortByID()
	return p.ID
}

// Remove deletes the product with the given id. Removed ids are never
// reassigned.
func (r *productRepository) Remove(id int) error {
	for i, product := range r.products {
		if product.ID == id {
			r.products = append(r.products[:i], r.products[i+1:]...)
			return nil
		}
	}
	return ErrProductNotFound
}

func (r *productRepository) sortByID() {
	sort.Slice(r.products, func(i, j int) bool {
		return r.products[i].ID < r.products[j].ID
	})
}
