package repository

import (
	"merchant-console/internal/codec"
	"merchant-console/internal/domain"
)

// CategoryRepository defines the store for the category catalog used to
// validate product category/subcategory pairs.
type CategoryRepository interface {
	Load() (LoadReport, error)
	PersistAll() error
	Catalog() *domain.Catalog
}

type categoryRepository struct {
	store   *FileStore
	catalog *domain.Catalog
}

// NewCategoryRepository creates a catalog store backed by the given file.
func NewCategoryRepository(store *FileStore) CategoryRepository {
	return &categoryRepository{store: store, catalog: domain.NewCatalog()}
}

// Load reads every catalog line, skipping and counting invalid ones. A
// missing, empty or fully invalid file seeds the default catalog.
func (r *categoryRepository) Load() (LoadReport, error) {
	lines, err := r.store.ReadLines()
	if err != nil {
		return LoadReport{}, err
	}

	if len(lines) == 0 {
		r.catalog = defaultCatalog()
		return LoadReport{SeededDefaults: true}, nil
	}

	var report LoadReport
	r.catalog = domain.NewCatalog()
	for _, line := range lines {
		category, subcategories, err := codec.DecodeCategory(line)
		if err != nil {
			report.InvalidLines++
			continue
		}
		r.catalog.Put(category, subcategories)
	}

	if r.catalog.Len() == 0 {
		r.catalog = defaultCatalog()
		report.SeededDefaults = true
	}
	return report, nil
}

// PersistAll rewrites the whole catalog file in deterministic order.
func (r *categoryRepository) PersistAll() error {
	categories := r.catalog.Categories()
	lines := make([]string, 0, len(categories))
	for _, category := range categories {
		lines = append(lines, codec.EncodeCategory(category, r.catalog.Subcategories(category)))
	}
	return r.store.WriteLines(lines)
}

// Catalog returns the loaded catalog.
func (r *categoryRepository) Catalog() *domain.Catalog {
	return r.catalog
}
