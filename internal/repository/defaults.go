package repository

import (
	"time"

	"merchant-console/internal/domain"
)

// Default accounts seeded when the user store has no usable content.
const (
	DefaultAdminEmail       = "admin@merchant.monash.edu"
	DefaultAdminPassword    = "12345678"
	DefaultCustomerEmail    = "member@student.monash.edu"
	DefaultCustomerPassword = "Monash1234"
)

func defaultUsers() []*domain.User {
	return []*domain.User{
		domain.NewCustomer(DefaultCustomerEmail, DefaultCustomerPassword, domain.CustomerProfile{
			FirstName: "louis",
			LastName:  "li",
			Birthday:  time.Date(1998, time.March, 18, 0, 0, 0, 0, time.UTC),
			Mobile:    "111222333",
			Address:   "earth",
			Gender:    "male",
			Credits:   domain.DefaultCredits,
		}),
		domain.NewAdmin(DefaultAdminEmail, DefaultAdminPassword),
	}
}

func defaultCatalog() *domain.Catalog {
	catalog := domain.NewCatalog()
	catalog.Put("Electronics", []string{"Phones", "Earbuds"})
	catalog.Put("Books", []string{"Horror", "Romantic"})
	catalog.Put("Beauty", []string{"Skincare", "Makeup"})
	catalog.Put("Personal Care", []string{"Hygiene", "Grooming"})
	catalog.Put("Food", []string{"Fruits", "Bread"})
	catalog.Put("Beverages", []string{"Water", "Juices"})
	return catalog
}
