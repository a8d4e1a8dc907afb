// Package codec serializes the console's entities to and from the
// delimited single-line record format used by the flat-file stores.
// The concrete entity shape is selected purely by field count; any
// mismatch or per-field parse failure yields ErrInvalidLine so that
// loaders can tally bad lines without aborting a whole load.
package codec

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"merchant-console/internal/domain"
)

// FieldDelimiter joins the fields of one persisted record.
const FieldDelimiter = "/::/"

// nullDate marks an absent date in a persisted record.
const nullDate = "NULL"

const (
	isoDateLayout   = "2006-01-02"
	inputDateLayout = "2006 1 2"
)

var (
	ErrInvalidLine = errors.New("invalid line content format")
)

const (
	adminFieldCount       = 3
	customerFieldCount    = 11
	productFieldCount     = 9
	foodProductFieldCount = 13
)

// ParseISODate parses a stored ISO date; the NULL marker yields nil.
func ParseISODate(s string) (*time.Time, error) {
	if strings.EqualFold(s, nullDate) {
		return nil, nil
	}
	t, err := time.Parse(isoDateLayout, s)
	if err != nil {
		return nil, fmt.Errorf("malformed date %q: %w", s, ErrInvalidLine)
	}
	return &t, nil
}

// FormatISODate renders a date for storage; nil becomes the NULL marker.
func FormatISODate(t *time.Time) string {
	if t == nil {
		return nullDate
	}
	return t.Format(isoDateLayout)
}

// ParseInputDate parses the interactive "yyyy M d" date entry format.
func ParseInputDate(s string) (time.Time, error) {
	return time.Parse(inputDateLayout, s)
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// EncodeUser renders a user as one persisted line (without newline).
func EncodeUser(u *domain.User) string {
	fields := []string{u.Email, u.Password, strconv.FormatBool(u.IsAdmin())}
	if u.Customer != nil {
		birthday := u.Customer.Birthday
		fields = append(fields,
			u.Customer.FirstName,
			u.Customer.LastName,
			FormatISODate(&birthday),
			u.Customer.Mobile,
			u.Customer.Address,
			u.Customer.Gender,
			FormatISODate(u.Customer.MemberExpiry),
			formatFloat(u.Customer.Credits),
		)
	}
	return strings.Join(fields, FieldDelimiter)
}

// DecodeUser parses one user line. Three fields with a "true" flag is
// an admin, eleven fields with a "false" flag is a customer; everything
// else is invalid.
func DecodeUser(line string) (*domain.User, error) {
	fields := strings.Split(line, FieldDelimiter)
	switch {
	case len(fields) == adminFieldCount && fields[2] == "true":
		return domain.NewAdmin(fields[0], fields[1]), nil
	case len(fields) == customerFieldCount && fields[2] == "false":
		birthday, err := ParseISODate(fields[5])
		if err != nil || birthday == nil {
			return nil, fmt.Errorf("user line: %w", ErrInvalidLine)
		}
		expiry, err := ParseISODate(fields[9])
		if err != nil {
			return nil, fmt.Errorf("user line: %w", ErrInvalidLine)
		}
		credits, err := strconv.ParseFloat(fields[10], 64)
		if err != nil {
			return nil, fmt.Errorf("user line: %w", ErrInvalidLine)
		}
		return domain.NewCustomer(fields[0], fields[1], domain.CustomerProfile{
			FirstName:    fields[3],
			LastName:     fields[4],
			Birthday:     *birthday,
			Mobile:       fields[6],
			Address:      fields[7],
			Gender:       fields[8],
			MemberExpiry: expiry,
			Credits:      credits,
		}), nil
	default:
		return nil, fmt.Errorf("user line with %d fields: %w", len(fields), ErrInvalidLine)
	}
}

// EncodeProduct renders a product as one persisted line. Food-type
// products carry four extra trailing fields.
func EncodeProduct(p *domain.Product) string {
	fields := []string{
		strconv.Itoa(p.ID),
		p.Name,
		p.Brand,
		p.Description,
		formatFloat(p.Price),
		formatFloat(p.MemberPrice),
		strconv.Itoa(p.Quantity),
		p.Category,
		p.Subcategory,
	}
	if p.Food != nil {
		fields = append(fields,
			FormatISODate(p.Food.Expiry),
			p.Food.Ingredients,
			p.Food.Storage,
			p.Food.Allergen,
		)
	}
	return strings.Join(fields, FieldDelimiter)
}

// DecodeProduct parses one product line. Nine fields is a plain
// product, thirteen a food product; everything else is invalid.
func DecodeProduct(line string) (*domain.Product, error) {
	fields := strings.Split(line, FieldDelimiter)
	if len(fields) != productFieldCount && len(fields) != foodProductFieldCount {
		return nil, fmt.Errorf("product line with %d fields: %w", len(fields), ErrInvalidLine)
	}

	id, err := strconv.Atoi(fields[0])
	if err != nil {
		return nil, fmt.Errorf("product id %q: %w", fields[0], ErrInvalidLine)
	}
	price, err := strconv.ParseFloat(fields[4], 64)
	if err != nil {
		return nil, fmt.Errorf("product price %q: %w", fields[4], ErrInvalidLine)
	}
	memberPrice, err := strconv.ParseFloat(fields[5], 64)
	if err != nil {
		return nil, fmt.Errorf("product member price %q: %w", fields[5], ErrInvalidLine)
	}
	quantity, err := strconv.Atoi(fields[6])
	if err != nil {
		return nil, fmt.Errorf("product quantity %q: %w", fields[6], ErrInvalidLine)
	}

	product := &domain.Product{
		ID:          id,
		Name:        fields[1],
		Brand:       fields[2],
		Description: fields[3],
		Price:       price,
		MemberPrice: memberPrice,
		Quantity:    quantity,
		Category:    fields[7],
		Subcategory: fields[8],
	}

	if len(fields) == foodProductFieldCount {
		expiry, err := ParseISODate(fields[9])
		if err != nil {
			return nil, fmt.Errorf("product expiry: %w", ErrInvalidLine)
		}
		product.Food = &domain.FoodDetails{
			Expiry:      expiry,
			Ingredients: fields[10],
			Storage:     fields[11],
			Allergen:    fields[12],
		}
	}

	return product, nil
}

// EncodeCategory renders one catalog entry as a persisted line.
func EncodeCategory(category string, subcategories []string) string {
	return strings.Join(append([]string{category}, subcategories...), FieldDelimiter)
}

// DecodeCategory parses one catalog line: a category name followed by
// at least one subcategory.
func DecodeCategory(line string) (string, []string, error) {
	fields := strings.Split(line, FieldDelimiter)
	if len(fields) < 2 {
		return "", nil, fmt.Errorf("category line with %d fields: %w", len(fields), ErrInvalidLine)
	}
	return fields[0], fields[1:], nil
}
