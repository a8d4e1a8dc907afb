package domain

import (
	"strings"
	"time"
)

// Role distinguishes the two account types the console supports.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleCustomer Role = "customer"
)

// DefaultCredits is the starting balance of a customer account.
const DefaultCredits = 1000

// CustomerProfile holds the attributes present only on customer
// accounts: personal details, membership and the credit balance.
type CustomerProfile struct {
	FirstName    string
	LastName     string
	Birthday     time.Time
	Mobile       string
	Address      string
	Gender       string
	MemberExpiry *time.Time
	Credits      float64
}

// User represents an account that can log in to the console. Customer
// is non-nil exactly when the role is RoleCustomer; admin accounts
// carry credentials only.
type User struct {
	Email    string
	Password string
	Role     Role
	Customer *CustomerProfile
}

// NewAdmin creates an admin account.
func NewAdmin(email, password string) *User {
	return &User{Email: email, Password: password, Role: RoleAdmin}
}

// NewCustomer creates a customer account. The profile's credit balance
// is taken as-is; a spent-down balance of zero must survive a reload.
func NewCustomer(email, password string, profile CustomerProfile) *User {
	return &User{Email: email, Password: password, Role: RoleCustomer, Customer: &profile}
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// IsCustomer reports whether the user holds the customer role.
func (u *User) IsCustomer() bool {
	return u.Role == RoleCustomer
}

// IsMember reports whether the user is a customer holding an active
// membership: an expiry date is set and lies strictly in the future.
func (u *User) IsMember() bool {
	return u.Customer != nil && u.Customer.MemberExpiry != nil &&
		u.Customer.MemberExpiry.After(time.Now())
}

// DisplayName returns "Admin" for admins and the capitalized full name
// for customers.
func (u *User) DisplayName() string {
	if u.Customer == nil {
		return "Admin"
	}
	return capitalize(u.Customer.FirstName) + " " + capitalize(u.Customer.LastName)
}

func capitalize(s string) string {
	if s == "" {
		return ""
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}
