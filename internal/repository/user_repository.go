package repository

import (
	"errors"
	"strings"

	"merchant-console/internal/codec"
	"merchant-console/internal/domain"
)

var (
	ErrUserNotFound = errors.New("user not found")
)

// UserRepository defines the store for user accounts.
type UserRepository interface {
	Load() (LoadReport, error)
	PersistAll() error
	FindByEmail(email string) (*domain.User, error)
	Users() []*domain.User
}

type userRepository struct {
	store *FileStore
	users []*domain.User
}

// NewUserRepository creates a user store backed by the given file.
func NewUserRepository(store *FileStore) UserRepository {
	return &userRepository{store: store}
}

// Load reads every user line, skipping and counting invalid ones. A
// missing, empty or fully invalid file seeds the default accounts.
func (r *userRepository) Load() (LoadReport, error) {
	lines, err := r.store.ReadLines()
	if err != nil {
		return LoadReport{}, err
	}

	if len(lines) == 0 {
		r.users = defaultUsers()
		return LoadReport{SeededDefaults: true}, nil
	}

	var report LoadReport
	r.users = nil
	for _, line := range lines {
		user, err := codec.DecodeUser(line)
		if err != nil {
			report.InvalidLines++
			continue
		}
		r.users = append(r.users, user)
	}

	if len(r.users) == 0 {
		r.users = defaultUsers()
		report.SeededDefaults = true
	}
	return report, nil
}

// PersistAll rewrites the whole user file from the in-memory collection.
func (r *userRepository) PersistAll() error {
	lines := make([]string, 0, len(r.users))
	for _, user := range r.users {
		lines = append(lines, codec.EncodeUser(user))
	}
	return r.store.WriteLines(lines)
}

// FindByEmail looks an account up by email, case-insensitively.
func (r *userRepository) FindByEmail(email string) (*domain.User, error) {
	for _, user := range r.users {
		if strings.EqualFold(user.Email, email) {
			return user, nil
		}
	}
	return nil, ErrUserNotFound
}

// Users returns the loaded accounts.
func (r *userRepository) Users() []*domain.User {
	return r.users
}
