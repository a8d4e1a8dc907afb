// Package workflow drives the interactive screens: the guest loop,
// the customer console and the admin console. Workflows read through
// the prompt engine, render through the console, and mutate state only
// via the services.
package workflow

import (
	"go.uber.org/zap"

	"merchant-console/internal/prompt"
	"merchant-console/internal/render"
	"merchant-console/internal/repository"
	"merchant-console/internal/service"
)

// Session owns one run of the console from startup to exit.
type Session struct {
	ui         *render.Console
	in         *prompt.Reader
	log        *zap.Logger
	users      service.UserService
	inventory  service.InventoryService
	checkout   service.CheckoutService
	products   repository.ProductRepository
	categories repository.CategoryRepository
}

// NewSession wires a session over the shared services and repositories.
func NewSession(
	ui *render.Console,
	in *prompt.Reader,
	log *zap.Logger,
	users service.UserService,
	inventory service.InventoryService,
	checkout service.CheckoutService,
	products repository.ProductRepository,
	categories repository.CategoryRepository,
) *Session {
	return &Session{
		ui:         ui,
		in:         in,
		log:        log,
		users:      users,
		inventory:  inventory,
		checkout:   checkout,
		products:   products,
		categories: categories,
	}
}

// Run drives the guest loop until the user exits. A panic anywhere in
// a session is logged and drops the user back at the guest menu
// instead of killing the process.
func (s *Session) Run() {
	s.ui.Banner()
	for {
		if done := s.guestTurn(); done {
			return
		}
	}
}

func (s *Session) guestTurn() (done bool) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error("session panicked, returning to the guest menu", zap.Any("panic", r))
			s.ui.Alert("something went wrong, you are back at the welcome page")
			s.users.Logout()
			done = false
		}
	}()

	s.ui.GuestMenu()
	reply := s.in.Read()
	switch reply.Kind {
	case prompt.Back:
		s.ui.AlertMainMenu()
		return false
	case prompt.Logout:
		// Nothing to log out of before login; end the program.
		return true
	}

	switch reply.Value {
	case "1":
		s.login()
		return false
	case "2":
		confirmed, kind := s.in.Confirm("exit the system")
		return kind == prompt.Logout || confirmed
	default:
		s.ui.AlertUnformatted("option")
		return false
	}
}

// login collects credentials until they match an account or the user
// escapes, then hands control to the matched role's console.
func (s *Session) login() {
	for {
		email := s.in.NonEmpty("email address")
		if email.Escaped() {
			return
		}
		password := s.in.NonEmpty("password")
		if password.Escaped() {
			return
		}

		user, err := s.users.Login(email.Value, password.Value)
		if err != nil {
			s.ui.Alert("email or password is incorrect, please try again")
			continue
		}

		s.log.Info("user logged in", zap.String("email", user.Email), zap.String("role", string(user.Role)))
		if user.IsAdmin() {
			s.runAdmin()
		} else {
			s.runCustomer(user)
		}
		s.users.Logout()
		s.log.Info("user logged out", zap.String("email", user.Email))
		return
	}
}
