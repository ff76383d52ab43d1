// Package identity implements the login/logout transitions over a
// session's identity axis.
package identity

import (
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/ubermelon/shop/internal/customers"
	"github.com/ubermelon/shop/internal/domain"
)

var (
	// ErrUnknownEmail indicates no customer is registered under the
	// submitted email. Recoverable and user-facing.
	ErrUnknownEmail = errors.New("identity: no such identity")
	// ErrBadCredential indicates the email exists but the password did
	// not match. Recoverable and user-facing.
	ErrBadCredential = errors.New("identity: bad credential")

	errCredentialsRequired = errors.New("identity: credential store is required")
)

// CredentialStore looks up registered customers by email.
type CredentialStore interface {
	GetByEmail(email string) (domain.Customer, error)
}

// ServiceDeps wires the credential store and logger for the identity flow.
type ServiceDeps struct {
	Credentials CredentialStore
	Logger      *zap.Logger
}

// Service mediates identity transitions on a session.
type Service struct {
	credentials CredentialStore
	logger      *zap.Logger
}

// NewService constructs a Service, enforcing dependency validation.
func NewService(deps ServiceDeps) (*Service, error) {
	if deps.Credentials == nil {
		return nil, errCredentialsRequired
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{credentials: deps.Credentials, logger: logger}, nil
}

// Login authenticates the submitted credentials and, on success,
// attaches the identity to the session. On failure the session is left
// untouched. The password comparison is an exact, case-sensitive
// plaintext match per the credential file contract.
func (s *Service) Login(sess *domain.Session, email, password string) (domain.Customer, error) {
	email = strings.TrimSpace(email)

	customer, err := s.credentials.GetByEmail(email)
	if err != nil {
		if errors.Is(err, customers.ErrCustomerNotFound) {
			s.logger.Info("login rejected", zap.String("email", email), zap.String("reason", "unknown email"))
			return domain.Customer{}, ErrUnknownEmail
		}
		return domain.Customer{}, err
	}

	if customer.Password != password {
		s.logger.Info("login rejected", zap.String("email", email), zap.String("reason", "bad credential"))
		return domain.Customer{}, ErrBadCredential
	}

	sess.Email = customer.Email
	s.logger.Info("login succeeded", zap.String("email", customer.Email))
	return customer, nil
}

// Logout detaches the identity from the session. Logging out an
// anonymous session is a no-op, not an error. The cart survives.
func (s *Service) Logout(sess *domain.Session) {
	if !sess.Authenticated() {
		return
	}
	s.logger.Info("logout", zap.String("email", sess.Email))
	sess.Email = ""
}
