package customers

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ubermelon/shop/internal/domain"
)

// ErrCustomerNotFound indicates no customer is registered under the
// requested email.
var ErrCustomerNotFound = errors.New("customers: not found")

// Store holds registered customers keyed by email. Loaded once at
// startup and read-only afterwards; safe for concurrent reads.
type Store struct {
	byEmail map[string]domain.Customer
}

// NewStore builds a Store from the provided customers. Later entries
// for the same email win, matching the line-by-line load order of the
// credential file.
func NewStore(records []domain.Customer) *Store {
	byEmail := make(map[string]domain.Customer, len(records))
	for _, c := range records {
		byEmail[c.Email] = c
	}
	return &Store{byEmail: byEmail}
}

// GetByEmail returns the customer registered under the given email.
func (s *Store) GetByEmail(email string) (domain.Customer, error) {
	c, ok := s.byEmail[strings.TrimSpace(email)]
	if !ok {
		return domain.Customer{}, fmt.Errorf("%w: %s", ErrCustomerNotFound, email)
	}
	return c, nil
}

// Contains reports whether a customer is registered under the email.
func (s *Store) Contains(email string) bool {
	_, ok := s.byEmail[strings.TrimSpace(email)]
	return ok
}

// Len reports the number of registered customers.
func (s *Store) Len() int {
	return len(s.byEmail)
}
