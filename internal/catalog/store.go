package catalog

import (
	"errors"
	"fmt"
	"sort"

	"github.com/ubermelon/shop/internal/domain"
)

// ErrItemNotFound indicates the requested item id is absent from the
// catalog. For ids referenced by an existing cart this is a
// data-integrity fault, not a user error.
var ErrItemNotFound = errors.New("catalog: item not found")

// ErrDuplicateItem indicates the seed data contains the same item id twice.
var ErrDuplicateItem = errors.New("catalog: duplicate item id")

// Store holds the item catalog keyed by id. It is populated once at
// startup and read-only afterwards, so it is safe for concurrent reads
// without locking.
type Store struct {
	byID    map[int]domain.Item
	ordered []domain.Item
}

// NewStore builds a Store from the provided items, sorted ascending by
// id. Duplicate ids are rejected so a catalog file cannot silently
// shadow an item.
func NewStore(items []domain.Item) (*Store, error) {
	byID := make(map[int]domain.Item, len(items))
	for _, item := range items {
		if _, ok := byID[item.ID]; ok {
			return nil, fmt.Errorf("%w: %d", ErrDuplicateItem, item.ID)
		}
		byID[item.ID] = item
	}

	ordered := make([]domain.Item, 0, len(items))
	for _, item := range byID {
		ordered = append(ordered, item)
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].ID < ordered[j].ID })

	return &Store{byID: byID, ordered: ordered}, nil
}

// GetByID returns the item with the given id.
func (s *Store) GetByID(id int) (domain.Item, error) {
	item, ok := s.byID[id]
	if !ok {
		return domain.Item{}, fmt.Errorf("%w: id %d", ErrItemNotFound, id)
	}
	return item, nil
}

// List returns all items in ascending id order. The returned slice is a
// copy; callers may not mutate the catalog through it.
func (s *Store) List() []domain.Item {
	out := make([]domain.Item, len(s.ordered))
	copy(out, s.ordered)
	return out
}

// Len reports the number of items in the catalog.
func (s *Store) Len() int {
	return len(s.ordered)
}
