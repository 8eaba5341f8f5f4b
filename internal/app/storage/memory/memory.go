// Package memory provides an in-memory implementation of the storage
// interfaces. It is safe for concurrent use and is primarily intended
// for tests and local development; nothing survives the process.
package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/shopworks/storefront/internal/app/domain/item"
	"github.com/shopworks/storefront/internal/app/domain/user"
	"github.com/shopworks/storefront/internal/app/storage"
)

// Store keeps every record in process memory. Each resource keeps its
// insertion order, which is the enumeration order of the list calls.
// Uniqueness checks run under the write lock, so concurrent creates for
// the same natural key cannot both succeed.
type Store struct {
	mu sync.RWMutex

	items       map[string]item.Item
	itemsByName map[string]string
	itemOrder   []string

	users        map[string]user.User
	usersByEmail map[string]string

	cartItems map[string][]user.CartItem
	cartPairs map[string]struct{}
}

var _ storage.ItemStore = (*Store)(nil)
var _ storage.UserStore = (*Store)(nil)

// New creates an empty in-memory store.
func New() *Store {
	return &Store{
		items:        make(map[string]item.Item),
		itemsByName:  make(map[string]string),
		users:        make(map[string]user.User),
		usersByEmail: make(map[string]string),
		cartItems:    make(map[string][]user.CartItem),
		cartPairs:    make(map[string]struct{}),
	}
}

// ItemStore implementation ----------------------------------------------------

func (s *Store) CreateItem(_ context.Context, it item.Item) (item.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.itemsByName[it.Name]; taken {
		return item.Item{}, storage.ErrConflict
	}
	if it.ID == "" {
		it.ID = uuid.NewString()
	} else if _, exists := s.items[it.ID]; exists {
		return item.Item{}, storage.ErrConflict
	}

	s.items[it.ID] = it
	s.itemsByName[it.Name] = it.ID
	s.itemOrder = append(s.itemOrder, it.ID)
	return it, nil
}

func (s *Store) GetItem(_ context.Context, id string) (item.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	it, ok := s.items[id]
	if !ok {
		return item.Item{}, storage.ErrNotFound
	}
	return it, nil
}

func (s *Store) GetItemByName(_ context.Context, name string) (item.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.itemsByName[name]
	if !ok {
		return item.Item{}, storage.ErrNotFound
	}
	return s.items[id], nil
}

func (s *Store) ListItems(_ context.Context) ([]item.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]item.Item, 0, len(s.itemOrder))
	for _, id := range s.itemOrder {
		result = append(result, s.items[id])
	}
	return result, nil
}

// UserStore implementation ----------------------------------------------------

func (s *Store) CreateUser(_ context.Context, u user.User) (user.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.usersByEmail[u.Email]; taken {
		return user.User{}, storage.ErrConflict
	}
	if u.ID == "" {
		u.ID = uuid.NewString()
	} else if _, exists := s.users[u.ID]; exists {
		return user.User{}, storage.ErrConflict
	}
	u.CartItems = nil

	s.users[u.ID] = u
	s.usersByEmail[u.Email] = u.ID
	return u, nil
}

func (s *Store) GetUser(_ context.Context, id string) (user.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return user.User{}, storage.ErrNotFound
	}
	return u, nil
}

func (s *Store) GetUserByEmail(_ context.Context, email string) (user.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.usersByEmail[email]
	if !ok {
		return user.User{}, storage.ErrNotFound
	}
	return s.users[id], nil
}

func (s *Store) CreateCartItem(_ context.Context, ci user.CartItem) (user.CartItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pair := ci.UserID + "/" + ci.ItemID
	if _, exists := s.cartPairs[pair]; exists {
		return user.CartItem{}, storage.ErrConflict
	}

	s.cartItems[ci.UserID] = append(s.cartItems[ci.UserID], ci)
	s.cartPairs[pair] = struct{}{}
	return ci, nil
}

func (s *Store) ListCartItems(_ context.Context, userID string) ([]user.CartItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := s.cartItems[userID]
	result := make([]user.CartItem, len(entries))
	copy(result, entries)
	return result, nil
}
