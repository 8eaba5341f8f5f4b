// Package storage defines the persistence contracts the application
// services depend on. Implementations live in the memory and postgres
// subpackages and are interchangeable behind these interfaces.
package storage

import (
	"context"
	"errors"

	"github.com/shopworks/storefront/internal/app/domain/item"
	"github.com/shopworks/storefront/internal/app/domain/user"
)

// ErrNotFound is returned by lookups that match no record.
var ErrNotFound = errors.New("record not found")

// ErrConflict is returned by writes rejected by a uniqueness rule
// (item name, user email, or a (user, item) cart pair). Services
// translate it into the matching domain error, which closes the
// check-then-act race between concurrent creates.
var ErrConflict = errors.New("record already exists")

// ItemStore persists catalog items.
type ItemStore interface {
	CreateItem(ctx context.Context, it item.Item) (item.Item, error)
	GetItem(ctx context.Context, id string) (item.Item, error)
	GetItemByName(ctx context.Context, name string) (item.Item, error)
	ListItems(ctx context.Context) ([]item.Item, error)
}

// UserStore persists users and their cart entries.
type UserStore interface {
	CreateUser(ctx context.Context, u user.User) (user.User, error)
	GetUser(ctx context.Context, id string) (user.User, error)
	GetUserByEmail(ctx context.Context, email string) (user.User, error)
	CreateCartItem(ctx context.Context, ci user.CartItem) (user.CartItem, error)
	ListCartItems(ctx context.Context, userID string) ([]user.CartItem, error)
}
