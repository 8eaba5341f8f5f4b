// Package users holds the user registration and cart use cases.
package users

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopworks/storefront/internal/app/domain/user"
	"github.com/shopworks/storefront/internal/app/services/items"
	"github.com/shopworks/storefront/internal/app/storage"
	"github.com/shopworks/storefront/pkg/logger"
)

// ErrDoesNotExist reports that a cart operation referenced an unknown user.
var ErrDoesNotExist = errors.New("provided user doesn't exist")

// ErrItemAlreadyInCart reports a duplicate (user, item) cart entry.
var ErrItemAlreadyInCart = errors.New("the item is already in the user's cart")

// AlreadyExistsError reports a duplicate user email on create.
type AlreadyExistsError struct {
	Email string
}

func (e *AlreadyExistsError) Error() string {
	return fmt.Sprintf("a user with the email %q already exists", e.Email)
}

// Service manages users and their carts. Cart operations resolve items
// through the item store, so the service depends on both contracts.
type Service struct {
	users storage.UserStore
	items storage.ItemStore
	log   *logger.Logger
}

// New constructs a user service.
func New(users storage.UserStore, itemStore storage.ItemStore, log *logger.Logger) *Service {
	if log == nil {
		log = logger.NewDefault("users")
	}
	return &Service{users: users, items: itemStore, log: log}
}

// Create registers a new user. The candidate carries the already-hashed
// password; hashing is a boundary responsibility. Fails with
// AlreadyExistsError when the email is taken.
func (s *Service) Create(ctx context.Context, u user.User) (user.User, error) {
	_, err := s.users.GetUserByEmail(ctx, u.Email)
	switch {
	case err == nil:
		return user.User{}, &AlreadyExistsError{Email: u.Email}
	case !errors.Is(err, storage.ErrNotFound):
		return user.User{}, err
	}

	created, err := s.users.CreateUser(ctx, u)
	if errors.Is(err, storage.ErrConflict) {
		return user.User{}, &AlreadyExistsError{Email: u.Email}
	}
	if err != nil {
		return user.User{}, err
	}
	s.log.Infof("user %s created", created.ID)
	return created, nil
}

// AddItemToCart places an item in a user's cart and returns the user's
// full cart, freshly read. The checks run in a fixed order: unknown user,
// then unknown item, then duplicate pair. The write is last, so a failed
// check leaves no side effect behind.
func (s *Service) AddItemToCart(ctx context.Context, ci user.CartItem) ([]user.CartItem, error) {
	if _, err := s.users.GetUser(ctx, ci.UserID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrDoesNotExist
		}
		return nil, err
	}

	if _, err := s.items.GetItem(ctx, ci.ItemID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, items.ErrDoesNotExist
		}
		return nil, err
	}

	existing, err := s.users.ListCartItems(ctx, ci.UserID)
	if err != nil {
		return nil, err
	}
	for _, entry := range existing {
		if entry.ItemID == ci.ItemID {
			return nil, ErrItemAlreadyInCart
		}
	}

	if _, err := s.users.CreateCartItem(ctx, ci); err != nil {
		if errors.Is(err, storage.ErrConflict) {
			return nil, ErrItemAlreadyInCart
		}
		return nil, err
	}
	s.log.Infof("item %s added to cart of user %s", ci.ItemID, ci.UserID)

	return s.users.ListCartItems(ctx, ci.UserID)
}

// ListCartItems returns the user's cart entries in store enumeration
// order. An unknown user yields an empty cart rather than an error; only
// AddItemToCart checks user existence.
func (s *Service) ListCartItems(ctx context.Context, userID string) ([]user.CartItem, error) {
	return s.users.ListCartItems(ctx, userID)
}
