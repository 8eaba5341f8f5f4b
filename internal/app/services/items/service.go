// Package items holds the catalog use cases.
package items

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopworks/storefront/internal/app/domain/item"
	"github.com/shopworks/storefront/internal/app/storage"
	"github.com/shopworks/storefront/pkg/logger"
)

// ErrDoesNotExist reports that an operation referenced an unknown item.
var ErrDoesNotExist = errors.New("provided item doesn't exist")

// AlreadyExistsError reports a duplicate item name on create.
type AlreadyExistsError struct {
	Name string
}

func (e *AlreadyExistsError) Error() string {
	return fmt.Sprintf("an item with the name %q already exists", e.Name)
}

// Service manages catalog items.
type Service struct {
	store storage.ItemStore
	log   *logger.Logger
}

// New constructs an item service.
func New(store storage.ItemStore, log *logger.Logger) *Service {
	if log == nil {
		log = logger.NewDefault("items")
	}
	return &Service{store: store, log: log}
}

// Create registers a new item. The candidate's ID is not authoritative;
// the store assigns one. Fails with AlreadyExistsError when the name is
// taken, either by the lookup here or by the store's uniqueness rule
// when a concurrent create wins the race.
func (s *Service) Create(ctx context.Context, it item.Item) (item.Item, error) {
	_, err := s.store.GetItemByName(ctx, it.Name)
	switch {
	case err == nil:
		return item.Item{}, &AlreadyExistsError{Name: it.Name}
	case !errors.Is(err, storage.ErrNotFound):
		return item.Item{}, err
	}

	created, err := s.store.CreateItem(ctx, it)
	if errors.Is(err, storage.ErrConflict) {
		return item.Item{}, &AlreadyExistsError{Name: it.Name}
	}
	if err != nil {
		return item.Item{}, err
	}
	s.log.Infof("item %s created", created.ID)
	return created, nil
}

// List returns the full current catalog in store enumeration order.
// An empty catalog yields an empty slice, never an error.
func (s *Service) List(ctx context.Context) ([]item.Item, error) {
	return s.store.ListItems(ctx)
}
