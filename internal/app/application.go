// Package app wires stores and services into a runnable application.
package app

import (
	"github.com/shopworks/storefront/internal/app/services/items"
	"github.com/shopworks/storefront/internal/app/services/users"
	"github.com/shopworks/storefront/internal/app/storage"
	"github.com/shopworks/storefront/internal/app/storage/memory"
	"github.com/shopworks/storefront/pkg/logger"
)

// Stores encapsulates persistence dependencies. Nil stores default to a
// shared in-memory implementation.
type Stores struct {
	Items storage.ItemStore
	Users storage.UserStore
}

// Application ties the domain services together.
type Application struct {
	log *logger.Logger

	Items *items.Service
	Users *users.Service
}

// New builds a fully initialised application with the provided stores.
func New(stores Stores, log *logger.Logger) *Application {
	if log == nil {
		log = logger.NewDefault("app")
	}

	if stores.Items == nil || stores.Users == nil {
		mem := memory.New()
		if stores.Items == nil {
			stores.Items = mem
		}
		if stores.Users == nil {
			stores.Users = mem
		}
	}

	return &Application{
		log:   log,
		Items: items.New(stores.Items, log),
		Users: users.New(stores.Users, stores.Items, log),
	}
}
