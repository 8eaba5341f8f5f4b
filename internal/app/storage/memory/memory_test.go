package memory

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/shopworks/storefront/internal/app/domain/item"
	"github.com/shopworks/storefront/internal/app/domain/user"
	"github.com/shopworks/storefront/internal/app/storage"
)

func TestItemRoundTrip(t *testing.T) {
	store := New()
	ctx := context.Background()

	created, err := store.CreateItem(ctx, item.Item{Name: "Widget", Description: "a widget", Price: 9.99, Quantity: 5})
	if err != nil {
		t.Fatalf("create item: %v", err)
	}
	if created.ID == "" {
		t.Fatalf("expected id to be generated")
	}

	byID, err := store.GetItem(ctx, created.ID)
	if err != nil {
		t.Fatalf("get item: %v", err)
	}
	if byID != created {
		t.Fatalf("get by id mismatch: %+v vs %+v", byID, created)
	}

	byName, err := store.GetItemByName(ctx, "Widget")
	if err != nil {
		t.Fatalf("get item by name: %v", err)
	}
	if byName != created {
		t.Fatalf("get by name mismatch: %+v vs %+v", byName, created)
	}
}

func TestItemNameConflict(t *testing.T) {
	store := New()
	ctx := context.Background()

	if _, err := store.CreateItem(ctx, item.Item{Name: "Widget"}); err != nil {
		t.Fatalf("create item: %v", err)
	}
	if _, err := store.CreateItem(ctx, item.Item{Name: "Widget"}); !errors.Is(err, storage.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}

	list, err := store.ListItems(ctx)
	if err != nil {
		t.Fatalf("list items: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected exactly one stored item, got %d", len(list))
	}
}

func TestListItemsInsertionOrder(t *testing.T) {
	store := New()
	ctx := context.Background()

	names := []string{"c", "a", "b"}
	for _, name := range names {
		if _, err := store.CreateItem(ctx, item.Item{Name: name}); err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
	}

	list, err := store.ListItems(ctx)
	if err != nil {
		t.Fatalf("list items: %v", err)
	}
	for i, name := range names {
		if list[i].Name != name {
			t.Fatalf("expected %s at position %d, got %s", name, i, list[i].Name)
		}
	}
}

func TestListItemsEmpty(t *testing.T) {
	list, err := New().ListItems(context.Background())
	if err != nil {
		t.Fatalf("list items: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("expected empty list, got %d entries", len(list))
	}
}

func TestUserEmailConflict(t *testing.T) {
	store := New()
	ctx := context.Background()

	first, err := store.CreateUser(ctx, user.User{Email: "a@b.com", HashedPassword: "x"})
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	if first.ID == "" {
		t.Fatalf("expected id to be generated")
	}

	if _, err := store.CreateUser(ctx, user.User{Email: "a@b.com"}); !errors.Is(err, storage.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}

	byEmail, err := store.GetUserByEmail(ctx, "a@b.com")
	if err != nil {
		t.Fatalf("get by email: %v", err)
	}
	if byEmail.ID != first.ID {
		t.Fatalf("expected first user, got %s", byEmail.ID)
	}
}

func TestCartItemPairConflict(t *testing.T) {
	store := New()
	ctx := context.Background()

	entry := user.CartItem{UserID: "u1", ItemID: "i1", Quantity: 2}
	if _, err := store.CreateCartItem(ctx, entry); err != nil {
		t.Fatalf("create cart item: %v", err)
	}
	if _, err := store.CreateCartItem(ctx, entry); !errors.Is(err, storage.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}

	// Same item for another user is fine.
	if _, err := store.CreateCartItem(ctx, user.CartItem{UserID: "u2", ItemID: "i1", Quantity: 1}); err != nil {
		t.Fatalf("create cart item for second user: %v", err)
	}

	cart, err := store.ListCartItems(ctx, "u1")
	if err != nil {
		t.Fatalf("list cart items: %v", err)
	}
	if len(cart) != 1 || cart[0] != entry {
		t.Fatalf("unexpected cart: %+v", cart)
	}
}

func TestListCartItemsUnknownUser(t *testing.T) {
	cart, err := New().ListCartItems(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("list cart items: %v", err)
	}
	if len(cart) != 0 {
		t.Fatalf("expected empty cart, got %d entries", len(cart))
	}
}

func TestGetMisses(t *testing.T) {
	store := New()
	ctx := context.Background()

	if _, err := store.GetItem(ctx, "missing"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for item, got %v", err)
	}
	if _, err := store.GetItemByName(ctx, "missing"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for item name, got %v", err)
	}
	if _, err := store.GetUser(ctx, "missing"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for user, got %v", err)
	}
	if _, err := store.GetUserByEmail(ctx, "missing"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for email, got %v", err)
	}
}

func TestConcurrentCreateSameName(t *testing.T) {
	store := New()
	ctx := context.Background()

	const workers = 8
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		go func() {
			_, err := store.CreateItem(ctx, item.Item{Name: "Widget"})
			errs <- err
		}()
	}

	var wins, conflicts int
	for i := 0; i < workers; i++ {
		switch err := <-errs; {
		case err == nil:
			wins++
		case errors.Is(err, storage.ErrConflict):
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if wins != 1 || conflicts != workers-1 {
		t.Fatalf("expected exactly one winner, got %d wins / %d conflicts", wins, conflicts)
	}
}

func TestCartListIsolatedFromStore(t *testing.T) {
	store := New()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		ci := user.CartItem{UserID: "u1", ItemID: fmt.Sprintf("i%d", i), Quantity: 1}
		if _, err := store.CreateCartItem(ctx, ci); err != nil {
			t.Fatalf("create cart item: %v", err)
		}
	}

	cart, _ := store.ListCartItems(ctx, "u1")
	cart[0].Quantity = 99

	fresh, _ := store.ListCartItems(ctx, "u1")
	if fresh[0].Quantity == 99 {
		t.Fatalf("returned slice aliases store state")
	}
}
