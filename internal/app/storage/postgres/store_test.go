package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/shopworks/storefront/internal/app/domain/item"
	"github.com/shopworks/storefront/internal/app/domain/user"
	"github.com/shopworks/storefront/internal/app/storage"
)

func newMockStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return New(sqlx.NewDb(db, "sqlmock")), mock
}

func expectMet(t *testing.T, mock sqlmock.Sqlmock) {
	t.Helper()
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestCreateItemAssignsID(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectExec(`INSERT INTO items \(id, name, description, price, quantity\)\s+VALUES \(\$1, \$2, \$3, \$4, \$5\)`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	created, err := store.CreateItem(context.Background(), item.Item{Name: "Widget", Price: 9.99, Quantity: 5})
	if err != nil {
		t.Fatalf("create item: %v", err)
	}
	if created.ID == "" {
		t.Fatalf("expected id to be generated")
	}
	expectMet(t, mock)
}

func TestCreateItemUniqueViolation(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectExec(`INSERT INTO items`).
		WillReturnError(&pq.Error{Code: "23505", Constraint: "items_name_key"})

	_, err := store.CreateItem(context.Background(), item.Item{Name: "Widget"})
	if !errors.Is(err, storage.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
	expectMet(t, mock)
}

func TestGetItemByName(t *testing.T) {
	store, mock := newMockStore(t)

	rows := sqlmock.NewRows([]string{"id", "name", "description", "price", "quantity"}).
		AddRow("id-1", "Widget", "a widget", 9.99, 5)
	mock.ExpectQuery(`SELECT id, name, description, price, quantity\s+FROM items\s+WHERE name = \$1`).
		WithArgs("Widget").
		WillReturnRows(rows)

	it, err := store.GetItemByName(context.Background(), "Widget")
	if err != nil {
		t.Fatalf("get item by name: %v", err)
	}
	want := item.Item{ID: "id-1", Name: "Widget", Description: "a widget", Price: 9.99, Quantity: 5}
	if it != want {
		t.Fatalf("unexpected item: %+v", it)
	}
	expectMet(t, mock)
}

func TestGetItemMissTranslatesNotFound(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery(`SELECT id, name, description, price, quantity\s+FROM items\s+WHERE id = \$1`).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "description", "price", "quantity"}))

	_, err := store.GetItem(context.Background(), "missing")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	expectMet(t, mock)
}

func TestListItemsEmpty(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery(`SELECT id, name, description, price, quantity\s+FROM items`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "description", "price", "quantity"}))

	list, err := store.ListItems(context.Background())
	if err != nil {
		t.Fatalf("list items: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("expected empty list, got %d", len(list))
	}
	expectMet(t, mock)
}

func TestCreateUserUniqueViolation(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectExec(`INSERT INTO users`).
		WillReturnError(&pq.Error{Code: "23505", Constraint: "users_email_key"})

	_, err := store.CreateUser(context.Background(), user.User{Email: "a@b.com", HashedPassword: "digest"})
	if !errors.Is(err, storage.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
	expectMet(t, mock)
}

func TestCreateCartItemPairViolation(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectExec(`INSERT INTO cart_items \(user_id, item_id, quantity\)\s+VALUES \(\$1, \$2, \$3\)`).
		WithArgs("u1", "i1", 2).
		WillReturnError(&pq.Error{Code: "23505", Constraint: "cart_items_user_id_item_id_key"})

	_, err := store.CreateCartItem(context.Background(), user.CartItem{UserID: "u1", ItemID: "i1", Quantity: 2})
	if !errors.Is(err, storage.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
	expectMet(t, mock)
}

func TestListCartItems(t *testing.T) {
	store, mock := newMockStore(t)

	rows := sqlmock.NewRows([]string{"user_id", "item_id", "quantity"}).
		AddRow("u1", "i1", 2).
		AddRow("u1", "i2", 1)
	mock.ExpectQuery(`SELECT user_id, item_id, quantity\s+FROM cart_items\s+WHERE user_id = \$1`).
		WithArgs("u1").
		WillReturnRows(rows)

	cart, err := store.ListCartItems(context.Background(), "u1")
	if err != nil {
		t.Fatalf("list cart items: %v", err)
	}
	if len(cart) != 2 || cart[0].ItemID != "i1" || cart[1].Quantity != 1 {
		t.Fatalf("unexpected cart: %+v", cart)
	}
	expectMet(t, mock)
}

func TestTranslateErrorPassthrough(t *testing.T) {
	other := errors.New("connection reset")
	if got := translateError(other); !errors.Is(got, other) {
		t.Fatalf("expected passthrough, got %v", got)
	}
	fkErr := &pq.Error{Code: "23503"}
	if got := translateError(fkErr); !errors.As(got, &fkErr) {
		t.Fatalf("foreign-key violations must pass through, got %v", got)
	}
}
