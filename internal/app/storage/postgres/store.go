// Package postgres implements the storage interfaces on PostgreSQL.
// Every call is a single round trip; the schema's unique constraints
// (items.name, users.email, cart_items(user_id, item_id)) back the
// uniqueness rules the services rely on.
package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/shopworks/storefront/internal/app/domain/item"
	"github.com/shopworks/storefront/internal/app/domain/user"
	"github.com/shopworks/storefront/internal/app/storage"
)

// Store implements the storage interfaces backed by PostgreSQL.
type Store struct {
	db *sqlx.DB
}

var _ storage.ItemStore = (*Store)(nil)
var _ storage.UserStore = (*Store)(nil)

// New creates a Store using the provided database handle.
func New(db *sqlx.DB) *Store {
	return &Store{db: db}
}

// Open connects to PostgreSQL and verifies the connection.
func Open(ctx context.Context, dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

type itemRow struct {
	ID          string  `db:"id"`
	Name        string  `db:"name"`
	Description string  `db:"description"`
	Price       float64 `db:"price"`
	Quantity    int     `db:"quantity"`
}

func (r itemRow) entity() item.Item {
	return item.Item{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price,
		Quantity:    r.Quantity,
	}
}

type userRow struct {
	ID              string `db:"id"`
	Email           string `db:"email"`
	FirstName       string `db:"first_name"`
	LastName        string `db:"last_name"`
	HashedPassword  string `db:"hashed_password"`
	ShippingAddress string `db:"shipping_address"`
}

func (r userRow) entity() user.User {
	return user.User{
		ID:              r.ID,
		Email:           r.Email,
		FirstName:       r.FirstName,
		LastName:        r.LastName,
		HashedPassword:  r.HashedPassword,
		ShippingAddress: r.ShippingAddress,
	}
}

type cartItemRow struct {
	UserID   string `db:"user_id"`
	ItemID   string `db:"item_id"`
	Quantity int    `db:"quantity"`
}

// ItemStore implementation ----------------------------------------------------

func (s *Store) CreateItem(ctx context.Context, it item.Item) (item.Item, error) {
	if it.ID == "" {
		it.ID = uuid.NewString()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO items (id, name, description, price, quantity)
		VALUES ($1, $2, $3, $4, $5)
	`, it.ID, it.Name, it.Description, it.Price, it.Quantity)
	if err != nil {
		return item.Item{}, translateError(err)
	}
	return it, nil
}

func (s *Store) GetItem(ctx context.Context, id string) (item.Item, error) {
	var row itemRow
	err := s.db.GetContext(ctx, &row, `
		SELECT id, name, description, price, quantity
		FROM items
		WHERE id = $1
	`, id)
	if err != nil {
		return item.Item{}, translateError(err)
	}
	return row.entity(), nil
}

func (s *Store) GetItemByName(ctx context.Context, name string) (item.Item, error) {
	var row itemRow
	err := s.db.GetContext(ctx, &row, `
		SELECT id, name, description, price, quantity
		FROM items
		WHERE name = $1
	`, name)
	if err != nil {
		return item.Item{}, translateError(err)
	}
	return row.entity(), nil
}

func (s *Store) ListItems(ctx context.Context) ([]item.Item, error) {
	var rows []itemRow
	err := s.db.SelectContext(ctx, &rows, `
		SELECT id, name, description, price, quantity
		FROM items
	`)
	if err != nil {
		return nil, err
	}

	result := make([]item.Item, 0, len(rows))
	for _, row := range rows {
		result = append(result, row.entity())
	}
	return result, nil
}

// UserStore implementation ----------------------------------------------------

func (s *Store) CreateUser(ctx context.Context, u user.User) (user.User, error) {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	u.CartItems = nil

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (id, email, first_name, last_name, hashed_password, shipping_address)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, u.ID, u.Email, u.FirstName, u.LastName, u.HashedPassword, u.ShippingAddress)
	if err != nil {
		return user.User{}, translateError(err)
	}
	return u, nil
}

func (s *Store) GetUser(ctx context.Context, id string) (user.User, error) {
	var row userRow
	err := s.db.GetContext(ctx, &row, `
		SELECT id, email, first_name, last_name, hashed_password, shipping_address
		FROM users
		WHERE id = $1
	`, id)
	if err != nil {
		return user.User{}, translateError(err)
	}
	return row.entity(), nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (user.User, error) {
	var row userRow
	err := s.db.GetContext(ctx, &row, `
		SELECT id, email, first_name, last_name, hashed_password, shipping_address
		FROM users
		WHERE email = $1
	`, email)
	if err != nil {
		return user.User{}, translateError(err)
	}
	return row.entity(), nil
}

func (s *Store) CreateCartItem(ctx context.Context, ci user.CartItem) (user.CartItem, error) {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO cart_items (user_id, item_id, quantity)
		VALUES ($1, $2, $3)
	`, ci.UserID, ci.ItemID, ci.Quantity)
	if err != nil {
		return user.CartItem{}, translateError(err)
	}
	return ci, nil
}

func (s *Store) ListCartItems(ctx context.Context, userID string) ([]user.CartItem, error) {
	var rows []cartItemRow
	err := s.db.SelectContext(ctx, &rows, `
		SELECT user_id, item_id, quantity
		FROM cart_items
		WHERE user_id = $1
	`, userID)
	if err != nil {
		return nil, err
	}

	result := make([]user.CartItem, 0, len(rows))
	for _, row := range rows {
		result = append(result, user.CartItem{
			UserID:   row.UserID,
			ItemID:   row.ItemID,
			Quantity: row.Quantity,
		})
	}
	return result, nil
}

// translateError maps driver errors onto the storage sentinels: no rows
// becomes ErrNotFound, a unique-constraint violation (SQLSTATE 23505)
// becomes ErrConflict. Anything else passes through unchanged.
func translateError(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return storage.ErrNotFound
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return storage.ErrConflict
	}
	return err
}
