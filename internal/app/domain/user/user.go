// Package user defines the user entity and its cart entries.
package user

// User is a registered customer. Email acts as the natural key. The
// password digest is computed at the API boundary; the plaintext never
// reaches this layer.
type User struct {
	ID              string
	Email           string
	FirstName       string
	LastName        string
	HashedPassword  string
	ShippingAddress string

	// CartItems is the user's cart relationship. Stores are not required
	// to populate it on lookups; cart reads go through ListCartItems.
	CartItems []CartItem
}

// CartItem records one item placed in a user's cart. A (UserID, ItemID)
// pair is unique: adding the same item twice is rejected rather than
// merged into a larger quantity.
type CartItem struct {
	UserID   string
	ItemID   string
	Quantity int
}
