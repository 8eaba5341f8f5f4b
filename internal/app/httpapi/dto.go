package httpapi

import (
	"github.com/shopworks/storefront/internal/app/domain/item"
	"github.com/shopworks/storefront/internal/app/domain/user"
)

// CreateItemRequest is the wire form of a candidate item.
type CreateItemRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
}

// CreateItemResponse is the wire form of a stored item.
type CreateItemResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
}

// AllItemsResponse wraps the full catalog listing.
type AllItemsResponse struct {
	Items []CreateItemResponse `json:"items"`
}

// CreateUserRequest is the wire form of a candidate user. Password is the
// only place plaintext appears; it is hashed before the entity is built.
type CreateUserRequest struct {
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ShippingAddress string `json:"shipping_address"`
}

// CreateUserResponse is the wire form of a stored user. It never carries
// the password digest.
type CreateUserResponse struct {
	ID              string `json:"id"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	Email           string `json:"email"`
	ShippingAddress string `json:"shipping_address"`
}

// AddToCartRequest is the wire form of a cart entry to add.
type AddToCartRequest struct {
	ItemID   string `json:"item_id"`
	Quantity int    `json:"quantity"`
}

// CartItemResponse is the wire form of one stored cart entry.
type CartItemResponse struct {
	ItemID   string `json:"item_id"`
	Quantity int    `json:"quantity"`
}

// AddToCartResponse wraps a user's full cart listing.
type AddToCartResponse struct {
	Items []CartItemResponse `json:"items"`
}

func itemFromDTO(dto CreateItemRequest) item.Item {
	return item.Item{
		Name:        dto.Name,
		Description: dto.Description,
		Price:       dto.Price,
		Quantity:    dto.Quantity,
	}
}

func itemToDTO(it item.Item) CreateItemResponse {
	return CreateItemResponse{
		ID:          it.ID,
		Name:        it.Name,
		Description: it.Description,
		Price:       it.Price,
		Quantity:    it.Quantity,
	}
}

func userFromDTO(dto CreateUserRequest, hash PasswordHasher) (user.User, error) {
	digest, err := hash(dto.Password)
	if err != nil {
		return user.User{}, err
	}
	return user.User{
		Email:           dto.Email,
		FirstName:       dto.FirstName,
		LastName:        dto.LastName,
		HashedPassword:  digest,
		ShippingAddress: dto.ShippingAddress,
	}, nil
}

func userToDTO(u user.User) CreateUserResponse {
	return CreateUserResponse{
		ID:              u.ID,
		FirstName:       u.FirstName,
		LastName:        u.LastName,
		Email:           u.Email,
		ShippingAddress: u.ShippingAddress,
	}
}

func cartItemFromDTO(dto AddToCartRequest, userID string) user.CartItem {
	return user.CartItem{
		UserID:   userID,
		ItemID:   dto.ItemID,
		Quantity: dto.Quantity,
	}
}

func cartToDTO(entries []user.CartItem) AddToCartResponse {
	resp := AddToCartResponse{Items: make([]CartItemResponse, 0, len(entries))}
	for _, entry := range entries {
		resp.Items = append(resp.Items, CartItemResponse{
			ItemID:   entry.ItemID,
			Quantity: entry.Quantity,
		})
	}
	return resp
}
