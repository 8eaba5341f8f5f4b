// Package item defines the catalog item entity.
package item

// Item is a purchasable product in the catalog. Name acts as the natural
// key: no two items may share one. The ID is assigned by the store on
// first save and is immutable afterwards.
type Item struct {
	ID          string
	Name        string
	Description string
	Price       float64
	Quantity    int
}
