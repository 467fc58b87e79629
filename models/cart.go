package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// CartItem is a snapshot of a product taken when it was added to the
// cart, with an attached quantity. It is a copy, not a live reference:
// later product edits do not change lines already in a cart.
type CartItem struct {
	Product  primitive.ObjectID `json:"product"`
	Name     string             `json:"name"`
	Price    float64            `json:"price"`
	Quantity int                `json:"quantity"`
}

// AddCartItemRequest adds a product to the session cart
type AddCartItemRequest struct {
	Product  string `json:"product" validate:"required"`
	Quantity int    `json:"quantity"`
}

// Cart is the response shape of the session cart endpoints
type Cart struct {
	Items      []CartItem `json:"items"`
	TotalPrice float64    `json:"totalPrice"`
}
