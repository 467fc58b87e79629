package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Product represents a catalog product document
type Product struct {
	ID          primitive.ObjectID `json:"id" bson:"_id"`
	Name        string             `json:"name" bson:"name"`
	Price       float64            `json:"price" bson:"price"`
	Description string             `json:"description" bson:"description"`
	Category    string             `json:"category" bson:"category"`
	IsStocked   bool               `json:"isStocked" bson:"isStocked"`
	ImageURL    string             `json:"imageUrl" bson:"imageUrl"`
}

// CreateProductRequest is used for product creation requests.
// Price and IsStocked are pointers so an absent field can be told apart
// from a zero value: price is required, isStocked defaults to true.
type CreateProductRequest struct {
	Name        string   `json:"name" validate:"required"`
	Price       *float64 `json:"price" validate:"required,gte=0"`
	Description string   `json:"description" validate:"required"`
	Category    string   `json:"category" validate:"required"`
	IsStocked   *bool    `json:"isStocked"`
	ImageURL    string   `json:"imageUrl" validate:"required"`
}

// ProductList is the paginated product listing response
type ProductList struct {
	Products      []Product `json:"products"`
	TotalProducts int64     `json:"totalProducts"`
	Page          int       `json:"page"`
	TotalPages    int       `json:"totalPages"`
}

// StockStatus carries only the stock flag of a product
type StockStatus struct {
	IsStocked bool `json:"isStocked"`
}
