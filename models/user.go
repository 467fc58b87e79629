package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents a customer record created at checkout time.
// Orders holds back-references to the orders placed by this user.
type User struct {
	ID          primitive.ObjectID   `json:"id" bson:"_id"`
	Name        string               `json:"name" bson:"name"`
	Email       string               `json:"email" bson:"email"`
	PhoneNumber string               `json:"phoneNumber" bson:"phoneNumber"`
	Wilaya      string               `json:"wilaya" bson:"wilaya"`
	Commune     string               `json:"commune" bson:"commune"`
	Address     string               `json:"address" bson:"address"`
	Orders      []primitive.ObjectID `json:"orders" bson:"orders"`
	CreatedAt   time.Time            `json:"createdAt" bson:"createdAt"`
}

// PopulatedUser is a User with its order references resolved into order
// documents. A dangling reference resolves to null rather than being
// dropped, so deleted orders stay visible in the sequence.
type PopulatedUser struct {
	ID          primitive.ObjectID `json:"id" bson:"_id"`
	Name        string             `json:"name" bson:"name"`
	Email       string             `json:"email" bson:"email"`
	PhoneNumber string             `json:"phoneNumber" bson:"phoneNumber"`
	Wilaya      string             `json:"wilaya" bson:"wilaya"`
	Commune     string             `json:"commune" bson:"commune"`
	Address     string             `json:"address" bson:"address"`
	Orders      []*Order           `json:"orders"`
	CreatedAt   time.Time          `json:"createdAt" bson:"createdAt"`
}

// CreateUserRequest is used for user creation requests
type CreateUserRequest struct {
	Name        string               `json:"name" validate:"required"`
	Email       string               `json:"email" validate:"required,email"`
	PhoneNumber string               `json:"phoneNumber" validate:"required"`
	Wilaya      string               `json:"wilaya" validate:"required"`
	Commune     string               `json:"commune" validate:"required"`
	Address     string               `json:"address" validate:"required"`
	Orders      []primitive.ObjectID `json:"orders"`
}

// UpdateUserRequest is used for user update requests. Only non-empty
// fields overwrite the stored values; submitted order ids are appended
// to the existing orders sequence, not replaced.
type UpdateUserRequest struct {
	Name        string               `json:"name,omitempty"`
	Email       string               `json:"email,omitempty" validate:"omitempty,email"`
	PhoneNumber string               `json:"phoneNumber,omitempty"`
	Wilaya      string               `json:"wilaya,omitempty"`
	Commune     string               `json:"commune,omitempty"`
	Address     string               `json:"address,omitempty"`
	Orders      []primitive.ObjectID `json:"orders,omitempty"`
}

// NormalizeEmail lowercases and trims an email address before storage,
// matching the uniqueness rule on the users collection.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
