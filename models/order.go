package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OrderStatusProcessing is the status assigned to every new order.
// Status is free text afterwards; no transition graph is enforced.
const OrderStatusProcessing = "processing"

// OrderItem is a single line of an order: a product reference and a
// quantity. Quantity defaults to 1 when absent from the request.
type OrderItem struct {
	Product  primitive.ObjectID `json:"product" bson:"product"`
	Quantity int                `json:"quantity" bson:"quantity"`
}

// ShippingAddress is a denormalized copy of the address submitted at
// checkout, deliberately not a reference to the user's current address.
type ShippingAddress struct {
	Address string `json:"address" bson:"address"`
	Wilaya  string `json:"wilaya" bson:"wilaya"`
	Commune string `json:"commune" bson:"commune"`
}

// Order represents a placed order document
type Order struct {
	ID              primitive.ObjectID `json:"id" bson:"_id"`
	User            primitive.ObjectID `json:"user" bson:"user"`
	OrderItems      []OrderItem        `json:"orderItems" bson:"orderItems"`
	ShippingAddress ShippingAddress    `json:"shippingAddress" bson:"shippingAddress"`
	TotalPrice      float64            `json:"totalPrice" bson:"totalPrice"`
	IsPaid          bool               `json:"isPaid" bson:"isPaid"`
	OrderStatus     string             `json:"orderStatus" bson:"orderStatus"`
	CreatedAt       time.Time          `json:"createdAt" bson:"createdAt"`
}

// OrderItemRequest is one line of an order creation request
type OrderItemRequest struct {
	Product  string `json:"product" validate:"required"`
	Quantity int    `json:"quantity"`
}

// ShippingAddressRequest carries the address block of an order creation
// request; every field is required.
type ShippingAddressRequest struct {
	Address string `json:"address" validate:"required"`
	Wilaya  string `json:"wilaya" validate:"required"`
	Commune string `json:"commune" validate:"required"`
}

// CreateOrderRequest is used for order creation requests. The total
// price is taken as submitted and not recomputed server-side.
type CreateOrderRequest struct {
	User            string                  `json:"user" validate:"required"`
	OrderItems      []OrderItemRequest      `json:"orderItems" validate:"required,min=1,dive"`
	ShippingAddress *ShippingAddressRequest `json:"shippingAddress" validate:"required"`
	TotalPrice      *float64                `json:"totalPrice" validate:"required"`
}

// AppendOrdersRequest carries order ids to append to a user's orders
// sequence.
type AppendOrdersRequest struct {
	Orders []primitive.ObjectID `json:"orders" validate:"required,min=1"`
}

// UpdateOrderStatusRequest sets the free-text status of an order
type UpdateOrderStatusRequest struct {
	OrderStatus string `json:"orderStatus" validate:"required"`
}

// UpdateOrderPaymentRequest sets the payment flag of an order
type UpdateOrderPaymentRequest struct {
	IsPaid *bool `json:"isPaid" validate:"required"`
}

// OrderUserSummary is the populated shape of an order's user reference:
// only name and email are exposed alongside the id.
type OrderUserSummary struct {
	ID    primitive.ObjectID `json:"id"`
	Name  string             `json:"name"`
	Email string             `json:"email"`
}

// PopulatedOrderItem is an order line with its product reference
// resolved. A dangling product reference resolves to null.
type PopulatedOrderItem struct {
	Product  *Product `json:"product"`
	Quantity int      `json:"quantity"`
}

// PopulatedOrder is an Order with user and product references resolved
type PopulatedOrder struct {
	ID              primitive.ObjectID   `json:"id"`
	User            *OrderUserSummary    `json:"user"`
	OrderItems      []PopulatedOrderItem `json:"orderItems"`
	ShippingAddress ShippingAddress      `json:"shippingAddress"`
	TotalPrice      float64              `json:"totalPrice"`
	IsPaid          bool                 `json:"isPaid"`
	OrderStatus     string               `json:"orderStatus"`
	CreatedAt       time.Time            `json:"createdAt"`
}
