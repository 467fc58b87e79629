// Package checkout implements the order-placement workflow: create a
// user from the submitted form, create an order from the session cart,
// then link the order back onto the user. The three steps are separate
// writes with no shared transaction and no compensation on failure: a
// failure partway through can leave a user without an order, or an
// order not yet linked to its user. Callers surface a single generic
// failure either way.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Sara-kerr/Ecommerce-MERN/cart"
	"github.com/Sara-kerr/Ecommerce-MERN/models"
)

// ErrEmptyCart is returned when a checkout is submitted for a session
// with no cart lines.
var ErrEmptyCart = errors.New("checkout: cart is empty")

// Store is the persistence surface the workflow needs. Each method is
// one independent write; the workflow never asks for atomicity across
// them.
type Store interface {
	CreateUser(ctx context.Context, user models.User) (primitive.ObjectID, error)
	CreateOrder(ctx context.Context, order models.Order) (primitive.ObjectID, error)
	AppendOrderToUser(ctx context.Context, userID, orderID primitive.ObjectID) error
}

// Request carries the checkout form fields
type Request struct {
	FullName string `json:"fullName" validate:"required"`
	Wilaya   string `json:"wilaya" validate:"required"`
	Commune  string `json:"commune" validate:"required"`
	Address  string `json:"address" validate:"required"`
	Phone    string `json:"phone" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
}

// Result reports the records a successful checkout produced
type Result struct {
	UserID     primitive.ObjectID `json:"userId"`
	OrderID    primitive.ObjectID `json:"orderId"`
	TotalPrice float64            `json:"totalPrice"`
}

// Workflow sequences the three checkout writes against a Store and
// clears the session cart on success.
type Workflow struct {
	store Store
	carts *cart.Store
}

// New creates a checkout workflow
func New(store Store, carts *cart.Store) *Workflow {
	return &Workflow{store: store, carts: carts}
}

// Place runs the checkout for one session. The cart is only cleared
// after all three steps succeed, so a failed checkout can be retried
// with the same cart (at the cost of re-running completed steps).
func (w *Workflow) Place(ctx context.Context, session string, req Request) (*Result, error) {
	items := w.carts.Items(session)
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	user := models.User{
		ID:          primitive.NewObjectID(),
		Name:        req.FullName,
		Email:       models.NormalizeEmail(req.Email),
		PhoneNumber: req.Phone,
		Wilaya:      req.Wilaya,
		Commune:     req.Commune,
		Address:     req.Address,
		Orders:      []primitive.ObjectID{},
		CreatedAt:   time.Now(),
	}

	userID, err := w.store.CreateUser(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("creating user: %w", err)
	}

	order := models.Order{
		ID:              primitive.NewObjectID(),
		User:            userID,
		OrderItems:      orderItems(items),
		ShippingAddress: models.ShippingAddress{Address: req.Address, Wilaya: req.Wilaya, Commune: req.Commune},
		TotalPrice:      w.carts.Total(session),
		IsPaid:          false,
		OrderStatus:     models.OrderStatusProcessing,
		CreatedAt:       time.Now(),
	}

	orderID, err := w.store.CreateOrder(ctx, order)
	if err != nil {
		return nil, fmt.Errorf("creating order: %w", err)
	}

	if err := w.store.AppendOrderToUser(ctx, userID, orderID); err != nil {
		return nil, fmt.Errorf("linking order to user: %w", err)
	}

	w.carts.Clear(session)

	return &Result{UserID: userID, OrderID: orderID, TotalPrice: order.TotalPrice}, nil
}

func orderItems(items []models.CartItem) []models.OrderItem {
	lines := make([]models.OrderItem, 0, len(items))
	for _, item := range items {
		lines = append(lines, models.OrderItem{
			Product:  item.Product,
			Quantity: cart.Quantity(item.Quantity),
		})
	}
	return lines
}
