package checkout

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Sara-kerr/Ecommerce-MERN/cart"
	"github.com/Sara-kerr/Ecommerce-MERN/models"
)

// fakeStore records the three workflow writes and can be told to fail
// at a given step.
type fakeStore struct {
	users  map[primitive.ObjectID]models.User
	orders map[primitive.ObjectID]models.Order
	links  map[primitive.ObjectID][]primitive.ObjectID

	failCreateOrder bool
	failLink        bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:  map[primitive.ObjectID]models.User{},
		orders: map[primitive.ObjectID]models.Order{},
		links:  map[primitive.ObjectID][]primitive.ObjectID{},
	}
}

func (s *fakeStore) CreateUser(_ context.Context, user models.User) (primitive.ObjectID, error) {
	s.users[user.ID] = user
	return user.ID, nil
}

func (s *fakeStore) CreateOrder(_ context.Context, order models.Order) (primitive.ObjectID, error) {
	if s.failCreateOrder {
		return primitive.NilObjectID, errors.New("write failed")
	}
	s.orders[order.ID] = order
	return order.ID, nil
}

func (s *fakeStore) AppendOrderToUser(_ context.Context, userID, orderID primitive.ObjectID) error {
	if s.failLink {
		return errors.New("write failed")
	}
	s.links[userID] = append(s.links[userID], orderID)
	return nil
}

func validRequest() Request {
	return Request{
		FullName: "Sara K",
		Wilaya:   "Alger",
		Commune:  "Bab El Oued",
		Address:  "12 Rue Didouche",
		Phone:    "0550000000",
		Email:    " Sara@Example.COM ",
	}
}

func cartWithTwoLines(t *testing.T) (*cart.Store, primitive.ObjectID, primitive.ObjectID) {
	t.Helper()
	carts := cart.NewStore()
	shirt := primitive.NewObjectID()
	hat := primitive.NewObjectID()
	carts.Add("s1", models.CartItem{Product: shirt, Name: "shirt", Price: 100, Quantity: 2})
	carts.Add("s1", models.CartItem{Product: hat, Name: "hat", Price: 50, Quantity: 1})
	return carts, shirt, hat
}

func TestPlaceCreatesUserOrderAndLink(t *testing.T) {
	store := newFakeStore()
	carts, shirt, hat := cartWithTwoLines(t)

	result, err := New(store, carts).Place(context.Background(), "s1", validRequest())
	require.NoError(t, err)

	assert.Equal(t, 250.0, result.TotalPrice)

	user, ok := store.users[result.UserID]
	require.True(t, ok)
	assert.Equal(t, "Sara K", user.Name)
	assert.Equal(t, "sara@example.com", user.Email, "email should be trimmed and lowercased")
	assert.Empty(t, user.Orders, "user is created before the order exists")

	order, ok := store.orders[result.OrderID]
	require.True(t, ok)
	require.Len(t, order.OrderItems, 2)
	assert.Equal(t, shirt, order.OrderItems[0].Product)
	assert.Equal(t, 2, order.OrderItems[0].Quantity)
	assert.Equal(t, hat, order.OrderItems[1].Product)
	assert.Equal(t, 1, order.OrderItems[1].Quantity)
	assert.Equal(t, result.UserID, order.User)
	assert.Equal(t, 250.0, order.TotalPrice)
	assert.False(t, order.IsPaid)
	assert.Equal(t, models.OrderStatusProcessing, order.OrderStatus)

	assert.Equal(t, []primitive.ObjectID{result.OrderID}, store.links[result.UserID])
	assert.Empty(t, carts.Items("s1"), "cart is cleared after a successful checkout")
}

func TestPlaceCopiesShippingAddressFromForm(t *testing.T) {
	store := newFakeStore()
	carts, _, _ := cartWithTwoLines(t)

	result, err := New(store, carts).Place(context.Background(), "s1", validRequest())
	require.NoError(t, err)

	order := store.orders[result.OrderID]
	assert.Equal(t, models.ShippingAddress{
		Address: "12 Rue Didouche",
		Wilaya:  "Alger",
		Commune: "Bab El Oued",
	}, order.ShippingAddress)
}

func TestPlaceWithEmptyCart(t *testing.T) {
	store := newFakeStore()
	carts := cart.NewStore()

	_, err := New(store, carts).Place(context.Background(), "s1", validRequest())
	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.Empty(t, store.users, "no user is created for an empty cart")
}

func TestPlaceOrderFailureLeavesUserBehind(t *testing.T) {
	store := newFakeStore()
	store.failCreateOrder = true
	carts, _, _ := cartWithTwoLines(t)

	_, err := New(store, carts).Place(context.Background(), "s1", validRequest())
	require.Error(t, err)

	// No rollback: the user created in step one persists with no order.
	assert.Len(t, store.users, 1)
	assert.Empty(t, store.orders)
	assert.Empty(t, store.links)
	assert.Len(t, carts.Items("s1"), 2, "cart is kept when the checkout fails")
}

func TestPlaceLinkFailureLeavesOrderUnlinked(t *testing.T) {
	store := newFakeStore()
	store.failLink = true
	carts, _, _ := cartWithTwoLines(t)

	_, err := New(store, carts).Place(context.Background(), "s1", validRequest())
	require.Error(t, err)

	assert.Len(t, store.users, 1)
	assert.Len(t, store.orders, 1)
	assert.Empty(t, store.links)
	assert.Len(t, carts.Items("s1"), 2)
}

func TestPlaceDefaultsLineQuantityToOne(t *testing.T) {
	store := newFakeStore()
	carts := cart.NewStore()
	carts.Add("s1", models.CartItem{Product: primitive.NewObjectID(), Name: "shirt", Price: 100})

	result, err := New(store, carts).Place(context.Background(), "s1", validRequest())
	require.NoError(t, err)

	order := store.orders[result.OrderID]
	require.Len(t, order.OrderItems, 1)
	assert.Equal(t, 1, order.OrderItems[0].Quantity)
	assert.Equal(t, 100.0, order.TotalPrice)
}
