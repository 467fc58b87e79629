package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Sara-kerr/Ecommerce-MERN/models"
)

func item(id primitive.ObjectID, name string, price float64, qty int) models.CartItem {
	return models.CartItem{Product: id, Name: name, Price: price, Quantity: qty}
}

func TestAddKeepsDuplicateLines(t *testing.T) {
	store := NewStore()
	productID := primitive.NewObjectID()

	store.Add("s1", item(productID, "shirt", 100, 1))
	store.Add("s1", item(productID, "shirt", 100, 1))

	items := store.Items("s1")
	require.Len(t, items, 2, "adding the same product twice should yield two lines")
	assert.Equal(t, productID, items[0].Product)
	assert.Equal(t, productID, items[1].Product)
}

func TestRemoveDropsEveryMatchingLine(t *testing.T) {
	store := NewStore()
	shirt := primitive.NewObjectID()
	hat := primitive.NewObjectID()

	store.Add("s1", item(shirt, "shirt", 100, 1))
	store.Add("s1", item(hat, "hat", 50, 1))
	store.Add("s1", item(shirt, "shirt", 100, 2))

	store.Remove("s1", shirt)

	items := store.Items("s1")
	require.Len(t, items, 1)
	assert.Equal(t, hat, items[0].Product)
}

func TestClearEmptiesTheCart(t *testing.T) {
	store := NewStore()
	store.Add("s1", item(primitive.NewObjectID(), "shirt", 100, 1))

	store.Clear("s1")

	assert.Empty(t, store.Items("s1"))
	assert.Zero(t, store.Total("s1"))
}

func TestTotalDefaultsMissingQuantityToOne(t *testing.T) {
	store := NewStore()
	store.Add("s1", item(primitive.NewObjectID(), "shirt", 100, 2))
	store.Add("s1", item(primitive.NewObjectID(), "hat", 50, 0))

	assert.Equal(t, 250.0, store.Total("s1"))
}

func TestSessionsAreIndependent(t *testing.T) {
	store := NewStore()
	store.Add("s1", item(primitive.NewObjectID(), "shirt", 100, 1))

	assert.Len(t, store.Items("s1"), 1)
	assert.Empty(t, store.Items("s2"))

	store.Clear("s2")
	assert.Len(t, store.Items("s1"), 1)
}

func TestItemsReturnsACopy(t *testing.T) {
	store := NewStore()
	store.Add("s1", item(primitive.NewObjectID(), "shirt", 100, 1))

	items := store.Items("s1")
	items[0].Price = 1

	assert.Equal(t, 100.0, store.Items("s1")[0].Price)
}

func TestQuantity(t *testing.T) {
	assert.Equal(t, 1, Quantity(0))
	assert.Equal(t, 1, Quantity(-2))
	assert.Equal(t, 3, Quantity(3))
}
