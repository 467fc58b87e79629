package handlers

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Sara-kerr/Ecommerce-MERN/models"
)

func TestResolveUserOrdersKeepsDanglingReferencesAsNull(t *testing.T) {
	kept := primitive.NewObjectID()
	deleted := primitive.NewObjectID()

	user := models.User{
		ID:     primitive.NewObjectID(),
		Name:   "Sara",
		Orders: []primitive.ObjectID{kept, deleted},
	}
	orders := map[primitive.ObjectID]*models.Order{
		kept: {ID: kept, TotalPrice: 250},
	}

	populated := resolveUserOrders(user, orders)

	require.Len(t, populated.Orders, 2, "dangling references are kept, not dropped")
	require.NotNil(t, populated.Orders[0])
	assert.Equal(t, kept, populated.Orders[0].ID)
	assert.Nil(t, populated.Orders[1], "a deleted order resolves to null")

	// The null must survive into the JSON body.
	body, err := json.Marshal(populated)
	require.NoError(t, err)
	assert.Contains(t, string(body), "null")
}

func TestResolveUserOrdersPreservesReferenceOrder(t *testing.T) {
	first := primitive.NewObjectID()
	second := primitive.NewObjectID()

	user := models.User{Orders: []primitive.ObjectID{first, second}}
	orders := map[primitive.ObjectID]*models.Order{
		first:  {ID: first},
		second: {ID: second},
	}

	populated := resolveUserOrders(user, orders)

	require.Len(t, populated.Orders, 2)
	assert.Equal(t, first, populated.Orders[0].ID)
	assert.Equal(t, second, populated.Orders[1].ID)
}

func TestResolveOrderPopulatesUserSummaryAndProducts(t *testing.T) {
	userID := primitive.NewObjectID()
	productID := primitive.NewObjectID()

	order := models.Order{
		ID:   primitive.NewObjectID(),
		User: userID,
		OrderItems: []models.OrderItem{
			{Product: productID, Quantity: 2},
		},
		TotalPrice: 200,
	}
	users := map[primitive.ObjectID]models.User{
		userID: {ID: userID, Name: "Sara", Email: "sara@example.com", PhoneNumber: "0550000000"},
	}
	products := map[primitive.ObjectID]models.Product{
		productID: {ID: productID, Name: "shirt", Price: 100},
	}

	populated := resolveOrder(order, users, products)

	require.NotNil(t, populated.User)
	assert.Equal(t, "Sara", populated.User.Name)
	assert.Equal(t, "sara@example.com", populated.User.Email)

	require.Len(t, populated.OrderItems, 1)
	require.NotNil(t, populated.OrderItems[0].Product)
	assert.Equal(t, "shirt", populated.OrderItems[0].Product.Name)
	assert.Equal(t, 2, populated.OrderItems[0].Quantity)
}

func TestResolveOrderWithDanglingReferences(t *testing.T) {
	order := models.Order{
		ID:         primitive.NewObjectID(),
		User:       primitive.NewObjectID(),
		OrderItems: []models.OrderItem{{Product: primitive.NewObjectID(), Quantity: 1}},
	}

	populated := resolveOrder(order, map[primitive.ObjectID]models.User{}, map[primitive.ObjectID]models.Product{})

	assert.Nil(t, populated.User, "a deleted user resolves to null")
	require.Len(t, populated.OrderItems, 1)
	assert.Nil(t, populated.OrderItems[0].Product, "a deleted product resolves to null")
}
