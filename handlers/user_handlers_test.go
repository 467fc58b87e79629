package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Sara-kerr/Ecommerce-MERN/models"
)

func TestBuildUserUpdateSetsOnlySubmittedFields(t *testing.T) {
	update := buildUserUpdate(models.UpdateUserRequest{
		Name:   "Sara",
		Wilaya: "Alger",
	})

	set, ok := update["$set"].(bson.M)
	require.True(t, ok)
	assert.Equal(t, bson.M{"name": "Sara", "wilaya": "Alger"}, set)
	assert.NotContains(t, update, "$push")
}

func TestBuildUserUpdateNormalizesEmail(t *testing.T) {
	update := buildUserUpdate(models.UpdateUserRequest{Email: " Sara@Example.COM "})

	set := update["$set"].(bson.M)
	assert.Equal(t, "sara@example.com", set["email"])
}

func TestBuildUserUpdateAppendsOrders(t *testing.T) {
	orderID := primitive.NewObjectID()

	update := buildUserUpdate(models.UpdateUserRequest{Orders: []primitive.ObjectID{orderID}})

	push, ok := update["$push"].(bson.M)
	require.True(t, ok, "submitted orders are appended, never replaced")
	assert.Equal(t, bson.M{"orders": bson.M{"$each": []primitive.ObjectID{orderID}}}, push)
	assert.NotContains(t, update, "$set")
}

func TestBuildUserUpdateEmptyRequest(t *testing.T) {
	update := buildUserUpdate(models.UpdateUserRequest{})
	assert.Empty(t, update)
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "sara@example.com", models.NormalizeEmail("  SARA@example.Com "))
}
