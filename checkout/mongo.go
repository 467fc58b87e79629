package checkout

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Sara-kerr/Ecommerce-MERN/models"
)

// MongoStore backs the workflow with the users and orders collections
type MongoStore struct {
	db       *mongo.Client
	database string
}

// NewMongoStore creates the MongoDB-backed checkout store
func NewMongoStore(db *mongo.Client, database string) *MongoStore {
	return &MongoStore{db: db, database: database}
}

func (s *MongoStore) collection(name string) *mongo.Collection {
	return s.db.Database(s.database).Collection(name)
}

// CreateUser inserts the user record and returns its id
func (s *MongoStore) CreateUser(ctx context.Context, user models.User) (primitive.ObjectID, error) {
	if _, err := s.collection("users").InsertOne(ctx, user); err != nil {
		return primitive.NilObjectID, err
	}
	return user.ID, nil
}

// CreateOrder inserts the order record and returns its id
func (s *MongoStore) CreateOrder(ctx context.Context, order models.Order) (primitive.ObjectID, error) {
	if _, err := s.collection("orders").InsertOne(ctx, order); err != nil {
		return primitive.NilObjectID, err
	}
	return order.ID, nil
}

// AppendOrderToUser pushes the order id onto the user's orders sequence
func (s *MongoStore) AppendOrderToUser(ctx context.Context, userID, orderID primitive.ObjectID) error {
	result, err := s.collection("users").UpdateOne(
		ctx,
		bson.M{"_id": userID},
		bson.M{"$push": bson.M{"orders": orderID}},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
