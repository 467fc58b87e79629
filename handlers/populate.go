package handlers

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Sara-kerr/Ecommerce-MERN/models"
)

// Population resolves reference fields into the referenced documents at
// read time: user.orders into order documents, order.user into a
// name/email summary and orderItems[].product into full products. A
// reference whose target no longer exists resolves to null; nothing
// repairs or hides dangling references.

func (h *Handler) ordersByID(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]*models.Order, error) {
	byID := make(map[primitive.ObjectID]*models.Order, len(ids))
	if len(ids) == 0 {
		return byID, nil
	}

	cursor, err := h.collection("orders").Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var orders []models.Order
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, err
	}
	for i := range orders {
		byID[orders[i].ID] = &orders[i]
	}
	return byID, nil
}

func (h *Handler) usersByID(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.User, error) {
	byID := make(map[primitive.ObjectID]models.User, len(ids))
	if len(ids) == 0 {
		return byID, nil
	}

	cursor, err := h.collection("users").Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	for _, user := range users {
		byID[user.ID] = user
	}
	return byID, nil
}

func (h *Handler) productsByID(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.Product, error) {
	byID := make(map[primitive.ObjectID]models.Product, len(ids))
	if len(ids) == 0 {
		return byID, nil
	}

	cursor, err := h.collection("products").Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var products []models.Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, err
	}
	for _, product := range products {
		byID[product.ID] = product
	}
	return byID, nil
}

// resolveUserOrders builds the populated shape of one user from a
// pre-fetched order map. Order of the references is preserved and a
// missing order becomes a null entry.
func resolveUserOrders(user models.User, orders map[primitive.ObjectID]*models.Order) models.PopulatedUser {
	populated := models.PopulatedUser{
		ID:          user.ID,
		Name:        user.Name,
		Email:       user.Email,
		PhoneNumber: user.PhoneNumber,
		Wilaya:      user.Wilaya,
		Commune:     user.Commune,
		Address:     user.Address,
		Orders:      make([]*models.Order, 0, len(user.Orders)),
		CreatedAt:   user.CreatedAt,
	}
	for _, id := range user.Orders {
		populated.Orders = append(populated.Orders, orders[id])
	}
	return populated
}

// resolveOrder builds the populated shape of one order from pre-fetched
// user and product maps.
func resolveOrder(order models.Order, users map[primitive.ObjectID]models.User, products map[primitive.ObjectID]models.Product) models.PopulatedOrder {
	populated := models.PopulatedOrder{
		ID:              order.ID,
		OrderItems:      make([]models.PopulatedOrderItem, 0, len(order.OrderItems)),
		ShippingAddress: order.ShippingAddress,
		TotalPrice:      order.TotalPrice,
		IsPaid:          order.IsPaid,
		OrderStatus:     order.OrderStatus,
		CreatedAt:       order.CreatedAt,
	}

	if user, ok := users[order.User]; ok {
		populated.User = &models.OrderUserSummary{ID: user.ID, Name: user.Name, Email: user.Email}
	}

	for _, item := range order.OrderItems {
		line := models.PopulatedOrderItem{Quantity: item.Quantity}
		if product, ok := products[item.Product]; ok {
			p := product
			line.Product = &p
		}
		populated.OrderItems = append(populated.OrderItems, line)
	}
	return populated
}

// populateUsers resolves the orders of a batch of users with one
// orders query.
func (h *Handler) populateUsers(ctx context.Context, users []models.User) ([]models.PopulatedUser, error) {
	var orderIDs []primitive.ObjectID
	for _, user := range users {
		orderIDs = append(orderIDs, user.Orders...)
	}

	orders, err := h.ordersByID(ctx, orderIDs)
	if err != nil {
		return nil, err
	}

	populated := make([]models.PopulatedUser, 0, len(users))
	for _, user := range users {
		populated = append(populated, resolveUserOrders(user, orders))
	}
	return populated, nil
}

// populateOrders resolves users and products of a batch of orders with
// one query per collection.
func (h *Handler) populateOrders(ctx context.Context, orders []models.Order) ([]models.PopulatedOrder, error) {
	var userIDs, productIDs []primitive.ObjectID
	for _, order := range orders {
		userIDs = append(userIDs, order.User)
		for _, item := range order.OrderItems {
			productIDs = append(productIDs, item.Product)
		}
	}

	users, err := h.usersByID(ctx, userIDs)
	if err != nil {
		return nil, err
	}
	products, err := h.productsByID(ctx, productIDs)
	if err != nil {
		return nil, err
	}

	populated := make([]models.PopulatedOrder, 0, len(orders))
	for _, order := range orders {
		populated = append(populated, resolveOrder(order, users, products))
	}
	return populated, nil
}
