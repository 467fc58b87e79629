package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Sara-kerr/Ecommerce-MERN/cart"
	"github.com/Sara-kerr/Ecommerce-MERN/models"
)

// CreateOrder handles POST /api/order. The user and product references
// are stored as submitted without an existence check, and totalPrice is
// taken as computed by the caller.
func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req models.CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ErrorHdlr.HandleBadRequest(w, "Invalid request body")
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		h.validationError(w, err)
		return
	}

	userID, err := primitive.ObjectIDFromHex(req.User)
	if err != nil {
		h.ErrorHdlr.HandleBadRequest(w, "Invalid user ID")
		return
	}

	items := make([]models.OrderItem, 0, len(req.OrderItems))
	for _, item := range req.OrderItems {
		productID, err := primitive.ObjectIDFromHex(item.Product)
		if err != nil {
			h.ErrorHdlr.HandleBadRequest(w, "Invalid product ID in order items")
			return
		}
		items = append(items, models.OrderItem{
			Product:  productID,
			Quantity: cart.Quantity(item.Quantity),
		})
	}

	newOrder := models.Order{
		ID:   primitive.NewObjectID(),
		User: userID,
		OrderItems: items,
		ShippingAddress: models.ShippingAddress{
			Address: req.ShippingAddress.Address,
			Wilaya:  req.ShippingAddress.Wilaya,
			Commune: req.ShippingAddress.Commune,
		},
		TotalPrice:  *req.TotalPrice,
		IsPaid:      false,
		OrderStatus: models.OrderStatusProcessing,
		CreatedAt:   time.Now(),
	}

	if _, err := h.collection("orders").InsertOne(r.Context(), newOrder); err != nil {
		log.Error().Err(err).Msg("inserting order")
		h.ErrorHdlr.HandleInternalError(w, "Error creating order")
		return
	}

	h.ResponseHdlr.Created(w, newOrder)
}

// AppendUserOrders handles PUT /api/order/{id}: {id} addresses a user
// and the submitted order ids are appended to that user's orders
// sequence (checkout step three).
func (h *Handler) AppendUserOrders(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := mux.Vars(r)["id"]

	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		h.ErrorHdlr.HandleBadRequest(w, "Invalid user ID")
		return
	}

	var req models.AppendOrdersRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ErrorHdlr.HandleBadRequest(w, "Invalid request body")
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		h.validationError(w, err)
		return
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	update := bson.M{"$push": bson.M{"orders": bson.M{"$each": req.Orders}}}

	var updated models.User
	err = h.collection("users").FindOneAndUpdate(ctx, bson.M{"_id": objID}, update, opts).Decode(&updated)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			h.ErrorHdlr.HandleNotFound(w, "User not found")
		} else {
			log.Error().Err(err).Str("user", id).Msg("appending orders to user")
			h.ErrorHdlr.HandleInternalError(w, "Error updating user")
		}
		return
	}

	h.ResponseHdlr.Success(w, updated)
}

// ListOrders handles GET /api/order with user and products populated
func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	cursor, err := h.collection("orders").Find(ctx, bson.M{})
	if err != nil {
		log.Error().Err(err).Msg("fetching orders")
		h.ErrorHdlr.HandleInternalError(w, "Error fetching orders")
		return
	}
	defer cursor.Close(ctx)

	var orders []models.Order
	if err := cursor.All(ctx, &orders); err != nil {
		log.Error().Err(err).Msg("decoding orders")
		h.ErrorHdlr.HandleInternalError(w, "Error fetching orders")
		return
	}

	populated, err := h.populateOrders(ctx, orders)
	if err != nil {
		log.Error().Err(err).Msg("populating orders")
		h.ErrorHdlr.HandleInternalError(w, "Error fetching orders")
		return
	}

	h.ResponseHdlr.Success(w, populated)
}

// GetOrder handles GET /api/order/{id} with user and products populated
func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := mux.Vars(r)["id"]

	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		h.ErrorHdlr.HandleBadRequest(w, "Invalid order ID")
		return
	}

	var order models.Order
	err = h.collection("orders").FindOne(ctx, bson.M{"_id": objID}).Decode(&order)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			h.ErrorHdlr.HandleNotFound(w, "Order not found")
		} else {
			log.Error().Err(err).Str("order", id).Msg("fetching order")
			h.ErrorHdlr.HandleInternalError(w, "Error fetching order")
		}
		return
	}

	populated, err := h.populateOrders(ctx, []models.Order{order})
	if err != nil {
		log.Error().Err(err).Str("order", id).Msg("populating order")
		h.ErrorHdlr.HandleInternalError(w, "Error fetching order")
		return
	}

	h.ResponseHdlr.Success(w, populated[0])
}

// GetOrdersByUser handles GET /api/order/user/{userId}. An empty result
// is a 404, matching the storefront's expectations.
func (h *Handler) GetOrdersByUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := mux.Vars(r)["userId"]

	objID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		h.ErrorHdlr.HandleBadRequest(w, "Invalid user ID")
		return
	}

	cursor, err := h.collection("orders").Find(ctx, bson.M{"user": objID})
	if err != nil {
		log.Error().Err(err).Str("user", userID).Msg("fetching orders for user")
		h.ErrorHdlr.HandleInternalError(w, "Error fetching orders for user")
		return
	}
	defer cursor.Close(ctx)

	var orders []models.Order
	if err := cursor.All(ctx, &orders); err != nil {
		log.Error().Err(err).Msg("decoding orders for user")
		h.ErrorHdlr.HandleInternalError(w, "Error fetching orders for user")
		return
	}

	if len(orders) == 0 {
		h.ErrorHdlr.HandleNotFound(w, "No orders found for this user")
		return
	}

	populated, err := h.populateOrders(ctx, orders)
	if err != nil {
		log.Error().Err(err).Msg("populating orders for user")
		h.ErrorHdlr.HandleInternalError(w, "Error fetching orders for user")
		return
	}

	h.ResponseHdlr.Success(w, populated)
}

// UpdateOrderStatus handles PUT /api/order/{id}/status. The status is
// free text; any value is accepted and no transition is forbidden.
func (h *Handler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateOrderStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ErrorHdlr.HandleBadRequest(w, "Invalid request body")
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		h.validationError(w, err)
		return
	}

	h.setOrderField(w, r, bson.M{"orderStatus": req.OrderStatus}, "Error updating order status")
}

// UpdateOrderPayment handles PUT /api/order/{id}/pay
func (h *Handler) UpdateOrderPayment(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateOrderPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ErrorHdlr.HandleBadRequest(w, "Invalid request body")
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		h.validationError(w, err)
		return
	}

	h.setOrderField(w, r, bson.M{"isPaid": *req.IsPaid}, "Error updating payment status")
}

// setOrderField sets exactly one field on the order addressed by the
// {id} path variable and responds with the updated document.
func (h *Handler) setOrderField(w http.ResponseWriter, r *http.Request, fields bson.M, errMessage string) {
	id := mux.Vars(r)["id"]

	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		h.ErrorHdlr.HandleBadRequest(w, "Invalid order ID")
		return
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated models.Order
	err = h.collection("orders").FindOneAndUpdate(r.Context(), bson.M{"_id": objID}, bson.M{"$set": fields}, opts).Decode(&updated)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			h.ErrorHdlr.HandleNotFound(w, "Order not found")
		} else {
			log.Error().Err(err).Str("order", id).Msg("updating order")
			h.ErrorHdlr.HandleInternalError(w, errMessage)
		}
		return
	}

	h.ResponseHdlr.Success(w, updated)
}

// DeleteOrder handles DELETE /api/order/{id}. The owning user's orders
// sequence is left untouched, so the user keeps a dangling reference
// that populates to null.
func (h *Handler) DeleteOrder(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		h.ErrorHdlr.HandleBadRequest(w, "Invalid order ID")
		return
	}

	result, err := h.collection("orders").DeleteOne(r.Context(), bson.M{"_id": objID})
	if err != nil {
		log.Error().Err(err).Str("order", id).Msg("deleting order")
		h.ErrorHdlr.HandleInternalError(w, "Error deleting order")
		return
	}
	if result.DeletedCount == 0 {
		h.ErrorHdlr.HandleNotFound(w, "Order not found")
		return
	}

	h.ResponseHdlr.Message(w, http.StatusOK, "Order deleted successfully")
}
