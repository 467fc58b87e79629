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

	"github.com/Sara-kerr/Ecommerce-MERN/models"
)

// CreateUser handles POST /api/user
func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req models.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ErrorHdlr.HandleBadRequest(w, "Invalid request body")
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		h.validationError(w, err)
		return
	}

	orders := req.Orders
	if orders == nil {
		orders = []primitive.ObjectID{}
	}

	newUser := models.User{
		ID:          primitive.NewObjectID(),
		Name:        req.Name,
		Email:       models.NormalizeEmail(req.Email),
		PhoneNumber: req.PhoneNumber,
		Wilaya:      req.Wilaya,
		Commune:     req.Commune,
		Address:     req.Address,
		Orders:      orders,
		CreatedAt:   time.Now(),
	}

	if _, err := h.collection("users").InsertOne(r.Context(), newUser); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			h.ErrorHdlr.HandleConflict(w, "User with this email already exists")
			return
		}
		log.Error().Err(err).Msg("inserting user")
		h.ErrorHdlr.HandleInternalError(w, "Error creating user")
		return
	}

	h.ResponseHdlr.Created(w, newUser)
}

// ListUsers handles GET /api/user with orders populated
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	cursor, err := h.collection("users").Find(ctx, bson.M{})
	if err != nil {
		log.Error().Err(err).Msg("fetching users")
		h.ErrorHdlr.HandleInternalError(w, "Error fetching users")
		return
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		log.Error().Err(err).Msg("decoding users")
		h.ErrorHdlr.HandleInternalError(w, "Error fetching users")
		return
	}

	populated, err := h.populateUsers(ctx, users)
	if err != nil {
		log.Error().Err(err).Msg("populating user orders")
		h.ErrorHdlr.HandleInternalError(w, "Error fetching users")
		return
	}

	h.ResponseHdlr.Success(w, populated)
}

// GetUser handles GET /api/user/{id} with orders populated
func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, ok := h.findUser(w, r)
	if !ok {
		return
	}

	orders, err := h.ordersByID(ctx, user.Orders)
	if err != nil {
		log.Error().Err(err).Msg("populating user orders")
		h.ErrorHdlr.HandleInternalError(w, "Error fetching user")
		return
	}

	h.ResponseHdlr.Success(w, resolveUserOrders(user, orders))
}

// UpdateUser handles PUT /api/user/{id}: a field-merge update where
// only non-empty submitted fields overwrite stored values. Submitted
// order ids are appended to the orders sequence — this is step three of
// the checkout workflow when driven by a client.
func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := mux.Vars(r)["id"]

	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		h.ErrorHdlr.HandleBadRequest(w, "Invalid user ID")
		return
	}

	var req models.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ErrorHdlr.HandleBadRequest(w, "Invalid request body")
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		h.validationError(w, err)
		return
	}

	update := buildUserUpdate(req)
	if len(update) == 0 {
		h.ErrorHdlr.HandleBadRequest(w, "No fields to update provided")
		return
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated models.User
	err = h.collection("users").FindOneAndUpdate(ctx, bson.M{"_id": objID}, update, opts).Decode(&updated)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			h.ErrorHdlr.HandleNotFound(w, "User not found")
		} else {
			log.Error().Err(err).Str("user", id).Msg("updating user")
			h.ErrorHdlr.HandleInternalError(w, "Error updating user")
		}
		return
	}

	h.ResponseHdlr.Success(w, updated)
}

// DeleteUser handles DELETE /api/user/{id}
func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		h.ErrorHdlr.HandleBadRequest(w, "Invalid user ID")
		return
	}

	result, err := h.collection("users").DeleteOne(r.Context(), bson.M{"_id": objID})
	if err != nil {
		log.Error().Err(err).Str("user", id).Msg("deleting user")
		h.ErrorHdlr.HandleInternalError(w, "Error deleting user")
		return
	}
	if result.DeletedCount == 0 {
		h.ErrorHdlr.HandleNotFound(w, "User not found")
		return
	}

	h.ResponseHdlr.Message(w, http.StatusOK, "User deleted successfully")
}

// GetUserOrders handles GET /api/user/{id}/orders, returning only the
// populated orders sequence. A deleted order shows up as a null entry.
func (h *Handler) GetUserOrders(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, ok := h.findUser(w, r)
	if !ok {
		return
	}

	orders, err := h.ordersByID(ctx, user.Orders)
	if err != nil {
		log.Error().Err(err).Msg("populating user orders")
		h.ErrorHdlr.HandleInternalError(w, "Error fetching user orders")
		return
	}

	h.ResponseHdlr.Success(w, resolveUserOrders(user, orders).Orders)
}

// findUser loads the user addressed by the {id} path variable, writing
// the error response itself when the id is invalid or unknown.
func (h *Handler) findUser(w http.ResponseWriter, r *http.Request) (models.User, bool) {
	id := mux.Vars(r)["id"]

	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		h.ErrorHdlr.HandleBadRequest(w, "Invalid user ID")
		return models.User{}, false
	}

	var user models.User
	err = h.collection("users").FindOne(r.Context(), bson.M{"_id": objID}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			h.ErrorHdlr.HandleNotFound(w, "User not found")
		} else {
			log.Error().Err(err).Str("user", id).Msg("fetching user")
			h.ErrorHdlr.HandleInternalError(w, "Error fetching user")
		}
		return models.User{}, false
	}
	return user, true
}

// buildUserUpdate turns an update request into the mongo update
// document: $set for non-empty scalar fields, $push with $each for
// appended order ids.
func buildUserUpdate(req models.UpdateUserRequest) bson.M {
	set := bson.M{}
	if req.Name != "" {
		set["name"] = req.Name
	}
	if req.Email != "" {
		set["email"] = models.NormalizeEmail(req.Email)
	}
	if req.PhoneNumber != "" {
		set["phoneNumber"] = req.PhoneNumber
	}
	if req.Wilaya != "" {
		set["wilaya"] = req.Wilaya
	}
	if req.Commune != "" {
		set["commune"] = req.Commune
	}
	if req.Address != "" {
		set["address"] = req.Address
	}

	update := bson.M{}
	if len(set) > 0 {
		update["$set"] = set
	}
	if len(req.Orders) > 0 {
		update["$push"] = bson.M{"orders": bson.M{"$each": req.Orders}}
	}
	return update
}
