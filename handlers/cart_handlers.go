package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Sara-kerr/Ecommerce-MERN/models"
)

// SessionHeader carries the opaque cart session id. When a request
// arrives without one, a fresh id is generated and echoed back so the
// client can keep using the same cart.
const SessionHeader = "X-Session-Id"

func (h *Handler) session(w http.ResponseWriter, r *http.Request) string {
	session := r.Header.Get(SessionHeader)
	if session == "" {
		session = primitive.NewObjectID().Hex()
	}
	w.Header().Set(SessionHeader, session)
	return session
}

func (h *Handler) cartResponse(session string) models.Cart {
	return models.Cart{
		Items:      h.Carts.Items(session),
		TotalPrice: h.Carts.Total(session),
	}
}

// GetCart handles GET /api/cart
func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	session := h.session(w, r)
	h.ResponseHdlr.Success(w, h.cartResponse(session))
}

// AddCartItem handles POST /api/cart. The cart stores a snapshot of the
// product at add time, and adding the same product again appends a
// second line. Out-of-stock products are rejected.
func (h *Handler) AddCartItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	session := h.session(w, r)

	var req models.AddCartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ErrorHdlr.HandleBadRequest(w, "Invalid request body")
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		h.validationError(w, err)
		return
	}

	objID, err := primitive.ObjectIDFromHex(req.Product)
	if err != nil {
		h.ErrorHdlr.HandleBadRequest(w, "Invalid product ID")
		return
	}

	var product models.Product
	err = h.collection("products").FindOne(ctx, bson.M{"_id": objID}).Decode(&product)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			h.ErrorHdlr.HandleNotFound(w, "Product not found")
		} else {
			log.Error().Err(err).Str("product", req.Product).Msg("fetching product for cart")
			h.ErrorHdlr.HandleInternalError(w, "Error adding product to cart")
		}
		return
	}

	if !product.IsStocked {
		h.ErrorHdlr.HandleConflict(w, fmt.Sprintf("The product %s is out of stock.", product.Name))
		return
	}

	h.Carts.Add(session, models.CartItem{
		Product:  product.ID,
		Name:     product.Name,
		Price:    product.Price,
		Quantity: req.Quantity,
	})

	h.ResponseHdlr.Success(w, h.cartResponse(session))
}

// RemoveCartItem handles DELETE /api/cart/{productId}, dropping every
// cart line holding that product.
func (h *Handler) RemoveCartItem(w http.ResponseWriter, r *http.Request) {
	session := h.session(w, r)

	objID, err := primitive.ObjectIDFromHex(mux.Vars(r)["productId"])
	if err != nil {
		h.ErrorHdlr.HandleBadRequest(w, "Invalid product ID")
		return
	}

	h.Carts.Remove(session, objID)
	h.ResponseHdlr.Success(w, h.cartResponse(session))
}

// ClearCart handles POST /api/cart/clear
func (h *Handler) ClearCart(w http.ResponseWriter, r *http.Request) {
	session := h.session(w, r)
	h.Carts.Clear(session)
	h.ResponseHdlr.Success(w, h.cartResponse(session))
}
