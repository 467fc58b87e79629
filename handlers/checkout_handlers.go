package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/Sara-kerr/Ecommerce-MERN/checkout"
)

// PlaceOrder handles POST /api/checkout: the three-step order-placement
// workflow for the session's cart. Any step failure is reported with
// one generic message; steps already completed are not rolled back, so
// a user record may persist without its order. The step reached goes to
// the log only.
func (h *Handler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	session := h.session(w, r)

	var req checkout.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ErrorHdlr.HandleBadRequest(w, "Invalid request body")
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		h.validationError(w, err)
		return
	}

	result, err := h.Checkout.Place(r.Context(), session, req)
	if err != nil {
		if errors.Is(err, checkout.ErrEmptyCart) {
			h.ErrorHdlr.HandleBadRequest(w, "Cart is empty")
			return
		}
		log.Error().Err(err).Str("session", session).Msg("placing order")
		h.ErrorHdlr.HandleInternalError(w, "Error submitting order. Please try again.")
		return
	}

	h.ResponseHdlr.Created(w, result)
}
