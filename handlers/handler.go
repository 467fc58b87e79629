package handlers

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Sara-kerr/Ecommerce-MERN/cart"
	"github.com/Sara-kerr/Ecommerce-MERN/checkout"
	"github.com/Sara-kerr/Ecommerce-MERN/utils"
)

// Handler contains the database client, database name and the shared
// helpers every route handler needs.
type Handler struct {
	DB       *mongo.Client
	Database string

	Carts    *cart.Store
	Checkout *checkout.Workflow

	Validate     *validator.Validate
	ErrorHdlr    *utils.ErrorHandler
	ResponseHdlr *ResponseHandler
}

// New wires up a Handler around the mongo client
func New(db *mongo.Client, database string, carts *cart.Store, workflow *checkout.Workflow) *Handler {
	return &Handler{
		DB:           db,
		Database:     database,
		Carts:        carts,
		Checkout:     workflow,
		Validate:     validator.New(),
		ErrorHdlr:    utils.NewErrorHandler(),
		ResponseHdlr: NewResponseHandler(),
	}
}

func (h *Handler) collection(name string) *mongo.Collection {
	return h.DB.Database(h.Database).Collection(name)
}

func (h *Handler) validationError(w http.ResponseWriter, err error) {
	h.ErrorHdlr.HandleValidationError(w, utils.ValidationDetails(err))
}
