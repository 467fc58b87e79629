package router

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/Sara-kerr/Ecommerce-MERN/handlers"
	"github.com/Sara-kerr/Ecommerce-MERN/middleware"
)

// SetupRoutes builds the route table. Fixed product paths (/search,
// /category/...) are registered before the /{id} variable so they are
// not swallowed by it.
func SetupRoutes(h *handlers.Handler) *mux.Router {
	router := mux.NewRouter()
	router.Use(middleware.RequestLogger())

	router.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, "API is running ...")
	}).Methods("GET")

	api := router.PathPrefix("/api").Subrouter()

	// Product routes
	productRoutes := api.PathPrefix("/product").Subrouter()
	productRoutes.HandleFunc("", h.CreateProduct).Methods("POST")
	productRoutes.HandleFunc("", h.ListProducts).Methods("GET")
	productRoutes.HandleFunc("/search", h.SearchProducts).Methods("GET")
	productRoutes.HandleFunc("/category/{category}", h.ListProductsByCategory).Methods("GET")
	productRoutes.HandleFunc("/{id}", h.GetProduct).Methods("GET")
	productRoutes.HandleFunc("/{id}/stock", h.GetProductStock).Methods("GET")

	// Order routes
	orderRoutes := api.PathPrefix("/order").Subrouter()
	orderRoutes.HandleFunc("", h.CreateOrder).Methods("POST")
	orderRoutes.HandleFunc("", h.ListOrders).Methods("GET")
	orderRoutes.HandleFunc("/user/{userId}", h.GetOrdersByUser).Methods("GET")
	orderRoutes.HandleFunc("/{id}", h.AppendUserOrders).Methods("PUT")
	orderRoutes.HandleFunc("/{id}", h.GetOrder).Methods("GET")
	orderRoutes.HandleFunc("/{id}", h.DeleteOrder).Methods("DELETE")
	orderRoutes.HandleFunc("/{id}/status", h.UpdateOrderStatus).Methods("PUT")
	orderRoutes.HandleFunc("/{id}/pay", h.UpdateOrderPayment).Methods("PUT")

	// User routes
	userRoutes := api.PathPrefix("/user").Subrouter()
	userRoutes.HandleFunc("", h.CreateUser).Methods("POST")
	userRoutes.HandleFunc("", h.ListUsers).Methods("GET")
	userRoutes.HandleFunc("/{id}", h.GetUser).Methods("GET")
	userRoutes.HandleFunc("/{id}", h.UpdateUser).Methods("PUT")
	userRoutes.HandleFunc("/{id}", h.DeleteUser).Methods("DELETE")
	userRoutes.HandleFunc("/{id}/orders", h.GetUserOrders).Methods("GET")

	// Session cart routes
	cartRoutes := api.PathPrefix("/cart").Subrouter()
	cartRoutes.HandleFunc("", h.GetCart).Methods("GET")
	cartRoutes.HandleFunc("", h.AddCartItem).Methods("POST")
	cartRoutes.HandleFunc("/clear", h.ClearCart).Methods("POST")
	cartRoutes.HandleFunc("/{productId}", h.RemoveCartItem).Methods("DELETE")

	// Checkout workflow
	api.HandleFunc("/checkout", h.PlaceOrder).Methods("POST")

	return router
}
