package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Sara-kerr/Ecommerce-MERN/cache"
	"github.com/Sara-kerr/Ecommerce-MERN/models"
)

const (
	defaultPage  = 1
	defaultLimit = 12
	defaultSort  = "name"
)

// listQuery holds the parsed product listing parameters
type listQuery struct {
	Page     int
	Limit    int
	Sort     string
	Category string
}

// parseListQuery reads page/limit/sort/category from the URL, falling
// back to the defaults for absent or non-positive values. No upper
// bound is enforced on limit.
func parseListQuery(r *http.Request) listQuery {
	q := listQuery{
		Page:     defaultPage,
		Limit:    defaultLimit,
		Sort:     defaultSort,
		Category: r.URL.Query().Get("category"),
	}

	if p, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && p > 0 {
		q.Page = p
	}
	if l, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && l > 0 {
		q.Limit = l
	}
	if s := r.URL.Query().Get("sort"); s != "" {
		q.Sort = s
	}
	return q
}

// sortSpec turns a mongoose-style sort key ("price", "-price") into a
// mongo sort document.
func sortSpec(sort string) bson.D {
	if field, ok := strings.CutPrefix(sort, "-"); ok {
		return bson.D{{Key: field, Value: -1}}
	}
	return bson.D{{Key: sort, Value: 1}}
}

// totalPages computes ceil(total / limit)
func totalPages(total int64, limit int) int {
	return int((total + int64(limit) - 1) / int64(limit))
}

// productFilter builds the listing filter: exact category match when a
// category is requested, everything otherwise.
func productFilter(category string) bson.M {
	filter := bson.M{}
	if category != "" {
		filter["category"] = category
	}
	return filter
}

// searchFilter matches the query as a case-insensitive substring of the
// product name or category.
func searchFilter(query string) bson.M {
	return bson.M{
		"$or": []bson.M{
			{"name": primitive.Regex{Pattern: query, Options: "i"}},
			{"category": primitive.Regex{Pattern: query, Options: "i"}},
		},
	}
}

// productFromRequest builds the stored document from a validated create
// request. isStocked defaults to true when omitted.
func productFromRequest(req models.CreateProductRequest) models.Product {
	isStocked := true
	if req.IsStocked != nil {
		isStocked = *req.IsStocked
	}
	return models.Product{
		ID:          primitive.NewObjectID(),
		Name:        req.Name,
		Price:       *req.Price,
		Description: req.Description,
		Category:    req.Category,
		IsStocked:   isStocked,
		ImageURL:    req.ImageURL,
	}
}

// CreateProduct handles POST /api/product
func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req models.CreateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ErrorHdlr.HandleBadRequest(w, "Invalid request body")
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		h.validationError(w, err)
		return
	}

	newProduct := productFromRequest(req)

	if _, err := h.collection("products").InsertOne(r.Context(), newProduct); err != nil {
		log.Error().Err(err).Msg("inserting product")
		h.ErrorHdlr.HandleInternalError(w, "Error adding product")
		return
	}

	if err := cache.DeleteByPattern(r.Context(), cache.ProductListPattern); err != nil {
		log.Warn().Err(err).Msg("invalidating product list cache")
	}

	h.ResponseHdlr.Created(w, newProduct)
}

// ListProducts handles GET /api/product with pagination, sorting and
// an optional exact category filter.
func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := parseListQuery(r)

	cacheKey := fmt.Sprintf("products:p%d:l%d:cat%s:sort%s", q.Page, q.Limit, q.Category, q.Sort)

	var cached models.ProductList
	if err := cache.Get(ctx, cacheKey, &cached); err == nil {
		w.Header().Set("X-Cache", "HIT")
		h.ResponseHdlr.Success(w, cached)
		return
	}
	w.Header().Set("X-Cache", "MISS")

	filter := productFilter(q.Category)

	total, err := h.collection("products").CountDocuments(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("counting products")
		h.ErrorHdlr.HandleInternalError(w, "Error fetching products")
		return
	}

	opts := options.Find().
		SetSort(sortSpec(q.Sort)).
		SetSkip(int64((q.Page - 1) * q.Limit)).
		SetLimit(int64(q.Limit))

	cursor, err := h.collection("products").Find(ctx, filter, opts)
	if err != nil {
		log.Error().Err(err).Msg("fetching products")
		h.ErrorHdlr.HandleInternalError(w, "Error fetching products")
		return
	}
	defer cursor.Close(ctx)

	products := []models.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		log.Error().Err(err).Msg("decoding products")
		h.ErrorHdlr.HandleInternalError(w, "Error fetching products")
		return
	}

	response := models.ProductList{
		Products:      products,
		TotalProducts: total,
		Page:          q.Page,
		TotalPages:    totalPages(total, q.Limit),
	}

	if err := cache.Set(ctx, cacheKey, response, cache.ListTTL); err != nil {
		log.Warn().Err(err).Msg("caching product list")
	}

	h.ResponseHdlr.Success(w, response)
}

// SearchProducts handles GET /api/product/search: a case-insensitive
// substring match against name or category, unordered and unpaginated.
func (h *Handler) SearchProducts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	query := r.URL.Query().Get("query")

	cursor, err := h.collection("products").Find(ctx, searchFilter(query))
	if err != nil {
		log.Error().Err(err).Str("query", query).Msg("searching products")
		h.ErrorHdlr.HandleInternalError(w, "Error searching products")
		return
	}
	defer cursor.Close(ctx)

	products := []models.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		log.Error().Err(err).Msg("decoding search results")
		h.ErrorHdlr.HandleInternalError(w, "Error searching products")
		return
	}

	h.ResponseHdlr.Success(w, products)
}

// ListProductsByCategory handles GET /api/product/category/{category}
func (h *Handler) ListProductsByCategory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	category := mux.Vars(r)["category"]

	cursor, err := h.collection("products").Find(ctx, bson.M{"category": category})
	if err != nil {
		log.Error().Err(err).Str("category", category).Msg("fetching products by category")
		h.ErrorHdlr.HandleInternalError(w, "Error fetching products by category")
		return
	}
	defer cursor.Close(ctx)

	products := []models.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		log.Error().Err(err).Msg("decoding products by category")
		h.ErrorHdlr.HandleInternalError(w, "Error fetching products by category")
		return
	}

	h.ResponseHdlr.Success(w, products)
}

// GetProduct handles GET /api/product/{id}
func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	productID := mux.Vars(r)["id"]

	var product models.Product
	cacheKey := fmt.Sprintf(cache.ProductDetailPattern, productID)

	if err := cache.Get(ctx, cacheKey, &product); err == nil {
		w.Header().Set("X-Cache", "HIT")
		h.ResponseHdlr.Success(w, product)
		return
	}
	w.Header().Set("X-Cache", "MISS")

	objID, err := primitive.ObjectIDFromHex(productID)
	if err != nil {
		h.ErrorHdlr.HandleBadRequest(w, "Invalid product ID")
		return
	}

	err = h.collection("products").FindOne(ctx, bson.M{"_id": objID}).Decode(&product)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			h.ErrorHdlr.HandleNotFound(w, "Product not found")
		} else {
			log.Error().Err(err).Str("product", productID).Msg("fetching product")
			h.ErrorHdlr.HandleInternalError(w, "Error fetching product")
		}
		return
	}

	if err := cache.Set(ctx, cacheKey, product, cache.DetailTTL); err != nil {
		log.Warn().Err(err).Msg("caching product")
	}

	h.ResponseHdlr.Success(w, product)
}

// GetProductStock handles GET /api/product/{id}/stock, returning only
// the isStocked flag.
func (h *Handler) GetProductStock(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	productID := mux.Vars(r)["id"]

	objID, err := primitive.ObjectIDFromHex(productID)
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
			log.Error().Err(err).Str("product", productID).Msg("checking product stock")
			h.ErrorHdlr.HandleInternalError(w, "Error checking product stock")
		}
		return
	}

	h.ResponseHdlr.Success(w, models.StockStatus{IsStocked: product.IsStocked})
}
