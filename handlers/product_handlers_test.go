package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Sara-kerr/Ecommerce-MERN/models"
	"github.com/Sara-kerr/Ecommerce-MERN/utils"
)

func newTestHandler() *Handler {
	return &Handler{
		Validate:     validator.New(),
		ErrorHdlr:    utils.NewErrorHandler(),
		ResponseHdlr: NewResponseHandler(),
	}
}

func TestParseListQueryDefaults(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/api/product", nil)

	q := parseListQuery(r)

	assert.Equal(t, 1, q.Page)
	assert.Equal(t, 12, q.Limit)
	assert.Equal(t, "name", q.Sort)
	assert.Empty(t, q.Category)
}

func TestParseListQueryOverrides(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/api/product?page=3&limit=5&sort=-price&category=shirts", nil)

	q := parseListQuery(r)

	assert.Equal(t, 3, q.Page)
	assert.Equal(t, 5, q.Limit)
	assert.Equal(t, "-price", q.Sort)
	assert.Equal(t, "shirts", q.Category)
}

func TestParseListQueryInvalidValuesFallBack(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/api/product?page=abc&limit=-4", nil)

	q := parseListQuery(r)

	assert.Equal(t, 1, q.Page)
	assert.Equal(t, 12, q.Limit)
}

func TestSortSpec(t *testing.T) {
	assert.Equal(t, bson.D{{Key: "name", Value: 1}}, sortSpec("name"))
	assert.Equal(t, bson.D{{Key: "price", Value: 1}}, sortSpec("price"))
	assert.Equal(t, bson.D{{Key: "price", Value: -1}}, sortSpec("-price"))
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 3, totalPages(25, 12))
	assert.Equal(t, 2, totalPages(24, 12))
	assert.Equal(t, 1, totalPages(1, 12))
	assert.Equal(t, 0, totalPages(0, 12))
}

func TestProductFilter(t *testing.T) {
	assert.Equal(t, bson.M{}, productFilter(""))
	assert.Equal(t, bson.M{"category": "shirts"}, productFilter("shirts"))
}

func TestSearchFilterIsCaseInsensitiveOnNameAndCategory(t *testing.T) {
	filter := searchFilter("shirt")

	clauses, ok := filter["$or"].([]bson.M)
	require.True(t, ok)
	require.Len(t, clauses, 2)

	name := clauses[0]["name"].(primitive.Regex)
	assert.Equal(t, "shirt", name.Pattern)
	assert.Equal(t, "i", name.Options)

	category := clauses[1]["category"].(primitive.Regex)
	assert.Equal(t, "shirt", category.Pattern)
	assert.Equal(t, "i", category.Options)
}

func TestProductFromRequestDefaultsIsStocked(t *testing.T) {
	price := 19.99

	product := productFromRequest(models.CreateProductRequest{
		Name:        "shirt",
		Price:       &price,
		Description: "a shirt",
		Category:    "shirts",
		ImageURL:    "/img/shirt.png",
	})

	assert.True(t, product.IsStocked, "isStocked defaults to true when omitted")
	assert.Equal(t, 19.99, product.Price)
	assert.False(t, product.ID.IsZero())
}

func TestProductFromRequestHonorsExplicitIsStocked(t *testing.T) {
	price := 10.0
	stocked := false

	product := productFromRequest(models.CreateProductRequest{
		Name:        "shirt",
		Price:       &price,
		Description: "a shirt",
		Category:    "shirts",
		IsStocked:   &stocked,
		ImageURL:    "/img/shirt.png",
	})

	assert.False(t, product.IsStocked)
}

func TestCreateProductMissingFields(t *testing.T) {
	h := newTestHandler()

	body := bytes.NewBufferString(`{"name":"shirt","price":10}`)
	r := httptest.NewRequest(http.MethodPost, "/api/product", body)
	w := httptest.NewRecorder()

	h.CreateProduct(w, r)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp utils.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Please provide all required fields.", resp.Message)
	assert.NotEmpty(t, resp.Errors)
}

func TestCreateProductNegativePrice(t *testing.T) {
	h := newTestHandler()

	body := bytes.NewBufferString(`{"name":"shirt","price":-1,"description":"a shirt","category":"shirts","imageUrl":"/img/shirt.png"}`)
	r := httptest.NewRequest(http.MethodPost, "/api/product", body)
	w := httptest.NewRecorder()

	h.CreateProduct(w, r)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateProductInvalidBody(t *testing.T) {
	h := newTestHandler()

	r := httptest.NewRequest(http.MethodPost, "/api/product", bytes.NewBufferString("not json"))
	w := httptest.NewRecorder()

	h.CreateProduct(w, r)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
