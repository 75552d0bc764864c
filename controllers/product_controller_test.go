package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dombialcz/SevenTestsShop/models"
	"github.com/dombialcz/SevenTestsShop/repository"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeProductRepo struct {
	products     []models.Product
	categories   []string
	lastCategory string
	listErr      error
	updated      *models.Product
}

func (f *fakeProductRepo) List(ctx context.Context, category string) ([]models.Product, error) {
	f.lastCategory = category
	if f.listErr != nil {
		return nil, f.listErr
	}
	if category == "" || category == "All" {
		return f.products, nil
	}
	filtered := []models.Product{}
	for _, p := range f.products {
		if p.Category == category {
			filtered = append(filtered, p)
		}
	}
	return filtered, nil
}

func (f *fakeProductRepo) Get(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	for i := range f.products {
		if f.products[i].ID == id {
			return &f.products[i], nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeProductRepo) Update(ctx context.Context, id primitive.ObjectID, price float64, inStock bool) (*models.Product, error) {
	for i := range f.products {
		if f.products[i].ID == id {
			f.products[i].Price = price
			f.products[i].InStock = inStock
			f.updated = &f.products[i]
			return f.updated, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeProductRepo) Insert(ctx context.Context, p *models.Product) error {
	f.products = append(f.products, *p)
	return nil
}

func (f *fakeProductRepo) Categories(ctx context.Context) ([]string, error) {
	return f.categories, nil
}

func newProductRouter(repo repository.ProductRepository) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	controller := NewProductController(repo)
	router.GET("/api/products", controller.GetProducts)
	router.GET("/api/products/categories/all", controller.GetCategories)
	router.GET("/api/products/:id", controller.GetProductByID)
	router.PUT("/api/products/:id", controller.UpdateProduct)
	return router
}

func seedRepo() *fakeProductRepo {
	return &fakeProductRepo{
		products: []models.Product{
			{ID: primitive.NewObjectID(), Name: "Espresso", Category: "Coffee", Price: 3.99, InStock: true},
			{ID: primitive.NewObjectID(), Name: "Green Tea", Category: "Tea", Price: 2.99, InStock: true},
		},
		categories: []string{"Coffee", "Tea"},
	}
}

func TestGetProducts(t *testing.T) {
	repo := seedRepo()
	router := newProductRouter(repo)

	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	require.Equal(t, http.StatusOK, recorder.Code)

	var products []models.Product
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &products))
	assert.Len(t, products, 2)
}

func TestGetProductsCategoryFilter(t *testing.T) {
	repo := seedRepo()
	router := newProductRouter(repo)

	req := httptest.NewRequest(http.MethodGet, "/api/products?category=Tea", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "Tea", repo.lastCategory)

	var products []models.Product
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &products))
	require.Len(t, products, 1)
	assert.Equal(t, "Green Tea", products[0].Name)
}

func TestGetProductsRepoError(t *testing.T) {
	repo := seedRepo()
	repo.listErr = errors.New("mongo down")
	router := newProductRouter(repo)

	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
}

func TestGetProductByID(t *testing.T) {
	repo := seedRepo()
	router := newProductRouter(repo)

	req := httptest.NewRequest(http.MethodGet, "/api/products/"+repo.products[0].ID.Hex(), nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	require.Equal(t, http.StatusOK, recorder.Code)

	var product models.Product
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &product))
	assert.Equal(t, "Espresso", product.Name)
}

func TestGetProductByIDNotFound(t *testing.T) {
	router := newProductRouter(seedRepo())

	req := httptest.NewRequest(http.MethodGet, "/api/products/"+primitive.NewObjectID().Hex(), nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestGetProductByIDBadID(t *testing.T) {
	router := newProductRouter(seedRepo())

	req := httptest.NewRequest(http.MethodGet, "/api/products/not-an-id", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestUpdateProduct(t *testing.T) {
	repo := seedRepo()
	router := newProductRouter(repo)

	body, _ := json.Marshal(gin.H{"price": 4.25, "inStock": false})
	req := httptest.NewRequest(http.MethodPut, "/api/products/"+repo.products[0].ID.Hex(), bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	require.Equal(t, http.StatusOK, recorder.Code)
	require.NotNil(t, repo.updated)
	assert.InDelta(t, 4.25, repo.updated.Price, 1e-9)
	assert.False(t, repo.updated.InStock)
}

func TestUpdateProductRejectsNegativePrice(t *testing.T) {
	repo := seedRepo()
	router := newProductRouter(repo)

	body, _ := json.Marshal(gin.H{"price": -1.0, "inStock": true})
	req := httptest.NewRequest(http.MethodPut, "/api/products/"+repo.products[0].ID.Hex(), bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestUpdateProductMissingFields(t *testing.T) {
	repo := seedRepo()
	router := newProductRouter(repo)

	body, _ := json.Marshal(gin.H{"price": 4.25})
	req := httptest.NewRequest(http.MethodPut, "/api/products/"+repo.products[0].ID.Hex(), bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestGetCategories(t *testing.T) {
	router := newProductRouter(seedRepo())

	req := httptest.NewRequest(http.MethodGet, "/api/products/categories/all", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	require.Equal(t, http.StatusOK, recorder.Code)

	var categories []string
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &categories))
	assert.Equal(t, []string{"Coffee", "Tea"}, categories)
}
