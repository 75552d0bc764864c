package controllers

import (
	"net/http"

	"github.com/dombialcz/SevenTestsShop/common/httperr"
	"github.com/dombialcz/SevenTestsShop/models"
	"github.com/dombialcz/SevenTestsShop/repository"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type ProductController struct {
	Repo repository.ProductRepository
}

func NewProductController(repo repository.ProductRepository) *ProductController {
	return &ProductController{Repo: repo}
}

// GetProducts returns the product list, optionally filtered by the
// category query parameter.
func (pc *ProductController) GetProducts(c *gin.Context) {
	category := c.Query("category")

	products, err := pc.Repo.List(c.Request.Context(), category)
	if err != nil {
		zap.L().Error("Error finding products", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
		return
	}

	c.JSON(http.StatusOK, products)
}

// GetProductByID returns a single product.
func (pc *ProductController) GetProductByID(c *gin.Context) {
	id := c.Param("id")
	productID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		zap.L().Warn("Invalid product ID format", zap.String("id", id))
		httperr.Abort(c, httperr.Wrap(httperr.ErrInvalidInput, err))
		return
	}

	product, err := pc.Repo.Get(c.Request.Context(), productID)
	if err == repository.ErrNotFound {
		zap.L().Info("Product not found", zap.String("id", id))
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}
	if err != nil {
		zap.L().Error("Database error", zap.Error(err))
		httperr.Abort(c, err)
		return
	}

	c.JSON(http.StatusOK, product)
}

// UpdateProduct sets price and stock status on a product (admin surface).
func (pc *ProductController) UpdateProduct(c *gin.Context) {
	id := c.Param("id")
	productID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		zap.L().Warn("Invalid product ID format", zap.String("id", id))
		httperr.Abort(c, httperr.Wrap(httperr.ErrInvalidInput, err))
		return
	}

	var req models.ProductUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		zap.L().Warn("Invalid update payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	if *req.Price < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "price must be non-negative"})
		return
	}

	product, err := pc.Repo.Update(c.Request.Context(), productID, *req.Price, *req.InStock)
	if err == repository.ErrNotFound {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}
	if err != nil {
		zap.L().Error("Failed to update product", zap.String("id", id), zap.Error(err))
		httperr.Abort(c, err)
		return
	}

	zap.L().Info("Product updated", zap.String("id", id),
		zap.Float64("price", *req.Price), zap.Bool("inStock", *req.InStock))
	c.JSON(http.StatusOK, product)
}

// GetCategories returns all category names.
func (pc *ProductController) GetCategories(c *gin.Context) {
	categories, err := pc.Repo.Categories(c.Request.Context())
	if err != nil {
		zap.L().Error("Error fetching categories", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch categories"})
		return
	}

	c.JSON(http.StatusOK, categories)
}
