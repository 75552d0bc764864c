package controllers

import (
	"net/http"

	"github.com/dombialcz/SevenTestsShop/models"
	"github.com/dombialcz/SevenTestsShop/repository"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type OrderController struct {
	Repo repository.OrderRepository
}

func NewOrderController(repo repository.OrderRepository) *OrderController {
	return &OrderController{Repo: repo}
}

// CreateOrder accepts an order payload from the storefront checkout.
func (oc *OrderController) CreateOrder(c *gin.Context) {
	var req models.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		zap.L().Warn("Invalid order payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid payload"})
		return
	}

	if msg := validateOrder(&req); msg != "" {
		zap.L().Warn("Order rejected", zap.String("reason", msg))
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": msg})
		return
	}

	order := &models.Order{
		Items:       req.Items,
		TotalAmount: req.TotalAmount,
	}

	if err := oc.Repo.Insert(c.Request.Context(), order); err != nil {
		zap.L().Error("Failed to save order", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to save order"})
		return
	}

	zap.L().Info("Order created",
		zap.String("order_id", order.ID.Hex()),
		zap.Int("items", len(order.Items)),
		zap.Float64("total", order.TotalAmount))

	c.JSON(http.StatusCreated, gin.H{"success": true, "orderId": order.ID.Hex()})
}

// GetOrders returns all orders, newest first.
func (oc *OrderController) GetOrders(c *gin.Context) {
	orders, err := oc.Repo.List(c.Request.Context())
	if err != nil {
		zap.L().Error("Failed to fetch orders", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
		return
	}

	c.JSON(http.StatusOK, orders)
}

func validateOrder(req *models.CreateOrderRequest) string {
	if len(req.Items) == 0 {
		return "order must contain at least one item"
	}
	for _, item := range req.Items {
		if item.Quantity < 1 {
			return "item quantity must be at least 1"
		}
		if item.Price < 0 {
			return "item price must be non-negative"
		}
	}
	if req.TotalAmount < 0 {
		return "total amount must be non-negative"
	}
	return ""
}
