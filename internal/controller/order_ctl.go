package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/KayTee1/E-commerce/internal/api/dto"
	"github.com/KayTee1/E-commerce/internal/middleware"
	"github.com/KayTee1/E-commerce/internal/model"
	"github.com/KayTee1/E-commerce/internal/repository"
)

// OrderController 订单控制器
type OrderController struct {
	orderRepo repository.OrderRepository
}

func NewOrderController(orderRepo repository.OrderRepository) *OrderController {
	return &OrderController{orderRepo: orderRepo}
}

// Create 结算下单（需要鉴权）
// POST /api/orders
func (ctrl *OrderController) Create(c *gin.Context) {
	var payload dto.OrderPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, model.SubmitResult{Success: false, Message: "invalid request body"})
		return
	}
	if len(payload.Items) == 0 {
		c.JSON(http.StatusBadRequest, model.SubmitResult{Success: false, Message: "order has no items"})
		return
	}

	owner := payload.Owner
	if owner == "" {
		owner = c.GetString(middleware.ContextKeyUsername)
	}

	var total float64
	items := make([]model.OrderItem, len(payload.Items))
	for i, line := range payload.Items {
		items[i] = model.OrderItem{
			ListingID: line.ListingID,
			Title:     line.Title,
			Price:     line.Price,
			Quantity:  line.Quantity,
		}
		total += line.Price * float64(line.Quantity)
	}

	order := &model.Order{
		ID:        uuid.NewString(),
		CreatedAt: time.Now(),
		Owner:     owner,
		Total:     total,
		Items:     datatypes.JSONSlice[model.OrderItem](items),
	}
	if err := ctrl.orderRepo.Create(c.Request.Context(), order); err != nil {
		c.JSON(http.StatusInternalServerError, model.SubmitResult{Success: false, Message: "failed to create order"})
		return
	}

	c.JSON(http.StatusCreated, model.SubmitResult{Success: true, Message: "Order placed"})
}

// ListMine 当前用户的订单
// GET /api/orders
func (ctrl *OrderController) ListMine(c *gin.Context) {
	owner := c.GetString(middleware.ContextKeyUsername)
	orders, err := ctrl.orderRepo.ListByOwner(c.Request.Context(), owner)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to list orders"})
		return
	}
	if orders == nil {
		orders = []model.Order{}
	}
	c.JSON(http.StatusOK, orders)
}
