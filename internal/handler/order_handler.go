package handler

import (
	"net/http"

	"krishiconnect/internal/model"
	"krishiconnect/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// OrderHandler handles order ledger requests
type OrderHandler struct {
	service service.OrderService
	logger  *zap.Logger
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(s service.OrderService, logger *zap.Logger) *OrderHandler {
	return &OrderHandler{service: s, logger: logger}
}

func (h *OrderHandler) CreateOrder(c *gin.Context) {
	userID, err := getAuthUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": err.Error()})
		return
	}

	var req model.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	order, err := h.service.PlaceOrder(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, h.logger, err, "Failed to place order")
		return
	}
	c.JSON(http.StatusCreated, order)
}

func (h *OrderHandler) GetMyOrders(c *gin.Context) {
	userID, err := getAuthUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": err.Error()})
		return
	}
	orders, err := h.service.ListMine(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.logger, err, "Failed to retrieve orders")
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) GetAllOrders(c *gin.Context) {
	orders, err := h.service.ListAll(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err, "Failed to retrieve orders")
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) UpdateOrderStatus(c *gin.Context) {
	id, ok := parseID(c, "id", "order")
	if !ok {
		return
	}

	var req model.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	order, err := h.service.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		respondError(c, h.logger, err, "Failed to update order")
		return
	}
	c.JSON(http.StatusOK, order)
}

// RegisterOrderRoutes registers order routes; all of them need a token
func (h *OrderHandler) RegisterOrderRoutes(rg *gin.RouterGroup, jwtAuthMW gin.HandlerFunc) {
	orderGroup := rg.Group("/orders", jwtAuthMW)
	{
		orderGroup.POST("", h.CreateOrder)
		orderGroup.GET("/myorders", h.GetMyOrders)
		orderGroup.GET("", h.GetAllOrders)
		orderGroup.PUT("/:id", h.UpdateOrderStatus)
	}
}
