package handler

import (
	"net/http"
	"strconv"

	"krishiconnect/internal/model"
	"krishiconnect/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ProductHandler handles catalog requests
type ProductHandler struct {
	service service.ProductService
	logger  *zap.Logger
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(s service.ProductService, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{service: s, logger: logger}
}

func parseID(c *gin.Context, param, what string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(param), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid " + what + " ID"})
		return 0, false
	}
	return id, true
}

func (h *ProductHandler) ListProducts(c *gin.Context) {
	products, err := h.service.ListAll(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err, "Failed to retrieve products")
		return
	}
	c.JSON(http.StatusOK, products)
}

func (h *ProductHandler) GetProduct(c *gin.Context) {
	id, ok := parseID(c, "id", "product")
	if !ok {
		return
	}
	p, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err, "Failed to retrieve product")
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *ProductHandler) GetMyProducts(c *gin.Context) {
	userID, err := getAuthUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": err.Error()})
		return
	}
	products, err := h.service.ListMine(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.logger, err, "Failed to retrieve products")
		return
	}
	c.JSON(http.StatusOK, products)
}

func (h *ProductHandler) CreateProduct(c *gin.Context) {
	userID, err := getAuthUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": err.Error()})
		return
	}

	var req model.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	p, err := h.service.Create(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, h.logger, err, "Failed to create product")
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	userID, err := getAuthUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": err.Error()})
		return
	}
	id, ok := parseID(c, "id", "product")
	if !ok {
		return
	}

	var req model.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	p, err := h.service.Update(c.Request.Context(), id, userID, req)
	if err != nil {
		respondError(c, h.logger, err, "Failed to update product")
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	userID, err := getAuthUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": err.Error()})
		return
	}
	id, ok := parseID(c, "id", "product")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id, userID); err != nil {
		respondError(c, h.logger, err, "Failed to delete product")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
}

// RegisterProductRoutes registers catalog routes. Listing and lookup are public.
func (h *ProductHandler) RegisterProductRoutes(rg *gin.RouterGroup, jwtAuthMW, farmerRoleMW gin.HandlerFunc) {
	productGroup := rg.Group("/products")
	{
		productGroup.GET("", h.ListProducts)
		productGroup.GET("/myproducts", jwtAuthMW, h.GetMyProducts)
		productGroup.GET("/:id", h.GetProduct)
		productGroup.POST("", jwtAuthMW, farmerRoleMW, h.CreateProduct)
		productGroup.PUT("/:id", jwtAuthMW, h.UpdateProduct)
		productGroup.DELETE("/:id", jwtAuthMW, h.DeleteProduct)
	}
}
