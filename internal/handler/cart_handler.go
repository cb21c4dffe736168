package handler

import (
	"net/http"

	"krishiconnect/internal/cart"
	"krishiconnect/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// CartHandler serves the buyer's session cart
type CartHandler struct {
	service service.CartService
	logger  *zap.Logger
}

// NewCartHandler creates a new CartHandler
func NewCartHandler(s service.CartService, logger *zap.Logger) *CartHandler {
	return &CartHandler{service: s, logger: logger}
}

type cartLineView struct {
	cart.Line
	LineTotal decimal.Decimal `json:"line_total"`
}

type cartView struct {
	Lines []cartLineView  `json:"lines"`
	Total decimal.Decimal `json:"total"`
	Count int             `json:"count"`
}

func newCartView(c *cart.Cart) cartView {
	v := cartView{Lines: make([]cartLineView, 0, len(c.Lines)), Total: c.Total(), Count: c.Count()}
	for _, l := range c.Lines {
		v.Lines = append(v.Lines, cartLineView{Line: l, LineTotal: l.LineTotal()})
	}
	return v
}

type addCartItemRequest struct {
	ProductID int64 `json:"product_id" binding:"required,gt=0"`
}

type changeQuantityRequest struct {
	Delta int `json:"delta" binding:"required,ne=0"`
}

func (h *CartHandler) session(c *gin.Context) (string, bool) {
	sid, err := getAuthSessionID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": err.Error()})
		return "", false
	}
	return sid, true
}

func (h *CartHandler) GetCart(c *gin.Context) {
	sid, ok := h.session(c)
	if !ok {
		return
	}
	ct, err := h.service.Get(c.Request.Context(), sid)
	if err != nil {
		respondError(c, h.logger, err, "Failed to load cart")
		return
	}
	c.JSON(http.StatusOK, newCartView(ct))
}

func (h *CartHandler) AddItem(c *gin.Context) {
	sid, ok := h.session(c)
	if !ok {
		return
	}
	var req addCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	ct, err := h.service.Add(c.Request.Context(), sid, req.ProductID)
	if err != nil {
		respondError(c, h.logger, err, "Failed to add to cart")
		return
	}
	c.JSON(http.StatusOK, newCartView(ct))
}

func (h *CartHandler) ChangeQuantity(c *gin.Context) {
	sid, ok := h.session(c)
	if !ok {
		return
	}
	productID, ok := parseID(c, "productId", "product")
	if !ok {
		return
	}
	var req changeQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	ct, err := h.service.ChangeQuantity(c.Request.Context(), sid, productID, req.Delta)
	if err != nil {
		respondError(c, h.logger, err, "Failed to update cart")
		return
	}
	c.JSON(http.StatusOK, newCartView(ct))
}

func (h *CartHandler) RemoveItem(c *gin.Context) {
	sid, ok := h.session(c)
	if !ok {
		return
	}
	productID, ok := parseID(c, "productId", "product")
	if !ok {
		return
	}

	ct, err := h.service.Remove(c.Request.Context(), sid, productID)
	if err != nil {
		respondError(c, h.logger, err, "Failed to update cart")
		return
	}
	c.JSON(http.StatusOK, newCartView(ct))
}

func (h *CartHandler) ClearCart(c *gin.Context) {
	sid, ok := h.session(c)
	if !ok {
		return
	}
	if err := h.service.Clear(c.Request.Context(), sid); err != nil {
		respondError(c, h.logger, err, "Failed to clear cart")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Cart cleared"})
}

func (h *CartHandler) Checkout(c *gin.Context) {
	sid, ok := h.session(c)
	if !ok {
		return
	}
	userID, err := getAuthUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": err.Error()})
		return
	}

	order, err := h.service.Checkout(c.Request.Context(), sid, userID)
	if err != nil {
		respondError(c, h.logger, err, "Failed to place order")
		return
	}
	c.JSON(http.StatusCreated, order)
}

// RegisterCartRoutes registers the session cart routes for buyers
func (h *CartHandler) RegisterCartRoutes(rg *gin.RouterGroup, jwtAuthMW, buyerRoleMW gin.HandlerFunc) {
	cartGroup := rg.Group("/cart", jwtAuthMW, buyerRoleMW)
	{
		cartGroup.GET("", h.GetCart)
		cartGroup.DELETE("", h.ClearCart)
		cartGroup.POST("/items", h.AddItem)
		cartGroup.PATCH("/items/:productId", h.ChangeQuantity)
		cartGroup.DELETE("/items/:productId", h.RemoveItem)
		cartGroup.POST("/checkout", h.Checkout)
	}
}
