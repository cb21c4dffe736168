// Package client is the terminal client: a typed REST client for the
// marketplace API plus the local application state.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"krishiconnect/internal/i18n"
	"krishiconnect/internal/model"

	"github.com/shopspring/decimal"
)

// APIError is a non-2xx response
type APIError struct {
	Status  int
	Message string
	Role    string // set on role mismatch
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

// API talks to the server's /api routes
type API struct {
	baseURL string
	http    *http.Client
	token   string
}

// NewAPI creates a client for baseURL, e.g. http://localhost:5000/api
func NewAPI(baseURL string, httpClient *http.Client) *API {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &API{baseURL: strings.TrimRight(baseURL, "/"), http: httpClient}
}

// SetToken sets the bearer token sent with every request
func (a *API) SetToken(token string) { a.token = token }

func (a *API) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, a.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if a.token != "" {
		req.Header.Set("Authorization", "Bearer "+a.token)
	}

	resp, err := a.http.Do(req)
	if err != nil {
		return fmt.Errorf("request %s %s failed: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode >= 300 {
		apiErr := &APIError{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		var payload struct {
			Message string `json:"message"`
			Role    string `json:"role"`
		}
		if json.Unmarshal(data, &payload) == nil && payload.Message != "" {
			apiErr.Message = payload.Message
			apiErr.Role = payload.Role
		}
		return apiErr
	}

	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// --- Auth ---

func (a *API) Register(ctx context.Context, req model.RegisterRequest) (*model.AuthResponse, error) {
	var resp model.AuthResponse
	if err := a.do(ctx, http.MethodPost, "/auth/register", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (a *API) Login(ctx context.Context, req model.LoginRequest) (*model.AuthResponse, error) {
	var resp model.AuthResponse
	if err := a.do(ctx, http.MethodPost, "/auth/login", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (a *API) Profile(ctx context.Context) (*model.User, error) {
	var u model.User
	if err := a.do(ctx, http.MethodGet, "/auth/profile", nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// --- Products ---

func (a *API) ListProducts(ctx context.Context) ([]model.Product, error) {
	var ps []model.Product
	if err := a.do(ctx, http.MethodGet, "/products", nil, &ps); err != nil {
		return nil, err
	}
	return ps, nil
}

func (a *API) GetProduct(ctx context.Context, id int64) (*model.Product, error) {
	var p model.Product
	if err := a.do(ctx, http.MethodGet, "/products/"+strconv.FormatInt(id, 10), nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (a *API) MyProducts(ctx context.Context) ([]model.Product, error) {
	var ps []model.Product
	if err := a.do(ctx, http.MethodGet, "/products/myproducts", nil, &ps); err != nil {
		return nil, err
	}
	return ps, nil
}

func (a *API) CreateProduct(ctx context.Context, req model.CreateProductRequest) (*model.Product, error) {
	var p model.Product
	if err := a.do(ctx, http.MethodPost, "/products", req, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (a *API) UpdateProduct(ctx context.Context, id int64, req model.UpdateProductRequest) (*model.Product, error) {
	var p model.Product
	if err := a.do(ctx, http.MethodPut, "/products/"+strconv.FormatInt(id, 10), req, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (a *API) DeleteProduct(ctx context.Context, id int64) error {
	return a.do(ctx, http.MethodDelete, "/products/"+strconv.FormatInt(id, 10), nil, nil)
}

// --- Orders ---

func (a *API) PlaceOrder(ctx context.Context, req model.CreateOrderRequest) (*model.Order, error) {
	var o model.Order
	if err := a.do(ctx, http.MethodPost, "/orders", req, &o); err != nil {
		return nil, err
	}
	return &o, nil
}

func (a *API) MyOrders(ctx context.Context) ([]model.Order, error) {
	var orders []model.Order
	if err := a.do(ctx, http.MethodGet, "/orders/myorders", nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (a *API) AllOrders(ctx context.Context) ([]model.Order, error) {
	var orders []model.Order
	if err := a.do(ctx, http.MethodGet, "/orders", nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (a *API) UpdateOrderStatus(ctx context.Context, id int64, status string) (*model.Order, error) {
	var o model.Order
	req := model.UpdateOrderStatusRequest{Status: &status}
	if err := a.do(ctx, http.MethodPut, "/orders/"+strconv.FormatInt(id, 10), req, &o); err != nil {
		return nil, err
	}
	return &o, nil
}

// --- Session cart ---

// CartView is the server's rendering of the session cart
type CartView struct {
	Lines []struct {
		ProductID int64           `json:"product_id"`
		Name      string          `json:"name"`
		Price     decimal.Decimal `json:"price"`
		Quantity  int             `json:"quantity"`
		LineTotal decimal.Decimal `json:"line_total"`
	} `json:"lines"`
	Total decimal.Decimal `json:"total"`
	Count int             `json:"count"`
}

func (a *API) SessionCart(ctx context.Context) (*CartView, error) {
	var v CartView
	if err := a.do(ctx, http.MethodGet, "/cart", nil, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

func (a *API) SessionCartAdd(ctx context.Context, productID int64) (*CartView, error) {
	var v CartView
	if err := a.do(ctx, http.MethodPost, "/cart/items", map[string]int64{"product_id": productID}, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

func (a *API) SessionCartCheckout(ctx context.Context) (*model.Order, error) {
	var o model.Order
	if err := a.do(ctx, http.MethodPost, "/cart/checkout", nil, &o); err != nil {
		return nil, err
	}
	return &o, nil
}

// --- Chat ---

func (a *API) SendMessage(ctx context.Context, text string) (*model.ChatMessage, error) {
	var m model.ChatMessage
	if err := a.do(ctx, http.MethodPost, "/chat/messages", model.SendMessageRequest{Message: text}, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

func (a *API) Messages(ctx context.Context) ([]model.ChatMessage, error) {
	var ms []model.ChatMessage
	if err := a.do(ctx, http.MethodGet, "/chat/messages", nil, &ms); err != nil {
		return nil, err
	}
	return ms, nil
}

// --- Strings ---

func (a *API) Languages(ctx context.Context) ([]i18n.Language, error) {
	var ls []i18n.Language
	if err := a.do(ctx, http.MethodGet, "/i18n/languages", nil, &ls); err != nil {
		return nil, err
	}
	return ls, nil
}

// VoicePrompt is a localized prompt with its speech locale
type VoicePrompt struct {
	Key       string `json:"key"`
	Text      string `json:"text"`
	VoiceLang string `json:"voice_lang"`
}

func (a *API) VoicePrompt(ctx context.Context, key, lang string) (*VoicePrompt, error) {
	var p VoicePrompt
	path := "/voice/prompts/" + url.PathEscape(key) + "?lang=" + url.QueryEscape(lang)
	if err := a.do(ctx, http.MethodGet, path, nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// ErrorKey picks the string-table key that describes err to the user
func ErrorKey(err error) string {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		switch {
		case errors.Is(err, ErrEmptyCart):
			return "error.cart_empty"
		case errors.Is(err, ErrNotSignedIn):
			return "error.session_expired"
		}
		return "error.generic"
	}
	switch apiErr.Status {
	case http.StatusUnauthorized:
		if apiErr.Message == "Invalid or expired token" || apiErr.Message == "Authorization header required" {
			return "error.session_expired"
		}
		return "error.invalid_credentials"
	case http.StatusForbidden:
		if apiErr.Role != "" {
			return "error.role_mismatch"
		}
		return "error.forbidden"
	case http.StatusNotFound:
		return "error.not_found"
	case http.StatusConflict:
		return "error.insufficient_stock"
	case http.StatusTooManyRequests:
		return "error.too_many_attempts"
	case http.StatusBadRequest:
		if apiErr.Message == "phone number already registered" {
			return "error.phone_taken"
		}
		if apiErr.Message == "cart is empty" {
			return "error.cart_empty"
		}
	}
	return "error.generic"
}
