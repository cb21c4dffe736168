package model

import "time"

const (
	RoleFarmer = "farmer"
	RoleBuyer  = "buyer"
)

const (
	BusinessRetailer   = "retailer"
	BusinessWholesaler = "wholesaler"
	BusinessRestaurant = "restaurant"
	BusinessExporter   = "exporter"
)

const DefaultLanguage = "en"

// SupportedLanguages are the language codes the string table carries
var SupportedLanguages = []string{"hi", "en", "pa", "bn"}

func IsSupportedLanguage(code string) bool {
	for _, l := range SupportedLanguages {
		if l == code {
			return true
		}
	}
	return false
}

// User represents a farmer or buyer account
type User struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Phone        string    `json:"phone"`
	PasswordHash string    `json:"-"` // Do not expose password hash in JSON responses
	Role         string    `json:"role"`
	Location     string    `json:"location"`
	BusinessType string    `json:"business_type,omitempty"` // buyers only
	Language     string    `json:"language"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// RegisterRequest is the body of POST /auth/register
type RegisterRequest struct {
	Name         string `json:"name" binding:"required"`
	Phone        string `json:"phone" binding:"required"`
	Password     string `json:"password" binding:"required,min=6"`
	Role         string `json:"role" binding:"required,oneof=farmer buyer"`
	Location     string `json:"location" binding:"required"`
	BusinessType string `json:"business_type" binding:"omitempty,oneof=retailer wholesaler restaurant exporter"`
	Language     string `json:"language"`
}

// LoginRequest is the body of POST /auth/login. Role is the role the caller claims to be.
type LoginRequest struct {
	Phone    string `json:"phone" binding:"required"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role" binding:"required,oneof=farmer buyer"`
}

// AuthResponse is returned by register and login
type AuthResponse struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

func IsValidRole(role string) bool {
	return role == RoleFarmer || role == RoleBuyer
}

func IsValidBusinessType(t string) bool {
	switch t {
	case BusinessRetailer, BusinessWholesaler, BusinessRestaurant, BusinessExporter:
		return true
	}
	return false
}

// OppositeRole is the counterpart a farmer or buyer talks to
func OppositeRole(role string) string {
	if role == RoleFarmer {
		return RoleBuyer
	}
	return RoleFarmer
}
