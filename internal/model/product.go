package model

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	QualityPremium = "Premium"
	QualityAGrade  = "A Grade"
	QualityBGrade  = "B Grade"
	QualityFresh   = "Fresh"
)

const (
	DefaultUnit    = "quintal"
	DefaultQuality = QualityAGrade
	DefaultEmoji   = "🌾"
	DefaultRating  = 4.5
)

// Product is a produce listing owned by a farmer
type Product struct {
	ID        int64             `json:"id"`
	Name      string            `json:"name"`
	Names     map[string]string `json:"names,omitempty"` // language code -> display name
	Price     decimal.Decimal   `json:"price"`           // per unit
	Unit      string            `json:"unit"`
	Stock     int               `json:"stock"`
	Quality   string            `json:"quality"`
	Emoji     string            `json:"emoji"`
	FarmerID  int64             `json:"farmer_id"`
	Location  string            `json:"location"`
	Rating    float64           `json:"rating"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// DisplayName returns the name for lang, falling back to the canonical name.
func (p *Product) DisplayName(lang string) string {
	if n, ok := p.Names[lang]; ok && n != "" {
		return n
	}
	return p.Name
}

// CreateProductRequest is used for creating a new product.
// Price and Stock are pointers so a missing field can be told apart from a zero value.
type CreateProductRequest struct {
	Name     string            `json:"name" binding:"required"`
	Names    map[string]string `json:"names"`
	Price    *decimal.Decimal  `json:"price" binding:"required"`
	Unit     string            `json:"unit"`
	Stock    *int              `json:"stock" binding:"required"`
	Quality  string            `json:"quality" binding:"omitempty,oneof='Premium' 'A Grade' 'B Grade' 'Fresh'"`
	Emoji    string            `json:"emoji"`
	Location string            `json:"location"`
}

type UpdateProductRequest struct {
	Name     *string           `json:"name,omitempty"` // Pointers to allow partial updates
	Names    map[string]string `json:"names,omitempty"`
	Price    *decimal.Decimal  `json:"price,omitempty"`
	Unit     *string           `json:"unit,omitempty"`
	Stock    *int              `json:"stock,omitempty"`
	Quality  *string           `json:"quality,omitempty" binding:"omitempty,oneof='Premium' 'A Grade' 'B Grade' 'Fresh'"`
	Emoji    *string           `json:"emoji,omitempty"`
	Location *string           `json:"location,omitempty"`
}

// PriceDecimalPlaces matches the NUMERIC(12,2) money columns
const PriceDecimalPlaces = 2

// HasMoneyPrecision reports whether d is representable in a money column
// without rounding.
func HasMoneyPrecision(d decimal.Decimal) bool {
	return d.Equal(d.Round(PriceDecimalPlaces))
}

func IsValidQuality(q string) bool {
	switch q {
	case QualityPremium, QualityAGrade, QualityBGrade, QualityFresh:
		return true
	}
	return false
}
