package service

import (
	"context"
	"fmt"

	"krishiconnect/internal/model"
	"krishiconnect/internal/repository"
	"krishiconnect/internal/utils"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// DemoFarmerPhone is the account that owns the demo catalog
const DemoFarmerPhone = "9876543210"

type demoProduct struct {
	name    string
	names   map[string]string
	price   int64
	stock   int
	emoji   string
	quality string
}

var demoCatalog = []demoProduct{
	{"Wheat", map[string]string{"hi": "गेहूं", "pa": "ਕਣਕ", "bn": "গম"}, 2100, 50, "🌾", model.QualityAGrade},
	{"Rice", map[string]string{"hi": "धान", "pa": "ਚੌਲ", "bn": "চাল"}, 1950, 30, "🌾", model.QualityPremium},
	{"Potato", map[string]string{"hi": "आलू", "pa": "ਆਲੂ", "bn": "আলু"}, 1200, 100, "🥔", model.QualityFresh},
	{"Onion", map[string]string{"hi": "प्याज", "pa": "ਪਿਆਜ਼", "bn": "পেঁয়াজ"}, 2800, 75, "🧅", model.QualityAGrade},
	{"Tomato", map[string]string{"hi": "टमाटर", "pa": "ਟਮਾਟਰ", "bn": "টমেটো"}, 1800, 60, "🍅", model.QualityFresh},
}

// Seeder creates the demo farmer and catalog when they are missing
type Seeder struct {
	users    repository.UserRepository
	products repository.ProductRepository
	password string
	logger   *zap.Logger
}

func NewSeeder(users repository.UserRepository, products repository.ProductRepository, password string, logger *zap.Logger) *Seeder {
	return &Seeder{users: users, products: products, password: password, logger: logger}
}

// Seed is idempotent: existing rows are left untouched
func (s *Seeder) Seed(ctx context.Context) error {
	farmer, err := s.users.FindByPhone(ctx, DemoFarmerPhone)
	if err != nil {
		return fmt.Errorf("failed to look up demo farmer: %w", err)
	}
	if farmer == nil {
		s.logger.Info("demo farmer not found, creating it")
		hash, err := utils.HashPassword(s.password)
		if err != nil {
			return fmt.Errorf("failed to hash demo farmer password: %w", err)
		}
		farmer = &model.User{
			Name:         "Ram Kumar",
			Phone:        DemoFarmerPhone,
			PasswordHash: hash,
			Role:         model.RoleFarmer,
			Location:     "Rampur",
			Language:     "hi",
		}
		if err := s.users.Create(ctx, farmer); err != nil {
			return fmt.Errorf("failed to create demo farmer: %w", err)
		}
	}

	created := 0
	for _, d := range demoCatalog {
		existing, err := s.products.FindByFarmerAndName(ctx, farmer.ID, d.name)
		if err != nil {
			return fmt.Errorf("failed to look up demo product %s: %w", d.name, err)
		}
		if existing != nil {
			continue
		}
		p := &model.Product{
			Name:     d.name,
			Names:    d.names,
			Price:    decimal.NewFromInt(d.price),
			Unit:     model.DefaultUnit,
			Stock:    d.stock,
			Quality:  d.quality,
			Emoji:    d.emoji,
			FarmerID: farmer.ID,
			Location: farmer.Location,
		}
		if err := s.products.Create(ctx, p); err != nil {
			return fmt.Errorf("failed to create demo product %s: %w", d.name, err)
		}
		created++
	}

	s.logger.Info("demo data seeded", zap.Int64("farmer_id", farmer.ID), zap.Int("products_created", created))
	return nil
}
