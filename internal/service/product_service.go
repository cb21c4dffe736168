package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"krishiconnect/internal/model"
	"krishiconnect/internal/repository"

	"go.uber.org/zap"
)

var ErrProductNotFound = errors.New("product not found")

// ProductService defines catalog operations
type ProductService interface {
	ListAll(ctx context.Context) ([]model.Product, error)
	Get(ctx context.Context, id int64) (*model.Product, error)
	ListMine(ctx context.Context, farmerID int64) ([]model.Product, error)
	Create(ctx context.Context, farmerID int64, req model.CreateProductRequest) (*model.Product, error)
	Update(ctx context.Context, id, callerID int64, req model.UpdateProductRequest) (*model.Product, error)
	Delete(ctx context.Context, id, callerID int64) error
}

type productService struct {
	repo     repository.ProductRepository
	userRepo repository.UserRepository
	logger   *zap.Logger
}

// NewProductService creates a new ProductService
func NewProductService(repo repository.ProductRepository, userRepo repository.UserRepository, logger *zap.Logger) ProductService {
	return &productService{repo: repo, userRepo: userRepo, logger: logger}
}

func (s *productService) ListAll(ctx context.Context) ([]model.Product, error) {
	products, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list products from repo: %w", err)
	}
	return products, nil
}

func (s *productService) Get(ctx context.Context, id int64) (*model.Product, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find product by ID: %w", err)
	}
	if p == nil {
		return nil, ErrProductNotFound
	}
	return p, nil
}

func (s *productService) ListMine(ctx context.Context, farmerID int64) ([]model.Product, error) {
	products, err := s.repo.FindByFarmer(ctx, farmerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list farmer products from repo: %w", err)
	}
	return products, nil
}

// Create lists a new product owned by farmerID. Omitted optional fields take
// their defaults; location defaults to the farmer's own.
func (s *productService) Create(ctx context.Context, farmerID int64, req model.CreateProductRequest) (*model.Product, error) {
	if req.Price == nil {
		return nil, invalid("price", "Price is required")
	}
	if req.Stock == nil {
		return nil, invalid("stock", "Stock is required")
	}

	p := &model.Product{
		Name:     strings.TrimSpace(req.Name),
		Names:    cleanNames(req.Names),
		Price:    *req.Price,
		Unit:     orDefault(req.Unit, model.DefaultUnit),
		Stock:    *req.Stock,
		Quality:  orDefault(req.Quality, model.DefaultQuality),
		Emoji:    orDefault(req.Emoji, model.DefaultEmoji),
		FarmerID: farmerID,
		Location: strings.TrimSpace(req.Location),
	}
	if err := validateProduct(p); err != nil {
		return nil, err
	}

	if p.Location == "" {
		farmer, err := s.userRepo.FindByID(ctx, farmerID)
		if err != nil {
			return nil, fmt.Errorf("failed to load farmer: %w", err)
		}
		if farmer == nil {
			return nil, ErrUserNotFound
		}
		p.Location = farmer.Location
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to create product in repo: %w", err)
	}
	s.logger.Info("product listed", zap.Int64("product_id", p.ID), zap.Int64("farmer_id", farmerID))
	return p, nil
}

// Update applies a partial update. Only the owning farmer may change a product.
func (s *productService) Update(ctx context.Context, id, callerID int64, req model.UpdateProductRequest) (*model.Product, error) {
	p, err := s.owned(ctx, id, callerID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		p.Name = strings.TrimSpace(*req.Name)
	}
	if req.Names != nil {
		p.Names = cleanNames(req.Names)
	}
	if req.Price != nil {
		p.Price = *req.Price
	}
	if req.Unit != nil {
		p.Unit = strings.TrimSpace(*req.Unit)
	}
	if req.Stock != nil {
		p.Stock = *req.Stock
	}
	if req.Quality != nil {
		p.Quality = *req.Quality
	}
	if req.Emoji != nil {
		p.Emoji = *req.Emoji
	}
	if req.Location != nil {
		p.Location = strings.TrimSpace(*req.Location)
	}
	if err := validateProduct(p); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, p); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to update product in repo: %w", err)
	}
	return p, nil
}

func (s *productService) Delete(ctx context.Context, id, callerID int64) error {
	if _, err := s.owned(ctx, id, callerID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrProductNotFound
		}
		return fmt.Errorf("failed to delete product in repo: %w", err)
	}
	s.logger.Info("product removed", zap.Int64("product_id", id), zap.Int64("farmer_id", callerID))
	return nil
}

func (s *productService) owned(ctx context.Context, id, callerID int64) (*model.Product, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find product by ID: %w", err)
	}
	if p == nil {
		return nil, ErrProductNotFound
	}
	if p.FarmerID != callerID {
		return nil, ErrForbidden
	}
	return p, nil
}

func validateProduct(p *model.Product) error {
	switch {
	case p.Name == "":
		return invalid("name", "Product name is required")
	case !p.Price.IsPositive():
		return invalid("price", "Price must be greater than 0")
	case !model.HasMoneyPrecision(p.Price):
		return invalid("price", "Price can have at most 2 decimal places")
	case p.Stock < 0:
		return invalid("stock", "Stock cannot be negative")
	case !model.IsValidQuality(p.Quality):
		return invalid("quality", "Quality must be Premium, A Grade, B Grade or Fresh")
	case p.Unit == "":
		return invalid("unit", "Unit cannot be empty")
	}
	return nil
}

func cleanNames(names map[string]string) map[string]string {
	out := make(map[string]string, len(names))
	for lang, name := range names {
		if name = strings.TrimSpace(name); name != "" {
			out[lang] = name
		}
	}
	return out
}

func orDefault(v, fallback string) string {
	if v = strings.TrimSpace(v); v != "" {
		return v
	}
	return fallback
}
