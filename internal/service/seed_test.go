package service

import (
	"context"
	"errors"
	"testing"

	"krishiconnect/internal/model"
	"krishiconnect/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestSeeder_CreatesFarmerAndCatalog(t *testing.T) {
	users := new(MockUserRepository)
	products := new(MockProductRepository)
	seeder := NewSeeder(users, products, "krishi123", zap.NewNop())

	users.On("FindByPhone", mock.Anything, DemoFarmerPhone).Return(nil, nil)
	users.On("Create", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
		return u.Role == model.RoleFarmer && u.Name == "Ram Kumar" && utils.CheckPasswordHash("krishi123", u.PasswordHash)
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*model.User).ID = 1
	}).Return(nil)
	products.On("FindByFarmerAndName", mock.Anything, int64(1), mock.Anything).Return(nil, nil)
	products.On("Create", mock.Anything, mock.MatchedBy(func(p *model.Product) bool {
		return p.FarmerID == 1 && p.Location == "Rampur" && p.Unit == model.DefaultUnit && p.Names["hi"] != ""
	})).Return(nil)

	require.NoError(t, seeder.Seed(context.Background()))
	users.AssertExpectations(t)
	products.AssertNumberOfCalls(t, "Create", len(demoCatalog))
}

func TestSeeder_Idempotent(t *testing.T) {
	users := new(MockUserRepository)
	products := new(MockProductRepository)
	seeder := NewSeeder(users, products, "krishi123", zap.NewNop())

	farmer := &model.User{ID: 3, Phone: DemoFarmerPhone, Role: model.RoleFarmer, Location: "Rampur"}
	users.On("FindByPhone", mock.Anything, DemoFarmerPhone).Return(farmer, nil)
	products.On("FindByFarmerAndName", mock.Anything, int64(3), "Wheat").Return(&model.Product{ID: 1}, nil)
	products.On("FindByFarmerAndName", mock.Anything, int64(3), mock.Anything).Return(nil, nil)
	products.On("Create", mock.Anything, mock.Anything).Return(nil)

	require.NoError(t, seeder.Seed(context.Background()))
	users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	products.AssertNumberOfCalls(t, "Create", len(demoCatalog)-1)
}

func TestSeeder_PropagatesErrors(t *testing.T) {
	users := new(MockUserRepository)
	seeder := NewSeeder(users, new(MockProductRepository), "krishi123", zap.NewNop())

	users.On("FindByPhone", mock.Anything, DemoFarmerPhone).Return(nil, errors.New("db down"))

	err := seeder.Seed(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "demo farmer")
}
