package client

import (
	"errors"
	"path/filepath"
	"testing"

	"krishiconnect/internal/model"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func farmerLogin() *model.AuthResponse {
	return &model.AuthResponse{
		Token: "tok",
		User:  &model.User{ID: 1, Name: "Ram Kumar", Phone: "9876543210", Role: model.RoleFarmer, Location: "Rampur", Language: "hi"},
	}
}

func buyerLogin() *model.AuthResponse {
	return &model.AuthResponse{
		Token: "tok-b",
		User:  &model.User{ID: 2, Name: "Sita", Phone: "9123456780", Role: model.RoleBuyer, Location: "Delhi", Language: "en"},
	}
}

func TestState_SaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "state.yaml")
	s := NewState(path)
	require.NoError(t, s.SetLanguage("bn"))
	s.SetVoice(false)
	require.NoError(t, s.SignIn(buyerLogin()))
	s.AddToCart(model.Product{ID: 1, Name: "Wheat", Names: map[string]string{"bn": "গম"}, Price: decimal.RequireFromString("2100.50"), Unit: "quintal"})
	s.AddToCart(model.Product{ID: 1, Name: "Wheat", Price: decimal.RequireFromString("2100.50")})
	require.NoError(t, s.Save())

	loaded, err := LoadState(path)
	require.NoError(t, err)

	opt := cmp.Comparer(func(a, b decimal.Decimal) bool { return a.Equal(b) })
	if diff := cmp.Diff(s, loaded, opt, cmp.AllowUnexported(State{})); diff != "" {
		t.Errorf("state mismatch after reload (-want +got):\n%s", diff)
	}
	assert.Equal(t, "4201", loaded.Cart.Total().String())
}

func TestLoadState_MissingFile(t *testing.T) {
	s, err := LoadState(filepath.Join(t.TempDir(), "none.yaml"))
	require.NoError(t, err)
	assert.Equal(t, ScreenLanguage, s.Screen)
	assert.Equal(t, model.DefaultLanguage, s.Language)
	assert.True(t, s.VoiceEnabled)
	assert.False(t, s.SignedIn())
}

func TestState_SetLanguage(t *testing.T) {
	s := NewState("")
	require.NoError(t, s.SetLanguage("pa"))
	assert.ErrorIs(t, s.SetLanguage("fr"), ErrUnsupportedLanguage)
	assert.Equal(t, "pa", s.Language)
}

func TestState_SignInOut(t *testing.T) {
	s := NewState("")
	require.NoError(t, s.SignIn(farmerLogin()))
	assert.Equal(t, ScreenFarmerDashboard, s.Screen)
	assert.Equal(t, model.RoleFarmer, s.Role)

	s.AddToCart(model.Product{ID: 3, Name: "Potato", Price: decimal.NewFromInt(1200)})
	s.SignOut()

	assert.False(t, s.SignedIn())
	assert.Empty(t, s.Token)
	assert.True(t, s.Cart.IsEmpty())
	assert.Equal(t, ScreenLanguage, s.Screen)

	assert.Error(t, s.SignIn(&model.AuthResponse{Token: "x"}))
}

func TestState_ChooseRole(t *testing.T) {
	s := NewState("")
	require.NoError(t, s.ChooseRole(model.RoleBuyer))
	assert.Error(t, s.ChooseRole("admin"))

	require.NoError(t, s.SignIn(farmerLogin()))
	assert.ErrorIs(t, s.ChooseRole(model.RoleBuyer), ErrWrongRole)
}

func TestState_Navigate(t *testing.T) {
	tests := []struct {
		name    string
		signIn  *model.AuthResponse
		from    Screen
		to      Screen
		wantErr error
	}{
		{"language to login", nil, ScreenLanguage, ScreenLogin, nil},
		{"login to register", nil, ScreenLogin, ScreenRegister, nil},
		{"language to dashboard skips login", nil, ScreenLanguage, ScreenFarmerDashboard, ErrInvalidTransition},
		{"dashboard needs sign in", nil, ScreenLogin, ScreenBuyerDashboard, ErrNotSignedIn},
		{"farmer cannot open buyer dashboard", farmerLogin(), ScreenLogin, ScreenBuyerDashboard, ErrWrongRole},
		{"buyer opens buyer dashboard", buyerLogin(), ScreenLogin, ScreenBuyerDashboard, nil},
		{"dashboard to dashboard", farmerLogin(), ScreenFarmerDashboard, ScreenBuyerDashboard, ErrInvalidTransition},
		{"unknown screen", nil, ScreenLanguage, Screen("settings"), ErrUnknownScreen},
		{"same screen", nil, ScreenLogin, ScreenLogin, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewState("")
			if tt.signIn != nil {
				require.NoError(t, s.SignIn(tt.signIn))
			}
			s.Screen = tt.from

			err := s.Navigate(tt.to)
			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
				assert.Equal(t, tt.from, s.Screen)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.to, s.Screen)
		})
	}
}

func TestState_CartOperations(t *testing.T) {
	s := NewState("")
	wheat := model.Product{ID: 1, Name: "Wheat", Price: decimal.NewFromInt(2100)}

	_, err := s.CheckoutRequest()
	assert.ErrorIs(t, err, ErrEmptyCart)

	s.AddToCart(wheat)
	require.NoError(t, s.ChangeQuantity(1, -1))
	assert.True(t, s.Cart.IsEmpty())
	assert.True(t, decimal.Zero.Equal(s.Cart.Total()))

	assert.ErrorIs(t, s.ChangeQuantity(1, 1), ErrNotInCart)

	s.AddToCart(wheat)
	s.AddToCart(model.Product{ID: 2, Name: "Rice", Price: decimal.NewFromInt(1950)})
	s.RemoveFromCart(2)
	req, err := s.CheckoutRequest()
	require.NoError(t, err)

	want := []model.OrderItem{{ProductID: ptr(int64(1)), Name: "Wheat", Price: decimal.NewFromInt(2100), Quantity: 1}}
	opt := cmp.Comparer(func(a, b decimal.Decimal) bool { return a.Equal(b) })
	if diff := cmp.Diff(want, req.Items, opt); diff != "" {
		t.Errorf("order items mismatch (-want +got):\n%s", diff)
	}

	s.ClearCart()
	assert.Equal(t, 0, s.Cart.Count())
}

func ptr[T any](v T) *T { return &v }

func TestScreens(t *testing.T) {
	for _, sc := range Screens() {
		parsed, err := ParseScreen(string(sc))
		require.NoError(t, err)
		assert.Equal(t, sc, parsed)
	}
	assert.Equal(t, ScreenFarmerDashboard, DashboardFor(model.RoleFarmer))
	assert.Equal(t, ScreenBuyerDashboard, DashboardFor(model.RoleBuyer))
	assert.False(t, CanTransition(ScreenBuyerDashboard, ScreenRegister))
}
