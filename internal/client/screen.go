package client

import (
	"errors"
	"fmt"

	"krishiconnect/internal/model"
)

// Screen is one page of the client
type Screen string

const (
	ScreenLanguage        Screen = "language"
	ScreenLogin           Screen = "login"
	ScreenRegister        Screen = "register"
	ScreenFarmerDashboard Screen = "farmer-dashboard"
	ScreenBuyerDashboard  Screen = "buyer-dashboard"
)

var (
	ErrInvalidTransition = errors.New("screen transition not allowed")
	ErrNotSignedIn       = errors.New("not signed in")
	ErrWrongRole         = errors.New("dashboard belongs to the other role")
	ErrUnknownScreen     = errors.New("unknown screen")
)

// transitions lists where each screen may go next
var transitions = map[Screen][]Screen{
	ScreenLanguage:        {ScreenLogin, ScreenRegister},
	ScreenLogin:           {ScreenLanguage, ScreenRegister, ScreenFarmerDashboard, ScreenBuyerDashboard},
	ScreenRegister:        {ScreenLanguage, ScreenLogin, ScreenFarmerDashboard, ScreenBuyerDashboard},
	ScreenFarmerDashboard: {ScreenLanguage, ScreenLogin},
	ScreenBuyerDashboard:  {ScreenLanguage, ScreenLogin},
}

// Screens lists every screen in navigation order
func Screens() []Screen {
	return []Screen{ScreenLanguage, ScreenLogin, ScreenRegister, ScreenFarmerDashboard, ScreenBuyerDashboard}
}

func ParseScreen(s string) (Screen, error) {
	sc := Screen(s)
	if _, ok := transitions[sc]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownScreen, s)
	}
	return sc, nil
}

// CanTransition reports whether the table allows from -> to
func CanTransition(from, to Screen) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// DashboardFor is the home screen of a role
func DashboardFor(role string) Screen {
	if role == model.RoleFarmer {
		return ScreenFarmerDashboard
	}
	return ScreenBuyerDashboard
}

// requiredRole is the role a screen is reserved for, or ""
func (s Screen) requiredRole() string {
	switch s {
	case ScreenFarmerDashboard:
		return model.RoleFarmer
	case ScreenBuyerDashboard:
		return model.RoleBuyer
	}
	return ""
}
