package client

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"krishiconnect/internal/cart"
	"krishiconnect/internal/model"

	"gopkg.in/yaml.v3"
)

var (
	ErrEmptyCart           = errors.New("cart is empty")
	ErrUnsupportedLanguage = errors.New("unsupported language")
	ErrNotInCart           = errors.New("product is not in the cart")
)

// Account is the signed-in user as kept on disk
type Account struct {
	ID       int64  `yaml:"id"`
	Name     string `yaml:"name"`
	Phone    string `yaml:"phone"`
	Role     string `yaml:"role"`
	Location string `yaml:"location"`
	Language string `yaml:"language"`
}

// State is everything the client remembers between commands. All changes go
// through its methods; Save writes it back.
type State struct {
	Language     string    `yaml:"language"`
	VoiceEnabled bool      `yaml:"voice_enabled"`
	Screen       Screen    `yaml:"screen"`
	Role         string    `yaml:"role,omitempty"`
	Token        string    `yaml:"token,omitempty"`
	User         *Account  `yaml:"user,omitempty"`
	Cart         cart.Cart `yaml:"cart"`

	path string
}

// NewState is the state of a fresh install
func NewState(path string) *State {
	return &State{
		Language:     model.DefaultLanguage,
		VoiceEnabled: true,
		Screen:       ScreenLanguage,
		path:         path,
	}
}

// LoadState reads path; a missing file yields a fresh state.
func LoadState(path string) (*State, error) {
	s := NewState(path)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return s, nil
		}
		return nil, fmt.Errorf("failed to read state file: %w", err)
	}
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("failed to parse state file %s: %w", path, err)
	}
	if _, err := ParseScreen(string(s.Screen)); err != nil {
		s.Screen = ScreenLanguage
	}
	s.path = path
	return s, nil
}

// Save writes the state file, replacing it atomically
func (s *State) Save() error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to encode state: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("failed to write state file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace state file: %w", err)
	}
	return nil
}

func (s *State) Path() string { return s.path }

func (s *State) SignedIn() bool { return s.Token != "" && s.User != nil }

func (s *State) SetLanguage(code string) error {
	code = strings.TrimSpace(code)
	if !model.IsSupportedLanguage(code) {
		return fmt.Errorf("%w: %q", ErrUnsupportedLanguage, code)
	}
	s.Language = code
	return nil
}

func (s *State) SetVoice(enabled bool) { s.VoiceEnabled = enabled }

// ChooseRole picks the role used for the next login or registration
func (s *State) ChooseRole(role string) error {
	if !model.IsValidRole(role) {
		return fmt.Errorf("unknown role %q", role)
	}
	if s.SignedIn() && s.User.Role != role {
		return ErrWrongRole
	}
	s.Role = role
	return nil
}

// SignIn stores the session and opens the role's dashboard
func (s *State) SignIn(resp *model.AuthResponse) error {
	if resp == nil || resp.User == nil || resp.Token == "" {
		return errors.New("incomplete auth response")
	}
	u := resp.User
	s.Token = resp.Token
	s.Role = u.Role
	s.User = &Account{ID: u.ID, Name: u.Name, Phone: u.Phone, Role: u.Role, Location: u.Location, Language: u.Language}
	s.Screen = DashboardFor(u.Role)
	return nil
}

// SignOut forgets the session and the cart
func (s *State) SignOut() {
	s.Token = ""
	s.User = nil
	s.Role = ""
	s.Cart.Clear()
	s.Screen = ScreenLanguage
}

// Navigate moves to another screen if the transition table allows it.
// Dashboards need a signed-in user of the matching role.
func (s *State) Navigate(to Screen) error {
	if _, err := ParseScreen(string(to)); err != nil {
		return err
	}
	if to == s.Screen {
		return nil
	}
	if !CanTransition(s.Screen, to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, s.Screen, to)
	}
	if role := to.requiredRole(); role != "" {
		if !s.SignedIn() {
			return ErrNotSignedIn
		}
		if s.User.Role != role {
			return ErrWrongRole
		}
	}
	s.Screen = to
	return nil
}

// --- Cart ---

func (s *State) AddToCart(p model.Product) {
	s.Cart.Add(cart.FromProduct(p))
}

func (s *State) ChangeQuantity(productID int64, delta int) error {
	if !s.Cart.ChangeQuantity(productID, delta) {
		return ErrNotInCart
	}
	return nil
}

func (s *State) RemoveFromCart(productID int64) {
	s.Cart.Remove(productID)
}

func (s *State) ClearCart() { s.Cart.Clear() }

// CheckoutRequest freezes the cart into an order request
func (s *State) CheckoutRequest() (model.CreateOrderRequest, error) {
	if s.Cart.IsEmpty() {
		return model.CreateOrderRequest{}, ErrEmptyCart
	}
	total := s.Cart.Total()
	return model.CreateOrderRequest{Items: s.Cart.OrderItems(), Total: &total}, nil
}
