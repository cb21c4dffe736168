package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"krishiconnect/internal/model"
	"krishiconnect/internal/repository"
	"krishiconnect/internal/utils"

	"go.uber.org/zap"
)

var (
	ErrUserAlreadyExists  = errors.New("phone number already registered")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid phone number or password")
	ErrRoleMismatch       = errors.New("role mismatch")
	ErrTooManyAttempts    = errors.New("too many failed login attempts, please try again later")
)

// LoginAttemptStore counts failed logins per phone
type LoginAttemptStore interface {
	IncrLoginFailures(ctx context.Context, phone string, window time.Duration) (int64, error)
	LoginFailures(ctx context.Context, phone string) (int64, error)
	ResetLoginFailures(ctx context.Context, phone string) error
}

// LoginThrottle locks a phone out after MaxAttempts failures within Window
type LoginThrottle struct {
	Store       LoginAttemptStore
	MaxAttempts int64
	Window      time.Duration
}

// AuthService provides authentication related services
type AuthService interface {
	Register(ctx context.Context, req model.RegisterRequest) (*model.User, string, error)
	Login(ctx context.Context, req model.LoginRequest) (*model.User, string, error)
	Profile(ctx context.Context, userID int64) (*model.User, error)
}

type authService struct {
	userRepo repository.UserRepository
	jwtUtil  *utils.JWTUtil
	throttle *LoginThrottle
	logger   *zap.Logger
}

// NewAuthService creates a new AuthService. A nil throttle disables lockouts.
func NewAuthService(userRepo repository.UserRepository, jwtUtil *utils.JWTUtil, throttle *LoginThrottle, logger *zap.Logger) AuthService {
	return &authService{
		userRepo: userRepo,
		jwtUtil:  jwtUtil,
		throttle: throttle,
		logger:   logger,
	}
}

// Register creates a new user account and signs them in
func (s *authService) Register(ctx context.Context, req model.RegisterRequest) (*model.User, string, error) {
	user, err := newUserFromRequest(req)
	if err != nil {
		return nil, "", err
	}

	existingUser, err := s.userRepo.FindByPhone(ctx, user.Phone)
	if err != nil {
		return nil, "", fmt.Errorf("failed to check existing user: %w", err)
	}
	if existingUser != nil {
		return nil, "", ErrUserAlreadyExists
	}

	user.PasswordHash, err = utils.HashPassword(req.Password)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicatePhone) {
			return nil, "", ErrUserAlreadyExists
		}
		return nil, "", fmt.Errorf("failed to create user in repository: %w", err)
	}
	s.logger.Info("user registered", zap.Int64("user_id", user.ID), zap.String("role", user.Role))

	token, err := s.jwtUtil.GenerateToken(user.ID, user.Role)
	if err != nil {
		s.logger.Error("user created, but failed to generate token", zap.Int64("user_id", user.ID), zap.Error(err))
		return user, "", fmt.Errorf("user created, but failed to generate token: %w", err)
	}

	return user, token, nil
}

func newUserFromRequest(req model.RegisterRequest) (*model.User, error) {
	user := &model.User{
		Name:         strings.TrimSpace(req.Name),
		Phone:        strings.TrimSpace(req.Phone),
		Role:         req.Role,
		Location:     strings.TrimSpace(req.Location),
		BusinessType: strings.TrimSpace(req.BusinessType),
		Language:     strings.TrimSpace(req.Language),
	}

	switch {
	case user.Name == "":
		return nil, invalid("name", "Name is required")
	case !utils.IsValidPhone(user.Phone):
		return nil, invalid("phone", "Please enter a valid 10-digit phone number")
	case len(req.Password) < 6:
		return nil, invalid("password", "Password must be at least 6 characters")
	case !model.IsValidRole(user.Role):
		return nil, invalid("role", "Role must be farmer or buyer")
	case user.Location == "":
		return nil, invalid("location", "Location is required")
	}

	if user.Role == model.RoleFarmer {
		user.BusinessType = ""
	} else if user.BusinessType != "" && !model.IsValidBusinessType(user.BusinessType) {
		return nil, invalid("business_type", "Business type must be retailer, wholesaler, restaurant or exporter")
	}

	if user.Language == "" {
		user.Language = model.DefaultLanguage
	} else if !model.IsSupportedLanguage(user.Language) {
		return nil, invalid("language", "Unsupported language")
	}
	return user, nil
}

// Login authenticates a user for the role they claim and returns a JWT token
func (s *authService) Login(ctx context.Context, req model.LoginRequest) (*model.User, string, error) {
	phone := strings.TrimSpace(req.Phone)

	if s.locked(ctx, phone) {
		return nil, "", ErrTooManyAttempts
	}

	user, err := s.userRepo.FindByPhone(ctx, phone)
	if err != nil {
		return nil, "", fmt.Errorf("error finding user by phone: %w", err)
	}
	if user == nil || !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		s.recordFailure(ctx, phone)
		return nil, "", ErrInvalidCredentials
	}

	if user.Role != req.Role {
		return nil, "", &RoleMismatchError{Actual: user.Role, Claimed: req.Role}
	}

	s.resetFailures(ctx, phone)

	token, err := s.jwtUtil.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}

	return user, token, nil
}

// Profile returns the account behind a verified token
func (s *authService) Profile(ctx context.Context, userID int64) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// Throttle store failures are logged and otherwise ignored: login stays available without Redis.

func (s *authService) locked(ctx context.Context, phone string) bool {
	if s.throttle == nil {
		return false
	}
	n, err := s.throttle.Store.LoginFailures(ctx, phone)
	if err != nil {
		s.logger.Warn("login throttle unavailable", zap.Error(err))
		return false
	}
	return n >= s.throttle.MaxAttempts
}

func (s *authService) recordFailure(ctx context.Context, phone string) {
	if s.throttle == nil {
		return
	}
	n, err := s.throttle.Store.IncrLoginFailures(ctx, phone, s.throttle.Window)
	if err != nil {
		s.logger.Warn("failed to record login failure", zap.Error(err))
		return
	}
	if n == s.throttle.MaxAttempts {
		s.logger.Warn("login locked out", zap.String("phone", phone), zap.Duration("window", s.throttle.Window))
	}
}

func (s *authService) resetFailures(ctx context.Context, phone string) {
	if s.throttle == nil {
		return
	}
	if err := s.throttle.Store.ResetLoginFailures(ctx, phone); err != nil {
		s.logger.Warn("failed to reset login failures", zap.Error(err))
	}
}
