package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"krishiconnect/internal/cart"
	"krishiconnect/internal/model"

	"github.com/go-redis/redis/v8"
)

// SessionStore keeps short-lived per-session state in Redis: the server-side
// cart and chat transcript (keyed by token session id) and failed-login
// counters (keyed by phone).
type SessionStore interface {
	GetCart(ctx context.Context, sessionID string) (*cart.Cart, error)
	SaveCart(ctx context.Context, sessionID string, c *cart.Cart) error
	DeleteCart(ctx context.Context, sessionID string) error

	AppendMessage(ctx context.Context, sessionID string, msg model.ChatMessage) error
	ListMessages(ctx context.Context, sessionID string) ([]model.ChatMessage, error)

	IncrLoginFailures(ctx context.Context, phone string, window time.Duration) (int64, error)
	LoginFailures(ctx context.Context, phone string) (int64, error)
	ResetLoginFailures(ctx context.Context, phone string) error
}

type sessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSessionStore creates a SessionStore whose cart and chat keys expire after ttl
func NewSessionStore(client *redis.Client, ttl time.Duration) SessionStore {
	return &sessionStore{client: client, ttl: ttl}
}

func cartKey(sessionID string) string { return "krishi:cart:" + sessionID }
func chatKey(sessionID string) string { return "krishi:chat:" + sessionID }
func loginKey(phone string) string    { return "krishi:login_failures:" + phone }

// GetCart returns the session's cart, or an empty cart if none is stored
func (s *sessionStore) GetCart(ctx context.Context, sessionID string) (*cart.Cart, error) {
	data, err := s.client.Get(ctx, cartKey(sessionID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return &cart.Cart{}, nil
		}
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}

	c := &cart.Cart{}
	if err := json.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("failed to decode cart: %w", err)
	}
	return c, nil
}

// SaveCart stores c and refreshes its TTL. An empty cart deletes the key.
func (s *sessionStore) SaveCart(ctx context.Context, sessionID string, c *cart.Cart) error {
	if c.IsEmpty() {
		return s.DeleteCart(ctx, sessionID)
	}
	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to encode cart: %w", err)
	}
	if err := s.client.Set(ctx, cartKey(sessionID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save cart: %w", err)
	}
	return nil
}

func (s *sessionStore) DeleteCart(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, cartKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("failed to delete cart: %w", err)
	}
	return nil
}

// AppendMessage pushes msg onto the session transcript
func (s *sessionStore) AppendMessage(ctx context.Context, sessionID string, msg model.ChatMessage) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to encode chat message: %w", err)
	}

	pipe := s.client.TxPipeline()
	pipe.RPush(ctx, chatKey(sessionID), data)
	pipe.Expire(ctx, chatKey(sessionID), s.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to append chat message: %w", err)
	}
	return nil
}

// ListMessages returns the transcript oldest first
func (s *sessionStore) ListMessages(ctx context.Context, sessionID string) ([]model.ChatMessage, error) {
	raw, err := s.client.LRange(ctx, chatKey(sessionID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list chat messages: %w", err)
	}

	messages := make([]model.ChatMessage, 0, len(raw))
	for _, r := range raw {
		var m model.ChatMessage
		if err := json.Unmarshal([]byte(r), &m); err != nil {
			return nil, fmt.Errorf("failed to decode chat message: %w", err)
		}
		messages = append(messages, m)
	}
	return messages, nil
}

// IncrLoginFailures counts one failed login. The window starts at the first failure.
func (s *sessionStore) IncrLoginFailures(ctx context.Context, phone string, window time.Duration) (int64, error) {
	n, err := s.client.Incr(ctx, loginKey(phone)).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to count login failure: %w", err)
	}
	if n == 1 {
		if err := s.client.Expire(ctx, loginKey(phone), window).Err(); err != nil {
			return n, fmt.Errorf("failed to set login failure window: %w", err)
		}
	}
	return n, nil
}

func (s *sessionStore) LoginFailures(ctx context.Context, phone string) (int64, error) {
	n, err := s.client.Get(ctx, loginKey(phone)).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to read login failures: %w", err)
	}
	return n, nil
}

func (s *sessionStore) ResetLoginFailures(ctx context.Context, phone string) error {
	if err := s.client.Del(ctx, loginKey(phone)).Err(); err != nil {
		return fmt.Errorf("failed to reset login failures: %w", err)
	}
	return nil
}
