package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"krishiconnect/internal/model"

	"go.uber.org/zap"
)

// AutoReplyText is what the simulated counterpart answers with
const AutoReplyText = "Thank you for your message! I'll respond shortly."

// ChatStore keeps a transcript per session
type ChatStore interface {
	AppendMessage(ctx context.Context, sessionID string, msg model.ChatMessage) error
	ListMessages(ctx context.Context, sessionID string) ([]model.ChatMessage, error)
}

// ChatService is the messaging panel. Every message gets an automatic reply
// from the opposite role after a fixed delay.
type ChatService interface {
	Send(ctx context.Context, sessionID, senderRole, text string) (*model.ChatMessage, error)
	List(ctx context.Context, sessionID string) ([]model.ChatMessage, error)
	Close()
}

type chatService struct {
	store      ChatStore
	replyDelay time.Duration
	now        func() time.Time
	logger     *zap.Logger

	mu      sync.Mutex
	closed  bool
	nextID  uint64
	pending map[uint64]*time.Timer
	wg      sync.WaitGroup
}

// NewChatService creates a new ChatService
func NewChatService(store ChatStore, replyDelay time.Duration, logger *zap.Logger) ChatService {
	return &chatService{
		store:      store,
		replyDelay: replyDelay,
		now:        time.Now,
		logger:     logger,
		pending:    make(map[uint64]*time.Timer),
	}
}

func (s *chatService) Send(ctx context.Context, sessionID, senderRole, text string) (*model.ChatMessage, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, invalid("message", "Message cannot be empty")
	}
	if !model.IsValidRole(senderRole) {
		return nil, invalid("sender", "Sender must be farmer or buyer")
	}

	msg := model.ChatMessage{Sender: senderRole, Message: text, Time: s.now()}
	if err := s.store.AppendMessage(ctx, sessionID, msg); err != nil {
		return nil, fmt.Errorf("failed to store chat message: %w", err)
	}

	s.scheduleReply(sessionID, model.OppositeRole(senderRole))
	return &msg, nil
}

func (s *chatService) List(ctx context.Context, sessionID string) ([]model.ChatMessage, error) {
	msgs, err := s.store.ListMessages(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list chat messages: %w", err)
	}
	return msgs, nil
}

func (s *chatService) scheduleReply(sessionID, replyRole string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}

	id := s.nextID
	s.nextID++
	s.wg.Add(1)
	s.pending[id] = time.AfterFunc(s.replyDelay, func() {
		defer s.wg.Done()

		s.mu.Lock()
		_, live := s.pending[id]
		delete(s.pending, id)
		s.mu.Unlock()
		if !live {
			return
		}

		reply := model.ChatMessage{Sender: replyRole, Message: AutoReplyText, Time: s.now()}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.store.AppendMessage(ctx, sessionID, reply); err != nil {
			s.logger.Warn("failed to store auto reply", zap.String("session_id", sessionID), zap.Error(err))
		}
	})
}

// Close cancels replies that have not fired yet and waits for running ones.
func (s *chatService) Close() {
	s.mu.Lock()
	s.closed = true
	for id, t := range s.pending {
		if t.Stop() {
			s.wg.Done()
		}
		delete(s.pending, id)
	}
	s.mu.Unlock()

	s.wg.Wait()
}
