package service

import (
	"context"
	"testing"
	"time"

	"krishiconnect/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
)

func TestChatService_AutoReply(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	store := newMemoryChatStore()
	svc := NewChatService(store, 10*time.Millisecond, zap.NewNop())
	defer svc.Close()
	ctx := context.Background()

	msg, err := svc.Send(ctx, "s1", model.RoleBuyer, "  Is the wheat still available?  ")
	require.NoError(t, err)
	assert.Equal(t, "Is the wheat still available?", msg.Message)
	assert.Equal(t, model.RoleBuyer, msg.Sender)

	require.Eventually(t, func() bool {
		msgs, _ := svc.List(ctx, "s1")
		return len(msgs) == 2
	}, time.Second, 5*time.Millisecond)

	msgs, err := svc.List(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, model.RoleFarmer, msgs[1].Sender)
	assert.Equal(t, AutoReplyText, msgs[1].Message)
	assert.False(t, msgs[1].Time.Before(msgs[0].Time))
}

func TestChatService_OneReplyPerMessage(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	store := newMemoryChatStore()
	svc := NewChatService(store, time.Millisecond, zap.NewNop())
	ctx := context.Background()

	for _, text := range []string{"hello", "price?", "thanks"} {
		_, err := svc.Send(ctx, "s1", model.RoleFarmer, text)
		require.NoError(t, err)
	}

	require.Eventually(t, func() bool {
		msgs, _ := svc.List(ctx, "s1")
		return len(msgs) == 6
	}, time.Second, 5*time.Millisecond)
	svc.Close()

	replies := 0
	msgs, _ := svc.List(ctx, "s1")
	for _, m := range msgs {
		if m.Sender == model.RoleBuyer {
			replies++
		}
	}
	assert.Equal(t, 3, replies)
}

func TestChatService_CloseCancelsPendingReplies(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	store := newMemoryChatStore()
	svc := NewChatService(store, time.Hour, zap.NewNop())
	ctx := context.Background()

	_, err := svc.Send(ctx, "s1", model.RoleBuyer, "hello")
	require.NoError(t, err)
	svc.Close()

	msgs, err := svc.List(ctx, "s1")
	require.NoError(t, err)
	assert.Len(t, msgs, 1)

	// Messages are still stored after Close, without a reply.
	_, err = svc.Send(ctx, "s1", model.RoleBuyer, "anyone?")
	require.NoError(t, err)
	time.Sleep(10 * time.Millisecond)
	msgs, _ = svc.List(ctx, "s1")
	assert.Len(t, msgs, 2)
}

func TestChatService_Send_Validation(t *testing.T) {
	svc := NewChatService(newMemoryChatStore(), time.Hour, zap.NewNop())
	defer svc.Close()

	_, err := svc.Send(context.Background(), "s1", model.RoleBuyer, "   ")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Send(context.Background(), "s1", "admin", "hello")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestChatService_FixedClock(t *testing.T) {
	store := newMemoryChatStore()
	svc := NewChatService(store, time.Hour, zap.NewNop()).(*chatService)
	defer svc.Close()

	fixed := time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	msg, err := svc.Send(context.Background(), "s1", model.RoleFarmer, "hi")
	require.NoError(t, err)
	assert.Equal(t, fixed, msg.Time)
}
