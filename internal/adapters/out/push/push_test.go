package push_test

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"dispatch/internal/adapters/out/push"
	"dispatch/internal/core/domain/model/journal"
	"dispatch/internal/core/ports"

	"firebase.google.com/go/v4/messaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSender struct {
	mu   sync.Mutex
	sent []*messaging.Message
	err  error
}

func (s *fakeSender) Send(_ context.Context, m *messaging.Message) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return "", s.err
	}
	s.sent = append(s.sent, m)
	return "projects/test/messages/1", nil
}

func (s *fakeSender) messages() []*messaging.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*messaging.Message(nil), s.sent...)
}

type tokens map[string]string

func (t tokens) DeviceToken(driverID string) (string, bool) {
	token, ok := t[driverID]
	return token, ok
}

type recorder struct{ batches int }

func (r *recorder) Publish(context.Context, ports.CommittedBatch) { r.batches++ }

func notification(t *testing.T, recipient string) *journal.Notification {
	t.Helper()
	n, err := journal.NewNotification(recipient, journal.Success, "New order assigned", "You were assigned order #ORD-AAAAA", time.Now())
	require.NoError(t, err)
	return n
}

func TestFCMPublisher(t *testing.T) {
	t.Run("should push driver notifications to registered devices", func(t *testing.T) {
		ctx, cancel := context.WithCancel(t.Context())
		defer cancel()

		sender := &fakeSender{}
		publisher := push.NewFCMPublisher(sender, tokens{"D001": "token-1"}, slog.New(slog.DiscardHandler))
		done := make(chan error, 1)
		go func() { done <- publisher.Run(ctx) }()

		publisher.Publish(ctx, ports.CommittedBatch{Notifications: []*journal.Notification{
			notification(t, "D001"),
			notification(t, journal.Admin),
			notification(t, "D002"),
		}})

		require.Eventually(t, func() bool { return len(sender.messages()) == 1 }, time.Second, 5*time.Millisecond)
		msg := sender.messages()[0]
		assert.Equal(t, "token-1", msg.Token)
		assert.Equal(t, "New order assigned", msg.Notification.Title)
		assert.Equal(t, "success", msg.Data["level"])

		cancel()
		require.NoError(t, <-done)
	})

	t.Run("should keep running after send failures", func(t *testing.T) {
		ctx, cancel := context.WithCancel(t.Context())
		defer cancel()

		sender := &fakeSender{err: errors.New("unregistered")}
		publisher := push.NewFCMPublisher(sender, tokens{"D001": "token-1"}, slog.New(slog.DiscardHandler))
		done := make(chan error, 1)
		go func() { done <- publisher.Run(ctx) }()

		publisher.Publish(ctx, ports.CommittedBatch{Notifications: []*journal.Notification{notification(t, "D001")}})
		time.Sleep(20 * time.Millisecond)

		cancel()
		require.NoError(t, <-done)
		assert.Empty(t, sender.messages())
	})
}

func TestFanout_Publish(t *testing.T) {
	first, second := &recorder{}, &recorder{}
	fanout := push.Fanout{first, nil, second}

	fanout.Publish(t.Context(), ports.CommittedBatch{})
	fanout.Publish(t.Context(), ports.CommittedBatch{Notifications: []*journal.Notification{notification(t, "D001")}})

	assert.Equal(t, 1, first.batches)
	assert.Equal(t, 1, second.batches)
}
