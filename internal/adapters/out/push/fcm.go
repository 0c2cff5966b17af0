// Package push delivers committed journal entries outside the process.
package push

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"

	"dispatch/internal/core/domain/model/journal"
	"dispatch/internal/core/ports"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
)

const queueSize = 256

// Sender is the part of the FCM messaging client used here.
type Sender interface {
	Send(ctx context.Context, message *messaging.Message) (string, error)
}

// NewSenderFromFile builds an FCM client from a service account file.
func NewSenderFromFile(ctx context.Context, credentialsFile string) (*messaging.Client, error) {
	return newSender(ctx, option.WithCredentialsFile(credentialsFile))
}

// NewSenderFromBase64 builds an FCM client from base64 encoded service account JSON.
func NewSenderFromBase64(ctx context.Context, credentialsBase64 string) (*messaging.Client, error) {
	credentialsJSON, err := base64.StdEncoding.DecodeString(credentialsBase64)
	if err != nil {
		return nil, fmt.Errorf("error decoding base64 credentials: %w", err)
	}
	return newSender(ctx, option.WithCredentialsJSON(credentialsJSON))
}

func newSender(ctx context.Context, opt option.ClientOption) (*messaging.Client, error) {
	app, err := firebase.NewApp(ctx, nil, opt)
	if err != nil {
		return nil, fmt.Errorf("error initializing Firebase app: %w", err)
	}

	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("error getting messaging client: %w", err)
	}
	return client, nil
}

// FCMPublisher pushes driver notifications to the driver's registered device.
// Admin notifications and messages are not pushed. Publish only enqueues;
// Run performs the network calls.
type FCMPublisher struct {
	sender Sender
	tokens ports.DeviceTokenLookup
	queue  chan *messaging.Message
	logger *slog.Logger
}

func NewFCMPublisher(sender Sender, tokens ports.DeviceTokenLookup, logger *slog.Logger) *FCMPublisher {
	return &FCMPublisher{
		sender: sender,
		tokens: tokens,
		queue:  make(chan *messaging.Message, queueSize),
		logger: logger.With("component", "fcm_publisher"),
	}
}

func (p *FCMPublisher) Publish(_ context.Context, batch ports.CommittedBatch) {
	for _, n := range batch.Notifications {
		if n.IsForAdmin() {
			continue
		}
		token, ok := p.tokens.DeviceToken(n.Recipient())
		if !ok || token == "" {
			continue
		}

		select {
		case p.queue <- newMessage(token, n):
		default:
			p.logger.Warn("Push queue is full, dropping notification",
				"recipient", n.Recipient(), "notification_id", n.ID().String())
		}
	}
}

// Run sends queued messages until ctx is cancelled.
func (p *FCMPublisher) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg := <-p.queue:
			id, err := p.sender.Send(ctx, msg)
			if err != nil {
				p.logger.ErrorContext(ctx, "Failed to send push notification", "error", err, "type", msg.Data["type"])
				continue
			}
			p.logger.DebugContext(ctx, "Push notification sent", "message_id", id)
		}
	}
}

func newMessage(token string, n *journal.Notification) *messaging.Message {
	return &messaging.Message{
		Token: token,
		Notification: &messaging.Notification{
			Title: n.Title(),
			Body:  n.Message(),
		},
		Data: map[string]string{
			"type":            "notification",
			"notification_id": n.ID().String(),
			"level":           string(n.Level()),
		},
		Android: &messaging.AndroidConfig{
			Priority: "high",
		},
		APNS: &messaging.APNSConfig{
			Payload: &messaging.APNSPayload{
				Aps: &messaging.Aps{
					ContentAvailable: true,
					Sound:            "default",
				},
			},
		},
	}
}
