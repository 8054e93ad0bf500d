package natsjs

import (
	"CryptoVault/internal/domain"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/nats-io/nats.go"
)

const (
	StreamName                = "VAULT"
	NotifySubjectPrefix       = "vault.notify.%s"
	NotificationsConsumerName = "notify_consumer_%s"
)

type JSClient struct {
	Conn          *nats.Conn
	JS            nats.JetStreamContext
	pendingEvents sync.Map
}

func NewJSClient(url string) (*JSClient, error) {
	nc, err := nats.Connect(url,
		nats.MaxReconnects(10),
		nats.ReconnectWait(2*time.Second),
		nats.ErrorHandler(func(_ *nats.Conn, _ *nats.Subscription, err error) {
			slog.Error("nats error", "error", err)
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}

	js, err := nc.JetStream()
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("nats jetstream: %w", err)
	}

	_, err = js.AddStream(&nats.StreamConfig{
		Name:      StreamName,
		Subjects:  []string{"vault.>"},
		Retention: nats.WorkQueuePolicy,
		MaxAge:    24 * time.Hour,
	})
	if err != nil && !errors.Is(err, nats.ErrStreamNameAlreadyInUse) {
		nc.Close()
		return nil, fmt.Errorf("stream creation failed: %w", err)
	}

	return &JSClient{Conn: nc, JS: js}, nil
}

func (c *JSClient) EnsureNotificationsConsumer(userID string) error {
	consumerName := fmt.Sprintf(NotificationsConsumerName, userID)
	subject := fmt.Sprintf(NotifySubjectPrefix, userID)

	_, err := c.JS.AddConsumer(StreamName, &nats.ConsumerConfig{
		Durable:       consumerName,
		FilterSubject: subject,
		AckPolicy:     nats.AckExplicitPolicy,
		AckWait:       5 * time.Second,
		MaxDeliver:    3,
		DeliverPolicy: nats.DeliverAllPolicy,
		ReplayPolicy:  nats.ReplayInstantPolicy,
	})

	if err != nil && !isConsumerExists(err) {
		return fmt.Errorf("failed to create consumer: %w", err)
	}

	return nil
}

func (c *JSClient) PublishNotification(ctx context.Context, message domain.Notification) error {
	var err error
	subject := fmt.Sprintf(NotifySubjectPrefix, message.UserID)

	msg := nats.NewMsg(subject)
	msg.Header.Set("Message-ID", message.MessageID)
	msg.Data, err = json.Marshal(message)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	_, err = c.JS.PublishMsg(msg, nats.MsgId(message.MessageID), nats.Context(ctx))
	if err != nil {
		return fmt.Errorf("publish failed: %w", err)
	}
	return nil
}

func (c *JSClient) FetchOneNotification(ctx context.Context, userID string) (domain.Notification, error) {
	subject := fmt.Sprintf(NotifySubjectPrefix, userID)
	consumerName := fmt.Sprintf(NotificationsConsumerName, userID)

	sub, err := c.JS.PullSubscribe(subject, consumerName)
	if err != nil {
		return domain.Notification{}, fmt.Errorf("pull subscribe: %w", err)
	}

	msgs, err := sub.Fetch(1, nats.MaxWait(1*time.Second))
	if err != nil && !errors.Is(err, ctx.Err()) && !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) && !errors.Is(err, nats.ErrTimeout) {
		return domain.Notification{}, fmt.Errorf("fetch: %w", err)
	}

	if len(msgs) == 0 {
		return domain.Notification{}, nats.ErrMsgNotFound
	}

	msg := msgs[0]
	var note domain.Notification
	if err = json.Unmarshal(msg.Data, &note); err != nil {
		msg.Nak()
		return domain.Notification{}, fmt.Errorf("unmarshal: %w", err)
	}
	note.UserID = userID

	c.pendingEvents.Store(note.MessageID, msg)
	return note, nil
}

func (c *JSClient) AckEvent(messageID string) error {
	val, ok := c.pendingEvents.LoadAndDelete(messageID)
	if !ok {
		return nil
	}
	msg, ok := val.(*nats.Msg)
	if !ok {
		return fmt.Errorf("invalid message type")
	}
	return msg.Ack()
}

func isConsumerExists(err error) bool {
	return strings.Contains(err.Error(), "already exists")
}
