package kafka

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/segmentio/kafka-go"
)

type AuditHandlerFunc func(AuditMessage)

// Consumer follows the audit topic and hands each decoded event to the
// handler. Intended for audit followers such as a log sink.
type Consumer struct {
	reader  *kafka.Reader
	handler AuditHandlerFunc
}

func NewConsumer(brokerAddr, topic, groupID string, handler AuditHandlerFunc) *Consumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers: []string{brokerAddr},
		Topic:   topic,
		GroupID: groupID,
	})
	return &Consumer{
		reader:  reader,
		handler: handler,
	}
}

func (c *Consumer) Start(ctx context.Context) {
	go func() {
		defer c.reader.Close()

		for {
			select {
			case <-ctx.Done():
				slog.Info("audit consumer stopped")
				return
			default:
				m, err := c.reader.ReadMessage(ctx)
				if err != nil {
					slog.Error("audit read error", "error", err)
					continue
				}

				var msg AuditMessage
				if err := json.Unmarshal(m.Value, &msg); err != nil {
					slog.Error("audit decode error", "error", err)
					continue
				}

				c.handler(msg)
			}
		}
	}()
}
