package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/drivefetch/drivefetch/internal/app/model"
	"github.com/drivefetch/drivefetch/internal/app/repository"
	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
)

// HistoryConsumer consumes conversion events from NATS JetStream and persists
// them as history rows.
type HistoryConsumer struct {
	js     nats.JetStreamContext
	logger *zap.Logger
	repo   repository.ConversionRepository
}

// NewHistoryConsumer creates a new conversion event consumer.
func NewHistoryConsumer(js nats.JetStreamContext, logger *zap.Logger, repo repository.ConversionRepository) *HistoryConsumer {
	return &HistoryConsumer{js: js, logger: logger, repo: repo}
}

// Start ensures the stream and durable consumer exist and begins consuming.
func (c *HistoryConsumer) Start() error {
	if _, err := c.js.StreamInfo(model.ConversionStreamName); err != nil {
		_, err = c.js.AddStream(&nats.StreamConfig{
			Name:     model.ConversionStreamName,
			Subjects: []string{model.ConversionStreamSubject},
			MaxBytes: model.ConversionStreamMaxBytes,
		})
		if err != nil {
			return fmt.Errorf("failed to create stream: %w", err)
		}
	}

	if _, err := c.js.ConsumerInfo(model.ConversionStreamName, model.ConversionConsumerName); err != nil {
		_, err = c.js.AddConsumer(model.ConversionStreamName, &nats.ConsumerConfig{
			Durable:   model.ConversionConsumerName,
			AckPolicy: nats.AckExplicitPolicy,
		})
		if err != nil {
			return fmt.Errorf("failed to create consumer: %w", err)
		}
	}

	sub, err := c.js.PullSubscribe(model.ConversionStreamSubject, model.ConversionConsumerName)
	if err != nil {
		return fmt.Errorf("failed to subscribe: %w", err)
	}

	go c.consume(sub)
	return nil
}

func (c *HistoryConsumer) consume(sub *nats.Subscription) {
	ctx := context.Background()
	for {
		msgs, err := sub.Fetch(10, nats.MaxWait(5*time.Second))
		if err != nil && err != nats.ErrTimeout {
			c.logger.Error("failed to fetch conversion events", zap.Error(err))
			continue
		}

		for _, msg := range msgs {
			var event model.ConversionEvent
			if err := json.Unmarshal(msg.Data, &event); err != nil {
				c.logger.Error("failed to unmarshal conversion event", zap.Error(err))
				msg.Nak()
				continue
			}

			conv := model.Conversion{
				ID:        event.ID,
				FileID:    event.FileID,
				InputURL:  event.InputURL,
				OutputURL: event.OutputURL,
				CreatedAt: event.Timestamp,
			}
			if err := c.repo.Create(ctx, &conv); err != nil {
				c.logger.Error("failed to store conversion",
					zap.String("id", event.ID),
					zap.String("file_id", event.FileID),
					zap.Error(err))
				msg.Nak()
				continue
			}

			c.logger.Debug("conversion stored",
				zap.String("id", event.ID),
				zap.String("file_id", event.FileID),
				zap.Time("timestamp", event.Timestamp),
			)

			msg.Ack()
		}
	}
}
