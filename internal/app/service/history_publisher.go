package service

import (
	"encoding/json"

	"github.com/drivefetch/drivefetch/internal/app/model"
	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
)

// HistoryPublisher publishes conversion events to NATS JetStream.
type HistoryPublisher struct {
	js nats.JetStreamContext
}

// NewHistoryPublisher creates a new conversion event publisher.
func NewHistoryPublisher(js nats.JetStreamContext) *HistoryPublisher {
	return &HistoryPublisher{js: js}
}

// Record publishes a conversion event to the stream, assigning it an ID.
func (p *HistoryPublisher) Record(event model.ConversionEvent) error {
	if event.ID == "" {
		event.ID = uuid.New().String()
	}

	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	_, err = p.js.Publish(model.ConversionStreamSubject, data)
	return err
}
