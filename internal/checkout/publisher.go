package checkout

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"

	"github.com/Sunnyraj65/Delishly/internal/orders"
)

// EventSource is the slice of the orders repository the poller needs.
type EventSource interface {
	GetUnprocessedEvents(ctx context.Context, limit int) ([]*orders.OutboxEvent, error)
	MarkEventProcessed(ctx context.Context, id int64) error
}

// MessageWriter matches kafka-go's Writer.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

// OutboxPoller drains the order outbox into Kafka. Events are published
// in insertion order and marked processed only after the write succeeds,
// so delivery is at-least-once.
type OutboxPoller struct {
	tick   time.Duration
	repo   EventSource
	writer MessageWriter
	log    zerolog.Logger
}

func NewOutboxPoller(repo EventSource, log zerolog.Logger, brokers ...string) *OutboxPoller {
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  "order-events",
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
	}
	return &OutboxPoller{
		tick:   time.Second,
		repo:   repo,
		writer: w,
		log:    log,
	}
}

func (p *OutboxPoller) Run(ctx context.Context) {
	ticker := time.NewTicker(p.tick)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			p.processUnpublishedEvents(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (p *OutboxPoller) processUnpublishedEvents(ctx context.Context) {
	events, err := p.repo.GetUnprocessedEvents(ctx, 100)
	if err != nil {
		p.log.Warn().Err(err).Msg("failed to fetch outbox events")
		return
	}

	for _, event := range events {
		msg := kafka.Message{
			Key:   []byte(event.AggregateID), // order id, keeps per-order ordering
			Value: event.Payload,
			Headers: []kafka.Header{
				{Key: "event_type", Value: []byte(event.EventType)},
			},
		}

		if errPublish := p.writer.WriteMessages(ctx, msg); errPublish != nil {
			p.log.Warn().Err(errPublish).Int64("event", event.ID).Msg("failed to publish outbox event")
			continue
		}

		if errMark := p.repo.MarkEventProcessed(ctx, event.ID); errMark != nil {
			p.log.Warn().Err(errMark).Int64("event", event.ID).Msg("failed to mark outbox event processed")
		}
	}
}
