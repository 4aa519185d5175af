package service

import (
	"context"
	"fmt"

	"tajwid-pintar-be/internal/pkg/logger"
	"tajwid-pintar-be/pkg/events"
	pktNats "tajwid-pintar-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

const DomainEventsTopic = "domain.events"

// originKey marks events this process forwarded to NATS, so the bridge can
// skip its own echoes.
const originKey = "origin"

// EventBus delivers domain events in process through a watermill channel and,
// when a remote publisher is configured, to NATS as well.
type EventBus struct {
	pubSub *gochannel.GoChannel
	remote events.Publisher
	origin string
	logger logger.ILogger
}

var _ events.Publisher = &EventBus{}

func NewEventBus(pubSub *gochannel.GoChannel, remote events.Publisher, log logger.ILogger) *EventBus {
	return &EventBus{
		pubSub: pubSub,
		remote: remote,
		origin: watermill.NewShortUUID(),
		logger: log,
	}
}

// Publish never fails because of the remote side; remote errors are logged.
func (b *EventBus) Publish(ctx context.Context, event events.Event) error {
	if err := b.publishLocal(event); err != nil {
		return err
	}

	if b.remote == nil {
		return nil
	}
	data := make(map[string]interface{}, len(event.Payload())+1)
	for k, v := range event.Payload() {
		data[k] = v
	}
	data[originKey] = b.origin
	remoteEvent := events.BaseEvent{Type: event.EventType(), Data: data, OccurredAt: event.Timestamp()}
	if err := b.remote.Publish(ctx, remoteEvent); err != nil {
		b.logger.Warn("EVENTBUS", "Failed to forward event", map[string]interface{}{
			"type":  event.EventType(),
			"error": err.Error(),
		})
	}
	return nil
}

func (b *EventBus) publishLocal(event events.Event) error {
	payload, err := events.Marshal(event)
	if err != nil {
		return err
	}
	if err := b.pubSub.Publish(DomainEventsTopic, message.NewMessage(watermill.NewUUID(), payload)); err != nil {
		return fmt.Errorf("publish %s: %w", event.EventType(), err)
	}
	return nil
}

// OnKnowledgeChange calls onChange for every knowledge change event until ctx
// is done or the channel is closed.
func (b *EventBus) OnKnowledgeChange(ctx context.Context, onChange func(events.Event)) error {
	messages, err := b.pubSub.Subscribe(ctx, DomainEventsTopic)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			event, err := events.Unmarshal(msg.Payload)
			if err != nil {
				b.logger.Error("EVENTBUS", "Dropping undecodable event", map[string]interface{}{"error": err.Error()})
				msg.Ack() // Ack invalid messages to prevent infinite retry
				continue
			}
			if events.IsKnowledgeChange(event.EventType()) {
				onChange(event)
			}
			msg.Ack()
		}
	}()
	return nil
}

// BridgeFromNATS republishes knowledge events written by other instances
// into the local channel.
func (b *EventBus) BridgeFromNATS(ctx context.Context, sub *pktNats.Subscriber, stream string) error {
	return sub.Subscribe(ctx, pktNats.SubjectPrefix(stream)+".>", "", func(_ context.Context, event events.Event) error {
		if !events.IsKnowledgeChange(event.EventType()) {
			return nil
		}
		if origin, _ := event.Payload()[originKey].(string); origin == b.origin {
			return nil
		}
		return b.publishLocal(event)
	})
}
