package messaging

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jwalitptl/care-api/pkg/logger"
)

// BrokerPublisher wraps events in a Message and publishes them on one channel.
type BrokerPublisher struct {
	broker  Broker
	channel string
	logger  *logger.Logger
}

func NewBrokerPublisher(broker Broker, channel string, log *logger.Logger) *BrokerPublisher {
	return &BrokerPublisher{broker: broker, channel: channel, logger: log}
}

func (p *BrokerPublisher) Publish(ctx context.Context, eventType string, payload interface{}) error {
	msg := Message{Type: eventType, Payload: payload}
	if err := p.broker.Publish(ctx, p.channel, msg); err != nil {
		return fmt.Errorf("failed to publish %s: %w", eventType, err)
	}
	return nil
}

// Subscribe decodes envelopes from the channel and hands them to handler
// until ctx is done. Undecodable payloads and handler errors are logged and
// skipped.
func (p *BrokerPublisher) Subscribe(ctx context.Context, handler func(Message) error) error {
	msgChan, err := p.broker.Subscribe(ctx, p.channel)
	if err != nil {
		return err
	}

	go func() {
		for raw := range msgChan {
			var msg Message
			if err := json.Unmarshal(raw, &msg); err != nil {
				p.logger.Error(err, "failed to decode message", "channel", p.channel)
				continue
			}
			if err := handler(msg); err != nil {
				p.logger.Error(err, "message handler failed", "channel", p.channel, "type", msg.Type)
			}
		}
	}()

	return nil
}

// LogPublisher writes events to the log instead of a broker.
type LogPublisher struct {
	logger *logger.Logger
}

func NewLogPublisher(log *logger.Logger) *LogPublisher {
	return &LogPublisher{logger: log}
}

func (p *LogPublisher) Publish(ctx context.Context, eventType string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", eventType, err)
	}
	p.logger.Info("event", "type", eventType, "payload", string(data))
	return nil
}
