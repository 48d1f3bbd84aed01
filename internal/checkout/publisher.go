package checkout

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
)

const (
	AddressAcceptedTopic = "checkout-address"
	AddressAcceptedEvent = "checkout.address_accepted"
)

// Publisher announces accepted addresses to downstream services.
type Publisher interface {
	PublishAddressAccepted(ctx context.Context, receipt *Receipt, address Address) error
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type KafkaPublisher struct {
	writer messageWriter
}

func NewKafkaPublisher(brokers ...string) *KafkaPublisher {
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  AddressAcceptedTopic,
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
	}
	return &KafkaPublisher{writer: w}
}

type addressAcceptedPayload struct {
	CheckoutID string    `json:"checkout_id"`
	Address    Address   `json:"address"`
	AcceptedAt time.Time `json:"accepted_at"`
}

func (p *KafkaPublisher) PublishAddressAccepted(ctx context.Context, receipt *Receipt, address Address) error {
	payload, err := json.Marshal(addressAcceptedPayload{
		CheckoutID: receipt.ID.String(),
		Address:    address,
		AcceptedAt: receipt.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal address event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(receipt.ID.String()), // checkout_id for ordering
		Value: payload,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(AddressAcceptedEvent)},
		},
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to publish address event: %w", err)
	}
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
