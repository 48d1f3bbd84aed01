package poller

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"
)

const (
	CheckoutCompletedTopic = "checkout-completed"
	consumerGroup          = "storefront-cart"
)

// CartEmptier is the part of cart.Store the poller needs.
type CartEmptier interface {
	EmptyCart()
}

type messageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
	Close() error
}

type checkoutCompleted struct {
	CheckoutID string `json:"checkout_id"`
}

// Poller empties the cart once a checkout completes downstream.
type Poller struct {
	cart   CartEmptier
	reader messageReader
	log    logrus.FieldLogger
}

func NewPoller(cart CartEmptier, log logrus.FieldLogger, brokers ...string) *Poller {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  brokers,
		Topic:    CheckoutCompletedTopic,
		GroupID:  consumerGroup,
		MaxBytes: 10e6, // 10MB
	})
	return newPoller(cart, reader, log)
}

func newPoller(cart CartEmptier, reader messageReader, log logrus.FieldLogger) *Poller {
	return &Poller{
		cart:   cart,
		reader: reader,
		log:    log.WithField("component", "poller"),
	}
}

func (p *Poller) Run(ctx context.Context) {
	for {
		if ctx.Err() != nil {
			return
		}
		p.getMessageAndEmptyCart(ctx)
	}
}

func (p *Poller) Close() {
	if err := p.reader.Close(); err != nil {
		p.log.WithError(err).Error("error closing reader")
	}
}

func (p *Poller) getMessageAndEmptyCart(ctx context.Context) {
	m, err := p.reader.ReadMessage(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		p.log.WithError(err).Error("error reading message")
		return
	}

	var event checkoutCompleted
	if err := json.Unmarshal(m.Value, &event); err != nil {
		p.log.WithError(err).Warn("error parsing message")
		return
	}
	if event.CheckoutID == "" {
		p.log.Warn("missing or invalid checkout_id")
		return
	}

	p.cart.EmptyCart()
	p.log.WithField("checkout_id", event.CheckoutID).Info("checkout completed, cart emptied")
}
