package checkout

import (
	"context"
	"time"

	"github.com/Manmohan01-cloud/NaturalHealthShopApp/internal/logger"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const AcceptedMessage = "Address saved. Proceeding to payment."

type Receipt struct {
	ID        uuid.UUID `json:"checkout_id"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

type Service struct {
	publisher Publisher
	log       logrus.FieldLogger
	now       func() time.Time
}

// NewService builds the checkout service. publisher may be nil.
func NewService(publisher Publisher, log logrus.FieldLogger) *Service {
	return &Service{
		publisher: publisher,
		log:       log.WithField("component", "checkout"),
		now:       time.Now,
	}
}

// Submit validates the address and hands it on to payment.
func (s *Service) Submit(ctx context.Context, address Address) (*Receipt, error) {
	if err := address.Validate(); err != nil {
		return nil, err
	}

	receipt := &Receipt{
		ID:        uuid.New(),
		Message:   AcceptedMessage,
		CreatedAt: s.now().UTC(),
	}

	log := logger.FromContext(ctx, s.log).WithField("checkout_id", receipt.ID.String())
	log.WithFields(logrus.Fields{
		"full_name": address.FullName,
		"city":      address.City,
		"pincode":   address.Pincode,
		"state":     address.State,
	}).Info("address accepted")

	if s.publisher != nil {
		if err := s.publisher.PublishAddressAccepted(ctx, receipt, address); err != nil {
			log.WithError(err).Warn("failed to publish address event")
		}
	}

	return receipt, nil
}
