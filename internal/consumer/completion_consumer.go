package consumer

import (
	"context"
	"encoding/json"
	"errors"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/velocityrides/template-store/internal/models"
	"github.com/velocityrides/template-store/internal/service"
	"github.com/velocityrides/template-store/pkg/logger"
)

// CompletionService is the slice of the reservation engine the consumer
// needs: settle a purchase for a buyer.
type CompletionService interface {
	CompletePurchase(ctx context.Context, templateID, buyer string) (*models.Template, error)
}

// purchaseCompletedMessage is what the payment system publishes once a
// purchase has been settled out of band.
type purchaseCompletedMessage struct {
	TemplateID string `json:"template_id"`
	Buyer      string `json:"buyer"`
}

// CompletionConsumer applies purchase.completed messages to the store.
type CompletionConsumer struct {
	completions CompletionService
	logger      *logger.Logger
}

func NewCompletionConsumer(completions CompletionService, log *logger.Logger) *CompletionConsumer {
	return &CompletionConsumer{completions: completions, logger: log}
}

// Start drains the delivery channel until it is closed.
func (cc *CompletionConsumer) Start(msgs <-chan amqp.Delivery) {
	go func() {
		for msg := range msgs {
			cc.handleMessage(msg)
		}
		cc.logger.Info("completion consumer stopping, channel closed")
	}()
}

func (cc *CompletionConsumer) handleMessage(msg amqp.Delivery) {
	var payload purchaseCompletedMessage
	if err := json.Unmarshal(msg.Body, &payload); err != nil {
		cc.logger.Warn("dropping malformed completion message", "error", err)
		msg.Nack(false, false)
		return
	}

	_, err := cc.completions.CompletePurchase(context.Background(), payload.TemplateID, payload.Buyer)
	switch {
	case errors.Is(err, service.ErrTemplateNotFound), errors.Is(err, service.ErrBuyerRequired):
		// Permanently unprocessable; requeueing would loop forever.
		cc.logger.Warn("dropping unprocessable completion message",
			"template_id", payload.TemplateID, "buyer", payload.Buyer, "error", err)
		msg.Ack(false)
	case err != nil:
		cc.logger.Error("failed to apply completion, requeueing",
			"template_id", payload.TemplateID, "error", err)
		msg.Nack(false, true)
	default:
		cc.logger.Info("purchase completed",
			"template_id", payload.TemplateID, "buyer", payload.Buyer)
		msg.Ack(false)
	}
}
