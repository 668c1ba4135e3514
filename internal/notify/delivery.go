package notify

import (
	"context"
	"fmt"

	"github.com/ctisdesk/autopilot/internal/respond"
	"github.com/ctisdesk/autopilot/pkg/logging"
)

// Delivery sends workflow response templates to customers.
type Delivery struct {
	sender EmailSender
	logger *logging.Logger
}

// NewDelivery creates a delivery service. A nil sender selects the stub.
func NewDelivery(sender EmailSender, logger *logging.Logger) *Delivery {
	if logger == nil {
		logger = logging.Default()
	}
	if sender == nil {
		sender = NewStubEmailSender(logger)
	}
	return &Delivery{sender: sender, logger: logger}
}

// DeliverResponse sends a rendered template to the customer.
func (d *Delivery) DeliverResponse(ctx context.Context, email, name string, tpl respond.Template) error {
	if email == "" {
		return fmt.Errorf("notify: customer email is empty")
	}

	err := d.sender.Send(ctx, EmailMessage{
		To:      email,
		ToName:  name,
		Subject: tpl.Subject,
		Body:    tpl.PlainTextFallback,
		HTML:    tpl.HTMLContent,
	})
	if err != nil {
		return fmt.Errorf("notify: deliver response: %w", err)
	}

	d.logger.Info("response delivered", "to", email, "subject", tpl.Subject)
	return nil
}
