package mail

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pkg/errors"
	"github.com/resend/resend-go/v2"

	"storefront/config"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/service"
)

// resendMailer sends invoices through the Resend API.
type resendMailer struct {
	client *resend.Client
	from   string
	logger *slog.Logger
}

// NewResendMailer is the constructor for resendMailer.
func NewResendMailer(cfg *config.Config, logger *slog.Logger) (service.InvoiceMailer, error) {
	if cfg.Mail.APIKey == "" {
		return nil, errors.New("resend api key must be provided")
	}
	if cfg.Mail.From == "" {
		return nil, errors.New("mail sender address must be provided")
	}

	return &resendMailer{
		client: resend.NewClient(cfg.Mail.APIKey),
		from:   cfg.Mail.From,
		logger: logger,
	}, nil
}

// SendInvoice validates the receipt and dispatches it through Resend.
func (m *resendMailer) SendInvoice(ctx context.Context, invoice *service.Invoice) error {
	if err := validateInvoice(invoice); err != nil {
		return err
	}

	params := &resend.SendEmailRequest{
		From:    m.from,
		To:      []string{invoice.UserEmail},
		Subject: fmt.Sprintf("Your receipt for order %s", invoice.OrderID),
		Html:    renderInvoiceHTML(invoice),
	}

	sent, err := m.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		m.logger.Error("invoice email failed",
			slog.String("orderID", invoice.OrderID),
			slog.Any("error", err))

		return domainerrors.ErrExternalService.WithDetails("invoice email could not be sent")
	}

	m.logger.Info("invoice email sent",
		slog.String("orderID", invoice.OrderID),
		slog.String("emailID", sent.Id))

	return nil
}
