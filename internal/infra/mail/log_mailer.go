package mail

import (
	"context"
	"log/slog"

	"storefront/internal/domain/service"
)

// logMailer writes invoices to the log instead of sending them. Used in
// development and tests.
type logMailer struct {
	logger *slog.Logger
}

// NewLogMailer is the constructor for logMailer.
func NewLogMailer(logger *slog.Logger) service.InvoiceMailer {
	return &logMailer{logger: logger}
}

// SendInvoice validates the receipt and logs it.
func (m *logMailer) SendInvoice(_ context.Context, invoice *service.Invoice) error {
	if err := validateInvoice(invoice); err != nil {
		return err
	}

	m.logger.Info("invoice",
		slog.String("to", invoice.UserEmail),
		slog.String("orderID", invoice.OrderID),
		slog.Int64("total", invoice.TotalAmount),
		slog.Int("items", len(invoice.Items)))

	return nil
}
