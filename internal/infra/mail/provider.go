// Package mail provides invoice mailer implementations.
package mail

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"storefront/config"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/service"
)

// Provider names accepted in configuration.
const (
	ProviderResend = "resend"
	ProviderLog    = "log"
)

var invoiceValidator = validator.New()

// NewInvoiceMailer selects the mailer implementation based on configuration.
// The log mailer is the default so local development sends nothing.
func NewInvoiceMailer(cfg *config.Config, logger *slog.Logger) (service.InvoiceMailer, error) {
	switch cfg.Mail.Provider {
	case ProviderResend:
		return NewResendMailer(cfg, logger)
	case ProviderLog, "":
		return NewLogMailer(logger), nil
	default:
		return nil, errors.Errorf("unknown mail provider: %s", cfg.Mail.Provider)
	}
}

// validateInvoice rejects receipts that could never be delivered or rendered.
func validateInvoice(invoice *service.Invoice) error {
	if invoice == nil {
		return domainerrors.ErrValidationFailed.WithDetails("invoice is required")
	}
	if err := invoiceValidator.Var(invoice.UserEmail, "required,email"); err != nil {
		return domainerrors.ErrValidationFailed.WithDetails("invalid recipient email")
	}
	if invoice.TotalAmount <= 0 {
		return domainerrors.ErrValidationFailed.WithDetails("invoice amount must be positive")
	}
	if len(invoice.Items) == 0 {
		return domainerrors.ErrValidationFailed.WithDetails("invoice has no items")
	}

	return nil
}

// renderInvoiceHTML builds the receipt body shared by all mailers.
func renderInvoiceHTML(invoice *service.Invoice) string {
	var sb strings.Builder
	sb.WriteString("<h1>Thank you for your purchase!</h1>")
	sb.WriteString(fmt.Sprintf("<p>Order <strong>%s</strong></p><ul>", invoice.OrderID))
	for _, item := range invoice.Items {
		sb.WriteString(fmt.Sprintf("<li>%s &times; %d = %d</li>", item.Title, item.Quantity, item.Amount()))
	}
	sb.WriteString(fmt.Sprintf("</ul><p>Total: <strong>%d</strong></p>", invoice.TotalAmount))

	return sb.String()
}
