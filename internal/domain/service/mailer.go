package service

import (
	"context"

	"storefront/internal/domain/entity"
)

// Invoice carries the data for a purchase receipt email.
type Invoice struct {
	UserEmail   string
	OrderID     string
	TotalAmount int64
	Items       []entity.OrderLine
}

// InvoiceMailer dispatches purchase receipts. Sending is fire-and-forget
// from the checkout's point of view; failures are logged, never fatal.
type InvoiceMailer interface {
	// SendInvoice renders and sends the receipt. It fails with a
	// validation error when the email is malformed, the amount is not
	// positive, or there are no items.
	SendInvoice(ctx context.Context, invoice *Invoice) error
}
