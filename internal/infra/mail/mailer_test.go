package mail

import (
	"context"
	"log/slog"
	"testing"

	"storefront/config"
	"storefront/internal/domain/entity"
	"storefront/internal/domain/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validInvoice() *service.Invoice {
	return &service.Invoice{
		UserEmail:   "player@example.com",
		OrderID:     uuid.NewString(),
		TotalAmount: 966,
		Items: []entity.OrderLine{
			{GameID: uuid.New(), Title: "Tactical Force", UnitPrice: 399, Quantity: 2},
		},
	}
}

func TestLogMailer_SendInvoice(t *testing.T) {
	mailer := NewLogMailer(slog.Default())

	assert.NoError(t, mailer.SendInvoice(context.Background(), validInvoice()))
}

func TestSendInvoice_Validation(t *testing.T) {
	mailer := NewLogMailer(slog.Default())
	ctx := context.Background()

	testCases := []struct {
		name   string
		mutate func(inv *service.Invoice)
	}{
		{"malformed email", func(inv *service.Invoice) { inv.UserEmail = "not-an-email" }},
		{"empty email", func(inv *service.Invoice) { inv.UserEmail = "" }},
		{"zero amount", func(inv *service.Invoice) { inv.TotalAmount = 0 }},
		{"negative amount", func(inv *service.Invoice) { inv.TotalAmount = -1 }},
		{"no items", func(inv *service.Invoice) { inv.Items = nil }},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			inv := validInvoice()
			tc.mutate(inv)

			assert.Error(t, mailer.SendInvoice(ctx, inv))
		})
	}
}

func TestNewInvoiceMailer_ProviderSelection(t *testing.T) {
	logger := slog.Default()

	cfg := &config.Config{}
	mailer, err := NewInvoiceMailer(cfg, logger)
	require.NoError(t, err)
	assert.NotNil(t, mailer) // empty provider defaults to log

	cfg.Mail.Provider = ProviderResend
	mailer, err = NewInvoiceMailer(cfg, logger)
	assert.Error(t, err) // resend requires an api key
	assert.Nil(t, mailer)

	cfg.Mail.Provider = "smtp"
	mailer, err = NewInvoiceMailer(cfg, logger)
	assert.Error(t, err)
	assert.Nil(t, mailer)
}
