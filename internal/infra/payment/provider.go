// Package payment provides concrete payment processor implementations.
package payment

import (
	"log/slog"

	"github.com/pkg/errors"

	"storefront/config"
	"storefront/internal/domain/service"
)

// Provider names accepted in configuration.
const (
	ProviderStripe    = "stripe"
	ProviderSimulated = "simulated"
)

// NewPaymentService selects the payment implementation based on configuration.
// The simulated processor is the default so local development needs no keys.
func NewPaymentService(cfg *config.Config, logger *slog.Logger) (service.PaymentService, error) {
	switch cfg.Payment.Provider {
	case ProviderStripe:
		return NewStripeService(cfg, logger)
	case ProviderSimulated, "":
		return NewSimulatedService(logger), nil
	default:
		return nil, errors.Errorf("unknown payment provider: %s", cfg.Payment.Provider)
	}
}
