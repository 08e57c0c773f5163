package payment

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stripe/stripe-go/v78"
	"github.com/stripe/stripe-go/v78/client"

	"storefront/config"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/service"
)

// stripeService implements PaymentService against Stripe hosted checkout.
type stripeService struct {
	api        *client.API
	currency   string
	successURL string
	cancelURL  string
	logger     *slog.Logger
}

// NewStripeService is the constructor for stripeService.
func NewStripeService(cfg *config.Config, logger *slog.Logger) (service.PaymentService, error) {
	if cfg.Payment.StripeSecretKey == "" {
		return nil, errors.New("stripe secret key must be provided")
	}

	api := &client.API{}
	api.Init(cfg.Payment.StripeSecretKey, nil)

	return &stripeService{
		api:        api,
		currency:   cfg.Payment.Currency,
		successURL: cfg.Payment.SuccessURL,
		cancelURL:  cfg.Payment.CancelURL,
		logger:     logger,
	}, nil
}

// CreateCheckoutSession opens a hosted checkout session. Prices are whole
// currency units in the catalog; Stripe expects minor units, hence the
// hundredfold amounts.
func (s *stripeService) CreateCheckoutSession(ctx context.Context, input service.CheckoutSessionInput) (*service.CheckoutSession, error) {
	lineItems := make([]*stripe.CheckoutSessionLineItemParams, 0, len(input.Lines))
	for i, line := range input.Lines {
		productData := &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
			Name: stripe.String(line.Title),
		}
		if i < len(input.ImageURLs) && input.ImageURLs[i] != "" {
			productData.Images = stripe.StringSlice([]string{input.ImageURLs[i]})
		}

		lineItems = append(lineItems, &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:    stripe.String(s.currency),
				ProductData: productData,
				UnitAmount:  stripe.Int64(line.UnitPrice * 100),
			},
			Quantity: stripe.Int64(int64(line.Quantity)),
		})
	}

	params := &stripe.CheckoutSessionParams{
		Params: stripe.Params{
			Context: ctx,
		},
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems:  lineItems,
		SuccessURL: stripe.String(s.successURL),
		CancelURL:  stripe.String(s.cancelURL),
	}
	params.AddMetadata("orderId", input.OrderID.String())
	params.AddMetadata("userId", input.UserID.String())

	sess, err := s.api.CheckoutSessions.New(params)
	if err != nil {
		s.logger.Error("stripe session creation failed",
			slog.String("orderID", input.OrderID.String()),
			slog.Any("error", err))

		return nil, domainerrors.ErrPaymentFailed.WithDetails(err.Error())
	}

	return &service.CheckoutSession{ID: sess.ID}, nil
}

// ConfirmSession fetches the session from Stripe and reports whether it was
// paid, together with the order it was opened for.
func (s *stripeService) ConfirmSession(ctx context.Context, sessionID string) (*service.PaymentConfirmation, error) {
	params := &stripe.CheckoutSessionParams{
		Params: stripe.Params{
			Context: ctx,
		},
	}

	sess, err := s.api.CheckoutSessions.Get(sessionID, params)
	if err != nil {
		return nil, domainerrors.ErrPaymentFailed.WithDetails(err.Error())
	}

	orderID, err := uuid.Parse(sess.Metadata["orderId"])
	if err != nil {
		return nil, errors.Wrap(err, "checkout session carries no order reference")
	}

	return &service.PaymentConfirmation{
		SessionID: sess.ID,
		OrderID:   orderID,
		Paid:      sess.PaymentStatus == stripe.CheckoutSessionPaymentStatusPaid,
	}, nil
}
