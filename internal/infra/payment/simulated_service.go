package payment

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"storefront/internal/domain/service"
)

// simulatedService approves every payment instantly. It keeps the opened
// sessions in memory so ConfirmSession can resolve the order they belong to,
// mirroring the hosted flow without an external processor.
type simulatedService struct {
	mu       sync.RWMutex
	sessions map[string]uuid.UUID
	logger   *slog.Logger
}

// NewSimulatedService is the constructor for simulatedService.
func NewSimulatedService(logger *slog.Logger) service.PaymentService {
	return &simulatedService{
		sessions: make(map[string]uuid.UUID),
		logger:   logger,
	}
}

// CreateCheckoutSession registers an in-memory session for the order.
func (s *simulatedService) CreateCheckoutSession(_ context.Context, input service.CheckoutSessionInput) (*service.CheckoutSession, error) {
	sessionID := fmt.Sprintf("sim_%s", uuid.NewString())

	s.mu.Lock()
	s.sessions[sessionID] = input.OrderID
	s.mu.Unlock()

	s.logger.Info("simulated payment accepted",
		slog.String("sessionID", sessionID),
		slog.String("orderID", input.OrderID.String()),
		slog.Int64("total", input.Total))

	return &service.CheckoutSession{ID: sessionID}, nil
}

// ConfirmSession reports every known session as paid.
func (s *simulatedService) ConfirmSession(_ context.Context, sessionID string) (*service.PaymentConfirmation, error) {
	s.mu.RLock()
	orderID, ok := s.sessions[sessionID]
	s.mu.RUnlock()

	if !ok {
		return nil, errors.Errorf("unknown checkout session: %s", sessionID)
	}

	return &service.PaymentConfirmation{
		SessionID: sessionID,
		OrderID:   orderID,
		Paid:      true,
	}, nil
}
