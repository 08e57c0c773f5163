// Package handler processes storefront events pushed by Pub/Sub.
package handler

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"storefront/config"
	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/repository"
	"storefront/internal/domain/service"
	"storefront/internal/infra/pubsub"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
	"google.golang.org/api/idtoken"
)

// PubSubMessage represents the structure of a Pub/Sub push message
type PubSubMessage struct {
	Message struct {
		Data        string            `json:"data"`
		Attributes  map[string]string `json:"attributes,omitempty"`
		MessageID   string            `json:"messageId"`
		PublishTime string            `json:"publishTime"`
	} `json:"message"`
	Subscription string `json:"subscription"`
}

// retryableError wraps an error to indicate it should trigger a Pub/Sub retry
type retryableError struct {
	err error
}

func (e *retryableError) Error() string {
	return fmt.Sprintf("retryable: %v", e.err)
}

func (e *retryableError) Unwrap() error {
	return e.err
}

func newRetryableError(err error) error {
	return &retryableError{err: err}
}

func isRetryableError(err error) bool {
	var re *retryableError

	return errors.As(err, &re)
}

// EventsHandler consumes pushed store events: completion analytics and
// level-up notifications fan out from here instead of blocking checkout.
type EventsHandler struct {
	verifyPushAuth bool
	logger         *slog.Logger
	orderRepo      repository.OrderRepository
	userRepo       repository.UserRepository
}

// EventsHandlerParams holds dependencies for the EventsHandler.
type EventsHandlerParams struct {
	fx.In

	Config    *config.Config
	Logger    *slog.Logger
	OrderRepo repository.OrderRepository
	UserRepo  repository.UserRepository
}

// NewEventsHandler creates the Pub/Sub push handler.
func NewEventsHandler(params EventsHandlerParams) *EventsHandler {
	// Push auth only exists on the Google provider; the local publisher
	// sends unauthenticated requests.
	verifyPushAuth := params.Config.PubSub.Provider == pubsub.ProviderGoogle &&
		params.Config.Env.Env != "develop"

	return &EventsHandler{
		verifyPushAuth: verifyPushAuth,
		logger:         params.Logger,
		orderRepo:      params.OrderRepo,
		userRepo:       params.UserRepo,
	}
}

// HandlePush handles incoming Pub/Sub push messages.
func (h *EventsHandler) HandlePush(c echo.Context) error {
	ctx := c.Request().Context()

	if h.verifyPushAuth {
		if err := verifyPubSubToken(c.Request()); err != nil {
			h.logger.Warn("[Worker] Invalid Pub/Sub token", slog.Any("error", err))

			return c.NoContent(http.StatusUnauthorized)
		}
	}

	var pushMsg PubSubMessage
	if err := c.Bind(&pushMsg); err != nil {
		h.logger.Error("[Worker] Failed to parse push message", slog.Any("error", err))

		return c.NoContent(http.StatusBadRequest)
	}

	data, err := base64.StdEncoding.DecodeString(pushMsg.Message.Data)
	if err != nil {
		h.logger.Error("[Worker] Failed to decode message data", slog.Any("error", err))

		return c.NoContent(http.StatusBadRequest)
	}

	var event service.StoreEvent
	if err := json.Unmarshal(data, &event); err != nil {
		h.logger.Error("[Worker] Failed to parse store event", slog.Any("error", err))

		return c.NoContent(http.StatusBadRequest)
	}

	requestID := h.extractRequestID(c, &pushMsg, &event)
	reqLogger := h.logger.With(slog.String("request_id", requestID))

	ctx = deliverycontext.WithRequestID(ctx, requestID)
	ctx = deliverycontext.WithLogger(ctx, reqLogger)

	reqLogger.Info("[Worker] Processing store event",
		slog.String("type", event.Type),
		slog.String("user_id", event.UserID),
		slog.String("order_id", event.OrderID),
	)

	if err := h.processEvent(ctx, reqLogger, &event); err != nil {
		reqLogger.Error("[Worker] Failed to process store event",
			slog.String("type", event.Type),
			slog.Any("error", err),
			slog.Bool("retryable", isRetryableError(err)),
		)
		// 503 triggers a Pub/Sub redelivery; a 200 acknowledges events
		// that will never succeed so they are not retried forever.
		if isRetryableError(err) {
			return c.NoContent(http.StatusServiceUnavailable)
		}

		return c.NoContent(http.StatusOK)
	}

	return c.NoContent(http.StatusOK)
}

// extractRequestID prefers the message attributes, then the event payload,
// then the request context, and finally mints a fresh ID.
func (h *EventsHandler) extractRequestID(c echo.Context, pushMsg *PubSubMessage, event *service.StoreEvent) string {
	if requestID, ok := pushMsg.Message.Attributes["request_id"]; ok && requestID != "" {
		return requestID
	}

	if event.RequestID != "" {
		return event.RequestID
	}

	if requestID := deliverycontext.GetRequestIDFromContext(c.Request().Context()); requestID != "" {
		return requestID
	}

	return uuid.New().String()
}

func (h *EventsHandler) processEvent(ctx context.Context, logger *slog.Logger, event *service.StoreEvent) error {
	switch event.Type {
	case service.EventTypeOrderCompleted:
		return h.processOrderCompleted(ctx, logger, event)
	case service.EventTypeLevelUp:
		return h.processLevelUp(ctx, logger, event)
	default:
		logger.Warn("[Worker] Unknown event type, acknowledging", slog.String("type", event.Type))

		return nil
	}
}

// processOrderCompleted records purchase analytics for a completed order.
// The order must exist and be completed; a transient load failure is
// retryable, a missing order is not.
func (h *EventsHandler) processOrderCompleted(ctx context.Context, logger *slog.Logger, event *service.StoreEvent) error {
	orderID, err := uuid.Parse(event.OrderID)
	if err != nil {
		return errors.Wrap(err, "invalid order id in event")
	}

	order, err := h.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return errors.New("event references an unknown order")
		}

		return newRetryableError(errors.WithStack(err))
	}

	logger.Info("[Worker] Purchase recorded",
		slog.String("order_id", order.ID.String()),
		slog.String("user_id", order.UserID.String()),
		slog.Int64("amount", order.Total),
		slog.Int("items", len(order.Lines)),
		slog.String("status", order.Status.String()),
	)

	return nil
}

// processLevelUp logs the loyalty milestone for downstream dashboards.
func (h *EventsHandler) processLevelUp(ctx context.Context, logger *slog.Logger, event *service.StoreEvent) error {
	userID, err := uuid.Parse(event.UserID)
	if err != nil {
		return errors.Wrap(err, "invalid user id in event")
	}

	user, err := h.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return errors.New("event references an unknown user")
		}

		return newRetryableError(errors.WithStack(err))
	}

	logger.Info("[Worker] Loyalty level up",
		slog.String("user_id", user.ID.String()),
		slog.Int("level", event.Level),
	)

	return nil
}

// verifyPubSubToken verifies the JWT token from Google Pub/Sub push requests
// Reference: https://cloud.google.com/pubsub/docs/push#authenticating_standard_push_requests
func verifyPubSubToken(req *http.Request) error {
	authHeader := req.Header.Get("Authorization")
	if authHeader == "" {
		return errors.New("missing authorization header")
	}

	const bearerPrefix = "Bearer "
	if !strings.HasPrefix(authHeader, bearerPrefix) {
		return errors.New("invalid authorization header format")
	}
	token := strings.TrimPrefix(authHeader, bearerPrefix)

	// The audience must match the push endpoint URL.
	scheme := "https"
	if req.TLS == nil {
		scheme = "http" // For local development
	}
	audience := fmt.Sprintf("%s://%s%s", scheme, req.Host, req.URL.Path)

	ctx := req.Context()
	payload, err := idtoken.Validate(ctx, token, audience)
	if err != nil {
		return errors.Wrap(err, "failed to validate token")
	}

	if payload.Issuer != "accounts.google.com" && payload.Issuer != "https://accounts.google.com" {
		return errors.Errorf("invalid issuer: %s", payload.Issuer)
	}

	if emailVerified, ok := payload.Claims["email_verified"].(bool); ok && !emailVerified {
		return errors.New("email not verified")
	}

	return nil
}
