package stripe_webhook

import (
	"errors"
	"io"
	"net/http"

	"github.com/m04kA/FarmStand-PickupService/internal/api/handlers"
	"github.com/m04kA/FarmStand-PickupService/internal/integrations/payments"
	completePayment "github.com/m04kA/FarmStand-PickupService/internal/usecase/complete_payment"
)

const (
	signatureHeader = "Stripe-Signature"

	// maxPayloadBytes предел тела события
	maxPayloadBytes = 1 << 16
)

const (
	msgUnreadableBody   = "unable to read request body"
	msgMissingSignature = "missing Stripe-Signature header"
	msgInvalidSignature = "webhook signature verification failed"
	msgInvalidEvent     = "event payload is missing checkout data"
	msgNotConfigured    = "webhook secret is not configured"
)

type Handler struct {
	verifier WebhookVerifier
	useCase  CompletePaymentUseCase
	logger   Logger
}

func NewHandler(verifier WebhookVerifier, useCase CompletePaymentUseCase, logger Logger) *Handler {
	return &Handler{
		verifier: verifier,
		useCase:  useCase,
		logger:   logger,
	}
}

// Handle POST /api/stripe/webhook
// Подпись проверяется по сырому телу запроса до любого разбора
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(io.LimitReader(r.Body, maxPayloadBytes))
	if err != nil {
		h.logger.Warn("POST /stripe/webhook - Failed to read body: %v", err)
		handlers.RespondBadRequest(w, msgUnreadableBody)
		return
	}

	signature := r.Header.Get(signatureHeader)
	if signature == "" {
		h.logger.Warn("POST /stripe/webhook - Missing signature header")
		handlers.RespondBadRequest(w, msgMissingSignature)
		return
	}

	event, err := h.verifier.ParseWebhook(payload, signature)
	if err != nil {
		switch {
		case errors.Is(err, payments.ErrNotConfigured):
			h.logger.Error("POST /stripe/webhook - Webhook secret not configured")
			handlers.RespondError(w, http.StatusInternalServerError, msgNotConfigured)

		default:
			h.logger.Warn("POST /stripe/webhook - Signature verification failed: %v", err)
			handlers.RespondBadRequest(w, msgInvalidSignature)
		}
		return
	}

	result, err := h.useCase.Execute(r.Context(), event)
	if err != nil {
		switch {
		case errors.Is(err, completePayment.ErrInvalidEvent):
			h.logger.Error("POST /stripe/webhook - Invalid event: event_id=%s, type=%s, error=%v", event.ID, event.Type, err)
			handlers.RespondBadRequest(w, msgInvalidEvent)

		default:
			// Stripe повторит доставку
			h.logger.Error("POST /stripe/webhook - Failed to process event: event_id=%s, type=%s, error=%v",
				event.ID, event.Type, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /stripe/webhook - Event processed: event_id=%s, type=%s, outcome=%s",
		event.ID, event.Type, result.Outcome)
	handlers.RespondJSON(w, http.StatusOK, WebhookResponse{Received: true})
}
