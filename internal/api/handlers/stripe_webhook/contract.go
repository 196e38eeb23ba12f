package stripe_webhook

import (
	"context"

	"github.com/m04kA/FarmStand-PickupService/internal/integrations/payments"
	completePayment "github.com/m04kA/FarmStand-PickupService/internal/usecase/complete_payment"
)

type WebhookVerifier interface {
	ParseWebhook(payload []byte, signature string) (*payments.Event, error)
}

type CompletePaymentUseCase interface {
	Execute(ctx context.Context, event *payments.Event) (*completePayment.Result, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
