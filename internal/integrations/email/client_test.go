package email

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/resend/resend-go/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/FarmStand-PickupService/pkg/logger"
)

type fakeSender struct {
	failures int
	calls    int
	last     *resend.SendEmailRequest
	lastOpts *resend.SendEmailOptions
}

func (f *fakeSender) SendWithOptions(_ context.Context, params *resend.SendEmailRequest, options *resend.SendEmailOptions) (*resend.SendEmailResponse, error) {
	f.calls++
	f.last = params
	f.lastOpts = options
	if f.calls <= f.failures {
		return nil, errors.New("503 service unavailable")
	}
	return &resend.SendEmailResponse{Id: "em_1"}, nil
}

func TestClient_SendOrderConfirmation(t *testing.T) {
	pickup := time.Date(2026, 10, 20, 9, 20, 0, 0, time.UTC)
	msg := &OrderConfirmation{
		OrderID:      42,
		To:           "jo@example.com",
		CustomerName: "Jo",
		ProductName:  "Eggs (dozen)",
		Quantity:     2,
		TotalCents:   1600,
		Currency:     "usd",
		PickupAt:     &pickup,
	}

	t.Run("retries transient failure with stable idempotency key", func(t *testing.T) {
		sender := &fakeSender{failures: 1}
		c := newClient(sender, "stand@example.com", true, 2, logger.NewNop())

		require.NoError(t, c.SendOrderConfirmation(context.Background(), msg))
		assert.Equal(t, 2, sender.calls)
		assert.Equal(t, []string{"jo@example.com"}, sender.last.To)
		assert.Equal(t, "order-confirmation-42", sender.lastOpts.IdempotencyKey)
		assert.Contains(t, sender.last.Html, "Tuesday, Oct 20 at 9:20 AM")
		assert.Contains(t, sender.last.Html, "16.00 USD")
	})

	t.Run("gives up after max retries", func(t *testing.T) {
		sender := &fakeSender{failures: 10}
		c := newClient(sender, "stand@example.com", true, 1, logger.NewNop())

		err := c.SendOrderConfirmation(context.Background(), msg)
		assert.ErrorIs(t, err, ErrSendFailed)
		assert.Equal(t, 2, sender.calls)
	})

	t.Run("disabled client does not send", func(t *testing.T) {
		sender := &fakeSender{}
		c := newClient(sender, "stand@example.com", false, 2, logger.NewNop())

		require.NoError(t, c.SendOrderConfirmation(context.Background(), msg))
		assert.Zero(t, sender.calls)
	})
}
