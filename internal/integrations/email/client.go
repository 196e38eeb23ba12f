package email

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/resend/resend-go/v2"
)

// Client клиент отправки транзакционных писем
type Client struct {
	sender     Sender
	from       string
	enabled    bool
	maxRetries uint64
	log        Logger
}

// NewClient создает клиента Resend.
// При enabled=false письма не отправляются, только логируются.
func NewClient(apiKey, from string, enabled bool, maxRetries int, log Logger) *Client {
	return newClient(resend.NewClient(apiKey).Emails, from, enabled, maxRetries, log)
}

func newClient(sender Sender, from string, enabled bool, maxRetries int, log Logger) *Client {
	if maxRetries < 0 {
		maxRetries = 0
	}
	return &Client{
		sender:     sender,
		from:       from,
		enabled:    enabled,
		maxRetries: uint64(maxRetries),
		log:        log,
	}
}

// SendOrderConfirmation отправляет письмо-подтверждение заказа.
// Ключ идемпотентности привязан к заказу, поэтому повторы не дублируют письмо.
func (c *Client) SendOrderConfirmation(ctx context.Context, msg *OrderConfirmation) error {
	if !c.enabled {
		c.log.Info("Email: disabled, skipping confirmation for order=%d", msg.OrderID)
		return nil
	}
	if msg.To == "" {
		c.log.Warn("Email: order=%d has no customer email, skipping confirmation", msg.OrderID)
		return nil
	}

	body, err := renderConfirmation(msg)
	if err != nil {
		return err
	}

	req := &resend.SendEmailRequest{
		From:    c.from,
		To:      []string{msg.To},
		Subject: fmt.Sprintf("Your farm stand order #%d", msg.OrderID),
		Html:    body,
	}
	opts := &resend.SendEmailOptions{IdempotencyKey: fmt.Sprintf("order-confirmation-%d", msg.OrderID)}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = 500 * time.Millisecond
	policy.MaxElapsedTime = 0

	attempt := 0
	err = backoff.Retry(func() error {
		attempt++
		if _, err := c.sender.SendWithOptions(ctx, req, opts); err != nil {
			c.log.Warn("Email: send confirmation order=%d attempt=%d failed: %v", msg.OrderID, attempt, err)
			return err
		}
		return nil
	}, backoff.WithContext(backoff.WithMaxRetries(policy, c.maxRetries), ctx))
	if err != nil {
		return fmt.Errorf("%w: order=%d after %d attempt(s): %v", ErrSendFailed, msg.OrderID, attempt, err)
	}

	c.log.Info("Email: confirmation sent for order=%d", msg.OrderID)
	return nil
}
