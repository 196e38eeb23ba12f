package payments

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
	"github.com/stripe/stripe-go/v76/webhook"
)

// Client клиент Stripe: создание checkout-сессий и проверка webhook
type Client struct {
	sessions      SessionCreator
	webhookSecret string
	successURL    string
	cancelURL     string
	maxRetries    uint64
	initialDelay  time.Duration
	sessionTTL    time.Duration
	now           func() time.Time
	log           Logger
}

// Config параметры клиента
type Config struct {
	SecretKey     string
	WebhookSecret string
	SuccessURL    string
	CancelURL     string
	Timeout       time.Duration
	MaxRetries    int
	SessionTTL    time.Duration // срок оплаты сессии, не меньше MinSessionTTL
}

// Границы expires_at, которые принимает Stripe
const (
	MinSessionTTL = 30 * time.Minute
	MaxSessionTTL = 24 * time.Hour
)

// NewClient создает клиента Stripe.
// Встроенные повторы stripe-go отключены, повторы выполняются через backoff.
func NewClient(cfg Config, log Logger) *Client {
	backends := stripe.NewBackendsWithConfig(&stripe.BackendConfig{
		HTTPClient:        &http.Client{Timeout: cfg.Timeout},
		MaxNetworkRetries: stripe.Int64(0),
	})
	api := client.New(cfg.SecretKey, backends)

	return newClient(api.CheckoutSessions, cfg, log)
}

func newClient(sessions SessionCreator, cfg Config, log Logger) *Client {
	maxRetries := cfg.MaxRetries
	if maxRetries < 0 {
		maxRetries = 0
	}
	sessionTTL := cfg.SessionTTL
	if sessionTTL < MinSessionTTL {
		sessionTTL = MinSessionTTL
	}
	if sessionTTL > MaxSessionTTL {
		sessionTTL = MaxSessionTTL
	}
	return &Client{
		sessions:      sessions,
		webhookSecret: cfg.WebhookSecret,
		successURL:    cfg.SuccessURL,
		cancelURL:     cfg.CancelURL,
		maxRetries:    uint64(maxRetries),
		initialDelay:  300 * time.Millisecond,
		sessionTTL:    sessionTTL,
		now:           time.Now,
		log:           log,
	}
}

// CreateCheckoutSession создает checkout-сессию на один товар.
// Временные ошибки (сеть, 429, 5xx) повторяются с экспоненциальной задержкой,
// все попытки используют один ключ идемпотентности, поэтому Stripe создаст не более одной сессии.
func (c *Client) CreateCheckoutSession(ctx context.Context, req *CheckoutRequest) (*Session, error) {
	params := &stripe.CheckoutSessionParams{
		Mode:              stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL:        stripe.String(c.successURL),
		CancelURL:         stripe.String(c.cancelURL),
		ClientReferenceID: stripe.String(req.Reference),
		ExpiresAt:         stripe.Int64(c.now().Add(c.sessionTTL).Unix()),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(strings.ToLower(req.Currency)),
					UnitAmount: stripe.Int64(req.UnitAmountCents),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(req.ProductName),
					},
				},
				Quantity: stripe.Int64(int64(req.Quantity)),
			},
		},
	}
	params.Context = ctx
	params.SetIdempotencyKey("checkout-" + req.Reference)
	params.AddMetadata(MetadataProductID, strconv.FormatInt(req.ProductID, 10))
	params.AddMetadata(MetadataProductSlug, req.ProductSlug)
	params.AddMetadata(MetadataQuantity, strconv.Itoa(req.Quantity))
	if req.PickupSlotID != nil {
		params.AddMetadata(MetadataPickupSlotID, strconv.FormatInt(*req.PickupSlotID, 10))
	}
	if req.HoldReference != nil {
		params.AddMetadata(MetadataHoldReference, *req.HoldReference)
	}

	var created *stripe.CheckoutSession
	attempt := 0
	operation := func() error {
		attempt++
		s, err := c.sessions.New(params)
		if err != nil {
			if !isTransient(err) {
				return backoff.Permanent(err)
			}
			c.log.Warn("Stripe: create checkout session attempt=%d ref=%s failed: %v", attempt, req.Reference, err)
			return err
		}
		created = s
		return nil
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = c.initialDelay
	policy.MaxElapsedTime = 0

	if err := backoff.Retry(operation, backoff.WithContext(backoff.WithMaxRetries(policy, c.maxRetries), ctx)); err != nil {
		return nil, fmt.Errorf("%w: create checkout session ref=%s after %d attempt(s): %v",
			ErrPaymentProvider, req.Reference, attempt, err)
	}

	c.log.Info("Stripe: checkout session created id=%s ref=%s", created.ID, req.Reference)
	return &Session{ID: created.ID, URL: created.URL}, nil
}

// ParseWebhook проверяет подпись webhook и разбирает событие
func (c *Client) ParseWebhook(payload []byte, signature string) (*Event, error) {
	if c.webhookSecret == "" {
		return nil, ErrNotConfigured
	}

	event, err := webhook.ConstructEventWithOptions(payload, signature, c.webhookSecret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}

	result := &Event{
		ID:   event.ID,
		Type: string(event.Type),
	}

	if !strings.HasPrefix(result.Type, "checkout.session.") || event.Data == nil {
		return result, nil
	}

	var s stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &s); err != nil {
		return nil, fmt.Errorf("%w: checkout session: %v", ErrInvalidPayload, err)
	}

	session := &CheckoutSession{
		ID:                s.ID,
		ClientReferenceID: s.ClientReferenceID,
		PaymentStatus:     string(s.PaymentStatus),
		CustomerEmail:     s.CustomerEmail,
		AmountTotal:       s.AmountTotal,
		Currency:          string(s.Currency),
		Metadata:          s.Metadata,
	}
	if s.CustomerDetails != nil {
		if s.CustomerDetails.Email != "" {
			session.CustomerEmail = s.CustomerDetails.Email
		}
		session.CustomerName = s.CustomerDetails.Name
	}
	result.Session = session

	return result, nil
}

// isTransient определяет, имеет ли смысл повторять запрос к Stripe
func isTransient(err error) bool {
	var stripeErr *stripe.Error
	if errors.As(err, &stripeErr) {
		return stripeErr.HTTPStatusCode == http.StatusTooManyRequests ||
			stripeErr.HTTPStatusCode >= http.StatusInternalServerError
	}
	return !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
}
