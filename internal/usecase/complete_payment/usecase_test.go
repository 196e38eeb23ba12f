package complete_payment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/FarmStand-PickupService/internal/domain"
	orderRepo "github.com/m04kA/FarmStand-PickupService/internal/infra/storage/order"
	productRepo "github.com/m04kA/FarmStand-PickupService/internal/infra/storage/product"
	"github.com/m04kA/FarmStand-PickupService/internal/integrations/email"
	"github.com/m04kA/FarmStand-PickupService/internal/integrations/payments"
	"github.com/m04kA/FarmStand-PickupService/internal/service/ledger"
	"github.com/m04kA/FarmStand-PickupService/pkg/logger"
)

type memOrders struct {
	bySession map[string]*domain.Order
	createErr error
}

func newMemOrders() *memOrders {
	return &memOrders{bySession: make(map[string]*domain.Order)}
}

func (m *memOrders) Create(_ context.Context, o *domain.Order) (*domain.Order, error) {
	if m.createErr != nil {
		return nil, m.createErr
	}
	if _, ok := m.bySession[o.PaymentSessionID]; ok {
		return nil, orderRepo.ErrOrderAlreadyExists
	}
	cp := *o
	cp.ID = int64(len(m.bySession) + 100)
	m.bySession[o.PaymentSessionID] = &cp
	return &cp, nil
}

func (m *memOrders) GetByPaymentSessionID(_ context.Context, sessionID string) (*domain.Order, error) {
	o, ok := m.bySession[sessionID]
	if !ok {
		return nil, orderRepo.ErrOrderNotFound
	}
	return o, nil
}

type fakeCatalog struct{}

func (fakeCatalog) GetBySlug(_ context.Context, slug string) (*domain.Product, error) {
	if slug == "heirloom-tomatoes" {
		return &domain.Product{Slug: slug, Name: "Heirloom Tomatoes"}, nil
	}
	return nil, productRepo.ErrProductNotFound
}

type fakeSlots struct{ start time.Time }

func (f fakeSlots) GetByID(_ context.Context, id int64) (*domain.PickupSlot, error) {
	return &domain.PickupSlot{ID: id, StartTS: f.start}, nil
}

type fakeLedger struct {
	confirm     *ledger.ConfirmResult
	confirmErr  error
	confirmed   []string
	released    []string
	releaseErr  error
	releaseNoop bool
}

func (l *fakeLedger) ConfirmHold(_ context.Context, reference string) (*ledger.ConfirmResult, error) {
	l.confirmed = append(l.confirmed, reference)
	if l.confirmErr != nil {
		return nil, l.confirmErr
	}
	return l.confirm, nil
}

func (l *fakeLedger) ReleaseHold(_ context.Context, reference string) (bool, error) {
	l.released = append(l.released, reference)
	if l.releaseErr != nil {
		return false, l.releaseErr
	}
	return !l.releaseNoop, nil
}

type recordingNotifier struct {
	sent []*email.OrderConfirmation
	err  error
}

func (n *recordingNotifier) SendOrderConfirmation(_ context.Context, msg *email.OrderConfirmation) error {
	n.sent = append(n.sent, msg)
	return n.err
}

// recordingTx выполняет fn без БД и запоминает, был ли откат
type recordingTx struct{ rollbacks int }

func (tx *recordingTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	err := fn(ctx)
	if err != nil {
		tx.rollbacks++
	}
	return err
}

type fixture struct {
	uc       *UseCase
	orders   *memOrders
	ledger   *fakeLedger
	notifier *recordingNotifier
	tx       *recordingTx
	loc      *time.Location
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	f := &fixture{
		orders:   newMemOrders(),
		ledger:   &fakeLedger{confirm: &ledger.ConfirmResult{Hold: &domain.SlotHold{Status: domain.HoldStatusConfirmed}}},
		notifier: &recordingNotifier{},
		tx:       &recordingTx{},
		loc:      loc,
	}
	slots := fakeSlots{start: time.Date(2026, 10, 20, 13, 20, 0, 0, time.UTC)}
	f.uc = NewUseCase(f.orders, fakeCatalog{}, slots, f.ledger, f.notifier, f.tx, loc, logger.NewNop())
	return f
}

func completedEvent(id string) *payments.Event {
	return &payments.Event{
		ID:   id,
		Type: payments.EventCheckoutCompleted,
		Session: &payments.CheckoutSession{
			ID:            "cs_test_1",
			PaymentStatus: "paid",
			CustomerEmail: "ada@example.com",
			CustomerName:  "Ada",
			AmountTotal:   1600,
			Currency:      "usd",
			Metadata: map[string]string{
				payments.MetadataProductID:     "7",
				payments.MetadataProductSlug:   "heirloom-tomatoes",
				payments.MetadataQuantity:      "2",
				payments.MetadataPickupSlotID:  "3",
				payments.MetadataHoldReference: "hold-ref",
			},
		},
	}
}

func TestUseCase_Completed(t *testing.T) {
	f := newFixture(t)

	res, err := f.uc.Execute(context.Background(), completedEvent("evt_1"))
	require.NoError(t, err)
	assert.Equal(t, OutcomeOrderCreated, res.Outcome)
	assert.False(t, res.NeedsAttention)

	order := f.orders.bySession["cs_test_1"]
	require.NotNil(t, order)
	assert.Equal(t, res.OrderID, order.ID)
	assert.Equal(t, domain.OrderStatusPaid, order.Status)
	assert.Equal(t, int64(7), order.ProductID)
	assert.Equal(t, 2, order.Quantity)
	assert.Equal(t, int64(3), *order.PickupSlotID)
	assert.Equal(t, "hold-ref", *order.HoldReference)
	assert.Equal(t, "USD", order.Currency)
	assert.Equal(t, int64(1600), order.TotalCents)
	assert.Equal(t, []string{"hold-ref"}, f.ledger.confirmed)

	require.Len(t, f.notifier.sent, 1)
	msg := f.notifier.sent[0]
	assert.Equal(t, "ada@example.com", msg.To)
	assert.Equal(t, "Heirloom Tomatoes", msg.ProductName)
	require.NotNil(t, msg.PickupAt)
	assert.Equal(t, f.loc, msg.PickupAt.Location())
	assert.Equal(t, 9, msg.PickupAt.Hour())
}

func TestUseCase_Completed_Redelivery(t *testing.T) {
	f := newFixture(t)

	first, err := f.uc.Execute(context.Background(), completedEvent("evt_1"))
	require.NoError(t, err)

	second, err := f.uc.Execute(context.Background(), completedEvent("evt_1"))
	require.NoError(t, err)

	assert.Equal(t, OutcomeDuplicate, second.Outcome)
	assert.Equal(t, first.OrderID, second.OrderID)
	assert.Len(t, f.orders.bySession, 1)
	assert.Len(t, f.ledger.confirmed, 1)
	assert.Len(t, f.notifier.sent, 1)
	assert.Equal(t, 1, f.tx.rollbacks)
}

func TestUseCase_Completed_ConcurrentInsertRollsBack(t *testing.T) {
	f := newFixture(t)
	f.orders.createErr = orderRepo.ErrOrderAlreadyExists

	res, err := f.uc.Execute(context.Background(), completedEvent("evt_1"))
	require.NoError(t, err)

	assert.Equal(t, OutcomeDuplicate, res.Outcome)
	assert.Equal(t, 1, f.tx.rollbacks)
	assert.Empty(t, f.notifier.sent)
}

func TestUseCase_Completed_Oversold(t *testing.T) {
	f := newFixture(t)
	f.ledger.confirm = &ledger.ConfirmResult{
		Hold:     &domain.SlotHold{Status: domain.HoldStatusExpired},
		Oversold: true,
	}

	res, err := f.uc.Execute(context.Background(), completedEvent("evt_1"))
	require.NoError(t, err)

	assert.True(t, res.NeedsAttention)
	assert.True(t, f.orders.bySession["cs_test_1"].NeedsAttention)
	require.Len(t, f.notifier.sent, 1)
	assert.True(t, f.notifier.sent[0].NeedsFollowUp)
	assert.Nil(t, f.notifier.sent[0].PickupAt)
}

func TestUseCase_Completed_WithoutSlot(t *testing.T) {
	f := newFixture(t)
	event := completedEvent("evt_1")
	delete(event.Session.Metadata, payments.MetadataPickupSlotID)
	delete(event.Session.Metadata, payments.MetadataHoldReference)

	res, err := f.uc.Execute(context.Background(), event)
	require.NoError(t, err)

	assert.Equal(t, OutcomeOrderCreated, res.Outcome)
	assert.Empty(t, f.ledger.confirmed)
	assert.Nil(t, f.orders.bySession["cs_test_1"].PickupSlotID)
}

func TestUseCase_Completed_EmailFailureIsNotFatal(t *testing.T) {
	f := newFixture(t)
	f.notifier.err = email.ErrSendFailed

	res, err := f.uc.Execute(context.Background(), completedEvent("evt_1"))
	require.NoError(t, err)
	assert.Equal(t, OutcomeOrderCreated, res.Outcome)
}

func TestUseCase_Completed_Errors(t *testing.T) {
	t.Run("unpaid session waits", func(t *testing.T) {
		f := newFixture(t)
		event := completedEvent("evt_1")
		event.Session.PaymentStatus = "unpaid"

		res, err := f.uc.Execute(context.Background(), event)
		require.NoError(t, err)
		assert.Equal(t, OutcomeIgnored, res.Outcome)
		assert.Empty(t, f.orders.bySession)
	})

	t.Run("bad metadata", func(t *testing.T) {
		f := newFixture(t)
		event := completedEvent("evt_1")
		event.Session.Metadata[payments.MetadataQuantity] = "two"

		_, err := f.uc.Execute(context.Background(), event)
		assert.ErrorIs(t, err, ErrInvalidEvent)
	})

	t.Run("slot without hold", func(t *testing.T) {
		f := newFixture(t)
		event := completedEvent("evt_1")
		delete(event.Session.Metadata, payments.MetadataHoldReference)

		_, err := f.uc.Execute(context.Background(), event)
		assert.ErrorIs(t, err, ErrInvalidEvent)
	})

	t.Run("missing session", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.uc.Execute(context.Background(), &payments.Event{ID: "evt_1", Type: payments.EventCheckoutCompleted})
		assert.ErrorIs(t, err, ErrInvalidEvent)
	})

	t.Run("confirm failure rolls back", func(t *testing.T) {
		f := newFixture(t)
		f.ledger.confirmErr = errors.New("db down")

		_, err := f.uc.Execute(context.Background(), completedEvent("evt_1"))
		assert.ErrorIs(t, err, ErrInternal)
		assert.Empty(t, f.orders.bySession)
		assert.Equal(t, 1, f.tx.rollbacks)
	})
}

func TestUseCase_Expired(t *testing.T) {
	expired := func() *payments.Event {
		return &payments.Event{
			ID:   "evt_2",
			Type: payments.EventCheckoutExpired,
			Session: &payments.CheckoutSession{
				ID:       "cs_test_1",
				Metadata: map[string]string{payments.MetadataHoldReference: "hold-ref"},
			},
		}
	}

	t.Run("releases hold", func(t *testing.T) {
		f := newFixture(t)

		res, err := f.uc.Execute(context.Background(), expired())
		require.NoError(t, err)
		assert.Equal(t, OutcomeHoldReleased, res.Outcome)
		assert.Equal(t, []string{"hold-ref"}, f.ledger.released)
	})

	t.Run("already swept", func(t *testing.T) {
		f := newFixture(t)
		f.ledger.releaseNoop = true

		res, err := f.uc.Execute(context.Background(), expired())
		require.NoError(t, err)
		assert.Equal(t, OutcomeDuplicate, res.Outcome)
	})

	t.Run("unknown hold", func(t *testing.T) {
		f := newFixture(t)
		f.ledger.releaseErr = ledger.ErrHoldNotFound

		res, err := f.uc.Execute(context.Background(), expired())
		require.NoError(t, err)
		assert.Equal(t, OutcomeIgnored, res.Outcome)
	})

	t.Run("no hold", func(t *testing.T) {
		f := newFixture(t)
		event := expired()
		event.Session.Metadata = nil

		res, err := f.uc.Execute(context.Background(), event)
		require.NoError(t, err)
		assert.Equal(t, OutcomeIgnored, res.Outcome)
		assert.Empty(t, f.ledger.released)
	})

	t.Run("store failure", func(t *testing.T) {
		f := newFixture(t)
		f.ledger.releaseErr = errors.New("db down")

		_, err := f.uc.Execute(context.Background(), expired())
		assert.ErrorIs(t, err, ErrInternal)
	})
}

func TestUseCase_DelayedPayment(t *testing.T) {
	f := newFixture(t)

	// Сначала сессия завершена без оплаты: заказ не создается
	pending := completedEvent("evt_1")
	pending.Session.PaymentStatus = "unpaid"

	res, err := f.uc.Execute(context.Background(), pending)
	require.NoError(t, err)
	assert.Equal(t, OutcomeIgnored, res.Outcome)
	assert.Empty(t, f.orders.bySession)

	// Затем оплата проходит отдельным событием
	succeeded := completedEvent("evt_2")
	succeeded.Type = payments.EventCheckoutAsyncPaymentOK

	res, err = f.uc.Execute(context.Background(), succeeded)
	require.NoError(t, err)
	assert.Equal(t, OutcomeOrderCreated, res.Outcome)
	require.Contains(t, f.orders.bySession, "cs_test_1")
	assert.Equal(t, domain.OrderStatusPaid, f.orders.bySession["cs_test_1"].Status)
	assert.Equal(t, []string{"hold-ref"}, f.ledger.confirmed)
}

func TestUseCase_DelayedPaymentFailedReleasesHold(t *testing.T) {
	f := newFixture(t)

	failed := completedEvent("evt_3")
	failed.Type = payments.EventCheckoutAsyncPaymentFailed
	failed.Session.PaymentStatus = "unpaid"

	res, err := f.uc.Execute(context.Background(), failed)
	require.NoError(t, err)
	assert.Equal(t, OutcomeHoldReleased, res.Outcome)
	assert.Equal(t, []string{"hold-ref"}, f.ledger.released)
	assert.Empty(t, f.orders.bySession)
}

func TestUseCase_IgnoresOtherEvents(t *testing.T) {
	f := newFixture(t)

	res, err := f.uc.Execute(context.Background(), &payments.Event{ID: "evt_3", Type: "invoice.paid"})
	require.NoError(t, err)
	assert.Equal(t, OutcomeIgnored, res.Outcome)
}
