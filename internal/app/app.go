package app

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	checkoutHandler "github.com/m04kA/FarmStand-PickupService/internal/api/handlers/checkout"
	generateSlotsHandler "github.com/m04kA/FarmStand-PickupService/internal/api/handlers/generate_slots"
	getAvailableSlotsHandler "github.com/m04kA/FarmStand-PickupService/internal/api/handlers/get_available_slots"
	getOrderHandler "github.com/m04kA/FarmStand-PickupService/internal/api/handlers/get_order"
	getSettingsHandler "github.com/m04kA/FarmStand-PickupService/internal/api/handlers/get_settings"
	healthHandler "github.com/m04kA/FarmStand-PickupService/internal/api/handlers/health"
	listOrdersHandler "github.com/m04kA/FarmStand-PickupService/internal/api/handlers/list_orders"
	stripeWebhookHandler "github.com/m04kA/FarmStand-PickupService/internal/api/handlers/stripe_webhook"
	sweepHoldsHandler "github.com/m04kA/FarmStand-PickupService/internal/api/handlers/sweep_holds"
	syncOccupancyHandler "github.com/m04kA/FarmStand-PickupService/internal/api/handlers/sync_occupancy"
	updateOrderStatusHandler "github.com/m04kA/FarmStand-PickupService/internal/api/handlers/update_order_status"
	updateSettingsHandler "github.com/m04kA/FarmStand-PickupService/internal/api/handlers/update_settings"
	"github.com/m04kA/FarmStand-PickupService/internal/api/middleware"
	"github.com/m04kA/FarmStand-PickupService/internal/config"
	capacityRepo "github.com/m04kA/FarmStand-PickupService/internal/infra/storage/capacity"
	holdRepo "github.com/m04kA/FarmStand-PickupService/internal/infra/storage/hold"
	occupancyRepo "github.com/m04kA/FarmStand-PickupService/internal/infra/storage/occupancy"
	orderRepo "github.com/m04kA/FarmStand-PickupService/internal/infra/storage/order"
	productRepo "github.com/m04kA/FarmStand-PickupService/internal/infra/storage/product"
	settingsRepo "github.com/m04kA/FarmStand-PickupService/internal/infra/storage/settings"
	slotRepo "github.com/m04kA/FarmStand-PickupService/internal/infra/storage/slot"
	calendarClient "github.com/m04kA/FarmStand-PickupService/internal/integrations/calendar"
	emailClient "github.com/m04kA/FarmStand-PickupService/internal/integrations/email"
	paymentsClient "github.com/m04kA/FarmStand-PickupService/internal/integrations/payments"
	"github.com/m04kA/FarmStand-PickupService/internal/scheduler"
	capacityService "github.com/m04kA/FarmStand-PickupService/internal/service/capacity"
	governorService "github.com/m04kA/FarmStand-PickupService/internal/service/governor"
	ledgerService "github.com/m04kA/FarmStand-PickupService/internal/service/ledger"
	ordersService "github.com/m04kA/FarmStand-PickupService/internal/service/orders"
	settingsService "github.com/m04kA/FarmStand-PickupService/internal/service/settings"
	completePaymentUC "github.com/m04kA/FarmStand-PickupService/internal/usecase/complete_payment"
	createCheckoutUC "github.com/m04kA/FarmStand-PickupService/internal/usecase/create_checkout"
	generateSlotsUC "github.com/m04kA/FarmStand-PickupService/internal/usecase/generate_slots"
	getAvailableSlotsUC "github.com/m04kA/FarmStand-PickupService/internal/usecase/get_available_slots"
	syncOccupancyUC "github.com/m04kA/FarmStand-PickupService/internal/usecase/sync_occupancy"
	"github.com/m04kA/FarmStand-PickupService/pkg/dbmetrics"
	"github.com/m04kA/FarmStand-PickupService/pkg/logger"
	"github.com/m04kA/FarmStand-PickupService/pkg/metrics"
	"github.com/m04kA/FarmStand-PickupService/pkg/txmanager"
)

// App собранный граф зависимостей сервиса.
// Используется HTTP сервером и CLI.
type App struct {
	cfg     *config.Config
	db      *dbmetrics.DB
	metrics *metrics.Metrics
	log     *logger.Logger

	Payments *paymentsClient.Client

	Ledger   *ledgerService.Service
	Orders   *ordersService.Service
	Settings *settingsService.Service

	CreateCheckout    *createCheckoutUC.UseCase
	CompletePayment   *completePaymentUC.UseCase
	GetAvailableSlots *getAvailableSlotsUC.UseCase
	GenerateSlots     *generateSlotsUC.UseCase
	SyncOccupancy     *syncOccupancyUC.UseCase
}

// New собирает репозитории, клиентов, сервисы и use cases.
// m может быть nil, если метрики выключены.
func New(cfg *config.Config, db *dbmetrics.DB, m *metrics.Metrics, log *logger.Logger) *App {
	loc := cfg.Pickup.Location()

	// Репозитории
	slots := slotRepo.NewRepository(db)
	holds := holdRepo.NewRepository(db)
	capacities := capacityRepo.NewRepository(db)
	occupancies := occupancyRepo.NewRepository(db)
	orders := orderRepo.NewRepository(db)
	products := productRepo.NewRepository(db)
	settings := settingsRepo.NewRepository(db)

	txMgr := txmanager.NewTransactionManager(db)

	// Интеграции
	payments := paymentsClient.NewClient(paymentsClient.Config{
		SecretKey:     cfg.Stripe.SecretKey,
		WebhookSecret: cfg.Stripe.WebhookSecret,
		SuccessURL:    cfg.Stripe.SuccessURL,
		CancelURL:     cfg.Stripe.CancelURL,
		Timeout:       time.Duration(cfg.Stripe.Timeout) * time.Second,
		MaxRetries:    cfg.Stripe.MaxRetries,
		SessionTTL:    cfg.Pickup.HoldTTL(),
	}, log)
	mailer := emailClient.NewClient(cfg.Email.APIKey, cfg.Email.From, cfg.Email.Enabled, cfg.Email.MaxRetries, log)
	feed := calendarClient.NewClient(cfg.Calendar.FeedURL, time.Duration(cfg.Calendar.Timeout)*time.Second, log)

	// Сервисы
	capacitySvc := capacityService.NewService(capacities, occupancies, log)
	governorSvc := governorService.NewService(settings, slots, log)
	ledgerSvc := ledgerService.NewService(slots, holds, txMgr, cfg.Pickup.HoldTTL(), m, log)
	ordersSvc := ordersService.NewService(orders, ledgerSvc, txMgr, log)
	settingsSvc := settingsService.NewService(settings, txMgr, log)

	return &App{
		cfg:      cfg,
		db:       db,
		metrics:  m,
		log:      log,
		Payments: payments,
		Ledger:   ledgerSvc,
		Orders:   ordersSvc,
		Settings: settingsSvc,

		CreateCheckout: createCheckoutUC.NewUseCase(
			products,
			slots,
			governorSvc,
			ledgerSvc,
			payments,
			loc,
			m,
			log,
		),
		CompletePayment: completePaymentUC.NewUseCase(
			orders,
			products,
			slots,
			ledgerSvc,
			mailer,
			txMgr,
			loc,
			log,
		),
		GetAvailableSlots: getAvailableSlotsUC.NewUseCase(slots, loc, log),
		GenerateSlots: generateSlotsUC.NewUseCase(
			capacitySvc,
			capacities,
			slots,
			cfg.Pickup.GenerateWindowDays,
			loc,
			m,
			log,
		),
		SyncOccupancy: syncOccupancyUC.NewUseCase(
			feed,
			occupancies,
			cfg.Pickup.OccupancyWindowDays,
			loc,
			log,
		),
	}
}

// Router настраивает HTTP маршруты
func (a *App) Router() *mux.Router {
	createCheckout := checkoutHandler.NewHandler(a.CreateCheckout, a.log)
	stripeWebhook := stripeWebhookHandler.NewHandler(a.Payments, a.CompletePayment, a.log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(a.GetAvailableSlots, a.log)
	generateSlots := generateSlotsHandler.NewHandler(a.GenerateSlots, a.log)
	sweepHolds := sweepHoldsHandler.NewHandler(a.Ledger, a.log)
	syncOccupancy := syncOccupancyHandler.NewHandler(a.SyncOccupancy, a.log)
	getSettings := getSettingsHandler.NewHandler(a.Settings, a.log)
	updateSettings := updateSettingsHandler.NewHandler(a.Settings, a.log)
	getOrder := getOrderHandler.NewHandler(a.Orders, a.log)
	listOrders := listOrdersHandler.NewHandler(a.Orders, a.log)
	updateOrderStatus := updateOrderStatusHandler.NewHandler(a.Orders, a.log)
	health := healthHandler.NewHandler(a.db, a.log)

	r := mux.NewRouter()
	r.Use(middleware.MetricsMiddleware(a.metrics))

	if a.metrics != nil {
		r.Handle(a.cfg.Metrics.Path, a.metrics.Handler()).Methods(http.MethodGet)
	}
	r.HandleFunc("/health", health.Handle).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()

	// ============================================================
	// PUBLIC ROUTES
	// ============================================================

	// Оформление заказа, редирект на страницу оплаты
	api.HandleFunc("/checkout", createCheckout.Handle).Methods(http.MethodGet)

	// Webhook платёжного провайдера (аутентифицируется подписью)
	api.HandleFunc("/stripe/webhook", stripeWebhook.Handle).Methods(http.MethodPost)

	// Свободные слоты на дату
	api.HandleFunc("/pickup-slots/available", getAvailableSlots.Handle).Methods(http.MethodGet)

	// Текущие настройки приёма заказов
	api.HandleFunc("/settings", getSettings.Handle).Methods(http.MethodGet)

	// ============================================================
	// ADMIN ROUTES (Authorization: Bearer <admin token>)
	// ============================================================

	admin := api.PathPrefix("").Subrouter()
	admin.Use(middleware.AdminAuth(a.cfg.Admin.Token))

	// --- Слоты ---
	admin.HandleFunc("/pickup-slots/generate", generateSlots.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/pickup-slots/sweep-holds", sweepHolds.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/occupancy/sync", syncOccupancy.Handle).Methods(http.MethodPost)

	// --- Настройки ---
	admin.HandleFunc("/settings", updateSettings.Handle).Methods(http.MethodPatch)

	// --- Заказы ---
	admin.HandleFunc("/orders", listOrders.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/orders/{orderId}", getOrder.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/orders/{orderId}/status", updateOrderStatus.Handle).Methods(http.MethodPatch)

	return r
}

// Scheduler создает планировщик фоновых задач.
// Синхронизация календаря не планируется, если фид не настроен.
func (a *App) Scheduler() (*scheduler.Scheduler, error) {
	var occupancy scheduler.OccupancySyncer
	if a.cfg.Calendar.FeedURL != "" {
		occupancy = a.SyncOccupancy
	}

	return scheduler.New(
		scheduler.Specs{
			Generate:  a.cfg.Scheduler.GenerateSpec,
			Sweep:     a.cfg.Scheduler.SweepSpec,
			Occupancy: a.cfg.Scheduler.OccupancySpec,
		},
		a.cfg.Pickup.Location(),
		a.GenerateSlots,
		a.Ledger,
		occupancy,
		a.log,
	)
}
