package create_checkout

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_checkout: invalid input data")

	// ErrProductNotFound возвращается, когда товар не найден
	ErrProductNotFound = errors.New("create_checkout: product not found")

	// ErrProductUnavailable возвращается, когда товар снят с продажи или закончился
	ErrProductUnavailable = errors.New("create_checkout: product is not available")

	// ErrQuantityExceeded возвращается, когда количество превышает лимит на заказ
	ErrQuantityExceeded = errors.New("create_checkout: quantity exceeds the per-order limit")

	// ErrSlotNotFound возвращается, когда слот выдачи не найден
	ErrSlotNotFound = errors.New("create_checkout: pickup slot not found")

	// ErrSlotStarted возвращается, когда слот выдачи уже начался
	ErrSlotStarted = errors.New("create_checkout: pickup slot has already started")

	// ErrOrderingPaused возвращается, когда приём заказов остановлен оператором
	ErrOrderingPaused = errors.New("create_checkout: ordering is temporarily paused")

	// ErrCapacityPaused возвращается, когда загрузка дня достигла порога автопаузы
	ErrCapacityPaused = errors.New("create_checkout: pickups are fully booked today")

	// ErrSlotConflict возвращается, когда в слоте не осталось мест
	ErrSlotConflict = errors.New("create_checkout: pickup slot is no longer available")

	// ErrPaymentUnavailable возвращается, когда не удалось создать платёжную сессию
	ErrPaymentUnavailable = errors.New("create_checkout: payment provider unavailable")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_checkout: internal error")
)
