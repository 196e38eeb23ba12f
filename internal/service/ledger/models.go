package ledger

import "github.com/m04kA/FarmStand-PickupService/internal/domain"

// Значения метки result/reason для метрик
const (
	resultReserved = "reserved"
	resultConflict = "conflict"
	resultError    = "error"

	reasonReleased = "released"
	reasonExpired  = "expired"
	reasonCanceled = "canceled"
)

// sweepBatchSize сколько истёкших удержаний обрабатывается за один запрос к БД
const sweepBatchSize = 100

// ConfirmResult итог подтверждения удержания после оплаты
type ConfirmResult struct {
	Hold *domain.SlotHold

	// AlreadyConfirmed удержание было подтверждено ранее (повторная доставка)
	AlreadyConfirmed bool

	// Reacquired удержание успело истечь, но место удалось занять заново
	Reacquired bool

	// Oversold удержание истекло и свободных мест не осталось: заказ оплачен без места,
	// требуется вмешательство сотрудника
	Oversold bool
}
