package governor

// Reason причина отказа в допуске новых заказов
type Reason string

const (
	// ReasonPanicMode приём заказов остановлен оператором
	ReasonPanicMode Reason = "panic_mode"

	// ReasonCapacityPaused загрузка дня достигла порога автопаузы
	ReasonCapacityPaused Reason = "capacity_paused"
)

// Admission результат проверки допуска
type Admission struct {
	Allowed bool
	Reason  Reason // пусто, если Allowed

	// Загрузка дня на момент проверки (заполняется при включённой автопаузе)
	Reserved int
	Capacity int
}
