package generate_slots

// Request модель запроса на генерацию слотов
type Request struct {
	WindowDays int // 0 - значение по умолчанию из конфигурации
}

// Response итог генерации
type Response struct {
	SlotsCreated  int
	DaysProcessed int
}
