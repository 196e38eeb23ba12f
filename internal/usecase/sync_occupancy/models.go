package sync_occupancy

// Request модель запроса синхронизации
type Request struct {
	WindowDays int // 0 - значение по умолчанию из конфигурации
}

// Response итог синхронизации
type Response struct {
	DaysSynced   int
	DaysOccupied int
	Events       int
}
