package get_available_slots

import "time"

// Request модель запроса на получение доступных слотов
type Request struct {
	Date time.Time // учитывается только календарная дата
}

// Response модель ответа со списком доступных слотов
type Response struct {
	Date  time.Time
	Slots []Slot // только слоты со свободными местами, ещё не начавшиеся
}

// Slot модель слота выдачи
type Slot struct {
	ID        int64
	StartTime time.Time // в часовом поясе площадки
	Capacity  int
	Reserved  int
	Available int
}
