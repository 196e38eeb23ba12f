package domain

import "errors"

var (
	// ErrInvalidSlot нарушен инвариант 0 <= reserved <= capacity
	ErrInvalidSlot = errors.New("domain: invalid pickup slot")

	// ErrInvalidWindow некорректный шаблон окна выдачи
	ErrInvalidWindow = errors.New("domain: invalid pickup window")

	// ErrInvalidSettings некорректные глобальные настройки
	ErrInvalidSettings = errors.New("domain: invalid settings")
)
