package occupancy

import "errors"

var (
	// ErrSignalNotFound возвращается, когда для дня нет записи о занятости
	ErrSignalNotFound = errors.New("occupancy.repository: occupancy signal not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("occupancy.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("occupancy.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("occupancy.repository: failed to scan row")
)
