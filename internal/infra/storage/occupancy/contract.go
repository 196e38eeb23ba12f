package occupancy

import "github.com/m04kA/FarmStand-PickupService/pkg/dbmetrics"

// Переиспользуем интерфейс из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor
