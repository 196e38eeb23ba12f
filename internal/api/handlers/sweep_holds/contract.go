package sweep_holds

import "context"

type HoldSweeper interface {
	SweepExpiredHolds(ctx context.Context) (int, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
