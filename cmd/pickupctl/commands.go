package main

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	"github.com/spf13/cobra"

	"github.com/m04kA/FarmStand-PickupService/internal/app"
	"github.com/m04kA/FarmStand-PickupService/internal/config"
	"github.com/m04kA/FarmStand-PickupService/internal/usecase/generate_slots"
	"github.com/m04kA/FarmStand-PickupService/internal/usecase/sync_occupancy"
	"github.com/m04kA/FarmStand-PickupService/migrations"
	"github.com/m04kA/FarmStand-PickupService/pkg/dbmetrics"
	"github.com/m04kA/FarmStand-PickupService/pkg/logger"
)

const commandTimeout = 5 * time.Minute

// env открытые ресурсы одной команды
type env struct {
	cfg *config.Config
	db  *sql.DB
	log *logger.Logger
}

func (e *env) Close() {
	_ = e.db.Close()
	_ = e.log.Close()
}

func (e *env) build() *app.App {
	return app.New(e.cfg, dbmetrics.Wrap(e.db, nil), nil, e.log)
}

func open(ctx context.Context, configPath string) (*env, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	log, err := logger.New("", cfg.Logs.Level)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		_ = log.Close()
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		_ = log.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &env{cfg: cfg, db: db, log: log}, nil
}

func migrateCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply embedded database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
			defer cancel()

			e, err := open(ctx, *configPath)
			if err != nil {
				return err
			}
			defer e.Close()

			if err := migrations.Apply(ctx, e.db); err != nil {
				return err
			}

			names, err := migrations.Names()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "migrations up to date (%d files)\n", len(names))
			return nil
		},
	}
}

func generateCmd(configPath *string) *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Create pickup slots for the upcoming days",
		Long: `Create pickup slots from the active pickup windows.

Existing slots are left untouched, so the command can be rerun safely.

Examples:
  pickupctl generate
  pickupctl generate --days 30`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
			defer cancel()

			e, err := open(ctx, *configPath)
			if err != nil {
				return err
			}
			defer e.Close()

			resp, err := e.build().GenerateSlots.Execute(ctx, &generate_slots.Request{WindowDays: days})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "slots created: %d (days processed: %d)\n", resp.SlotsCreated, resp.DaysProcessed)
			return nil
		},
	}

	cmd.Flags().IntVarP(&days, "days", "d", 0, "number of days ahead (0 uses pickup.generate_window_days)")

	return cmd
}

func sweepCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "sweep",
		Short: "Release expired checkout holds",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
			defer cancel()

			e, err := open(ctx, *configPath)
			if err != nil {
				return err
			}
			defer e.Close()

			released, err := e.build().Ledger.SweepExpiredHolds(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "holds released: %d\n", released)
			return nil
		},
	}
}

func syncOccupancyCmd(configPath *string) *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "sync-occupancy",
		Short: "Refresh venue occupancy from the calendar feed",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
			defer cancel()

			e, err := open(ctx, *configPath)
			if err != nil {
				return err
			}
			defer e.Close()

			resp, err := e.build().SyncOccupancy.Execute(ctx, &sync_occupancy.Request{WindowDays: days})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "days synced: %d, occupied: %d, events: %d\n", resp.DaysSynced, resp.DaysOccupied, resp.Events)
			return nil
		},
	}

	cmd.Flags().IntVarP(&days, "days", "d", 0, "number of days ahead (0 uses pickup.occupancy_window_days)")

	return cmd
}
