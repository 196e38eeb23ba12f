package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/m04kA/FarmStand-PickupService/internal/usecase/generate_slots"
	"github.com/m04kA/FarmStand-PickupService/internal/usecase/sync_occupancy"
)

const jobTimeout = 2 * time.Minute

// Specs cron выражения фоновых задач. Пустое выражение отключает задачу.
type Specs struct {
	Generate  string
	Sweep     string
	Occupancy string
}

// Scheduler периодически запускает генерацию слотов, очистку удержаний и синхронизацию календаря
type Scheduler struct {
	cron      *cron.Cron
	generator SlotGenerator
	sweeper   HoldSweeper
	occupancy OccupancySyncer
	logger    Logger
}

// New создает планировщик и регистрирует задачи.
// occupancy может быть nil, если календарь не настроен.
func New(
	specs Specs,
	location *time.Location,
	generator SlotGenerator,
	sweeper HoldSweeper,
	occupancy OccupancySyncer,
	logger Logger,
) (*Scheduler, error) {
	if location == nil {
		location = time.UTC
	}

	s := &Scheduler{
		// SkipIfStillRunning: медленная синхронизация не должна накладываться сама на себя
		cron: cron.New(
			cron.WithLocation(location),
			cron.WithChain(cron.Recover(cron.DiscardLogger), cron.SkipIfStillRunning(cron.DiscardLogger)),
		),
		generator: generator,
		sweeper:   sweeper,
		occupancy: occupancy,
		logger:    logger,
	}

	jobs := []struct {
		name string
		spec string
		run  func(ctx context.Context) error
		skip bool
	}{
		{name: "generate_slots", spec: specs.Generate, run: s.generate},
		{name: "sweep_holds", spec: specs.Sweep, run: s.sweep},
		{name: "sync_occupancy", spec: specs.Occupancy, run: s.syncOccupancy, skip: occupancy == nil},
	}

	for _, job := range jobs {
		if job.spec == "" || job.skip {
			logger.Info("Scheduler: job %s disabled", job.name)
			continue
		}
		if _, err := s.cron.AddFunc(job.spec, s.wrap(job.name, job.run)); err != nil {
			return nil, fmt.Errorf("scheduler: invalid spec for %s %q: %w", job.name, job.spec, err)
		}
		logger.Info("Scheduler: job %s scheduled (%s)", job.name, job.spec)
	}

	return s, nil
}

// Start запускает планировщик в фоне
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop останавливает планировщик и ждёт завершения запущенных задач
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop().Done()
	select {
	case <-done:
	case <-ctx.Done():
		s.logger.Warn("Scheduler: stop timed out, jobs still running")
	}
}

func (s *Scheduler) wrap(name string, run func(ctx context.Context) error) func() {
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		defer cancel()

		start := time.Now()
		if err := run(ctx); err != nil {
			s.logger.Error("Scheduler: job %s failed after %s: %v", name, time.Since(start), err)
			return
		}
		s.logger.Info("Scheduler: job %s finished in %s", name, time.Since(start))
	}
}

func (s *Scheduler) generate(ctx context.Context) error {
	resp, err := s.generator.Execute(ctx, &generate_slots.Request{})
	if err != nil {
		return err
	}
	s.logger.Info("Scheduler: generate_slots created=%d, days=%d", resp.SlotsCreated, resp.DaysProcessed)
	return nil
}

func (s *Scheduler) sweep(ctx context.Context) error {
	released, err := s.sweeper.SweepExpiredHolds(ctx)
	if err != nil {
		return err
	}
	if released > 0 {
		s.logger.Info("Scheduler: sweep_holds released=%d", released)
	}
	return nil
}

func (s *Scheduler) syncOccupancy(ctx context.Context) error {
	resp, err := s.occupancy.Execute(ctx, &sync_occupancy.Request{})
	if err != nil {
		return err
	}
	s.logger.Info("Scheduler: sync_occupancy days=%d, occupied=%d", resp.DaysSynced, resp.DaysOccupied)
	return nil
}
