package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
)

const sweepTimeout = 2 * time.Minute

// Scheduler запускает ежедневную проверку дедлайнов по cron расписанию
type Scheduler struct {
	cron    *cron.Cron
	sweeper *DeadlineSweeper
	logger  Logger
}

// New создает планировщик; выполнение пропускается, если предыдущий запуск еще идет
func New(schedule string, location *time.Location, sweeper *DeadlineSweeper, logger Logger) (*Scheduler, error) {
	if location == nil {
		location = time.Local
	}

	cronLog := cronLogger{logger: logger}
	c := cron.New(
		cron.WithLocation(location),
		cron.WithLogger(cronLog),
		cron.WithChain(cron.Recover(cronLog), cron.SkipIfStillRunning(cronLog)),
	)

	s := &Scheduler{cron: c, sweeper: sweeper, logger: logger}

	if _, err := c.AddFunc(schedule, s.runSweep); err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalidSchedule, schedule, err)
	}

	logger.Info("Scheduler: deadline sweep scheduled at %q (%s)", schedule, location)
	return s, nil
}

// Start запускает планировщик в фоне
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop останавливает планировщик и ждет завершения текущего запуска
func (s *Scheduler) Stop(ctx context.Context) error {
	done := s.cron.Stop()
	select {
	case <-done.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Scheduler) runSweep() {
	ctx, cancel := context.WithTimeout(context.Background(), sweepTimeout)
	defer cancel()

	if _, err := s.sweeper.Run(ctx); err != nil {
		s.logger.Error("Scheduler: deadline sweep failed: %v", err)
	}
}

// cronLogger адаптер логгера для robfig/cron
type cronLogger struct {
	logger Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Info("cron: %s %v", msg, keysAndValues)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Error("cron: %s: %v %v", msg, err, keysAndValues)
}
