package scheduler

import "errors"

var (
	// ErrInvalidSchedule возвращается при некорректном cron выражении
	ErrInvalidSchedule = errors.New("scheduler: invalid cron schedule")

	// ErrSweep возвращается при ошибке чтения данных для сводки
	ErrSweep = errors.New("scheduler: deadline sweep failed")
)
