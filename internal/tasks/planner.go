package tasks

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"tgclasses/internal/metrics"

	"github.com/robfig/cron/v3"
)

const purgeTimeout = 5 * time.Minute

// ClassPurger удаляет занятия, прошедшие раньше cutoff
type ClassPurger interface {
	PurgeBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// Invalidator сбрасывает кэш списка занятий
type Invalidator interface {
	Invalidate(ctx context.Context)
}

// Planner выполняет фоновые задачи обслуживания по расписанию cron.
type Planner struct {
	classes   ClassPurger
	cache     Invalidator
	retention time.Duration
	logger    *slog.Logger
	now       func() time.Time
}

func NewPlanner(classes ClassPurger, cache Invalidator, retentionDays int, logger *slog.Logger) *Planner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Planner{
		classes:   classes,
		cache:     cache,
		retention: time.Duration(retentionDays) * 24 * time.Hour,
		logger:    logger,
		now:       time.Now,
	}
}

// PurgePastClasses удаляет занятия, которые прошли больше retention назад, вместе с RSVP и вопросами.
func (p *Planner) PurgePastClasses(ctx context.Context) (int64, error) {
	cutoff := p.now().Add(-p.retention)

	n, err := p.classes.PurgeBefore(ctx, cutoff)
	if err != nil {
		p.logger.Error("Ошибка при удалении прошедших занятий", slog.Any("error", err))
		return 0, err
	}

	metrics.AddClassesPurged(n)
	if n > 0 && p.cache != nil {
		p.cache.Invalidate(ctx)
	}
	p.logger.Info("Прошедшие занятия удалены", slog.Int64("count", n), slog.Time("cutoff", cutoff))
	return n, nil
}

// Start регистрирует задачу очистки и запускает планировщик. Расписание с секундами.
func (p *Planner) Start(spec string) (*cron.Cron, error) {
	c := cron.New(cron.WithSeconds())

	_, err := c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), purgeTimeout)
		defer cancel()
		_, _ = p.PurgePastClasses(ctx)
	})
	if err != nil {
		return nil, fmt.Errorf("invalid purge schedule %q: %w", spec, err)
	}

	c.Start()
	p.logger.Info("Cron-планировщик запущен", slog.String("schedule", spec), slog.Duration("retention", p.retention))
	return c, nil
}
