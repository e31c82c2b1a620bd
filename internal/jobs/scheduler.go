// Package jobs runs the periodic background work: the due-reminder
// dispatch and the bulk score recompute.
package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/ecosphere/ecosphere-api/internal/core/ports"
)

const (
	jobDispatchReminders = "dispatch_reminders"
	jobRecomputeScores   = "recompute_scores"

	// Lock TTLs stay well under each job's cadence so a crashed holder
	// never blocks the next window.
	dispatchLockTTL  = 30 * time.Minute
	recomputeLockTTL = time.Hour
)

// Locker serialises job runs across instances. Acquire returns false
// when another instance holds the lock.
type Locker interface {
	Acquire(ctx context.Context, name string, ttl time.Duration) (bool, error)
	Release(ctx context.Context, name string) error
}

// Config carries the cron expressions for both jobs.
type Config struct {
	ReminderSpec  string
	RecomputeSpec string
}

// Scheduler wires the periodic jobs onto a cron runner.
type Scheduler struct {
	cron      *cron.Cron
	reminders ports.ReminderService
	recompute ports.RecomputeService
	lock      Locker
	logger    zerolog.Logger
}

func NewScheduler(reminders ports.ReminderService, recompute ports.RecomputeService, lock Locker, logger zerolog.Logger) *Scheduler {
	return &Scheduler{
		cron:      cron.New(),
		reminders: reminders,
		recompute: recompute,
		lock:      lock,
		logger:    logger,
	}
}

// Start registers both jobs and starts the cron runner.
func (s *Scheduler) Start(ctx context.Context, cfg Config) error {
	if _, err := s.cron.AddFunc(cfg.ReminderSpec, func() {
		s.runLocked(ctx, jobDispatchReminders, dispatchLockTTL, s.dispatchReminders)
	}); err != nil {
		return err
	}

	if _, err := s.cron.AddFunc(cfg.RecomputeSpec, func() {
		s.runLocked(ctx, jobRecomputeScores, recomputeLockTTL, s.recomputeScores)
	}); err != nil {
		return err
	}

	s.cron.Start()
	s.logger.Info().
		Str("reminder_spec", cfg.ReminderSpec).
		Str("recompute_spec", cfg.RecomputeSpec).
		Msg("job scheduler started")
	return nil
}

// Stop halts the cron runner and waits for in-flight jobs to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.logger.Info().Msg("job scheduler stopped")
}

func (s *Scheduler) runLocked(ctx context.Context, name string, ttl time.Duration, job func(context.Context)) {
	if s.lock != nil {
		ok, err := s.lock.Acquire(ctx, name, ttl)
		if err != nil {
			s.logger.Error().Err(err).Str("job", name).Msg("job lock failed")
			return
		}
		if !ok {
			s.logger.Debug().Str("job", name).Msg("job held by another instance")
			return
		}
		defer func() {
			if err := s.lock.Release(ctx, name); err != nil {
				s.logger.Warn().Err(err).Str("job", name).Msg("job lock release failed")
			}
		}()
	}

	job(ctx)
}

func (s *Scheduler) dispatchReminders(ctx context.Context) {
	result, err := s.reminders.DispatchDue(ctx, time.Now().UTC())
	if err != nil {
		s.logger.Error().Err(err).Msg("reminder dispatch failed")
		return
	}
	s.logger.Info().
		Int("delivered", result.Delivered).
		Int("notified", result.Notified).
		Msg(result.Summary())
}

func (s *Scheduler) recomputeScores(ctx context.Context) {
	n, err := s.recompute.Run(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("score recompute failed")
		return
	}
	s.logger.Info().Int("users", n).Msg("score recompute finished")
}
