// Package notify sends Telegram reminders for upcoming interviews.
package notify

import (
	"context"
	"time"

	"interview-tracker/internal/civiltime"
	"interview-tracker/internal/config"
	"interview-tracker/internal/models"
	"interview-tracker/internal/storage/postgres"
	"interview-tracker/internal/storage/redis"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// Reminder periodically scans schedules and posts a message for every
// scheduled interview entering the lead window. Redis markers make each
// occurrence fire at most once.
type Reminder struct {
	bot    *tele.Bot
	store  *postgres.Store
	cache  *redis.Cache
	config *config.Config
	logger *zap.Logger
}

func New(
	bot *tele.Bot,
	store *postgres.Store,
	cache *redis.Cache,
	cfg *config.Config,
	logger *zap.Logger,
) *Reminder {
	return &Reminder{
		bot:    bot,
		store:  store,
		cache:  cache,
		config: cfg,
		logger: logger,
	}
}

func (r *Reminder) Start(ctx context.Context) {
	ticker := time.NewTicker(r.config.ReminderInterval)
	defer ticker.Stop()

	r.logger.Info("interview reminder started",
		zap.Duration("interval", r.config.ReminderInterval),
		zap.Duration("lead", r.config.ReminderLead),
	)

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("interview reminder stopped")
			return
		case <-ticker.C:
			r.checkUpcoming(ctx)
		}
	}
}

func (r *Reminder) checkUpcoming(ctx context.Context) {
	dbCtx, cancel := context.WithTimeout(ctx, 1*time.Minute)
	defer cancel()

	schedules, err := r.store.ListSchedules(dbCtx, postgres.ScheduleFilter{})
	if err != nil {
		r.logger.Error("failed to list schedules for reminders", zap.Error(err))
		return
	}

	upcoming := Upcoming(schedules, time.Now(), r.config.ReminderLead)
	if len(upcoming) == 0 {
		r.logger.Debug("no upcoming interviews")
		return
	}

	for _, sched := range upcoming {
		claimed, err := r.cache.ClaimReminder(dbCtx, sched.Key(), sched.InterviewDatetime)
		if err != nil {
			r.logger.Error("failed to claim reminder",
				zap.String("key", sched.Key().String()),
				zap.Error(err),
			)
			continue
		}
		if !claimed {
			continue
		}

		recipient := &tele.Chat{ID: r.config.TelegramChatID}
		if _, err := r.bot.Send(recipient, FormatReminder(&sched), tele.ModeMarkdown); err != nil {
			r.logger.Error("failed to send reminder",
				zap.String("key", sched.Key().String()),
				zap.Error(err),
			)
			continue
		}

		r.logger.Info("reminder sent",
			zap.String("key", sched.Key().String()),
			zap.String("interview_datetime", sched.InterviewDatetime),
		)
	}
}

// Upcoming keeps scheduled interviews whose parsed start falls inside
// (now, now+lead]. Unparseable datetimes and non-scheduled statuses are
// skipped.
func Upcoming(schedules []models.Schedule, now time.Time, lead time.Duration) []models.Schedule {
	var out []models.Schedule
	for _, sched := range schedules {
		if sched.Status != models.StatusScheduled {
			continue
		}
		start, ok := civiltime.Parse(sched.InterviewDatetime)
		if !ok {
			continue
		}
		if start.After(now) && !start.After(now.Add(lead)) {
			out = append(out, sched)
		}
	}
	return out
}
