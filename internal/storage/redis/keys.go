package redis

import (
	"context"
	"fmt"
	"time"

	"interview-tracker/internal/models"
)

const (
	ResumeCacheTTL       = 24 * time.Hour
	ScheduleListCacheTTL = 5 * time.Minute
	ReminderMarkerTTL    = 48 * time.Hour
	RendererStatusTTL    = 1 * time.Minute
)

func ResumeKey(resumeID string) string {
	return fmt.Sprintf("resume:%s", resumeID)
}

func ScheduleListKey(profileName string) string {
	return fmt.Sprintf("schedules:%s", profileName)
}

func ReminderKey(key models.ScheduleKey, datetime string) string {
	return fmt.Sprintf("reminder:%s:%s", key.String(), datetime)
}

func RendererStatusKey() string {
	return "renderer:status"
}

func (c *Cache) GetCachedResume(ctx context.Context, resumeID string) (models.RawJSON, error) {
	var body models.RawJSON
	if err := c.Get(ctx, ResumeKey(resumeID), &body); err != nil {
		return nil, err
	}
	return body, nil
}

func (c *Cache) CacheResume(ctx context.Context, resumeID string, body models.RawJSON) error {
	return c.Set(ctx, ResumeKey(resumeID), body, ResumeCacheTTL)
}

func (c *Cache) GetCachedScheduleList(ctx context.Context, profileName string) ([]models.Schedule, error) {
	var schedules []models.Schedule
	if err := c.Get(ctx, ScheduleListKey(profileName), &schedules); err != nil {
		return nil, err
	}
	return schedules, nil
}

func (c *Cache) CacheScheduleList(ctx context.Context, profileName string, schedules []models.Schedule) error {
	return c.Set(ctx, ScheduleListKey(profileName), schedules, ScheduleListCacheTTL)
}

// InvalidateScheduleList drops the cached list after any write to a profile's
// schedules.
func (c *Cache) InvalidateScheduleList(ctx context.Context, profileName string) error {
	return c.Delete(ctx, ScheduleListKey(profileName))
}

// ClaimReminder marks one interview occurrence as reminded. Only the first
// caller gets true, so duplicate reminders are not sent.
func (c *Cache) ClaimReminder(ctx context.Context, key models.ScheduleKey, datetime string) (bool, error) {
	return c.SetOnce(ctx, ReminderKey(key, datetime), ReminderMarkerTTL)
}

func (c *Cache) SetRendererStatus(ctx context.Context, status string) error {
	return c.SetString(ctx, RendererStatusKey(), status, RendererStatusTTL)
}

func (c *Cache) GetRendererStatus(ctx context.Context) (string, error) {
	return c.GetString(ctx, RendererStatusKey())
}
