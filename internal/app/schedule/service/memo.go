package schedule_service

import (
	"context"
	"log/slog"
	"time"

	"github.com/N08I40K/schedule-parser-next/domain/app"
)

const (
	keySchedule     = "schedule"
	keyGroupNames   = "group-names"
	keyTeacherNames = "teacher-names"
	keyGroup        = "group:"
	keyTeacher      = "teacher:"
)

// memoized ответ из кеша, пока источник не пора перепроверять; иначе через ResolveCurrent.
// Ошибки кеша не фатальны, только пишутся в лог.
func memoized[T any](
	ctx context.Context,
	ctl *Controller,
	memo app.MemoCache,
	log *slog.Logger,
	key string,
	ttl time.Duration,
	build func(*app.IngestResult) (T, error),
) (T, error) {
	var cached T
	if !ctl.UpdateRequired() {
		ok, err := memo.Get(ctx, key, &cached)
		if err != nil {
			log.Warn("memo cache read failed", "key", key, "error", err)
		} else if ok {
			return cached, nil
		}
	}

	var zero T

	result, err := ctl.ResolveCurrent(ctx)
	if err != nil {
		return zero, err
	}

	value, err := build(result)
	if err != nil {
		return zero, err
	}

	if err := memo.Set(ctx, key, value, ttl); err != nil {
		log.Warn("memo cache write failed", "key", key, "error", err)
	}
	return value, nil
}
