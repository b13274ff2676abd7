package schedule_replacer_service

import (
	"context"
	"log/slog"

	"github.com/N08I40K/schedule-parser-next/domain/app"
)

type ScheduleReplacerService struct {
	store       app.OverrideStore
	fetcher     app.SourceFetcher
	invalidator app.CacheInvalidator
	log         *slog.Logger
}

var _ app.ScheduleReplacerService = &ScheduleReplacerService{}

func New(store app.OverrideStore, fetcher app.SourceFetcher, invalidator app.CacheInvalidator, log *slog.Logger) *ScheduleReplacerService {
	return &ScheduleReplacerService{store, fetcher, invalidator, log}
}

// SetForCurrent подменяет файл для текущего etag источника
func (this *ScheduleReplacerService) SetForCurrent(ctx context.Context, data []byte) (*app.ScheduleReplacerInfo, error) {
	if len(data) == 0 {
		return nil, app.ErrEmptyOverride
	}

	meta, err := this.fetcher.Probe(ctx)
	if err != nil {
		return nil, err
	}

	ov, err := this.store.Set(ctx, meta.ContentID, data)
	if err != nil {
		return nil, err
	}
	this.invalidator.InvalidateAll(ctx)

	this.log.Info("schedule override uploaded", "etag", ov.Etag, "id", ov.ID, "size", ov.Size)
	return &app.ScheduleReplacerInfo{ID: ov.ID, Etag: ov.Etag, Size: ov.Size}, nil
}

func (this *ScheduleReplacerService) List(ctx context.Context) ([]app.ScheduleReplacerInfo, error) {
	overrides, err := this.store.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]app.ScheduleReplacerInfo, 0, len(overrides))
	for _, ov := range overrides {
		out = append(out, app.ScheduleReplacerInfo{ID: ov.ID, Etag: ov.Etag, Size: ov.Size})
	}
	return out, nil
}

func (this *ScheduleReplacerService) Clear(ctx context.Context) (*app.ClearScheduleReplacerResponse, error) {
	count, err := this.store.Clear(ctx)
	if err != nil {
		return nil, err
	}
	this.invalidator.InvalidateAll(ctx)

	this.log.Info("schedule overrides cleared", "count", count)
	return &app.ClearScheduleReplacerResponse{Count: count}, nil
}
