package schedule_service

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/N08I40K/schedule-parser-next/domain/app"
)

type TTLConfig struct {
	Names time.Duration
	Tree  time.Duration
}

// ScheduleService текущий (v2) формат расписания
type ScheduleService struct {
	ctl     *Controller
	memo    app.MemoCache
	fetcher app.SourceFetcher
	bus     *InvalidationBus
	ttl     TTLConfig
	log     *slog.Logger
}

var _ app.ScheduleService = &ScheduleService{}

func NewScheduleService(
	ctl *Controller,
	memo app.MemoCache,
	fetcher app.SourceFetcher,
	bus *InvalidationBus,
	ttl TTLConfig,
	log *slog.Logger,
) *ScheduleService {
	return &ScheduleService{ctl, memo, fetcher, bus, ttl, log}
}

func (this *ScheduleService) GetSchedule(ctx context.Context) (*app.ScheduleResponse, error) {
	return memoized(ctx, this.ctl, this.memo, this.log, keySchedule, this.ttl.Tree,
		func(res *app.IngestResult) (*app.ScheduleResponse, error) {
			return &app.ScheduleResponse{
				UpdatedAt:     res.DownloadedAt,
				Etag:          res.SourceTag,
				Groups:        res.Groups,
				UpdatedGroups: res.ChangedGroupDays,
			}, nil
		})
}

func (this *ScheduleService) GetGroup(ctx context.Context, name string) (*app.GroupScheduleResponse, error) {
	return memoized(ctx, this.ctl, this.memo, this.log, keyGroup+name, this.ttl.Tree,
		func(res *app.IngestResult) (*app.GroupScheduleResponse, error) {
			group, ok := res.Groups[name]
			if !ok {
				return nil, fmt.Errorf("%w: %q", app.ErrUnknownGroup, name)
			}
			return &app.GroupScheduleResponse{
				UpdatedAt: res.DownloadedAt,
				Group:     group,
				Updated:   changedOrEmpty(res.ChangedGroupDays, name),
			}, nil
		})
}

func (this *ScheduleService) GetGroupNames(ctx context.Context) (*app.NamesResponse, error) {
	return memoized(ctx, this.ctl, this.memo, this.log, keyGroupNames, this.ttl.Names,
		func(res *app.IngestResult) (*app.NamesResponse, error) {
			return &app.NamesResponse{Names: sorted(res.GroupNames())}, nil
		})
}

func (this *ScheduleService) GetTeacher(ctx context.Context, name string) (*app.TeacherScheduleResponse, error) {
	return memoized(ctx, this.ctl, this.memo, this.log, keyTeacher+name, this.ttl.Tree,
		func(res *app.IngestResult) (*app.TeacherScheduleResponse, error) {
			teacher, ok := res.Teachers[name]
			if !ok {
				return nil, fmt.Errorf("%w: %q", app.ErrUnknownTeacher, name)
			}
			return &app.TeacherScheduleResponse{
				UpdatedAt: res.DownloadedAt,
				Teacher:   teacher,
				Updated:   changedOrEmpty(res.ChangedTeacherDays, name),
			}, nil
		})
}

func (this *ScheduleService) GetTeacherNames(ctx context.Context) (*app.NamesResponse, error) {
	return memoized(ctx, this.ctl, this.memo, this.log, keyTeacherNames, this.ttl.Names,
		func(res *app.IngestResult) (*app.NamesResponse, error) {
			return &app.NamesResponse{Names: sorted(res.TeacherNames())}, nil
		})
}

func (this *ScheduleService) GetCacheStatus() app.CacheStatus {
	return this.ctl.Status()
}

// UpdateDownloadURL новая ссылка проверяется запросом к источнику, затем сбрасываются все проекции
func (this *ScheduleService) UpdateDownloadURL(ctx context.Context, url string) (app.CacheStatus, error) {
	if err := this.fetcher.SetURL(ctx, url); err != nil {
		return app.CacheStatus{}, err
	}
	this.bus.InvalidateAll(ctx)

	this.log.Info("schedule download url updated", "url", url)
	return this.ctl.Status(), nil
}

func (this *ScheduleService) RefreshCache(ctx context.Context) error {
	this.ctl.Invalidate(ctx)
	_, err := this.ctl.ResolveCurrent(ctx)
	return err
}

func changedOrEmpty(changes map[string][]int, name string) []int {
	if days, ok := changes[name]; ok && days != nil {
		return days
	}
	return []int{}
}

func sorted(names []string) []string {
	sort.Strings(names)
	return names
}
