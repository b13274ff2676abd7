package schedule_service

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/N08I40K/schedule-parser-next/domain/app"
	"github.com/N08I40K/schedule-parser-next/internal/metrics"
	"github.com/zeebo/xxh3"
)

const NotificationScheduleUpdate = "schedule-update"

type ControllerConfig struct {
	// Имя проекции для логов и метрик: v1, v2
	Projection      string
	InvalidateDelay time.Duration
	// Пустой topic - проекция не рассылает уведомления
	NotifyTopic string
}

// Controller условное перечитывание файла расписания для одной проекции
type Controller struct {
	cfg ControllerConfig

	fetcher   app.SourceFetcher
	overrides app.OverrideStore
	parser    app.ScheduleParser
	memo      app.MemoCache
	notifier  app.NotificationDispatcher
	bus       *InvalidationBus
	metrics   *metrics.Metrics
	log       *slog.Logger

	state *State
	now   func() time.Time
}

func NewController(
	cfg ControllerConfig,
	state *State,
	fetcher app.SourceFetcher,
	overrides app.OverrideStore,
	parser app.ScheduleParser,
	memo app.MemoCache,
	notifier app.NotificationDispatcher,
	bus *InvalidationBus,
	m *metrics.Metrics,
	log *slog.Logger,
) *Controller {
	c := &Controller{
		cfg:       cfg,
		fetcher:   fetcher,
		overrides: overrides,
		parser:    parser,
		memo:      memo,
		notifier:  notifier,
		bus:       bus,
		metrics:   m,
		log:       log.With("projection", cfg.Projection),
		state:     state,
		now:       time.Now,
	}
	bus.Subscribe(c)
	return c
}

// ResolveCurrent актуальный прогон: проверка etag, подмена, при необходимости скачивание и разбор.
// При ошибке разбора остаётся предыдущий прогон.
func (this *Controller) ResolveCurrent(ctx context.Context) (*app.IngestResult, error) {
	meta, err := this.fetcher.Probe(ctx)
	if err != nil {
		this.metrics.ObserveResolve(this.cfg.Projection, metrics.ResultProbeError)
		return nil, err
	}

	override, err := this.overrides.Lookup(ctx, meta.ContentID)
	if err != nil {
		return nil, fmt.Errorf("lookup override for %q: %w", meta.ContentID, err)
	}

	var overrideID *string
	if override != nil {
		overrideID = &override.ID
	}

	last, fresh := this.state.current()
	if fresh && last.SameSource(meta.ContentID, overrideID) {
		this.state.touch(this.now())
		this.metrics.ObserveResolve(this.cfg.Projection, metrics.ResultShortCircuit)
		this.log.Debug("schedule unchanged", "etag", meta.ContentID)
		return last, nil
	}

	started := this.now()

	var file []byte
	if override != nil {
		file = override.Data
	} else if file, err = this.fetcher.Download(ctx); err != nil {
		this.metrics.ObserveResolve(this.cfg.Projection, metrics.ResultProbeError)
		return nil, err
	}

	result, err := this.parser.Parse(ctx, file, last)
	if err != nil {
		this.metrics.ObserveResolve(this.cfg.Projection, metrics.ResultParseError)
		this.log.Error("schedule parse failed", "etag", meta.ContentID, "error", err)
		return nil, err
	}

	result.SourceTag = meta.ContentID
	result.OverrideID = overrideID
	result.DownloadedAt = meta.RequestedAt
	result.UploadedAt = meta.UploadedAt

	previous, changed := this.state.store(result, this.now())

	this.metrics.ObserveParse(this.cfg.Projection, this.now().Sub(started))
	this.metrics.ObserveResolve(this.cfg.Projection, metrics.ResultParsed)
	this.log.Info("schedule parsed",
		"etag", meta.ContentID,
		"replaced", overrideID != nil,
		"groups", len(result.Groups),
		"teachers", len(result.Teachers),
	)

	this.resetMemo(ctx)
	if this.bus.Publish(ctx, this, sourceKey(result)) {
		this.log.Debug("other projections invalidated", "etag", meta.ContentID)
	}

	if changed && previous != nil && previous.SourceTag != result.SourceTag {
		this.notifyUpdate(ctx, result)
	}

	return result, nil
}

// Invalidate сброс своей проекции: кеш очищается, следующий запрос перечитает файл
func (this *Controller) Invalidate(ctx context.Context) {
	this.SilentInvalidate(ctx)
}

func (this *Controller) SilentInvalidate(ctx context.Context) {
	this.resetMemo(ctx)
	this.state.markStale()
}

func (this *Controller) resetMemo(ctx context.Context) {
	if err := this.memo.Reset(ctx); err != nil {
		this.log.Warn("memo cache reset failed", "error", err)
	}
}

func (this *Controller) notifyUpdate(ctx context.Context, result *app.IngestResult) {
	if this.cfg.NotifyTopic == "" || this.notifier == nil {
		return
	}

	err := this.notifier.SendByTopic(ctx, this.cfg.NotifyTopic, map[string]string{
		"type":     NotificationScheduleUpdate,
		"replaced": strconv.FormatBool(result.OverrideID != nil),
		"etag":     result.SourceTag,
	})
	this.metrics.ObserveNotification(NotificationScheduleUpdate, err)
	if err != nil {
		this.log.Warn("schedule update notification failed", "error", err)
	}
}

// UpdateRequired прошло больше InvalidateDelay с последней проверки источника
func (this *Controller) UpdateRequired() bool {
	return this.updateRequired(this.state.snapshot())
}

func (this *Controller) updateRequired(snap stateSnapshot) bool {
	return snap.last == nil || this.now().Sub(snap.lastCacheUpdate) > this.cfg.InvalidateDelay
}

func (this *Controller) Status() app.CacheStatus {
	snap := this.state.snapshot()

	status := app.CacheStatus{
		CacheUpdateRequired: this.updateRequired(snap),
		LastCacheUpdate:     unixMilli(snap.lastCacheUpdate),
		LastScheduleUpdate:  unixMilli(snap.lastScheduleUpdate),
	}
	if snap.last != nil {
		status.CacheHash = strconv.FormatUint(xxh3.HashString(sourceKey(snap.last)), 16)
	}
	return status
}

// sourceKey etag и идентификатор подмены одной строкой
func sourceKey(r *app.IngestResult) string {
	if r.OverrideID == nil {
		return r.SourceTag
	}
	return r.SourceTag + "|" + *r.OverrideID
}

func unixMilli(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixMilli()
}
