package app

import (
	"context"
	"time"
)

// ScheduleParser разбор файла расписания в группы и преподавателей.
// previous - прошлый результат для поиска изменившихся дней, может быть nil.
type ScheduleParser interface {
	Parse(ctx context.Context, file []byte, previous *IngestResult) (*IngestResult, error)
}

// SourceMeta метаданные файла без тела
type SourceMeta struct {
	ContentID   string
	UploadedAt  time.Time
	RequestedAt time.Time
}

type SourceFetcher interface {
	Probe(ctx context.Context) (*SourceMeta, error)
	Download(ctx context.Context) ([]byte, error)
	SetURL(ctx context.Context, url string) error
	URL() string
}

// Override файл, загруженный администратором вместо файла с сайта
type Override struct {
	ID        string
	Etag      string
	Data      []byte
	Size      int
	CreatedAt time.Time
}

type OverrideStore interface {
	// Lookup возвращает nil без ошибки, если подмены нет
	Lookup(ctx context.Context, etag string) (*Override, error)
	Has(ctx context.Context, etag string) (bool, error)
	Set(ctx context.Context, etag string, data []byte) (*Override, error)
	Clear(ctx context.Context) (int64, error)
	List(ctx context.Context) ([]Override, error)
}

// MemoCache кеш готовых ответов. ttl == 0 - без срока жизни.
type MemoCache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Reset(ctx context.Context) error
}

// MemoCacheFactory отдельный кеш на каждую проекцию, Reset одной не трогает другую
type MemoCacheFactory interface {
	Namespace(name string) MemoCache
}

type NotificationDispatcher interface {
	SendByTopic(ctx context.Context, topic string, payload map[string]string) error
}

// CacheInvalidator сбрасывает кеши всех проекций расписания
type CacheInvalidator interface {
	InvalidateAll(ctx context.Context)
}

type ScheduleService interface {
	GetSchedule(ctx context.Context) (*ScheduleResponse, error)
	GetGroup(ctx context.Context, name string) (*GroupScheduleResponse, error)
	GetGroupNames(ctx context.Context) (*NamesResponse, error)
	GetTeacher(ctx context.Context, name string) (*TeacherScheduleResponse, error)
	GetTeacherNames(ctx context.Context) (*NamesResponse, error)
	GetCacheStatus() CacheStatus
	UpdateDownloadURL(ctx context.Context, url string) (CacheStatus, error)
	RefreshCache(ctx context.Context) error
}

type LegacyScheduleService interface {
	GetSchedule(ctx context.Context) (*LegacyScheduleResponse, error)
	GetGroup(ctx context.Context, name string) (*LegacyGroupScheduleResponse, error)
	GetGroupNames(ctx context.Context) (*NamesResponse, error)
	GetCacheStatus() CacheStatus
}

type ScheduleReplacerService interface {
	SetForCurrent(ctx context.Context, data []byte) (*ScheduleReplacerInfo, error)
	List(ctx context.Context) ([]ScheduleReplacerInfo, error)
	Clear(ctx context.Context) (*ClearScheduleReplacerResponse, error)
}
