package schedule_service

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/N08I40K/schedule-parser-next/domain/app"
	"github.com/N08I40K/schedule-parser-next/internal/cache"
	"github.com/N08I40K/schedule-parser-next/internal/metrics"
)

type fakeFetcher struct {
	mu        sync.Mutex
	url       string
	etag      string
	body      string
	probeErr  error
	probes    int
	downloads int
}

func (f *fakeFetcher) Probe(context.Context) (*app.SourceMeta, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.probes++
	if f.probeErr != nil {
		return nil, f.probeErr
	}
	return &app.SourceMeta{ContentID: f.etag, UploadedAt: time.Unix(100, 0), RequestedAt: time.Unix(200, 0)}, nil
}

func (f *fakeFetcher) Download(context.Context) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.downloads++
	return []byte(f.body), nil
}

func (f *fakeFetcher) SetURL(_ context.Context, url string) error {
	f.mu.Lock()
	f.url = url
	f.mu.Unlock()
	return nil
}

func (f *fakeFetcher) URL() string { return f.url }

func (f *fakeFetcher) publish(etag, body string) {
	f.mu.Lock()
	f.etag, f.body = etag, body
	f.mu.Unlock()
}

type fakeOverrides struct {
	byEtag map[string]*app.Override
}

func (o *fakeOverrides) Lookup(_ context.Context, etag string) (*app.Override, error) {
	return o.byEtag[etag], nil
}

func (o *fakeOverrides) Has(_ context.Context, etag string) (bool, error) {
	_, ok := o.byEtag[etag]
	return ok, nil
}

func (o *fakeOverrides) Set(_ context.Context, etag string, data []byte) (*app.Override, error) {
	if o.byEtag == nil {
		o.byEtag = map[string]*app.Override{}
	}
	ov := &app.Override{ID: "override-" + etag + "-" + string(data), Etag: etag, Data: data, Size: len(data)}
	o.byEtag[etag] = ov
	return ov, nil
}

func (o *fakeOverrides) Clear(context.Context) (int64, error) {
	n := int64(len(o.byEtag))
	o.byEtag = nil
	return n, nil
}

func (o *fakeOverrides) List(context.Context) ([]app.Override, error) {
	out := make([]app.Override, 0, len(o.byEtag))
	for _, ov := range o.byEtag {
		out = append(out, *ov)
	}
	return out, nil
}

// fakeParser строит одну группу с одним занятием, название занятия - содержимое файла
type fakeParser struct {
	mu       sync.Mutex
	calls    int
	previous []*app.IngestResult
	failWith error
}

func (p *fakeParser) Parse(_ context.Context, file []byte, previous *app.IngestResult) (*app.IngestResult, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls++
	p.previous = append(p.previous, previous)
	if p.failWith != nil {
		return nil, p.failWith
	}

	name := string(file)
	start := time.Date(2024, 11, 11, 8, 30, 0, 0, time.UTC)
	r := [2]int{1, 1}
	group := &app.Group{Name: "ИС-21", Days: []app.Day{{
		Name:   "Понедельник",
		Street: "Лермонтова, 12",
		Date:   time.Date(2024, 11, 11, 0, 0, 0, 0, time.UTC),
		Lessons: []app.Lesson{
			{
				Kind:      app.LessonRegular,
				Range:     &r,
				Name:      &name,
				Time:      app.LessonTime{Start: start, End: start.Add(80 * time.Minute)},
				SubGroups: []app.SubGroup{{Number: 1, Teacher: "Иванов А.А.", Cabinet: "42"}},
			},
			{
				Kind: app.LessonBreak,
				Time: app.LessonTime{Start: start.Add(80 * time.Minute), End: start.Add(90 * time.Minute)},
			},
		},
	}}}

	return &app.IngestResult{
		Groups:             map[string]*app.Group{"ИС-21": group},
		Teachers:           map[string]*app.Teacher{"Иванов А.А.": {Name: "Иванов А.А.", Days: group.Days}},
		ChangedGroupDays:   map[string][]int{},
		ChangedTeacherDays: map[string][]int{},
	}, nil
}

type sentNotification struct {
	topic   string
	payload map[string]string
}

type fakeNotifier struct {
	mu   sync.Mutex
	sent []sentNotification
}

func (n *fakeNotifier) SendByTopic(_ context.Context, topic string, payload map[string]string) error {
	n.mu.Lock()
	n.sent = append(n.sent, sentNotification{topic, payload})
	n.mu.Unlock()
	return nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// env две проекции над одним источником, как в приложении
type env struct {
	fetcher   *fakeFetcher
	overrides *fakeOverrides
	parser    *fakeParser
	notifier  *fakeNotifier
	caches    *cache.MemoryStore
	bus       *InvalidationBus

	current *Controller
	legacy  *Controller
	now     time.Time
}

func newEnv(t *testing.T) *env {
	t.Helper()

	e := &env{
		fetcher:   &fakeFetcher{url: "https://example.com/s.xls", etag: "etag-1", body: "Физика"},
		overrides: &fakeOverrides{},
		parser:    &fakeParser{},
		notifier:  &fakeNotifier{},
		caches:    cache.NewMemory(),
		bus:       NewInvalidationBus(),
		now:       time.Date(2024, 11, 11, 7, 0, 0, 0, time.UTC),
	}
	m := metrics.New()
	clock := func() time.Time { return e.now }

	e.current = NewController(
		ControllerConfig{Projection: "v2", InvalidateDelay: 5 * time.Minute, NotifyTopic: "common"},
		NewState(), e.fetcher, e.overrides, e.parser, e.caches.Namespace("v2"), e.notifier, e.bus, m, discardLogger(),
	)
	e.current.now = clock

	e.legacy = NewController(
		ControllerConfig{Projection: "v1", InvalidateDelay: 5 * time.Minute},
		NewState(), e.fetcher, e.overrides, e.parser, e.caches.Namespace("v1"), nil, e.bus, m, discardLogger(),
	)
	e.legacy.now = clock

	return e
}
