package schedule_service

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/N08I40K/schedule-parser-next/domain/app"
)

var testTTL = TTLConfig{Names: 24 * time.Hour}

func TestScheduleServiceServesFromMemo(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	svc := NewScheduleService(e.current, e.caches.Namespace("v2"), e.fetcher, e.bus, testTTL, discardLogger())

	names, err := svc.GetGroupNames(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(names.Names, []string{"ИС-21"}) {
		t.Errorf("names = %v", names.Names)
	}

	group, err := svc.GetGroup(ctx, "ИС-21")
	if err != nil {
		t.Fatal(err)
	}
	probes := e.fetcher.probes

	cached, err := svc.GetGroup(ctx, "ИС-21")
	if err != nil {
		t.Fatal(err)
	}
	if e.fetcher.probes != probes {
		t.Error("memo hit must not probe the source")
	}
	if !reflect.DeepEqual(cached.Group.Days[0].Lessons[0].Kind, group.Group.Days[0].Lessons[0].Kind) ||
		*cached.Group.Days[0].Lessons[0].Name != "Физика" {
		t.Errorf("cached group = %+v", cached.Group)
	}
	if cached.Updated == nil || len(cached.Updated) != 0 {
		t.Errorf("updated = %v", cached.Updated)
	}
}

func TestScheduleServiceLookupMisses(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	svc := NewScheduleService(e.current, e.caches.Namespace("v2"), e.fetcher, e.bus, testTTL, discardLogger())

	if _, err := svc.GetGroup(ctx, "НЕТ-99"); !errors.Is(err, app.ErrUnknownGroup) {
		t.Errorf("group err = %v", err)
	}
	if _, err := svc.GetTeacher(ctx, "Никто Н.Н."); !errors.Is(err, app.ErrUnknownTeacher) {
		t.Errorf("teacher err = %v", err)
	}

	teacher, err := svc.GetTeacher(ctx, "Иванов А.А.")
	if err != nil || teacher.Teacher.Name != "Иванов А.А." {
		t.Errorf("teacher = %+v, %v", teacher, err)
	}
}

func TestUpdateDownloadURLResetsBothProjections(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	svc := NewScheduleService(e.current, e.caches.Namespace("v2"), e.fetcher, e.bus, testTTL, discardLogger())

	_, _ = e.current.ResolveCurrent(ctx)
	_, _ = e.legacy.ResolveCurrent(ctx)
	calls := e.parser.calls

	if _, err := svc.UpdateDownloadURL(ctx, "https://example.com/new.xls"); err != nil {
		t.Fatal(err)
	}
	if e.fetcher.URL() != "https://example.com/new.xls" {
		t.Errorf("url = %q", e.fetcher.URL())
	}

	_, _ = e.current.ResolveCurrent(ctx)
	_, _ = e.legacy.ResolveCurrent(ctx)
	if e.parser.calls != calls+2 {
		t.Errorf("parser calls = %d, want %d", e.parser.calls, calls+2)
	}
}

func TestLegacyScheduleService(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	svc := NewLegacyScheduleService(e.legacy, e.caches.Namespace("v1"), testTTL, discardLogger())

	res, err := svc.GetGroup(ctx, "ИС-21")
	if err != nil {
		t.Fatal(err)
	}

	day := res.Group.Days[0]
	if day.Name != "Понедельник | Лермонтова, 12" {
		t.Errorf("day name = %q", day.Name)
	}
	if len(day.Lessons) != 1 {
		t.Fatalf("breaks must be dropped: %+v", day.Lessons)
	}

	l := day.Lessons[0]
	if l.Type != app.LegacyLessonDefault || l.DefaultIndex != 1 || l.Name != "Физика" {
		t.Errorf("lesson = %+v", l)
	}
	if !reflect.DeepEqual(l.Cabinets, []string{"42"}) || !reflect.DeepEqual(l.TeacherNames, []string{"Иванов А.А."}) {
		t.Errorf("lesson subgroups = %+v", l)
	}

	if _, err := svc.GetGroup(ctx, "НЕТ-99"); !errors.Is(err, app.ErrUnknownGroup) {
		t.Errorf("err = %v", err)
	}
}
