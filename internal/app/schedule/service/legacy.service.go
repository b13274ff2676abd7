package schedule_service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/N08I40K/schedule-parser-next/domain/app"
)

// LegacyScheduleService старый (v1) формат: только группы, без перемен
type LegacyScheduleService struct {
	ctl  *Controller
	memo app.MemoCache
	ttl  TTLConfig
	log  *slog.Logger
}

var _ app.LegacyScheduleService = &LegacyScheduleService{}

func NewLegacyScheduleService(ctl *Controller, memo app.MemoCache, ttl TTLConfig, log *slog.Logger) *LegacyScheduleService {
	return &LegacyScheduleService{ctl, memo, ttl, log}
}

func (this *LegacyScheduleService) GetSchedule(ctx context.Context) (*app.LegacyScheduleResponse, error) {
	return memoized(ctx, this.ctl, this.memo, this.log, keySchedule, this.ttl.Tree,
		func(res *app.IngestResult) (*app.LegacyScheduleResponse, error) {
			groups := make(map[string]*app.LegacyGroup, len(res.Groups))
			for name, g := range res.Groups {
				groups[name] = toLegacyGroup(g)
			}
			return &app.LegacyScheduleResponse{
				UpdatedAt:       res.DownloadedAt,
				Groups:          groups,
				LastChangedDays: res.ChangedGroupDays,
			}, nil
		})
}

func (this *LegacyScheduleService) GetGroup(ctx context.Context, name string) (*app.LegacyGroupScheduleResponse, error) {
	return memoized(ctx, this.ctl, this.memo, this.log, keyGroup+name, this.ttl.Tree,
		func(res *app.IngestResult) (*app.LegacyGroupScheduleResponse, error) {
			g, ok := res.Groups[name]
			if !ok {
				return nil, fmt.Errorf("%w: %q", app.ErrUnknownGroup, name)
			}
			return &app.LegacyGroupScheduleResponse{
				UpdatedAt:       res.DownloadedAt,
				Group:           toLegacyGroup(g),
				LastChangedDays: changedOrEmpty(res.ChangedGroupDays, name),
			}, nil
		})
}

func (this *LegacyScheduleService) GetGroupNames(ctx context.Context) (*app.NamesResponse, error) {
	return memoized(ctx, this.ctl, this.memo, this.log, keyGroupNames, this.ttl.Names,
		func(res *app.IngestResult) (*app.NamesResponse, error) {
			return &app.NamesResponse{Names: sorted(res.GroupNames())}, nil
		})
}

func (this *LegacyScheduleService) GetCacheStatus() app.CacheStatus {
	return this.ctl.Status()
}

func toLegacyGroup(g *app.Group) *app.LegacyGroup {
	out := &app.LegacyGroup{Name: g.Name, Days: make([]app.LegacyDay, 0, len(g.Days))}

	for _, day := range g.Days {
		name := day.Name
		if day.Street != "" {
			name += " | " + day.Street
		}

		legacy := app.LegacyDay{Name: name, Date: day.Date, Lessons: []app.LegacyLesson{}}
		for _, l := range day.Lessons {
			if l.Kind == app.LessonBreak {
				continue
			}
			legacy.Lessons = append(legacy.Lessons, toLegacyLesson(l))
		}
		out.Days = append(out.Days, legacy)
	}

	return out
}

func toLegacyLesson(l app.Lesson) app.LegacyLesson {
	out := app.LegacyLesson{
		Type:         app.LegacyLessonCustom,
		DefaultIndex: -1,
		Time:         l.Time,
		Cabinets:     []string{},
		TeacherNames: []string{},
	}
	if l.Kind == app.LessonRegular {
		out.Type = app.LegacyLessonDefault
	}
	if l.Range != nil {
		out.DefaultIndex = l.Range[0]
	}
	if l.Name != nil {
		out.Name = *l.Name
	}
	for _, sg := range l.SubGroups {
		if sg.Cabinet != "" {
			out.Cabinets = append(out.Cabinets, sg.Cabinet)
		}
		if sg.Teacher != "" {
			out.TeacherNames = append(out.TeacherNames, sg.Teacher)
		}
	}
	return out
}
