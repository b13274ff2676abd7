package schedule_parser_service

import (
	"context"
	"log/slog"
	"time"

	"github.com/N08I40K/schedule-parser-next/domain/app"
)

type ScheduleParserService struct {
	log *slog.Logger
	loc *time.Location
}

var _ app.ScheduleParser = &ScheduleParserService{}

func New(log *slog.Logger, loc *time.Location) *ScheduleParserService {
	if loc == nil {
		loc = time.UTC
	}
	return &ScheduleParserService{log, loc}
}

// Parse полный прогон: скелет, слоты, занятия, преподаватели, изменения.
// Метаданные источника (etag, время загрузки) заполняет вызывающий.
func (this *ScheduleParserService) Parse(ctx context.Context, file []byte, previous *app.IngestResult) (*app.IngestResult, error) {
	started := time.Now()

	grid, err := OpenGrid(file)
	if err != nil {
		return nil, err
	}

	groups, err := this.assemble(ctx, grid)
	if err != nil {
		return nil, err
	}

	teachers := buildTeachers(groups)

	result := &app.IngestResult{
		Groups:             groups,
		Teachers:           teachers,
		ChangedGroupDays:   map[string][]int{},
		ChangedTeacherDays: map[string][]int{},
	}
	if previous != nil {
		result.ChangedGroupDays = changedDays(groupDays(previous.Groups), groupDays(groups))
		result.ChangedTeacherDays = changedDays(teacherDays(previous.Teachers), teacherDays(teachers))
	}

	this.log.Debug("schedule parsed",
		"groups", len(groups),
		"teachers", len(teachers),
		"duration", time.Since(started),
	)

	return result, nil
}

func (this *ScheduleParserService) assemble(ctx context.Context, grid *Grid) (map[string]*app.Group, error) {
	sk := locateSkeleton(grid)
	groups := make(map[string]*app.Group, len(sk.groups))
	if len(sk.groups) == 0 {
		return groups, nil
	}

	type dayTemplate struct {
		name  string
		date  time.Time
		slots []timeSlot
	}

	// слоты считаются один раз на день и переиспользуются всеми группами
	templates := make([]dayTemplate, 0, len(sk.days))
	var prevDate time.Time
	for _, block := range sk.days {
		name, date := parseDayLabel(block.Text, prevDate, this.loc)
		prevDate = date

		slots, err := resolveTimeSlots(grid, block, date)
		if err != nil {
			return nil, err
		}
		templates = append(templates, dayTemplate{name, date, slots})
	}

	for _, anchor := range sk.groups {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		group := &app.Group{Name: anchor.Text, Days: make([]app.Day, 0, len(templates))}

		for _, tpl := range templates {
			day := app.Day{Name: tpl.name, Date: tpl.date, Lessons: []app.Lesson{}}

			for _, slot := range tpl.slots {
				var previous *app.Lesson
				if n := len(day.Lessons); n > 0 {
					previous = &day.Lessons[n-1]
				}

				cell, err := extractLesson(grid, tpl.slots, slot, anchor.Column, previous)
				if err != nil {
					return nil, err
				}
				if cell.street != "" {
					day.Street = cell.street
				}
				day.Lessons = append(day.Lessons, cell.lessons...)
			}

			group.Days = append(group.Days, day)
		}

		groups[group.Name] = group
	}

	return groups, nil
}
