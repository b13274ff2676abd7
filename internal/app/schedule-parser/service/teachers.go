package schedule_parser_service

import (
	"sort"
	"time"

	"github.com/N08I40K/schedule-parser-next/domain/app"
)

// buildTeachers выворачивает расписание групп в расписание преподавателей.
// Берутся только обычные пары, у каждого занятия проставляется группа.
func buildTeachers(groups map[string]*app.Group) map[string]*app.Teacher {
	type teacherDays struct {
		days  map[time.Time]*app.Day
		order []time.Time
	}
	index := make(map[string]*teacherDays)

	for _, group := range groups {
		for _, day := range group.Days {
			for _, lesson := range day.Lessons {
				if lesson.Kind != app.LessonRegular {
					continue
				}

				seen := make(map[string]struct{}, len(lesson.SubGroups))
				for _, sg := range lesson.SubGroups {
					// заглушка ошибки расписания не преподаватель
					if sg.Teacher == "" || sg.Teacher == ScheduleErrorTeacher {
						continue
					}
					if _, dup := seen[sg.Teacher]; dup {
						continue
					}
					seen[sg.Teacher] = struct{}{}

					td, ok := index[sg.Teacher]
					if !ok {
						td = &teacherDays{days: make(map[time.Time]*app.Day)}
						index[sg.Teacher] = td
					}

					key := day.Date
					target, ok := td.days[key]
					if !ok {
						target = &app.Day{Name: day.Name, Street: day.Street, Date: day.Date}
						td.days[key] = target
						td.order = append(td.order, key)
					}

					l := lesson.Clone()
					l.Group = group.Name
					target.Lessons = append(target.Lessons, l)
				}
			}
		}
	}

	teachers := make(map[string]*app.Teacher, len(index))
	for name, td := range index {
		sort.Slice(td.order, func(i, j int) bool { return td.order[i].Before(td.order[j]) })

		teacher := &app.Teacher{Name: name, Days: make([]app.Day, 0, len(td.order))}
		for _, key := range td.order {
			day := td.days[key]
			sort.SliceStable(day.Lessons, func(i, j int) bool {
				return day.Lessons[i].Time.Start.Before(day.Lessons[j].Time.Start)
			})
			teacher.Days = append(teacher.Days, *day)
		}
		teachers[name] = teacher
	}

	return teachers
}
