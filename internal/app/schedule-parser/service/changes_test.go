package schedule_parser_service

import (
	"reflect"
	"testing"

	"github.com/N08I40K/schedule-parser-next/domain/app"
)

func TestChangedDays(t *testing.T) {
	name := func(s string) *string { return &s }
	day := func(lesson string) app.Day {
		return app.Day{Name: "Понедельник", Lessons: []app.Lesson{{Kind: app.LessonRegular, Name: name(lesson)}}}
	}

	previous := map[string][]app.Day{
		"ИС-21": {day("Физика"), day("Химия")},
		"ПР-22": {day("История")},
		"ИС-23": {day("Право")},
	}
	current := map[string][]app.Day{
		"ИС-21": {day("Физика"), day("Биология")},
		"ПР-22": {day("История")},
		"ПР-24": {day("Новая группа")},
	}

	got := changedDays(previous, current)
	want := map[string][]int{
		"ИС-21": {1},
		"ПР-22": {},
		"ИС-23": {0},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("changedDays = %v, want %v", got, want)
	}
}

func TestHashDayIsOrderSensitive(t *testing.T) {
	a, b := "Физика", "Химия"
	first := app.Day{Lessons: []app.Lesson{{Name: &a}, {Name: &b}}}
	swapped := app.Day{Lessons: []app.Lesson{{Name: &b}, {Name: &a}}}

	if hashDay(first) == hashDay(swapped) {
		t.Error("hash ignores lesson order")
	}
}
