package schedule_parser_service

import (
	"errors"
	"reflect"
	"testing"

	"github.com/N08I40K/schedule-parser-next/domain/app"
)

func TestClassifyLesson(t *testing.T) {
	tests := []struct {
		text     string
		slotKind app.LessonKind
		kind     app.LessonKind
		rest     string
	}{
		{"ЗАЧЕТ С ОЦЕНКОЙ История", app.LessonRegular, app.LessonExamWithGrade, "История"},
		{"История зачёт с оценкой", app.LessonRegular, app.LessonExamWithGrade, "История"},
		{"ДИФФЕРЕНЦИРОВАННЫЙ ЗАЧЕТ Химия", app.LessonRegular, app.LessonExamWithGrade, "Химия"},
		{"ЭКЗАМЕН Физика", app.LessonRegular, app.LessonExam, "Физика"},
		{"ЗАЧЁТ Физкультура", app.LessonRegular, app.LessonExam, "Физкультура"},
		{"Математика (консультация)", app.LessonAdditional, app.LessonConsultation, "Математика"},
		{"КОНСУЛЬТАЦИЯ Математика", app.LessonRegular, app.LessonConsultation, "Математика"},
		{"Самостоятельная работа Химия", app.LessonRegular, app.LessonIndependentWork, "Химия"},
		{"Физика", app.LessonAdditional, app.LessonAdditional, "Физика"},
	}

	for _, tt := range tests {
		kind, rest := classifyLesson(tt.text, tt.slotKind)
		if kind != tt.kind || rest != tt.rest {
			t.Errorf("classifyLesson(%q) = %v %q, want %v %q", tt.text, kind, rest, tt.kind, tt.rest)
		}
	}
}

func TestSplitTeachers(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		lesson string
		tokens []teacherToken
	}{
		{
			name:   "no teachers",
			text:   "Разговоры о важном",
			lesson: "Разговоры о важном",
		},
		{
			name:   "one teacher",
			text:   "Высшая математика Иванов А.А.",
			lesson: "Высшая математика",
			tokens: []teacherToken{{"Иванов А.А.", 1}},
		},
		{
			name:   "spaced initials",
			text:   "Химия Иванов А. А.",
			lesson: "Химия",
			tokens: []teacherToken{{"Иванов А.А.", 1}},
		},
		{
			name:   "two unnumbered",
			text:   "Физика Петров П.П., Сидоров С.С.",
			lesson: "Физика",
			tokens: []teacherToken{{"Петров П.П.", 1}, {"Сидоров С.С.", 2}},
		},
		{
			name:   "second numbered",
			text:   "Физика Петров П.П., Сидоров С.С. (1 подгруппа)",
			lesson: "Физика",
			tokens: []teacherToken{{"Петров П.П.", 2}, {"Сидоров С.С.", 1}},
		},
		{
			name:   "first numbered",
			text:   "Физика Петров П.П. (2 подгруппа), Сидоров С.С.",
			lesson: "Физика",
			tokens: []teacherToken{{"Петров П.П.", 2}, {"Сидоров С.С.", 1}},
		},
		{
			name:   "three unnumbered",
			text:   "Информатика Петров П.П., Сидоров С.С., Иванов А.А.",
			lesson: "Информатика",
			tokens: []teacherToken{{"Петров П.П.", 1}, {"Сидоров С.С.", 2}, {"Иванов А.А.", 3}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lesson, tokens, err := splitTeachers(tt.text)
			if err != nil {
				t.Fatal(err)
			}
			if lesson != tt.lesson {
				t.Errorf("lesson = %q, want %q", lesson, tt.lesson)
			}
			if !reflect.DeepEqual(tokens, tt.tokens) {
				t.Errorf("tokens = %+v, want %+v", tokens, tt.tokens)
			}
		})
	}
}

func TestPairCabinets(t *testing.T) {
	two := func() []app.SubGroup {
		return []app.SubGroup{{Number: 1, Teacher: "Петров П.П."}, {Number: 2, Teacher: "Сидоров С.С."}}
	}

	shared, err := pairCabinets(two(), []string{"42"})
	if err != nil || shared[0].Cabinet != "42" || shared[1].Cabinet != "42" {
		t.Errorf("shared = %+v, %v", shared, err)
	}

	paired, err := pairCabinets(two(), []string{"101", "102"})
	if err != nil || paired[0].Cabinet != "101" || paired[1].Cabinet != "102" {
		t.Errorf("paired = %+v, %v", paired, err)
	}

	extra, err := pairCabinets(two(), []string{"101", "102", "103"})
	if err != nil || len(extra) != 3 {
		t.Fatalf("extra = %+v, %v", extra, err)
	}
	if extra[2] != (app.SubGroup{Number: 3, Teacher: ScheduleErrorTeacher, Cabinet: "103"}) {
		t.Errorf("placeholder = %+v", extra[2])
	}

	three := append(two(), app.SubGroup{Number: 3, Teacher: "Иванов А.А."})
	if _, err := pairCabinets(three, []string{"101", "102"}); !errors.Is(err, app.ErrSubgroupCabinetMismatch) {
		t.Errorf("err = %v", err)
	}

	none, err := pairCabinets(two(), nil)
	if err != nil || none[0].Cabinet != "" {
		t.Errorf("none = %+v, %v", none, err)
	}

	// кабинет без преподавателей не порождает заглушку
	gym, err := pairCabinets([]app.SubGroup{}, []string{"спортзал"})
	if err != nil || len(gym) != 0 {
		t.Errorf("gym = %+v, %v", gym, err)
	}
}

func TestExtractLessonWithoutTeachers(t *testing.T) {
	file := newWorkbook(t).
		set(0, 2, "ИС-21").
		set(1, 0, "Понедельник 11.11.2024").
		set(1, 1, "1 пара 08:30-09:50").
		set(1, 2, "Физкультура").
		set(1, 3, "спортзал").
		bytes()

	res, err := New(testLogger(), nil).Parse(t.Context(), file, nil)
	if err != nil {
		t.Fatal(err)
	}

	lessons := res.Groups["ИС-21"].Days[0].Lessons
	if len(lessons) != 1 || *lessons[0].Name != "Физкультура" || len(lessons[0].SubGroups) != 0 {
		t.Fatalf("lessons = %+v", lessons)
	}
	if len(res.Teachers) != 0 {
		t.Errorf("teachers = %v", res.TeacherNames())
	}
}

func TestExtractLessonOverlappingSlotsStayContiguous(t *testing.T) {
	file := newWorkbook(t).
		set(0, 2, "ИС-21").
		set(1, 0, "Понедельник 11.11.2024").
		set(1, 1, "1 пара 10:30-12:00").
		set(1, 2, "Физика Петров П.П.").
		set(2, 1, "2 пара 11:50-13:20").
		set(2, 2, "Химия Иванов А.А.").
		bytes()

	res, err := New(testLogger(), nil).Parse(t.Context(), file, nil)
	if err != nil {
		t.Fatal(err)
	}

	lessons := res.Groups["ИС-21"].Days[0].Lessons
	if len(lessons) != 3 || lessons[1].Kind != app.LessonBreak {
		t.Fatalf("lessons = %+v", lessons)
	}
	for i := 1; i < len(lessons); i++ {
		if !lessons[i-1].Time.End.Equal(lessons[i].Time.Start) {
			t.Errorf("lessons %d and %d are not contiguous", i-1, i)
		}
	}
}

func TestExtractLessonMismatchIsParseError(t *testing.T) {
	file := newWorkbook(t).
		set(0, 2, "ИС-21").
		set(1, 0, "Понедельник 11.11.2024").
		set(1, 1, "1 пара 08:30-09:50").
		set(1, 2, "Информатика Петров П.П., Сидоров С.С., Иванов А.А.").
		set(1, 3, "101 102").
		bytes()

	_, err := New(testLogger(), nil).Parse(t.Context(), file, nil)
	if !errors.Is(err, app.ErrSubgroupCabinetMismatch) {
		t.Fatalf("err = %v", err)
	}

	var parseErr *app.ParseError
	if !errors.As(err, &parseErr) || parseErr.Row != 1 || parseErr.Column != 3 {
		t.Errorf("err = %#v", err)
	}
}
