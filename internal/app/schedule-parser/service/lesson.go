package schedule_parser_service

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/N08I40K/schedule-parser-next/domain/app"
)

// ScheduleErrorTeacher преподаватель подгруппы, для которой нашёлся лишний кабинет
const ScheduleErrorTeacher = "Ошибка в расписании"

const teacherTokenPattern = `[А-ЯЁ][а-яё]+\s[А-ЯЁ]\.\s?[А-ЯЁ]\.(?:\s?\([0-9]\s?подгруппа\))?`

var (
	streetRegex = regexp.MustCompile(`^[А-ЯЁ][а-яё]+,\s?\d+$`)

	teacherListRegex  = regexp.MustCompile(`(?:` + teacherTokenPattern + `(?:,\s?)?)+$`)
	teacherTokenRegex = regexp.MustCompile(teacherTokenPattern)
	teacherNameRegex  = regexp.MustCompile(`^([А-ЯЁ][а-яё]+)\s([А-ЯЁ]\.)\s?([А-ЯЁ]\.)`)
	subgroupRegex     = regexp.MustCompile(`\(([0-9])\s?подгруппа\)`)
)

// порядок важен: "зачёт с оценкой" проверяется раньше просто "зачёта"
var lessonKeywords = []struct {
	re   *regexp.Regexp
	kind app.LessonKind
}{
	{regexp.MustCompile(`(?i)(?:ДИФФЕРЕНЦИРОВАННЫЙ\s+ЗАЧ[ЕЁ]Т|ЗАЧ[ЕЁ]Т\s+С\s+ОЦЕНКОЙ)`), app.LessonExamWithGrade},
	{regexp.MustCompile(`(?i)(?:ЭКЗАМЕН|ЗАЧ[ЕЁ]Т)`), app.LessonExam},
	{regexp.MustCompile(`(?i)\(?\s*КОНСУЛЬТАЦИЯ\s*\)?`), app.LessonConsultation},
	{regexp.MustCompile(`(?i)САМОСТОЯТЕЛЬНАЯ\s+РАБОТА`), app.LessonIndependentWork},
}

// cellLessons что дала одна ячейка группы
type cellLessons struct {
	lessons []app.Lesson
	street  string
}

// classifyLesson ищет ключевое слово, вырезает его и возвращает тип занятия
func classifyLesson(text string, slotKind app.LessonKind) (app.LessonKind, string) {
	for _, kw := range lessonKeywords {
		if kw.re.MatchString(text) {
			return kw.kind, trimAll(kw.re.ReplaceAllString(text, " "))
		}
	}
	return slotKind, text
}

type teacherToken struct {
	name     string
	subgroup int
}

// splitTeachers отделяет хвост с преподавателями от названия предмета
func splitTeachers(text string) (string, []teacherToken, error) {
	loc := teacherListRegex.FindStringIndex(text)
	if loc == nil {
		return text, nil, nil
	}

	tail := text[loc[0]:loc[1]]
	raw := teacherTokenRegex.FindAllString(tail, -1)
	if len(raw) == 0 {
		return "", nil, fmt.Errorf("%w: %q", app.ErrTeacherExtractionParadox, tail)
	}

	tokens := make([]teacherToken, 0, len(raw))
	for _, token := range raw {
		t := teacherToken{name: token}
		if m := teacherNameRegex.FindStringSubmatch(token); m != nil {
			t.name = m[1] + " " + m[2] + m[3]
		}
		if m := subgroupRegex.FindStringSubmatch(token); m != nil {
			t.subgroup = int(m[1][0] - '0')
		}
		tokens = append(tokens, t)
	}

	numberSubgroups(tokens)

	return strings.TrimSpace(text[:loc[0]]), tokens, nil
}

func complementSubgroup(n int) int {
	if n == 1 {
		return 2
	}
	return 1
}

// numberSubgroups проставляет номера подгрупп там, где их не указали
func numberSubgroups(tokens []teacherToken) {
	switch len(tokens) {
	case 0:
		return
	case 1:
		if tokens[0].subgroup == 0 {
			tokens[0].subgroup = 1
		}
	case 2:
		first, second := &tokens[0], &tokens[1]
		switch {
		case first.subgroup == 0 && second.subgroup == 0:
			first.subgroup, second.subgroup = 1, 2
		case first.subgroup == 0:
			first.subgroup = complementSubgroup(second.subgroup)
		case second.subgroup == 0:
			second.subgroup = complementSubgroup(first.subgroup)
		}
	default:
		for i := range tokens {
			if tokens[i].subgroup == 0 {
				tokens[i].subgroup = i + 1
			}
		}
	}
}

// pairCabinets раскладывает кабинеты по подгруппам
func pairCabinets(subgroups []app.SubGroup, cabinets []string) ([]app.SubGroup, error) {
	switch {
	case len(cabinets) == 0:
		return subgroups, nil
	case len(cabinets) == 1:
		// один кабинет общий для всех подгрупп, даже если их нет
		for i := range subgroups {
			subgroups[i].Cabinet = cabinets[0]
		}
		return subgroups, nil
	case len(cabinets) == len(subgroups):
		for i := range subgroups {
			subgroups[i].Cabinet = cabinets[i]
		}
		return subgroups, nil
	case len(cabinets) > len(subgroups):
		for i := range subgroups {
			subgroups[i].Cabinet = cabinets[i]
		}
		for i := len(subgroups); i < len(cabinets); i++ {
			subgroups = append(subgroups, app.SubGroup{
				Number:  i + 1,
				Teacher: ScheduleErrorTeacher,
				Cabinet: cabinets[i],
			})
		}
		return subgroups, nil
	default:
		return nil, fmt.Errorf("%w: %d cabinets for %d subgroups", app.ErrSubgroupCabinetMismatch, len(cabinets), len(subgroups))
	}
}

// extractLesson разбирает ячейку группы в начале слота.
// previous последнее занятие дня, нужно для вставки перемены.
func extractLesson(g *Grid, slots []timeSlot, slot timeSlot, col int, previous *app.Lesson) (cellLessons, error) {
	row := slot.Rows.StartRow

	raw, ok := g.Cell(row, col)
	if !ok {
		return cellLessons{}, nil
	}
	text := trimAll(raw)
	if text == "" {
		return cellLessons{}, nil
	}

	if streetRegex.MatchString(text) {
		return cellLessons{street: text}, nil
	}

	kind, text := classifyLesson(text, slot.Kind)

	name, tokens, err := splitTeachers(text)
	if err != nil {
		return cellLessons{}, app.NewParseError(row, col, err)
	}

	end := slot
	if last, ok := slotEndingAt(slots, g.MergeFromStart(row, col).EndRow); ok {
		end = last
	}

	lesson := app.Lesson{
		Kind: kind,
		Name: &name,
		Time: app.LessonTime{Start: slot.Time.Start, End: end.Time.End},
	}
	if slot.Kind == app.LessonRegular {
		// у дополнительного слота номера нет, пара заканчивается своим номером
		closing := slot.Ordinal
		if end.Kind == app.LessonRegular {
			closing = end.Ordinal
		}
		lesson.Range = &[2]int{slot.Ordinal, closing}
	}

	if kind == app.LessonRegular {
		subgroups := make([]app.SubGroup, 0, len(tokens))
		for _, t := range tokens {
			subgroups = append(subgroups, app.SubGroup{Number: t.subgroup, Teacher: t.name})
		}

		var cabinets []string
		if cabinetText, ok := g.Cell(row, col+1); ok {
			cabinets = strings.Fields(cabinetText)
		}

		lesson.SubGroups, err = pairCabinets(subgroups, cabinets)
		if err != nil {
			return cellLessons{}, app.NewParseError(row, col+1, err)
		}
	}

	var out cellLessons
	// перемена вставляется при любом расхождении, в том числе при наложении слотов
	if previous != nil && !previous.Time.End.Equal(lesson.Time.Start) {
		out.lessons = append(out.lessons, app.Lesson{
			Kind: app.LessonBreak,
			Time: app.LessonTime{Start: previous.Time.End, End: lesson.Time.Start},
		})
	}
	out.lessons = append(out.lessons, lesson)

	return out, nil
}
