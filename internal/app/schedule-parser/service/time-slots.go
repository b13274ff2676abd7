package schedule_parser_service

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/N08I40K/schedule-parser-next/domain/app"
)

const timeColumn = 1

var timeRangeRegex = regexp.MustCompile(`(\d{1,2}):(\d{2})-(\d{1,2}):(\d{2})`)

// timeSlot строка (или объединение строк) колонки времени одного дня
type timeSlot struct {
	Kind    app.LessonKind
	Ordinal int
	Time    app.LessonTime
	Rows    Range
}

// resolveTimeSlots строит список слотов дня, общий для всех групп
func resolveTimeSlots(g *Grid, day dayBlock, date time.Time) ([]timeSlot, error) {
	var slots []timeSlot

	for row := day.Row; row < day.EndRow; row++ {
		raw, ok := g.Cell(row, timeColumn)
		if !ok {
			continue
		}

		text := stripSpaces(raw)

		kind := app.LessonAdditional
		ordinal := 0
		if strings.Contains(strings.ToLower(text), "пара") {
			kind = app.LessonRegular
			if text[0] >= '0' && text[0] <= '9' {
				ordinal = int(text[0] - '0')
			}
		}

		m := timeRangeRegex.FindStringSubmatch(strings.ReplaceAll(text, ".", ":"))
		if m == nil {
			return nil, app.NewParseError(row, timeColumn, fmt.Errorf("%w: %q", app.ErrMissingTimeRange, raw))
		}

		slots = append(slots, timeSlot{
			Kind:    kind,
			Ordinal: ordinal,
			Time: app.LessonTime{
				Start: atClock(date, m[1], m[2]),
				End:   atClock(date, m[3], m[4]),
			},
			Rows: g.MergeFromStart(row, timeColumn),
		})
	}

	return slots, nil
}

func atClock(date time.Time, hours, minutes string) time.Time {
	h, _ := strconv.Atoi(hours)
	m, _ := strconv.Atoi(minutes)
	return time.Date(date.Year(), date.Month(), date.Day(), h, m, 0, 0, date.Location())
}

// slotEndingAt слот, объединение которого заканчивается на строке endRow
func slotEndingAt(slots []timeSlot, endRow int) (timeSlot, bool) {
	for _, slot := range slots {
		if slot.Rows.EndRow == endRow {
			return slot, true
		}
	}
	return timeSlot{}, false
}
