package schedule_parser_service

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

const saturdayPrefix = "Суббота"

var dayLabelRegex = regexp.MustCompile(`^[А-Яа-яЁё]+\s(\d{1,2})\.(\d{1,2})\.(\d{2,4})`)

// anchor найденная ячейка группы или дня недели
type anchor struct {
	Row    int
	Column int
	Text   string
}

// dayBlock строки одного дня: [StartRow, EndRow)
type dayBlock struct {
	anchor
	EndRow int
}

type skeleton struct {
	groups []anchor
	days   []dayBlock
}

func firstUsedRow(g *Grid) int {
	for row := 0; row <= g.LastRow(); row++ {
		for col := 0; col <= g.LastCol(); col++ {
			if _, ok := g.Cell(row, col); ok {
				return row
			}
		}
	}
	return 0
}

// locateSkeleton ищет шапку с группами и строки дней недели.
// Неделя закрывается первой непустой строкой после субботы, иначе концом листа.
func locateSkeleton(g *Grid) skeleton {
	if g.Empty() {
		return skeleton{}
	}

	var (
		groups       []anchor
		days         []anchor
		headerParsed bool
		weekEnd      = g.LastRow() + 1
	)

	for row := firstUsedRow(g) + 1; row <= g.LastRow(); row++ {
		text, ok := g.Cell(row, 0)
		if !ok {
			continue
		}

		if !headerParsed {
			headerParsed = true

			header := row - 1
			for col := 2; col <= g.LastCol(); col++ {
				name, ok := g.Cell(header, col)
				if !ok {
					continue
				}
				groups = append(groups, anchor{Row: header, Column: col, Text: trimAll(name)})
			}
		}

		if len(days) > 0 && strings.HasPrefix(days[len(days)-1].Text, saturdayPrefix) {
			weekEnd = row
			break
		}

		label := trimAll(text)
		if !dayLabelRegex.MatchString(label) && !strings.HasPrefix(label, saturdayPrefix) {
			continue
		}

		days = append(days, anchor{Row: row, Column: 0, Text: label})
	}

	if len(groups) == 0 {
		return skeleton{}
	}

	blocks := make([]dayBlock, 0, len(days))
	for i, day := range days {
		end := weekEnd
		if i+1 < len(days) {
			end = days[i+1].Row
		}
		blocks = append(blocks, dayBlock{anchor: day, EndRow: end})
	}

	return skeleton{groups: groups, days: blocks}
}

// parseDayLabel "Понедельник 11.11.2024" -> имя и дата.
// Для дня без даты берётся следующий день после previous.
func parseDayLabel(label string, previous time.Time, loc *time.Location) (string, time.Time) {
	name := label
	if idx := strings.IndexByte(label, ' '); idx > 0 {
		name = label[:idx]
	}

	m := dayLabelRegex.FindStringSubmatch(label)
	if m == nil {
		if previous.IsZero() {
			return name, time.Time{}
		}
		return name, previous.AddDate(0, 0, 1)
	}

	day, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	year, _ := strconv.Atoi(m[3])
	if year < 100 {
		year += 2000
	}

	return name, time.Date(year, time.Month(month), day, 0, 0, 0, 0, loc)
}
