package schedule_parser_service

import (
	"encoding/json"

	"github.com/N08I40K/schedule-parser-next/domain/app"
	"github.com/zeebo/xxh3"
)

// hashDay структурный хеш дня, чувствителен к порядку занятий
func hashDay(day app.Day) uint64 {
	data, err := json.Marshal(day)
	if err != nil {
		// в модели нет типов, которые json не сериализует
		panic(err)
	}
	return xxh3.Hash(data)
}

// changedDays индексы дней, отличающихся от прошлого прогона.
// Считаются только ключи прошлого прогона; пропавший день считается изменённым.
func changedDays(previous, current map[string][]app.Day) map[string][]int {
	changes := make(map[string][]int, len(previous))

	for name, prevDays := range previous {
		curDays, ok := current[name]

		indices := []int{}
		for i, prevDay := range prevDays {
			if !ok || i >= len(curDays) || hashDay(prevDay) != hashDay(curDays[i]) {
				indices = append(indices, i)
			}
		}
		changes[name] = indices
	}

	return changes
}

func groupDays(groups map[string]*app.Group) map[string][]app.Day {
	out := make(map[string][]app.Day, len(groups))
	for name, g := range groups {
		out[name] = g.Days
	}
	return out
}

func teacherDays(teachers map[string]*app.Teacher) map[string][]app.Day {
	out := make(map[string][]app.Day, len(teachers))
	for name, t := range teachers {
		out[name] = t.Days
	}
	return out
}
