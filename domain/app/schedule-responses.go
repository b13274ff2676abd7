package app

import "time"

type ScheduleResponse struct {
	UpdatedAt     time.Time         `json:"updatedAt"`
	Etag          string            `json:"etag"`
	Groups        map[string]*Group `json:"groups"`
	UpdatedGroups map[string][]int  `json:"updatedGroups"`
}

type GroupScheduleResponse struct {
	UpdatedAt time.Time `json:"updatedAt"`
	Group     *Group    `json:"group"`
	Updated   []int     `json:"updated"`
}

type TeacherScheduleResponse struct {
	UpdatedAt time.Time `json:"updatedAt"`
	Teacher   *Teacher  `json:"teacher"`
	Updated   []int     `json:"updated"`
}

type NamesResponse struct {
	Names []string `json:"names"`
}

// CacheStatus состояние кеша одной проекции
type CacheStatus struct {
	CacheHash           string `json:"cacheHash"`
	CacheUpdateRequired bool   `json:"cacheUpdateRequired"`
	LastCacheUpdate     int64  `json:"lastCacheUpdate"`
	LastScheduleUpdate  int64  `json:"lastScheduleUpdate"`
}

// Старый формат расписания

type LegacyLessonKind string

const (
	LegacyLessonDefault LegacyLessonKind = "DEFAULT"
	LegacyLessonCustom  LegacyLessonKind = "CUSTOM"
)

type LegacyLesson struct {
	Type         LegacyLessonKind `json:"type"`
	DefaultIndex int              `json:"defaultIndex"`
	Name         string           `json:"name"`
	Time         LessonTime       `json:"time"`
	Cabinets     []string         `json:"cabinets"`
	TeacherNames []string         `json:"teacherNames"`
}

type LegacyDay struct {
	Name    string         `json:"name"`
	Date    time.Time      `json:"date"`
	Lessons []LegacyLesson `json:"lessons"`
}

type LegacyGroup struct {
	Name string      `json:"name"`
	Days []LegacyDay `json:"days"`
}

type LegacyScheduleResponse struct {
	UpdatedAt       time.Time               `json:"updatedAt"`
	Groups          map[string]*LegacyGroup `json:"groups"`
	LastChangedDays map[string][]int        `json:"lastChangedDays"`
}

type LegacyGroupScheduleResponse struct {
	UpdatedAt       time.Time    `json:"updatedAt"`
	Group           *LegacyGroup `json:"group"`
	LastChangedDays []int        `json:"lastChangedDays"`
}

type ScheduleReplacerInfo struct {
	ID   string `json:"id"`
	Etag string `json:"etag"`
	Size int    `json:"size"`
}

type ClearScheduleReplacerResponse struct {
	Count int64 `json:"count"`
}
