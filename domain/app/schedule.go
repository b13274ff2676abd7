package app

import (
	"fmt"
	"time"
)

// LessonKind тип занятия
type LessonKind int

const (
	// LessonRegular обычная пара
	LessonRegular LessonKind = iota
	// LessonAdditional дополнительное занятие (классный час и т.п.)
	LessonAdditional
	// LessonBreak перемена между занятиями
	LessonBreak
	LessonConsultation
	LessonIndependentWork
	LessonExam
	LessonExamWithGrade
)

var lessonKindNames = map[LessonKind]string{
	LessonRegular:         "regular",
	LessonAdditional:      "additional",
	LessonBreak:           "break",
	LessonConsultation:    "consultation",
	LessonIndependentWork: "independent_work",
	LessonExam:            "exam",
	LessonExamWithGrade:   "exam_with_grade",
}

func (k LessonKind) String() string {
	if name, ok := lessonKindNames[k]; ok {
		return name
	}
	return "unknown"
}

func (k LessonKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *LessonKind) UnmarshalText(text []byte) error {
	for kind, name := range lessonKindNames {
		if name == string(text) {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("unknown lesson kind %q", text)
}

// LessonTime временной отрезок занятия
type LessonTime struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// SubGroup преподаватель и кабинет одной части группы
type SubGroup struct {
	Number  int    `json:"number"`
	Teacher string `json:"teacher"`
	Cabinet string `json:"cabinet"`
}

// Lesson одна запись в расписании дня.
//
// Name и Range отсутствуют только у перемен; SubGroups заполняется только у обычных пар.
// Group заполняется только в расписании преподавателя.
type Lesson struct {
	Kind      LessonKind `json:"type"`
	Range     *[2]int    `json:"defaultRange"`
	Name      *string    `json:"name"`
	Time      LessonTime `json:"time"`
	SubGroups []SubGroup `json:"subGroups"`
	Group     string     `json:"group,omitempty"`
}

// Clone глубокая копия занятия
func (l Lesson) Clone() Lesson {
	c := l
	if l.Range != nil {
		r := *l.Range
		c.Range = &r
	}
	if l.Name != nil {
		n := *l.Name
		c.Name = &n
	}
	if l.SubGroups != nil {
		c.SubGroups = append([]SubGroup(nil), l.SubGroups...)
	}
	return c
}

type Day struct {
	Name    string    `json:"name"`
	Street  string    `json:"street,omitempty"`
	Date    time.Time `json:"date"`
	Lessons []Lesson  `json:"lessons"`
}

type Group struct {
	Name string `json:"name"`
	Days []Day  `json:"days"`
}

type Teacher struct {
	Name string `json:"name"`
	Days []Day  `json:"days"`
}

// IngestResult результат одного полного прогона парсера
type IngestResult struct {
	// ETag файла расписания
	SourceTag string `json:"etag"`
	// Идентификатор подменённого расписания
	OverrideID *string `json:"replacerId,omitempty"`

	DownloadedAt time.Time `json:"downloadedAt"`
	UploadedAt   time.Time `json:"uploadedAt"`

	Groups   map[string]*Group   `json:"groups"`
	Teachers map[string]*Teacher `json:"teachers"`

	// Индексы дней, изменившихся с прошлого прогона
	ChangedGroupDays   map[string][]int `json:"updatedGroups"`
	ChangedTeacherDays map[string][]int `json:"updatedTeachers"`
}

// SameSource совпадают ли etag и идентификатор подмены
func (r *IngestResult) SameSource(tag string, overrideID *string) bool {
	if r == nil || r.SourceTag != tag {
		return false
	}
	if r.OverrideID == nil || overrideID == nil {
		return r.OverrideID == nil && overrideID == nil
	}
	return *r.OverrideID == *overrideID
}

func (r *IngestResult) GroupNames() []string {
	names := make([]string, 0, len(r.Groups))
	for name := range r.Groups {
		names = append(names, name)
	}
	return names
}

func (r *IngestResult) TeacherNames() []string {
	names := make([]string, 0, len(r.Teachers))
	for name := range r.Teachers {
		names = append(names, name)
	}
	return names
}
