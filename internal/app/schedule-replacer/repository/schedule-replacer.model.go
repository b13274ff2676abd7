package schedule_replacer_repository

import "time"

type ScheduleReplacer struct {
	ID        string `gorm:"type:uuid;primaryKey"`
	Etag      string `gorm:"uniqueIndex;not null"`
	Data      []byte `gorm:"type:bytea;not null"`
	CreatedAt time.Time
}

func (ScheduleReplacer) TableName() string {
	return "schedule_replacers"
}
