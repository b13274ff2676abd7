package schedule_replacer_repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/N08I40K/schedule-parser-next/domain/app"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ScheduleReplacerRepository подмены расписания в postgres, одна на etag
type ScheduleReplacerRepository struct {
	db *gorm.DB
}

var _ app.OverrideStore = &ScheduleReplacerRepository{}

func New(db *gorm.DB) *ScheduleReplacerRepository {
	return &ScheduleReplacerRepository{db}
}

func (this *ScheduleReplacerRepository) Lookup(ctx context.Context, etag string) (*app.Override, error) {
	var m ScheduleReplacer
	err := this.db.WithContext(ctx).Where("etag = ?", etag).Take(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select schedule replacer: %w", err)
	}
	return toOverride(m), nil
}

func (this *ScheduleReplacerRepository) Has(ctx context.Context, etag string) (bool, error) {
	var count int64
	err := this.db.WithContext(ctx).Model(&ScheduleReplacer{}).Where("etag = ?", etag).Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("count schedule replacers: %w", err)
	}
	return count > 0, nil
}

// upsert новый id при каждой загрузке, чтобы кеш расписания заметил замену
func upsert(tx *gorm.DB, m *ScheduleReplacer) *gorm.DB {
	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "etag"}},
		DoUpdates: clause.AssignmentColumns([]string{"id", "data", "created_at"}),
	}).Create(m)
}

func (this *ScheduleReplacerRepository) Set(ctx context.Context, etag string, data []byte) (*app.Override, error) {
	m := ScheduleReplacer{
		ID:        uuid.NewString(),
		Etag:      etag,
		Data:      data,
		CreatedAt: time.Now(),
	}
	if err := upsert(this.db.WithContext(ctx), &m).Error; err != nil {
		return nil, fmt.Errorf("upsert schedule replacer: %w", err)
	}
	return toOverride(m), nil
}

func (this *ScheduleReplacerRepository) Clear(ctx context.Context) (int64, error) {
	res := this.db.WithContext(ctx).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&ScheduleReplacer{})
	if res.Error != nil {
		return 0, fmt.Errorf("delete schedule replacers: %w", res.Error)
	}
	return res.RowsAffected, nil
}

type replacerInfo struct {
	ID        string
	Etag      string
	Size      int
	CreatedAt time.Time
}

func (this *ScheduleReplacerRepository) List(ctx context.Context) ([]app.Override, error) {
	var rows []replacerInfo
	err := this.db.WithContext(ctx).
		Model(&ScheduleReplacer{}).
		Select("id, etag, octet_length(data) AS size, created_at").
		Order("created_at").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list schedule replacers: %w", err)
	}

	out := make([]app.Override, 0, len(rows))
	for _, r := range rows {
		out = append(out, app.Override{ID: r.ID, Etag: r.Etag, Size: r.Size, CreatedAt: r.CreatedAt})
	}
	return out, nil
}

func toOverride(m ScheduleReplacer) *app.Override {
	return &app.Override{
		ID:        m.ID,
		Etag:      m.Etag,
		Data:      m.Data,
		Size:      len(m.Data),
		CreatedAt: m.CreatedAt,
	}
}
