package schedule_replacer_repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/N08I40K/schedule-parser-next/domain/app"
	"github.com/google/uuid"
)

// MemoryRepository подмены в памяти, когда DB_DSN не задан
type MemoryRepository struct {
	mu     sync.RWMutex
	byEtag map[string]app.Override
}

var _ app.OverrideStore = &MemoryRepository{}

func NewMemory() *MemoryRepository {
	return &MemoryRepository{byEtag: make(map[string]app.Override)}
}

func (this *MemoryRepository) Lookup(_ context.Context, etag string) (*app.Override, error) {
	this.mu.RLock()
	defer this.mu.RUnlock()
	ov, ok := this.byEtag[etag]
	if !ok {
		return nil, nil
	}
	return &ov, nil
}

func (this *MemoryRepository) Has(_ context.Context, etag string) (bool, error) {
	this.mu.RLock()
	defer this.mu.RUnlock()
	_, ok := this.byEtag[etag]
	return ok, nil
}

func (this *MemoryRepository) Set(_ context.Context, etag string, data []byte) (*app.Override, error) {
	ov := app.Override{
		ID:        uuid.NewString(),
		Etag:      etag,
		Data:      append([]byte(nil), data...),
		Size:      len(data),
		CreatedAt: time.Now(),
	}

	this.mu.Lock()
	this.byEtag[etag] = ov
	this.mu.Unlock()
	return &ov, nil
}

func (this *MemoryRepository) Clear(_ context.Context) (int64, error) {
	this.mu.Lock()
	defer this.mu.Unlock()
	n := int64(len(this.byEtag))
	this.byEtag = make(map[string]app.Override)
	return n, nil
}

func (this *MemoryRepository) List(_ context.Context) ([]app.Override, error) {
	this.mu.RLock()
	out := make([]app.Override, 0, len(this.byEtag))
	for _, ov := range this.byEtag {
		ov.Data = nil
		out = append(out, ov)
	}
	this.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}
