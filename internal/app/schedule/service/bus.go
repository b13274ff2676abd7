package schedule_service

import (
	"context"
	"sync"
)

// Invalidatable проекция, которую можно тихо сбросить
type Invalidatable interface {
	// SilentInvalidate сбрасывает кеш и ничего не публикует дальше
	SilentInvalidate(ctx context.Context)
}

// InvalidationBus связывает проекции одного источника.
// Проекция, первой увидевшая новый файл, сбрасывает остальные; те перечитывают
// тот же файл и повторно ничего не рассылают.
type InvalidationBus struct {
	mu          sync.Mutex
	subscribers []Invalidatable
	announced   string
}

func NewInvalidationBus() *InvalidationBus {
	return &InvalidationBus{}
}

func (b *InvalidationBus) Subscribe(p Invalidatable) {
	b.mu.Lock()
	b.subscribers = append(b.subscribers, p)
	b.mu.Unlock()
}

// Publish сбрасывает всех подписчиков, кроме source, если sourceKey ещё не объявлялся
func (b *InvalidationBus) Publish(ctx context.Context, source Invalidatable, sourceKey string) bool {
	b.mu.Lock()
	if b.announced == sourceKey {
		b.mu.Unlock()
		return false
	}
	b.announced = sourceKey
	subscribers := append([]Invalidatable(nil), b.subscribers...)
	b.mu.Unlock()

	for _, s := range subscribers {
		if s != source {
			s.SilentInvalidate(ctx)
		}
	}
	return true
}

// InvalidateAll сброс всех проекций: смена ссылки, загрузка подмены
func (b *InvalidationBus) InvalidateAll(ctx context.Context) {
	b.mu.Lock()
	subscribers := append([]Invalidatable(nil), b.subscribers...)
	b.mu.Unlock()

	for _, s := range subscribers {
		s.SilentInvalidate(ctx)
	}
}
