package schedule_service

import (
	"sync"
	"time"

	"github.com/N08I40K/schedule-parser-next/domain/app"
)

// State последний прогон одной проекции.
// Прогон не меняется после публикации, заменяется целиком.
type State struct {
	mu sync.RWMutex

	last  *app.IngestResult
	stale bool

	lastCacheUpdate    time.Time
	lastScheduleUpdate time.Time
}

func NewState() *State {
	return &State{}
}

// current прогон, пригодный без повторного разбора
func (s *State) current() (*app.IngestResult, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.last, !s.stale
}

// store публикует новый прогон; changed - сменился ли идентификатор файла
func (s *State) store(result *app.IngestResult, now time.Time) (previous *app.IngestResult, changed bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	previous = s.last
	changed = previous == nil || !previous.SameSource(result.SourceTag, result.OverrideID)

	s.last = result
	s.stale = false
	s.lastCacheUpdate = now
	if changed {
		s.lastScheduleUpdate = now
	}
	return previous, changed
}

func (s *State) touch(now time.Time) {
	s.mu.Lock()
	s.lastCacheUpdate = now
	s.mu.Unlock()
}

// markStale прогон остаётся для сравнения, но следующий запрос перечитает файл
func (s *State) markStale() {
	s.mu.Lock()
	s.stale = true
	s.mu.Unlock()
}

type stateSnapshot struct {
	last               *app.IngestResult
	lastCacheUpdate    time.Time
	lastScheduleUpdate time.Time
}

func (s *State) snapshot() stateSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return stateSnapshot{s.last, s.lastCacheUpdate, s.lastScheduleUpdate}
}
