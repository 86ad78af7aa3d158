package progress

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/saulo-duarte/habits-lambda/internal/completion"
	"github.com/saulo-duarte/habits-lambda/internal/habit"
	util "github.com/saulo-duarte/habits-lambda/internal/utils"
)

type dayKey struct {
	habitID uuid.UUID
	day     util.Date
}

// fakeStore keeps everything in memory and enforces the (habit, day)
// uniqueness the database would.
type fakeStore struct {
	mu     sync.Mutex
	habits map[uuid.UUID]*habit.Habit
	logs   map[dayKey]*completion.Log

	// blindLookup makes FindCompletionByHabitAndDay always miss, so only the
	// insert can detect duplicates.
	blindLookup bool
	failWith    error
	listCalls   int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		habits: make(map[uuid.UUID]*habit.Habit),
		logs:   make(map[dayKey]*completion.Log),
	}
}

func (s *fakeStore) addHabit(userID uuid.UUID, name string) *habit.Habit {
	s.mu.Lock()
	defer s.mu.Unlock()
	h := &habit.Habit{
		ID:        uuid.New(),
		UserID:    userID,
		Name:      name,
		Frequency: habit.FrequencyDaily,
		CreatedAt: time.Date(2026, time.January, 1, 0, 0, 0, len(s.habits), time.UTC),
	}
	s.habits[h.ID] = h
	return h
}

func (s *fakeStore) addLog(h *habit.Habit, day util.Date) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logs[dayKey{h.ID, day}] = &completion.Log{ID: uuid.New(), HabitID: h.ID, UserID: h.UserID, Day: day}
}

func (s *fakeStore) FindHabitByID(_ context.Context, id uuid.UUID) (*habit.Habit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return nil, s.failWith
	}
	h, ok := s.habits[id]
	if !ok {
		return nil, habit.ErrNotFound
	}
	return h, nil
}

func (s *fakeStore) ListActiveHabitsByUser(_ context.Context, userID uuid.UUID) ([]*habit.Habit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return nil, s.failWith
	}
	var out []*habit.Habit
	for _, h := range s.habits {
		if h.UserID == userID && !h.Archived {
			out = append(out, h)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (s *fakeStore) FindCompletionByHabitAndDay(_ context.Context, habitID uuid.UUID, day util.Date) (*completion.Log, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.blindLookup {
		return nil, completion.ErrNotFound
	}
	l, ok := s.logs[dayKey{habitID, day}]
	if !ok {
		return nil, completion.ErrNotFound
	}
	return l, nil
}

func (s *fakeStore) InsertCompletion(_ context.Context, l *completion.Log) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := dayKey{l.HabitID, l.Day}
	if _, ok := s.logs[key]; ok {
		return completion.ErrDuplicateDay
	}
	s.logs[key] = l
	return nil
}

func (s *fakeStore) sorted(keep func(*completion.Log) bool, limit int) []*completion.Log {
	var out []*completion.Log
	for _, l := range s.logs {
		if keep(l) {
			out = append(out, l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Day.After(out[j].Day) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func (s *fakeStore) ListCompletionsByHabit(_ context.Context, habitID uuid.UUID, limit int) ([]*completion.Log, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listCalls++
	if s.failWith != nil {
		return nil, s.failWith
	}
	return s.sorted(func(l *completion.Log) bool { return l.HabitID == habitID }, limit), nil
}

func (s *fakeStore) ListCompletionsByUser(_ context.Context, userID uuid.UUID, limit int) ([]*completion.Log, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return nil, s.failWith
	}
	return s.sorted(func(l *completion.Log) bool { return l.UserID == userID }, limit), nil
}

type spyRecorder struct {
	mu          sync.Mutex
	completions map[string]int
	hits        int
	misses      int
}

func newSpyRecorder() *spyRecorder {
	return &spyRecorder{completions: make(map[string]int)}
}

func (r *spyRecorder) IncRequestsTotal(string, int)                 {}
func (r *spyRecorder) ObserveRequestDuration(string, time.Duration) {}

func (r *spyRecorder) IncCompletions(outcome string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.completions[outcome]++
}

func (r *spyRecorder) IncCacheHits() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.hits++
}

func (r *spyRecorder) IncCacheMisses() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.misses++
}
