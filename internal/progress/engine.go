package progress

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/saulo-duarte/habits-lambda/internal/completion"
	"github.com/saulo-duarte/habits-lambda/internal/config"
	"github.com/saulo-duarte/habits-lambda/internal/habit"
	"github.com/saulo-duarte/habits-lambda/internal/metrics"
	util "github.com/saulo-duarte/habits-lambda/internal/utils"
)

const (
	minEnergyLevel = 1
	maxEnergyLevel = 10
)

type Clock func() time.Time

type Service interface {
	VerifyOwnership(ctx context.Context, userID, habitID uuid.UUID) (*habit.Habit, error)
	RecordCompletion(ctx context.Context, userID, habitID uuid.UUID, in CompletionInput) (*completion.Log, error)
	ListCompletions(ctx context.Context, userID, habitID uuid.UUID, limit int) ([]*completion.Log, error)
	ListUserCompletions(ctx context.Context, userID uuid.UUID, limit int) ([]*completion.Log, error)
	GetHabitWithStreak(ctx context.Context, userID, habitID uuid.UUID, loc *time.Location, limit int) (*HabitWithStreak, error)
	ListHabitsWithStreak(ctx context.Context, userID uuid.UUID, loc *time.Location) ([]HabitWithStreak, error)
	GetDashboard(ctx context.Context, userID uuid.UUID, loc *time.Location) (*Dashboard, error)
}

type Engine struct {
	store   Store
	cache   StreakCache
	metrics metrics.Recorder
	now     Clock
}

func NewEngine(store Store, cache StreakCache, rec metrics.Recorder, now Clock) *Engine {
	if cache == nil {
		cache = NewNoopStreakCache()
	}
	if rec == nil {
		rec = metrics.Noop{}
	}
	if now == nil {
		now = time.Now
	}
	return &Engine{store: store, cache: cache, metrics: rec, now: now}
}

func (e *Engine) today(loc *time.Location) util.Date {
	return util.Today(e.now(), loc)
}

// VerifyOwnership returns the habit only if it exists and belongs to userID.
// A foreign habit is reported exactly like a missing one.
func (e *Engine) VerifyOwnership(ctx context.Context, userID, habitID uuid.UUID) (*habit.Habit, error) {
	h, err := e.store.FindHabitByID(ctx, habitID)
	if err != nil {
		if errors.Is(err, habit.ErrNotFound) {
			return nil, ErrNotFound
		}
		config.WithContext(ctx).WithError(err).WithField("habit_id", habitID).Error("Failed to load habit")
		return nil, err
	}
	if h.UserID != userID {
		return nil, ErrNotFound
	}
	return h, nil
}

func (e *Engine) normalizeDay(raw string, loc *time.Location) (util.Date, error) {
	if loc == nil {
		loc = time.UTC
	}
	today := e.today(loc)
	if strings.TrimSpace(raw) == "" {
		return today, nil
	}
	day, err := util.ParseDate(raw, loc)
	if err != nil {
		return util.Date{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if day.After(today) {
		return util.Date{}, fmt.Errorf("%w: %s is in the future", ErrInvalidInput, day)
	}
	return day, nil
}

func validateEnergyLevel(level *int) error {
	if level == nil {
		return nil
	}
	if *level < minEnergyLevel || *level > maxEnergyLevel {
		return fmt.Errorf("%w: energy level must be between %d and %d", ErrInvalidInput, minEnergyLevel, maxEnergyLevel)
	}
	return nil
}

// RecordCompletion stores at most one completion per habit and calendar day.
// The lookup before the insert only short-circuits the common duplicate; the
// unique index decides when two requests race.
func (e *Engine) RecordCompletion(ctx context.Context, userID, habitID uuid.UUID, in CompletionInput) (*completion.Log, error) {
	l, err := e.recordCompletion(ctx, userID, habitID, in)
	e.metrics.IncCompletions(completionOutcome(err))
	return l, err
}

func (e *Engine) recordCompletion(ctx context.Context, userID, habitID uuid.UUID, in CompletionInput) (*completion.Log, error) {
	log := config.WithContext(ctx)

	h, err := e.VerifyOwnership(ctx, userID, habitID)
	if err != nil {
		return nil, err
	}

	day, err := e.normalizeDay(in.Day, in.Location)
	if err != nil {
		return nil, err
	}
	if err := validateEnergyLevel(in.EnergyLevel); err != nil {
		return nil, err
	}

	if _, err := e.store.FindCompletionByHabitAndDay(ctx, h.ID, day); err == nil {
		return nil, ErrConflict
	} else if !errors.Is(err, completion.ErrNotFound) {
		log.WithError(err).WithField("habit_id", h.ID).Error("Failed to check existing completion")
		return nil, err
	}

	entry := &completion.Log{
		ID:          uuid.New(),
		HabitID:     h.ID,
		UserID:      h.UserID,
		Day:         day,
		Note:        in.Note,
		Mood:        in.Mood,
		EnergyLevel: in.EnergyLevel,
	}
	if err := e.store.InsertCompletion(ctx, entry); err != nil {
		if errors.Is(err, completion.ErrDuplicateDay) {
			return nil, ErrConflict
		}
		log.WithError(err).WithField("habit_id", h.ID).Error("Failed to insert completion")
		return nil, err
	}

	e.cache.Invalidate(h.ID)
	return entry, nil
}

func completionOutcome(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeCreated
	case errors.Is(err, ErrConflict):
		return metrics.OutcomeConflict
	case errors.Is(err, ErrNotFound):
		return metrics.OutcomeNotFound
	case errors.Is(err, ErrInvalidInput):
		return metrics.OutcomeInvalid
	default:
		return metrics.OutcomeError
	}
}

func (e *Engine) ListCompletions(ctx context.Context, userID, habitID uuid.UUID, limit int) ([]*completion.Log, error) {
	if limit < 0 {
		return nil, fmt.Errorf("%w: limit must not be negative", ErrInvalidInput)
	}
	h, err := e.VerifyOwnership(ctx, userID, habitID)
	if err != nil {
		return nil, err
	}

	logs, err := e.store.ListCompletionsByHabit(ctx, h.ID, limit)
	if err != nil {
		config.WithContext(ctx).WithError(err).WithField("habit_id", h.ID).Error("Failed to list completions")
		return nil, err
	}
	return logs, nil
}

func (e *Engine) ListUserCompletions(ctx context.Context, userID uuid.UUID, limit int) ([]*completion.Log, error) {
	if limit < 0 {
		return nil, fmt.Errorf("%w: limit must not be negative", ErrInvalidInput)
	}
	logs, err := e.store.ListCompletionsByUser(ctx, userID, limit)
	if err != nil {
		config.WithContext(ctx).WithError(err).Error("Failed to list user completions")
		return nil, err
	}
	return logs, nil
}

// completionDays returns the newest historyWindow completion days of a habit,
// served from the cache when possible.
func (e *Engine) completionDays(ctx context.Context, habitID uuid.UUID) ([]util.Date, error) {
	days, gen, ok := e.cache.Lookup(habitID)
	if ok {
		e.metrics.IncCacheHits()
		return days, nil
	}
	e.metrics.IncCacheMisses()

	logs, err := e.store.ListCompletionsByHabit(ctx, habitID, historyWindow)
	if err != nil {
		return nil, err
	}
	days = logDays(logs)
	e.cache.Store(habitID, gen, days)
	return days, nil
}

// GetHabitWithStreak embeds up to limit of the newest completions; 0 embeds
// them all.
func (e *Engine) GetHabitWithStreak(ctx context.Context, userID, habitID uuid.UUID, loc *time.Location, limit int) (*HabitWithStreak, error) {
	if limit < 0 {
		return nil, fmt.Errorf("%w: limit must not be negative", ErrInvalidInput)
	}
	h, err := e.VerifyOwnership(ctx, userID, habitID)
	if err != nil {
		return nil, err
	}

	read := 0
	if limit > 0 {
		read = max(limit, historyWindow)
	}
	logs, err := e.store.ListCompletionsByHabit(ctx, h.ID, read)
	if err != nil {
		config.WithContext(ctx).WithError(err).WithField("habit_id", h.ID).Error("Failed to list completions")
		return nil, err
	}

	res := ComputeStreak(logs, e.today(loc))
	if limit > 0 && len(logs) > limit {
		logs = logs[:limit]
	}
	return &HabitWithStreak{
		Habit:          h,
		Streak:         res.CurrentStreak,
		CompletedToday: res.CompletedToday,
		Logs:           logs,
	}, nil
}

// ListHabitsWithStreak embeds the newest RecentLogsPerHabit completions of
// each active habit.
func (e *Engine) ListHabitsWithStreak(ctx context.Context, userID uuid.UUID, loc *time.Location) ([]HabitWithStreak, error) {
	progress, err := e.loadProgress(ctx, userID, e.today(loc), RecentLogsPerHabit)
	if err != nil {
		return nil, err
	}

	out := make([]HabitWithStreak, 0, len(progress))
	for _, p := range progress {
		out = append(out, HabitWithStreak{
			Habit:          p.habit,
			Streak:         p.streak.CurrentStreak,
			CompletedToday: p.streak.CompletedToday,
			Logs:           p.recent,
		})
	}
	return out, nil
}
