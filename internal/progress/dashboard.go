package progress

import (
	"context"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/saulo-duarte/habits-lambda/internal/completion"
	"github.com/saulo-duarte/habits-lambda/internal/config"
	"github.com/saulo-duarte/habits-lambda/internal/habit"
	util "github.com/saulo-duarte/habits-lambda/internal/utils"
	"golang.org/x/sync/errgroup"
)

// WeekDays is the length of the dashboard's progress series.
const WeekDays = 7

// maxParallelLoads caps concurrent per-habit store reads for one user.
const maxParallelLoads = 8

// RecentLogsPerHabit is how many completions the habit list embeds per habit.
const RecentLogsPerHabit = 30

type Dashboard struct {
	TotalHabits    int            `json:"total_habits"`
	CompletedToday int            `json:"completed_today"`
	CurrentStreak  int            `json:"current_streak"`
	WeekProgress   []int          `json:"week_progress"`
	Habits         []HabitSummary `json:"habits"`
}

type HabitSummary struct {
	ID             uuid.UUID       `json:"id"`
	Name           string          `json:"name"`
	Frequency      habit.Frequency `json:"frequency"`
	Goal           *int            `json:"goal,omitempty"`
	Streak         int             `json:"streak"`
	CompletedToday bool            `json:"completed_today"`
}

type habitProgress struct {
	habit  *habit.Habit
	days   map[util.Date]struct{}
	streak StreakResult
	recent []*completion.Log
}

// loadProgress fetches every active habit of the user and its completion days,
// one goroutine per habit. Order follows ListActiveHabitsByUser. With recent
// above zero the newest logs are kept too; those reads skip the day cache.
func (e *Engine) loadProgress(ctx context.Context, userID uuid.UUID, today util.Date, recent int) ([]habitProgress, error) {
	log := config.WithContext(ctx)

	habits, err := e.store.ListActiveHabitsByUser(ctx, userID)
	if err != nil {
		log.WithError(err).Error("Failed to list habits")
		return nil, err
	}

	out := make([]habitProgress, len(habits))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelLoads)
	for i, h := range habits {
		g.Go(func() error {
			if recent > 0 {
				logs, err := e.store.ListCompletionsByHabit(gctx, h.ID, historyWindow)
				if err != nil {
					return err
				}
				set := daySet(logDays(logs))
				out[i] = habitProgress{
					habit:  h,
					days:   set,
					streak: streakFromSet(set, today),
					recent: logs[:min(recent, len(logs))],
				}
				return nil
			}

			days, err := e.completionDays(gctx, h.ID)
			if err != nil {
				return err
			}
			set := daySet(days)
			out[i] = habitProgress{habit: h, days: set, streak: streakFromSet(set, today)}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.WithError(err).Error("Failed to load completion history")
		return nil, err
	}
	return out, nil
}

// GetDashboard summarizes the user's active habits as of today in loc.
// CurrentStreak is the best streak among them; WeekProgress holds, for the
// last seven days oldest first, the rounded percentage of habits completed.
func (e *Engine) GetDashboard(ctx context.Context, userID uuid.UUID, loc *time.Location) (*Dashboard, error) {
	today := e.today(loc)

	progress, err := e.loadProgress(ctx, userID, today, 0)
	if err != nil {
		return nil, err
	}

	d := &Dashboard{
		TotalHabits:  len(progress),
		WeekProgress: weekProgress(progress, today),
		Habits:       make([]HabitSummary, 0, len(progress)),
	}
	for _, p := range progress {
		if p.streak.CompletedToday {
			d.CompletedToday++
		}
		if p.streak.CurrentStreak > d.CurrentStreak {
			d.CurrentStreak = p.streak.CurrentStreak
		}
		d.Habits = append(d.Habits, HabitSummary{
			ID:             p.habit.ID,
			Name:           p.habit.Name,
			Frequency:      p.habit.Frequency,
			Goal:           p.habit.Goal,
			Streak:         p.streak.CurrentStreak,
			CompletedToday: p.streak.CompletedToday,
		})
	}
	return d, nil
}

func weekProgress(progress []habitProgress, today util.Date) []int {
	week := make([]int, WeekDays)
	total := len(progress)
	if total == 0 {
		return week
	}
	for i := range week {
		day := today.AddDays(i - (WeekDays - 1))
		done := 0
		for _, p := range progress {
			if _, ok := p.days[day]; ok {
				done++
			}
		}
		week[i] = int(math.Round(float64(done) * 100 / float64(total)))
	}
	return week
}
