package progress

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	util "github.com/saulo-duarte/habits-lambda/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetDashboard_NoHabits(t *testing.T) {
	e := newTestEngine(newFakeStore(), nil, nil)

	d, err := e.GetDashboard(context.Background(), uuid.New(), time.UTC)

	require.NoError(t, err)
	assert.Equal(t, 0, d.TotalHabits)
	assert.Equal(t, 0, d.CompletedToday)
	assert.Equal(t, 0, d.CurrentStreak)
	assert.Equal(t, []int{0, 0, 0, 0, 0, 0, 0}, d.WeekProgress)
	assert.Empty(t, d.Habits)
}

func TestGetDashboard_AggregatesHabits(t *testing.T) {
	store := newFakeStore()
	user := uuid.New()
	today := util.NewDate(2026, time.October, 15)

	read := store.addHabit(user, "Read")
	for i := 0; i < 4; i++ {
		store.addLog(read, today.AddDays(-i))
	}
	run := store.addHabit(user, "Run")
	store.addLog(run, today.AddDays(-1))
	store.addLog(run, today.AddDays(-6))
	store.addHabit(user, "Cook")

	archived := store.addHabit(user, "Old")
	archived.Archived = true
	store.addLog(archived, today)

	foreign := store.addHabit(uuid.New(), "Not mine")
	store.addLog(foreign, today)

	d, err := newTestEngine(store, nil, nil).GetDashboard(context.Background(), user, time.UTC)

	require.NoError(t, err)
	assert.Equal(t, 3, d.TotalHabits)
	assert.Equal(t, 1, d.CompletedToday)
	assert.Equal(t, 4, d.CurrentStreak)
	// Oldest first: run on day -6, read on days -3..0, run also on day -1.
	assert.Equal(t, []int{33, 0, 0, 33, 33, 67, 33}, d.WeekProgress)

	require.Len(t, d.Habits, 3)
	assert.Equal(t, "Read", d.Habits[0].Name)
	assert.Equal(t, 4, d.Habits[0].Streak)
	assert.True(t, d.Habits[0].CompletedToday)
	assert.Equal(t, 1, d.Habits[1].Streak)
	assert.False(t, d.Habits[1].CompletedToday)
	assert.Equal(t, 0, d.Habits[2].Streak)
}

func TestGetDashboard_StoreFailure(t *testing.T) {
	store := newFakeStore()
	store.failWith = errors.New("timeout")

	_, err := newTestEngine(store, nil, nil).GetDashboard(context.Background(), uuid.New(), time.UTC)

	assert.Error(t, err)
}

func TestWeekProgress_Rounding(t *testing.T) {
	today := util.NewDate(2026, time.October, 15)
	done := map[util.Date]struct{}{today: {}}
	progress := []habitProgress{{days: done}, {days: done}, {days: map[util.Date]struct{}{}}}

	got := weekProgress(progress, today)

	assert.Equal(t, []int{0, 0, 0, 0, 0, 0, 67}, got)
}
