package progress

import (
	"time"

	"github.com/saulo-duarte/habits-lambda/internal/completion"
	"github.com/saulo-duarte/habits-lambda/internal/habit"
	"github.com/saulo-duarte/habits-lambda/internal/metrics"
)

type ProgressContainer struct {
	Engine  *Engine
	Handler *Handler
}

func NewProgressContainer(
	habits habit.Repository,
	logs completion.Repository,
	cache StreakCache,
	rec metrics.Recorder,
	defaultLoc *time.Location,
) *ProgressContainer {
	engine := NewEngine(NewRepositoryStore(habits, logs), cache, rec, nil)
	return &ProgressContainer{
		Engine:  engine,
		Handler: NewHandler(engine, defaultLoc),
	}
}
