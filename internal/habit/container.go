package habit

import "gorm.io/gorm"

type HabitContainer struct {
	Repo    Repository
	Handler *Handler
	Service Service
}

// NewHabitContainer takes the guard separately because the ownership check
// lives in the progress engine, which itself needs Repo.
func NewHabitContainer(db *gorm.DB) *HabitContainer {
	return &HabitContainer{Repo: NewRepository(db)}
}

func (c *HabitContainer) Wire(guard OwnershipGuard) {
	c.Service = NewService(c.Repo, guard)
	c.Handler = NewHandler(c.Service)
}
