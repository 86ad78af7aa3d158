package habit

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Habit struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID     uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	Name       string     `gorm:"type:text;not null" json:"name"`
	Frequency  Frequency  `gorm:"type:text;not null" json:"frequency"`
	Goal       *int       `json:"goal,omitempty"`
	ReminderAt *time.Time `json:"reminder_at,omitempty"`
	Archived   bool       `gorm:"not null" json:"archived"`
	CreatedAt  time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (h *Habit) BeforeCreate(tx *gorm.DB) error {
	if h.ID == uuid.Nil {
		h.ID = uuid.New()
	}
	return nil
}
