package completion

import (
	"time"

	"github.com/google/uuid"
	util "github.com/saulo-duarte/habits-lambda/internal/utils"
	"gorm.io/gorm"
)

// Log records that a habit was completed on one calendar day. (HabitID, Day)
// is unique at the database level.
type Log struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	HabitID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_completion_logs_habit_day" json:"habit_id"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Day         util.Date `gorm:"type:date;not null;uniqueIndex:uq_completion_logs_habit_day" json:"date"`
	Note        *string   `gorm:"type:text" json:"note,omitempty"`
	Mood        *string   `gorm:"type:text" json:"mood,omitempty"`
	EnergyLevel *int      `json:"energy_level,omitempty"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Log) TableName() string {
	return "completion_logs"
}

func (l *Log) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}
