package habit

import "time"

type CreateHabitDTO struct {
	Name       string     `json:"name"`
	Frequency  string     `json:"frequency"`
	ReminderAt *time.Time `json:"reminderAt"`
	Goal       *int       `json:"goal"`
}

type UpdateHabitDTO struct {
	Name       *string    `json:"name"`
	Frequency  *string    `json:"frequency"`
	ReminderAt *time.Time `json:"reminderAt"`
	Goal       *int       `json:"goal"`
}
