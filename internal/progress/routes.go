package progress

import "github.com/go-chi/chi/v5"

// Routes mounts the read and completion endpoints under /habits.
func Routes(r chi.Router, h *Handler) {
	r.Get("/", h.ListHabits)
	r.Get("/dashboard", h.Dashboard)
	r.Get("/habit-logs", h.ListHabitLogs)
	r.Post("/habit-logs", h.RecordHabitLog)
	r.Get("/{id}", h.GetHabit)
	r.Post("/{id}/completions", h.RecordCompletion)
	r.Get("/{id}/completions", h.ListCompletions)
}
