package progress

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/saulo-duarte/habits-lambda/internal/auth"
	"github.com/saulo-duarte/habits-lambda/internal/config"
	util "github.com/saulo-duarte/habits-lambda/internal/utils"
)

// TimezoneHeader names the IANA zone the caller's calendar days are in.
const TimezoneHeader = "X-Timezone"

const defaultListLimit = 100

type Handler struct {
	service    Service
	defaultLoc *time.Location
}

func NewHandler(service Service, defaultLoc *time.Location) *Handler {
	if defaultLoc == nil {
		defaultLoc = time.UTC
	}
	return &Handler{service: service, defaultLoc: defaultLoc}
}

func userIDFromRequest(r *http.Request) (uuid.UUID, bool) {
	claims, err := auth.GetUserClaimsFromContext(r.Context())
	if err != nil {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(claims.UserID)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

func (h *Handler) location(r *http.Request) (*time.Location, error) {
	loc, err := util.LoadLocation(r.Header.Get(TimezoneHeader), h.defaultLoc)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return loc, nil
}

func parseLimit(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return defaultListLimit, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: limit must be a non-negative integer", ErrInvalidInput)
	}
	return n, nil
}

func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		config.Error(w, http.StatusNotFound, "habit not found")
	case errors.Is(err, ErrConflict):
		config.Error(w, http.StatusConflict, ErrConflict.Error())
	case errors.Is(err, ErrInvalidInput):
		config.Error(w, http.StatusBadRequest, err.Error())
	default:
		config.WithContext(r.Context()).WithError(err).Error("Progress request failed")
		config.Error(w, http.StatusInternalServerError, "internal server error")
	}
}

func (h *Handler) ListHabits(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(r)
	if !ok {
		config.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	loc, err := h.location(r)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	habits, err := h.service.ListHabitsWithStreak(r.Context(), userID, loc)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	config.JSON(w, http.StatusOK, habits)
}

func (h *Handler) GetHabit(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(r)
	if !ok {
		config.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	habitID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		config.Error(w, http.StatusNotFound, "habit not found")
		return
	}
	loc, err := h.location(r)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	limit, err := parseLimit(r)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	hw, err := h.service.GetHabitWithStreak(r.Context(), userID, habitID, loc, limit)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	config.JSON(w, http.StatusOK, hw)
}

func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(r)
	if !ok {
		config.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	loc, err := h.location(r)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	d, err := h.service.GetDashboard(r.Context(), userID, loc)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	config.JSON(w, http.StatusOK, d)
}

// RecordCompletion handles POST /habits/{id}/completions. The body is optional.
func (h *Handler) RecordCompletion(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(r)
	if !ok {
		config.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	habitID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		config.Error(w, http.StatusNotFound, "habit not found")
		return
	}

	var req recordCompletionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		config.WithContext(r.Context()).WithError(err).Warn("Invalid request body")
		config.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	h.record(w, r, userID, habitID, req)
}

// RecordHabitLog handles POST /habit-logs, where the habit id travels in the body.
func (h *Handler) RecordHabitLog(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(r)
	if !ok {
		config.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req recordCompletionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.WithContext(r.Context()).WithError(err).Warn("Invalid request body")
		config.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	habitID, err := uuid.Parse(req.HabitID)
	if err != nil {
		config.Error(w, http.StatusBadRequest, "habitId must be a valid id")
		return
	}
	h.record(w, r, userID, habitID, req)
}

func (h *Handler) record(w http.ResponseWriter, r *http.Request, userID, habitID uuid.UUID, req recordCompletionRequest) {
	loc, err := h.location(r)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	created, err := h.service.RecordCompletion(r.Context(), userID, habitID, CompletionInput{
		Day:         req.Date,
		Location:    loc,
		Note:        req.Note,
		Mood:        req.Mood,
		EnergyLevel: req.EnergyLevel,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	config.JSON(w, http.StatusCreated, created)
}

func (h *Handler) ListCompletions(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(r)
	if !ok {
		config.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	habitID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		config.Error(w, http.StatusNotFound, "habit not found")
		return
	}
	limit, err := parseLimit(r)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	logs, err := h.service.ListCompletions(r.Context(), userID, habitID, limit)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	config.JSON(w, http.StatusOK, logs)
}

func (h *Handler) ListHabitLogs(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(r)
	if !ok {
		config.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	limit, err := parseLimit(r)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	logs, err := h.service.ListUserCompletions(r.Context(), userID, limit)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	config.JSON(w, http.StatusOK, logs)
}
