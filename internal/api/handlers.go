package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/alexanderramin/era/internal/domain"
)

const (
	defaultTrendDays = 7
	maxTrendDays     = 366
)

type handlers struct {
	svc Services
}

type sessionView struct {
	ID          string     `json:"id"`
	StartedAt   time.Time  `json:"started_at"`
	EndedAt     *time.Time `json:"ended_at"`
	DurationSec float64    `json:"duration_sec"`
}

type dailyCountsView struct {
	Days   []string `json:"days"`
	Counts []int    `json:"counts"`
	Total  int      `json:"total"`
}

type goalView struct {
	Goal int `json:"goal"`
}

type reminderView struct {
	ID   string `json:"id"`
	Time string `json:"time"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func (h *handlers) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *handlers) summary(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Summary.Summary(r.Context()))
}

func (h *handlers) dailyCounts(w http.ResponseWriter, r *http.Request) {
	days := defaultTrendDays
	if v := r.URL.Query().Get("days"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > maxTrendDays {
			writeError(w, http.StatusBadRequest, "days must be between 1 and 366")
			return
		}
		days = n
	}

	series := h.svc.DailyCounts.DailyCounts(r.Context(), days)
	today := h.svc.Now().In(h.svc.Location)
	labels := make([]string, series.Len())
	for i := range labels {
		labels[i] = today.AddDate(0, 0, i-series.Len()+1).Format(time.DateOnly)
	}
	writeJSON(w, http.StatusOK, dailyCountsView{Days: labels, Counts: series.Counts, Total: series.Total()})
}

func (h *handlers) sessionsOn(w http.ResponseWriter, r *http.Request) {
	date := h.svc.Now().In(h.svc.Location)
	if v := r.URL.Query().Get("date"); v != "" {
		parsed, err := time.ParseInLocation(time.DateOnly, v, h.svc.Location)
		if err != nil {
			writeError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
			return
		}
		date = parsed
	}

	records := h.svc.SessionsOn.SessionsOn(r.Context(), date)
	out := make([]sessionView, 0, len(records))
	for _, rec := range records {
		out = append(out, toSessionView(rec))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *handlers) getGoal(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, goalView{Goal: h.svc.Goal.DailyGoal(r.Context())})
}

func (h *handlers) putGoal(w http.ResponseWriter, r *http.Request) {
	var body goalView
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<10)).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "body must be {\"goal\": <int>}")
		return
	}
	stored := h.svc.Goal.SetDailyGoal(r.Context(), body.Goal)
	writeJSON(w, http.StatusOK, goalView{Goal: stored})
}

func (h *handlers) reminders(w http.ResponseWriter, r *http.Request) {
	reminders, err := h.svc.Reminders.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "listing reminders failed")
		return
	}
	out := make([]reminderView, 0, len(reminders))
	for _, rem := range reminders {
		out = append(out, reminderView{ID: rem.ID(), Time: rem.String()})
	}
	writeJSON(w, http.StatusOK, out)
}

func toSessionView(rec *domain.SessionRecord) sessionView {
	return sessionView{
		ID:          rec.ID,
		StartedAt:   rec.StartedAt,
		EndedAt:     rec.EndedAt,
		DurationSec: rec.Duration().Seconds(),
	}
}
