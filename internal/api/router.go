// Package api exposes read-mostly session analytics over HTTP for
// companion dashboards.
package api

import (
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/alexanderramin/era/internal/app"
	"github.com/gorilla/mux"
)

// Services are the use cases the API serves. Metrics is optional.
type Services struct {
	Summary     app.SummaryUseCase
	DailyCounts app.DailyCountsUseCase
	SessionsOn  app.SessionsOnUseCase
	Goal        app.DailyGoalUseCase
	Reminders   app.ListRemindersUseCase
	Metrics     http.Handler
	Location    *time.Location
	Now         func() time.Time
}

// NewRouter wires every endpoint. Routes under /api are rate limited per
// client when limiter is non-nil.
func NewRouter(svc Services, limiter *ClientLimiter) *mux.Router {
	if svc.Location == nil {
		svc.Location = time.Local
	}
	if svc.Now == nil {
		svc.Now = time.Now
	}
	h := &handlers{svc: svc}

	r := mux.NewRouter()
	r.HandleFunc("/healthz", h.health).Methods(http.MethodGet)
	if svc.Metrics != nil {
		r.Handle("/metrics", svc.Metrics).Methods(http.MethodGet)
	}

	api := r.PathPrefix("/api").Subrouter()
	if limiter != nil {
		api.Use(limiter.Middleware)
	}

	api.Handle("/summary", methods{http.MethodGet: h.summary})
	api.Handle("/sessions/daily", methods{http.MethodGet: h.dailyCounts})
	api.Handle("/sessions", methods{http.MethodGet: h.sessionsOn})
	api.Handle("/goal", methods{http.MethodGet: h.getGoal, http.MethodPut: h.putGoal})
	api.Handle("/reminders", methods{http.MethodGet: h.reminders})

	return r
}

// methods dispatches on the request method. mux reports a method mismatch
// inside a subrouter as 404, so /api routes answer 405 here instead.
type methods map[string]http.HandlerFunc

func (m methods) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h, ok := m[r.Method]; ok {
		h(w, r)
		return
	}
	allowed := make([]string, 0, len(m))
	for method := range m {
		allowed = append(allowed, method)
	}
	slices.Sort(allowed)
	w.Header().Set("Allow", strings.Join(allowed, ", "))
	writeError(w, http.StatusMethodNotAllowed, "method not allowed")
}
