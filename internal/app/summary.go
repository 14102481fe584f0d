package app

import (
	"time"

	"github.com/alexanderramin/era/internal/domain"
)

// SeriesView is a trailing per-day count series, oldest day first.
type SeriesView struct {
	Days       int       `json:"days"`
	Counts     []int     `json:"counts"`
	Normalized []float64 `json:"normalized"`
	Total      int       `json:"total"`
}

func NewSeriesView(series domain.TrendSeries) SeriesView {
	counts := series.Counts
	if counts == nil {
		counts = []int{}
	}
	return SeriesView{
		Days:       series.Len(),
		Counts:     counts,
		Normalized: series.Normalized(),
		Total:      series.Total(),
	}
}

type GoalProgressView struct {
	Done int  `json:"done"`
	Goal int  `json:"goal"`
	Met  bool `json:"met"`
}

func NewGoalProgressView(p domain.GoalProgress) GoalProgressView {
	return GoalProgressView{Done: p.Done, Goal: p.Goal, Met: p.Met()}
}

// AnalyticsSummary is everything the stats screen and the API summary
// endpoint show. Optional values are nil when there is not enough history.
type AnalyticsSummary struct {
	GeneratedAt time.Time `json:"generated_at"`

	Today     int `json:"today"`
	ThisWeek  int `json:"this_week"`
	ThisMonth int `json:"this_month"`

	Weekly  SeriesView `json:"weekly"`
	Monthly SeriesView `json:"monthly"`

	AverageInterval    *time.Duration        `json:"-"`
	AverageIntervalSec *float64              `json:"average_interval_sec"`
	DominantTimeOfDay  *domain.DaytimeBucket `json:"dominant_time_of_day"`
	SinceLastSession   *time.Duration        `json:"-"`
	SinceLastSec       *float64              `json:"since_last_session_sec"`

	TotalMinutes  int              `json:"total_minutes"`
	CurrentStreak int              `json:"current_streak"`
	LongestStreak int              `json:"longest_streak"`
	Goal          GoalProgressView `json:"goal"`
}

// SetAverageInterval fills both the duration and its JSON seconds form.
func (s *AnalyticsSummary) SetAverageInterval(d *time.Duration) {
	s.AverageInterval = d
	s.AverageIntervalSec = seconds(d)
}

func (s *AnalyticsSummary) SetSinceLastSession(d *time.Duration) {
	s.SinceLastSession = d
	s.SinceLastSec = seconds(d)
}

func seconds(d *time.Duration) *float64 {
	if d == nil {
		return nil
	}
	v := d.Seconds()
	return &v
}
