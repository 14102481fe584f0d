package contract

import (
	"github.com/alexanderramin/era/internal/app"
	"github.com/alexanderramin/era/internal/domain"
)

type SeriesView = app.SeriesView

func NewSeriesView(series domain.TrendSeries) SeriesView {
	return app.NewSeriesView(series)
}

type GoalProgressView = app.GoalProgressView

func NewGoalProgressView(p domain.GoalProgress) GoalProgressView {
	return app.NewGoalProgressView(p)
}

type AnalyticsSummary = app.AnalyticsSummary
