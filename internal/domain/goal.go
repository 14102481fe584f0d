package domain

const (
	DailyGoalKey     = "dailyBreathingGoal"
	DefaultDailyGoal = 3
	MinDailyGoal     = 1
)

// ClampGoal enforces the minimum daily goal.
func ClampGoal(v int) int {
	if v < MinDailyGoal {
		return MinDailyGoal
	}
	return v
}

type GoalProgress struct {
	Done int
	Goal int
}

func (g GoalProgress) Met() bool {
	return g.Goal > 0 && g.Done >= g.Goal
}

// Ratio is Done/Goal capped at 1.
func (g GoalProgress) Ratio() float64 {
	if g.Goal <= 0 {
		return 0
	}
	r := float64(g.Done) / float64(g.Goal)
	if r > 1 {
		return 1
	}
	return r
}
