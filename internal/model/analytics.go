package model

// AnalyticsOverview summarises productivity across all time
type AnalyticsOverview struct {
	CompletionRate    float64 `json:"completionRate"`
	AvgFocusTime      string  `json:"avgFocusTime"`
	CurrentStreak     int     `json:"currentStreak"`
	ProductivityGrade string  `json:"productivityGrade"`
}

// WeekProgress is one week's worth of task throughput
type WeekProgress struct {
	Week           string  `json:"week"`
	TotalTasks     int     `json:"totalTasks"`
	CompletedTasks int     `json:"completedTasks"`
	CompletionRate float64 `json:"completionRate"`
}

// CategoryCount counts tasks per category
type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// DifficultyCount counts tasks per difficulty
type DifficultyCount struct {
	Difficulty string `json:"difficulty"`
	Count      int    `json:"count"`
}

// Analytics is the payload of GET /api/analytics
type Analytics struct {
	Overview               AnalyticsOverview `json:"overview"`
	WeeklyProgress         []WeekProgress    `json:"weeklyProgress"`
	TaskCategories         []CategoryCount   `json:"taskCategories"`
	DifficultyDistribution []DifficultyCount `json:"difficultyDistribution"`
}
