package model

import "time"

// TaskID identifies a task on the server
type TaskID string

// Task priority values
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// Task difficulty values
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// Task is a single tracked task. Once Completed is true the task is
// immutable apart from deletion.
type Task struct {
	ID          TaskID     `json:"_id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Category    string     `json:"category"`
	Priority    string     `json:"priority"`
	Difficulty  string     `json:"difficulty"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

// NewTask holds the fields a client supplies when creating a task
type NewTask struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Category    string `json:"category"`
	Priority    string `json:"priority"`
	Difficulty  string `json:"difficulty"`
	DueDate     string `json:"dueDate,omitempty"`
}

// DefaultNewTask returns a NewTask with the same defaults the web client uses
func DefaultNewTask(title string) NewTask {
	return NewTask{
		Title:      title,
		Category:   "personal",
		Priority:   PriorityMedium,
		Difficulty: DifficultyMedium,
	}
}

// ValidDifficulty reports whether d is one of the accepted difficulty values
func ValidDifficulty(d string) bool {
	return d == DifficultyEasy || d == DifficultyMedium || d == DifficultyHard
}

// ValidPriority reports whether p is one of the accepted priority values
func ValidPriority(p string) bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh
}
