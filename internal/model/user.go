package model

import "time"

// UserID identifies a user account on the server
type UserID string

// UserStats holds the aggregate progress counters attached to a user profile
type UserStats struct {
	Level          int `json:"level"`
	Streak         int `json:"streak"`
	Coins          int `json:"coins"`
	CompletedTasks int `json:"completedTasks"`
	TotalTasks     int `json:"totalTasks"`
	Experience     int `json:"experience"`
}

// User is the authenticated user's profile as returned by the API
type User struct {
	ID        UserID    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Stats     UserStats `json:"stats"`
	CreatedAt time.Time `json:"createdAt"`
}
