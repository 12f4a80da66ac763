// Package apitest provides an in-process fake of the TaskBloom API for
// tests. It implements the endpoints the client consumes with just enough
// behavior to exercise the session, garden, and reward flows, and counts
// calls per endpoint so tests can assert on traffic.
package apitest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/mux"

	"github.com/taskbloom/taskbloom/internal/model"
)

// Call names used with Calls
const (
	CallLogin     = "login"
	CallRegister  = "register"
	CallMe        = "me"
	CallGarden    = "garden"
	CallPlant     = "plant"
	CallTasks     = "tasks"
	CallComplete  = "complete"
	CallDelete    = "delete"
	CallAnalytics = "analytics"
)

// Server is a fake TaskBloom API
type Server struct {
	httpServer *httptest.Server

	mu    sync.Mutex
	calls map[string]int

	// Accounts maps email to password for login
	Accounts map[string]string

	// token is the bearer credential issued by login/register; "" means no
	// valid session exists
	token   string
	nextID  int
	nowFunc func() time.Time

	// State served to the client; tests may mutate between requests
	User        model.User
	GardenDoc   model.Garden
	GardenStats model.GardenStats
	Inv         model.Inventory
	TaskList    []model.Task
	Analytics   model.Analytics

	// PlantingEnabled controls whether POST /api/garden/plant exists; when
	// false the route responds 404 like a server without the endpoint
	PlantingEnabled bool
	// CompleteFailStatus, when non-zero, makes task completion fail with
	// that HTTP status
	CompleteFailStatus int
	// PlantFailStatus, when non-zero, makes planting fail with that status
	// (overrides PlantingEnabled)
	PlantFailStatus int
}

// New creates and starts a fake API server with a default account and data
func New() *Server {
	s := &Server{
		calls: make(map[string]int),
		Accounts: map[string]string{
			"flora@example.com": "petals123",
		},
		nowFunc: func() time.Time {
			return time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
		},
		User: model.User{
			ID:       "u1",
			Username: "flora",
			Email:    "flora@example.com",
			Stats: model.UserStats{
				Level:          3,
				Streak:         4,
				Coins:          120,
				CompletedTasks: 17,
				TotalTasks:     25,
				Experience:     340,
			},
			CreatedAt: time.Date(2023, 11, 5, 8, 0, 0, 0, time.UTC),
		},
		GardenDoc: model.Garden{
			Plants: []model.Plant{
				{ID: "p1", Species: "daisy", Position: model.Position{X: 30, Y: 40}, PlantedAt: time.Date(2024, 2, 1, 10, 0, 0, 0, time.UTC), GrowthStage: 3},
			},
			UnlockedScenes: []string{"forest"},
			CurrentScene:   "meadow",
		},
		GardenStats: model.GardenStats{
			Coins:          120,
			Streak:         4,
			Level:          3,
			CompletedTasks: 17,
			TotalPlants:    1,
			Experience:     340,
		},
		Inv: model.Inventory{
			Seeds: []string{"daisy", "rose"},
			Coins: 120,
		},
		Analytics: model.Analytics{
			Overview: model.AnalyticsOverview{
				CompletionRate:    68,
				AvgFocusTime:      "2h",
				CurrentStreak:     4,
				ProductivityGrade: "B+",
			},
			WeeklyProgress: []model.WeekProgress{
				{Week: "2024-W08", TotalTasks: 10, CompletedTasks: 7, CompletionRate: 70},
				{Week: "2024-W09", TotalTasks: 8, CompletedTasks: 5, CompletionRate: 62.5},
			},
			TaskCategories: []model.CategoryCount{
				{Category: "personal", Count: 12},
				{Category: "work", Count: 13},
			},
			DifficultyDistribution: []model.DifficultyCount{
				{Difficulty: "easy", Count: 9},
				{Difficulty: "medium", Count: 11},
				{Difficulty: "hard", Count: 5},
			},
		},
		PlantingEnabled: true,
	}

	r := mux.NewRouter()
	r.HandleFunc("/api/auth/login", s.handleLogin).Methods(http.MethodPost)
	r.HandleFunc("/api/auth/register", s.handleRegister).Methods(http.MethodPost)
	r.HandleFunc("/api/users/me", s.handleMe).Methods(http.MethodGet)
	r.HandleFunc("/api/garden", s.handleGarden).Methods(http.MethodGet)
	r.HandleFunc("/api/garden/plant", s.handlePlant).Methods(http.MethodPost)
	r.HandleFunc("/api/tasks", s.handleTasks).Methods(http.MethodGet)
	r.HandleFunc("/api/tasks", s.handleCreateTask).Methods(http.MethodPost)
	r.HandleFunc("/api/tasks/{id}/complete", s.handleComplete).Methods(http.MethodPatch)
	r.HandleFunc("/api/tasks/{id}", s.handleDeleteTask).Methods(http.MethodDelete)
	r.HandleFunc("/api/analytics", s.handleAnalytics).Methods(http.MethodGet)

	s.httpServer = httptest.NewServer(r)
	return s
}

// URL returns the server's base URL
func (s *Server) URL() string {
	return s.httpServer.URL
}

// Close shuts the server down
func (s *Server) Close() {
	s.httpServer.Close()
}

// Calls returns how many requests have reached the named endpoint
func (s *Server) Calls(name string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[name]
}

// Token returns the currently issued bearer token, or ""
func (s *Server) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// IssueToken installs a valid session token without going through login,
// for tests that seed a persisted token
func (s *Server) IssueToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
}

// RevokeToken invalidates the current session so subsequent authenticated
// calls receive 401
func (s *Server) RevokeToken() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
}

// AddTask seeds a task, returning its id
func (s *Server) AddTask(t model.Task) model.TaskID {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t.ID == "" {
		s.nextID++
		t.ID = model.TaskID(fmt.Sprintf("task-%d", s.nextID))
	}
	s.TaskList = append(s.TaskList, t)
	return t.ID
}

func (s *Server) count(name string) {
	s.mu.Lock()
	s.calls[name]++
	s.mu.Unlock()
}

func (s *Server) authorized(r *http.Request) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.token == "" {
		return false
	}
	return r.Header.Get("Authorization") == "Bearer "+s.token
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"message": msg})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	s.count(CallLogin)

	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	s.mu.Lock()
	pass, ok := s.Accounts[req.Email]
	s.mu.Unlock()
	if !ok || pass != req.Password {
		writeMessage(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	s.mu.Lock()
	s.nextID++
	s.token = fmt.Sprintf("tok-%d", s.nextID)
	token, user := s.token, s.User
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]any{"token": token, "user": user})
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	s.count(CallRegister)

	var req struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	s.mu.Lock()
	if _, exists := s.Accounts[req.Email]; exists {
		s.mu.Unlock()
		writeMessage(w, http.StatusBadRequest, "Email already registered")
		return
	}
	s.Accounts[req.Email] = req.Password
	s.User.Username = req.Username
	s.User.Email = req.Email
	s.nextID++
	s.token = fmt.Sprintf("tok-%d", s.nextID)
	token, user := s.token, s.User
	s.mu.Unlock()

	writeJSON(w, http.StatusCreated, map[string]any{"token": token, "user": user})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	s.count(CallMe)

	if !s.authorized(r) {
		writeMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	s.mu.Lock()
	user := s.User
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]any{"user": user})
}

func (s *Server) handleGarden(w http.ResponseWriter, r *http.Request) {
	s.count(CallGarden)

	if !s.authorized(r) {
		writeMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	s.mu.Lock()
	body := map[string]any{
		"garden":    s.GardenDoc,
		"stats":     s.GardenStats,
		"inventory": s.Inv,
	}
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, body)
}

func (s *Server) handlePlant(w http.ResponseWriter, r *http.Request) {
	s.count(CallPlant)

	if !s.authorized(r) {
		writeMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	s.mu.Lock()
	failStatus := s.PlantFailStatus
	enabled := s.PlantingEnabled
	s.mu.Unlock()

	if failStatus != 0 {
		writeMessage(w, failStatus, "Planting failed")
		return
	}
	if !enabled {
		writeMessage(w, http.StatusNotFound, "Not found")
		return
	}

	var req struct {
		Species  string         `json:"species"`
		Position model.Position `json:"position"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	s.mu.Lock()
	s.nextID++
	plant := model.Plant{
		ID:          fmt.Sprintf("plant-%d", s.nextID),
		Species:     req.Species,
		Position:    req.Position,
		PlantedAt:   s.nowFunc(),
		GrowthStage: 1,
	}
	s.GardenDoc.Plants = append(s.GardenDoc.Plants, plant)
	s.GardenStats.TotalPlants++
	s.GardenStats.Coins += 10
	s.mu.Unlock()

	writeJSON(w, http.StatusCreated, map[string]any{"plant": plant, "message": "Flower planted"})
}

func (s *Server) handleTasks(w http.ResponseWriter, r *http.Request) {
	s.count(CallTasks)

	if !s.authorized(r) {
		writeMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	s.mu.Lock()
	tasks := append([]model.Task(nil), s.TaskList...)
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]any{"tasks": tasks})
}

func (s *Server) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	s.count(CallTasks)

	if !s.authorized(r) {
		writeMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var nt model.NewTask
	if err := json.NewDecoder(r.Body).Decode(&nt); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if strings.TrimSpace(nt.Title) == "" {
		writeMessage(w, http.StatusBadRequest, "Title is required")
		return
	}

	s.mu.Lock()
	s.nextID++
	task := model.Task{
		ID:          model.TaskID(fmt.Sprintf("task-%d", s.nextID)),
		Title:       nt.Title,
		Description: nt.Description,
		Category:    nt.Category,
		Priority:    nt.Priority,
		Difficulty:  nt.Difficulty,
	}
	s.TaskList = append(s.TaskList, task)
	s.mu.Unlock()

	writeJSON(w, http.StatusCreated, map[string]any{"task": task})
}

func (s *Server) handleComplete(w http.ResponseWriter, r *http.Request) {
	s.count(CallComplete)

	if !s.authorized(r) {
		writeMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	s.mu.Lock()
	failStatus := s.CompleteFailStatus
	s.mu.Unlock()
	if failStatus != 0 {
		writeMessage(w, failStatus, "Completion failed")
		return
	}

	id := model.TaskID(mux.Vars(r)["id"])

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.TaskList {
		if s.TaskList[i].ID == id {
			now := s.nowFunc()
			s.TaskList[i].Completed = true
			s.TaskList[i].CompletedAt = &now
			writeJSON(w, http.StatusOK, map[string]any{"task": s.TaskList[i]})
			return
		}
	}
	writeMessage(w, http.StatusNotFound, "Task not found")
}

func (s *Server) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	s.count(CallDelete)

	if !s.authorized(r) {
		writeMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	id := model.TaskID(mux.Vars(r)["id"])

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.TaskList {
		if s.TaskList[i].ID == id {
			s.TaskList = append(s.TaskList[:i], s.TaskList[i+1:]...)
			w.WriteHeader(http.StatusNoContent)
			return
		}
	}
	writeMessage(w, http.StatusNotFound, "Task not found")
}

func (s *Server) handleAnalytics(w http.ResponseWriter, r *http.Request) {
	s.count(CallAnalytics)

	if !s.authorized(r) {
		writeMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	s.mu.Lock()
	data := s.Analytics
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": data})
}
