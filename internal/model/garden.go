package model

import "time"

// Position places a plant within the garden scene. Coordinates are
// percentages of the scene dimensions, in [0, 100].
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Plant is a single planted flower. Insertion order in Garden.Plants is
// planting order.
type Plant struct {
	ID          string    `json:"id"`
	Species     string    `json:"species"`
	Position    Position  `json:"position"`
	PlantedAt   time.Time `json:"plantedAt"`
	GrowthStage int       `json:"growthStage"`
}

// Garden is the user's garden document. UnlockedScenes only ever grows
// client-side; the server is the source of truth for everything else.
type Garden struct {
	Plants         []Plant  `json:"plants"`
	UnlockedScenes []string `json:"unlockedScenes"`
	CurrentScene   string   `json:"currentScene,omitempty"`
	Decorations    []string `json:"decorations,omitempty"`
}

// HasScene reports whether the scene id is in the unlocked set
func (g *Garden) HasScene(id string) bool {
	for _, s := range g.UnlockedScenes {
		if s == id {
			return true
		}
	}
	return false
}

// GardenStats holds the aggregate counters returned alongside the garden
type GardenStats struct {
	Coins          int `json:"coins"`
	Streak         int `json:"streak"`
	Level          int `json:"level"`
	CompletedTasks int `json:"completedTasks"`
	TotalPlants    int `json:"totalPlants"`
	Experience     int `json:"experience,omitempty"`
}

// Inventory is the user's seed and coin inventory, owned separately from
// the garden document
type Inventory struct {
	Seeds []string `json:"seeds"`
	Coins int      `json:"coins"`
}
