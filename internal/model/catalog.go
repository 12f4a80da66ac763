package model

// Species describes a plantable flower species
type Species struct {
	ID         string
	Name       string
	Emoji      string
	Rarity     string
	GrowthTime int
}

// PlantSpecies is the fixed catalog of plantable species. Reward planting
// draws uniformly from this list.
var PlantSpecies = []Species{
	{ID: "daisy", Name: "Daisy", Emoji: "🌼", Rarity: "common", GrowthTime: 1},
	{ID: "sunflower", Name: "Sunflower", Emoji: "🌻", Rarity: "common", GrowthTime: 2},
	{ID: "rose", Name: "Rose", Emoji: "🌹", Rarity: "rare", GrowthTime: 3},
	{ID: "lavender", Name: "Lavender", Emoji: "🪻", Rarity: "uncommon", GrowthTime: 2},
	{ID: "orchid", Name: "Orchid", Emoji: "💮", Rarity: "epic", GrowthTime: 4},
	{ID: "cherry", Name: "Cherry Blossom", Emoji: "🌸", Rarity: "rare", GrowthTime: 3},
}

// SpeciesByID looks up a species in the catalog
func SpeciesByID(id string) (Species, bool) {
	for _, s := range PlantSpecies {
		if s.ID == id {
			return s, true
		}
	}
	return Species{}, false
}

// Scene is a named, unlockable visual environment for the garden
type Scene struct {
	ID          string
	Name        string
	Icon        string
	Description string
	// RequiredLevel unlocks the scene by user level; 0 means the scene is
	// unlocked via the garden's unlockedScenes set instead
	RequiredLevel int
	// AlwaysUnlocked marks the starting scene
	AlwaysUnlocked bool
}

// Scenes is the fixed scene catalog
var Scenes = []Scene{
	{ID: "meadow", Name: "Serene Meadow", Icon: "🌿", Description: "A peaceful meadow with gentle breezes", AlwaysUnlocked: true},
	{ID: "forest", Name: "Enchanted Forest", Icon: "🌳", Description: "Mystical forest with ancient trees"},
	{ID: "beach", Name: "Crystal Beach", Icon: "🏖️", Description: "Sandy shores with ocean waves"},
	{ID: "mountain", Name: "Majestic Peak", Icon: "⛰️", Description: "Breathtaking mountain views", RequiredLevel: 10},
	{ID: "celestial", Name: "Starlight Garden", Icon: "✨", Description: "Cosmic garden under the stars", RequiredLevel: 15},
}

// SceneUnlocked reports whether a scene is available given the garden's
// unlocked set and the user's level
func SceneUnlocked(sc Scene, garden *Garden, level int) bool {
	if sc.AlwaysUnlocked {
		return true
	}
	if sc.RequiredLevel > 0 {
		return level >= sc.RequiredLevel
	}
	return garden != nil && garden.HasScene(sc.ID)
}
