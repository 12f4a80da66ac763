package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/taskbloom/taskbloom/internal/garden"
	"github.com/taskbloom/taskbloom/internal/model"
	"github.com/taskbloom/taskbloom/internal/reward"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// GardenView bundles the garden store state for display
type GardenView struct {
	Garden    *model.Garden      `json:"garden"`
	Stats     *model.GardenStats `json:"stats"`
	Inventory *model.Inventory   `json:"inventory"`
}

// SceneStatus is a catalog scene plus its unlock state for the current user
type SceneStatus struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Icon          string `json:"icon"`
	Description   string `json:"description"`
	Unlocked      bool   `json:"unlocked"`
	RequiredLevel int    `json:"requiredLevel,omitempty"`
}

// ProfileView bundles the profile page data for display
type ProfileView struct {
	User      *model.User      `json:"user"`
	Garden    *model.Garden    `json:"garden,omitempty"`
	Inventory *model.Inventory `json:"inventory,omitempty"`
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "%s %s\n", styleBad.Render("Error:"), err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case model.User:
		o.printUser(v)
	case []model.Task:
		o.printTasks(v)
	case model.Task:
		o.printTask(v)
	case GardenView:
		o.printGarden(v)
	case []SceneStatus:
		o.printScenes(v)
	case ProfileView:
		o.printProfile(v)
	case *model.Analytics:
		o.printAnalytics(v)
	case *reward.Reward:
		o.printReward(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

func (o *Output) printUser(u model.User) {
	fmt.Println(heading(iconSeedling, u.Username))
	fmt.Println(labelValue("Email", u.Email))
	fmt.Println(labelValue("Level", u.Stats.Level))
	fmt.Println(labelValue("Streak", fmt.Sprintf("%d %s", u.Stats.Streak, iconStreak)))
	fmt.Println(labelValue("Coins", fmt.Sprintf("%d %s", u.Stats.Coins, iconCoin)))
	fmt.Println(labelValue("Tasks", fmt.Sprintf("%d/%d completed", u.Stats.CompletedTasks, u.Stats.TotalTasks)))
	fmt.Println(labelValue("Experience", u.Stats.Experience))
	if !u.CreatedAt.IsZero() {
		fmt.Println(labelValue("Member since", u.CreatedAt.Format("2 Jan 2006")))
	}
}

func (o *Output) printTasks(tasks []model.Task) {
	if len(tasks) == 0 {
		fmt.Println(styleMuted.Render("No tasks yet. Add one with 'bloom task add'."))
		return
	}

	for _, t := range tasks {
		o.printTaskLine(t)
	}
}

func (o *Output) printTaskLine(t model.Task) {
	mark := "[ ]"
	title := t.Title
	if t.Completed {
		mark = iconDone
		title = styleMuted.Render(title)
	}
	meta := fmt.Sprintf("%s/%s/%s", t.Category, t.Priority, t.Difficulty)
	fmt.Printf("%s %s  %s  %s\n", mark, styleMuted.Render(string(t.ID)), title, styleMuted.Render(meta))
	if t.DueDate != nil {
		fmt.Printf("      %s\n", styleMuted.Render("due "+t.DueDate.Format("2 Jan 2006")))
	}
}

func (o *Output) printTask(t model.Task) {
	fmt.Println(labelValue("Task", string(t.ID)))
	fmt.Println(labelValue("Title", t.Title))
	if t.Description != "" {
		fmt.Println(labelValue("Description", t.Description))
	}
	fmt.Println(labelValue("Category", t.Category))
	fmt.Println(labelValue("Priority", t.Priority))
	fmt.Println(labelValue("Difficulty", t.Difficulty))
	if t.DueDate != nil {
		fmt.Println(labelValue("Due", t.DueDate.Format("2 Jan 2006")))
	}
	if t.Completed {
		fmt.Println(labelValue("Status", "completed "+iconDone))
	}
}

func (o *Output) printGarden(v GardenView) {
	if v.Garden == nil {
		fmt.Println(styleMuted.Render("No garden yet."))
		return
	}

	scene := v.Garden.CurrentScene
	if scene == "" {
		scene = "meadow"
	}
	fmt.Println(heading(iconSeedling, "Your Garden"))
	fmt.Println(labelValue("Scene", scene))

	var lines []string
	for _, p := range v.Garden.Plants {
		sp, ok := model.SpeciesByID(p.Species)
		emoji := iconSeedling
		name := p.Species
		if ok {
			emoji = sp.Emoji
			name = sp.Name
		}
		lines = append(lines, fmt.Sprintf("%s %s  stage %d  (%.0f, %.0f)",
			emoji, name, p.GrowthStage, p.Position.X, p.Position.Y))
	}
	if len(lines) == 0 {
		lines = append(lines, styleMuted.Render("Nothing planted yet. Complete a task!"))
	}
	fmt.Println(stylePanel.Render(strings.Join(lines, "\n")))

	if v.Stats != nil {
		fmt.Printf("%s %d   %s %d   %s level %d   plants %d\n",
			iconCoin, v.Stats.Coins,
			iconStreak, v.Stats.Streak,
			iconSeedling, v.Stats.Level,
			v.Stats.TotalPlants)
	}
	if v.Inventory != nil && len(v.Inventory.Seeds) > 0 {
		fmt.Println(labelValue("Seeds", strings.Join(v.Inventory.Seeds, ", ")))
	}
}

func (o *Output) printScenes(scenes []SceneStatus) {
	fmt.Println(heading(iconSeedling, "Garden Scenes"))
	for _, sc := range scenes {
		status := styleGood.Render("unlocked")
		if !sc.Unlocked {
			if sc.RequiredLevel > 0 {
				status = fmt.Sprintf("%s level %d", iconLocked, sc.RequiredLevel)
			} else {
				status = iconLocked + " locked"
			}
		}
		fmt.Printf("%s %s  %s  %s\n", sc.Icon, styleKey.Render(sc.Name), styleMuted.Render(sc.Description), status)
	}
}

func (o *Output) printProfile(v ProfileView) {
	if v.User != nil {
		o.printUser(*v.User)
	}
	if v.Garden != nil {
		fmt.Println()
		fmt.Println(heading(iconSeedling, "Garden Progress"))
		fmt.Println(labelValue("Plants growing", len(v.Garden.Plants)))
		fmt.Println(labelValue("Unlocked scenes", len(v.Garden.UnlockedScenes)+1)) // +1 for the meadow
		fmt.Println(labelValue("Decorations", len(v.Garden.Decorations)))
	}
	if v.Inventory != nil {
		fmt.Println()
		fmt.Println(heading(iconCoin, "Inventory"))
		fmt.Println(labelValue("Available seeds", len(v.Inventory.Seeds)))
		fmt.Println(labelValue("Inventory coins", v.Inventory.Coins))
	}
}

func (o *Output) printAnalytics(a *model.Analytics) {
	fmt.Println(heading(iconChart, "Productivity Analytics"))
	fmt.Println(labelValue("Completion rate", fmt.Sprintf("%.0f%%", a.Overview.CompletionRate)))
	fmt.Println(labelValue("Avg focus time", a.Overview.AvgFocusTime))
	fmt.Println(labelValue("Current streak", fmt.Sprintf("%d %s", a.Overview.CurrentStreak, iconStreak)))
	fmt.Println(labelValue("Grade", styleGold.Render(a.Overview.ProductivityGrade)))

	if len(a.WeeklyProgress) > 0 {
		fmt.Println()
		fmt.Println(styleKey.Render("Weekly progress"))
		for _, w := range a.WeeklyProgress {
			fmt.Printf("  %s %s %d/%d\n", w.Week, bar(w.CompletedTasks, w.TotalTasks, 20), w.CompletedTasks, w.TotalTasks)
		}
	}

	if len(a.TaskCategories) > 0 {
		fmt.Println()
		fmt.Println(styleKey.Render("Categories"))
		max := 0
		for _, c := range a.TaskCategories {
			if c.Count > max {
				max = c.Count
			}
		}
		for _, c := range a.TaskCategories {
			fmt.Printf("  %-12s %s %d\n", c.Category, bar(c.Count, max, 20), c.Count)
		}
	}

	if len(a.DifficultyDistribution) > 0 {
		fmt.Println()
		fmt.Println(styleKey.Render("Difficulty"))
		max := 0
		for _, d := range a.DifficultyDistribution {
			if d.Count > max {
				max = d.Count
			}
		}
		for _, d := range a.DifficultyDistribution {
			fmt.Printf("  %-12s %s %d\n", d.Difficulty, bar(d.Count, max, 20), d.Count)
		}
	}
}

func (o *Output) printReward(r *reward.Reward) {
	fmt.Printf("%s Task completed!\n", iconDone)
	fmt.Printf("%s You planted a %s %s at (%.0f, %.0f)\n",
		iconSeedling, r.Species.Name, r.Species.Emoji, r.Position.X, r.Position.Y)
	if r.Simulated {
		fmt.Println(styleMuted.Render(fmt.Sprintf("(planted locally, +%d coins)", garden.SimulatedPlantReward)))
	}
}
