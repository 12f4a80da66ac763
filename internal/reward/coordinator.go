// Package reward couples task completion to a garden reward.
//
// Completing a task plants a randomly chosen flower and grants coins, with
// graceful degradation to a local simulation when the server lacks the
// planting endpoint. Completion and reward are not transactionally linked:
// once the completion call succeeds, a later planting failure leaves the
// task completed.
package reward

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/taskbloom/taskbloom/internal/dependencies/random"
	"github.com/taskbloom/taskbloom/internal/garden"
	"github.com/taskbloom/taskbloom/internal/model"
)

// Reward placement bounds: positions are drawn from [PositionMin,
// PositionMin+PositionSpan] on each axis, keeping plants away from the
// scene edges
const (
	PositionMin  = 20.0
	PositionSpan = 60.0
)

// TaskCompleter marks tasks complete server-side and in local view state
type TaskCompleter interface {
	Complete(ctx context.Context, id model.TaskID) (*model.Task, error)
}

// Garden is the slice of the garden store the coordinator drives
type Garden interface {
	PlantNewFlower(ctx context.Context, species string, position model.Position) (*garden.PlantResult, error)
	FetchGarden(ctx context.Context) error
}

// Reward describes the outcome of a completed task's reward flow
type Reward struct {
	Task     *model.Task
	Species  model.Species
	Position model.Position
	Plant    *model.Plant
	// Simulated is true when the planting fell back to the local simulation
	Simulated bool
}

// Coordinator runs the task-completion reward flow
type Coordinator struct {
	tasks  TaskCompleter
	garden Garden
	random random.Random
	logger *slog.Logger
}

// New creates a reward coordinator
func New(tasks TaskCompleter, g Garden, rnd random.Random, logger *slog.Logger) *Coordinator {
	return &Coordinator{
		tasks:  tasks,
		garden: g,
		random: rnd,
		logger: logger,
	}
}

// CompleteTask completes the task, plants a random flower as the reward,
// and reconciles garden stats, strictly in that order. A completion failure
// aborts the whole flow with no local mutation; a planting failure (other
// than the simulated 404 fallback) aborts the reward but the task stays
// completed.
func (c *Coordinator) CompleteTask(ctx context.Context, id model.TaskID) (*Reward, error) {
	task, err := c.tasks.Complete(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to complete task: %w", err)
	}

	species := c.pickSpecies()
	position := c.pickPosition()

	c.logger.Info("planting reward flower",
		slog.String("task", string(id)),
		slog.String("species", species.ID),
		slog.Float64("x", position.X),
		slog.Float64("y", position.Y),
	)

	result, err := c.garden.PlantNewFlower(ctx, species.ID, position)
	if err != nil {
		return nil, fmt.Errorf("planting reward: %w", err)
	}

	// Reconcile stats after the planting settles; fetch errors are logged by
	// the garden store and do not undo the reward
	_ = c.garden.FetchGarden(ctx)

	return &Reward{
		Task:      task,
		Species:   species,
		Position:  position,
		Plant:     result.Plant,
		Simulated: result.Simulated,
	}, nil
}

// pickSpecies draws one species uniformly from the fixed catalog
func (c *Coordinator) pickSpecies() model.Species {
	return model.PlantSpecies[c.random.Intn(len(model.PlantSpecies))]
}

// pickPosition draws x and y independently and uniformly from the placement
// bounds
func (c *Coordinator) pickPosition() model.Position {
	return model.Position{
		X: PositionMin + c.random.Float64()*PositionSpan,
		Y: PositionMin + c.random.Float64()*PositionSpan,
	}
}
