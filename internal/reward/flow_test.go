package reward_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskbloom/taskbloom/internal/apitest"
	"github.com/taskbloom/taskbloom/internal/factory"
	"github.com/taskbloom/taskbloom/internal/model"
)

func newFlowFixture(t *testing.T) (*apitest.Server, *factory.TestApp, model.TaskID) {
	t.Helper()

	server := apitest.New()
	t.Cleanup(server.Close)

	app := factory.NewTestApp(server.URL())
	app.Session.Start(context.Background())
	result := app.Session.Login(context.Background(), "flora@example.com", "petals123")
	require.True(t, result.Success)

	id := server.AddTask(model.Task{Title: "Repot the ferns", Category: "personal", Priority: model.PriorityMedium, Difficulty: model.DifficultyEasy})
	_, err := app.Tasks.Fetch(context.Background())
	require.NoError(t, err)

	return server, app, id
}

func TestCompleteTaskEndToEnd(t *testing.T) {
	server, app, id := newFlowFixture(t)
	app.MockRandom.QueueIntn(1)
	app.MockRandom.QueueFloat64(0.5, 0.5)

	reward, err := app.Rewards.CompleteTask(context.Background(), id)
	require.NoError(t, err)

	require.NotNil(t, reward.Task)
	assert.True(t, reward.Task.Completed)
	assert.Equal(t, "sunflower", reward.Species.ID)
	assert.False(t, reward.Simulated)

	// Completion reached the server
	assert.Equal(t, 1, server.Calls(apitest.CallComplete))
	assert.True(t, server.TaskList[0].Completed)

	// The reward flower is in the garden and stats are reconciled
	require.NotNil(t, reward.Plant)
	assert.Equal(t, "sunflower", reward.Plant.Species)
	assert.Equal(t, 2, app.Garden.Stats().TotalPlants)

	// The local task cache reflects the completion
	tasks := app.Tasks.Tasks()
	require.Len(t, tasks, 1)
	assert.True(t, tasks[0].Completed)
}

func TestCompleteTaskEndToEndSimulatedFallback(t *testing.T) {
	server, app, id := newFlowFixture(t)
	server.PlantingEnabled = false
	app.MockRandom.QueueIntn(0)
	app.MockRandom.QueueFloat64(0.25, 0.75)

	reward, err := app.Rewards.CompleteTask(context.Background(), id)
	require.NoError(t, err)

	assert.True(t, reward.Simulated)
	assert.Equal(t, "daisy", reward.Species.ID)
	require.NotNil(t, reward.Plant)
	assert.Equal(t, 1, reward.Plant.GrowthStage)

	// The closing reconciliation fetch supersedes the simulated coin grant
	// with the server's authoritative stats
	assert.Equal(t, 120, app.Garden.Stats().Coins)
	assert.Equal(t, 1, app.Garden.Stats().TotalPlants)
}

func TestCompleteTaskEndToEndUnknownTask(t *testing.T) {
	_, app, _ := newFlowFixture(t)

	reward, err := app.Rewards.CompleteTask(context.Background(), "task-missing")
	require.Error(t, err)
	assert.Nil(t, reward)

	// No reward side effects on a failed completion
	assert.Equal(t, 1, app.Garden.Stats().TotalPlants)
}
