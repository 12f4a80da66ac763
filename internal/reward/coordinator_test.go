package reward

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskbloom/taskbloom/internal/dependencies/mocks"
	"github.com/taskbloom/taskbloom/internal/garden"
	"github.com/taskbloom/taskbloom/internal/model"
	"github.com/taskbloom/taskbloom/internal/testutil"
)

// fakeCompleter records calls and returns a canned task or error
type fakeCompleter struct {
	ops *[]string
	err error
}

func (f *fakeCompleter) Complete(ctx context.Context, id model.TaskID) (*model.Task, error) {
	*f.ops = append(*f.ops, "complete")
	if f.err != nil {
		return nil, f.err
	}
	return &model.Task{ID: id, Title: "Water the plants", Completed: true}, nil
}

// fakeGarden records calls and the planting arguments
type fakeGarden struct {
	ops *[]string

	plantErr  error
	simulated bool

	species  string
	position model.Position
}

func (f *fakeGarden) PlantNewFlower(ctx context.Context, species string, position model.Position) (*garden.PlantResult, error) {
	*f.ops = append(*f.ops, "plant")
	if f.plantErr != nil {
		return nil, f.plantErr
	}
	f.species = species
	f.position = position
	return &garden.PlantResult{
		Plant:     &model.Plant{ID: "p-new", Species: species, Position: position, GrowthStage: 1},
		Simulated: f.simulated,
	}, nil
}

func (f *fakeGarden) FetchGarden(ctx context.Context) error {
	*f.ops = append(*f.ops, "fetch")
	return nil
}

func newTestCoordinator(completer *fakeCompleter, g *fakeGarden) (*Coordinator, *mocks.MockRandom) {
	rnd := mocks.NewMockRandom()
	return New(completer, g, rnd, testutil.NopLogger()), rnd
}

func TestCompleteTaskRunsStepsInOrder(t *testing.T) {
	var ops []string
	coord, rnd := newTestCoordinator(&fakeCompleter{ops: &ops}, &fakeGarden{ops: &ops})
	rnd.QueueIntn(0)
	rnd.QueueFloat64(0.5, 0.5)

	reward, err := coord.CompleteTask(context.Background(), "t1")
	require.NoError(t, err)

	assert.Equal(t, []string{"complete", "plant", "fetch"}, ops)
	require.NotNil(t, reward.Task)
	assert.Equal(t, model.TaskID("t1"), reward.Task.ID)
	require.NotNil(t, reward.Plant)
	assert.False(t, reward.Simulated)
}

func TestCompleteTaskCompletionFailureAbortsFlow(t *testing.T) {
	var ops []string
	completer := &fakeCompleter{ops: &ops, err: errors.New("boom")}
	coord, _ := newTestCoordinator(completer, &fakeGarden{ops: &ops})

	reward, err := coord.CompleteTask(context.Background(), "t1")
	require.Error(t, err)
	assert.Nil(t, reward)

	// Nothing gets planted when completion fails
	assert.Equal(t, []string{"complete"}, ops)
}

func TestCompleteTaskPlantingFailureReturnsError(t *testing.T) {
	var ops []string
	g := &fakeGarden{ops: &ops, plantErr: errors.New("boom")}
	coord, rnd := newTestCoordinator(&fakeCompleter{ops: &ops}, g)
	rnd.QueueIntn(0)
	rnd.QueueFloat64(0.5, 0.5)

	reward, err := coord.CompleteTask(context.Background(), "t1")
	require.Error(t, err)
	assert.Nil(t, reward)

	// The completion already happened; only the reward is lost
	assert.Equal(t, []string{"complete", "plant"}, ops)
}

func TestCompleteTaskPicksSpeciesFromCatalog(t *testing.T) {
	var ops []string
	g := &fakeGarden{ops: &ops}
	coord, rnd := newTestCoordinator(&fakeCompleter{ops: &ops}, g)
	rnd.QueueIntn(2)
	rnd.QueueFloat64(0.5, 0.5)

	reward, err := coord.CompleteTask(context.Background(), "t1")
	require.NoError(t, err)

	assert.Equal(t, "rose", reward.Species.ID)
	assert.Equal(t, "rose", g.species)
}

func TestCompleteTaskPositionStaysOffSceneEdges(t *testing.T) {
	cases := []struct {
		name  string
		draws []float64
		wantX float64
		wantY float64
	}{
		{name: "lower bound", draws: []float64{0, 0}, wantX: 20, wantY: 20},
		{name: "upper bound", draws: []float64{1, 1}, wantX: 80, wantY: 80},
		{name: "midpoint", draws: []float64{0.5, 0.25}, wantX: 50, wantY: 35},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var ops []string
			g := &fakeGarden{ops: &ops}
			coord, rnd := newTestCoordinator(&fakeCompleter{ops: &ops}, g)
			rnd.QueueIntn(0)
			rnd.QueueFloat64(tc.draws...)

			reward, err := coord.CompleteTask(context.Background(), "t1")
			require.NoError(t, err)

			assert.InDelta(t, tc.wantX, reward.Position.X, 1e-9)
			assert.InDelta(t, tc.wantY, reward.Position.Y, 1e-9)
			assert.Equal(t, reward.Position, g.position)
		})
	}
}

func TestCompleteTaskPropagatesSimulatedFlag(t *testing.T) {
	var ops []string
	g := &fakeGarden{ops: &ops, simulated: true}
	coord, rnd := newTestCoordinator(&fakeCompleter{ops: &ops}, g)
	rnd.QueueIntn(0)
	rnd.QueueFloat64(0.5, 0.5)

	reward, err := coord.CompleteTask(context.Background(), "t1")
	require.NoError(t, err)
	assert.True(t, reward.Simulated)
}
