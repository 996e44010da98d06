package goal

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kabutey/campuscent/internal/common"
	"github.com/kabutey/campuscent/internal/model"
)

// fakeStore is an in-memory Storage stub with error injection for the goal
// operations the tracker exercises.
type fakeStore struct {
	goals      map[string]*model.Goal
	updateErr  error
	createErr  error
	getErr     error
	updateCall int
}

func newFakeStore() *fakeStore {
	return &fakeStore{goals: make(map[string]*model.Goal)}
}

func goalKey(username string, year int) string {
	return fmt.Sprintf("%s/%d", username, year)
}

func (f *fakeStore) CreateGoal(_ context.Context, g *model.Goal) error {
	if f.createErr != nil {
		return f.createErr
	}
	copied := *g
	f.goals[goalKey(g.Username, g.Year)] = &copied
	return nil
}

func (f *fakeStore) GetGoal(_ context.Context, username string, year int) (*model.Goal, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	g, ok := f.goals[goalKey(username, year)]
	if !ok {
		return nil, nil
	}
	copied := *g
	return &copied, nil
}

func (f *fakeStore) UpdateGoalProgress(_ context.Context, username string, year int, currentAmount float64) error {
	f.updateCall++
	if f.updateErr != nil {
		return f.updateErr
	}
	g, ok := f.goals[goalKey(username, year)]
	if !ok {
		return common.ErrNotFound
	}
	g.CurrentAmount = currentAmount
	return nil
}

func (f *fakeStore) ListGoals(_ context.Context, username string) ([]model.Goal, error) {
	var out []model.Goal
	for _, g := range f.goals {
		if g.Username == username {
			out = append(out, *g)
		}
	}
	return out, nil
}

func (f *fakeStore) CreateUser(_ context.Context, _ *model.User) error     { return nil }
func (f *fakeStore) GetUser(_ context.Context, _ string) (*model.User, error) {
	return nil, nil
}
func (f *fakeStore) AppendEntry(_ context.Context, _ string, _ model.Entry) error { return nil }
func (f *fakeStore) ListEntries(_ context.Context, _ string) ([]model.Entry, error) {
	return nil, nil
}
func (f *fakeStore) SaveInvestment(_ context.Context, _ *model.Investment) error { return nil }
func (f *fakeStore) ListInvestments(_ context.Context, _ string) ([]model.Investment, error) {
	return nil, nil
}
func (f *fakeStore) Migrate(_ context.Context) error { return nil }
func (f *fakeStore) Close() error                    { return nil }

func TestTracker_Create(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	tracker := NewTracker(store)

	g, err := tracker.Create(ctx, "ama", 2024, 5000)
	require.NoError(t, err)
	assert.Equal(t, "ama", g.Username)
	assert.Equal(t, 2024, g.Year)
	assert.InDelta(t, 5000, g.TargetAmount, 0.001)
	assert.InDelta(t, 0, g.CurrentAmount, 0.001)
}

func TestTracker_CreateRejectsNonPositiveTarget(t *testing.T) {
	tracker := NewTracker(newFakeStore())

	_, err := tracker.Create(context.Background(), "ama", 2024, 0)
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrInvalidAmount))
}

func TestTracker_CreateRejectsDuplicateYear(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	tracker := NewTracker(store)

	_, err := tracker.Create(ctx, "ama", 2024, 5000)
	require.NoError(t, err)

	_, err = tracker.Create(ctx, "ama", 2024, 9000)
	assert.True(t, errors.Is(err, common.ErrDuplicateGoal))

	// A different year is fine.
	_, err = tracker.Create(ctx, "ama", 2025, 9000)
	assert.NoError(t, err)
}

func TestTracker_UpdateProgressClamps(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	tracker := NewTracker(store)

	g, err := tracker.Create(ctx, "ama", 2024, 100)
	require.NoError(t, err)

	tests := []struct {
		name  string
		delta float64
		want  float64
	}{
		{name: "deposit", delta: 40, want: 40},
		{name: "withdrawal", delta: -15, want: 25},
		{name: "withdrawal below zero clamps", delta: -500, want: 0},
		{name: "deposit above target clamps", delta: 500, want: 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			update, updErr := tracker.UpdateProgress(ctx, g, tt.delta)
			require.NoError(t, updErr)
			assert.InDelta(t, tt.want, update.NewAmount, 0.001)
			assert.InDelta(t, tt.want, g.CurrentAmount, 0.001)
			assert.GreaterOrEqual(t, g.CurrentAmount, 0.0)
			assert.LessOrEqual(t, g.CurrentAmount, g.TargetAmount)

			// Store and in-memory state agree.
			stored, getErr := store.GetGoal(ctx, "ama", 2024)
			require.NoError(t, getErr)
			assert.InDelta(t, tt.want, stored.CurrentAmount, 0.001)
		})
	}
}

func TestTracker_UpdateProgressReachedSignal(t *testing.T) {
	ctx := context.Background()
	tracker := NewTracker(newFakeStore())

	g, err := tracker.Create(ctx, "ama", 2024, 100)
	require.NoError(t, err)

	update, err := tracker.UpdateProgress(ctx, g, 60)
	require.NoError(t, err)
	assert.False(t, update.ReachedNow)

	// Overshooting clamps to the target and fires the signal once.
	update, err = tracker.UpdateProgress(ctx, g, 70)
	require.NoError(t, err)
	assert.True(t, update.ReachedNow)
	assert.InDelta(t, 100, update.NewAmount, 0.001)

	// Further deposits are absorbed silently at the ceiling.
	update, err = tracker.UpdateProgress(ctx, g, 10)
	require.NoError(t, err)
	assert.False(t, update.ReachedNow)
	assert.InDelta(t, 100, update.NewAmount, 0.001)
}

func TestTracker_UpdateProgressStoreFailureLeavesGoalUntouched(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	tracker := NewTracker(store)

	g, err := tracker.Create(ctx, "ama", 2024, 100)
	require.NoError(t, err)
	_, err = tracker.UpdateProgress(ctx, g, 30)
	require.NoError(t, err)

	store.updateErr = errors.New("disk full")
	_, err = tracker.UpdateProgress(ctx, g, 50)
	require.Error(t, err)

	// The in-memory goal still reflects the last committed state.
	assert.InDelta(t, 30, g.CurrentAmount, 0.001)
}

func TestTracker_Current(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	tracker := NewTracker(store)

	g, err := tracker.Current(ctx, "ama", 2024)
	require.NoError(t, err)
	assert.Nil(t, g)

	_, err = tracker.Create(ctx, "ama", 2024, 100)
	require.NoError(t, err)

	g, err = tracker.Current(ctx, "ama", 2024)
	require.NoError(t, err)
	require.NotNil(t, g)
	assert.InDelta(t, 100, g.TargetAmount, 0.001)
}
