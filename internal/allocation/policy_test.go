package allocation

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kabutey/campuscent/internal/budget"
	"github.com/kabutey/campuscent/internal/goal"
	"github.com/kabutey/campuscent/internal/invest"
	"github.com/kabutey/campuscent/internal/model"
)

// stubStore holds goals and investments in memory for policy tests.
type stubStore struct {
	goals       map[string]*model.Goal
	investments []model.Investment
}

func newStubStore() *stubStore {
	return &stubStore{goals: make(map[string]*model.Goal)}
}

func (s *stubStore) CreateGoal(_ context.Context, g *model.Goal) error {
	copied := *g
	s.goals[fmt.Sprintf("%s/%d", g.Username, g.Year)] = &copied
	return nil
}

func (s *stubStore) GetGoal(_ context.Context, username string, year int) (*model.Goal, error) {
	g, ok := s.goals[fmt.Sprintf("%s/%d", username, year)]
	if !ok {
		return nil, nil
	}
	copied := *g
	return &copied, nil
}

func (s *stubStore) UpdateGoalProgress(_ context.Context, username string, year int, currentAmount float64) error {
	g, ok := s.goals[fmt.Sprintf("%s/%d", username, year)]
	if !ok {
		return errors.New("goal not found")
	}
	g.CurrentAmount = currentAmount
	return nil
}

func (s *stubStore) ListGoals(_ context.Context, _ string) ([]model.Goal, error) { return nil, nil }

func (s *stubStore) SaveInvestment(_ context.Context, inv *model.Investment) error {
	s.investments = append(s.investments, *inv)
	return nil
}

func (s *stubStore) ListInvestments(_ context.Context, _ string) ([]model.Investment, error) {
	return s.investments, nil
}

func (s *stubStore) CreateUser(_ context.Context, _ *model.User) error        { return nil }
func (s *stubStore) GetUser(_ context.Context, _ string) (*model.User, error) { return nil, nil }
func (s *stubStore) AppendEntry(_ context.Context, _ string, _ model.Entry) error {
	return nil
}
func (s *stubStore) ListEntries(_ context.Context, _ string) ([]model.Entry, error) {
	return nil, nil
}
func (s *stubStore) Migrate(_ context.Context) error { return nil }
func (s *stubStore) Close() error                    { return nil }

func newTestPolicy(t *testing.T) (*Policy, *budget.Limit, *goal.Tracker, *stubStore) {
	t.Helper()
	store := newStubStore()
	limit := budget.NewLimit()
	tracker := goal.NewTracker(store)
	return NewPolicy(limit, tracker, store), limit, tracker, store
}

func day(d int) time.Time {
	return time.Date(2024, time.June, d, 12, 0, 0, 0, time.UTC)
}

func TestSplitIncome(t *testing.T) {
	split := SplitIncome(1500)
	assert.InDelta(t, 1050, split.SpendShare, 0.001)
	assert.InDelta(t, 450, split.SaveShare, 0.001)
}

func TestPolicy_AbsorbIncomeInitializesThenAdds(t *testing.T) {
	policy, limit, _, _ := newTestPolicy(t)

	split := policy.AbsorbIncome(1500, day(1))
	assert.InDelta(t, 1050, split.SpendShare, 0.001)
	assert.InDelta(t, 1050, limit.TotalLimit(), 0.001)

	// A second income is additive, not replacing.
	policy.AbsorbIncome(1000, day(10))
	assert.InDelta(t, 1750, limit.TotalLimit(), 0.001)

	// The new allocation is spread over the 21 remaining days of June.
	assert.InDelta(t, 1750.0/21.0, limit.Status().DailyLimit, 0.001)
}

func TestPolicy_DepositToGoal(t *testing.T) {
	ctx := context.Background()
	policy, _, tracker, _ := newTestPolicy(t)

	_, err := tracker.Create(ctx, "ama", 2024, 1000)
	require.NoError(t, err)

	res, err := policy.DepositToGoal(ctx, "ama", 2024, 450)
	require.NoError(t, err)
	assert.False(t, res.NoActiveGoal)
	assert.InDelta(t, 450, res.Goal.CurrentAmount, 0.001)
}

func TestPolicy_DepositToGoalWithoutGoal(t *testing.T) {
	policy, _, _, _ := newTestPolicy(t)

	res, err := policy.DepositToGoal(context.Background(), "ama", 2024, 450)
	require.NoError(t, err)
	assert.True(t, res.NoActiveGoal)
}

func TestPolicy_SplitSavings(t *testing.T) {
	ctx := context.Background()
	policy, _, tracker, store := newTestPolicy(t)

	_, err := tracker.Create(ctx, "ama", 2024, 1000)
	require.NoError(t, err)

	res, err := policy.SplitSavings(ctx, "ama", 2024, 450, invest.Term91, day(3))
	require.NoError(t, err)

	assert.InDelta(t, 315, res.Deposit.Deposited, 0.001)
	assert.InDelta(t, 135, res.Investment.Principal, 0.001)
	assert.Equal(t, 91, res.Investment.TermDays)
	assert.InDelta(t, 26.8293, res.Investment.Rate, 0.0001)
	assert.InDelta(t, invest.ProjectedReturn(135, 26.8293, 91), res.Investment.ProjectedReturn, 0.001)
	require.Len(t, store.investments, 1)
}

func TestPolicy_SplitSavingsRejectsBadTerm(t *testing.T) {
	ctx := context.Background()
	policy, _, tracker, store := newTestPolicy(t)

	g, err := tracker.Create(ctx, "ama", 2024, 1000)
	require.NoError(t, err)

	_, err = policy.SplitSavings(ctx, "ama", 2024, 450, 120, day(3))
	require.Error(t, err)
	assert.True(t, errors.Is(err, invest.ErrInvalidTerm))

	// Nothing changed.
	assert.InDelta(t, 0, g.CurrentAmount, 0.001)
	assert.Empty(t, store.investments)
}

func TestPolicy_CoverOverspendApplied(t *testing.T) {
	ctx := context.Background()
	policy, limit, tracker, _ := newTestPolicy(t)

	g, err := tracker.Create(ctx, "ama", 2024, 200)
	require.NoError(t, err)
	// current == 100, remaining == 100.
	_, err = tracker.UpdateProgress(ctx, g, 100)
	require.NoError(t, err)

	limit.Initialize(100, day(1))
	limit.RecordSpend(120, day(1))

	res, err := policy.CoverOverspend(ctx, "ama", 2024)
	require.NoError(t, err)
	assert.Equal(t, CoverageApplied, res.Outcome)
	assert.InDelta(t, 20, res.Overspent, 0.001)
	// Withdrawal comes out of the saved amount, widening remaining.
	assert.InDelta(t, 80, res.Goal.CurrentAmount, 0.001)
	assert.InDelta(t, 120, res.Goal.Remaining(), 0.001)
	assert.InDelta(t, 100, limit.Spent(), 0.001)
	assert.False(t, limit.ExceededMonthlyLimit())
}

func TestPolicy_CoverOverspendInsufficientSavings(t *testing.T) {
	ctx := context.Background()
	policy, limit, tracker, store := newTestPolicy(t)

	g, err := tracker.Create(ctx, "ama", 2024, 100)
	require.NoError(t, err)
	_, err = tracker.UpdateProgress(ctx, g, 70)
	require.NoError(t, err)
	// remaining() == 30 against an overspend of 50.

	limit.Initialize(100, day(1))
	limit.RecordSpend(150, day(1))

	res, err := policy.CoverOverspend(ctx, "ama", 2024)
	require.NoError(t, err)
	assert.Equal(t, CoverageInsufficientSavings, res.Outcome)
	assert.InDelta(t, 50, res.Overspent, 0.001)
	assert.InDelta(t, 30, res.Available, 0.001)

	// All-or-nothing: neither side changed.
	stored, err := store.GetGoal(ctx, "ama", 2024)
	require.NoError(t, err)
	assert.InDelta(t, 70, stored.CurrentAmount, 0.001)
	assert.InDelta(t, 150, limit.Spent(), 0.001)
}

func TestPolicy_CoverOverspendNoActiveGoal(t *testing.T) {
	ctx := context.Background()
	policy, limit, _, _ := newTestPolicy(t)

	limit.Initialize(100, day(1))
	limit.RecordSpend(120, day(1))

	res, err := policy.CoverOverspend(ctx, "ama", 2024)
	require.NoError(t, err)
	assert.Equal(t, CoverageNoActiveGoal, res.Outcome)
	assert.InDelta(t, 120, limit.Spent(), 0.001)
}

func TestPolicy_CoverOverspendNotNeeded(t *testing.T) {
	ctx := context.Background()
	policy, limit, _, _ := newTestPolicy(t)

	limit.Initialize(100, day(1))
	limit.RecordSpend(50, day(1))

	res, err := policy.CoverOverspend(ctx, "ama", 2024)
	require.NoError(t, err)
	assert.Equal(t, CoverageNotNeeded, res.Outcome)
}
