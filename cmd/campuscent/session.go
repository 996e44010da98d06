package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/kabutey/campuscent/internal/allocation"
	"github.com/kabutey/campuscent/internal/auth"
	"github.com/kabutey/campuscent/internal/budget"
	"github.com/kabutey/campuscent/internal/cli"
	"github.com/kabutey/campuscent/internal/goal"
	"github.com/kabutey/campuscent/internal/model"
	"github.com/kabutey/campuscent/internal/service"
	"github.com/kabutey/campuscent/internal/summary"
)

func sessionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "session",
		Short: "Start an interactive budgeting session",
		Long: `Log in and manage your budget interactively. Income is split 70/30
between spending and savings; the spending share becomes a daily limit
that adapts as the month goes on. The daily limit lives only for the
session; the ledger, goals and investments persist.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return fmt.Errorf("failed to initialize storage: %w", err)
			}
			defer func() { _ = store.Close() }()

			prompter := cli.NewPrompter(cmd.InOrStdin(), cmd.OutOrStdout())
			return runSession(ctx, store, prompter)
		},
	}
}

// session holds the state of one logged-in interactive run. The limit engine
// is in-memory only and starts fresh with each session.
type session struct {
	store     service.Storage
	prompter  *cli.Prompter
	limit     *budget.Limit
	goals     *goal.Tracker
	policy    *allocation.Policy
	sessions  *auth.SessionManager
	username  string
	sessionID string
}

func runSession(ctx context.Context, store service.Storage, prompter *cli.Prompter) error {
	prompter.Println(cli.FormatTitle("campuscent"))

	username, err := prompter.PromptLine(ctx, "Username")
	if err != nil {
		return err
	}
	password, err := prompter.PromptLine(ctx, "Password")
	if err != nil {
		return err
	}

	sessions := auth.NewSessionManager()
	sessionID, err := auth.Login(ctx, store, sessions, username, password)
	if err != nil {
		return err
	}

	limit := budget.NewLimit()
	goals := goal.NewTracker(store)

	s := &session{
		store:     store,
		prompter:  prompter,
		limit:     limit,
		goals:     goals,
		policy:    allocation.NewPolicy(limit, goals, store),
		sessions:  sessions,
		username:  username,
		sessionID: sessionID,
	}
	defer s.sessions.Invalidate(s.sessionID)

	prompter.Println(cli.FormatSuccess(fmt.Sprintf("Welcome back, %s!", username)))
	s.showGoals(ctx)
	return s.loop(ctx)
}

// showGoals lists the user's goals at the start of a session. Failures here
// are logged, not fatal.
func (s *session) showGoals(ctx context.Context) {
	goals, err := s.store.ListGoals(ctx, s.username)
	if err != nil {
		s.prompter.Println(cli.FormatWarning("Could not load your goals: " + err.Error()))
		return
	}
	if len(goals) == 0 {
		return
	}

	s.prompter.Println(cli.InfoStyle.Render("Your savings goals:"))
	for i := range goals {
		g := &goals[i]
		s.prompter.Printf("  %d  %s\n", g.Year, cli.RenderGoalProgress(g))
	}
}

func (s *session) loop(ctx context.Context) error {
	for {
		s.prompter.Println()
		s.prompter.Println(cli.InfoStyle.Render("What would you like to do?"))
		s.prompter.Println("  [1] Log income")
		s.prompter.Println("  [2] Log expense")
		s.prompter.Println("  [3] Budget status")
		s.prompter.Println("  [4] Deposit to savings goal")
		s.prompter.Println("  [5] Set savings goal")
		s.prompter.Println("  [6] Summary")
		s.prompter.Println("  [q] Quit")

		choice, err := s.prompter.PromptChoice(ctx, "Choice", []string{"1", "2", "3", "4", "5", "6", "q"})
		if err != nil {
			return err
		}

		switch choice {
		case "1":
			err = s.logIncome(ctx)
		case "2":
			err = s.logExpense(ctx)
		case "3":
			err = s.showStatus(ctx)
		case "4":
			err = s.depositToGoal(ctx)
		case "5":
			err = s.setGoal(ctx)
		case "6":
			err = s.showSummary(ctx)
		case "q":
			s.prompter.Println(cli.FormatInfo("Goodbye!"))
			return nil
		}

		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			s.prompter.Println(cli.FormatError(err.Error()))
		}
	}
}

func (s *session) logIncome(ctx context.Context) error {
	amount, err := s.prompter.PromptAmount(ctx, "Income amount")
	if err != nil {
		return err
	}
	category, err := s.prompter.PromptIncomeCategory(ctx)
	if err != nil {
		return err
	}

	now := time.Now()
	entry := model.NewIncome(amount, now, category)
	if err := appendEntryWithRetry(ctx, s.store, s.username, entry); err != nil {
		return fmt.Errorf("failed to record income: %w", err)
	}

	split := s.policy.AbsorbIncome(amount, now)
	status := s.limit.Status()

	s.prompter.Println(cli.FormatSuccess(fmt.Sprintf("Income recorded: %s", cli.FormatAmount(amount))))
	s.prompter.Printf("  Spending share (70%%): %s\n", cli.FormatAmount(split.SpendShare))
	s.prompter.Printf("  Savings share  (30%%): %s\n", cli.FormatAmount(split.SaveShare))
	s.prompter.Printf("  Daily limit is now %s over %d days\n", cli.FormatAmount(status.DailyLimit), status.TotalDays)

	return s.disposeSavings(ctx, split.SaveShare, now)
}

// disposeSavings asks what to do with the savings share of an income.
func (s *session) disposeSavings(ctx context.Context, saveShare float64, now time.Time) error {
	s.prompter.Println()
	s.prompter.Println(cli.InfoStyle.Render(fmt.Sprintf("Your savings share is %s %.2f. What should happen to it?", cli.CurrencyCode, saveShare)))
	s.prompter.Println("  [1] Deposit it all toward your goal")
	s.prompter.Println("  [2] Split it: 70% to goal, 30% into a treasury bill")
	s.prompter.Println("  [3] Keep it in hand")

	choice, err := s.prompter.PromptChoice(ctx, "Choice", []string{"1", "2", "3"})
	if err != nil {
		return err
	}

	year := now.Year()
	switch choice {
	case "1":
		result, err := s.policy.DepositToGoal(ctx, s.username, year, saveShare)
		if err != nil {
			return err
		}
		s.reportDeposit(result)
	case "2":
		term, err := s.prompter.PromptTerm(ctx)
		if err != nil {
			return err
		}
		result, err := s.policy.SplitSavings(ctx, s.username, year, saveShare, term, now)
		if err != nil {
			return err
		}
		s.reportDeposit(result.Deposit)
		s.prompter.Println(cli.FormatSuccess(fmt.Sprintf(
			"Invested %s at %.4f%% for %d days, maturing at %s",
			cli.FormatAmount(result.Investment.Principal),
			result.Investment.Rate,
			result.Investment.TermDays,
			cli.FormatAmount(result.Investment.ProjectedReturn))))
	case "3":
		s.prompter.Println(cli.FormatInfo("Savings share left in hand."))
	}
	return nil
}

func (s *session) reportDeposit(result allocation.DepositResult) {
	if result.NoActiveGoal {
		s.prompter.Println(cli.FormatWarning("No savings goal for this year. Set one first; nothing was deposited."))
		return
	}

	s.prompter.Println(cli.FormatSuccess(fmt.Sprintf("Deposited %s toward your goal", cli.FormatAmount(result.Deposited))))
	s.prompter.Println("  " + cli.RenderGoalProgress(result.Goal))
	if result.ReachedNow {
		s.prompter.Println(cli.FormatSuccess("You reached your savings goal! 🎉"))
	}
}

func (s *session) logExpense(ctx context.Context) error {
	amount, err := s.prompter.PromptAmount(ctx, "Expense amount")
	if err != nil {
		return err
	}
	category, err := s.prompter.PromptExpenseCategory(ctx)
	if err != nil {
		return err
	}

	now := time.Now()
	entry := model.NewExpense(amount, now, category)
	if err := appendEntryWithRetry(ctx, s.store, s.username, entry); err != nil {
		return fmt.Errorf("failed to record expense: %w", err)
	}
	s.prompter.Println(cli.FormatSuccess(fmt.Sprintf("Expense recorded: %s", cli.FormatAmount(amount))))

	if !s.limit.Initialized() {
		s.prompter.Println(cli.FormatWarning("No budget yet this session. Log income to set a daily limit."))
		return nil
	}

	result := s.limit.RecordSpend(amount, now)

	if result.DailyExceeded {
		s.prompter.Println(cli.FormatWarning(fmt.Sprintf(
			"Over today's limit by %s", cli.FormatAmount(result.DailyOverBy))))
	} else {
		status := s.limit.Status()
		s.prompter.Printf("  Remaining today: %s (day %d of %d)\n",
			cli.FormatAmount(s.limit.RemainingToday()), status.CurrentDay, status.TotalDays)
	}

	if result.MonthEnded {
		s.prompter.Println(cli.FormatInfo("The month is over. Log income to start a new budget."))
	}

	if result.MonthlyExceeded {
		s.prompter.Println(cli.FormatWarning(fmt.Sprintf(
			"Monthly allocation exceeded by %s", cli.FormatAmount(result.MonthlyOverBy))))
		return s.offerCoverage(ctx, now)
	}
	return nil
}

// offerCoverage asks whether to settle the monthly overspend from savings.
func (s *session) offerCoverage(ctx context.Context, now time.Time) error {
	cover, err := s.prompter.PromptYesNo(ctx, "Cover the overspend from your savings goal?")
	if err != nil {
		return err
	}
	if !cover {
		return nil
	}

	result, err := s.policy.CoverOverspend(ctx, s.username, now.Year())
	if err != nil {
		return err
	}

	switch result.Outcome {
	case allocation.CoverageApplied:
		s.prompter.Println(cli.FormatSuccess(fmt.Sprintf(
			"Covered %s from savings", cli.FormatAmount(result.Overspent))))
		s.prompter.Println("  " + cli.RenderGoalProgress(result.Goal))
	case allocation.CoverageNotNeeded:
		s.prompter.Println(cli.FormatInfo("Spending is back within the monthly allocation."))
	case allocation.CoverageNoActiveGoal:
		s.prompter.Println(cli.FormatWarning("No savings goal to draw from."))
	case allocation.CoverageInsufficientSavings:
		s.prompter.Println(cli.FormatWarning(fmt.Sprintf(
			"Savings cannot absorb it: %s needed, %s available. Nothing was withdrawn.",
			cli.FormatAmount(result.Overspent), cli.FormatAmount(result.Available))))
	}
	return nil
}

func (s *session) showStatus(ctx context.Context) error {
	if !s.limit.Initialized() {
		s.prompter.Println(cli.FormatInfo("No budget yet this session. Log income to set a daily limit."))
	} else {
		status := s.limit.Status()
		content := fmt.Sprintf(
			"Monthly allocation  %s %.2f\n"+
				"Spent so far        %s %.2f\n"+
				"Day                 %d of %d\n"+
				"Daily limit         %s %.2f\n"+
				"Carryover           %s %+.2f\n"+
				"Remaining today     %s %.2f",
			cli.CurrencyCode, status.TotalLimit,
			cli.CurrencyCode, status.Spent,
			status.CurrentDay, status.TotalDays,
			cli.CurrencyCode, status.DailyLimit,
			cli.CurrencyCode, status.Carryover,
			cli.CurrencyCode, status.RemainingToday)
		s.prompter.Println(cli.RenderBox("Budget status", content))

		if s.limit.ExceededMonthlyLimit() {
			s.prompter.Println(cli.FormatWarning(fmt.Sprintf(
				"Monthly allocation exceeded by %s", cli.FormatAmount(s.limit.Overspent()))))
		}
	}

	g, err := s.goals.Current(ctx, s.username, time.Now().Year())
	if err != nil {
		return err
	}
	if g == nil {
		s.prompter.Println(cli.FormatInfo("No savings goal for this year."))
		return nil
	}
	s.prompter.Println(cli.GoalIcon + " " + cli.RenderGoalProgress(g))
	return nil
}

func (s *session) depositToGoal(ctx context.Context) error {
	amount, err := s.prompter.PromptAmount(ctx, "Deposit amount")
	if err != nil {
		return err
	}

	result, err := s.policy.DepositToGoal(ctx, s.username, time.Now().Year(), amount)
	if err != nil {
		return err
	}
	s.reportDeposit(result)
	return nil
}

func (s *session) setGoal(ctx context.Context) error {
	year := time.Now().Year()

	existing, err := s.goals.Current(ctx, s.username, year)
	if err != nil {
		return err
	}
	if existing != nil {
		s.prompter.Println(cli.FormatInfo(fmt.Sprintf("You already have a goal for %d:", year)))
		s.prompter.Println("  " + cli.RenderGoalProgress(existing))
		return nil
	}

	target, err := s.prompter.PromptAmount(ctx, fmt.Sprintf("Target amount for %d", year))
	if err != nil {
		return err
	}

	g, err := s.goals.Create(ctx, s.username, year, target)
	if err != nil {
		return err
	}

	s.prompter.Println(cli.FormatSuccess(fmt.Sprintf("Goal set: save %s in %d", cli.FormatAmount(g.TargetAmount), g.Year)))
	return nil
}

func (s *session) showSummary(ctx context.Context) error {
	report, err := summary.ForUser(ctx, s.store, s.username)
	if err != nil {
		return err
	}
	s.prompter.Println(renderSummary(report))
	return nil
}
