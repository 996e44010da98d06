package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/kabutey/campuscent/internal/cli"
	"github.com/kabutey/campuscent/internal/goal"
)

func goalCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "goal",
		Short: "Manage yearly savings goals",
	}

	cmd.AddCommand(goalSetCmd())
	cmd.AddCommand(goalListCmd())
	return cmd
}

func goalSetCmd() *cobra.Command {
	var (
		username string
		year     int
		target   float64
	)

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Set a savings goal for a year",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return fmt.Errorf("failed to initialize storage: %w", err)
			}
			defer func() { _ = store.Close() }()

			if year == 0 {
				year = time.Now().Year()
			}

			g, err := goal.NewTracker(store).Create(ctx, username, year, target)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf(
				"Goal set for %d: save %s %.2f", g.Year, cli.CurrencyCode, g.TargetAmount)))
			return nil
		},
	}

	cmd.Flags().StringVar(&username, "user", "", "account username")
	cmd.Flags().IntVar(&year, "year", 0, "goal year (default: current year)")
	cmd.Flags().Float64Var(&target, "target", 0, "target amount to save")
	_ = cmd.MarkFlagRequired("user")
	_ = cmd.MarkFlagRequired("target")
	return cmd
}

func goalListCmd() *cobra.Command {
	var username string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List savings goals, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return fmt.Errorf("failed to initialize storage: %w", err)
			}
			defer func() { _ = store.Close() }()

			goals, err := store.ListGoals(ctx, username)
			if err != nil {
				return err
			}
			if len(goals) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), cli.FormatInfo("No savings goals yet."))
				return nil
			}

			for i := range goals {
				g := &goals[i]
				fmt.Fprintf(cmd.OutOrStdout(), "%d  %s\n", g.Year, cli.RenderGoalProgress(g))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&username, "user", "", "account username")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}
