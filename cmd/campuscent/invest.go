package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kabutey/campuscent/internal/cli"
	"github.com/kabutey/campuscent/internal/invest"
)

func investCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "invest",
		Short: "Treasury bill projections",
	}

	cmd.AddCommand(investProjectCmd())
	cmd.AddCommand(investListCmd())
	return cmd
}

func investProjectCmd() *cobra.Command {
	var (
		amount float64
		term   int
	)

	cmd := &cobra.Command{
		Use:   "project",
		Short: "Project the maturity value of a treasury bill",
		RunE: func(cmd *cobra.Command, _ []string) error {
			rate, err := invest.RateForTerm(term)
			if err != nil {
				return err
			}
			if amount <= 0 {
				return fmt.Errorf("amount must be positive")
			}

			projected := invest.ProjectedReturn(amount, rate, term)
			fmt.Fprintln(cmd.OutOrStdout(), cli.BankIcon+" "+fmt.Sprintf(
				"%s %.2f at %.4f%% for %d days matures at %s %.2f",
				cli.CurrencyCode, amount, rate, term, cli.CurrencyCode, projected))
			return nil
		},
	}

	cmd.Flags().Float64Var(&amount, "amount", 0, "principal to invest")
	cmd.Flags().IntVar(&term, "term", invest.Term91, "term in days (91, 182 or 364)")
	_ = cmd.MarkFlagRequired("amount")
	return cmd
}

func investListCmd() *cobra.Command {
	var username string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recorded investments",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return fmt.Errorf("failed to initialize storage: %w", err)
			}
			defer func() { _ = store.Close() }()

			investments, err := store.ListInvestments(ctx, username)
			if err != nil {
				return err
			}
			if len(investments) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), cli.FormatInfo("No investments recorded yet."))
				return nil
			}

			for _, inv := range investments {
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %s %10.2f  %3d days  %.4f%%  matures at %s %10.2f\n",
					inv.Date.Format("2006-01-02"),
					cli.CurrencyCode, inv.Principal,
					inv.TermDays, inv.Rate,
					cli.CurrencyCode, inv.ProjectedReturn)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&username, "user", "", "account username")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}
