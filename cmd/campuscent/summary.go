package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kabutey/campuscent/internal/cli"
	"github.com/kabutey/campuscent/internal/summary"
)

func summaryCmd() *cobra.Command {
	var username string

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show income and expense totals",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return fmt.Errorf("failed to initialize storage: %w", err)
			}
			defer func() { _ = store.Close() }()

			report, err := summary.ForUser(ctx, store, username)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), renderSummary(report))
			return nil
		},
	}

	cmd.Flags().StringVar(&username, "user", "", "account username")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}

// renderSummary formats a report as a boxed breakdown, categories sorted by
// name within each direction.
func renderSummary(report *summary.Report) string {
	var b strings.Builder

	writeCategories := func(heading string, byCategory map[string]float64) {
		b.WriteString(cli.SubtleStyle.Render(heading) + "\n")
		if len(byCategory) == 0 {
			b.WriteString("  (none)\n")
			return
		}

		names := make([]string, 0, len(byCategory))
		for name := range byCategory {
			names = append(names, name)
		}
		sort.Strings(names)

		for _, name := range names {
			b.WriteString(fmt.Sprintf("  %-16s %s %10.2f\n", name, cli.CurrencyCode, byCategory[name]))
		}
	}

	writeCategories("Income", report.IncomeByCategory)
	b.WriteString(fmt.Sprintf("  %-16s %s %10.2f\n\n", "Total", cli.CurrencyCode, report.TotalIncome))

	writeCategories("Expenses", report.ExpensesByCategory)
	b.WriteString(fmt.Sprintf("  %-16s %s %10.2f\n\n", "Total", cli.CurrencyCode, report.TotalExpenses))

	net := report.Net()
	netLine := fmt.Sprintf("%-18s %s %10.2f", "Net", cli.CurrencyCode, net)
	if net < 0 {
		b.WriteString(cli.ErrorStyle.Render(netLine))
	} else {
		b.WriteString(cli.SuccessStyle.Render(netLine))
	}

	return cli.RenderBox(cli.ChartIcon+" Summary", b.String())
}
