package cli

import (
	"fmt"

	"github.com/charmbracelet/bubbles/progress"

	"github.com/kabutey/campuscent/internal/model"
)

// goalBarWidth is the rendered width of the goal progress bar.
const goalBarWidth = 40

// RenderGoalProgress renders a one-line progress bar for a savings goal.
func RenderGoalProgress(g *model.Goal) string {
	bar := progress.New(
		progress.WithScaledGradient("#2EC4B6", "#4ECDC4"),
		progress.WithWidth(goalBarWidth),
		progress.WithoutPercentage(),
	)

	ratio := g.Percentage() / 100
	if ratio > 1 {
		ratio = 1
	}

	line := fmt.Sprintf("%s %s %.2f / %.2f (%.1f%%)",
		bar.ViewAs(ratio), CurrencyCode, g.CurrentAmount, g.TargetAmount, g.Percentage())

	if g.Reached() {
		return line + " " + SuccessStyle.Render("reached")
	}
	return line
}
