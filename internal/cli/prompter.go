package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/kabutey/campuscent/internal/invest"
	"github.com/kabutey/campuscent/internal/model"
)

// Prompter implements interactive terminal prompting for the session loop.
type Prompter struct {
	writer io.Writer
	reader *NonBlockingReader
}

// NewPrompter creates a prompter over the given reader and writer.
// Nil arguments default to stdin and stdout.
func NewPrompter(reader io.Reader, writer io.Writer) *Prompter {
	if reader == nil {
		reader = os.Stdin
	}
	if writer == nil {
		writer = os.Stdout
	}

	return &Prompter{
		reader: NewNonBlockingReader(reader),
		writer: writer,
	}
}

// Println writes a line to the prompter's output.
func (p *Prompter) Println(args ...any) {
	if _, err := fmt.Fprintln(p.writer, args...); err != nil {
		slog.Warn("failed to write output", "error", err)
	}
}

// Printf writes formatted output.
func (p *Prompter) Printf(format string, args ...any) {
	if _, err := fmt.Fprintf(p.writer, format, args...); err != nil {
		slog.Warn("failed to write output", "error", err)
	}
}

// PromptLine asks for a single line of free-form input.
func (p *Prompter) PromptLine(ctx context.Context, label string) (string, error) {
	if _, err := fmt.Fprint(p.writer, FormatPrompt(label)); err != nil {
		return "", fmt.Errorf("failed to write prompt: %w", err)
	}

	line, err := p.reader.ReadLine(ctx)
	if err != nil {
		if err == io.EOF {
			return "", fmt.Errorf("input terminated")
		}
		return "", err
	}
	return line, nil
}

// PromptChoice asks until the user enters one of validChoices
// (case-insensitive).
func (p *Prompter) PromptChoice(ctx context.Context, label string, validChoices []string) (string, error) {
	for {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		default:
		}

		input, err := p.PromptLine(ctx, label)
		if err != nil {
			return "", err
		}

		choice := strings.ToLower(strings.TrimSpace(input))
		for _, valid := range validChoices {
			if choice == valid {
				return choice, nil
			}
		}

		p.Println(FormatError("Invalid choice. Please try again."))
	}
}

// PromptAmount asks until the user enters a positive amount.
func (p *Prompter) PromptAmount(ctx context.Context, label string) (float64, error) {
	for {
		select {
		case <-ctx.Done():
			return 0, ctx.Err()
		default:
		}

		input, err := p.PromptLine(ctx, label)
		if err != nil {
			return 0, err
		}

		amount, err := strconv.ParseFloat(strings.TrimSpace(input), 64)
		if err != nil || amount <= 0 {
			p.Println(FormatError("Please enter a positive amount."))
			continue
		}
		return amount, nil
	}
}

// PromptYesNo asks a yes/no question.
func (p *Prompter) PromptYesNo(ctx context.Context, label string) (bool, error) {
	choice, err := p.PromptChoice(ctx, label+" [y/n]", []string{"y", "yes", "n", "no"})
	if err != nil {
		return false, err
	}
	return choice == "y" || choice == "yes", nil
}

// PromptIncomeCategory presents the income categories and returns the pick.
func (p *Prompter) PromptIncomeCategory(ctx context.Context) (model.IncomeCategory, error) {
	p.Println(FormatInfo("Income categories:"))
	for i, cat := range model.IncomeCategories {
		p.Printf("  [%d] %s\n", i+1, cat)
	}

	idx, err := p.promptIndex(ctx, "Category", len(model.IncomeCategories))
	if err != nil {
		return "", err
	}
	return model.IncomeCategories[idx], nil
}

// PromptExpenseCategory presents the expense categories and returns the pick.
func (p *Prompter) PromptExpenseCategory(ctx context.Context) (model.ExpenseCategory, error) {
	p.Println(FormatInfo("Expense categories:"))
	for i, cat := range model.ExpenseCategories {
		p.Printf("  [%d] %s\n", i+1, cat)
	}

	idx, err := p.promptIndex(ctx, "Category", len(model.ExpenseCategories))
	if err != nil {
		return "", err
	}
	return model.ExpenseCategories[idx], nil
}

// PromptTerm presents the treasury bill terms and returns the chosen term in
// days.
func (p *Prompter) PromptTerm(ctx context.Context) (int, error) {
	terms := invest.Terms()

	p.Println(FormatInfo("Treasury bill terms:"))
	for i, term := range terms {
		rate, _ := invest.RateForTerm(term)
		p.Printf("  [%d] %d days (%.4f%%)\n", i+1, term, rate)
	}

	idx, err := p.promptIndex(ctx, "Term", len(terms))
	if err != nil {
		return 0, err
	}
	return terms[idx], nil
}

// promptIndex asks for a 1-based menu index and returns it 0-based.
func (p *Prompter) promptIndex(ctx context.Context, label string, n int) (int, error) {
	for {
		select {
		case <-ctx.Done():
			return 0, ctx.Err()
		default:
		}

		input, err := p.PromptLine(ctx, label)
		if err != nil {
			return 0, err
		}

		idx, err := strconv.Atoi(strings.TrimSpace(input))
		if err != nil || idx < 1 || idx > n {
			p.Println(FormatError(fmt.Sprintf("Enter a number between 1 and %d.", n)))
			continue
		}
		return idx - 1, nil
	}
}
