package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// EntryDirection indicates whether a financial entry is money in or money out.
type EntryDirection string

const (
	// DirectionIncome represents money coming in.
	DirectionIncome EntryDirection = "income"
	// DirectionExpense represents money going out.
	DirectionExpense EntryDirection = "expense"
)

// IncomeCategory is a source of income.
type IncomeCategory string

// Income categories.
const (
	IncomeSalary     IncomeCategory = "SALARY"
	IncomeFreelance  IncomeCategory = "FREELANCE"
	IncomeRental     IncomeCategory = "RENTAL"
	IncomeInvestment IncomeCategory = "INVESTMENT"
	IncomeOther      IncomeCategory = "OTHER"
)

// ExpenseCategory is a spending category.
type ExpenseCategory string

// Expense categories.
const (
	ExpenseFood           ExpenseCategory = "FOOD"
	ExpenseTransportation ExpenseCategory = "TRANSPORTATION"
	ExpenseHousing        ExpenseCategory = "HOUSING"
	ExpenseUtilities      ExpenseCategory = "UTILITIES"
	ExpenseEntertainment  ExpenseCategory = "ENTERTAINMENT"
	ExpenseOther          ExpenseCategory = "OTHER"
)

// IncomeCategories lists every valid income category in display order.
var IncomeCategories = []IncomeCategory{
	IncomeSalary, IncomeFreelance, IncomeRental, IncomeInvestment, IncomeOther,
}

// ExpenseCategories lists every valid expense category in display order.
var ExpenseCategories = []ExpenseCategory{
	ExpenseFood, ExpenseTransportation, ExpenseHousing,
	ExpenseUtilities, ExpenseEntertainment, ExpenseOther,
}

// Validation errors for entries.
var (
	ErrInvalidAmount    = errors.New("amount must be positive")
	ErrInvalidDirection = errors.New("invalid entry direction")
	ErrInvalidCategory  = errors.New("invalid category")
)

// Entry is a single immutable income or expense event. The Direction tag
// determines which category set Category must belong to.
type Entry struct {
	Date      time.Time
	Category  string
	Direction EntryDirection
	Amount    float64
}

// NewIncome creates an income entry.
func NewIncome(amount float64, date time.Time, category IncomeCategory) Entry {
	return Entry{
		Amount:    amount,
		Date:      date,
		Direction: DirectionIncome,
		Category:  string(category),
	}
}

// NewExpense creates an expense entry.
func NewExpense(amount float64, date time.Time, category ExpenseCategory) Entry {
	return Entry{
		Amount:    amount,
		Date:      date,
		Direction: DirectionExpense,
		Category:  string(category),
	}
}

// Validate checks the entry against the closed category enumeration for its
// direction. Non-positive amounts are rejected here, before any engine or
// store sees them.
func (e *Entry) Validate() error {
	if e.Amount <= 0 {
		return fmt.Errorf("%w: got %.2f", ErrInvalidAmount, e.Amount)
	}

	switch e.Direction {
	case DirectionIncome:
		if _, err := ParseIncomeCategory(e.Category); err != nil {
			return err
		}
	case DirectionExpense:
		if _, err := ParseExpenseCategory(e.Category); err != nil {
			return err
		}
	default:
		return fmt.Errorf("%w: %q", ErrInvalidDirection, e.Direction)
	}

	return nil
}

// ParseIncomeCategory converts a string to an IncomeCategory.
func ParseIncomeCategory(s string) (IncomeCategory, error) {
	c := IncomeCategory(strings.ToUpper(strings.TrimSpace(s)))
	for _, valid := range IncomeCategories {
		if c == valid {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q is not an income category", ErrInvalidCategory, s)
}

// ParseExpenseCategory converts a string to an ExpenseCategory.
func ParseExpenseCategory(s string) (ExpenseCategory, error) {
	c := ExpenseCategory(strings.ToUpper(strings.TrimSpace(s)))
	for _, valid := range ExpenseCategories {
		if c == valid {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q is not an expense category", ErrInvalidCategory, s)
}
