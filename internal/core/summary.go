package core

import "sort"

// TotalRowLabel is the synthetic trailing row appended to grouped output.
const TotalRowLabel = "TOTAL"

// CategoryAmount is an amount aggregated by category.
type CategoryAmount struct {
	Category string
	Amount   Money
}

// Totals sums transaction magnitudes by direction.
func Totals(txs []Transaction) (income, expense Money) {
	for _, t := range txs {
		switch t.Direction {
		case Income:
			income = income.Add(t.Amount)
		case Expense:
			expense = expense.Add(t.Amount)
		}
	}
	return income, expense
}

// ExpenseSummary sums expense magnitudes by category, sorted by category
// name, with a trailing TOTAL row equal to the sum of the listed rows.
func ExpenseSummary(txs []Transaction) []CategoryAmount {
	sums := make(map[string]Money)
	for _, t := range txs {
		if t.Direction != Expense {
			continue
		}
		key := string(t.Category)
		sums[key] = sums[key].Add(t.Amount)
	}

	out := make([]CategoryAmount, 0, len(sums)+1)
	for cat, amount := range sums {
		out = append(out, CategoryAmount{Category: cat, Amount: amount})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Category < out[j].Category })

	// The TOTAL row sums the displayed rows rather than recomputing from
	// the transactions, so it always matches what is shown.
	var total Money
	for _, row := range out {
		total = total.Add(row.Amount)
	}
	return append(out, CategoryAmount{Category: TotalRowLabel, Amount: total})
}

// GenerateBudget aggregates transactions within [from, to] into budget
// lines: one line per income category with the sum in Planned, one line
// per expense category with the negated sum in Actual. Expenses are
// negated so income and expense share one sign convention and the
// balance is the plain sum of all signed values.
func GenerateBudget(txs []Transaction, from, to Date) []BudgetLine {
	txs = FilterDateRange(txs, from, to)

	incomeSums := make(map[string]Money)
	expenseSums := make(map[string]Money)
	for _, t := range txs {
		key := string(t.Category)
		switch t.Direction {
		case Income:
			incomeSums[key] = incomeSums[key].Add(t.Amount)
		case Expense:
			expenseSums[key] = expenseSums[key].Add(t.Amount)
		}
	}

	lines := make([]BudgetLine, 0, len(incomeSums)+len(expenseSums))
	for cat, amount := range incomeSums {
		lines = append(lines, BudgetLine{Category: cat, Planned: amount})
	}
	sort.Slice(lines, func(i, j int) bool { return lines[i].Category < lines[j].Category })

	expenses := make([]BudgetLine, 0, len(expenseSums))
	for cat, amount := range expenseSums {
		expenses = append(expenses, BudgetLine{Category: cat, Actual: amount.Neg()})
	}
	sort.Slice(expenses, func(i, j int) bool { return expenses[i].Category < expenses[j].Category })

	return append(lines, expenses...)
}

// BudgetBalance is the sum of all signed budget amounts. With generated
// budgets this equals total income minus total expenses.
func BudgetBalance(lines []BudgetLine) Money {
	var balance Money
	for _, l := range lines {
		balance = balance.Add(l.Planned).Add(l.Actual)
	}
	return balance
}
