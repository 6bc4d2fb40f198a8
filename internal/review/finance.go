package review

import (
	"context"
	"fmt"
	"math"
	"time"
)

// AggregateFinance summarizes transactions dated within p and measures
// spending against the budgets overlapping p.
//
// A budget with an empty category caps total spending; a categorized budget
// only counts expenses in its category. With no overlapping budget the
// adherence is 100.
func AggregateFinance(ctx context.Context, q Querier, p Period, _ *time.Location) (FinanceSummary, error) {
	summary := FinanceSummary{
		ByCategory:             map[string]float64{},
		BudgetAdherencePercent: 100,
	}
	start, end := bounds(p)

	budgets, overall, err := loadBudgets(ctx, q, start, end)
	if err != nil {
		return FinanceSummary{}, err
	}

	rows, err := q.QueryContext(ctx, `
		SELECT type, category, amount
		FROM transactions
		WHERE occurred_at >= ? AND occurred_at <= ?
	`, start, end)
	if err != nil {
		return FinanceSummary{}, fmt.Errorf("querying transactions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var spent float64
	for rows.Next() {
		var (
			kind     string
			category string
			amount   float64
		)
		if err := rows.Scan(&kind, &category, &amount); err != nil {
			return FinanceSummary{}, fmt.Errorf("scanning transaction: %w", err)
		}
		switch kind {
		case "income":
			summary.TotalIncome += amount
		case "expense":
			summary.TotalExpenses += amount
			summary.ByCategory[category] += amount
			if _, ok := budgets[category]; ok || overall {
				spent += amount
			}
		}
	}
	if err := rows.Err(); err != nil {
		return FinanceSummary{}, fmt.Errorf("iterating transactions: %w", err)
	}

	summary.TotalIncome = roundCents(summary.TotalIncome)
	summary.TotalExpenses = roundCents(summary.TotalExpenses)
	summary.NetCashFlow = roundCents(summary.TotalIncome - summary.TotalExpenses)
	for category, amount := range summary.ByCategory {
		summary.ByCategory[category] = roundCents(amount)
	}

	for _, amount := range budgets {
		summary.BudgetTotal += amount
	}
	summary.BudgetTotal = roundCents(summary.BudgetTotal)
	if summary.BudgetTotal > 0 {
		adherence := 100 * (summary.BudgetTotal - spent) / summary.BudgetTotal
		summary.BudgetAdherencePercent = int(math.Round(math.Max(0, adherence)))
	}
	return summary, nil
}

// loadBudgets sums budget amounts per category for budgets overlapping the
// window. overall reports whether an uncategorized budget exists.
func loadBudgets(ctx context.Context, q Querier, start, end int64) (map[string]float64, bool, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT category, amount
		FROM budgets
		WHERE period_start <= ? AND period_end >= ?
	`, end, start)
	if err != nil {
		return nil, false, fmt.Errorf("querying budgets: %w", err)
	}
	defer func() { _ = rows.Close() }()

	budgets := map[string]float64{}
	overall := false
	for rows.Next() {
		var (
			category string
			amount   float64
		)
		if err := rows.Scan(&category, &amount); err != nil {
			return nil, false, fmt.Errorf("scanning budget: %w", err)
		}
		budgets[category] += amount
		if category == "" {
			overall = true
		}
	}
	if err := rows.Err(); err != nil {
		return nil, false, fmt.Errorf("iterating budgets: %w", err)
	}
	return budgets, overall, nil
}
