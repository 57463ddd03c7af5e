package forecast

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	money "github.com/Rhymond/go-money"
)

// DefaultLookbackDays is the default trailing window for the projection.
const DefaultLookbackDays = 90

// trendThresholdPct is the minimum percentage increase between two trailing
// 30-day windows that triggers a warning.
const trendThresholdPct = 15

// Output caps: top categories and warnings shown, fixed by design.
const (
	maxCategoriesShown = 8
	maxWarningsShown   = 5
)

// Result is a spending projection for the next 30 days.
type Result struct {
	PredictedTotal      int64            // rounded projection for the next 30 days
	PredictedByCategory map[string]int64 // rounded independently per category
	WindowTotal         int64            // rounded spend over the input window
	Warnings            []string
	WindowDays          int
}

// FilterLastNDays keeps records whose timestamp falls within the trailing
// window of days before asOf. Records with unresolvable (zero) timestamps
// are dropped as missing data.
func FilterLastNDays(records []Record, days int, asOf time.Time) []Record {
	window := time.Duration(days) * 24 * time.Hour

	kept := make([]Record, 0, len(records))
	for _, r := range records {
		if r.Time.IsZero() {
			continue
		}
		if asOf.Sub(r.Time) <= window {
			kept = append(kept, r)
		}
	}
	return kept
}

// PredictNextMonthBudget projects next-month spending from the given expense
// records over a days-long window ending at asOf. The projection is a plain
// daily average scaled to 30 days; per-category projections are rounded
// independently, so they need not sum exactly to the total. Pure function:
// identical input yields identical output.
func PredictNextMonthBudget(records []Record, days int, asOf time.Time) Result {
	var total float64
	catTotals := make(map[string]float64)
	for _, r := range records {
		total += r.Amount
		catTotals[categoryKey(r)] += r.Amount
	}

	var dailyAvg float64
	if days > 0 {
		dailyAvg = total / float64(days)
	}

	byCategory := make(map[string]int64, len(catTotals))
	for cat, sum := range catTotals {
		if days > 0 {
			byCategory[cat] = int64(math.Round(sum / float64(days) * 30))
		}
	}

	return Result{
		PredictedTotal:      int64(math.Round(dailyAvg * 30)),
		PredictedByCategory: byCategory,
		WindowTotal:         int64(math.Round(total)),
		Warnings:            trendWarnings(records, asOf),
		WindowDays:          days,
	}
}

// trendWarnings compares the trailing 30 days against the 30 days before
// them, both measured back from asOf and independent of the lookback window.
// A category is flagged when its prior-window spend is positive and the
// increase is at least the threshold; zero prior spend is never flagged,
// since no meaningful percentage exists.
func trendWarnings(records []Record, asOf time.Time) []string {
	const d30 = 30 * 24 * time.Hour

	last := make(map[string]float64)
	prior := make(map[string]float64)
	for _, r := range records {
		if r.Time.IsZero() {
			continue
		}
		age := asOf.Sub(r.Time)
		switch {
		case age <= d30:
			last[categoryKey(r)] += r.Amount
		case age <= 2*d30:
			prior[categoryKey(r)] += r.Amount
		}
	}

	cats := make([]string, 0, len(last)+len(prior))
	seen := make(map[string]bool)
	for cat := range last {
		cats = append(cats, cat)
		seen[cat] = true
	}
	for cat := range prior {
		if !seen[cat] {
			cats = append(cats, cat)
		}
	}
	sort.Strings(cats) // deterministic warning order

	var warnings []string
	for _, cat := range cats {
		prev := prior[cat]
		if prev <= 0 {
			continue
		}
		pct := math.Round((last[cat] - prev) / prev * 100)
		if pct >= trendThresholdPct {
			warnings = append(warnings, fmt.Sprintf("%s trending up (+%d%%)", cat, int64(pct)))
		}
	}
	return warnings
}

func categoryKey(r Record) string {
	cat := strings.ToLower(strings.TrimSpace(r.Category))
	if cat == "" {
		return "other"
	}
	return cat
}

// FormatText renders the result as a single display string: the projected
// total, its basis, the top categories by projected amount and any trend
// warnings.
func FormatText(r Result) string {
	lines := []string{
		"Predicted spending (next 30 days): " + displayMoney(r.PredictedTotal),
		fmt.Sprintf("(Based on last %d days expenses: %s)", r.WindowDays, displayMoney(r.WindowTotal)),
		"",
		"Suggested category budgets:",
	}

	type catAmount struct {
		cat string
		amt int64
	}
	cats := make([]catAmount, 0, len(r.PredictedByCategory))
	for cat, amt := range r.PredictedByCategory {
		cats = append(cats, catAmount{cat, amt})
	}
	sort.Slice(cats, func(i, j int) bool {
		if cats[i].amt != cats[j].amt {
			return cats[i].amt > cats[j].amt
		}
		return cats[i].cat < cats[j].cat
	})
	if len(cats) > maxCategoriesShown {
		cats = cats[:maxCategoriesShown]
	}
	for _, c := range cats {
		lines = append(lines, fmt.Sprintf("• %s: %s", c.cat, displayMoney(c.amt)))
	}

	if len(r.Warnings) > 0 {
		lines = append(lines, "", "Trends:")
		warnings := r.Warnings
		if len(warnings) > maxWarningsShown {
			warnings = warnings[:maxWarningsShown]
		}
		for _, w := range warnings {
			lines = append(lines, "• "+w)
		}
	}

	lines = append(lines, "", "Tip: Type 'add transaction' to improve prediction accuracy")
	return strings.Join(lines, "\n")
}

func displayMoney(dollars int64) string {
	return money.New(dollars*100, money.USD).Display()
}
