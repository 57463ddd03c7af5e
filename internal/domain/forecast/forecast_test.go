package forecast

import (
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var asOf = time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

func rec(amount float64, category string, daysAgo int) Record {
	return Record{
		Type:     "expense",
		Amount:   amount,
		Category: category,
		Time:     asOf.AddDate(0, 0, -daysAgo),
	}
}

func TestFilterLastNDays(t *testing.T) {
	records := []Record{
		rec(10, "food", 5),
		rec(20, "food", 89),
		rec(30, "food", 91),
		{Type: "expense", Amount: 40, Category: "food"}, // zero time
	}

	kept := FilterLastNDays(records, 90, asOf)
	require.Len(t, kept, 2)
	assert.Equal(t, 10.0, kept[0].Amount)
	assert.Equal(t, 20.0, kept[1].Amount)
}

func TestPredictNextMonthBudget(t *testing.T) {
	t.Run("total follows the daily-average formula", func(t *testing.T) {
		records := []Record{
			rec(300, "food", 10),
			rec(150, "rent", 20),
			rec(90, "food", 40),
			rec(60, "transport", 70),
		}
		result := PredictNextMonthBudget(records, 90, asOf)

		total := 300.0 + 150 + 90 + 60
		assert.Equal(t, int64(math.Round(total/90*30)), result.PredictedTotal)
		assert.Equal(t, int64(math.Round(total)), result.WindowTotal)
		assert.Equal(t, 90, result.WindowDays)
	})

	t.Run("per-category projections rounded independently", func(t *testing.T) {
		records := []Record{
			rec(100, "Food", 10),
			rec(50, "food", 20),
			rec(80, "rent", 30),
		}
		result := PredictNextMonthBudget(records, 90, asOf)

		// Categories are grouped by lowercased name.
		assert.Equal(t, int64(math.Round(150.0/90*30)), result.PredictedByCategory["food"])
		assert.Equal(t, int64(math.Round(80.0/90*30)), result.PredictedByCategory["rent"])
	})

	t.Run("missing category groups under other", func(t *testing.T) {
		result := PredictNextMonthBudget([]Record{rec(90, "", 10)}, 90, asOf)
		assert.Contains(t, result.PredictedByCategory, "other")
	})

	t.Run("zero window yields zero projection", func(t *testing.T) {
		result := PredictNextMonthBudget([]Record{rec(100, "food", 10)}, 0, asOf)
		assert.Zero(t, result.PredictedTotal)
	})

	t.Run("deterministic for identical input", func(t *testing.T) {
		faker := gofakeit.New(42)
		records := make([]Record, 20)
		for i := range records {
			records[i] = rec(
				faker.Float64Range(5, 500),
				faker.RandomString([]string{"food", "rent", "transport", "bills"}),
				faker.Number(1, 89),
			)
		}

		first := PredictNextMonthBudget(records, 90, asOf)
		second := PredictNextMonthBudget(records, 90, asOf)
		assert.Equal(t, first, second)
	})
}

func TestTrendWarnings(t *testing.T) {
	t.Run("flags categories up at least fifteen percent", func(t *testing.T) {
		records := []Record{
			rec(230, "food", 10), // last 30 days
			rec(100, "food", 40), // prior window
		}
		result := PredictNextMonthBudget(records, 90, asOf)

		require.Len(t, result.Warnings, 1)
		assert.Equal(t, "food trending up (+130%)", result.Warnings[0])
	})

	t.Run("below threshold is quiet", func(t *testing.T) {
		records := []Record{
			rec(110, "food", 10),
			rec(100, "food", 40),
		}
		result := PredictNextMonthBudget(records, 90, asOf)
		assert.Empty(t, result.Warnings)
	})

	t.Run("zero prior spend is never flagged", func(t *testing.T) {
		records := []Record{
			rec(500, "gadgets", 10), // no prior-window spend at all
			rec(100, "food", 40),
		}
		result := PredictNextMonthBudget(records, 90, asOf)
		for _, w := range result.Warnings {
			assert.NotContains(t, w, "gadgets")
		}
	})

	t.Run("windows are fixed at 30 days regardless of lookback", func(t *testing.T) {
		records := []Record{
			rec(230, "food", 10),
			rec(100, "food", 40),
		}
		wide := PredictNextMonthBudget(records, 365, asOf)
		assert.Equal(t, []string{"food trending up (+130%)"}, wide.Warnings)
	})

	t.Run("spending older than sixty days is ignored", func(t *testing.T) {
		records := []Record{
			rec(230, "food", 10),
			rec(100, "food", 70), // outside both windows
		}
		result := PredictNextMonthBudget(records, 90, asOf)
		assert.Empty(t, result.Warnings)
	})
}

func TestFormatText(t *testing.T) {
	t.Run("renders totals and categories", func(t *testing.T) {
		result := Result{
			PredictedTotal: 450,
			PredictedByCategory: map[string]int64{
				"food": 300,
				"rent": 150,
			},
			WindowTotal: 1350,
			Warnings:    []string{"food trending up (+20%)"},
			WindowDays:  90,
		}

		text := FormatText(result)
		assert.Contains(t, text, "Predicted spending (next 30 days): $450.00")
		assert.Contains(t, text, "Based on last 90 days expenses: $1,350.00")
		assert.Contains(t, text, "• food: $300.00")
		assert.Contains(t, text, "• rent: $150.00")
		assert.Contains(t, text, "Trends:")
		assert.Contains(t, text, "• food trending up (+20%)")
		assert.Contains(t, text, "Tip: Type 'add transaction'")
	})

	t.Run("caps categories at eight and warnings at five", func(t *testing.T) {
		byCategory := make(map[string]int64)
		var warnings []string
		for i := 0; i < 12; i++ {
			byCategory[fmt.Sprintf("cat%02d", i)] = int64(100 - i)
			warnings = append(warnings, fmt.Sprintf("cat%02d trending up (+20%%)", i))
		}

		text := FormatText(Result{
			PredictedByCategory: byCategory,
			Warnings:            warnings,
			WindowDays:          90,
		})

		assert.Contains(t, text, "• cat07:")
		assert.NotContains(t, text, "• cat08:")
		assert.Contains(t, text, "• cat04 trending up")
		assert.NotContains(t, text, "• cat05 trending up")
	})

	t.Run("no warnings means no trends section", func(t *testing.T) {
		text := FormatText(Result{WindowDays: 90})
		assert.NotContains(t, text, "Trends:")
	})
}
