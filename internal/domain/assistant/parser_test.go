package assistant

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParser_Parse(t *testing.T) {
	p := NewParser()

	t.Run("full statement", func(t *testing.T) {
		parsed := p.Parse("spent 45 on food today")
		assert.True(t, parsed.Complete)
		assert.True(t, parsed.HasAny)
		assert.Equal(t, TypeExpense, parsed.Data.Type)
		require.NotNil(t, parsed.Data.Amount)
		assert.Equal(t, 45.0, *parsed.Data.Amount)
		assert.Equal(t, "food", parsed.Data.Category)
		assert.Equal(t, "today", parsed.Data.Date)
	})

	t.Run("dollar sign and decimals", func(t *testing.T) {
		parsed := p.Parse("paid $12.50 for the bus")
		require.NotNil(t, parsed.Data.Amount)
		assert.Equal(t, 12.5, *parsed.Data.Amount)
		assert.Equal(t, TypeExpense, parsed.Data.Type)
		assert.Equal(t, "transport", parsed.Data.Category)
	})

	t.Run("income words take priority over expense words", func(t *testing.T) {
		parsed := p.Parse("received salary and spent some of it")
		assert.Equal(t, TypeIncome, parsed.Data.Type)
	})

	t.Run("first category in table order wins", func(t *testing.T) {
		// "lunch" (food) and "uber" (transport) both present; food is
		// listed first.
		parsed := p.Parse("uber to lunch")
		assert.Equal(t, "food", parsed.Data.Category)
	})

	t.Run("iso date", func(t *testing.T) {
		parsed := p.Parse("bought clothes on 2026-08-15")
		assert.Equal(t, "2026-08-15", parsed.Data.Date)
		assert.Equal(t, "shopping", parsed.Data.Category)
	})

	t.Run("today beats an iso date later in the text", func(t *testing.T) {
		parsed := p.Parse("today not 2026-08-15")
		assert.Equal(t, "today", parsed.Data.Date)
	})

	t.Run("partial statement is not complete", func(t *testing.T) {
		parsed := p.Parse("spent money on stuff")
		assert.True(t, parsed.HasAny) // type detected
		assert.False(t, parsed.Complete)
		assert.Nil(t, parsed.Data.Amount)
	})

	t.Run("amount alone is not complete", func(t *testing.T) {
		parsed := p.Parse("45")
		assert.True(t, parsed.HasAny)
		assert.False(t, parsed.Complete)
	})

	t.Run("no fields at all", func(t *testing.T) {
		parsed := p.Parse("hello there")
		assert.False(t, parsed.HasAny)
		assert.False(t, parsed.Complete)
	})
}

func TestCategoryEngine(t *testing.T) {
	e := newCategoryEngine(categoryRules)

	cases := []struct {
		text string
		want string
	}{
		{"groceries run", "food"},
		{"monthly rent", "rent"},
		{"petrol for the car", "transport"},
		{"amazon order", "shopping"},
		{"internet bill", "bills"}, // food list has no hit; bills wins over nothing
		{"pharmacy pickup", "health"},
		{"netflix night", "entertainment"},
		{"nothing relevant", ""},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, e.Match(tc.text), "text %q", tc.text)
	}
}
