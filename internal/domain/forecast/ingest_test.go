package forecast

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"45", 45},
		{"45.20", 45.2},
		{"$45.00", 45},
		{"€12.50", 12.5},
		{"1,234.50", 1234.5},
		{" $1,000 ", 1000},
		{"", 0},
		{"not a number", 0},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, ParseAmount(tc.in), "input %q", tc.in)
	}
}

func TestRawTransaction_Normalize(t *testing.T) {
	t.Run("millisecond timestamp wins over date string", func(t *testing.T) {
		at := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
		r := RawTransaction{Timestamp: at.UnixMilli(), Date: "1999-01-01"}.Normalize()
		assert.True(t, r.Time.Equal(at))
	})

	t.Run("string date layouts", func(t *testing.T) {
		cases := []string{
			"2026-08-01T10:30:00Z",
			"2026-08-01T10:30:00",
			"2026-08-01 10:30:00",
			"2026-08-01",
			"Aug 1, 2026",
		}
		for _, in := range cases {
			r := RawTransaction{Date: in}.Normalize()
			assert.False(t, r.Time.IsZero(), "date %q should resolve", in)
			assert.Equal(t, 2026, r.Time.Year(), "date %q", in)
		}
	})

	t.Run("unresolvable date leaves zero time", func(t *testing.T) {
		r := RawTransaction{Date: "sometime last week"}.Normalize()
		assert.True(t, r.Time.IsZero())
	})

	t.Run("type is lowercased and trimmed", func(t *testing.T) {
		r := RawTransaction{Type: " Expense "}.Normalize()
		assert.True(t, r.IsExpense())
	})

	t.Run("unparseable amount counts as zero", func(t *testing.T) {
		r := RawTransaction{Amount: "forty-five"}.Normalize()
		assert.Zero(t, r.Amount)
	})
}

func TestNormalizeAll(t *testing.T) {
	raws := []RawTransaction{
		{ID: "a", Type: "expense", Amount: "$10.00", Category: "food", Date: "2026-08-01"},
		{ID: "b", Type: "income", Amount: "2500", Date: "2026-08-02"},
	}

	records := NormalizeAll(raws)
	assert.Len(t, records, 2)
	assert.Equal(t, 10.0, records[0].Amount)
	assert.True(t, records[0].IsExpense())
	assert.False(t, records[1].IsExpense())
}
