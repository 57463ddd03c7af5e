// Package forecast projects next-month spending from historical expense
// transactions and flags category trends.
package forecast

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Record is the canonical internal transaction shape. All duck-typed source
// data is normalized into it at the ingestion boundary; business logic never
// type-sniffs past this point.
type Record struct {
	ID       string
	Type     string // "income" or "expense", lowercased
	Amount   float64
	Category string
	Time     time.Time // zero when the source timestamp was unresolvable
}

// RawTransaction is a transaction as the storage collaborator hands it over:
// the amount may be plain or currency-formatted text, and the date may be a
// millisecond timestamp or any of several string layouts.
type RawTransaction struct {
	ID        string
	UID       string
	Type      string
	Amount    string
	Category  string
	Date      string
	Timestamp int64 // unix milliseconds, 0 when absent
}

// dateLayouts are tried in order when resolving string dates.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"Jan 2, 2006",
	time.RFC1123,
}

// Normalize converts a raw transaction to the canonical record. Amounts that
// fail to parse become 0; dates that fail to parse leave a zero Time, which
// the windowing functions treat as missing data.
func (r RawTransaction) Normalize() Record {
	return Record{
		ID:       r.ID,
		Type:     strings.ToLower(strings.TrimSpace(r.Type)),
		Amount:   ParseAmount(r.Amount),
		Category: r.Category,
		Time:     r.resolveTime(),
	}
}

func (r RawTransaction) resolveTime() time.Time {
	if r.Timestamp > 0 {
		return time.UnixMilli(r.Timestamp)
	}
	s := strings.TrimSpace(r.Date)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// NormalizeAll maps raw transactions to canonical records.
func NormalizeAll(raws []RawTransaction) []Record {
	records := make([]Record, len(raws))
	for i, r := range raws {
		records[i] = r.Normalize()
	}
	return records
}

// ParseAmount reads a possibly currency-formatted amount ("45", "$45.00",
// "1,234.50") into a float. Unparseable input counts as 0.
func ParseAmount(s string) float64 {
	s = strings.TrimSpace(s)
	s = strings.TrimLeft(s, "$€£ ")
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return 0
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0
	}
	return d.InexactFloat64()
}

// IsExpense reports whether the record is an expense.
func (r Record) IsExpense() bool { return r.Type == "expense" }
