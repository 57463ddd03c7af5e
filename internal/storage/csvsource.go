// Package storage provides the local stand-in for the external transaction
// storage collaborator: a read-only CSV file of transaction records.
package storage

import (
	"context"
	"fmt"
	"os"

	"github.com/gocarina/gocsv"

	"github.com/mpereira/moneymap/internal/domain/forecast"
)

// csvRow mirrors one line of the transactions CSV. Amount and date stay as
// text here; the forecast ingestion boundary normalizes them.
type csvRow struct {
	ID        string `csv:"id"`
	UID       string `csv:"uid"`
	Type      string `csv:"type"`
	Amount    string `csv:"amount"`
	Category  string `csv:"category"`
	Date      string `csv:"date"`
	Timestamp int64  `csv:"timestamp"`
}

// CSVSource reads transaction records from a CSV file.
type CSVSource struct {
	path string
}

// NewCSVSource creates a source backed by the given file.
func NewCSVSource(path string) *CSVSource {
	return &CSVSource{path: path}
}

// FetchUserTransactions loads the file and returns the records belonging to
// userID, normalized to the canonical forecast shape.
func (s *CSVSource) FetchUserTransactions(ctx context.Context, userID string) ([]forecast.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open transactions file: %w", err)
	}
	defer f.Close()

	var rows []csvRow
	if err := gocsv.UnmarshalFile(f, &rows); err != nil {
		return nil, fmt.Errorf("failed to parse transactions file: %w", err)
	}

	raws := make([]forecast.RawTransaction, 0, len(rows))
	for _, row := range rows {
		if row.UID != userID {
			continue
		}
		raws = append(raws, forecast.RawTransaction{
			ID:        row.ID,
			UID:       row.UID,
			Type:      row.Type,
			Amount:    row.Amount,
			Category:  row.Category,
			Date:      row.Date,
			Timestamp: row.Timestamp,
		})
	}

	return forecast.NormalizeAll(raws), nil
}
