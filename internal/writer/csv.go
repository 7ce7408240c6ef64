package writer

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/insightdelivered/statement-parser/internal/models"
)

// CSVWriter writes transactions to CSV format.
type CSVWriter struct {
	IncludeHeader bool
}

// WriteToFile writes transactions to a CSV file at the given path.
func (w *CSVWriter) WriteToFile(path string, info *models.StatementInfo) error {
	return WriteFile(path, func(out io.Writer) error {
		return w.Write(out, info)
	})
}

// WriteFile creates path and hands it to write. A failure to flush the
// file on close is reported like a write error.
func WriteFile(path string, write func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file %q: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing output file %q: %w", path, cerr)
		}
	}()

	return write(f)
}

// Write writes debits then credits in CSV format to out.
func (w *CSVWriter) Write(out io.Writer, info *models.StatementInfo) error {
	writer := csv.NewWriter(out)

	if w.IncludeHeader {
		if info.Bank != "" {
			writer.Write([]string{"# Bank", string(info.Bank)})
		}
		if info.Source != "" {
			writer.Write([]string{"# Source", info.Source})
		}
		writer.Write([]string{"# Total Debits", models.Total(info.Debits).StringFixed(2)})
		writer.Write([]string{"# Total Credits", models.Total(info.Credits).StringFixed(2)})
	}

	header := []string{"Date", "Description", "Type", "Amount"}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, txn := range info.Transactions() {
		row := []string{
			txn.Date.Format("2006-01-02"),
			txn.Description,
			txn.Type(),
			txn.Amount.StringFixed(2),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}
