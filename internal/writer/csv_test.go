package writer

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/insightdelivered/statement-parser/internal/models"
)

func sampleInfo() *models.StatementInfo {
	return &models.StatementInfo{
		Bank:   models.BankTruist,
		Source: "truist_statement_2022-10.pdf",
		Debits: []models.Transaction{
			{Date: time.Date(2022, 10, 3, 0, 0, 0, 0, time.UTC), Description: "CARD PAYMENT GROCERY", Amount: decimal.RequireFromString("25.99"), IsDebit: true},
			{Date: time.Date(2022, 10, 5, 0, 0, 0, 0, time.UTC), Description: "RENT, APT 4", Amount: decimal.RequireFromString("1200.00"), IsDebit: true},
		},
		Credits: []models.Transaction{
			{Date: time.Date(2022, 10, 15, 0, 0, 0, 0, time.UTC), Description: "PAYROLL", Amount: decimal.RequireFromString("2500.00")},
		},
	}
}

func TestCSVWriter_Write(t *testing.T) {
	var buf bytes.Buffer
	w := &CSVWriter{IncludeHeader: true}
	if err := w.Write(&buf, sampleInfo()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	output := buf.String()

	if !strings.Contains(output, "# Bank,truist") {
		t.Error("expected bank metadata header")
	}
	if !strings.Contains(output, "# Total Debits,1225.99") {
		t.Error("expected debit total")
	}
	if !strings.Contains(output, "Date,Description,Type,Amount") {
		t.Error("expected column headers")
	}
	if !strings.Contains(output, "2022-10-03,CARD PAYMENT GROCERY,DEBIT,25.99") {
		t.Error("expected first debit row")
	}
	if !strings.Contains(output, `2022-10-05,"RENT, APT 4",DEBIT,1200.00`) {
		t.Error("expected quoted description")
	}
	if !strings.Contains(output, "2022-10-15,PAYROLL,CREDIT,2500.00") {
		t.Error("expected credit row")
	}

	lines := strings.Split(strings.TrimSpace(output), "\n")
	// 4 metadata lines + 1 header + 3 transactions = 8
	if len(lines) != 8 {
		t.Errorf("expected 8 lines, got %d", len(lines))
	}
}

func TestCSVWriter_WriteNoHeader(t *testing.T) {
	var buf bytes.Buffer
	w := &CSVWriter{IncludeHeader: false}
	if err := w.Write(&buf, sampleInfo()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	output := buf.String()
	if strings.Contains(output, "# Bank") {
		t.Error("should not have bank metadata when header=false")
	}
	if !strings.HasPrefix(output, "Date,Description,Type,Amount\n") {
		t.Error("expected column headers even without metadata")
	}
}

func TestCSVWriter_WriteToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	w := &CSVWriter{}
	if err := w.WriteToFile(path, sampleInfo()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	if !strings.Contains(string(data), "PAYROLL") {
		t.Error("expected credit in written file")
	}
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, "report.json")
	err := WriteFile(path, func(out io.Writer) error {
		return WriteJSON(out, sampleInfo())
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	if !strings.Contains(string(data), `"totalCredit": "2500.00"`) {
		t.Errorf("unexpected report: %s", data)
	}

	boom := errors.New("boom")
	err = WriteFile(filepath.Join(dir, "partial.txt"), func(io.Writer) error { return boom })
	if !errors.Is(err, boom) {
		t.Errorf("expected write error to propagate, got %v", err)
	}

	err = WriteFile(filepath.Join(dir, "no-such-dir", "out.csv"), func(io.Writer) error { return nil })
	if err == nil || !strings.Contains(err.Error(), "failed to create output file") {
		t.Errorf("expected create error, got %v", err)
	}
}

func TestWriteText(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteText(&buf, sampleInfo()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "Debits (2, total $1225.99)\n" +
		"2022-10-03 $25.99 CARD PAYMENT GROCERY\n" +
		"2022-10-05 $1200.00 RENT, APT 4\n" +
		"\n" +
		"Credits (1, total $2500.00)\n" +
		"2022-10-15 $2500.00 PAYROLL\n"
	if buf.String() != want {
		t.Errorf("got:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestWriteJSON_EmptyListsAreArrays(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, &models.StatementInfo{Bank: models.BankTruist}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var got map[string]any
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if _, ok := got["debits"].([]any); !ok {
		t.Errorf("debits should be an array, got %T", got["debits"])
	}
	if got["totalDebit"] != "0.00" {
		t.Errorf("totalDebit: got %v", got["totalDebit"])
	}
}
