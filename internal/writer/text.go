package writer

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/insightdelivered/statement-parser/internal/models"
)

// WriteText prints one transaction per line, debits first, each section
// under its own title.
func WriteText(out io.Writer, info *models.StatementInfo) error {
	sections := []struct {
		title string
		txns  []models.Transaction
	}{
		{"Debits", info.Debits},
		{"Credits", info.Credits},
	}
	for i, sec := range sections {
		if i > 0 {
			if _, err := fmt.Fprintln(out); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(out, "%s (%d, total $%s)\n", sec.title, len(sec.txns), models.Total(sec.txns).StringFixed(2)); err != nil {
			return err
		}
		for _, txn := range sec.txns {
			if _, err := fmt.Fprintln(out, txn.String()); err != nil {
				return err
			}
		}
	}
	return nil
}

// Report is the JSON shape of an extracted statement.
type Report struct {
	Bank        string               `json:"bank"`
	Source      string               `json:"source,omitempty"`
	Debits      []models.Transaction `json:"debits"`
	Credits     []models.Transaction `json:"credits"`
	TotalDebit  string               `json:"totalDebit"`
	TotalCredit string               `json:"totalCredit"`
	Count       int                  `json:"count"`
}

// NewReport builds the JSON shape of info. Lists are never nil so they
// encode as [] rather than null.
func NewReport(info *models.StatementInfo) Report {
	debits := info.Debits
	if debits == nil {
		debits = []models.Transaction{}
	}
	credits := info.Credits
	if credits == nil {
		credits = []models.Transaction{}
	}
	return Report{
		Bank:        string(info.Bank),
		Source:      info.Source,
		Debits:      debits,
		Credits:     credits,
		TotalDebit:  models.Total(debits).StringFixed(2),
		TotalCredit: models.Total(credits).StringFixed(2),
		Count:       len(debits) + len(credits),
	}
}

// WriteJSON writes the indented report for info.
func WriteJSON(out io.Writer, info *models.StatementInfo) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(NewReport(info))
}
