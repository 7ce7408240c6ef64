package models

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

// Transaction represents a single bank statement transaction.
// Values are built once by the parser and never modified.
type Transaction struct {
	Date        time.Time
	Description string
	Amount      decimal.Decimal // always >= 0, two decimal places
	IsDebit     bool
}

// Type returns DEBIT or CREDIT.
func (t Transaction) Type() string {
	if t.IsDebit {
		return "DEBIT"
	}
	return "CREDIT"
}

func (t Transaction) String() string {
	return fmt.Sprintf("%s $%s %s", t.Date.Format(dateLayout), t.Amount.StringFixed(2), t.Description)
}

type transactionJSON struct {
	Date        string `json:"date"`
	Description string `json:"description"`
	Type        string `json:"type"`
	Amount      string `json:"amount"`
}

// MarshalJSON renders dates as YYYY-MM-DD and amounts as fixed two-digit strings.
func (t Transaction) MarshalJSON() ([]byte, error) {
	return json.Marshal(transactionJSON{
		Date:        t.Date.Format(dateLayout),
		Description: t.Description,
		Type:        t.Type(),
		Amount:      t.Amount.StringFixed(2),
	})
}

// Total sums the amounts of txns.
func Total(txns []Transaction) decimal.Decimal {
	sum := decimal.Zero
	for _, txn := range txns {
		sum = sum.Add(txn.Amount)
	}
	return sum
}

// BankType represents supported bank statement formats.
type BankType string

const (
	BankTruist BankType = "truist"
)

// StatementInfo holds everything extracted from one statement.
type StatementInfo struct {
	Bank    BankType
	Source  string
	Debits  []Transaction
	Credits []Transaction
}

// Transactions returns debits followed by credits.
func (s *StatementInfo) Transactions() []Transaction {
	all := make([]Transaction, 0, len(s.Debits)+len(s.Credits))
	all = append(all, s.Debits...)
	return append(all, s.Credits...)
}
