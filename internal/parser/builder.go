package parser

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/insightdelivered/statement-parser/internal/models"
)

// LineFields are the values an institution's grammar pulls out of one line.
type LineFields struct {
	Month       int
	Day         int
	Description string
	Amount      decimal.Decimal
}

// LineParser parses one raw transaction line. It is the only piece an
// institution supplies; traversal and year inference are shared.
type LineParser interface {
	ParseLine(line string) (LineFields, error)
}

// Build turns raw section lines into transactions, preserving order.
//
// Lines carry month and day only. Every line is dated in anchorYear except
// when the section ends in January: then December lines belong to the
// previous year.
func Build(lines []string, isDebit bool, anchorYear int, lp LineParser) ([]models.Transaction, error) {
	if len(lines) == 0 {
		return []models.Transaction{}, nil
	}

	fields := make([]LineFields, len(lines))
	for i, line := range lines {
		f, err := lp.ParseLine(line)
		if err != nil {
			return nil, &LineError{Index: i, Line: line, Err: err}
		}
		fields[i] = f
	}

	lastMonth := fields[len(fields)-1].Month

	txns := make([]models.Transaction, 0, len(lines))
	for i, f := range fields {
		year := resolveYear(f.Month, lastMonth, anchorYear)
		date, err := calendarDate(year, f.Month, f.Day)
		if err != nil {
			return nil, &LineError{Index: i, Line: lines[i], Err: err}
		}
		txns = append(txns, models.Transaction{
			Date:        date,
			Description: f.Description,
			Amount:      f.Amount,
			IsDebit:     isDebit,
		})
	}
	return txns, nil
}

func resolveYear(month, lastMonth, anchorYear int) int {
	if month == 12 && lastMonth == 1 {
		return anchorYear - 1
	}
	return anchorYear
}

// calendarDate rejects dates time.Date would silently normalise, like 02/30.
func calendarDate(year, month, day int) (time.Time, error) {
	if month < 1 || month > 12 || day < 1 {
		return time.Time{}, fmt.Errorf("%02d/%02d: %w", month, day, ErrInvalidDate)
	}
	d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if d.Month() != time.Month(month) || d.Day() != day {
		return time.Time{}, fmt.Errorf("%02d/%02d/%d: %w", month, day, year, ErrInvalidDate)
	}
	return d, nil
}
