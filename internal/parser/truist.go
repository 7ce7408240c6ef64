package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/insightdelivered/statement-parser/internal/layout"
	"github.com/insightdelivered/statement-parser/internal/models"
)

// Truist checking statements list each kind of transaction under its own
// heading:
//
//	Other withdrawals, debits and service charges
//	DATE DESCRIPTION AMOUNT($)
//	10/03 POS PURCHASE GROCERY 45.12
//	...
//	continued
//
// A section that overflows its page ends the page's block with
// "continued" and picks up three blocks later, after the page footer and
// the next page's header.
var truistLayout = SectionLayout{
	DebitsHeading:  "Other withdrawals, debits and service charges",
	CreditsHeading: "Deposits, credits and interest",
	Continuation:   "continued",
	PageOffset:     3,
}

// truistParams keeps whole table rows on one line and splits words on
// narrow gaps, which is what the statement typesetting needs.
var truistParams = layout.Params{
	CharMargin:  100.0,
	WordMargin:  0.15,
	LineMargin:  0.5,
	LineOverlap: 0.5,
}

// MM/DD DESCRIPTION AMOUNT, amount optionally grouped by thousands.
var truistLinePattern = regexp.MustCompile(
	`^(\d{2})/(\d{2}) (.+?) ((?:\d{1,3}(?:,\d{3})+|\d+)\.\d{2})\s*$`,
)

// TruistLineParser parses Truist transaction lines.
type TruistLineParser struct{}

func (TruistLineParser) ParseLine(line string) (LineFields, error) {
	m := truistLinePattern.FindStringSubmatch(line)
	if m == nil {
		return LineFields{}, ErrMalformedLine
	}

	month, _ := strconv.Atoi(m[1])
	day, _ := strconv.Atoi(m[2])

	desc := strings.TrimSpace(m[3])
	if desc == "" {
		return LineFields{}, fmt.Errorf("empty description: %w", ErrMalformedLine)
	}

	amount, err := parseAmount(m[4])
	if err != nil {
		return LineFields{}, fmt.Errorf("%v: %w", err, ErrMalformedLine)
	}

	return LineFields{
		Month:       month,
		Day:         day,
		Description: desc,
		Amount:      amount,
	}, nil
}

// Truist returns the Truist checking statement variant.
func Truist() Variant {
	return Variant{
		Bank:   models.BankTruist,
		Name:   "Truist",
		Layout: truistLayout,
		Params: truistParams,
		Lines:  TruistLineParser{},
		Markers: []string{
			"Truist", "truist.com", "Truist Bank",
		},
	}
}
