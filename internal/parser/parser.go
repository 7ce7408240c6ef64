package parser

import (
	"fmt"
	"strings"

	"github.com/insightdelivered/statement-parser/internal/layout"
	"github.com/insightdelivered/statement-parser/internal/models"
)

// Variant is everything specific to one institution's statement format.
type Variant struct {
	Bank   models.BankType
	Name   string
	Layout SectionLayout
	// Params are the layout-analysis thresholds tuned for this format.
	Params layout.Params
	Lines  LineParser
	// Markers identify the institution in statement text.
	Markers []string
}

// variants lists every supported format in detection order.
var variants = []func() Variant{
	Truist,
}

// New returns the variant for the given bank type.
func New(bankType models.BankType) (Variant, error) {
	for _, v := range variants {
		variant := v()
		if variant.Bank == bankType {
			return variant, nil
		}
	}
	return Variant{}, fmt.Errorf("%w: %q", ErrUnsupportedBank, bankType)
}

// ParseBankType maps user input such as "Truist" to a bank type.
func ParseBankType(s string) (models.BankType, error) {
	bankType := models.BankType(strings.ToLower(strings.TrimSpace(s)))
	if _, err := New(bankType); err != nil {
		return "", err
	}
	return bankType, nil
}

// SupportedBanks lists the bank types New accepts.
func SupportedBanks() []models.BankType {
	banks := make([]models.BankType, 0, len(variants))
	for _, v := range variants {
		banks = append(banks, v().Bank)
	}
	return banks
}

// AutoDetect identifies the institution from the document text, either by
// name or by its section headings.
func AutoDetect(doc *layout.Document) (Variant, error) {
	text := doc.Text()
	for _, v := range variants {
		variant := v()
		if containsAny(text, variant.Markers) {
			return variant, nil
		}
		if len(doc.FindExactText(variant.Layout.DebitsHeading)) > 0 ||
			len(doc.FindExactText(variant.Layout.CreditsHeading)) > 0 {
			return variant, nil
		}
	}
	return Variant{}, ErrBankNotDetected
}
