package layout

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/insightdelivered/statement-parser/internal/testpdf"
)

var truistParams = Params{CharMargin: 100, WordMargin: 0.15}

func TestLoad_GeneratedStatement(t *testing.T) {
	path := filepath.Join(t.TempDir(), "statement.pdf")
	require.NoError(t, testpdf.WriteFile(path, testpdf.TruistStatement()))

	doc, err := Load(path, truistParams)
	require.NoError(t, err)

	assert.Equal(t, 2, doc.NumPages)
	texts := make([]string, len(doc.Elements))
	for i, el := range doc.Elements {
		texts[i] = el.Text
	}
	assert.Equal(t, []string{
		"Truist Bank checking account statement",
		"Other withdrawals, debits and service charges",
		"DATE DESCRIPTION AMOUNT($)\n12/28 GROCERY 45.12\n12/30 FUEL STATION #7 30.00\ncontinued",
		"Page 1 of 2",
		"Truist Bank statement for the period ending 01/05",
		"Other withdrawals, debits and service charges (continued)\n01/03 PHARMACY 1,012.00",
		"Deposits, credits and interest",
		"DATE DESCRIPTION AMOUNT($)\n01/02 PAYROLL ACME 2,500.00",
		"Page 2 of 2",
	}, texts)
}

func TestLoadBytes_NarrowCharMarginSplitsAmounts(t *testing.T) {
	data, err := testpdf.Build(testpdf.TruistStatement())
	require.NoError(t, err)

	doc, err := LoadBytes(data, Params{CharMargin: 2, WordMargin: 0.15})
	require.NoError(t, err)

	found := doc.FindExactText("45.12")
	require.Len(t, found, 1)
	assert.Equal(t, 1, found[0].Page)
}
