package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// word lays s out one glyph per rune starting at x on baseline y.
func word(s string, x, y float64) []Glyph {
	var gs []Glyph
	for _, r := range s {
		gs = append(gs, Glyph{X: x, Y: y, W: 5, FontSize: 10, S: string(r)})
		x += 5
	}
	return gs
}

func row(parts ...[]Glyph) []Glyph {
	var gs []Glyph
	for _, p := range parts {
		gs = append(gs, p...)
	}
	return gs
}

func TestAnalyze_WideCharMarginJoinsColumns(t *testing.T) {
	page := row(
		word("10/03", 50, 700),
		word("GROCERY", 90, 700),
		word("12.34", 500, 700),
	)
	doc := Analyze([][]Glyph{page}, Params{CharMargin: 100, WordMargin: 0.15})

	require.Len(t, doc.Elements, 1)
	assert.Equal(t, "10/03 GROCERY 12.34", doc.Elements[0].Text)
}

func TestAnalyze_NarrowCharMarginSplitsColumns(t *testing.T) {
	page := row(
		word("LEFT", 50, 700),
		word("RIGHT", 400, 700),
	)
	doc := Analyze([][]Glyph{page}, Params{CharMargin: 2, WordMargin: 0.15})

	require.Len(t, doc.Elements, 2)
	assert.Equal(t, "LEFT", doc.Elements[0].Text)
	assert.Equal(t, "RIGHT", doc.Elements[1].Text)
}

func TestAnalyze_WordMarginControlsSpacing(t *testing.T) {
	// 3pt gap between the words.
	page := row(word("AB", 50, 700), word("CD", 63, 700))

	tight := Analyze([][]Glyph{page}, Params{CharMargin: 100, WordMargin: 0.15})
	require.Len(t, tight.Elements, 1)
	assert.Equal(t, "AB CD", tight.Elements[0].Text)

	loose := Analyze([][]Glyph{page}, Params{CharMargin: 100, WordMargin: 1})
	require.Len(t, loose.Elements, 1)
	assert.Equal(t, "ABCD", loose.Elements[0].Text)
}

func TestAnalyze_GroupsRowsIntoBlocks(t *testing.T) {
	page := row(
		word("Heading", 50, 700),
		word("DATE DESCRIPTION AMOUNT", 50, 650),
		word("10/03 SHOP 1.00", 50, 638),
		word("10/04 CAFE 2.00", 50, 626),
		word("Footer", 50, 100),
	)
	doc := Analyze([][]Glyph{page}, Params{CharMargin: 100, WordMargin: 0.15})

	require.Len(t, doc.Elements, 3)
	assert.Equal(t, "Heading", doc.Elements[0].Text)
	assert.Equal(t, "DATE DESCRIPTION AMOUNT\n10/03 SHOP 1.00\n10/04 CAFE 2.00", doc.Elements[1].Text)
	assert.Equal(t, "Footer", doc.Elements[2].Text)
}

func TestAnalyze_OrdersTopToBottomAcrossPages(t *testing.T) {
	p1 := row(word("lower", 50, 100), word("upper", 50, 700))
	p2 := row(word("next", 50, 700))
	doc := Analyze([][]Glyph{p1, p2}, Params{})

	require.Len(t, doc.Elements, 3)
	assert.Equal(t, "upper", doc.Elements[0].Text)
	assert.Equal(t, "lower", doc.Elements[1].Text)
	assert.Equal(t, "next", doc.Elements[2].Text)
	assert.Equal(t, 2, doc.Elements[2].Page)
	assert.Equal(t, 2, doc.Elements[2].Index)
}

func TestParams_WithDefaults(t *testing.T) {
	p := Params{CharMargin: 100}.WithDefaults()
	assert.Equal(t, 100.0, p.CharMargin)
	assert.Equal(t, DefaultParams().WordMargin, p.WordMargin)
	assert.Equal(t, DefaultParams().LineMargin, p.LineMargin)
}
