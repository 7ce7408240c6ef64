package layout

import (
	"math"
	"sort"
	"strings"
)

// Params are the layout-analysis thresholds used to group glyphs into
// lines and lines into blocks. All margins are relative to glyph size.
type Params struct {
	// CharMargin is how far apart (in glyph widths) two glyphs on the
	// same row may be and still belong to one line.
	CharMargin float64 `yaml:"char_margin"`
	// WordMargin is the gap (in glyph widths) above which a space is
	// inserted between two glyphs of a line.
	WordMargin float64 `yaml:"word_margin"`
	// LineMargin is the vertical gap (in line heights) below which two
	// lines belong to the same block.
	LineMargin float64 `yaml:"line_margin"`
	// LineOverlap is the fraction of glyph height two glyphs must share
	// vertically to sit on the same row.
	LineOverlap float64 `yaml:"line_overlap"`
}

// DefaultParams returns general-purpose thresholds.
func DefaultParams() Params {
	return Params{
		CharMargin:  2.0,
		WordMargin:  0.1,
		LineMargin:  0.5,
		LineOverlap: 0.5,
	}
}

// WithDefaults fills zero fields from DefaultParams.
func (p Params) WithDefaults() Params {
	d := DefaultParams()
	if p.CharMargin <= 0 {
		p.CharMargin = d.CharMargin
	}
	if p.WordMargin <= 0 {
		p.WordMargin = d.WordMargin
	}
	if p.LineMargin <= 0 {
		p.LineMargin = d.LineMargin
	}
	if p.LineOverlap <= 0 {
		p.LineOverlap = d.LineOverlap
	}
	return p
}

// Glyph is one positioned piece of text as drawn on the page. X and Y are
// the baseline origin in PDF user space (Y grows upwards).
type Glyph struct {
	X        float64
	Y        float64
	W        float64
	FontSize float64
	S        string
}

func (g Glyph) width() float64 {
	if g.W > 0 {
		return g.W
	}
	return g.FontSize * 0.5 * float64(len([]rune(g.S)))
}

func (g Glyph) x1() float64 { return g.X + g.width() }
func (g Glyph) y1() float64 { return g.Y + g.FontSize }

type textLine struct {
	x0, y0, x1, y1 float64
	last           Glyph
	text           strings.Builder
}

func (l *textLine) height() float64 { return l.y1 - l.y0 }

func (l *textLine) add(g Glyph) {
	l.text.WriteString(g.S)
	l.x0 = math.Min(l.x0, g.X)
	l.x1 = math.Max(l.x1, g.x1())
	l.y0 = math.Min(l.y0, g.Y)
	l.y1 = math.Max(l.y1, g.y1())
	l.last = g
}

func newLine(g Glyph) *textLine {
	l := &textLine{x0: g.X, y0: g.Y, x1: g.x1(), y1: g.y1()}
	l.text.WriteString(g.S)
	l.last = g
	return l
}

// sameRow reports whether b continues the row that a ends.
func sameRow(a, b Glyph, p Params) bool {
	overlap := math.Min(a.y1(), b.y1()) - math.Max(a.Y, b.Y)
	minHeight := math.Min(a.FontSize, b.FontSize)
	if overlap <= minHeight*p.LineOverlap {
		return false
	}
	dist := math.Max(0, math.Max(b.X-a.x1(), a.X-b.x1()))
	return dist < math.Max(a.width(), b.width())*p.CharMargin
}

func groupLines(glyphs []Glyph, p Params) []*textLine {
	var lines []*textLine
	var cur *textLine
	for _, g := range glyphs {
		if g.S == "" {
			continue
		}
		if cur != nil && sameRow(cur.last, g, p) {
			gap := g.X - cur.last.x1()
			size := math.Max(math.Max(g.width(), g.FontSize), math.Max(cur.last.width(), cur.last.FontSize))
			if gap > size*p.WordMargin && !strings.HasSuffix(cur.last.S, " ") && !strings.HasPrefix(g.S, " ") {
				cur.text.WriteString(" ")
			}
			cur.add(g)
			continue
		}
		if cur != nil {
			lines = append(lines, cur)
		}
		cur = newLine(g)
	}
	if cur != nil {
		lines = append(lines, cur)
	}
	return lines
}

type textBlock struct {
	x0, y0, x1, y1 float64
	lines          []string
	last           *textLine
}

// belongs reports whether l sits directly under the block and overlaps it horizontally.
func (b *textBlock) belongs(l *textLine, p Params) bool {
	if l.x0 >= b.x1 || l.x1 <= b.x0 {
		return false
	}
	gap := b.last.y0 - l.y1
	limit := math.Max(b.last.height(), l.height()) * p.LineMargin
	return gap <= limit && l.y1 <= b.last.y1
}

func groupBlocks(lines []*textLine, p Params) []*textBlock {
	var blocks []*textBlock
	var cur *textBlock
	for _, l := range lines {
		text := strings.Join(strings.Fields(l.text.String()), " ")
		if text == "" {
			continue
		}
		if cur != nil && cur.belongs(l, p) {
			cur.lines = append(cur.lines, text)
			cur.x0 = math.Min(cur.x0, l.x0)
			cur.x1 = math.Max(cur.x1, l.x1)
			cur.y0 = math.Min(cur.y0, l.y0)
			cur.last = l
			continue
		}
		if cur != nil {
			blocks = append(blocks, cur)
		}
		cur = &textBlock{x0: l.x0, y0: l.y0, x1: l.x1, y1: l.y1, lines: []string{text}, last: l}
	}
	if cur != nil {
		blocks = append(blocks, cur)
	}
	return blocks
}

// Analyze groups each page's glyphs into blocks and returns them as a
// document ordered page by page, top to bottom, then left to right.
// Glyphs must be given in drawing order.
func Analyze(pages [][]Glyph, p Params) *Document {
	p = p.WithDefaults()
	doc := &Document{NumPages: len(pages)}
	for i, glyphs := range pages {
		blocks := groupBlocks(groupLines(glyphs, p), p)
		sort.SliceStable(blocks, func(a, b int) bool {
			if blocks[a].y1 != blocks[b].y1 {
				return blocks[a].y1 > blocks[b].y1
			}
			return blocks[a].x0 < blocks[b].x0
		})
		for _, b := range blocks {
			doc.Elements = append(doc.Elements, Element{
				Index: len(doc.Elements),
				Page:  i + 1,
				X0:    b.x0,
				Y0:    b.y0,
				X1:    b.x1,
				Y1:    b.y1,
				Text:  strings.Join(b.lines, "\n"),
			})
		}
	}
	return doc
}
