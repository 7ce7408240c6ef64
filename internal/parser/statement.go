package parser

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/insightdelivered/statement-parser/internal/layout"
	"github.com/insightdelivered/statement-parser/internal/models"
)

// Statement exposes the debits and credits of one loaded statement.
// Each list is computed on first access and cached, errors included.
// A Statement is not safe for concurrent use.
type Statement struct {
	doc     Document
	variant Variant
	source  string

	anchorYear int
	clock      func() time.Time
	extract    SectionExtractor
	params     *layout.Params
	logger     *zap.Logger

	debits  *section
	credits *section
}

type section struct {
	txns []models.Transaction
	err  error
}

// Option configures a Statement.
type Option func(*Statement)

// WithAnchorYear dates transactions in year instead of the current year.
func WithAnchorYear(year int) Option {
	return func(s *Statement) { s.anchorYear = year }
}

// WithClock supplies the time used to pick the anchor year.
func WithClock(clock func() time.Time) Option {
	return func(s *Statement) { s.clock = clock }
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Statement) { s.logger = logger }
}

// WithLayoutParams overrides the variant's layout thresholds when loading.
func WithLayoutParams(p layout.Params) Option {
	return func(s *Statement) { s.params = &p }
}

// WithVariant selects the institution format. Open auto-detects without it.
func WithVariant(v Variant) Option {
	return func(s *Statement) { s.variant = v }
}

// WithSectionExtractor replaces ExtractSection.
func WithSectionExtractor(fn SectionExtractor) Option {
	return func(s *Statement) { s.extract = fn }
}

func newStatement(opts []Option) *Statement {
	s := &Statement{
		clock:   time.Now,
		extract: ExtractSection,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Open loads the PDF at path once and returns a Statement over it.
func Open(path string, opts ...Option) (*Statement, error) {
	s := newStatement(opts)
	s.source = path

	params := s.variant.Params
	if s.params != nil {
		params = *s.params
	} else if s.variant.Lines == nil {
		params = truistParams
	}

	doc, err := layout.Load(path, params)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("statement loaded",
		zap.String("path", path),
		zap.Int("pages", doc.NumPages),
		zap.Int("elements", len(doc.Elements)),
	)

	if err := s.bind(doc); err != nil {
		return nil, err
	}
	return s, nil
}

// NewStatement wraps an already-loaded document.
func NewStatement(doc *layout.Document, opts ...Option) (*Statement, error) {
	s := newStatement(opts)
	if err := s.bind(doc); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Statement) bind(doc *layout.Document) error {
	s.doc = doc
	if s.variant.Lines != nil {
		return nil
	}
	v, err := AutoDetect(doc)
	if err != nil {
		return err
	}
	s.logger.Debug("bank auto-detected", zap.String("bank", string(v.Bank)))
	s.variant = v
	return nil
}

// Bank returns the institution this statement is parsed as.
func (s *Statement) Bank() models.BankType {
	return s.variant.Bank
}

// Debits returns the transactions under the debits heading.
func (s *Statement) Debits() ([]models.Transaction, error) {
	if s.debits == nil {
		s.debits = s.load(s.variant.Layout.DebitsHeading, true)
	}
	return s.debits.txns, s.debits.err
}

// Credits returns the transactions under the credits heading.
func (s *Statement) Credits() ([]models.Transaction, error) {
	if s.credits == nil {
		s.credits = s.load(s.variant.Layout.CreditsHeading, false)
	}
	return s.credits.txns, s.credits.err
}

// Info gathers both lists.
func (s *Statement) Info() (*models.StatementInfo, error) {
	debits, err := s.Debits()
	if err != nil {
		return nil, err
	}
	credits, err := s.Credits()
	if err != nil {
		return nil, err
	}
	return &models.StatementInfo{
		Bank:    s.variant.Bank,
		Source:  s.source,
		Debits:  debits,
		Credits: credits,
	}, nil
}

func (s *Statement) load(title string, isDebit bool) *section {
	lines, err := s.extract(s.doc, title, s.variant.Layout)
	if err != nil {
		return &section{err: fmt.Errorf("extracting section: %w", err)}
	}
	s.logger.Debug("section extracted", zap.String("title", title), zap.Int("lines", len(lines)))

	txns, err := Build(lines, isDebit, s.year(), s.variant.Lines)
	if err != nil {
		return &section{err: fmt.Errorf("%q: %w", title, err)}
	}
	return &section{txns: txns}
}

func (s *Statement) year() int {
	if s.anchorYear != 0 {
		return s.anchorYear
	}
	return s.clock().Year()
}
