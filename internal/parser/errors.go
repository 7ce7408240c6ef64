package parser

import (
	"errors"
	"fmt"
)

// ErrFormatViolation is wrapped by every error meaning the statement does
// not follow the fixed institutional layout. No partial result accompanies it.
var ErrFormatViolation = errors.New("statement format violation")

var (
	ErrDuplicateHeading = fmt.Errorf("%w: section heading appears more than once", ErrFormatViolation)
	ErrMalformedLine    = fmt.Errorf("%w: transaction line does not match grammar", ErrFormatViolation)
	ErrInvalidDate      = fmt.Errorf("%w: transaction date is not a calendar date", ErrFormatViolation)
	ErrSectionTruncated = fmt.Errorf("%w: continued section runs past end of document", ErrFormatViolation)
)

// ErrUnsupportedBank is returned for bank types without a registered variant.
var ErrUnsupportedBank = errors.New("unsupported bank type")

// ErrBankNotDetected is returned by AutoDetect when no variant recognises
// the document.
var ErrBankNotDetected = errors.New("could not auto-detect bank from statement content")

// LineError ties a line-level failure to its position in the section.
type LineError struct {
	Index int
	Line  string
	Err   error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d %q: %v", e.Index+1, e.Line, e.Err)
}

func (e *LineError) Unwrap() error { return e.Err }
