package expr

import (
	"errors"
	"fmt"
)

var (
	ErrLiteralOutOfRange = errors.New("integer literal out of range")

	ErrUnexpectedClosingParenthesis = errors.New("unexpected closing parenthesis")
	ErrMissingClosingParenthesis    = errors.New("missing closing parenthesis")
	ErrInvalidParentheses           = errors.New("invalid parentheses")
	ErrEmptyParentheses             = errors.New("empty parentheses")
	ErrUnexpectedOperand            = errors.New("unexpected operand")
	ErrMissingOperand               = errors.New("missing operand")
	ErrInvalidOperand               = errors.New("invalid operand")
	ErrUnsupportedToken             = errors.New("unsupported token")
)

// LexError is returned by Tokenize.
type LexError struct {
	Message string
	Line    int
	Column  int
	Err     error
}

func (e *LexError) Error() string {
	return fmt.Sprintf("%s at %d:%d", e.Message, e.Line, e.Column)
}

func (e *LexError) Unwrap() error {
	return e.Err
}

// ParseError is returned by Parse. Err is one of the Err* sentinels above.
type ParseError struct {
	Message string
	Line    int
	Column  int
	Err     error
}

func (e *ParseError) Error() string {
	if e.Line == 0 {
		return e.Message
	}

	return fmt.Sprintf("%s at %d:%d", e.Message, e.Line, e.Column)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

func newParseError(err error, tk Token, format string, args ...any) *ParseError {
	return &ParseError{
		Message: fmt.Sprintf(format, args...),
		Line:    tk.Line,
		Column:  tk.Column,
		Err:     err,
	}
}
