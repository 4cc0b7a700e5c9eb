package expr

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jvitoroc/gocalc/eval"
)

// Mode selects how Parse groups operators.
type Mode string

const (
	// ModeCompat scans once with one token of lookahead. Chains of
	// same-precedence operators associate to the right and parenthesised
	// groups cannot nest.
	ModeCompat Mode = "compat"
	// ModeStandard uses conventional precedence, left associativity and
	// nested parentheses.
	ModeStandard Mode = "standard"
)

func (m Mode) Valid() bool {
	return m == ModeCompat || m == ModeStandard
}

type options struct {
	mode   Mode
	logger *slog.Logger
}

type Option func(*options)

func WithMode(m Mode) Option {
	return func(o *options) {
		o.mode = m
	}
}

// WithLogger traces every dispatched token and extracted group at debug
// level.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// Parse builds an expression tree from tokens. It returns a nil tree and a
// nil error when tokens is empty.
func Parse(tokens []Token, opts ...Option) (*eval.Expression, error) {
	o := &options{mode: ModeCompat}
	for _, opt := range opts {
		opt(o)
	}

	if len(tokens) == 0 {
		return nil, nil
	}

	switch o.mode {
	case ModeCompat:
		return o.parseCompat(tokens)
	case ModeStandard:
		return o.parseStandard(tokens)
	}

	return nil, fmt.Errorf("unknown parser mode '%s'", o.mode)
}

func (o *options) debug(msg string, args ...any) {
	if o.logger == nil {
		return
	}

	o.logger.Log(context.Background(), slog.LevelDebug, msg, args...)
}

func operand(tk Token) *eval.Expression {
	return eval.NewOperand(tk.Value)
}

func operator(tk Token, left, right *eval.Expression) (*eval.Expression, error) {
	if !eval.IsOperator(string(tk.Type)) {
		return nil, newParseError(ErrUnsupportedToken, tk, "token '%s' is not a valid operator", tk)
	}

	return eval.NewOperator(eval.OperatorType(tk.Type), left, right), nil
}
