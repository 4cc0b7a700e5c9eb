package calc

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/google/uuid"
	"github.com/jvitoroc/gocalc/eval"
	"github.com/jvitoroc/gocalc/expr"
	"github.com/jvitoroc/gocalc/history"
)

// Result is the outcome of one evaluated line. Empty is set when the line
// holds no tokens, in which case Value is meaningless.
type Result struct {
	Source string
	Value  int32
	Empty  bool
	Tree   *eval.Expression
}

func (r *Result) String() string {
	if r.Empty {
		return ""
	}

	return strconv.FormatInt(int64(r.Value), 10)
}

// Calculator runs text through tokenize, parse and evaluate. It holds no
// per-call state and is safe for concurrent use.
type Calculator struct {
	id string

	mode            expr.Mode
	strictLessEqual bool
	history         *history.Log
	logger          *slog.Logger
}

type Option func(*Calculator)

func WithParserMode(m expr.Mode) Option {
	return func(c *Calculator) {
		c.mode = m
	}
}

func WithStrictLessEqual(strict bool) Option {
	return func(c *Calculator) {
		c.strictLessEqual = strict
	}
}

// WithHistory records every evaluated line in l.
func WithHistory(l *history.Log) Option {
	return func(c *Calculator) {
		c.history = l
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Calculator) {
		c.logger = l
	}
}

func New(opts ...Option) *Calculator {
	c := &Calculator{
		id:     uuid.NewString(),
		mode:   expr.ModeCompat,
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(c)
	}

	c.logger = c.logger.With("session", c.id)

	return c
}

func (c *Calculator) ID() string {
	return c.id
}

var dumper = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

// Evaluate runs one line through the pipeline.
func (c *Calculator) Evaluate(ctx context.Context, line string) (*Result, error) {
	res, err := c.evaluate(ctx, line)
	c.record(ctx, line, res, err)

	return res, err
}

func (c *Calculator) evaluate(ctx context.Context, line string) (*Result, error) {
	tokens, err := expr.Tokenize(line)
	if err != nil {
		return nil, err
	}

	debug := c.logger.Enabled(ctx, slog.LevelDebug)
	if debug {
		c.logger.DebugContext(ctx, "tokenized", "source", line, "tokens", expr.Render(tokens))
	}

	parseOpts := []expr.Option{expr.WithMode(c.mode)}
	if debug {
		parseOpts = append(parseOpts, expr.WithLogger(c.logger))
	}

	tree, err := expr.Parse(tokens, parseOpts...)
	if err != nil {
		return nil, err
	}

	if tree == nil {
		return &Result{Source: line, Empty: true}, nil
	}

	if debug {
		c.logger.DebugContext(ctx, "parsed", "tree", tree.String(), "dump", dumper.Sdump(tree))
	}

	var evalOpts []eval.Option
	if c.strictLessEqual {
		evalOpts = append(evalOpts, eval.WithStrictLessEqual())
	}

	v, err := eval.Evaluate(tree, evalOpts...)
	if err != nil {
		return nil, err
	}

	return &Result{Source: line, Value: v, Tree: tree}, nil
}

func (c *Calculator) record(ctx context.Context, line string, res *Result, evalErr error) {
	if c.history == nil {
		return
	}

	e := &history.Entry{Source: line}
	switch {
	case evalErr != nil:
		e.Status = history.StatusFailed
		e.Error = evalErr.Error()
	case res.Empty:
		e.Status = history.StatusEmpty
	default:
		e.Status = history.StatusValue
		e.Value = res.Value
	}

	if err := c.history.Append(e); err != nil {
		c.logger.WarnContext(ctx, "failed to record history", "error", err)
	}
}

// Run evaluates every line of r and writes one output line per evaluated
// line to w: the value, or "error: <message>". Blank results print
// nothing. Failures do not stop the run; Run only fails when reading or
// writing fails.
func (c *Calculator) Run(ctx context.Context, r io.Reader, w io.Writer) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}

		if err := c.RunLine(ctx, w, strings.TrimSpace(scanner.Text())); err != nil {
			return err
		}
	}

	return scanner.Err()
}

// RunLine evaluates line and prints its outcome to w.
func (c *Calculator) RunLine(ctx context.Context, w io.Writer, line string) error {
	res, err := c.Evaluate(ctx, line)
	if err != nil {
		c.logger.DebugContext(ctx, "evaluation failed", "source", line, "kind", Kind(err), "error", err)
		_, werr := fmt.Fprintf(w, "error: %s\n", err)
		return werr
	}

	if res.Empty {
		return nil
	}

	_, err = fmt.Fprintln(w, res)
	return err
}

// Kind classifies err as "lex", "parse" or "eval", or "" when it does not
// come from the pipeline.
func Kind(err error) string {
	var lexErr *expr.LexError
	var parseErr *expr.ParseError

	switch {
	case errors.As(err, &lexErr):
		return "lex"
	case errors.As(err, &parseErr):
		return "parse"
	case errors.Is(err, eval.ErrDivisionByZero),
		errors.Is(err, eval.ErrUnknownOperator),
		errors.Is(err, eval.ErrMalformedExpression):
		return "eval"
	}

	return ""
}
