package expr

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/jvitoroc/gocalc/eval"
)

func mustTokenize(input string) []Token {
	tokens, err := Tokenize(input)
	if err != nil {
		panic(err)
	}

	return tokens
}

func num(v int32) *eval.Expression {
	return eval.NewOperand(v)
}

func bin(left *eval.Expression, op eval.OperatorType, right *eval.Expression) *eval.Expression {
	return eval.NewOperator(op, left, right)
}

func TestParseCompat(t *testing.T) {
	tests := []struct {
		input string
		want  *eval.Expression
	}{
		{
			input: "",
			want:  nil,
		},
		{
			input: "   \t ",
			want:  nil,
		},
		{
			input: "42",
			want:  num(42),
		},
		{
			input: "3 + 2 * 6",
			want:  bin(num(3), eval.Plus, bin(num(2), eval.Mul, num(6))),
		},
		{
			input: "(3 + 2) * 6",
			want:  bin(bin(num(3), eval.Plus, num(2)), eval.Mul, num(6)),
		},
		{
			input: "10 - 2 - 3",
			want:  bin(num(10), eval.Minus, bin(num(2), eval.Minus, num(3))),
		},
		{
			input: "8 / 4 / 2",
			want:  bin(num(8), eval.Div, bin(num(4), eval.Div, num(2))),
		},
		{
			input: "2 * 3 + 4",
			want:  bin(bin(num(2), eval.Mul, num(3)), eval.Plus, num(4)),
		},
		{
			input: "1 + 2 * 3 * 4",
			want:  bin(num(1), eval.Plus, bin(num(2), eval.Mul, bin(num(3), eval.Mul, num(4)))),
		},
		{
			input: "1 + 2 * (3 - 1)",
			want:  bin(num(1), eval.Plus, bin(num(2), eval.Mul, bin(num(3), eval.Minus, num(1)))),
		},
		{
			input: "6 / (1 + 2)",
			want:  bin(num(6), eval.Div, bin(num(1), eval.Plus, num(2))),
		},
		{
			input: "(7)",
			want:  num(7),
		},
		{
			// a parenthesised right operand is not joined with what follows
			input: "1 + (2) * 3",
			want:  bin(bin(num(1), eval.Plus, num(2)), eval.Mul, num(3)),
		},
		{
			input: "100 / (10) / 5",
			want:  bin(bin(num(100), eval.Div, num(10)), eval.Div, num(5)),
		},
		{
			// a leading operator has no left operand and is skipped
			input: "- 5",
			want:  num(5),
		},
		{
			// a group after a complete operand is dropped
			input: "3 (4 + 5)",
			want:  num(3),
		},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Parse(mustTokenize(tt.input))
			if err != nil {
				t.Error(err)
				return
			}

			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Error(diff)
			}
		})
	}
}

func TestParseCompatErrors(t *testing.T) {
	tests := []struct {
		input string
		want  error
	}{
		{input: "(3 + 2", want: ErrMissingClosingParenthesis},
		{input: ")", want: ErrUnexpectedClosingParenthesis},
		{input: "1 + 2)", want: ErrUnexpectedClosingParenthesis},
		{input: "()", want: ErrEmptyParentheses},
		{input: "(4 + (2 * 3)) * 6", want: ErrInvalidParentheses},
		{input: "3 4", want: ErrUnexpectedOperand},
		{input: "3 +", want: ErrMissingOperand},
		{input: "3 * 2 /", want: ErrMissingOperand},
		{input: "3 + *", want: ErrInvalidOperand},
		{input: "3 + )", want: ErrInvalidOperand},
		{input: "3 + (+)", want: ErrMissingOperand},
		{input: "5 <= 5", want: ErrUnsupportedToken},
		{input: "5 == 5", want: ErrUnsupportedToken},
		{input: "!1", want: ErrUnsupportedToken},
		{input: "1;", want: ErrUnsupportedToken},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Parse(mustTokenize(tt.input))
			if got != nil {
				t.Errorf("expected no tree, got %s", got)
			}

			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
				return
			}

			var parseErr *ParseError
			if !errors.As(err, &parseErr) {
				t.Errorf("expected *ParseError, got %T", err)
			}
		})
	}
}

func TestParseErrorPosition(t *testing.T) {
	_, err := Parse(mustTokenize("1 + (2"))

	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Errorf("expected *ParseError, got %v", err)
		return
	}

	if parseErr.Line != 1 || parseErr.Column != 5 {
		t.Errorf("expected error at 1:5, got %d:%d", parseErr.Line, parseErr.Column)
	}

	if parseErr.Error() != "no matching closing parenthesis at 1:5" {
		t.Errorf("unexpected message %q", parseErr.Error())
	}
}

func TestParseStandard(t *testing.T) {
	tests := []struct {
		input string
		want  *eval.Expression
	}{
		{
			input: "",
			want:  nil,
		},
		{
			input: "3 + 2 * 6",
			want:  bin(num(3), eval.Plus, bin(num(2), eval.Mul, num(6))),
		},
		{
			input: "10 - 2 - 3",
			want:  bin(bin(num(10), eval.Minus, num(2)), eval.Minus, num(3)),
		},
		{
			input: "8 / 4 / 2",
			want:  bin(bin(num(8), eval.Div, num(4)), eval.Div, num(2)),
		},
		{
			input: "(4 + (2 * 3)) * 6",
			want:  bin(bin(num(4), eval.Plus, bin(num(2), eval.Mul, num(3))), eval.Mul, num(6)),
		},
		{
			input: "((1))",
			want:  num(1),
		},
		{
			input: "1 + (2) * 3",
			want:  bin(num(1), eval.Plus, bin(num(2), eval.Mul, num(3))),
		},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Parse(mustTokenize(tt.input), WithMode(ModeStandard))
			if err != nil {
				t.Error(err)
				return
			}

			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Error(diff)
			}
		})
	}
}

func TestParseStandardErrors(t *testing.T) {
	tests := []struct {
		input string
		want  error
	}{
		{input: "(3 + 2", want: ErrMissingClosingParenthesis},
		{input: ")", want: ErrUnexpectedClosingParenthesis},
		{input: "()", want: ErrEmptyParentheses},
		{input: "3 4", want: ErrUnexpectedOperand},
		{input: "3 (4)", want: ErrUnexpectedOperand},
		{input: "(1) 2", want: ErrUnexpectedOperand},
		{input: "- 5", want: ErrMissingOperand},
		{input: "3 +", want: ErrMissingOperand},
		{input: "3 + * 2", want: ErrMissingOperand},
		{input: "(3 +) 2", want: ErrMissingOperand},
		{input: "(* 3)", want: ErrMissingOperand},
		{input: "5 <= 5", want: ErrUnsupportedToken},
		{input: "1;", want: ErrUnsupportedToken},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := Parse(mustTokenize(tt.input), WithMode(ModeStandard))
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestParseUnknownMode(t *testing.T) {
	_, err := Parse(mustTokenize("1"), WithMode("pratt"))
	if err == nil {
		t.Error("expected an error for an unknown mode")
	}
}

func TestParseThenEvaluate(t *testing.T) {
	tests := []struct {
		input    string
		mode     Mode
		want     int32
		wantErr  error
		evalOpts []eval.Option
	}{
		{input: "3 + 2 * 6", mode: ModeCompat, want: 15},
		{input: "(3 + 2) * 6", mode: ModeCompat, want: 30},
		{input: "10 - 2 - 3", mode: ModeCompat, want: 11},
		{input: "10 - 2 - 3", mode: ModeStandard, want: 5},
		{input: "100 / 10 / 5", mode: ModeCompat, want: 50},
		{input: "100 / 10 / 5", mode: ModeStandard, want: 2},
		{input: "7 / 2", mode: ModeCompat, want: 3},
		{input: "2 * 3 + 4 * 5", mode: ModeCompat, want: 26},
		{input: "1 + (2) * 3", mode: ModeCompat, want: 9},
		{input: "1 + (2) * 3", mode: ModeStandard, want: 7},
		{input: "100 / (10) / 5", mode: ModeCompat, want: 2},
		{input: "2 - (1) - 1", mode: ModeCompat, want: 0},
		{input: "2 * (3 - 1) + 4", mode: ModeCompat, want: 8},
		{input: "(4 + (2 * 3)) * 6", mode: ModeStandard, want: 60},
		{input: "4 / 0", mode: ModeCompat, wantErr: eval.ErrDivisionByZero},
		{input: "4 / (2 - 2)", mode: ModeStandard, wantErr: eval.ErrDivisionByZero},
	}
	for _, tt := range tests {
		t.Run(string(tt.mode)+" "+tt.input, func(t *testing.T) {
			tree, err := Parse(mustTokenize(tt.input), WithMode(tt.mode))
			if err != nil {
				t.Error(err)
				return
			}

			got, err := tree.Evaluate(tt.evalOpts...)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}

			if err != nil {
				t.Error(err)
				return
			}

			if got != tt.want {
				t.Errorf("expected %d, got %d", tt.want, got)
			}
		})
	}
}
