package eval

import (
	"errors"
	"math"
	"testing"
)

func Test_Evaluate(t *testing.T) {
	type args struct {
		expr *Expression
		opts []Option
	}
	tests := []struct {
		name    string
		args    args
		want    int32
		wantErr error
	}{
		{
			name: "operand",
			args: args{expr: NewOperand(-7)},
			want: -7,
		},
		{
			name: "precedence tree",
			args: args{
				expr: &Expression{
					Type:     Operator,
					Operator: Plus,
					Left:     &Expression{Type: Operand, Value: 3},
					Right: &Expression{
						Type:     Operator,
						Operator: Mul,
						Left:     &Expression{Type: Operand, Value: 2},
						Right:    &Expression{Type: Operand, Value: 6},
					},
				},
			},
			want: 15,
		},
		{
			name: "subtraction",
			args: args{expr: NewOperator(Minus, NewOperand(2), NewOperand(5))},
			want: -3,
		},
		{
			name: "division truncates toward zero",
			args: args{expr: NewOperator(Div, NewOperand(-7), NewOperand(2))},
			want: -3,
		},
		{
			name:    "division by zero",
			args:    args{expr: NewOperator(Div, NewOperand(4), NewOperand(0))},
			wantErr: ErrDivisionByZero,
		},
		{
			name:    "division by zero in a subtree",
			args:    args{expr: NewOperator(Plus, NewOperand(1), NewOperator(Div, NewOperand(4), NewOperand(0)))},
			wantErr: ErrDivisionByZero,
		},
		{
			name: "addition wraps",
			args: args{expr: NewOperator(Plus, NewOperand(math.MaxInt32), NewOperand(1))},
			want: math.MinInt32,
		},
		{
			name: "multiplication wraps",
			args: args{expr: NewOperator(Mul, NewOperand(65536), NewOperand(65536))},
			want: 0,
		},
		{
			name: "most negative divided by minus one wraps",
			args: args{expr: NewOperator(Div, NewOperand(math.MinInt32), NewOperand(-1))},
			want: math.MinInt32,
		},
		{
			name: "equal",
			args: args{expr: NewOperator(Equal, NewOperand(4), NewOperand(4))},
			want: 1,
		},
		{
			name: "not equal",
			args: args{expr: NewOperator(Equal, NewOperand(4), NewOperand(5))},
			want: 0,
		},
		{
			name: "less",
			args: args{expr: NewOperator(LessThan, NewOperand(3), NewOperand(5))},
			want: 1,
		},
		{
			name: "greater",
			args: args{expr: NewOperator(GreaterThan, NewOperand(3), NewOperand(5))},
			want: 0,
		},
		{
			name: "greater equal",
			args: args{expr: NewOperator(GreaterEqualThan, NewOperand(5), NewOperand(5))},
			want: 1,
		},
		{
			name: "less equal with equal operands",
			args: args{expr: NewOperator(LessEqualThan, NewOperand(5), NewOperand(5))},
			want: 1,
		},
		{
			// less_equal is computed as greater_equal unless strict
			name: "less equal computed as greater equal",
			args: args{expr: NewOperator(LessEqualThan, NewOperand(3), NewOperand(5))},
			want: 0,
		},
		{
			name: "less equal computed as greater equal, reversed",
			args: args{expr: NewOperator(LessEqualThan, NewOperand(5), NewOperand(3))},
			want: 1,
		},
		{
			name: "strict less equal",
			args: args{
				expr: NewOperator(LessEqualThan, NewOperand(3), NewOperand(5)),
				opts: []Option{WithStrictLessEqual()},
			},
			want: 1,
		},
		{
			name: "strict less equal, reversed",
			args: args{
				expr: NewOperator(LessEqualThan, NewOperand(5), NewOperand(3)),
				opts: []Option{WithStrictLessEqual()},
			},
			want: 0,
		},
		{
			name:    "unknown operator",
			args:    args{expr: NewOperator("not", NewOperand(1), NewOperand(2))},
			wantErr: ErrUnknownOperator,
		},
		{
			name:    "missing child",
			args:    args{expr: NewOperator(Plus, NewOperand(1), nil)},
			wantErr: ErrMalformedExpression,
		},
		{
			name:    "nil tree",
			args:    args{expr: nil},
			wantErr: ErrMalformedExpression,
		},
		{
			name:    "unknown expression type",
			args:    args{expr: &Expression{Type: "variable"}},
			wantErr: ErrMalformedExpression,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Evaluate(tt.args.expr, tt.args.opts...)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Evaluate() error = %v, wantErr %v", err, tt.wantErr)
				}
				return
			}

			if err != nil {
				t.Errorf("Evaluate() error = %v", err)
				return
			}

			if got != tt.want {
				t.Errorf("Evaluate() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestExpressionString(t *testing.T) {
	tree := NewOperator(Mul, NewOperator(Plus, NewOperand(3), NewOperand(2)), NewOperand(6))

	if got := tree.String(); got != "((3 + 2) * 6)" {
		t.Errorf("String() = %q", got)
	}

	var empty *Expression
	if got := empty.String(); got != "<nil>" {
		t.Errorf("String() = %q", got)
	}
}

func TestIsOperator(t *testing.T) {
	for _, op := range []string{"plus", "minus", "mul", "div", "equal", "less_equal", "less", "greater_equal", "greater"} {
		if !IsOperator(op) {
			t.Errorf("expected %q to be an operator", op)
		}
	}

	for _, op := range []string{"not", "left_parenthesis", "end_of_statement", ""} {
		if IsOperator(op) {
			t.Errorf("expected %q not to be an operator", op)
		}
	}
}
