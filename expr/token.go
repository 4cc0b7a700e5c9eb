package expr

import (
	"cmp"
	"slices"
	"strconv"
)

type TokenType string

const (
	IntLiteral       TokenType = "int"
	Plus             TokenType = "plus"
	Minus            TokenType = "minus"
	Mul              TokenType = "mul"
	Div              TokenType = "div"
	Equal            TokenType = "equal"
	LessEqual        TokenType = "less_equal"
	Less             TokenType = "less"
	GreaterEqual     TokenType = "greater_equal"
	Greater          TokenType = "greater"
	Not              TokenType = "not"
	LeftParenthesis  TokenType = "left_parenthesis"
	RightParenthesis TokenType = "right_parenthesis"
	EndOfStatement   TokenType = "end_of_statement"
)

// tokenTypes lists every variant in ascending order.
var tokenTypes = []TokenType{
	IntLiteral,
	Plus, Minus, Mul, Div,
	Equal, LessEqual, Less, GreaterEqual, Greater,
	Not,
	LeftParenthesis, RightParenthesis,
	EndOfStatement,
}

var symbols = map[TokenType]string{
	Plus:             "+",
	Minus:            "-",
	Mul:              "*",
	Div:              "/",
	Equal:            "==",
	LessEqual:        "<=",
	Less:             "<",
	GreaterEqual:     ">=",
	Greater:          ">",
	Not:              "!",
	LeftParenthesis:  "(",
	RightParenthesis: ")",
	EndOfStatement:   ";",
}

// Token is a single lexical unit. Value is only set for IntLiteral tokens.
type Token struct {
	Type  TokenType
	Value int32

	Line   int
	Column int
}

var tokenNoop Token

func (tk Token) String() string {
	if tk.Type == IntLiteral {
		return strconv.FormatInt(int64(tk.Value), 10)
	}

	if s, ok := symbols[tk.Type]; ok {
		return s
	}

	return string(tk.Type)
}

func (tk *Token) isParenthesis() bool {
	return tk.isLeftParenthesis() || tk.isRightParenthesis()
}

func (tk *Token) isLeftParenthesis() bool {
	return tk.Type == LeftParenthesis
}

func (tk *Token) isRightParenthesis() bool {
	return tk.Type == RightParenthesis
}

var (
	arithmeticOperators = []TokenType{Plus, Minus, Mul, Div}
	comparisonOperators = []TokenType{Equal, LessEqual, Less, GreaterEqual, Greater}
	multiplicative      = []TokenType{Mul, Div}
	additive            = []TokenType{Plus, Minus}
)

// precedence maps operators to their binding level; lower binds tighter.
var precedence = map[TokenType]int{
	Mul:   1,
	Div:   1,
	Plus:  2,
	Minus: 2,
}

func (tk *Token) hasLowerOrSamePrecedenceThan(tk1 Token) bool {
	l, lok := precedence[tk.Type]
	r, rok := precedence[tk1.Type]

	if !lok || !rok {
		return false
	}

	return l >= r
}

func (tk *Token) isOperand() bool {
	return tk.Type == IntLiteral
}

func (tk *Token) isArithmeticOperator() bool {
	return slices.Contains(arithmeticOperators, tk.Type)
}

func (tk *Token) isComparisonOperator() bool {
	return slices.Contains(comparisonOperators, tk.Type)
}

func (tk *Token) isMultiplicative() bool {
	return slices.Contains(multiplicative, tk.Type)
}

func (tk *Token) isAdditive() bool {
	return slices.Contains(additive, tk.Type)
}

// isUnsupported reports tokens the tokenizer recognises but no parser
// mode evaluates.
func (tk *Token) isUnsupported() bool {
	return tk.isComparisonOperator() || tk.Type == Not || tk.Type == EndOfStatement
}

func rank(t TokenType) int {
	return slices.Index(tokenTypes, t)
}

// CompareTokens orders tokens by variant, then literal value, then
// position. It returns -1, 0 or +1.
func CompareTokens(a, b Token) int {
	if c := cmp.Compare(rank(a.Type), rank(b.Type)); c != 0 {
		return c
	}

	if c := cmp.Compare(a.Value, b.Value); c != 0 {
		return c
	}

	if c := cmp.Compare(a.Line, b.Line); c != 0 {
		return c
	}

	return cmp.Compare(a.Column, b.Column)
}
