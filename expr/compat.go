package expr

import (
	"github.com/jvitoroc/gocalc/eval"
)

// compatParser walks the tokens once, keeping the expression parsed so far
// in an accumulator and looking one token ahead to decide whether the next
// operand belongs to a tighter sub-expression.
type compatParser struct {
	*options

	tokens []Token
	cursor int
}

func (o *options) parseCompat(tokens []Token) (*eval.Expression, error) {
	p := &compatParser{options: o, tokens: tokens}

	return p.parse()
}

func (p *compatParser) parse() (*eval.Expression, error) {
	var acc *eval.Expression

	for !p.atEnd() {
		tk := p.next()
		p.debug("token", "type", tk.Type, "value", tk.String(), "line", tk.Line, "column", tk.Column)

		switch {
		case tk.isRightParenthesis():
			return nil, newParseError(ErrUnexpectedClosingParenthesis, tk, "unexpected closing parenthesis")

		case tk.isLeftParenthesis():
			group, err := p.group(tk)
			if err != nil {
				return nil, err
			}

			// A group following a complete operand is dropped.
			if acc == nil {
				acc, err = p.parseGroup(group)
				if err != nil {
					return nil, err
				}
			}

		case tk.isOperand():
			if acc != nil {
				return nil, newParseError(ErrUnexpectedOperand, tk, "unexpected integer literal '%s' after '%s'", tk, acc)
			}

			acc = operand(tk)

		case tk.isArithmeticOperator():
			if acc == nil {
				p.debug("operator without left operand skipped", "type", tk.Type)
				continue
			}

			right, err := p.rightOperand(tk, acc)
			if err != nil {
				return nil, err
			}

			acc, err = operator(tk, acc, right)
			if err != nil {
				return nil, err
			}

		default:
			return nil, newParseError(ErrUnsupportedToken, tk, "'%s' is not supported yet", tk)
		}
	}

	return acc, nil
}

// rightOperand reads the operand following op. An integer literal
// followed by '*' or '/' swallows that operator and its own right operand;
// after an additive op the same happens for a following '+' or '-'. Both
// rules recurse, so chains of equal precedence group to the right. A
// parenthesised group is taken alone.
func (p *compatParser) rightOperand(op Token, left *eval.Expression) (*eval.Expression, error) {
	if p.atEnd() {
		return nil, newParseError(ErrMissingOperand, op, "couldn't parse right operand for '%s' with '%s' as the left operand", op, left)
	}

	tk := p.next()

	var right *eval.Expression
	switch {
	case tk.isOperand():
		right = operand(tk)

	case tk.isLeftParenthesis():
		group, err := p.group(tk)
		if err != nil {
			return nil, err
		}

		right, err = p.parseGroup(group)
		if err != nil {
			return nil, err
		}

		if right == nil {
			return nil, newParseError(ErrMissingOperand, tk, "parenthesised right operand for '%s' has no value", op)
		}

		// A group is a complete right operand; nothing after it is joined.
		return right, nil

	default:
		return nil, newParseError(ErrInvalidOperand, tk, "'%s' is an invalid right operand for '%s'", tk, op)
	}

	right, err := p.tighten(right)
	if err != nil {
		return nil, err
	}

	if op.isAdditive() {
		if next, ok := p.peek(); ok && next.isAdditive() {
			p.cursor++

			rest, err := p.rightOperand(next, right)
			if err != nil {
				return nil, err
			}

			return operator(next, right, rest)
		}
	}

	return right, nil
}

// tighten joins operand with a directly following '*' or '/'.
func (p *compatParser) tighten(operand *eval.Expression) (*eval.Expression, error) {
	next, ok := p.peek()
	if !ok || !next.isMultiplicative() {
		return operand, nil
	}

	p.cursor++

	rest, err := p.rightOperand(next, operand)
	if err != nil {
		return nil, err
	}

	return operator(next, operand, rest)
}

// group consumes the tokens after open up to the first right parenthesis
// and returns the tokens in between. Nested groups end at their innermost
// closing parenthesis and fail validation.
func (p *compatParser) group(open Token) ([]Token, error) {
	end := -1
	for i := p.cursor; i < len(p.tokens); i++ {
		if p.tokens[i].isRightParenthesis() {
			end = i
			break
		}
	}

	if end < 0 {
		p.cursor = len(p.tokens)
		return nil, newParseError(ErrMissingClosingParenthesis, open, "no matching closing parenthesis")
	}

	run := make([]Token, 0, end-p.cursor+2)
	run = append(run, open)
	run = append(run, p.tokens[p.cursor:end+1]...)
	p.cursor = end + 1

	p.debug("parenthesis run", "tokens", Render(run))

	if !ValidParentheses(run) {
		return nil, newParseError(ErrInvalidParentheses, open, "invalid parentheses, nested groups are not supported")
	}

	if len(run) == 2 {
		return nil, newParseError(ErrEmptyParentheses, open, "empty parentheses")
	}

	return run[1 : len(run)-1], nil
}

func (p *compatParser) parseGroup(tokens []Token) (*eval.Expression, error) {
	sub := &compatParser{options: p.options, tokens: tokens}

	return sub.parse()
}

func (p *compatParser) atEnd() bool {
	return p.cursor >= len(p.tokens)
}

func (p *compatParser) next() Token {
	tk := p.tokens[p.cursor]
	p.cursor++

	return tk
}

func (p *compatParser) peek() (Token, bool) {
	if p.atEnd() {
		return tokenNoop, false
	}

	return p.tokens[p.cursor], true
}
