package expr

import (
	"github.com/jvitoroc/gocalc/eval"
)

func (o *options) parseStandard(tokens []Token) (*eval.Expression, error) {
	for _, tk := range tokens {
		if tk.isUnsupported() {
			return nil, newParseError(ErrUnsupportedToken, tk, "'%s' is not supported yet", tk)
		}
	}

	if err := checkParenthesesBalance(tokens); err != nil {
		return nil, err
	}

	if err := checkExpressionSyntax(tokens); err != nil {
		return nil, err
	}

	postfix, err := infixToPostfix(tokens)
	if err != nil {
		return nil, err
	}

	o.debug("postfix", "tokens", Render(postfix))

	return postfixToExpressionTree(postfix)
}

func infixToPostfix(tokens []Token) ([]Token, error) {
	s := stack[Token]{}
	postfix := make([]Token, 0, len(tokens))

	for _, tk := range tokens {
		if tk.isLeftParenthesis() {
			s.push(tk)
		} else if tk.isRightParenthesis() {
			for tki := s.pop(); tki != tokenNoop; tki = s.pop() {
				if tki.isLeftParenthesis() {
					break
				}
				postfix = append(postfix, tki)
			}
		} else if tk.isOperand() {
			postfix = append(postfix, tk)
		} else if tk.isArithmeticOperator() {
			for tki := s.pop(); tki != tokenNoop; tki = s.pop() {
				if tk.hasLowerOrSamePrecedenceThan(tki) && !tki.isLeftParenthesis() {
					postfix = append(postfix, tki)
					continue
				}
				s.push(tki)
				break
			}
			s.push(tk)
		} else {
			return nil, newParseError(ErrUnsupportedToken, tk, "token '%s' is invalid as part of an expression", tk)
		}
	}

	for tki := s.pop(); tki != tokenNoop; tki = s.pop() {
		if !tki.isParenthesis() {
			postfix = append(postfix, tki)
		}
	}

	return postfix, nil
}

func postfixToExpressionTree(tokens []Token) (*eval.Expression, error) {
	s := stack[*eval.Expression]{}

	for _, tk := range tokens {
		if tk.isOperand() {
			s.push(operand(tk))
			continue
		}

		right := s.pop()
		left := s.pop()
		if left == nil || right == nil {
			return nil, newParseError(ErrMissingOperand, tk, "operator '%s' is missing an operand", tk)
		}

		e, err := operator(tk, left, right)
		if err != nil {
			return nil, err
		}

		s.push(e)
	}

	root := s.pop()
	if !s.empty() {
		return nil, &ParseError{Message: "expression has operands without operator", Err: ErrUnexpectedOperand}
	}

	return root, nil
}

// checkExpressionSyntax rejects sequences the postfix conversion would
// silently accept: adjacent operands, adjacent operators, dangling
// operators and empty groups.
func checkExpressionSyntax(tokens []Token) error {
	var previous Token

	for i, t := range tokens {
		if i == 0 && t.isArithmeticOperator() {
			return newParseError(ErrMissingOperand, t, "can't start expression with operator '%s'", t)
		}

		if i > 0 {
			previousClosesOperand := previous.isOperand() || previous.isRightParenthesis()
			previousExpectsOperand := previous.isArithmeticOperator() || previous.isLeftParenthesis()

			if previousClosesOperand && (t.isOperand() || t.isLeftParenthesis()) {
				return newParseError(ErrUnexpectedOperand, t, "expected operator after '%s'", previous)
			}

			if previous.isLeftParenthesis() && t.isRightParenthesis() {
				return newParseError(ErrEmptyParentheses, t, "empty parentheses")
			}

			if previousExpectsOperand && (t.isArithmeticOperator() || t.isRightParenthesis()) {
				return newParseError(ErrMissingOperand, t, "expected operand after '%s'", previous)
			}
		}

		previous = t
	}

	if last := tokens[len(tokens)-1]; last.isArithmeticOperator() {
		return newParseError(ErrMissingOperand, last, "can't end expression with an operator '%s'", last)
	}

	return nil
}
