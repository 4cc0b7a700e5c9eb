package expr

// ValidParentheses reports whether every left parenthesis in tokens is
// closed by a later right parenthesis, innermost first, with none left
// over on either side. Other tokens are ignored.
func ValidParentheses(tokens []Token) bool {
	open := stack[Token]{}
	for _, t := range tokens {
		if t.isLeftParenthesis() {
			open.push(t)
		} else if t.isRightParenthesis() {
			if tk := open.pop(); tk == tokenNoop {
				return false
			}
		}
	}

	return open.empty()
}

// checkParenthesesBalance is ValidParentheses with the position of the
// first offending parenthesis.
func checkParenthesesBalance(tokens []Token) error {
	unclosedParentheses := stack[Token]{}
	for _, t := range tokens {
		if t.isLeftParenthesis() {
			unclosedParentheses.push(t)
		} else if t.isRightParenthesis() {
			tk := unclosedParentheses.pop()
			if tk == tokenNoop {
				return newParseError(ErrUnexpectedClosingParenthesis, t, "unexpected closing parenthesis")
			}
		}
	}

	if !unclosedParentheses.empty() {
		tk := unclosedParentheses.pop()
		return newParseError(ErrMissingClosingParenthesis, tk, "opening parenthesis has no matching closing parenthesis")
	}

	return nil
}
