package expr

import (
	"regexp"
	"strconv"
	"strings"
)

type tokenRegexps struct {
	name    TokenType
	regexps []*regexp.Regexp
}

// skipped matches anything that does not start a token. Whitespace and
// unsupported symbols are consumed and dropped.
const skipped TokenType = "skipped"

var (
	regexps = []*tokenRegexps{
		{
			name:    IntLiteral,
			regexps: []*regexp.Regexp{regexp.MustCompile(`^[0-9]+`)},
		},
		{
			name:    Plus,
			regexps: []*regexp.Regexp{regexp.MustCompile(`^\+`)},
		},
		{
			name:    Minus,
			regexps: []*regexp.Regexp{regexp.MustCompile(`^-`)},
		},
		{
			name:    Mul,
			regexps: []*regexp.Regexp{regexp.MustCompile(`^\*`)},
		},
		{
			name:    Div,
			regexps: []*regexp.Regexp{regexp.MustCompile(`^/`)},
		},
		{
			name:    LessEqual,
			regexps: []*regexp.Regexp{regexp.MustCompile(`^<=`)},
		},
		{
			name:    Less,
			regexps: []*regexp.Regexp{regexp.MustCompile(`^<`)},
		},
		{
			name:    GreaterEqual,
			regexps: []*regexp.Regexp{regexp.MustCompile(`^>=`)},
		},
		{
			name:    Greater,
			regexps: []*regexp.Regexp{regexp.MustCompile(`^>`)},
		},
		{
			name:    Equal,
			regexps: []*regexp.Regexp{regexp.MustCompile(`^==`)},
		},
		{
			name:    Not,
			regexps: []*regexp.Regexp{regexp.MustCompile(`^!`)},
		},
		{
			name:    LeftParenthesis,
			regexps: []*regexp.Regexp{regexp.MustCompile(`^\(`)},
		},
		{
			name:    RightParenthesis,
			regexps: []*regexp.Regexp{regexp.MustCompile(`^\)`)},
		},
		{
			name:    EndOfStatement,
			regexps: []*regexp.Regexp{regexp.MustCompile(`^;`)},
		},
		{
			name:    skipped,
			regexps: []*regexp.Regexp{regexp.MustCompile(`^\s+`), regexp.MustCompile(`(?s)^.`)},
		},
	}
)

type tokenizer struct {
	src    string
	cursor int
	line   int
	column int
}

func newTokenizer(src string) *tokenizer {
	return &tokenizer{src: src, line: 1, column: 1}
}

// Tokenize splits src into tokens. Characters that start no token are
// silently dropped; the only failure is an integer literal that does not
// fit in 32 bits.
func Tokenize(src string) ([]Token, error) {
	t := newTokenizer(src)
	tokens := make([]Token, 0)

	for {
		tk, err := t.getNextToken()
		if err != nil {
			return nil, err
		}

		if tk == tokenNoop {
			break
		}

		tokens = append(tokens, tk)
	}

	return tokens, nil
}

func (t *tokenizer) getNextToken() (Token, error) {
	for t.cursor < len(t.src) {
		s := t.src[t.cursor:]
		match := ""
		var name TokenType

		for _, tr := range regexps {
			for _, r := range tr.regexps {
				match = r.FindString(s)
				if match != "" {
					name = tr.name
					break
				}
			}
			if match != "" {
				break
			}
		}

		// (?s)^. matches any non-empty input; a failed match means
		// invalid UTF-8, which is consumed byte by byte.
		if match == "" {
			match = s[:1]
			name = skipped
		}

		line, column := t.line, t.column
		t.advance(match)

		if name == skipped {
			continue
		}

		tk := Token{Type: name, Line: line, Column: column}

		if name == IntLiteral {
			v, err := strconv.ParseInt(match, 10, 32)
			if err != nil {
				return tokenNoop, &LexError{
					Message: "integer literal '" + match + "' does not fit in 32 bits",
					Line:    line,
					Column:  column,
					Err:     ErrLiteralOutOfRange,
				}
			}
			tk.Value = int32(v)
		}

		return tk, nil
	}

	return tokenNoop, nil
}

// advance moves the cursor past match and keeps line and column in sync.
func (t *tokenizer) advance(match string) {
	t.cursor += len(match)

	if i := strings.LastIndex(match, "\n"); i >= 0 {
		t.line += strings.Count(match, "\n")
		t.column = len(match) - i
		return
	}

	t.column += len(match)
}

// Render writes tokens back in their canonical source form, separated by
// single spaces. Tokenize(Render(tokens)) yields the same token kinds and
// values.
func Render(tokens []Token) string {
	parts := make([]string, len(tokens))
	for i, tk := range tokens {
		parts[i] = tk.String()
	}

	return strings.Join(parts, " ")
}
