// lexer creates tokens from a sql string. The tokens are fed into the
// parser.
package sqlparse

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

type lexer struct {
	src  string
	pos  int
	line int
	col  int
}

func newLexer(src string) *lexer {
	return &lexer{src: src, line: 1, col: 1}
}

// Tokens scans src to the end and returns every token in order. Scanning
// stops after the first illegal token since positions past it are not
// meaningful. The end of input token is not included.
func Tokens(src string) []Token {
	l := newLexer(src)
	ret := []Token{}
	for {
		t := l.next()
		if t.Kind == TokenEOF {
			return ret
		}
		ret = append(ret, t)
		if t.Kind == TokenIllegal {
			return ret
		}
	}
}

// IsTerminated reports whether src ends with a statement terminator, modulo
// trailing whitespace and comments. Interactive callers use it to decide
// between evaluating the buffer and prompting for a continuation line.
func IsTerminated(src string) bool {
	l := newLexer(src)
	last := Token{}
	for {
		t := l.next()
		if t.Kind == TokenEOF {
			break
		}
		if t.Kind == TokenIllegal {
			return false
		}
		last = t
	}
	return last.Kind == TokenOperator && last.Value == ";"
}

func (l *lexer) peek() rune {
	if l.pos >= len(l.src) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.src[l.pos:])
	return r
}

func (l *lexer) peekAt(offset int) rune {
	pos := l.pos + offset
	if pos >= len(l.src) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.src[pos:])
	return r
}

func (l *lexer) advance() rune {
	if l.pos >= len(l.src) {
		return 0
	}
	r, size := utf8.DecodeRuneInString(l.src[l.pos:])
	l.pos += size
	if r == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	return r
}

// next returns the next token, skipping whitespace and comments. It never
// fails; malformed input becomes a TokenIllegal whose value describes the
// problem.
func (l *lexer) next() Token {
	if t, bad := l.skipSpace(); bad {
		return t
	}
	line, col := l.line, l.col
	r := l.peek()
	switch {
	case r == 0:
		return Token{TokenEOF, "", line, col}
	case (r == 'b' || r == 'B') && l.peekAt(1) == '\'':
		return l.scanPrefixedString(TokenBitString, line, col)
	case (r == 'x' || r == 'X') && l.peekAt(1) == '\'':
		return l.scanPrefixedString(TokenHexString, line, col)
	case isIdentStart(r):
		return l.scanWord(line, col)
	case r == '\'':
		return l.scanString(line, col)
	case r == '"':
		return l.scanQuotedIdentifier(line, col)
	case isDigit(r):
		return l.scanNumber(line, col)
	}
	return l.scanOperator(line, col)
}

// skipSpace consumes whitespace, --line comments, and /* block */ comments.
// An unterminated block comment is returned as an illegal token.
func (l *lexer) skipSpace() (Token, bool) {
	for {
		r := l.peek()
		switch {
		case r == ' ' || r == '\t' || r == '\n' || r == '\r':
			l.advance()
		case r == '-' && l.peekAt(1) == '-':
			for l.peek() != 0 && l.peek() != '\n' {
				l.advance()
			}
		case r == '/' && l.peekAt(1) == '*':
			line, col := l.line, l.col
			l.advance()
			l.advance()
			closed := false
			for l.peek() != 0 {
				if l.peek() == '*' && l.peekAt(1) == '/' {
					l.advance()
					l.advance()
					closed = true
					break
				}
				l.advance()
			}
			if !closed {
				return Token{TokenIllegal, "unterminated block comment", line, col}, true
			}
		default:
			return Token{}, false
		}
	}
}

func (l *lexer) scanWord(line, col int) Token {
	start := l.pos
	for isIdentStart(l.peek()) || isDigit(l.peek()) {
		l.advance()
	}
	value := l.src[start:l.pos]
	if _, ok := keywords[strings.ToUpper(value)]; ok {
		return Token{TokenKeyword, strings.ToUpper(value), line, col}
	}
	return Token{TokenIdentifier, value, line, col}
}

// scanString consumes a '...' literal. A doubled '' inside the literal is
// unescaped to a single quote.
func (l *lexer) scanString(line, col int) Token {
	l.advance()
	var sb strings.Builder
	for {
		r := l.peek()
		if r == 0 {
			return Token{TokenIllegal, "unterminated string literal", line, col}
		}
		if r == '\'' {
			if l.peekAt(1) == '\'' {
				l.advance()
				l.advance()
				sb.WriteRune('\'')
				continue
			}
			l.advance()
			return Token{TokenString, sb.String(), line, col}
		}
		sb.WriteRune(l.advance())
	}
}

func (l *lexer) scanQuotedIdentifier(line, col int) Token {
	l.advance()
	var sb strings.Builder
	for {
		r := l.peek()
		if r == 0 {
			return Token{TokenIllegal, "unterminated quoted identifier", line, col}
		}
		if r == '"' {
			if l.peekAt(1) == '"' {
				l.advance()
				l.advance()
				sb.WriteRune('"')
				continue
			}
			l.advance()
			return Token{TokenQuotedIdentifier, sb.String(), line, col}
		}
		sb.WriteRune(l.advance())
	}
}

// scanPrefixedString consumes a B'...' or X'...' literal. Only the digits
// between the quotes are kept as the token value.
func (l *lexer) scanPrefixedString(kind TokenKind, line, col int) Token {
	name := "bit-string"
	digits := "01"
	if kind == TokenHexString {
		name = "hex-string"
		digits = "0123456789abcdefABCDEF"
	}
	l.advance()
	l.advance()
	start := l.pos
	for {
		r := l.peek()
		if r == 0 {
			return Token{TokenIllegal, "unterminated " + name + " literal", line, col}
		}
		if r == '\'' {
			value := l.src[start:l.pos]
			l.advance()
			return Token{kind, value, line, col}
		}
		if !strings.ContainsRune(digits, r) {
			return Token{TokenIllegal, fmt.Sprintf("malformed %s literal", name), line, col}
		}
		l.advance()
	}
}

// scanNumber consumes a digit run with an optional fraction and exponent.
// The literal text is kept as is; conversion is deferred to the consumer.
func (l *lexer) scanNumber(line, col int) Token {
	start := l.pos
	kind := TokenInteger
	for isDigit(l.peek()) {
		l.advance()
	}
	if l.peek() == '.' {
		kind = TokenNumeric
		l.advance()
		for isDigit(l.peek()) {
			l.advance()
		}
	}
	if l.peek() == 'e' || l.peek() == 'E' {
		kind = TokenNumeric
		l.advance()
		if l.peek() == '+' || l.peek() == '-' {
			l.advance()
		}
		if !isDigit(l.peek()) {
			return Token{TokenIllegal, "malformed numeric literal", line, col}
		}
		for isDigit(l.peek()) {
			l.advance()
		}
	}
	if isIdentStart(l.peek()) {
		return Token{TokenIllegal, "malformed numeric literal", line, col}
	}
	return Token{kind, l.src[start:l.pos], line, col}
}

// scanOperator greedily matches the operator tables, two character
// operators first so "<=" wins over "<".
func (l *lexer) scanOperator(line, col int) Token {
	for _, op := range operators2 {
		if strings.HasPrefix(l.src[l.pos:], op) {
			l.advance()
			l.advance()
			return Token{TokenOperator, op, line, col}
		}
	}
	r := l.peek()
	if strings.ContainsRune(operators1, r) {
		l.advance()
		return Token{TokenOperator, string(r), line, col}
	}
	return Token{TokenIllegal, fmt.Sprintf("unexpected character %q", r), line, col}
}

// Identifiers are ASCII only: a non-ASCII letter after an identifier run
// ends the word and surfaces as an unexpected character.
func isIdentStart(r rune) bool {
	return r == '_' || ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z')
}

func isDigit(r rune) bool {
	return '0' <= r && r <= '9'
}
