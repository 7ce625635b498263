package scanner

import (
	"strconv"

	"lox/interpreter-go/pkg/diagnostic"
	"lox/interpreter-go/pkg/token"
)

// Scanner turns Lox source text into an ordered token sequence in a single
// left-to-right pass. Lexical errors are accumulated, never fatal: scanning
// resynchronizes and keeps producing tokens so downstream stages can still
// be attempted.
type Scanner struct {
	source      string
	tokens      []token.Token
	diagnostics []diagnostic.Diagnostic

	start   int // byte offset of the lexeme being scanned
	current int // byte offset of the next unconsumed character
	line    int
}

// New returns a scanner positioned at the start of source.
func New(source string) *Scanner {
	return &Scanner{source: source, line: 1}
}

// Scan consumes the full source and returns the token stream, terminated by
// an EOF token, along with every lexical diagnostic encountered.
func (s *Scanner) Scan() ([]token.Token, []diagnostic.Diagnostic) {
	for !s.isAtEnd() {
		s.start = s.current
		s.scanToken()
	}
	s.tokens = append(s.tokens, token.Token{Kind: token.EOF, Line: s.line})
	return s.tokens, s.diagnostics
}

func (s *Scanner) scanToken() {
	c := s.advance()
	switch c {
	case '(':
		s.addToken(token.LeftParen)
	case ')':
		s.addToken(token.RightParen)
	case '{':
		s.addToken(token.LeftBrace)
	case '}':
		s.addToken(token.RightBrace)
	case ',':
		s.addToken(token.Comma)
	case '.':
		s.addToken(token.Dot)
	case '-':
		s.addToken(token.Minus)
	case '+':
		s.addToken(token.Plus)
	case ';':
		s.addToken(token.Semicolon)
	case '*':
		s.addToken(token.Star)
	case '!':
		// Maximal munch: prefer the two-character operator.
		if s.match('=') {
			s.addToken(token.BangEqual)
		} else {
			s.addToken(token.Bang)
		}
	case '=':
		if s.match('=') {
			s.addToken(token.EqualEqual)
		} else {
			s.addToken(token.Equal)
		}
	case '<':
		if s.match('=') {
			s.addToken(token.LessEqual)
		} else {
			s.addToken(token.Less)
		}
	case '>':
		if s.match('=') {
			s.addToken(token.GreaterEqual)
		} else {
			s.addToken(token.Greater)
		}
	case '/':
		if s.match('/') {
			// Line comment, discarded up to the newline.
			for s.peek() != '\n' && !s.isAtEnd() {
				s.advance()
			}
		} else {
			s.addToken(token.Slash)
		}
	case ' ', '\r', '\t':
	case '\n':
		s.line++
	case '"':
		s.scanString()
	default:
		switch {
		case isDigit(c):
			s.scanNumber()
		case isAlpha(c):
			s.scanIdentifier()
		default:
			s.errorf("Unexpected character.")
		}
	}
}

func (s *Scanner) scanString() {
	startLine := s.line
	for s.peek() != '"' && !s.isAtEnd() {
		if s.peek() == '\n' {
			s.line++
		}
		s.advance()
	}
	if s.isAtEnd() {
		// Abandon the string and report it at its opening line.
		s.diagnostics = append(s.diagnostics, diagnostic.AtLine(startLine, "Unterminated string."))
		return
	}
	s.advance() // closing quote

	value := s.source[s.start+1 : s.current-1]
	s.addLiteralToken(token.String, value)
}

func (s *Scanner) scanNumber() {
	for isDigit(s.peek()) {
		s.advance()
	}
	// A fractional part requires at least one digit after the dot; a trailing
	// dot is left for the next token.
	if s.peek() == '.' && isDigit(s.peekNext()) {
		s.advance()
		for isDigit(s.peek()) {
			s.advance()
		}
	}

	value, err := strconv.ParseFloat(s.source[s.start:s.current], 64)
	if err != nil {
		s.errorf("Invalid number literal.")
		return
	}
	s.addLiteralToken(token.Number, value)
}

func (s *Scanner) scanIdentifier() {
	for isAlphaNumeric(s.peek()) {
		s.advance()
	}
	lexeme := s.source[s.start:s.current]
	if kind, ok := token.Keyword(lexeme); ok {
		s.addToken(kind)
		return
	}
	s.addToken(token.Identifier)
}

func (s *Scanner) addToken(kind token.Kind) {
	s.addLiteralToken(kind, nil)
}

func (s *Scanner) addLiteralToken(kind token.Kind, literal any) {
	s.tokens = append(s.tokens, token.Token{
		Kind:    kind,
		Lexeme:  s.source[s.start:s.current],
		Literal: literal,
		Line:    s.line,
	})
}

func (s *Scanner) advance() byte {
	c := s.source[s.current]
	s.current++
	return c
}

// match consumes the next character only if it equals expected.
func (s *Scanner) match(expected byte) bool {
	if s.isAtEnd() || s.source[s.current] != expected {
		return false
	}
	s.current++
	return true
}

func (s *Scanner) peek() byte {
	if s.isAtEnd() {
		return 0
	}
	return s.source[s.current]
}

func (s *Scanner) peekNext() byte {
	if s.current+1 >= len(s.source) {
		return 0
	}
	return s.source[s.current+1]
}

func (s *Scanner) isAtEnd() bool {
	return s.current >= len(s.source)
}

func (s *Scanner) errorf(message string) {
	s.diagnostics = append(s.diagnostics, diagnostic.AtLine(s.line, message))
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_'
}

func isAlphaNumeric(c byte) bool {
	return isAlpha(c) || isDigit(c)
}
