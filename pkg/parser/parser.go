package parser

import (
	"fmt"

	"lox/interpreter-go/pkg/ast"
	"lox/interpreter-go/pkg/diagnostic"
	"lox/interpreter-go/pkg/token"
)

// maxArity bounds parameter and argument lists, matching reference Lox.
const maxArity = 255

// Parser consumes a scanned token stream by recursive descent, one
// production per grammar level. Syntax errors are accumulated across the
// whole parse: a failed production synchronizes at the next statement
// boundary and parsing continues.
type Parser struct {
	tokens      []token.Token
	current     int
	diagnostics []diagnostic.Diagnostic
}

// New returns a parser over a token stream terminated by an EOF token.
func New(tokens []token.Token) *Parser {
	return &Parser{tokens: tokens}
}

// Parse consumes the whole stream and returns the statement list along with
// every syntax diagnostic. The statement list is only runnable when the
// diagnostic list is empty.
func (p *Parser) Parse() ([]ast.Statement, []diagnostic.Diagnostic) {
	var statements []ast.Statement
	for !p.isAtEnd() {
		stmt, err := p.declaration()
		if err != nil {
			p.synchronize()
			continue
		}
		statements = append(statements, stmt)
	}
	return statements, p.diagnostics
}

// syntaxError unwinds a single failed production up to the synchronizing
// loop. The diagnostic is recorded at the point of failure.
type syntaxError struct {
	tok     token.Token
	message string
}

func (e *syntaxError) Error() string {
	return fmt.Sprintf("[line %d] %s", e.tok.Line, e.message)
}

func (p *Parser) errorAt(tok token.Token, message string) error {
	p.diagnostics = append(p.diagnostics, diagnostic.AtToken(tok, message))
	return &syntaxError{tok: tok, message: message}
}

// synchronize discards tokens up to the next statement boundary so one
// malformed statement does not hide errors in the rest of the program.
func (p *Parser) synchronize() {
	p.advance()
	for !p.isAtEnd() {
		if p.previous().Kind == token.Semicolon {
			return
		}
		switch p.peek().Kind {
		case token.Class, token.Fun, token.Var, token.For,
			token.If, token.While, token.Print, token.Return:
			return
		}
		p.advance()
	}
}

//-----------------------------------------------------------------------------
// Token cursor
//-----------------------------------------------------------------------------

func (p *Parser) match(kinds ...token.Kind) bool {
	for _, kind := range kinds {
		if p.check(kind) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *Parser) consume(kind token.Kind, message string) (token.Token, error) {
	if p.check(kind) {
		return p.advance(), nil
	}
	return token.Token{}, p.errorAt(p.peek(), message)
}

func (p *Parser) check(kind token.Kind) bool {
	if p.isAtEnd() {
		return false
	}
	return p.peek().Kind == kind
}

func (p *Parser) advance() token.Token {
	if !p.isAtEnd() {
		p.current++
	}
	return p.previous()
}

func (p *Parser) isAtEnd() bool {
	return p.peek().Kind == token.EOF
}

func (p *Parser) peek() token.Token {
	return p.tokens[p.current]
}

func (p *Parser) previous() token.Token {
	return p.tokens[p.current-1]
}
