package parser

import (
	"fmt"

	"lox/interpreter-go/pkg/ast"
	"lox/interpreter-go/pkg/token"
)

func (p *Parser) declaration() (ast.Statement, error) {
	switch {
	case p.match(token.Class):
		return p.classDeclaration()
	case p.match(token.Fun):
		return p.function("function")
	case p.match(token.Var):
		return p.varDeclaration()
	default:
		return p.statement()
	}
}

func (p *Parser) classDeclaration() (ast.Statement, error) {
	name, err := p.consume(token.Identifier, "Expect class name.")
	if err != nil {
		return nil, err
	}

	var superclass *ast.Variable
	if p.match(token.Less) {
		superName, err := p.consume(token.Identifier, "Expect superclass name.")
		if err != nil {
			return nil, err
		}
		superclass = ast.NewVariable(superName)
	}

	if _, err := p.consume(token.LeftBrace, "Expect '{' before class body."); err != nil {
		return nil, err
	}

	var methods []*ast.FunctionDecl
	for !p.check(token.RightBrace) && !p.isAtEnd() {
		method, err := p.function("method")
		if err != nil {
			return nil, err
		}
		methods = append(methods, method)
	}

	if _, err := p.consume(token.RightBrace, "Expect '}' after class body."); err != nil {
		return nil, err
	}
	return ast.NewClassDecl(name, superclass, methods), nil
}

// function parses a named function or method; kind selects error wording.
func (p *Parser) function(kind string) (*ast.FunctionDecl, error) {
	name, err := p.consume(token.Identifier, fmt.Sprintf("Expect %s name.", kind))
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.LeftParen, fmt.Sprintf("Expect '(' after %s name.", kind)); err != nil {
		return nil, err
	}

	var params []token.Token
	if !p.check(token.RightParen) {
		for {
			if len(params) >= maxArity {
				// Reported but not fatal to the production.
				_ = p.errorAt(p.peek(), fmt.Sprintf("Can't have more than %d parameters.", maxArity))
			}
			param, err := p.consume(token.Identifier, "Expect parameter name.")
			if err != nil {
				return nil, err
			}
			params = append(params, param)
			if !p.match(token.Comma) {
				break
			}
		}
	}
	if _, err := p.consume(token.RightParen, "Expect ')' after parameters."); err != nil {
		return nil, err
	}

	if _, err := p.consume(token.LeftBrace, fmt.Sprintf("Expect '{' before %s body.", kind)); err != nil {
		return nil, err
	}
	body, err := p.block()
	if err != nil {
		return nil, err
	}
	return ast.NewFunctionDecl(name, params, body), nil
}

func (p *Parser) varDeclaration() (ast.Statement, error) {
	name, err := p.consume(token.Identifier, "Expect variable name.")
	if err != nil {
		return nil, err
	}

	var initializer ast.Expression
	if p.match(token.Equal) {
		initializer, err = p.expression()
		if err != nil {
			return nil, err
		}
	}

	if _, err := p.consume(token.Semicolon, "Expect ';' after variable declaration."); err != nil {
		return nil, err
	}
	return ast.NewVarDecl(name, initializer), nil
}

func (p *Parser) statement() (ast.Statement, error) {
	switch {
	case p.match(token.For):
		return p.forStatement()
	case p.match(token.If):
		return p.ifStatement()
	case p.match(token.Print):
		return p.printStatement()
	case p.match(token.Return):
		return p.returnStatement()
	case p.match(token.While):
		return p.whileStatement()
	case p.match(token.LeftBrace):
		statements, err := p.block()
		if err != nil {
			return nil, err
		}
		return ast.NewBlockStmt(statements), nil
	default:
		return p.expressionStatement()
	}
}

// forStatement desugars `for` into an initializer block wrapping a `while`
// with a post-body increment; there is no runtime `for` representation.
func (p *Parser) forStatement() (ast.Statement, error) {
	if _, err := p.consume(token.LeftParen, "Expect '(' after 'for'."); err != nil {
		return nil, err
	}

	var initializer ast.Statement
	var err error
	switch {
	case p.match(token.Semicolon):
		initializer = nil
	case p.match(token.Var):
		initializer, err = p.varDeclaration()
	default:
		initializer, err = p.expressionStatement()
	}
	if err != nil {
		return nil, err
	}

	var condition ast.Expression
	if !p.check(token.Semicolon) {
		condition, err = p.expression()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.consume(token.Semicolon, "Expect ';' after loop condition."); err != nil {
		return nil, err
	}

	var increment ast.Expression
	if !p.check(token.RightParen) {
		increment, err = p.expression()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.consume(token.RightParen, "Expect ')' after for clauses."); err != nil {
		return nil, err
	}

	body, err := p.statement()
	if err != nil {
		return nil, err
	}

	if increment != nil {
		body = ast.NewBlockStmt([]ast.Statement{body, ast.NewExpressionStmt(increment)})
	}
	if condition == nil {
		condition = ast.NewLiteral(true)
	}
	body = ast.NewWhileStmt(condition, body)
	if initializer != nil {
		body = ast.NewBlockStmt([]ast.Statement{initializer, body})
	}
	return body, nil
}

func (p *Parser) ifStatement() (ast.Statement, error) {
	if _, err := p.consume(token.LeftParen, "Expect '(' after 'if'."); err != nil {
		return nil, err
	}
	condition, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.RightParen, "Expect ')' after if condition."); err != nil {
		return nil, err
	}

	then, err := p.statement()
	if err != nil {
		return nil, err
	}
	// else binds to the nearest unmatched if.
	var elseBranch ast.Statement
	if p.match(token.Else) {
		elseBranch, err = p.statement()
		if err != nil {
			return nil, err
		}
	}
	return ast.NewIfStmt(condition, then, elseBranch), nil
}

func (p *Parser) printStatement() (ast.Statement, error) {
	value, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.Semicolon, "Expect ';' after value."); err != nil {
		return nil, err
	}
	return ast.NewPrintStmt(value), nil
}

func (p *Parser) returnStatement() (ast.Statement, error) {
	keyword := p.previous()
	var value ast.Expression
	var err error
	if !p.check(token.Semicolon) {
		value, err = p.expression()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.consume(token.Semicolon, "Expect ';' after return value."); err != nil {
		return nil, err
	}
	return ast.NewReturnStmt(keyword, value), nil
}

func (p *Parser) whileStatement() (ast.Statement, error) {
	if _, err := p.consume(token.LeftParen, "Expect '(' after 'while'."); err != nil {
		return nil, err
	}
	condition, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.RightParen, "Expect ')' after condition."); err != nil {
		return nil, err
	}
	body, err := p.statement()
	if err != nil {
		return nil, err
	}
	return ast.NewWhileStmt(condition, body), nil
}

func (p *Parser) block() ([]ast.Statement, error) {
	var statements []ast.Statement
	for !p.check(token.RightBrace) && !p.isAtEnd() {
		stmt, err := p.declaration()
		if err != nil {
			p.synchronize()
			continue
		}
		statements = append(statements, stmt)
	}
	if _, err := p.consume(token.RightBrace, "Expect '}' after block."); err != nil {
		return nil, err
	}
	return statements, nil
}

func (p *Parser) expressionStatement() (ast.Statement, error) {
	expr, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.Semicolon, "Expect ';' after expression."); err != nil {
		return nil, err
	}
	return ast.NewExpressionStmt(expr), nil
}
