package parser

import (
	"fmt"

	"lox/interpreter-go/pkg/ast"
	"lox/interpreter-go/pkg/token"
)

// Precedence is encoded by call order, low to high:
// assignment, or, and, equality, comparison, term, factor, unary, call,
// primary. Each binary level folds left-associatively.

func (p *Parser) expression() (ast.Expression, error) {
	return p.assignment()
}

func (p *Parser) assignment() (ast.Expression, error) {
	expr, err := p.or()
	if err != nil {
		return nil, err
	}

	if p.match(token.Equal) {
		equals := p.previous()
		// Right-associative: recurse at the same level.
		value, err := p.assignment()
		if err != nil {
			return nil, err
		}

		switch target := expr.(type) {
		case *ast.Variable:
			return ast.NewAssign(target.Name, value), nil
		case *ast.Get:
			return ast.NewSet(target.Object, target.Name, value), nil
		}
		// Reported but recoverable; the surrounding production continues.
		_ = p.errorAt(equals, "Invalid assignment target.")
	}
	return expr, nil
}

func (p *Parser) or() (ast.Expression, error) {
	expr, err := p.and()
	if err != nil {
		return nil, err
	}
	for p.match(token.Or) {
		operator := p.previous()
		right, err := p.and()
		if err != nil {
			return nil, err
		}
		expr = ast.NewLogical(operator, expr, right)
	}
	return expr, nil
}

func (p *Parser) and() (ast.Expression, error) {
	expr, err := p.equality()
	if err != nil {
		return nil, err
	}
	for p.match(token.And) {
		operator := p.previous()
		right, err := p.equality()
		if err != nil {
			return nil, err
		}
		expr = ast.NewLogical(operator, expr, right)
	}
	return expr, nil
}

func (p *Parser) equality() (ast.Expression, error) {
	expr, err := p.comparison()
	if err != nil {
		return nil, err
	}
	for p.match(token.BangEqual, token.EqualEqual) {
		operator := p.previous()
		right, err := p.comparison()
		if err != nil {
			return nil, err
		}
		expr = ast.NewBinary(operator, expr, right)
	}
	return expr, nil
}

func (p *Parser) comparison() (ast.Expression, error) {
	expr, err := p.term()
	if err != nil {
		return nil, err
	}
	for p.match(token.Greater, token.GreaterEqual, token.Less, token.LessEqual) {
		operator := p.previous()
		right, err := p.term()
		if err != nil {
			return nil, err
		}
		expr = ast.NewBinary(operator, expr, right)
	}
	return expr, nil
}

func (p *Parser) term() (ast.Expression, error) {
	expr, err := p.factor()
	if err != nil {
		return nil, err
	}
	for p.match(token.Minus, token.Plus) {
		operator := p.previous()
		right, err := p.factor()
		if err != nil {
			return nil, err
		}
		expr = ast.NewBinary(operator, expr, right)
	}
	return expr, nil
}

func (p *Parser) factor() (ast.Expression, error) {
	expr, err := p.unary()
	if err != nil {
		return nil, err
	}
	for p.match(token.Slash, token.Star) {
		operator := p.previous()
		right, err := p.unary()
		if err != nil {
			return nil, err
		}
		expr = ast.NewBinary(operator, expr, right)
	}
	return expr, nil
}

func (p *Parser) unary() (ast.Expression, error) {
	if p.match(token.Bang, token.Minus) {
		operator := p.previous()
		right, err := p.unary()
		if err != nil {
			return nil, err
		}
		return ast.NewUnary(operator, right), nil
	}
	return p.call()
}

func (p *Parser) call() (ast.Expression, error) {
	expr, err := p.primary()
	if err != nil {
		return nil, err
	}

	// Chained calls and property accesses: f(a)(b).field(c).
	for {
		switch {
		case p.match(token.LeftParen):
			expr, err = p.finishCall(expr)
			if err != nil {
				return nil, err
			}
		case p.match(token.Dot):
			name, err := p.consume(token.Identifier, "Expect property name after '.'.")
			if err != nil {
				return nil, err
			}
			expr = ast.NewGet(expr, name)
		default:
			return expr, nil
		}
	}
}

func (p *Parser) finishCall(callee ast.Expression) (ast.Expression, error) {
	var arguments []ast.Expression
	if !p.check(token.RightParen) {
		for {
			if len(arguments) >= maxArity {
				_ = p.errorAt(p.peek(), fmt.Sprintf("Can't have more than %d arguments.", maxArity))
			}
			arg, err := p.expression()
			if err != nil {
				return nil, err
			}
			arguments = append(arguments, arg)
			if !p.match(token.Comma) {
				break
			}
		}
	}
	paren, err := p.consume(token.RightParen, "Expect ')' after arguments.")
	if err != nil {
		return nil, err
	}
	return ast.NewCall(callee, paren, arguments), nil
}

func (p *Parser) primary() (ast.Expression, error) {
	switch {
	case p.match(token.False):
		return ast.NewLiteral(false), nil
	case p.match(token.True):
		return ast.NewLiteral(true), nil
	case p.match(token.Nil):
		return ast.NewLiteral(nil), nil
	case p.match(token.Number, token.String):
		return ast.NewLiteral(p.previous().Literal), nil
	case p.match(token.Super):
		keyword := p.previous()
		if _, err := p.consume(token.Dot, "Expect '.' after 'super'."); err != nil {
			return nil, err
		}
		method, err := p.consume(token.Identifier, "Expect superclass method name.")
		if err != nil {
			return nil, err
		}
		return ast.NewSuper(keyword, method), nil
	case p.match(token.This):
		return ast.NewThis(p.previous()), nil
	case p.match(token.Identifier):
		return ast.NewVariable(p.previous()), nil
	case p.match(token.LeftParen):
		expr, err := p.expression()
		if err != nil {
			return nil, err
		}
		if _, err := p.consume(token.RightParen, "Expect ')' after expression."); err != nil {
			return nil, err
		}
		return ast.NewGrouping(expr), nil
	default:
		return nil, p.errorAt(p.peek(), "Expect expression.")
	}
}
