package ast

import "lox/interpreter-go/pkg/token"

// Construction helpers used by tests to assemble trees without running the
// scanner and parser.

// Name fabricates an identifier token.
func Name(lexeme string) token.Token {
	return token.Token{Kind: token.Identifier, Lexeme: lexeme, Line: 1}
}

// Op fabricates an operator or keyword token from its kind.
func Op(kind token.Kind) token.Token {
	return token.Token{Kind: kind, Lexeme: kind.String(), Line: 1}
}

// Expression helpers.

func Num(value float64) *Literal {
	return NewLiteral(value)
}

func Str(value string) *Literal {
	return NewLiteral(value)
}

func Bool(value bool) *Literal {
	return NewLiteral(value)
}

func Nil() *Literal {
	return NewLiteral(nil)
}

func ID(name string) *Variable {
	return NewVariable(Name(name))
}

func Group(expr Expression) *Grouping {
	return NewGrouping(expr)
}

func Un(operator token.Kind, right Expression) *Unary {
	return NewUnary(Op(operator), right)
}

func Bin(operator token.Kind, left, right Expression) *Binary {
	return NewBinary(Op(operator), left, right)
}

func Log(operator token.Kind, left, right Expression) *Logical {
	return NewLogical(Op(operator), left, right)
}

func Asgn(name string, value Expression) *Assign {
	return NewAssign(Name(name), value)
}

func CallExpr(callee Expression, arguments ...Expression) *Call {
	return NewCall(callee, Op(token.RightParen), arguments)
}

func GetExpr(object Expression, name string) *Get {
	return NewGet(object, Name(name))
}

func SetExpr(object Expression, name string, value Expression) *Set {
	return NewSet(object, Name(name), value)
}

func ThisExpr() *This {
	return NewThis(Op(token.This))
}

func SuperExpr(method string) *Super {
	return NewSuper(Op(token.Super), Name(method))
}

// Statement helpers.

func ExprS(expr Expression) *ExpressionStmt {
	return NewExpressionStmt(expr)
}

func PrintS(expr Expression) *PrintStmt {
	return NewPrintStmt(expr)
}

func VarS(name string, initializer Expression) *VarDecl {
	return NewVarDecl(Name(name), initializer)
}

func Block(statements ...Statement) *BlockStmt {
	return NewBlockStmt(statements)
}

func IfS(condition Expression, then, elseBranch Statement) *IfStmt {
	return NewIfStmt(condition, then, elseBranch)
}

func WhileS(condition Expression, body Statement) *WhileStmt {
	return NewWhileStmt(condition, body)
}

func FunS(name string, params []string, body ...Statement) *FunctionDecl {
	tokens := make([]token.Token, 0, len(params))
	for _, p := range params {
		tokens = append(tokens, Name(p))
	}
	return NewFunctionDecl(Name(name), tokens, body)
}

func RetS(value Expression) *ReturnStmt {
	return NewReturnStmt(Op(token.Return), value)
}

func ClassS(name string, superclass *Variable, methods ...*FunctionDecl) *ClassDecl {
	return NewClassDecl(Name(name), superclass, methods)
}
