package ast

import "lox/interpreter-go/pkg/token"

type NodeType string

const (
	NodeLiteral        NodeType = "Literal"
	NodeGrouping       NodeType = "Grouping"
	NodeUnary          NodeType = "Unary"
	NodeBinary         NodeType = "Binary"
	NodeLogical        NodeType = "Logical"
	NodeVariable       NodeType = "Variable"
	NodeAssign         NodeType = "Assign"
	NodeCall           NodeType = "Call"
	NodeGet            NodeType = "Get"
	NodeSet            NodeType = "Set"
	NodeThis           NodeType = "This"
	NodeSuper          NodeType = "Super"
	NodeExpressionStmt NodeType = "ExpressionStmt"
	NodePrintStmt      NodeType = "PrintStmt"
	NodeVarDecl        NodeType = "VarDecl"
	NodeBlockStmt      NodeType = "BlockStmt"
	NodeIfStmt         NodeType = "IfStmt"
	NodeWhileStmt      NodeType = "WhileStmt"
	NodeFunctionDecl   NodeType = "FunctionDecl"
	NodeReturnStmt     NodeType = "ReturnStmt"
	NodeClassDecl      NodeType = "ClassDecl"
)

type Node interface {
	NodeType() NodeType
	isNode()
}

type nodeImpl struct {
	Type NodeType
}

func newNodeImpl(kind NodeType) nodeImpl {
	return nodeImpl{Type: kind}
}

func (n nodeImpl) NodeType() NodeType { return n.Type }
func (nodeImpl) isNode()              {}

// Marker interfaces.
//
// Expressions are always pointer values, so an Expression is usable directly
// as a map key: the resolver records scope distances against node identity,
// never against names.

type Expression interface {
	Node
	expressionNode()
}

type expressionMarker struct{}

func (expressionMarker) expressionNode() {}

type Statement interface {
	Node
	statementNode()
}

type statementMarker struct{}

func (statementMarker) statementNode() {}

//-----------------------------------------------------------------------------
// Expressions
//-----------------------------------------------------------------------------

// Literal holds a value fixed at scan time: float64, string, bool, or nil.
type Literal struct {
	nodeImpl
	expressionMarker

	Value any
}

func NewLiteral(value any) *Literal {
	return &Literal{nodeImpl: newNodeImpl(NodeLiteral), Value: value}
}

type Grouping struct {
	nodeImpl
	expressionMarker

	Expr Expression
}

func NewGrouping(expr Expression) *Grouping {
	return &Grouping{nodeImpl: newNodeImpl(NodeGrouping), Expr: expr}
}

type Unary struct {
	nodeImpl
	expressionMarker

	Operator token.Token
	Right    Expression
}

func NewUnary(operator token.Token, right Expression) *Unary {
	return &Unary{nodeImpl: newNodeImpl(NodeUnary), Operator: operator, Right: right}
}

type Binary struct {
	nodeImpl
	expressionMarker

	Operator    token.Token
	Left, Right Expression
}

func NewBinary(operator token.Token, left, right Expression) *Binary {
	return &Binary{nodeImpl: newNodeImpl(NodeBinary), Operator: operator, Left: left, Right: right}
}

// Logical is `and`/`or`; short-circuiting happens at evaluation time.
type Logical struct {
	nodeImpl
	expressionMarker

	Operator    token.Token
	Left, Right Expression
}

func NewLogical(operator token.Token, left, right Expression) *Logical {
	return &Logical{nodeImpl: newNodeImpl(NodeLogical), Operator: operator, Left: left, Right: right}
}

type Variable struct {
	nodeImpl
	expressionMarker

	Name token.Token
}

func NewVariable(name token.Token) *Variable {
	return &Variable{nodeImpl: newNodeImpl(NodeVariable), Name: name}
}

type Assign struct {
	nodeImpl
	expressionMarker

	Name  token.Token
	Value Expression
}

func NewAssign(name token.Token, value Expression) *Assign {
	return &Assign{nodeImpl: newNodeImpl(NodeAssign), Name: name, Value: value}
}

type Call struct {
	nodeImpl
	expressionMarker

	Callee    Expression
	Paren     token.Token // closing paren, locates the call site for errors
	Arguments []Expression
}

func NewCall(callee Expression, paren token.Token, arguments []Expression) *Call {
	return &Call{nodeImpl: newNodeImpl(NodeCall), Callee: callee, Paren: paren, Arguments: arguments}
}

type Get struct {
	nodeImpl
	expressionMarker

	Object Expression
	Name   token.Token
}

func NewGet(object Expression, name token.Token) *Get {
	return &Get{nodeImpl: newNodeImpl(NodeGet), Object: object, Name: name}
}

type Set struct {
	nodeImpl
	expressionMarker

	Object Expression
	Name   token.Token
	Value  Expression
}

func NewSet(object Expression, name token.Token, value Expression) *Set {
	return &Set{nodeImpl: newNodeImpl(NodeSet), Object: object, Name: name, Value: value}
}

type This struct {
	nodeImpl
	expressionMarker

	Keyword token.Token
}

func NewThis(keyword token.Token) *This {
	return &This{nodeImpl: newNodeImpl(NodeThis), Keyword: keyword}
}

type Super struct {
	nodeImpl
	expressionMarker

	Keyword token.Token
	Method  token.Token
}

func NewSuper(keyword, method token.Token) *Super {
	return &Super{nodeImpl: newNodeImpl(NodeSuper), Keyword: keyword, Method: method}
}

//-----------------------------------------------------------------------------
// Statements
//-----------------------------------------------------------------------------

type ExpressionStmt struct {
	nodeImpl
	statementMarker

	Expr Expression
}

func NewExpressionStmt(expr Expression) *ExpressionStmt {
	return &ExpressionStmt{nodeImpl: newNodeImpl(NodeExpressionStmt), Expr: expr}
}

type PrintStmt struct {
	nodeImpl
	statementMarker

	Expr Expression
}

func NewPrintStmt(expr Expression) *PrintStmt {
	return &PrintStmt{nodeImpl: newNodeImpl(NodePrintStmt), Expr: expr}
}

// VarDecl declares a variable; a nil Initializer binds nil at runtime.
type VarDecl struct {
	nodeImpl
	statementMarker

	Name        token.Token
	Initializer Expression
}

func NewVarDecl(name token.Token, initializer Expression) *VarDecl {
	return &VarDecl{nodeImpl: newNodeImpl(NodeVarDecl), Name: name, Initializer: initializer}
}

// BlockStmt opens a new lexical scope around its statements.
type BlockStmt struct {
	nodeImpl
	statementMarker

	Statements []Statement
}

func NewBlockStmt(statements []Statement) *BlockStmt {
	return &BlockStmt{nodeImpl: newNodeImpl(NodeBlockStmt), Statements: statements}
}

type IfStmt struct {
	nodeImpl
	statementMarker

	Condition Expression
	Then      Statement
	Else      Statement // nil when there is no else branch
}

func NewIfStmt(condition Expression, then, elseBranch Statement) *IfStmt {
	return &IfStmt{nodeImpl: newNodeImpl(NodeIfStmt), Condition: condition, Then: then, Else: elseBranch}
}

type WhileStmt struct {
	nodeImpl
	statementMarker

	Condition Expression
	Body      Statement
}

func NewWhileStmt(condition Expression, body Statement) *WhileStmt {
	return &WhileStmt{nodeImpl: newNodeImpl(NodeWhileStmt), Condition: condition, Body: body}
}

// FunctionDecl covers both `fun` declarations and class methods; methods
// reuse the node without a leading keyword.
type FunctionDecl struct {
	nodeImpl
	statementMarker

	Name   token.Token
	Params []token.Token
	Body   []Statement
}

func NewFunctionDecl(name token.Token, params []token.Token, body []Statement) *FunctionDecl {
	return &FunctionDecl{nodeImpl: newNodeImpl(NodeFunctionDecl), Name: name, Params: params, Body: body}
}

type ReturnStmt struct {
	nodeImpl
	statementMarker

	Keyword token.Token
	Value   Expression // nil for a bare `return;`
}

func NewReturnStmt(keyword token.Token, value Expression) *ReturnStmt {
	return &ReturnStmt{nodeImpl: newNodeImpl(NodeReturnStmt), Keyword: keyword, Value: value}
}

type ClassDecl struct {
	nodeImpl
	statementMarker

	Name       token.Token
	Superclass *Variable // nil when the class has no superclass
	Methods    []*FunctionDecl
}

func NewClassDecl(name token.Token, superclass *Variable, methods []*FunctionDecl) *ClassDecl {
	return &ClassDecl{nodeImpl: newNodeImpl(NodeClassDecl), Name: name, Superclass: superclass, Methods: methods}
}
