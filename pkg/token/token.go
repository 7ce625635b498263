package token

import "fmt"

// Kind identifies the lexical category of a token.
type Kind int

const (
	// Single-character punctuation.
	LeftParen Kind = iota
	RightParen
	LeftBrace
	RightBrace
	Comma
	Dot
	Minus
	Plus
	Semicolon
	Slash
	Star

	// One- or two-character operators.
	Bang
	BangEqual
	Equal
	EqualEqual
	Greater
	GreaterEqual
	Less
	LessEqual

	// Literals.
	Identifier
	String
	Number

	// Keywords.
	And
	Class
	Else
	False
	Fun
	For
	If
	Nil
	Or
	Print
	Return
	Super
	This
	True
	Var
	While

	EOF
)

func (k Kind) String() string {
	switch k {
	case LeftParen:
		return "("
	case RightParen:
		return ")"
	case LeftBrace:
		return "{"
	case RightBrace:
		return "}"
	case Comma:
		return ","
	case Dot:
		return "."
	case Minus:
		return "-"
	case Plus:
		return "+"
	case Semicolon:
		return ";"
	case Slash:
		return "/"
	case Star:
		return "*"
	case Bang:
		return "!"
	case BangEqual:
		return "!="
	case Equal:
		return "="
	case EqualEqual:
		return "=="
	case Greater:
		return ">"
	case GreaterEqual:
		return ">="
	case Less:
		return "<"
	case LessEqual:
		return "<="
	case Identifier:
		return "identifier"
	case String:
		return "string"
	case Number:
		return "number"
	case And:
		return "and"
	case Class:
		return "class"
	case Else:
		return "else"
	case False:
		return "false"
	case Fun:
		return "fun"
	case For:
		return "for"
	case If:
		return "if"
	case Nil:
		return "nil"
	case Or:
		return "or"
	case Print:
		return "print"
	case Return:
		return "return"
	case Super:
		return "super"
	case This:
		return "this"
	case True:
		return "true"
	case Var:
		return "var"
	case While:
		return "while"
	case EOF:
		return "eof"
	default:
		return fmt.Sprintf("unknown_kind_%d", int(k))
	}
}

// Token is a single lexical unit of Lox source. Immutable once scanned.
type Token struct {
	Kind    Kind
	Lexeme  string
	Literal any // float64 for number tokens, string for string tokens, else nil
	Line    int
}

func (t Token) String() string {
	if t.Literal != nil {
		return fmt.Sprintf("%s %s %v", t.Kind, t.Lexeme, t.Literal)
	}
	return fmt.Sprintf("%s %s", t.Kind, t.Lexeme)
}

var keywords = map[string]Kind{
	"and":    And,
	"class":  Class,
	"else":   Else,
	"false":  False,
	"fun":    Fun,
	"for":    For,
	"if":     If,
	"nil":    Nil,
	"or":     Or,
	"print":  Print,
	"return": Return,
	"super":  Super,
	"this":   This,
	"true":   True,
	"var":    Var,
	"while":  While,
}

// Keyword reports the reserved-word kind for an identifier lexeme, if any.
func Keyword(name string) (Kind, bool) {
	kind, ok := keywords[name]
	return kind, ok
}
