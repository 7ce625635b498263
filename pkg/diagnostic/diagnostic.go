package diagnostic

import (
	"fmt"

	"lox/interpreter-go/pkg/token"
)

// Diagnostic is a single static error (lexical, syntactic, or semantic)
// located by its 1-based source line. Any nonzero count of these blocks
// interpretation.
type Diagnostic struct {
	Line    int
	Where   string // location clause such as " at 'foo'" or " at end"; may be empty
	Message string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("[line %d] Error%s: %s", d.Line, d.Where, d.Message)
}

// AtLine builds a diagnostic with no location clause.
func AtLine(line int, message string) Diagnostic {
	return Diagnostic{Line: line, Message: message}
}

// AtToken builds a diagnostic whose location clause names the offending token.
func AtToken(tok token.Token, message string) Diagnostic {
	where := fmt.Sprintf(" at '%s'", tok.Lexeme)
	if tok.Kind == token.EOF {
		where = " at end"
	}
	return Diagnostic{Line: tok.Line, Where: where, Message: message}
}
