package driver

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"lox/interpreter-go/pkg/ast"
	"lox/interpreter-go/pkg/diagnostic"
	"lox/interpreter-go/pkg/interpreter"
	"lox/interpreter-go/pkg/parser"
	"lox/interpreter-go/pkg/resolver"
	"lox/interpreter-go/pkg/runtime"
	"lox/interpreter-go/pkg/scanner"
)

// Process exit codes, following the sysexits convention so tooling can
// distinguish a bad program from a program that failed while running.
const (
	ExitOK           = 0
	ExitUsage        = 64
	ExitStaticError  = 65
	ExitRuntimeError = 70
	ExitIOError      = 74
)

// StaticError aggregates every scan, parse, and resolve diagnostic from one
// compile. Any nonzero count blocks interpretation.
type StaticError struct {
	Diagnostics []diagnostic.Diagnostic
}

func (e *StaticError) Error() string {
	if len(e.Diagnostics) == 1 {
		return e.Diagnostics[0].String()
	}
	return fmt.Sprintf("%s (and %d more)", e.Diagnostics[0], len(e.Diagnostics)-1)
}

// Session owns one interpreter together with the resolution state it
// accumulates across runs. REPL lines share the session, so bindings defined
// on earlier lines stay visible and an error on one line does not disturb
// them.
type Session struct {
	interp *interpreter.Interpreter
	stderr io.Writer
}

// NewSession returns a session with fresh globals, printing to the standard
// streams.
func NewSession() *Session {
	return &Session{interp: interpreter.New(), stderr: os.Stderr}
}

// SetOutput redirects `print` and REPL echo output.
func (s *Session) SetOutput(w io.Writer) {
	s.interp.SetOutput(w)
}

// SetErrorOutput redirects diagnostic output.
func (s *Session) SetErrorOutput(w io.Writer) {
	s.stderr = w
}

// Compile runs the front half of the pipeline: scan, parse, and resolve.
// Scan and parse diagnostics are accumulated together; resolution only runs
// on a syntactically clean program.
func (s *Session) Compile(source string) ([]ast.Statement, []diagnostic.Diagnostic) {
	tokens, diags := scanner.New(source).Scan()

	statements, parseDiags := parser.New(tokens).Parse()
	diags = append(diags, parseDiags...)
	if len(diags) > 0 {
		return nil, diags
	}

	if resolveDiags := resolver.New(s.interp).Resolve(statements); len(resolveDiags) > 0 {
		return nil, resolveDiags
	}
	return statements, nil
}

// Run compiles and executes source, returning the last evaluated value. The
// error is a *StaticError when the program never started, or a
// *interpreter.RuntimeError when it failed while running.
func (s *Session) Run(source string) (runtime.Value, error) {
	statements, diags := s.Compile(source)
	if len(diags) > 0 {
		return nil, &StaticError{Diagnostics: diags}
	}
	return s.interp.Interpret(statements)
}

// RunFile executes a script and maps the outcome to a process exit code.
func (s *Session) RunFile(path string) int {
	source, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(s.stderr, "could not read %s: %v\n", path, err)
		return ExitIOError
	}
	if _, err := s.Run(string(source)); err != nil {
		return s.reportError(err)
	}
	return ExitOK
}

// RunPrompt drives the interactive loop. Each line goes through the full
// pipeline independently; the value of a bare expression line is echoed.
func (s *Session) RunPrompt(in io.Reader, out io.Writer) int {
	lines := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !lines.Scan() {
			break
		}
		line := lines.Text()
		if line == "" {
			continue
		}
		value, err := s.Run(line)
		if err != nil {
			s.reportError(err)
			continue
		}
		if _, isNil := value.(runtime.NilValue); !isNil {
			fmt.Fprintln(out, interpreter.Stringify(value))
		}
	}
	return ExitOK
}

func (s *Session) reportError(err error) int {
	var static *StaticError
	if errors.As(err, &static) {
		for _, d := range static.Diagnostics {
			fmt.Fprintln(s.stderr, d)
		}
		return ExitStaticError
	}
	fmt.Fprintln(s.stderr, err)
	return ExitRuntimeError
}
