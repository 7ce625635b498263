package driver

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"lox/interpreter-go/pkg/interpreter"
	"lox/interpreter-go/pkg/runtime"
)

func newTestSession() (*Session, *bytes.Buffer, *bytes.Buffer) {
	s := NewSession()
	var out, errOut bytes.Buffer
	s.SetOutput(&out)
	s.SetErrorOutput(&errOut)
	return s, &out, &errOut
}

func TestRunProducesOutput(t *testing.T) {
	s, out, _ := newTestSession()
	if _, err := s.Run(`print "hello";`); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.String() != "hello\n" {
		t.Fatalf("got %q", out.String())
	}
}

func TestRunReturnsLastValue(t *testing.T) {
	s, _, _ := newTestSession()
	val, err := s.Run("1 + 2;")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n, ok := val.(runtime.NumberValue); !ok || n.Val != 3 {
		t.Fatalf("expected 3, got %#v", val)
	}
}

func TestStaticErrorBlocksExecution(t *testing.T) {
	s, out, _ := newTestSession()
	_, err := s.Run("print \"reached\";\n1 + ;")
	var static *StaticError
	if !errors.As(err, &static) {
		t.Fatalf("expected StaticError, got %T: %v", err, err)
	}
	if out.Len() != 0 {
		t.Fatalf("nothing may execute when compilation fails, printed %q", out.String())
	}
}

func TestStaticErrorAggregatesScanAndParseDiagnostics(t *testing.T) {
	s, _, _ := newTestSession()
	// A stray character and a malformed expression in one program.
	_, err := s.Run("var @ = 1;\n2 + ;")
	var static *StaticError
	if !errors.As(err, &static) {
		t.Fatalf("expected StaticError, got %T: %v", err, err)
	}
	if len(static.Diagnostics) < 2 {
		t.Fatalf("expected scan and parse diagnostics together, got %v", static.Diagnostics)
	}
}

func TestResolveErrorIsStatic(t *testing.T) {
	s, _, _ := newTestSession()
	_, err := s.Run("return 1;")
	var static *StaticError
	if !errors.As(err, &static) {
		t.Fatalf("expected StaticError, got %T: %v", err, err)
	}
	if got := static.Diagnostics[0].Message; got != "Can't return from top-level code." {
		t.Fatalf("got %q", got)
	}
}

func TestRuntimeErrorSurfacesFromRun(t *testing.T) {
	s, _, _ := newTestSession()
	_, err := s.Run("1 + nil;")
	var re *interpreter.RuntimeError
	if !errors.As(err, &re) {
		t.Fatalf("expected RuntimeError, got %T: %v", err, err)
	}
	if !strings.HasSuffix(err.Error(), "[line 1]") {
		t.Fatalf("got %q", err.Error())
	}
}

func TestSessionStateSurvivesErrors(t *testing.T) {
	s, out, _ := newTestSession()
	if _, err := s.Run("var a = 1;"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := s.Run("a + nil;"); err == nil {
		t.Fatalf("expected a runtime error")
	}
	if _, err := s.Run("print a;"); err != nil {
		t.Fatalf("binding lost after error: %v", err)
	}
	if out.String() != "1\n" {
		t.Fatalf("got %q", out.String())
	}
}

func writeScript(t *testing.T, source string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "script.lox")
	if err := os.WriteFile(path, []byte(source), 0o644); err != nil {
		t.Fatalf("writing script: %v", err)
	}
	return path
}

func TestRunFileExitCodes(t *testing.T) {
	cases := []struct {
		name   string
		source string
		want   int
	}{
		{"clean", "print 1;", ExitOK},
		{"static", "1 + ;", ExitStaticError},
		{"runtime", "1 + nil;", ExitRuntimeError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s, _, _ := newTestSession()
			if got := s.RunFile(writeScript(t, tc.source)); got != tc.want {
				t.Fatalf("exit code %d, want %d", got, tc.want)
			}
		})
	}
}

func TestRunFileMissingFile(t *testing.T) {
	s, _, errOut := newTestSession()
	if got := s.RunFile(filepath.Join(t.TempDir(), "no-such.lox")); got != ExitIOError {
		t.Fatalf("exit code %d, want %d", got, ExitIOError)
	}
	if !strings.Contains(errOut.String(), "could not read") {
		t.Fatalf("stderr %q", errOut.String())
	}
}

func TestRunFileReportsAllStaticDiagnostics(t *testing.T) {
	s, _, errOut := newTestSession()
	s.RunFile(writeScript(t, "1 + ;\n2 + ;"))
	if got := strings.Count(errOut.String(), "Expect expression."); got != 2 {
		t.Fatalf("expected both diagnostics on stderr, got %q", errOut.String())
	}
}

func TestRunPromptEchoesExpressionValues(t *testing.T) {
	s, _, _ := newTestSession()
	in := strings.NewReader("var a = 2;\na * 3;\n")
	var console bytes.Buffer
	if got := s.RunPrompt(in, &console); got != ExitOK {
		t.Fatalf("exit code %d", got)
	}
	if !strings.Contains(console.String(), "6\n") {
		t.Fatalf("expression value not echoed: %q", console.String())
	}
	if strings.Contains(console.String(), "nil") {
		t.Fatalf("declarations must not echo: %q", console.String())
	}
}

func TestRunPromptContinuesAfterErrors(t *testing.T) {
	s, out, errOut := newTestSession()
	in := strings.NewReader("1 + ;\n1 + nil;\nprint \"still here\";\n")
	var console bytes.Buffer
	s.RunPrompt(in, &console)

	if !strings.Contains(errOut.String(), "Expect expression.") {
		t.Fatalf("parse error not reported: %q", errOut.String())
	}
	if !strings.Contains(errOut.String(), "Operands must be two numbers or two strings.") {
		t.Fatalf("runtime error not reported: %q", errOut.String())
	}
	if out.String() != "still here\n" {
		t.Fatalf("loop did not continue: %q", out.String())
	}
}
