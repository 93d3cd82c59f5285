package repl

import (
	"bytes"
	"strings"
	"testing"
)

func TestProcessExpressionPrintsInferredType(t *testing.T) {
	r := New()
	var out bytes.Buffer
	r.ProcessExpression("1 + 2 * 3", &out)
	if !strings.Contains(out.String(), ":: Float") {
		t.Fatalf("expected inferred Float type in output, got: %s", out.String())
	}
}

func TestProcessExpressionReportsTypeError(t *testing.T) {
	r := New()
	var out bytes.Buffer
	r.ProcessExpression(`if True then 1 else "nope"`, &out)
	if !strings.Contains(out.String(), "TypeMismatch") {
		t.Fatalf("expected a TypeMismatch diagnostic, got: %s", out.String())
	}
}

func TestProcessExpressionReportsParseError(t *testing.T) {
	r := New()
	var out bytes.Buffer
	r.ProcessExpression("fn =>", &out)
	if !strings.Contains(out.String(), "parse error") {
		t.Fatalf("expected a parse error diagnostic, got: %s", out.String())
	}
}

func TestShowTokensTogglesTokenDump(t *testing.T) {
	r := New()
	var out bytes.Buffer
	r.HandleCommand(":tokens", &out)
	if !r.config.ShowTokens {
		t.Fatalf("expected ShowTokens to be enabled after toggling")
	}
	out.Reset()
	r.ProcessExpression("1 + 1", &out)
	if !strings.Contains(out.String(), "tokens:") {
		t.Fatalf("expected a token dump in output, got: %s", out.String())
	}
}

func TestHistoryCommandListsPriorInput(t *testing.T) {
	r := New()
	r.history = append(r.history, "1 + 1")
	var out bytes.Buffer
	r.HandleCommand(":history", &out)
	if !strings.Contains(out.String(), "1 + 1") {
		t.Fatalf("expected history entry in output, got: %s", out.String())
	}
}
