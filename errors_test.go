package rich_test

import (
	"errors"
	"strings"
	"testing"

	rich "github.com/demurgos/rich"
)

func TestIssues_ErrorSummarizesFirstThree(t *testing.T) {
	var iss rich.Issues
	iss = rich.AppendIssues(iss,
		rich.Issue{Code: rich.CodeInvalidType, Path: "/a"},
		rich.Issue{Code: rich.CodeMissingField, Path: "/b"},
		rich.Issue{Code: rich.CodeUnknownKey, Path: "/c"},
		rich.Issue{Code: rich.CodeOverflow, Path: "/d"},
		rich.Issue{Code: rich.CodeParseError, Path: "/e"},
	)
	msg := iss.Error()
	for _, want := range []string{"invalid_type at /a", "missing_field at /b", "unknown_key at /c"} {
		if !strings.Contains(msg, want) {
			t.Fatalf("expected %q in %q", want, msg)
		}
	}
	if strings.Contains(msg, "/d") {
		t.Fatalf("expected summary to stop after three issues, got %q", msg)
	}
	if !strings.Contains(msg, "(total 5)") {
		t.Fatalf("expected total count, got %q", msg)
	}
}

func TestAsIssues(t *testing.T) {
	if _, ok := rich.AsIssues(nil); ok {
		t.Fatalf("nil error must not convert")
	}
	if _, ok := rich.AsIssues(errors.New("boom")); ok {
		t.Fatalf("plain error must not convert")
	}
	orig := rich.Issues{rich.Issue{Code: rich.CodeParseError, Path: "/"}}
	got, ok := rich.AsIssues(error(orig))
	if !ok || len(got) != 1 || got[0].Code != rich.CodeParseError {
		t.Fatalf("expected round trip, got %v (ok=%v)", got, ok)
	}
}

func TestAppendIssues_InitializesNil(t *testing.T) {
	iss := rich.AppendIssues(nil)
	if iss == nil {
		t.Fatalf("expected initialized slice")
	}
	iss = rich.AppendIssues(iss, rich.Issue{Code: rich.CodeTruncated, Path: "/"})
	if len(iss) != 1 {
		t.Fatalf("expected one issue, got %d", len(iss))
	}
}

func TestIssueAt(t *testing.T) {
	it := rich.IssueAt("/items/2", rich.CodeInvalidType, "boom", map[string]any{"expected": "number"})
	if it.Path != "/items/2" || it.Code != rich.CodeInvalidType || it.Params["expected"] != "number" {
		t.Fatalf("unexpected issue: %#v", it)
	}
}
