package rich

import (
	"errors"

	eng "github.com/demurgos/rich/internal/engine"
)

// IssueAt creates an Issue at the given path with provided code, message and
// params map. This is a convenience helper to improve readability at call
// sites with many parameters.
func IssueAt(path, code, msg string, params map[string]any) Issue {
	return Issue{Path: path, Code: code, Message: msg, Params: params}
}

// singleIssue wraps one issue at the root path into an Issues error.
func singleIssue(code, msg string) Issues {
	return Issues{Issue{Path: "/", Code: code, Message: msg, Offset: -1}}
}

// toIssues converts an arbitrary decode error into Issues, unwrapping
// engine-level issues and passing through already-shaped Issues unchanged.
func toIssues(err error, off int64) Issues {
	if err == nil {
		return nil
	}
	if iss, ok := AsIssues(err); ok {
		return iss
	}
	var ie eng.IssueError
	if errors.As(err, &ie) {
		return Issues{Issue{Path: ie.Path, Code: ie.Code, Message: ie.Message, Cause: err, Offset: off}}
	}
	return Issues{Issue{Path: "/", Code: CodeParseError, Message: err.Error(), Cause: err, Offset: off}}
}

// rebaseIssues prefixes child issue paths with the JSON Pointer of the member
// that produced them.
func rebaseIssues(base string, err error) Issues {
	iss, ok := AsIssues(err)
	if !ok {
		return Issues{Issue{Path: base, Code: CodeParseError, Message: err.Error(), Cause: err, Offset: -1}}
	}
	out := make(Issues, 0, len(iss))
	for _, it := range iss {
		p := it.Path
		switch {
		case p == "" || p == "/":
			p = base
		case p[0] == '/':
			p = base + p
		default:
			p = base + "/" + p
		}
		it.Path = p
		out = append(out, it)
	}
	return out
}
