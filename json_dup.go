package rich

import (
	"io"

	eng "github.com/demurgos/rich/internal/engine"
)

// DetectDuplicateKeys detects duplicate object keys in a JSON byte slice
// without attaching metadata. The implementation delegates to internal/engine.
func DetectDuplicateKeys(data []byte, onDup Severity, maxIssues int) (Issues, error) {
	si, err := eng.DetectJSONDuplicateKeysBytes(data, toEngineDup(onDup), maxIssues)
	if err != nil {
		return nil, err
	}
	return fromEngineIssues(si), nil
}

// DetectDuplicateKeysReader detects duplicate object keys from an io.Reader.
// The reader is consumed fully.
func DetectDuplicateKeysReader(r io.Reader, onDup Severity, maxIssues int) (Issues, error) {
	si, err := eng.DetectJSONDuplicateKeysReader(r, toEngineDup(onDup), maxIssues)
	if err != nil {
		return nil, err
	}
	return fromEngineIssues(si), nil
}

func toEngineDup(s Severity) eng.DuplicateStrictness {
	switch s {
	case Error:
		return eng.DupError
	case Warn:
		return eng.DupWarn
	default:
		return eng.DupIgnore
	}
}

func fromEngineIssues(si []eng.SimpleIssue) Issues {
	var iss Issues
	for _, s := range si {
		iss = AppendIssues(iss, Issue{Code: s.Code, Path: s.Path, Message: s.Message, Offset: -1})
	}
	return iss
}
