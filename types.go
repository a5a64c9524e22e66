package rich

// UnknownPolicy controls how unknown keys are handled by record decoders.
type UnknownPolicy int

const (
	UnknownStrict UnknownPolicy = iota // Reject unknown keys with an error.
	UnknownStrip                       // Skip unknown keys and their subtrees.
)

// NumberMode dictates how numbers are interpreted by a Source.
type NumberMode int

const (
	NumberFloat64    NumberMode = iota // Fast mode (with potential precision loss).
	NumberJSONNumber                   // Preserve json.Number text.
)

// Strictness configures enforcement for dynamic documents.
type Strictness struct {
	OnDuplicateKey Severity // Warn or Error (duplicate object keys).
	AllowNaN       bool     // Permit non-finite numbers (NaN/Inf spellings, YAML).
}

// Severity expresses the severity level for issues.
type Severity int

const (
	Ignore Severity = iota
	Warn
	Error
)

// ParseOpt bundles decoding options shared by the attachment entry points.
type ParseOpt struct {
	Strictness Strictness
	MaxDepth   int
	MaxBytes   int64
	FailFast   bool
}
