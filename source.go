package rich

import (
	"io"
	"math"
	"strconv"
	"strings"
	"sync"

	eng "github.com/demurgos/rich/internal/engine"
	jsonsrc "github.com/demurgos/rich/source/json"
	yamlsrc "github.com/demurgos/rich/source/yaml"
)

// tokenKind enumerates token kinds of the push-based decode protocol.
type tokenKind int

const (
	_tokenBeginObject tokenKind = iota
	_tokenEndObject
	_tokenBeginArray
	_tokenEndArray
	_tokenKey
	_tokenString
	_tokenNumber
	_tokenBool
	_tokenNull
)

// Exported aliases so external sources can reference token kinds without
// relying on unstable APIs. The alias and constants mirror the internal
// tokenKind.
type TokenKind = tokenKind

const (
	TokenBeginObject TokenKind = _tokenBeginObject
	TokenEndObject   TokenKind = _tokenEndObject
	TokenBeginArray  TokenKind = _tokenBeginArray
	TokenEndArray    TokenKind = _tokenEndArray
	TokenKey         TokenKind = _tokenKey
	TokenString      TokenKind = _tokenString
	TokenNumber      TokenKind = _tokenNumber
	TokenBool        TokenKind = _tokenBool
	TokenNull        TokenKind = _tokenNull
)

// Token describes a token in the input stream. Offset records the byte
// position when known (-1 otherwise).
type Token struct {
	Kind   tokenKind
	String string // Stored for key/string tokens.
	Number string // Stored as text; NumberMode controls downstream interpretation.
	Bool   bool
	Offset int64
}

// Source abstracts over polymorphic input sources. The attachment protocol
// consumes one value from a Source and may be invoked reentrantly for nested
// values.
type Source interface {
	NextToken() (Token, error)
	NumberMode() NumberMode
	Location() int64 // byte offset; -1 if unknown
}

// JSONDriver converts JSON input into a Source via a pluggable SPI. The
// default implementation is based on encoding/json and may be swapped with
// SetJSONDriver.
type JSONDriver interface {
	NewReader(r io.Reader) Source
	NewBytes(b []byte) Source
	Name() string
}

var (
	jsonDriverMu      sync.RWMutex
	currentJSONDriver JSONDriver = defaultJSONDriver{}
)

// SetJSONDriver replaces the global JSON driver; nil values are ignored.
func SetJSONDriver(d JSONDriver) {
	if d == nil {
		return
	}
	jsonDriverMu.Lock()
	currentJSONDriver = d
	jsonDriverMu.Unlock()
}

// UseDefaultJSONDriver restores the default encoding/json-backed driver.
func UseDefaultJSONDriver() {
	jsonDriverMu.Lock()
	currentJSONDriver = defaultJSONDriver{}
	jsonDriverMu.Unlock()
}

func getJSONDriver() JSONDriver {
	jsonDriverMu.RLock()
	d := currentJSONDriver
	jsonDriverMu.RUnlock()
	return d
}

// defaultJSONDriver wraps the encoding/json implementation.
type defaultJSONDriver struct{}

func (defaultJSONDriver) NewReader(r io.Reader) Source {
	return &engineSourceAdapter{inner: jsonsrc.NewReader(r), numMode: NumberJSONNumber}
}
func (defaultJSONDriver) NewBytes(b []byte) Source {
	return &engineSourceAdapter{inner: jsonsrc.NewBytes(b), numMode: NumberJSONNumber}
}
func (defaultJSONDriver) Name() string { return "encoding/json" }

// JSONReader wraps an io.Reader as a JSON Source.
func JSONReader(r io.Reader) Source { return getJSONDriver().NewReader(r) }

// JSONBytes wraps a byte slice as a JSON Source.
func JSONBytes(b []byte) Source { return getJSONDriver().NewBytes(b) }

// YAMLReader wraps an io.Reader as a YAML Source. The reader is consumed
// fully before the first token is produced.
func YAMLReader(r io.Reader) Source {
	return &engineSourceAdapter{inner: yamlsrc.NewReader(r), numMode: NumberJSONNumber}
}

// YAMLBytes wraps a byte slice as a YAML Source.
func YAMLBytes(b []byte) Source {
	return &engineSourceAdapter{inner: yamlsrc.NewBytes(b), numMode: NumberJSONNumber}
}

// SourceFromEngine wraps an engine.TokenSource as a rich.Source. Callers
// choose the NumberMode to inherit subtree context.
func SourceFromEngine(inner eng.TokenSource, mode NumberMode) Source {
	return &engineSourceAdapter{inner: inner, numMode: mode}
}

// EngineTokenSource adapts a public Source back into an engine.TokenSource.
func EngineTokenSource(s Source) eng.TokenSource {
	if ea, ok := s.(*engineSourceAdapter); ok {
		return ea.inner
	}
	return &publicSourceAdapter{inner: s}
}

// EnforceSource wraps a Source with runtime enforcement (duplicate keys,
// depth, bytes) using public options projected to internal engine options.
func EnforceSource(s Source, opt ParseOpt) Source {
	return EnforceSourceWith(s, opt, nil)
}

// EnforceSourceIfNeeded returns the original Source if the options are
// effectively disabled (ignore duplicate keys, zero depth, zero size),
// preventing unnecessary overhead for small inputs.
func EnforceSourceIfNeeded(s Source, opt ParseOpt) Source {
	if opt.Strictness.OnDuplicateKey == Ignore && opt.MaxDepth == 0 && opt.MaxBytes == 0 {
		return s
	}
	return EnforceSource(s, opt)
}

// EnforceSourceWith wraps a Source with runtime enforcement and forwards
// lightweight issues to the provided sink. The sink receives rich.Issue
// values converted from internal engine issues, enabling callers to collect
// duplicate key warnings or truncation notices without importing internal
// packages.
func EnforceSourceWith(s Source, opt ParseOpt, sink func(Issue)) Source {
	var forward func(eng.SimpleIssue)
	if sink != nil {
		forward = func(si eng.SimpleIssue) {
			// Offset is best-effort from the current source location.
			sink(Issue{Path: si.Path, Code: si.Code, Message: si.Message, Offset: s.Location()})
		}
	}
	enforced := eng.WrapWithEnforcement(EngineTokenSource(s), eng.EnforceOptions{
		OnDuplicate: toEngineDup(opt.Strictness.OnDuplicateKey),
		MaxDepth:    opt.MaxDepth,
		MaxBytes:    opt.MaxBytes,
		IssueSink:   forward,
		FailFast:    opt.FailFast,
	})
	return &engineSourceAdapter{inner: enforced, numMode: s.NumberMode()}
}

// guardNonFinite rejects NaN and infinity number tokens. JSON decoders never
// produce them; YAML resolves the .nan/.inf spellings to !!float scalars.
func guardNonFinite(s Source) Source { return &finiteGuard{inner: s} }

type finiteGuard struct{ inner Source }

func (g *finiteGuard) NextToken() (Token, error) {
	tok, err := g.inner.NextToken()
	if err != nil {
		return Token{}, err
	}
	if tok.Kind == _tokenNumber && isNonFinite(tok.Number) {
		return Token{}, singleIssue(CodeParseError, "non-finite number "+tok.Number)
	}
	return tok, nil
}
func (g *finiteGuard) NumberMode() NumberMode { return g.inner.NumberMode() }
func (g *finiteGuard) Location() int64        { return g.inner.Location() }

func isNonFinite(num string) bool {
	t := strings.TrimPrefix(num, "+")
	t = strings.TrimPrefix(t, "-")
	switch strings.ToLower(t) {
	case ".nan", "nan", ".inf", "inf", "infinity":
		return true
	}
	f, err := strconv.ParseFloat(num, 64)
	return err == nil && (math.IsNaN(f) || math.IsInf(f, 0))
}

// WithNumberMode wraps a Source and overrides its NumberMode.
func WithNumberMode(s Source, m NumberMode) Source { return &overrideNumberMode{inner: s, mode: m} }

type overrideNumberMode struct {
	inner Source
	mode  NumberMode
}

func (o *overrideNumberMode) NextToken() (Token, error) { return o.inner.NextToken() }
func (o *overrideNumberMode) NumberMode() NumberMode    { return o.mode }
func (o *overrideNumberMode) Location() int64           { return o.inner.Location() }

type engineSourceAdapter struct {
	inner   eng.TokenSource
	numMode NumberMode
}

func (s *engineSourceAdapter) NextToken() (Token, error) {
	t, err := s.inner.NextToken()
	if err != nil {
		return Token{}, err
	}
	return Token{Kind: fromEngineKind(t.Kind), String: t.String, Number: t.Number, Bool: t.Bool, Offset: t.Offset}, nil
}
func (s *engineSourceAdapter) NumberMode() NumberMode { return s.numMode }
func (s *engineSourceAdapter) Location() int64        { return s.inner.Location() }

// publicSourceAdapter lets externally implemented Sources flow through the
// engine-level enforcement wrappers.
type publicSourceAdapter struct {
	inner Source
}

func (p *publicSourceAdapter) NextToken() (eng.Token, error) {
	t, err := p.inner.NextToken()
	if err != nil {
		return eng.Token{}, err
	}
	return eng.Token{Kind: toEngineKind(t.Kind), String: t.String, Number: t.Number, Bool: t.Bool, Offset: t.Offset}, nil
}
func (p *publicSourceAdapter) Location() int64 { return p.inner.Location() }

func fromEngineKind(k eng.Kind) tokenKind {
	switch k {
	case eng.KindBeginObject:
		return _tokenBeginObject
	case eng.KindEndObject:
		return _tokenEndObject
	case eng.KindBeginArray:
		return _tokenBeginArray
	case eng.KindEndArray:
		return _tokenEndArray
	case eng.KindKey:
		return _tokenKey
	case eng.KindString:
		return _tokenString
	case eng.KindNumber:
		return _tokenNumber
	case eng.KindBool:
		return _tokenBool
	case eng.KindNull:
		return _tokenNull
	default:
		return _tokenNull
	}
}

func toEngineKind(k tokenKind) eng.Kind {
	switch k {
	case _tokenBeginObject:
		return eng.KindBeginObject
	case _tokenEndObject:
		return eng.KindEndObject
	case _tokenBeginArray:
		return eng.KindBeginArray
	case _tokenEndArray:
		return eng.KindEndArray
	case _tokenKey:
		return eng.KindKey
	case _tokenString:
		return eng.KindString
	case _tokenNumber:
		return eng.KindNumber
	case _tokenBool:
		return eng.KindBool
	default:
		return eng.KindNull
	}
}
