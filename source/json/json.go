package json

import (
	"bytes"
	"encoding/json"
	"io"
	"strconv"

	eng "github.com/demurgos/rich/internal/engine"
)

type containerKind int

const (
	kindObject containerKind = iota
	kindArray
)

// frame tracks whether the enclosing object expects a key next. Duplicate key
// detection is handled by the enforcement layer, not here.
type frame struct {
	kind         containerKind
	expectingKey bool
}

type jsonSource struct {
	dec        *json.Decoder
	stack      []frame
	lastOffset int64
}

// NewReader wraps an io.Reader into an engine.TokenSource for JSON.
func NewReader(r io.Reader) eng.TokenSource {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	return &jsonSource{dec: dec, lastOffset: -1}
}

// NewBytes wraps a byte slice into an engine.TokenSource for JSON.
func NewBytes(b []byte) eng.TokenSource { return NewReader(bytes.NewReader(b)) }

func (s *jsonSource) NextToken() (eng.Token, error) {
	tok, err := s.dec.Token()
	if err != nil {
		if err == io.EOF {
			return eng.Token{}, io.EOF
		}
		return eng.Token{}, err
	}
	s.lastOffset = s.dec.InputOffset()

	switch v := tok.(type) {
	case json.Delim:
		switch v {
		case '{':
			s.stack = append(s.stack, frame{kind: kindObject, expectingKey: true})
			return s.emit(eng.Token{Kind: eng.KindBeginObject}, false)
		case '[':
			s.stack = append(s.stack, frame{kind: kindArray})
			return s.emit(eng.Token{Kind: eng.KindBeginArray}, false)
		case '}':
			s.pop()
			return s.emit(eng.Token{Kind: eng.KindEndObject}, true)
		case ']':
			s.pop()
			return s.emit(eng.Token{Kind: eng.KindEndArray}, true)
		}
	case string:
		if n := len(s.stack); n > 0 {
			top := &s.stack[n-1]
			if top.kind == kindObject && top.expectingKey {
				top.expectingKey = false
				return s.emit(eng.Token{Kind: eng.KindKey, String: v}, false)
			}
		}
		return s.emit(eng.Token{Kind: eng.KindString, String: v}, true)
	case bool:
		return s.emit(eng.Token{Kind: eng.KindBool, Bool: v}, true)
	case json.Number:
		return s.emit(eng.Token{Kind: eng.KindNumber, Number: string(v)}, true)
	case float64:
		return s.emit(eng.Token{Kind: eng.KindNumber, Number: formatFloat(v)}, true)
	case nil:
		return s.emit(eng.Token{Kind: eng.KindNull}, true)
	}
	return s.emit(eng.Token{Kind: eng.KindNull}, true)
}

// emit stamps the token offset and, when the token completes a member value,
// flips the enclosing object frame back to expecting a key.
func (s *jsonSource) emit(tok eng.Token, closesValue bool) (eng.Token, error) {
	tok.Offset = s.lastOffset
	if closesValue {
		if n := len(s.stack); n > 0 {
			top := &s.stack[n-1]
			if top.kind == kindObject && !top.expectingKey {
				top.expectingKey = true
			}
		}
	}
	return tok, nil
}

func (s *jsonSource) pop() {
	if n := len(s.stack); n > 0 {
		s.stack = s.stack[:n-1]
	}
}

func (s *jsonSource) Location() int64 { return s.lastOffset }

func formatFloat(f float64) string { return strconv.FormatFloat(f, 'g', -1, 64) }
