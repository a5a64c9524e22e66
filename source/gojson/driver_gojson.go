//go:build gojson

package gojson

import (
	"bytes"
	"io"
	"strconv"

	j "github.com/goccy/go-json"

	rich "github.com/demurgos/rich"
	eng "github.com/demurgos/rich/internal/engine"
)

// Driver returns a rich.JSONDriver backed by goccy/go-json.
func Driver() rich.JSONDriver { return driverGoJSON{} }

type driverGoJSON struct{}

func (driverGoJSON) NewReader(r io.Reader) rich.Source {
	return rich.SourceFromEngine(NewReader(r), rich.NumberJSONNumber)
}
func (driverGoJSON) NewBytes(b []byte) rich.Source {
	return rich.SourceFromEngine(NewBytes(b), rich.NumberJSONNumber)
}
func (driverGoJSON) Name() string { return "go-json" }

// ---- engine.TokenSource implementation using go-json Decoder ----

type containerKind int

const (
	kindObject containerKind = iota
	kindArray
)

type frame struct {
	kind         containerKind
	expectingKey bool
}

type source struct {
	dec   *j.Decoder
	stack []frame
}

// NewReader wraps an io.Reader into an engine.TokenSource for JSON using go-json.
func NewReader(r io.Reader) eng.TokenSource {
	dec := j.NewDecoder(r)
	dec.UseNumber()
	return &source{dec: dec}
}

// NewBytes wraps a byte slice into an engine.TokenSource for JSON using go-json.
func NewBytes(b []byte) eng.TokenSource { return NewReader(bytes.NewReader(b)) }

func (s *source) NextToken() (eng.Token, error) {
	tok, err := s.dec.Token()
	if err != nil {
		if err == io.EOF {
			return eng.Token{}, io.EOF
		}
		return eng.Token{}, err
	}
	switch v := tok.(type) {
	case j.Delim:
		switch v {
		case '{':
			s.stack = append(s.stack, frame{kind: kindObject, expectingKey: true})
			return eng.Token{Kind: eng.KindBeginObject, Offset: -1}, nil
		case '[':
			s.stack = append(s.stack, frame{kind: kindArray})
			return eng.Token{Kind: eng.KindBeginArray, Offset: -1}, nil
		case '}':
			s.pop()
			return s.emit(eng.Token{Kind: eng.KindEndObject})
		case ']':
			s.pop()
			return s.emit(eng.Token{Kind: eng.KindEndArray})
		}
	case string:
		if n := len(s.stack); n > 0 {
			top := &s.stack[n-1]
			if top.kind == kindObject && top.expectingKey {
				top.expectingKey = false
				return eng.Token{Kind: eng.KindKey, String: v, Offset: -1}, nil
			}
		}
		return s.emit(eng.Token{Kind: eng.KindString, String: v})
	case bool:
		return s.emit(eng.Token{Kind: eng.KindBool, Bool: v})
	case j.Number:
		return s.emit(eng.Token{Kind: eng.KindNumber, Number: string(v)})
	case float64:
		return s.emit(eng.Token{Kind: eng.KindNumber, Number: strconv.FormatFloat(v, 'g', -1, 64)})
	case nil:
		return s.emit(eng.Token{Kind: eng.KindNull})
	}
	return s.emit(eng.Token{Kind: eng.KindNull})
}

// emit flips the enclosing object frame back to expecting a key after a
// member value completed. go-json exposes no input offset, so tokens carry -1.
func (s *source) emit(tok eng.Token) (eng.Token, error) {
	tok.Offset = -1
	if n := len(s.stack); n > 0 {
		top := &s.stack[n-1]
		if top.kind == kindObject && !top.expectingKey {
			top.expectingKey = true
		}
	}
	return tok, nil
}

func (s *source) pop() {
	if n := len(s.stack); n > 0 {
		s.stack = s.stack[:n-1]
	}
}

func (s *source) Location() int64 { return -1 }
