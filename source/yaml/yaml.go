// Package yaml exposes a YAML document as an engine.TokenSource so that YAML
// input gets provenance identifiers through the same attachment protocol as
// JSON. The document is parsed into a yaml.Node tree first (anchors and
// aliases need the whole document), then walked in encounter order.
package yaml

import (
	"errors"
	"io"
	"strconv"

	"gopkg.in/yaml.v3"

	eng "github.com/demurgos/rich/internal/engine"
)

// step is one pending emission: either a literal token or a node to expand.
type step struct {
	tok  *eng.Token
	node *yaml.Node
	key  bool // node is a mapping key
}

type yamlSource struct {
	steps []step // LIFO
	err   error
}

// NewBytes parses a YAML document and wraps it as an engine.TokenSource.
// Parse errors surface on the first NextToken call.
func NewBytes(b []byte) eng.TokenSource {
	var doc yaml.Node
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return &yamlSource{err: err}
	}
	root := &doc
	if doc.Kind == yaml.DocumentNode {
		if len(doc.Content) == 0 {
			return &yamlSource{}
		}
		root = doc.Content[0]
	}
	if root.Kind == 0 {
		return &yamlSource{}
	}
	return &yamlSource{steps: []step{{node: root}}}
}

// NewReader consumes the reader fully and wraps the bytes.
func NewReader(r io.Reader) eng.TokenSource {
	b, err := io.ReadAll(r)
	if err != nil {
		return &yamlSource{err: err}
	}
	return NewBytes(b)
}

func (s *yamlSource) NextToken() (eng.Token, error) {
	if s.err != nil {
		return eng.Token{}, s.err
	}
	for {
		n := len(s.steps)
		if n == 0 {
			return eng.Token{}, io.EOF
		}
		st := s.steps[n-1]
		s.steps = s.steps[:n-1]
		if st.tok != nil {
			return *st.tok, nil
		}
		tok, err := s.expand(st.node, st.key)
		if err != nil {
			s.err = err
			return eng.Token{}, err
		}
		return tok, nil
	}
}

func (s *yamlSource) expand(n *yaml.Node, asKey bool) (eng.Token, error) {
	for n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	if asKey {
		if n.Kind != yaml.ScalarNode {
			return eng.Token{}, errors.New("yaml: unsupported non-scalar mapping key")
		}
		// scalar keys are coerced to their text
		return eng.Token{Kind: eng.KindKey, String: n.Value, Offset: -1}, nil
	}
	switch n.Kind {
	case yaml.MappingNode:
		// content holds key/value pairs in document order
		s.push(step{tok: &eng.Token{Kind: eng.KindEndObject, Offset: -1}})
		for i := len(n.Content) - 2; i >= 0; i -= 2 {
			s.push(step{node: n.Content[i+1]})
			s.push(step{node: n.Content[i], key: true})
		}
		return eng.Token{Kind: eng.KindBeginObject, Offset: -1}, nil
	case yaml.SequenceNode:
		s.push(step{tok: &eng.Token{Kind: eng.KindEndArray, Offset: -1}})
		for i := len(n.Content) - 1; i >= 0; i-- {
			s.push(step{node: n.Content[i]})
		}
		return eng.Token{Kind: eng.KindBeginArray, Offset: -1}, nil
	case yaml.ScalarNode:
		return scalarToken(n)
	default:
		return eng.Token{}, errors.New("yaml: unsupported node kind " + strconv.Itoa(int(n.Kind)))
	}
}

func (s *yamlSource) push(st step) { s.steps = append(s.steps, st) }

func scalarToken(n *yaml.Node) (eng.Token, error) {
	switch n.Tag {
	case "!!bool":
		b, err := strconv.ParseBool(normalizeYAMLBool(n.Value))
		if err != nil {
			return eng.Token{}, err
		}
		return eng.Token{Kind: eng.KindBool, Bool: b, Offset: -1}, nil
	case "!!int", "!!float":
		return eng.Token{Kind: eng.KindNumber, Number: n.Value, Offset: -1}, nil
	case "!!null":
		return eng.Token{Kind: eng.KindNull, Offset: -1}, nil
	default:
		return eng.Token{Kind: eng.KindString, String: n.Value, Offset: -1}, nil
	}
}

// normalizeYAMLBool maps the YAML 1.1 spellings yaml.v3 resolves to !!bool
// onto strconv-compatible literals.
func normalizeYAMLBool(v string) string {
	switch v {
	case "yes", "Yes", "YES", "on", "On", "ON":
		return "true"
	case "no", "No", "NO", "off", "Off", "OFF":
		return "false"
	}
	return v
}

func (s *yamlSource) Location() int64 { return -1 }
