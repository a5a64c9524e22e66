//go:build !gojson

package gojson

import (
	"io"

	rich "github.com/demurgos/rich"
	jsonsrc "github.com/demurgos/rich/source/json"
)

// Driver returns a stub driver description when gojson tag is not enabled.
// It delegates to the encoding/json-based source directly to avoid recursion.
func Driver() rich.JSONDriver { return stub{} }

type stub struct{}

func (stub) NewReader(r io.Reader) rich.Source {
	return rich.SourceFromEngine(jsonsrc.NewReader(r), rich.NumberJSONNumber)
}
func (stub) NewBytes(b []byte) rich.Source {
	return rich.SourceFromEngine(jsonsrc.NewBytes(b), rich.NumberJSONNumber)
}
func (stub) Name() string { return "encoding/json (gojson stub)" }
