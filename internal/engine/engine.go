package engine

// Kind represents token kinds from a generic source.
type Kind int

const (
	KindBeginObject Kind = iota
	KindEndObject
	KindBeginArray
	KindEndArray
	KindKey
	KindString
	KindNumber
	KindBool
	KindNull
)

// Token represents a streaming token with approximate input offset.
type Token struct {
	Kind   Kind
	String string
	Number string
	Bool   bool
	Offset int64
}

// TokenSource is a minimal interface required by the engine.
type TokenSource interface {
	NextToken() (Token, error)
	Location() int64
}

// SkipSubtree consumes the remainder of the value whose first token is given.
// Scalars define a single-token subtree; containers are drained until the
// matching end token, tracking nesting depth.
func SkipSubtree(src TokenSource, first Token) error {
	depth := 0
	tok := first
	for {
		switch tok.Kind {
		case KindBeginObject, KindBeginArray:
			depth++
		case KindEndObject, KindEndArray:
			depth--
		}
		if depth <= 0 {
			return nil
		}
		var err error
		tok, err = src.NextToken()
		if err != nil {
			return err
		}
	}
}
