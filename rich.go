package rich

import (
	"math"
	"strconv"
)

// ID is an opaque, totally ordered token naming one node's metadata. An ID is
// unique within the Scope that minted it and carries no meaning across scopes.
type ID uint64

// Less reports whether id was minted before other within the same Scope.
func (id ID) Less(other ID) bool { return id < other }

func (id ID) String() string { return "#" + strconv.FormatUint(uint64(id), 10) }

// EmptyMeta is the nested metadata of scalar nodes: only the wrapping Node's
// identifier carries information.
type EmptyMeta struct{}

// Rich pairs a value with the metadata describing it. It is the unit of
// exchange between every component of this package and places no constraints
// on either side.
type Rich[T, M any] struct {
	Value T
	Meta  M
}

// MakeRich attaches existing metadata to a value.
func MakeRich[T, M any](value T, meta M) Rich[T, M] { return Rich[T, M]{Value: value, Meta: meta} }

// Node is wrapped node metadata: the node's own identifier plus the metadata
// of its children. The nested shape follows the value shape (EmptyMeta for
// scalars, ValueMeta for dynamically-typed nodes, generated declarations for
// domain records).
type Node[N any] struct {
	ID     ID
	Nested N
}

// Scope mints identifiers for one decoding or splitting session. Every
// identifier is strictly greater than all identifiers previously minted by
// the same scope; no identifier is ever produced outside Attach and Wrap.
//
// A Scope is not safe for concurrent use. Use one scope per decode; ids from
// different scopes are not comparable.
type Scope struct {
	next uint64
}

// NewScope returns a scope whose first minted identifier is 0.
func NewScope() *Scope { return &Scope{} }

// mint consumes exactly one identifier. The cursor saturates at the
// representable maximum instead of wrapping; an exhausted scope keeps
// returning the maximum identifier rather than failing.
func (s *Scope) mint() ID {
	id := s.next
	if s.next != math.MaxUint64 {
		s.next++
	}
	return ID(id)
}

// Attach pairs v with a freshly minted identifier.
func Attach[T any](s *Scope, v T) Rich[T, ID] {
	return Rich[T, ID]{Value: v, Meta: s.mint()}
}

// Wrap elevates an existing (value, nested metadata) pair into a wrapped
// node, minting the node's own identifier. Because children are attached or
// wrapped before their parent, identifiers are assigned in post-order.
func Wrap[T, N any](s *Scope, r Rich[T, N]) Rich[T, Node[N]] {
	return Rich[T, Node[N]]{Value: r.Value, Meta: Node[N]{ID: s.mint(), Nested: r.Meta}}
}
