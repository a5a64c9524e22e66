package rich

// Splitter is the contract for statically-shaped values whose internal
// representation carries inline (value, identifier) pairs per field.
// SplitMeta strips the inline identifiers out, returning the pure value and
// a metadata tree whose shape equals the Shape Projection prediction for the
// type. Implementations split children bottom-up and mint no identifiers.
//
// A structure-description generator targets this contract: for a domain type
// it emits the rich representation, the metadata declaration (validated by
// CheckMetaDecl) and the SplitMeta wiring between them.
type Splitter[V, M any] interface {
	SplitMeta() Rich[V, M]
}

// SplitLeaf relocates a leaf's inline identifier into wrapped empty
// metadata. Primitive leaves split trivially: the value passes through and
// only the identifier moves.
func SplitLeaf[T any](r Rich[T, ID]) Rich[T, Node[EmptyMeta]] {
	return Rich[T, Node[EmptyMeta]]{Value: r.Value, Meta: Node[EmptyMeta]{ID: r.Meta}}
}

// WrapSplit wraps an already-split (pure value, nested metadata) pair with
// the parent's own inline identifier. No identifier is minted; the operation
// is pure.
func WrapSplit[V, M any](id ID, s Rich[V, M]) Rich[V, Node[M]] {
	return Rich[V, Node[M]]{Value: s.Value, Meta: Node[M]{ID: id, Nested: s.Meta}}
}

// DeepSplit splits a composite node carrying an inline identifier. It is
// WrapSplit composed with the node's own SplitMeta; type arguments are
// explicit because Go does not infer them from the interface constraint.
func DeepSplit[V, M any](id ID, s Splitter[V, M]) Rich[V, Node[M]] {
	return WrapSplit(id, s.SplitMeta())
}

// SplitValue separates a decoded dynamic pair into its pure value tree and
// its metadata tree. Dynamic decoding already keeps the trees apart, so no
// traversal happens; the metadata shape equals the projection of
// DynamicShape.
func SplitValue(r Rich[Value, Node[ValueMeta]]) (Value, Node[ValueMeta]) {
	return r.Value, r.Meta
}
