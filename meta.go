package rich

// ValueMeta is the metadata union for dynamically-typed values. Its active
// tag always matches the tag of the Value it describes; a divergence is an
// upstream defect, surfaced by VerifyMeta.
//
// Scalar arms keep the inner primitive-level wrapped metadata (the raw
// scalar's own identifier); array and object arms mirror the value's
// children, each child wrapped with its union-node identifier.
type ValueMeta struct {
	kind   ValueKind
	scalar Node[EmptyMeta]
	items  []Node[ValueMeta]
	fields map[string]Node[ValueMeta]
}

// ScalarMeta builds the metadata arm for a null/bool/number/string node.
func ScalarMeta(kind ValueKind, inner Node[EmptyMeta]) ValueMeta {
	return ValueMeta{kind: kind, scalar: inner}
}

// ArrayMeta builds the metadata arm for an array node from child metadata in
// element order.
func ArrayMeta(items []Node[ValueMeta]) ValueMeta {
	return ValueMeta{kind: KindArray, items: items}
}

// ObjectMeta builds the metadata arm for an object node keyed like the value.
func ObjectMeta(fields map[string]Node[ValueMeta]) ValueMeta {
	return ValueMeta{kind: KindObject, fields: fields}
}

// Kind reports which value variant this metadata describes.
func (m ValueMeta) Kind() ValueKind { return m.kind }

// Scalar returns the inner primitive-level metadata of a scalar arm.
func (m ValueMeta) Scalar() Node[EmptyMeta] { return m.scalar }

// Items returns the array arm children. The slice is shared, not copied.
func (m ValueMeta) Items() []Node[ValueMeta] { return m.items }

// Item looks up the metadata of the array child at index i.
func (m ValueMeta) Item(i int) (Node[ValueMeta], bool) {
	if i < 0 || i >= len(m.items) {
		return Node[ValueMeta]{}, false
	}
	return m.items[i], true
}

// Field looks up the metadata of the object member at key.
func (m ValueMeta) Field(key string) (Node[ValueMeta], bool) {
	f, ok := m.fields[key]
	return f, ok
}

// FieldCount returns the number of object arm entries.
func (m ValueMeta) FieldCount() int { return len(m.fields) }
