package rich

import (
	"encoding/json"
	"sort"
	"strconv"
)

// emptyMetaNode is the canonical sentinel used when a value child has no
// metadata counterpart. Lookups stay total; VerifyMeta exists for callers
// that want shape divergences reported instead of masked.
var emptyMetaNode = Node[ValueMeta]{}

// ValueView is a read-only, non-owning cursor over one (value, metadata)
// node pair. Views share the underlying trees and may be freely copied, but
// must not outlive them.
type ValueView struct {
	value Value
	meta  Node[ValueMeta]
}

// ViewOf borrows a view over a decoded pair.
func ViewOf(r *Rich[Value, Node[ValueMeta]]) ValueView {
	return ValueView{value: r.Value, meta: r.Meta}
}

// ID returns this node's own identifier (the union-node identifier).
func (v ValueView) ID() ID { return v.meta.ID }

// Value returns the viewed value node.
func (v ValueView) Value() Value { return v.value }

// Meta returns the viewed metadata node.
func (v ValueView) Meta() Node[ValueMeta] { return v.meta }

// VariantView is the tagged result of Visit: one concrete view per supported
// value variant. Callers dispatch with a type switch.
type VariantView interface{ variantView() }

// NullView is the scalar view over a null node.
type NullView struct {
	meta Node[EmptyMeta]
}

// BoolView is the scalar view over a boolean node.
type BoolView struct {
	value bool
	meta  Node[EmptyMeta]
}

// NumberView is the scalar view over a number node.
type NumberView struct {
	value json.Number
	meta  Node[EmptyMeta]
}

// StringView is the scalar view over a string node.
type StringView struct {
	value string
	meta  Node[EmptyMeta]
}

// ArrayView navigates an array node and its metadata in lockstep.
type ArrayView struct {
	values []Value
	metas  []Node[ValueMeta]
}

// ObjectView navigates an object node and its metadata in lockstep.
type ObjectView struct {
	value  Value
	fields map[string]Node[ValueMeta]
}

func (NullView) variantView()   {}
func (BoolView) variantView()   {}
func (NumberView) variantView() {}
func (StringView) variantView() {}
func (ArrayView) variantView()  {}
func (ObjectView) variantView() {}

// ID returns the raw primitive's identifier.
func (n NullView) ID() ID { return n.meta.ID }

// ID returns the raw primitive's identifier.
func (b BoolView) ID() ID { return b.meta.ID }

// Bool returns the primitive value.
func (b BoolView) Bool() bool { return b.value }

// ID returns the raw primitive's identifier.
func (n NumberView) ID() ID { return n.meta.ID }

// Number returns the primitive value.
func (n NumberView) Number() json.Number { return n.value }

// ID returns the raw primitive's identifier.
func (s StringView) ID() ID { return s.meta.ID }

// Text returns the primitive value.
func (s StringView) Text() string { return s.value }

// Visit dispatches to the view matching the value's active variant. An
// unknown variant is a defect and yields a CodeUnsupportedVariant error, not
// a silent coercion. When the metadata arm does not match the value's
// variant, the arm-level sentinel is substituted.
func (v ValueView) Visit() (VariantView, error) {
	m := v.meta.Nested
	switch v.value.Kind() {
	case KindNull:
		var inner Node[EmptyMeta]
		if m.Kind() == KindNull {
			inner = m.Scalar()
		}
		return NullView{meta: inner}, nil
	case KindBool:
		var inner Node[EmptyMeta]
		if m.Kind() == KindBool {
			inner = m.Scalar()
		}
		return BoolView{value: v.value.Bool(), meta: inner}, nil
	case KindNumber:
		var inner Node[EmptyMeta]
		if m.Kind() == KindNumber {
			inner = m.Scalar()
		}
		return NumberView{value: v.value.Number(), meta: inner}, nil
	case KindString:
		var inner Node[EmptyMeta]
		if m.Kind() == KindString {
			inner = m.Scalar()
		}
		return StringView{value: v.value.Text(), meta: inner}, nil
	case KindArray:
		var metas []Node[ValueMeta]
		if m.Kind() == KindArray {
			metas = m.Items()
		}
		return ArrayView{values: v.value.Items(), metas: metas}, nil
	case KindObject:
		var fields map[string]Node[ValueMeta]
		if m.Kind() == KindObject {
			fields = m.fields
		}
		return ObjectView{value: v.value, fields: fields}, nil
	default:
		return nil, Issues{Issue{Path: "/", Code: CodeUnsupportedVariant, Message: "no view for variant " + v.value.Kind().String(), Offset: -1}}
	}
}

// Array is a convenience dispatch; ok is false when the node is not an array.
func (v ValueView) Array() (ArrayView, bool) {
	vv, err := v.Visit()
	if err != nil {
		return ArrayView{}, false
	}
	av, ok := vv.(ArrayView)
	return av, ok
}

// Object is a convenience dispatch; ok is false when the node is not an
// object.
func (v ValueView) Object() (ObjectView, bool) {
	vv, err := v.Visit()
	if err != nil {
		return ObjectView{}, false
	}
	ov, ok := vv.(ObjectView)
	return ov, ok
}

// Len returns the element count.
func (a ArrayView) Len() int { return len(a.values) }

// Get pairs the indexed value with the indexed metadata. It returns false
// when the index is out of range of the value sequence; a missing metadata
// entry falls back to the empty-metadata sentinel.
func (a ArrayView) Get(i int) (ValueView, bool) {
	if i < 0 || i >= len(a.values) {
		return ValueView{}, false
	}
	meta := emptyMetaNode
	if i < len(a.metas) {
		meta = a.metas[i]
	}
	return ValueView{value: a.values[i], meta: meta}, true
}

// Len returns the member count.
func (o ObjectView) Len() int { return o.value.Len() }

// Keys returns member keys in encounter order.
func (o ObjectView) Keys() []string { return o.value.Keys() }

// Get pairs the keyed value with the keyed metadata. It returns false when
// the key is absent from the value tree; a missing metadata entry falls back
// to the empty-metadata sentinel.
func (o ObjectView) Get(key string) (ValueView, bool) {
	f, ok := o.value.Field(key)
	if !ok {
		return ValueView{}, false
	}
	meta, ok := o.fields[key]
	if !ok {
		meta = emptyMetaNode
	}
	return ValueView{value: f, meta: meta}, true
}

// VerifyMeta checks that the metadata tree mirrors the value tree exactly:
// same variant tags, same sequence lengths, same key sets, at every depth.
// It returns Issues (CodeMetaShape) describing every divergence, or nil.
// This is the strict counterpart of the lenient sentinel fallback used by
// view lookups.
func VerifyMeta(v Value, m Node[ValueMeta]) error {
	iss := verifyMeta(v, m.Nested, "")
	if len(iss) > 0 {
		return iss
	}
	return nil
}

func verifyMeta(v Value, m ValueMeta, path string) Issues {
	var iss Issues
	if v.Kind() != m.Kind() {
		return Issues{Issue{
			Path:    normalizePath(path),
			Code:    CodeMetaShape,
			Message: "metadata variant " + m.Kind().String() + " does not match value variant " + v.Kind().String(),
			Offset:  -1,
			Params:  map[string]any{"value": v.Kind().String(), "meta": m.Kind().String()},
		}}
	}
	switch v.Kind() {
	case KindArray:
		items := m.Items()
		if len(items) != v.Len() {
			iss = AppendIssues(iss, Issue{
				Path:    normalizePath(path),
				Code:    CodeMetaShape,
				Message: "metadata sequence length " + strconv.Itoa(len(items)) + " does not match value length " + strconv.Itoa(v.Len()),
				Offset:  -1,
			})
		}
		for i, child := range v.Items() {
			if i >= len(items) {
				break
			}
			iss = AppendIssues(iss, verifyMeta(child, items[i].Nested, path+"/"+strconv.Itoa(i))...)
		}
	case KindObject:
		for _, k := range v.Keys() {
			child, _ := v.Field(k)
			cm, ok := m.Field(k)
			if !ok {
				iss = AppendIssues(iss, Issue{Path: normalizePath(path + "/" + k), Code: CodeMetaShape, Message: "missing metadata entry", Offset: -1})
				continue
			}
			iss = AppendIssues(iss, verifyMeta(child, cm.Nested, path+"/"+k)...)
		}
		if m.FieldCount() > v.Len() {
			var extras []string
			for k := range m.fields {
				if _, ok := v.Field(k); !ok {
					extras = append(extras, k)
				}
			}
			sort.Strings(extras)
			for _, k := range extras {
				iss = AppendIssues(iss, Issue{Path: normalizePath(path + "/" + k), Code: CodeMetaShape, Message: "metadata entry without value", Offset: -1})
			}
		}
	}
	return iss
}

func normalizePath(p string) string {
	if p == "" {
		return "/"
	}
	return p
}
