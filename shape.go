package rich

import "strings"

// ShapeKind enumerates the shape constructors a value can take.
type ShapeKind int

const (
	ShapeScalar ShapeKind = iota
	ShapeSeq
	ShapeMap
	ShapeStruct
	ShapeTuple
	ShapeDynamic
)

// Shape is a structural descriptor of a value shape. Domain types register
// one descriptor each; the projection of a shape fully determines the
// metadata declaration an external generator must emit for the type.
type Shape struct {
	Kind   ShapeKind
	Name   string       // record name; informational
	Elem   *Shape       // seq/map element shape
	Fields []FieldShape // record fields in declaration order
	Elems  []Shape      // tuple slots in position order
}

// FieldShape is one named record slot.
type FieldShape struct {
	Name  string
	Shape Shape
}

// ScalarShape describes an atomic leaf (bool, number, string, ...).
func ScalarShape() Shape { return Shape{Kind: ShapeScalar} }

// SeqOf describes an ordered sequence of elem.
func SeqOf(elem Shape) Shape { return Shape{Kind: ShapeSeq, Elem: &elem} }

// MapOf describes a string-keyed mapping of elem.
func MapOf(elem Shape) Shape { return Shape{Kind: ShapeMap, Elem: &elem} }

// StructOf describes a named record with fields in declaration order.
func StructOf(name string, fields ...FieldShape) Shape {
	return Shape{Kind: ShapeStruct, Name: name, Fields: fields}
}

// FieldOf builds one record slot.
func FieldOf(name string, shape Shape) FieldShape { return FieldShape{Name: name, Shape: shape} }

// TupleOf describes a positional record.
func TupleOf(elems ...Shape) Shape { return Shape{Kind: ShapeTuple, Elems: elems} }

// DynamicShape describes a dynamically-typed node whose variant is chosen at
// decode time.
func DynamicShape() Shape { return Shape{Kind: ShapeDynamic} }

// MetaShape describes the metadata tree shape mirroring a value shape. Every
// child slot of a composite is implicitly Node-wrapped: it holds the child's
// own identifier around the child's recursively projected nested shape.
type MetaShape struct {
	Kind   ShapeKind
	Name   string
	Elem   *MetaShape
	Fields []MetaFieldShape
	Elems  []MetaShape
}

// MetaFieldShape is one projected record slot.
type MetaFieldShape struct {
	Name  string
	Shape MetaShape
}

// Project derives the metadata shape mirroring s. This is a pure,
// deterministic, structural function: it depends only on the shape, never on
// data. The leaf payload is uniform at every position, so it is not a
// parameter of the projection itself.
func Project(s Shape) MetaShape {
	switch s.Kind {
	case ShapeSeq:
		elem := Project(*s.Elem)
		return MetaShape{Kind: ShapeSeq, Elem: &elem}
	case ShapeMap:
		elem := Project(*s.Elem)
		return MetaShape{Kind: ShapeMap, Elem: &elem}
	case ShapeStruct:
		fields := make([]MetaFieldShape, len(s.Fields))
		for i, f := range s.Fields {
			fields[i] = MetaFieldShape{Name: f.Name, Shape: Project(f.Shape)}
		}
		return MetaShape{Kind: ShapeStruct, Name: s.Name, Fields: fields}
	case ShapeTuple:
		elems := make([]MetaShape, len(s.Elems))
		for i, e := range s.Elems {
			elems[i] = Project(e)
		}
		return MetaShape{Kind: ShapeTuple, Elems: elems}
	case ShapeDynamic:
		return MetaShape{Kind: ShapeDynamic}
	default:
		return MetaShape{Kind: ShapeScalar}
	}
}

// String renders the canonical declaration text. A generator's output for a
// domain type must render equal to Project of the type's registered shape.
func (m MetaShape) String() string {
	b := &strings.Builder{}
	m.render(b)
	return b.String()
}

func (m MetaShape) render(b *strings.Builder) {
	switch m.Kind {
	case ShapeScalar:
		b.WriteString("empty")
	case ShapeSeq:
		b.WriteString("seq(node(")
		m.Elem.render(b)
		b.WriteString("))")
	case ShapeMap:
		b.WriteString("map(node(")
		m.Elem.render(b)
		b.WriteString("))")
	case ShapeStruct:
		b.WriteString("struct ")
		b.WriteString(m.Name)
		b.WriteString("{")
		for i, f := range m.Fields {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(f.Name)
			b.WriteString(": node(")
			f.Shape.render(b)
			b.WriteString(")")
		}
		b.WriteString("}")
	case ShapeTuple:
		b.WriteString("tuple(")
		for i, e := range m.Elems {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString("node(")
			e.render(b)
			b.WriteString(")")
		}
		b.WriteString(")")
	case ShapeDynamic:
		b.WriteString("value")
	}
}
