package rich

import (
	"reflect"
	"strings"
)

// CheckMetaDecl validates a metadata type declaration against the projection
// of a value shape. This is the contract a structure-description generator
// must satisfy: for every slot of the value shape, the declaration holds a
// Node wrapping the slot's recursively projected nested shape. The check is
// purely structural and reports every divergence as a CodeMetaShape issue.
func CheckMetaDecl(s Shape, rt reflect.Type) error {
	if rt == nil {
		return metaDeclIssue("", "nil declaration type")
	}
	iss := checkMetaShape(Project(s), rt, "")
	if len(iss) > 0 {
		return iss
	}
	return nil
}

var (
	idType        = reflect.TypeOf(ID(0))
	emptyMetaType = reflect.TypeOf(EmptyMeta{})
	valueMetaType = reflect.TypeOf(ValueMeta{})
)

func checkMetaShape(m MetaShape, rt reflect.Type, path string) Issues {
	switch m.Kind {
	case ShapeScalar:
		if rt != emptyMetaType {
			return metaDeclIssue(path, "expected rich.EmptyMeta, got "+rt.String())
		}
		return nil
	case ShapeDynamic:
		if rt != valueMetaType {
			return metaDeclIssue(path, "expected rich.ValueMeta, got "+rt.String())
		}
		return nil
	case ShapeSeq:
		if rt.Kind() != reflect.Slice {
			return metaDeclIssue(path, "expected a slice of nodes, got "+rt.String())
		}
		return checkNodeSlot(*m.Elem, rt.Elem(), path+"/*")
	case ShapeMap:
		if rt.Kind() != reflect.Map || rt.Key().Kind() != reflect.String {
			return metaDeclIssue(path, "expected a string-keyed map of nodes, got "+rt.String())
		}
		return checkNodeSlot(*m.Elem, rt.Elem(), path+"/*")
	case ShapeStruct:
		if rt.Kind() != reflect.Struct {
			return metaDeclIssue(path, "expected a struct declaration, got "+rt.String())
		}
		var iss Issues
		fields := exportedFields(rt)
		if len(fields) != len(m.Fields) {
			iss = AppendIssues(iss, metaDeclIssue(path, "declaration has a different field count than the projected shape")...)
		}
		for i, mf := range m.Fields {
			if i >= len(fields) {
				break
			}
			sf := fields[i]
			fpath := path + "/" + mf.Name
			if !fieldNameMatches(mf.Name, sf) {
				iss = AppendIssues(iss, metaDeclIssue(fpath, "declaration field "+sf.Name+" does not correspond to slot "+mf.Name)...)
				continue
			}
			iss = AppendIssues(iss, checkNodeSlot(mf.Shape, sf.Type, fpath)...)
		}
		return iss
	case ShapeTuple:
		if rt.Kind() != reflect.Struct {
			return metaDeclIssue(path, "expected a positional struct declaration, got "+rt.String())
		}
		var iss Issues
		fields := exportedFields(rt)
		if len(fields) != len(m.Elems) {
			iss = AppendIssues(iss, metaDeclIssue(path, "declaration has a different slot count than the projected shape")...)
		}
		for i, me := range m.Elems {
			if i >= len(fields) {
				break
			}
			iss = AppendIssues(iss, checkNodeSlot(me, fields[i].Type, path+"/"+fields[i].Name)...)
		}
		return iss
	default:
		return metaDeclIssue(path, "unknown shape kind")
	}
}

// checkNodeSlot verifies that rt is a Node instantiation and recurses into
// its nested declaration.
func checkNodeSlot(m MetaShape, rt reflect.Type, path string) Issues {
	nested, ok := nodeNested(rt)
	if !ok {
		return metaDeclIssue(path, "expected a rich.Node slot, got "+rt.String())
	}
	return checkMetaShape(m, nested, path)
}

// nodeNested unpacks a Node[N] instantiation, returning N.
func nodeNested(rt reflect.Type) (reflect.Type, bool) {
	if rt.Kind() != reflect.Struct || rt.NumField() != 2 {
		return nil, false
	}
	f0, f1 := rt.Field(0), rt.Field(1)
	if f0.Name != "ID" || f0.Type != idType || f1.Name != "Nested" {
		return nil, false
	}
	return f1.Type, true
}

func exportedFields(rt reflect.Type) []reflect.StructField {
	out := make([]reflect.StructField, 0, rt.NumField())
	for i := 0; i < rt.NumField(); i++ {
		if sf := rt.Field(i); sf.IsExported() {
			out = append(out, sf)
		}
	}
	return out
}

// fieldNameMatches compares a shape slot name against a declaration field,
// honoring the repository-wide key resolution (rich/json tags first) and
// falling back to a case- and underscore-insensitive comparison for
// generator-emitted Go names.
func fieldNameMatches(slot string, sf reflect.StructField) bool {
	if key := ResolveStructKey(sf); key == slot {
		return true
	}
	fold := func(s string) string {
		return strings.ToLower(strings.ReplaceAll(s, "_", ""))
	}
	return fold(slot) == fold(sf.Name)
}

func metaDeclIssue(path, msg string) Issues {
	return Issues{Issue{Path: normalizePath(path), Code: CodeMetaShape, Message: msg, Offset: -1}}
}
