package rich

import (
	"reflect"
	"strings"
)

// ResolveStructKey applies the repository-wide rule to resolve a struct
// field's external key used by record decoders and shape declarations.
// Priority: rich:"name=..." > json tag name > field name; "-" disables the
// field.
func ResolveStructKey(sf reflect.StructField) string {
	if gt := sf.Tag.Get("rich"); gt != "" {
		for _, p := range strings.Split(gt, ",") {
			p = strings.TrimSpace(p)
			if strings.HasPrefix(p, "name=") {
				return strings.TrimPrefix(p, "name=")
			}
		}
	}
	if jt := sf.Tag.Get("json"); jt != "" {
		if jt == "-" {
			return "-"
		}
		if i := strings.IndexByte(jt, ','); i >= 0 {
			return jt[:i]
		}
		return jt
	}
	return sf.Name
}

// FieldNameOf returns the external key name for a top-level field of S
// selected by selector, e.g.:
//
//	FieldNameOf[Mascot](func(m *Mascot) *bool { return &m.IsCrab })
//
// The selector must return the address of a top-level field, guaranteeing a
// compile-time error if the field is renamed or removed.
func FieldNameOf[S any, F any](selector func(*S) *F) string {
	if selector == nil {
		panic("rich.FieldNameOf: selector must not be nil")
	}
	var zero S
	fp := reflect.ValueOf(selector(&zero)).Pointer()
	rv := reflect.ValueOf(&zero).Elem()
	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		if !sf.IsExported() {
			continue
		}
		fv := rv.Field(i)
		if fv.CanAddr() && fv.Addr().Pointer() == fp {
			name := ResolveStructKey(sf)
			if name == "" || name == "-" {
				panic("rich.FieldNameOf: selected field is not exported or disabled")
			}
			return name
		}
	}
	panic("rich.FieldNameOf: selector must return address of a top-level field")
}
