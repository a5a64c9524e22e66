package rich_test

import (
	"reflect"
	"testing"

	rich "github.com/demurgos/rich"
)

func TestProject_Rendering(t *testing.T) {
	cases := []struct {
		shape rich.Shape
		want  string
	}{
		{rich.ScalarShape(), "empty"},
		{rich.DynamicShape(), "value"},
		{rich.SeqOf(rich.ScalarShape()), "seq(node(empty))"},
		{rich.MapOf(rich.DynamicShape()), "map(node(value))"},
		{rich.TupleOf(rich.ScalarShape(), rich.SeqOf(rich.ScalarShape())), "tuple(node(empty), node(seq(node(empty))))"},
		{rich.StructOf("Mascot",
			rich.FieldOf("name", rich.ScalarShape()),
			rich.FieldOf("price", rich.ScalarShape()),
		), "struct Mascot{name: node(empty), price: node(empty)}"},
	}
	for _, tc := range cases {
		if got := rich.Project(tc.shape).String(); got != tc.want {
			t.Fatalf("projection of %v: expected %q, got %q", tc.shape.Kind, tc.want, got)
		}
	}
}

func TestProject_Deterministic(t *testing.T) {
	shape := rich.StructOf("S",
		rich.FieldOf("a", rich.SeqOf(rich.DynamicShape())),
		rich.FieldOf("b", rich.MapOf(rich.ScalarShape())),
	)
	first := rich.Project(shape)
	second := rich.Project(shape)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("projection must be deterministic")
	}
}

type seqMeta struct {
	Items rich.Node[[]rich.Node[rich.EmptyMeta]]
}

func TestCheckMetaDecl_SeqAndMap(t *testing.T) {
	shape := rich.StructOf("S", rich.FieldOf("items", rich.SeqOf(rich.ScalarShape())))
	if err := rich.CheckMetaDecl(shape, reflect.TypeOf(seqMeta{})); err != nil {
		t.Fatalf("expected valid declaration, got %v", err)
	}

	var m map[string]rich.Node[rich.ValueMeta]
	if err := rich.CheckMetaDecl(rich.MapOf(rich.DynamicShape()), reflect.TypeOf(m)); err != nil {
		t.Fatalf("expected valid map declaration, got %v", err)
	}
}

type badMascotMeta struct {
	Name  string
	Price rich.Node[rich.EmptyMeta]
}

type shortMascotMeta struct {
	Name rich.Node[rich.EmptyMeta]
}

func TestCheckMetaDecl_Divergences(t *testing.T) {
	shape := rich.StructOf("Mascot",
		rich.FieldOf("name", rich.ScalarShape()),
		rich.FieldOf("price", rich.ScalarShape()),
	)

	err := rich.CheckMetaDecl(shape, reflect.TypeOf(badMascotMeta{}))
	iss, ok := rich.AsIssues(err)
	if !ok || len(iss) == 0 || iss[0].Code != rich.CodeMetaShape {
		t.Fatalf("expected meta_shape issue for non-node slot, got %v", err)
	}
	if iss[0].Path != "/name" {
		t.Fatalf("expected issue at /name, got %s", iss[0].Path)
	}

	err = rich.CheckMetaDecl(shape, reflect.TypeOf(shortMascotMeta{}))
	if iss, ok := rich.AsIssues(err); !ok || len(iss) == 0 {
		t.Fatalf("expected issue for missing field, got %v", iss)
	}

	err = rich.CheckMetaDecl(rich.ScalarShape(), reflect.TypeOf(rich.ValueMeta{}))
	if err == nil {
		t.Fatalf("expected issue for scalar slot holding ValueMeta")
	}

	err = rich.CheckMetaDecl(rich.DynamicShape(), reflect.TypeOf(rich.EmptyMeta{}))
	if err == nil {
		t.Fatalf("expected issue for dynamic slot holding EmptyMeta")
	}
}

func TestRegistry_RegisterLookupProject(t *testing.T) {
	reg := rich.NewRegistry()
	shape := rich.StructOf("Mascot",
		rich.FieldOf("name", rich.ScalarShape()),
		rich.FieldOf("price", rich.ScalarShape()),
	)
	if err := reg.Register("Mascot", shape); err != nil {
		t.Fatalf("register: %v", err)
	}
	// re-registering the same layout is a no-op
	if err := reg.Register("Mascot", shape); err != nil {
		t.Fatalf("idempotent register: %v", err)
	}
	// conflicting layout is rejected
	if err := reg.Register("Mascot", rich.ScalarShape()); err == nil {
		t.Fatalf("expected conflict error")
	}

	got, ok := reg.Lookup("Mascot")
	if !ok || !reflect.DeepEqual(got, shape) {
		t.Fatalf("lookup mismatch: %#v", got)
	}
	if _, ok := reg.Lookup("Unknown"); ok {
		t.Fatalf("expected miss for unknown name")
	}

	ms, ok := reg.Project("Mascot")
	if !ok || ms.String() != "struct Mascot{name: node(empty), price: node(empty)}" {
		t.Fatalf("unexpected projection: %v", ms)
	}

	if err := reg.CheckBinding("Mascot", reflect.TypeOf(mascotMeta{})); err != nil {
		t.Fatalf("binding check: %v", err)
	}
	if err := reg.CheckBinding("Mascot", reflect.TypeOf(badMascotMeta{})); err == nil {
		t.Fatalf("expected binding check failure")
	}
}

type taggedRecord struct {
	DisplayName string `rich:"name=display"`
	Amount      int    `json:"amount,omitempty"`
	Hidden      bool   `json:"-"`
	Plain       bool
}

func TestResolveStructKey_TagPriority(t *testing.T) {
	rt := reflect.TypeOf(taggedRecord{})
	cases := map[string]string{
		"DisplayName": "display",
		"Amount":      "amount",
		"Hidden":      "-",
		"Plain":       "Plain",
	}
	for field, want := range cases {
		sf, _ := rt.FieldByName(field)
		if got := rich.ResolveStructKey(sf); got != want {
			t.Fatalf("%s: expected %q, got %q", field, want, got)
		}
	}
}

func TestFieldNameOf_Selector(t *testing.T) {
	got := rich.FieldNameOf(func(r *taggedRecord) *string { return &r.DisplayName })
	if got != "display" {
		t.Fatalf("expected display, got %q", got)
	}
	got = rich.FieldNameOf(func(r *taggedRecord) *bool { return &r.Plain })
	if got != "Plain" {
		t.Fatalf("expected Plain, got %q", got)
	}
}

func TestDefaultRegistryHelpers(t *testing.T) {
	shape := rich.SeqOf(rich.DynamicShape())
	if err := rich.RegisterShape("Timeline", shape); err != nil {
		t.Fatalf("register: %v", err)
	}
	got, ok := rich.LookupShape("Timeline")
	if !ok || !reflect.DeepEqual(got, shape) {
		t.Fatalf("lookup mismatch: %#v", got)
	}
	var decl []rich.Node[rich.ValueMeta]
	if err := rich.CheckShapeBinding("Timeline", reflect.TypeOf(decl)); err != nil {
		t.Fatalf("binding: %v", err)
	}
}
