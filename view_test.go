package rich_test

import (
	"testing"

	rich "github.com/demurgos/rich"
)

func decodeView(t *testing.T, js string) (rich.Rich[rich.Value, rich.Node[rich.ValueMeta]], rich.ValueView) {
	t.Helper()
	scope := rich.NewScope()
	r, err := rich.AttachValue(scope, rich.JSONBytes([]byte(js)))
	if err != nil {
		t.Fatalf("decode %s: %v", js, err)
	}
	return r, rich.ViewOf(&r)
}

func TestVisit_ScalarArms(t *testing.T) {
	cases := []struct {
		js    string
		check func(t *testing.T, arm rich.VariantView)
	}{
		{`null`, func(t *testing.T, arm rich.VariantView) {
			if _, ok := arm.(rich.NullView); !ok {
				t.Fatalf("expected NullView, got %#v", arm)
			}
		}},
		{`true`, func(t *testing.T, arm rich.VariantView) {
			bv, ok := arm.(rich.BoolView)
			if !ok || !bv.Bool() {
				t.Fatalf("expected BoolView true, got %#v", arm)
			}
		}},
		{`12.5`, func(t *testing.T, arm rich.VariantView) {
			nv, ok := arm.(rich.NumberView)
			if !ok || nv.Number().String() != "12.5" {
				t.Fatalf("expected NumberView 12.5, got %#v", arm)
			}
		}},
		{`"hi"`, func(t *testing.T, arm rich.VariantView) {
			sv, ok := arm.(rich.StringView)
			if !ok || sv.Text() != "hi" {
				t.Fatalf("expected StringView hi, got %#v", arm)
			}
		}},
	}
	for _, tc := range cases {
		_, v := decodeView(t, tc.js)
		arm, err := v.Visit()
		if err != nil {
			t.Fatalf("visit %s: %v", tc.js, err)
		}
		tc.check(t, arm)
	}
}

func TestArrayView_GetOutOfRange(t *testing.T) {
	_, v := decodeView(t, `[1]`)
	av, ok := v.Array()
	if !ok {
		t.Fatalf("expected array")
	}
	if _, ok := av.Get(1); ok {
		t.Fatalf("expected out-of-range lookup to report absence")
	}
	if _, ok := av.Get(-1); ok {
		t.Fatalf("expected negative index lookup to report absence")
	}
}

func TestObjectView_MissingMetaFallsBackToSentinel(t *testing.T) {
	// A value child without a metadata counterpart resolves to the canonical
	// empty sentinel so lookups stay total.
	value := rich.Object(rich.Member{Key: "a", Value: rich.Bool(true)})
	r := rich.MakeRich(value, rich.Node[rich.ValueMeta]{ID: 7, Nested: rich.ObjectMeta(nil)})
	obj, ok := rich.ViewOf(&r).Object()
	if !ok {
		t.Fatalf("expected object view")
	}
	child, ok := obj.Get("a")
	if !ok {
		t.Fatalf("expected value lookup to succeed")
	}
	if child.ID() != rich.ID(0) {
		t.Fatalf("expected sentinel id #0, got %v", child.ID())
	}
	arm, err := child.Visit()
	if err != nil {
		t.Fatalf("visit: %v", err)
	}
	bv, ok := arm.(rich.BoolView)
	if !ok || !bv.Bool() || bv.ID() != rich.ID(0) {
		t.Fatalf("expected sentinel-backed bool view, got %#v", arm)
	}
}

func TestVisit_MetaVariantMismatchUsesArmDefault(t *testing.T) {
	// Bool value described by (zero) null metadata: the scalar arm falls back
	// to its default rather than failing the lookup.
	r := rich.MakeRich(rich.Bool(true), rich.Node[rich.ValueMeta]{ID: 3})
	arm, err := rich.ViewOf(&r).Visit()
	if err != nil {
		t.Fatalf("visit: %v", err)
	}
	bv, ok := arm.(rich.BoolView)
	if !ok || bv.ID() != rich.ID(0) {
		t.Fatalf("expected default raw meta, got %#v", arm)
	}
}

func TestVerifyMeta_ReportsDivergences(t *testing.T) {
	// variant mismatch at root
	r := rich.MakeRich(rich.Bool(true), rich.Node[rich.ValueMeta]{ID: 3})
	err := rich.VerifyMeta(r.Value, r.Meta)
	iss, ok := rich.AsIssues(err)
	if !ok || len(iss) != 1 || iss[0].Code != rich.CodeMetaShape || iss[0].Path != "/" {
		t.Fatalf("expected one meta_shape issue at /, got %v", err)
	}

	// sequence length mismatch
	seq := rich.MakeRich(
		rich.Array(rich.Bool(true), rich.Bool(false)),
		rich.Node[rich.ValueMeta]{ID: 9, Nested: rich.ArrayMeta(nil)},
	)
	err = rich.VerifyMeta(seq.Value, seq.Meta)
	iss, ok = rich.AsIssues(err)
	if !ok || len(iss) == 0 || iss[0].Code != rich.CodeMetaShape {
		t.Fatalf("expected meta_shape issue for length mismatch, got %v", err)
	}

	// missing entry under a key
	obj := rich.MakeRich(
		rich.Object(rich.Member{Key: "a", Value: rich.Null()}),
		rich.Node[rich.ValueMeta]{ID: 9, Nested: rich.ObjectMeta(map[string]rich.Node[rich.ValueMeta]{})},
	)
	err = rich.VerifyMeta(obj.Value, obj.Meta)
	iss, ok = rich.AsIssues(err)
	if !ok || len(iss) == 0 || iss[0].Path != "/a" {
		t.Fatalf("expected issue at /a, got %v", err)
	}

	// metadata entry without a value counterpart
	extra := rich.MakeRich(
		rich.Object(rich.Member{Key: "a", Value: rich.Null()}),
		rich.Node[rich.ValueMeta]{ID: 9, Nested: rich.ObjectMeta(map[string]rich.Node[rich.ValueMeta]{
			"a": {ID: 1, Nested: rich.ScalarMeta(rich.KindNull, rich.Node[rich.EmptyMeta]{})},
			"b": {ID: 2},
		})},
	)
	err = rich.VerifyMeta(extra.Value, extra.Meta)
	iss, ok = rich.AsIssues(err)
	if !ok || len(iss) != 1 || iss[0].Path != "/b" || iss[0].Code != rich.CodeMetaShape {
		t.Fatalf("expected meta_shape issue at /b for the extra entry, got %v", err)
	}
}

func TestVerifyMeta_CleanDecodePasses(t *testing.T) {
	r, _ := decodeView(t, `{"a":[null,{"b":"x"}],"c":2}`)
	if err := rich.VerifyMeta(r.Value, r.Meta); err != nil {
		t.Fatalf("expected clean verification, got %v", err)
	}
}
