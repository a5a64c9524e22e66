package rich_test

import (
	"testing"

	rich "github.com/demurgos/rich"
)

// The canonical document: every scalar consumes two ids (raw, then union
// node), containers one per child plus one for themselves, all post-order.
func TestAttachValue_CanonicalIDs(t *testing.T) {
	jsb := []byte(`{"foo": true, "message": "Hello, World!", "list": [true, false]}`)
	scope := rich.NewScope()
	r, err := rich.AttachValue(scope, rich.JSONBytes(jsb))
	if err != nil {
		t.Fatalf("err: %v", err)
	}

	root := rich.ViewOf(&r)
	if root.ID() != rich.ID(9) {
		t.Fatalf("expected root id #9, got %v", root.ID())
	}
	obj, ok := root.Object()
	if !ok {
		t.Fatalf("expected object root")
	}

	foo, ok := obj.Get("foo")
	if !ok || foo.ID() != rich.ID(1) {
		t.Fatalf("expected foo union id #1, got %v (ok=%v)", foo.ID(), ok)
	}
	arm, err := foo.Visit()
	if err != nil {
		t.Fatalf("visit foo: %v", err)
	}
	bv, ok := arm.(rich.BoolView)
	if !ok || bv.ID() != rich.ID(0) || bv.Bool() != true {
		t.Fatalf("expected raw bool #0 true, got %#v", arm)
	}

	msg, ok := obj.Get("message")
	if !ok || msg.ID() != rich.ID(3) {
		t.Fatalf("expected message union id #3, got %v", msg.ID())
	}
	arm, err = msg.Visit()
	if err != nil {
		t.Fatalf("visit message: %v", err)
	}
	sv, ok := arm.(rich.StringView)
	if !ok || sv.ID() != rich.ID(2) || sv.Text() != "Hello, World!" {
		t.Fatalf("expected raw string #2, got %#v", arm)
	}

	list, ok := obj.Get("list")
	if !ok || list.ID() != rich.ID(8) {
		t.Fatalf("expected list union id #8, got %v", list.ID())
	}
	av, ok := list.Array()
	if !ok || av.Len() != 2 {
		t.Fatalf("expected array of 2")
	}
	first, _ := av.Get(0)
	second, _ := av.Get(1)
	if first.ID() != rich.ID(5) || second.ID() != rich.ID(7) {
		t.Fatalf("expected element ids #5,#7, got %v,%v", first.ID(), second.ID())
	}
	fa, _ := first.Visit()
	sa, _ := second.Visit()
	if fa.(rich.BoolView).ID() != rich.ID(4) || fa.(rich.BoolView).Bool() != true {
		t.Fatalf("expected first raw #4 true")
	}
	if sa.(rich.BoolView).ID() != rich.ID(6) || sa.(rich.BoolView).Bool() != false {
		t.Fatalf("expected second raw #6 false")
	}

	if _, ok := obj.Get("missing"); ok {
		t.Fatalf("expected missing key lookup to report absence")
	}
}

func TestAttachValue_ScalarConsumesTwoIDs(t *testing.T) {
	scope := rich.NewScope()
	r, err := rich.AttachValue(scope, rich.JSONBytes([]byte(`true`)))
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if r.Meta.ID != rich.ID(1) {
		t.Fatalf("expected union id #1, got %v", r.Meta.ID)
	}
	if r.Meta.Nested.Scalar().ID != rich.ID(0) {
		t.Fatalf("expected raw id #0, got %v", r.Meta.Nested.Scalar().ID)
	}
	if next := rich.Attach(scope, 0); next.Meta != rich.ID(2) {
		t.Fatalf("expected next mint #2, got %v", next.Meta)
	}
}

func TestAttachValue_NullConsumesTwoIDs(t *testing.T) {
	scope := rich.NewScope()
	r, err := rich.AttachValue(scope, rich.JSONBytes([]byte(`null`)))
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if !r.Value.IsNull() {
		t.Fatalf("expected null value")
	}
	if r.Meta.ID != rich.ID(1) || r.Meta.Nested.Scalar().ID != rich.ID(0) {
		t.Fatalf("expected ids #1/#0, got %v/%v", r.Meta.ID, r.Meta.Nested.Scalar().ID)
	}
}

// checkPostOrder returns the subtree's own id after asserting that it is
// strictly greater than every descendant id and that siblings increase
// left to right.
func checkPostOrder(t *testing.T, v rich.ValueView) rich.ID {
	t.Helper()
	own := v.ID()
	arm, err := v.Visit()
	if err != nil {
		t.Fatalf("visit: %v", err)
	}
	var prev rich.ID
	seen := false
	checkChild := func(c rich.ValueView) {
		id := checkPostOrder(t, c)
		if !id.Less(own) {
			t.Fatalf("child id %v not less than parent %v", id, own)
		}
		if seen && !prev.Less(id) {
			t.Fatalf("sibling ids not increasing: %v then %v", prev, id)
		}
		prev, seen = id, true
	}
	switch a := arm.(type) {
	case rich.ArrayView:
		for i := 0; i < a.Len(); i++ {
			c, _ := a.Get(i)
			checkChild(c)
		}
	case rich.ObjectView:
		for _, k := range a.Keys() {
			c, _ := a.Get(k)
			checkChild(c)
		}
	}
	return own
}

func TestAttachValue_PostOrderProperty(t *testing.T) {
	jsb := []byte(`{"a":[1,{"b":null}],"c":"x","d":{"e":[true,2.5,"s"]}}`)
	scope := rich.NewScope()
	r, err := rich.AttachValue(scope, rich.JSONBytes(jsb))
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	checkPostOrder(t, rich.ViewOf(&r))
}

func TestAttachValue_ValueAndMetaIsomorphic(t *testing.T) {
	jsb := []byte(`{"a":[1,2],"b":{"c":true}}`)
	scope := rich.NewScope()
	r, err := rich.AttachValue(scope, rich.JSONBytes(jsb))
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if err := rich.VerifyMeta(r.Value, r.Meta); err != nil {
		t.Fatalf("expected isomorphic trees, got %v", err)
	}
}

func TestAttachValue_ParseError(t *testing.T) {
	scope := rich.NewScope()
	_, err := rich.AttachValue(scope, rich.JSONBytes([]byte(`{"a":`)))
	if err == nil {
		t.Fatalf("expected error for malformed input")
	}
	iss, ok := rich.AsIssues(err)
	if !ok || len(iss) == 0 {
		t.Fatalf("expected Issues, got %v", err)
	}
	if iss[0].Code != rich.CodeParseError {
		t.Fatalf("expected parse_error, got %s", iss[0].Code)
	}
}

func TestAttachValue_NilScope(t *testing.T) {
	_, err := rich.AttachValue(nil, rich.JSONBytes([]byte(`1`)))
	if err == nil {
		t.Fatalf("expected error for nil scope")
	}
}

func TestAttachValue_DuplicateObjectKeyKeepsTreesIsomorphic(t *testing.T) {
	jsb := []byte(`{"a":1,"a":2}`)
	scope := rich.NewScope()
	r, err := rich.AttachValue(scope, rich.JSONBytes(jsb))
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if err := rich.VerifyMeta(r.Value, r.Meta); err != nil {
		t.Fatalf("expected isomorphic trees under duplicates, got %v", err)
	}
	obj, _ := rich.ViewOf(&r).Object()
	a, ok := obj.Get("a")
	if !ok {
		t.Fatalf("expected key a")
	}
	arm, _ := a.Visit()
	if got := arm.(rich.NumberView).Number().String(); got != "2" {
		t.Fatalf("expected later value to win, got %s", got)
	}
}
