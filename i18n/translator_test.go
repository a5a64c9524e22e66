package i18n

import "testing"

func TestTranslator_DefaultAndJapanese(t *testing.T) {
	// default is en
	if msg := T("invalid_type", nil); msg == "invalid_type" || msg == "" {
		t.Fatalf("expected a human message, got %q", msg)
	}

	SetLanguage("ja")
	if msg := T("invalid_type", nil); msg == "invalid type" {
		t.Fatalf("expected japanese message, got %q", msg)
	}

	// reset to en
	SetLanguage("en")
}

func TestTranslator_FieldParameter(t *testing.T) {
	msg := T("missing_field", map[string]string{"field": "price"})
	if msg == "missing_field" {
		t.Fatalf("expected a human message, got %q", msg)
	}
	if want := "required field 'price' missing"; msg != want {
		t.Fatalf("expected %q, got %q", want, msg)
	}
}

func TestTranslator_UnknownCodeFallsBackToCode(t *testing.T) {
	if msg := T("no_such_code", nil); msg != "no_such_code" {
		t.Fatalf("expected code passthrough, got %q", msg)
	}
}

type upperTranslator struct{}

func (upperTranslator) Message(code string, _ map[string]string) string { return "X:" + code }

func TestTranslator_CustomAndReset(t *testing.T) {
	SetTranslator(upperTranslator{})
	if msg := T("overflow", nil); msg != "X:overflow" {
		t.Fatalf("custom translator not used, got %q", msg)
	}
	SetTranslator(nil)
	if msg := T("overflow", nil); msg != "number out of range" {
		t.Fatalf("reset translator not used, got %q", msg)
	}
}
