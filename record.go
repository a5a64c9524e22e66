package rich

import (
	"encoding/json"
	"strconv"

	"github.com/demurgos/rich/i18n"
	eng "github.com/demurgos/rich/internal/engine"
)

// FieldBinder consumes the tokens of one field value from src and stores the
// richly attached result into the record under construction.
type FieldBinder[T any] func(scope *Scope, src Source, into *T) error

// RecordDecoder decodes a statically-shaped record from a Source, attaching
// an inline identifier to every field in input encounter order and one to
// the assembled record after all fields. Build one with NewRecord and the
// Field/Required chain; decoders are immutable after construction and safe
// to reuse across sessions.
type RecordDecoder[T any] struct {
	name     string
	binders  map[string]FieldBinder[T]
	order    []string
	required map[string]struct{}
	unknown  UnknownPolicy
}

// NewRecord creates a record decoder with safe defaults (UnknownStrict).
func NewRecord[T any](name string) *RecordDecoder[T] {
	return &RecordDecoder[T]{
		name:     name,
		binders:  map[string]FieldBinder[T]{},
		required: map[string]struct{}{},
		unknown:  UnknownStrict,
	}
}

type fieldStep[T any] struct {
	d    *RecordDecoder[T]
	name string
}

// Field registers a field with its binder.
func (d *RecordDecoder[T]) Field(name string, bind FieldBinder[T]) *fieldStep[T] {
	if _, ok := d.binders[name]; !ok {
		d.order = append(d.order, name)
	}
	d.binders[name] = bind
	return &fieldStep[T]{d: d, name: name}
}

// Required marks the field as required and returns the decoder.
func (f *fieldStep[T]) Required() *RecordDecoder[T] {
	f.d.required[f.name] = struct{}{}
	return f.d
}

// Optional marks the field as optional (default) and returns the decoder.
func (f *fieldStep[T]) Optional() *RecordDecoder[T] {
	delete(f.d.required, f.name)
	return f.d
}

// Field registers the next field, leaving the previous one optional.
func (f *fieldStep[T]) Field(name string, bind FieldBinder[T]) *fieldStep[T] {
	return f.d.Field(name, bind)
}

// UnknownStrict ends the chain, rejecting unknown keys.
func (f *fieldStep[T]) UnknownStrict() *RecordDecoder[T] { return f.d.UnknownStrict() }

// UnknownStrip ends the chain, skipping unknown keys.
func (f *fieldStep[T]) UnknownStrip() *RecordDecoder[T] { return f.d.UnknownStrip() }

// Decode decodes through the underlying decoder, leaving the last registered
// field optional.
func (f *fieldStep[T]) Decode(scope *Scope, src Source, opts ...ParseOpt) (Rich[T, ID], error) {
	return f.d.Decode(scope, src, opts...)
}

// UnknownStrict rejects unknown keys (default).
func (d *RecordDecoder[T]) UnknownStrict() *RecordDecoder[T] {
	d.unknown = UnknownStrict
	return d
}

// UnknownStrip skips unknown keys and their subtrees.
func (d *RecordDecoder[T]) UnknownStrip() *RecordDecoder[T] {
	d.unknown = UnknownStrip
	return d
}

// Decode consumes one record from src. A duplicated field aborts immediately
// at the point of duplication; missing required fields are reported together
// once all fields have been scanned, each naming its field. A failed decode
// leaves no usable result.
func (d *RecordDecoder[T]) Decode(scope *Scope, src Source, opts ...ParseOpt) (Rich[T, ID], error) {
	var zero Rich[T, ID]
	if scope == nil {
		return zero, singleIssue(CodeParseError, "nil scope")
	}
	if src == nil {
		return zero, singleIssue(CodeParseError, "nil source")
	}
	var opt ParseOpt
	if len(opts) > 0 {
		opt = opts[len(opts)-1]
	}
	src = EnforceSourceIfNeeded(src, opt)
	if !opt.Strictness.AllowNaN {
		src = guardNonFinite(src)
	}
	r, err := d.decodeFrom(scope, src, opt.FailFast)
	if err != nil {
		return zero, toIssues(err, src.Location())
	}
	return r, nil
}

// decodeFrom reads the record body; the first token must begin an object.
// Nested record binders re-enter here against the same source.
func (d *RecordDecoder[T]) decodeFrom(scope *Scope, src Source, failFast bool) (Rich[T, ID], error) {
	var zero Rich[T, ID]
	tok, err := src.NextToken()
	if err != nil {
		return zero, err
	}
	if tok.Kind != TokenBeginObject {
		return zero, singleIssue(CodeInvalidType, "expected object for record "+d.name)
	}

	var out T
	seen := make(map[string]struct{}, len(d.order))
	var iss Issues
	for {
		tok, err := src.NextToken()
		if err != nil {
			return zero, err
		}
		if tok.Kind == TokenEndObject {
			break
		}
		if tok.Kind != TokenKey {
			return zero, singleIssue(CodeParseError, "expected object key")
		}
		key := tok.String

		bind, known := d.binders[key]
		if !known {
			if d.unknown == UnknownStrict {
				iss = AppendIssues(iss, Issue{Path: "/" + key, Code: CodeUnknownKey, Message: i18n.T(CodeUnknownKey, nil), Offset: -1})
				if failFast {
					return zero, iss
				}
			}
			if err := skipValue(src); err != nil {
				return zero, err
			}
			continue
		}
		if _, dup := seen[key]; dup {
			iss = AppendIssues(iss, Issue{
				Path:    "/" + key,
				Code:    CodeDuplicateField,
				Message: i18n.T(CodeDuplicateField, map[string]string{"field": key}),
				Params:  map[string]any{"field": key},
				Offset:  -1,
			})
			return zero, iss
		}
		seen[key] = struct{}{}

		if err := bind(scope, src, &out); err != nil {
			// binder errors desynchronize the token stream; fatal
			return zero, AppendIssues(iss, rebaseIssues("/"+key, err)...)
		}
	}

	for _, name := range d.order {
		if _, req := d.required[name]; !req {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		iss = AppendIssues(iss, Issue{
			Path:    "/" + name,
			Code:    CodeMissingField,
			Message: i18n.T(CodeMissingField, map[string]string{"field": name}),
			Hint:    "required field " + name + " missing",
			Params:  map[string]any{"field": name},
			Offset:  -1,
		})
		if failFast {
			return zero, iss
		}
	}
	if len(iss) > 0 {
		return zero, iss
	}
	return Attach(scope, out), nil
}

// skipValue drains the tokens of the next value without attaching metadata.
func skipValue(src Source) error {
	tok, err := src.NextToken()
	if err != nil {
		return err
	}
	return eng.SkipSubtree(EngineTokenSource(src), eng.Token{Kind: toEngineKind(tok.Kind)})
}

// ---- field binders ----

// BindBool decodes a boolean field, attaching its identifier inline.
func BindBool[T any](assign func(*T, Rich[bool, ID])) FieldBinder[T] {
	return func(scope *Scope, src Source, into *T) error {
		tok, err := src.NextToken()
		if err != nil {
			return err
		}
		if tok.Kind != TokenBool {
			return singleIssue(CodeInvalidType, "expected boolean")
		}
		assign(into, Attach(scope, tok.Bool))
		return nil
	}
}

// BindString decodes a string field, attaching its identifier inline.
func BindString[T any](assign func(*T, Rich[string, ID])) FieldBinder[T] {
	return func(scope *Scope, src Source, into *T) error {
		tok, err := src.NextToken()
		if err != nil {
			return err
		}
		if tok.Kind != TokenString {
			return singleIssue(CodeInvalidType, "expected string")
		}
		assign(into, Attach(scope, tok.String))
		return nil
	}
}

// BindNumber decodes a number field as json.Number, attaching its identifier
// inline.
func BindNumber[T any](assign func(*T, Rich[json.Number, ID])) FieldBinder[T] {
	return func(scope *Scope, src Source, into *T) error {
		tok, err := src.NextToken()
		if err != nil {
			return err
		}
		if tok.Kind != TokenNumber {
			return singleIssue(CodeInvalidType, "expected number")
		}
		text, err := numberText(src, tok)
		if err != nil {
			return err
		}
		assign(into, Attach(scope, json.Number(text)))
		return nil
	}
}

// BindInt64 decodes an integer field; non-integral or out-of-range input
// yields CodeOverflow.
func BindInt64[T any](assign func(*T, Rich[int64, ID])) FieldBinder[T] {
	return func(scope *Scope, src Source, into *T) error {
		tok, err := src.NextToken()
		if err != nil {
			return err
		}
		if tok.Kind != TokenNumber {
			return singleIssue(CodeInvalidType, "expected number")
		}
		n, err := strconv.ParseInt(tok.Number, 10, 64)
		if err != nil {
			return singleIssue(CodeOverflow, "number "+tok.Number+" does not fit int64")
		}
		assign(into, Attach(scope, n))
		return nil
	}
}

// BindUint32 decodes an unsigned integer field; non-integral or out-of-range
// input yields CodeOverflow.
func BindUint32[T any](assign func(*T, Rich[uint32, ID])) FieldBinder[T] {
	return func(scope *Scope, src Source, into *T) error {
		tok, err := src.NextToken()
		if err != nil {
			return err
		}
		if tok.Kind != TokenNumber {
			return singleIssue(CodeInvalidType, "expected number")
		}
		n, err := strconv.ParseUint(tok.Number, 10, 32)
		if err != nil {
			return singleIssue(CodeOverflow, "number "+tok.Number+" does not fit uint32")
		}
		assign(into, Attach(scope, uint32(n)))
		return nil
	}
}

// BindRecord decodes a nested record field through its own decoder; the
// nested record's identifier is attached after all of its fields.
func BindRecord[T, F any](d *RecordDecoder[F], assign func(*T, Rich[F, ID])) FieldBinder[T] {
	return func(scope *Scope, src Source, into *T) error {
		r, err := d.decodeFrom(scope, src, false)
		if err != nil {
			return err
		}
		assign(into, r)
		return nil
	}
}

// BindValue decodes a dynamically-typed field through the attachment
// protocol, pairing it with full union metadata.
func BindValue[T any](assign func(*T, Rich[Value, Node[ValueMeta]])) FieldBinder[T] {
	return func(scope *Scope, src Source, into *T) error {
		tok, err := src.NextToken()
		if err != nil {
			return err
		}
		r, err := attachToken(scope, src, tok)
		if err != nil {
			return err
		}
		assign(into, Wrap(scope, r))
		return nil
	}
}
