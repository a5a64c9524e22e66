package rich

import (
	"encoding/json"
	"strconv"
)

// AttachValue decodes one dynamically-typed value from src, pairing every
// node with wrapped metadata. Identifiers are minted bottom-up: a node's own
// identifier is strictly greater than every identifier of its descendants,
// and siblings are numbered in decoder encounter order. Each scalar consumes
// two identifiers (raw primitive, then union node); each container consumes
// one per child plus one for itself.
//
// The last ParseOpt wins when several are given. Decode errors from the
// source surface unchanged (wrapped as Issues with CodeParseError); a failed
// decode leaves no usable result.
func AttachValue(scope *Scope, src Source, opts ...ParseOpt) (Rich[Value, Node[ValueMeta]], error) {
	var opt ParseOpt
	if len(opts) > 0 {
		opt = opts[len(opts)-1]
	}
	return AttachValueWith(scope, src, opt, nil)
}

// AttachValueWith behaves like AttachValue while forwarding non-fatal
// enforcement issues (duplicate key warnings, truncation notices) to sink.
func AttachValueWith(scope *Scope, src Source, opt ParseOpt, sink func(Issue)) (Rich[Value, Node[ValueMeta]], error) {
	var zero Rich[Value, Node[ValueMeta]]
	if scope == nil {
		return zero, singleIssue(CodeParseError, "nil scope")
	}
	if src == nil {
		return zero, singleIssue(CodeParseError, "nil source")
	}
	if sink != nil {
		src = EnforceSourceWith(src, opt, sink)
	} else {
		src = EnforceSourceIfNeeded(src, opt)
	}
	if !opt.Strictness.AllowNaN {
		src = guardNonFinite(src)
	}
	tok, err := src.NextToken()
	if err != nil {
		return zero, toIssues(err, src.Location())
	}
	r, err := attachToken(scope, src, tok)
	if err != nil {
		return zero, toIssues(err, src.Location())
	}
	return Wrap(scope, r), nil
}

// attachToken builds one (value, union metadata) pair for the node whose
// first token is tok. The caller wraps the result, minting the node's own
// identifier after all descendants.
func attachToken(scope *Scope, src Source, tok Token) (Rich[Value, ValueMeta], error) {
	var zero Rich[Value, ValueMeta]
	switch tok.Kind {
	case TokenNull:
		inner := Wrap(scope, MakeRich(struct{}{}, EmptyMeta{}))
		return MakeRich(Null(), ScalarMeta(KindNull, inner.Meta)), nil
	case TokenBool:
		inner := Wrap(scope, MakeRich(tok.Bool, EmptyMeta{}))
		return MakeRich(Bool(inner.Value), ScalarMeta(KindBool, inner.Meta)), nil
	case TokenNumber:
		text, err := numberText(src, tok)
		if err != nil {
			return zero, err
		}
		inner := Wrap(scope, MakeRich(json.Number(text), EmptyMeta{}))
		return MakeRich(Number(inner.Value), ScalarMeta(KindNumber, inner.Meta)), nil
	case TokenString:
		inner := Wrap(scope, MakeRich(tok.String, EmptyMeta{}))
		return MakeRich(String(inner.Value), ScalarMeta(KindString, inner.Meta)), nil
	case TokenBeginArray:
		return attachArray(scope, src)
	case TokenBeginObject:
		return attachObject(scope, src)
	default:
		return zero, singleIssue(CodeParseError, "unexpected token in value position")
	}
}

func attachArray(scope *Scope, src Source) (Rich[Value, ValueMeta], error) {
	var zero Rich[Value, ValueMeta]
	var vals []Value
	var metas []Node[ValueMeta]
	for {
		tok, err := src.NextToken()
		if err != nil {
			return zero, err
		}
		if tok.Kind == TokenEndArray {
			return MakeRich(Array(vals...), ArrayMeta(metas)), nil
		}
		child, err := attachToken(scope, src, tok)
		if err != nil {
			return zero, childErr("/"+strconv.Itoa(len(vals)), err)
		}
		w := Wrap(scope, child)
		vals = append(vals, w.Value)
		metas = append(metas, w.Meta)
	}
}

func attachObject(scope *Scope, src Source) (Rich[Value, ValueMeta], error) {
	var zero Rich[Value, ValueMeta]
	var members []Member
	fields := make(map[string]Node[ValueMeta])
	for {
		tok, err := src.NextToken()
		if err != nil {
			return zero, err
		}
		if tok.Kind == TokenEndObject {
			return MakeRich(Object(members...), ObjectMeta(fields)), nil
		}
		if tok.Kind != TokenKey {
			return zero, singleIssue(CodeParseError, "expected object key")
		}
		key := tok.String
		vt, err := src.NextToken()
		if err != nil {
			return zero, err
		}
		child, err := attachToken(scope, src, vt)
		if err != nil {
			return zero, childErr("/"+key, err)
		}
		// duplicate keys: both trees take the later value, keeping the trees
		// isomorphic; strictness is the enforcement layer's concern
		w := Wrap(scope, child)
		members = append(members, Member{Key: key, Value: w.Value})
		fields[key] = w.Meta
	}
}

// numberText interprets a number token per the source's NumberMode. Float
// mode normalizes the text through float64, trading precision for canonical
// rendering; json.Number mode keeps the input text verbatim.
func numberText(src Source, tok Token) (string, error) {
	if src.NumberMode() != NumberFloat64 {
		return tok.Number, nil
	}
	f, err := strconv.ParseFloat(tok.Number, 64)
	if err != nil {
		return "", singleIssue(CodeParseError, "invalid number "+tok.Number)
	}
	return strconv.FormatFloat(f, 'g', -1, 64), nil
}

// childErr rebases child Issues under the member path; non-Issues errors
// propagate untouched so the entry point can classify them once.
func childErr(base string, err error) error {
	if _, ok := AsIssues(err); ok {
		return rebaseIssues(base, err)
	}
	return err
}
