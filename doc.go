package rich

// Package rich attaches out-of-band provenance metadata to decoded value
// trees:
//
// - Every node of a decoded document receives a stable identifier, minted by
//   a per-session Scope in a deterministic bottom-up order.
// - The metadata lives in a tree that mirrors the value tree exactly (same
//   sequence lengths, same key sets, same union variant), never inside the
//   domain value itself.
// - Views navigate a value tree and its metadata tree in lockstep without
//   copying either.
// - Statically-shaped values carrying inline identifiers can be split into a
//   pure value plus an isomorphic metadata tree.
//
// Design policy:
// - Keep only public APIs in the root package; put detailed implementations
//   under internal/.
// - Place token sources under source/ and the CLI under cmd/richmeta.
// - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//	scope := rich.NewScope()
//	r, err := rich.AttachValue(scope, rich.JSONBytes(data))
//	dup, err := rich.DetectDuplicateKeys(data, rich.Warn, -1)
