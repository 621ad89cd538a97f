// Package kestrel is a resource-oriented HTTP dispatch layer built around
// two ideas: ordered before-hooks and structured errors.
//
// A Resource is an explicit route table mapping (method, suffix) pairs to
// handlers. Hooks attach at the resource level (run for every handler) or
// per handler, and execute strictly in order before the handler body,
// sharing a mutable Params map seeded from path captures:
//
//	items := kestrel.NewResource().
//		Before(kestrel.HookFunc(authenticate)).
//		Get(showItem, kestrel.FieldInt("itemid")).
//		Handle("GET", "collection", listItems)
//
//	r := kestrel.New()
//	r.Add("/items/{itemid}", items)
//	r.AddSuffix("/items", "collection", items)
//
// Any hook or handler may abort the request by returning a *Error; the
// router converts it into a wire response with deterministic JSON or XML
// field ordering, negotiated from the Accept header:
//
//	return kestrel.BadRequest("Out of Range", "limit must be <= 100")
//
// Hook chains are frozen when a resource is mounted and reused read-only
// across concurrent requests; every request gets its own Params.
//
// Middleware uses the standard func(http.Handler) http.Handler signature,
// so the entire Go middleware ecosystem works natively above dispatch.
package kestrel
