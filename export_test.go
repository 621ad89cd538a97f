package kestrel

// Test-only exports for internal functions.
var (
	EncodeURI  = encodeURI
	BuildChain = buildChain
	ParamNames = paramNames
)

// NegotiateContentType exposes renderer negotiation for tests.
func NegotiateContentType(accept string, user ...ErrorRenderer) string {
	return newRendererRegistry(user).negotiate(accept).ContentType()
}
