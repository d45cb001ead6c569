package domain

// Scheme identifies the trust anchor a bearer token was verified against.
// Keeping this a closed set makes the routing in the resolver explicit;
// there is no default branch that could turn a parse failure into an allow.
type Scheme string

const (
	// SchemeLocal: HMAC-signed token minted by our own token service.
	// Subject is the account email.
	SchemeLocal Scheme = "local"
	// SchemeFederated: token minted by the external identity provider.
	// Subject is the provider-issued unique id.
	SchemeFederated Scheme = "federated"
)

// Principal is the request-scoped verified identity claim produced by the
// credential verifier and consumed by the identity resolver. It is never
// persisted.
type Principal struct {
	SubjectID   string
	Email       string
	DisplayName string
	Scheme      Scheme
}
