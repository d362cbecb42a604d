// Package httpserver exposes the notarization service over HTTP.
//
// The server fronts three collaborators: the credential registry (case
// opening, credential lookup, metadata rendering), the notarization ledger
// (document filing and retrieval, administration), and an optional
// content-addressed evidence storage backend for inline evidence uploads.
//
// The caller identity for mutating operations is taken from the
// X-Notary-Caller header as a hex address. Typed component errors are
// mapped onto HTTP status codes: conflicts to 409, authorization failures
// to 403, insufficient fee to 402, the reentrancy guard to 503, and
// not-found lookups to 404.
//
// The server also provides liveness, readiness, and drain endpoints for
// load balancer integration, an optional pprof mount, and a separate
// Prometheus metrics listener.
package httpserver
