// Package main (cmd/httpserver) implements the evidence notarization server.
//
// The server fronts two components behind a JSON HTTP API: the credential
// registry, which opens cases and issues soulbound access credentials to the
// parties, and the notarization ledger, which records document-existence
// proofs under those cases against a fee paid in wei.
//
// Caller identity is carried in the X-Notary-Caller header; all
// authorization decisions (credential checks and owner-gated administration)
// are made against that address.
//
// Optionally, an evidence storage backend (file://, ipfs://, or s3://) can
// be configured. With a backend present, clients may submit raw evidence
// bytes and have the server derive the document hash and storage pointer;
// without one, submissions must carry a pre-computed hash and pointer.
//
// The server implements graceful shutdown on termination signals
// (SIGINT/SIGTERM) and exposes health checks, Prometheus metrics, and
// optional profiling endpoints.
//
// Example usage:
//
//	notary-server --owner=0x00000000000000000000000000000000000000aa \
//	    --listen-addr=0.0.0.0:8080 \
//	    --evidence-storage=file:///var/lib/notary/evidence \
//	    --log-json
package main
