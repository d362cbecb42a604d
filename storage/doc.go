// Package storage provides content-addressed storage backends for evidence
// bytes. Only hashes and storage pointers are recorded in the notarization
// ledger; the bytes themselves live in one of these backends.
//
// Supported backends:
//
//   - file:// - Local filesystem storage, content named by SHA-256 hash
//   - ipfs:// - IPFS node, pointer is the content-addressed CID
//   - s3:// - Amazon S3 or compatible object storage
//
// Backends are created through StorageBackendFactory from location URIs.
// Every backend's Store returns both the evidence content ID and the
// storage pointer string the ledger records alongside the document hash.
package storage
