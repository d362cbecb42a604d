package interfaces

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// EvidenceID is a 32-byte SHA-256 hash uniquely identifying stored evidence
// content. The off-chain storage pointer recorded in the ledger is derived
// from it by the backend that holds the bytes.
type EvidenceID [32]byte

// NewEvidenceIDFromBytes creates an evidence ID from a raw 32-byte slice.
func NewEvidenceIDFromBytes(source []byte) (EvidenceID, error) {
	if len(source) != 32 {
		return EvidenceID{}, errors.New("invalid EvidenceID conversion from bytes: incorrect length")
	}

	var hash [32]byte
	copy(hash[:], source)
	return EvidenceID(hash), nil
}

// NewEvidenceIDFromHex creates an evidence ID from a 64-character hex string.
func NewEvidenceIDFromHex(source string) (EvidenceID, error) {
	// Remove 0x prefix if present
	clean := strings.TrimPrefix(source, "0x")
	if len(clean) != 64 {
		return EvidenceID{}, errors.New("invalid evidence ID length: hex string must be 64 characters")
	}

	hashBytes, err := hex.DecodeString(clean)
	if err != nil {
		return EvidenceID{}, fmt.Errorf("invalid hex format: %w", err)
	}

	var hash [32]byte
	copy(hash[:], hashBytes)
	return EvidenceID(hash), nil
}

// ComputeEvidenceID calculates the evidence ID for raw content.
func ComputeEvidenceID(data []byte) EvidenceID {
	hash := sha256.Sum256(data)
	return EvidenceID(hash)
}

// String returns hex representation.
func (id EvidenceID) String() string {
	return hex.EncodeToString(id[:])
}

// Bytes returns raw 32-byte hash.
func (id EvidenceID) Bytes() []byte {
	return id[:]
}

// Equal compares two evidence IDs.
func (id EvidenceID) Equal(other EvidenceID) bool {
	return bytes.Equal(id[:], other[:])
}

// StorageBackendLocation is a URI identifying a storage backend.
// Format: [scheme]://[auth@]host[:port][/path][?params]
type StorageBackendLocation string

// Validate checks the URI is well formed and the scheme supported.
func (loc StorageBackendLocation) Validate() error {
	parsed, err := url.Parse(string(loc))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidLocationURI, err)
	}

	switch parsed.Scheme {
	case "file", "ipfs", "s3":
		return nil
	default:
		return fmt.Errorf("%w: unsupported storage scheme %q", ErrInvalidLocationURI, parsed.Scheme)
	}
}

// String returns the URI string.
func (loc StorageBackendLocation) String() string {
	return string(loc)
}

var (
	// ErrContentNotFound is returned when requested evidence cannot be
	// found in the storage backend.
	ErrContentNotFound = errors.New("content not found")

	// ErrBackendUnavailable is returned when a storage backend is not
	// accessible. This could be due to network issues, authentication
	// failures, or service outages.
	ErrBackendUnavailable = errors.New("storage backend unavailable")

	// ErrInvalidLocationURI is returned when a storage location URI is
	// malformed or unsupported.
	ErrInvalidLocationURI = errors.New("invalid storage location URI")
)

// StorageBackend provides content-addressed evidence storage.
type StorageBackend interface {
	// Fetch retrieves evidence bytes by content ID.
	Fetch(ctx context.Context, id EvidenceID) ([]byte, error)

	// Store saves evidence bytes and returns the content ID together with
	// the storage pointer to record in the ledger.
	Store(ctx context.Context, data []byte) (EvidenceID, string, error)

	// Available checks if backend is accessible.
	Available(ctx context.Context) bool

	// Name returns identifier for logging.
	Name() string

	// LocationURI returns URI identifying this backend.
	LocationURI() string
}

// StorageBackendFactory creates storage backends from location URIs.
type StorageBackendFactory interface {
	// StorageBackendFor creates a backend from a URI.
	// Supports file://, ipfs://, s3://
	StorageBackendFor(locationURI StorageBackendLocation) (StorageBackend, error)
}
