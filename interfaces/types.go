package interfaces

import (
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// CaseID identifies a dispute case. It is derived deterministically from the
// two party addresses and the case name, truncated to nine decimal digits.
type CaseID uint32

// String returns the decimal representation of the case ID.
func (id CaseID) String() string {
	return fmt.Sprintf("%d", uint32(id))
}

// Role is the access role currently assigned to an address. An address holds
// a single role at any instant, shared across all cases it participates in.
type Role uint8

const (
	// RoleUnassigned means the address has no role and cannot receive credentials.
	RoleUnassigned Role = iota
	// RoleParty marks a disputing party, entitled to file evidence.
	RoleParty
	// RoleJuror marks a juror assigned to a case.
	RoleJuror
)

// String returns the role name.
func (r Role) String() string {
	switch r {
	case RoleParty:
		return "Party"
	case RoleJuror:
		return "Juror"
	default:
		return "Unassigned"
	}
}

// TokenID identifies a credential. It encodes both the case and the role the
// credential was issued for: tokenID = caseID*10 + roleCode.
type TokenID uint64

// NewTokenID composes a token ID from a case ID and a role code.
func NewTokenID(caseID CaseID, role Role) TokenID {
	return TokenID(uint64(caseID)*10 + uint64(role))
}

// CaseID extracts the case component of the token ID.
func (t TokenID) CaseID() CaseID {
	return CaseID(t / 10)
}

// RoleCode extracts the numeric role component of the token ID.
func (t TokenID) RoleCode() uint8 {
	return uint8(t % 10)
}

// String returns the decimal representation of the token ID.
func (t TokenID) String() string {
	return fmt.Sprintf("%d", uint64(t))
}

// DocumentHash is the 32-byte content digest of a notarized document.
type DocumentHash [32]byte

// NewDocumentHashFromBytes creates a document hash from a raw 32-byte slice.
func NewDocumentHashFromBytes(source []byte) (DocumentHash, error) {
	if len(source) != 32 {
		return DocumentHash{}, errors.New("invalid document hash length: must be 32 bytes")
	}

	var hash DocumentHash
	copy(hash[:], source)
	return hash, nil
}

// NewDocumentHashFromHex creates a document hash from a 64-character hex string.
func NewDocumentHashFromHex(source string) (DocumentHash, error) {
	// Remove 0x prefix if present
	clean := strings.TrimPrefix(source, "0x")
	if len(clean) != 64 {
		return DocumentHash{}, errors.New("invalid document hash length: hex string must be 64 characters")
	}

	hashBytes, err := hex.DecodeString(clean)
	if err != nil {
		return DocumentHash{}, fmt.Errorf("invalid hex format: %w", err)
	}

	return NewDocumentHashFromBytes(hashBytes)
}

// String returns hex representation.
func (h DocumentHash) String() string {
	return hex.EncodeToString(h[:])
}

// Bytes returns the raw 32-byte hash.
func (h DocumentHash) Bytes() []byte {
	return h[:]
}

// MarshalText encodes the hash as a hex string for JSON payloads.
func (h DocumentHash) MarshalText() ([]byte, error) {
	return []byte(h.String()), nil
}

// UnmarshalText decodes the hash from a hex string.
func (h *DocumentHash) UnmarshalText(text []byte) error {
	parsed, err := NewDocumentHashFromHex(string(text))
	if err != nil {
		return err
	}
	*h = parsed
	return nil
}

// Equal compares two document hashes.
func (h DocumentHash) Equal(other DocumentHash) bool {
	return bytes.Equal(h[:], other[:])
}

// Document is a notarized evidence record. It is created exactly once on
// first successful submission and is immutable thereafter.
type Document struct {
	Hash           DocumentHash   `json:"hash"`
	Submitter      common.Address `json:"submitter"`
	CaseID         CaseID         `json:"case_id"`
	StoragePointer string         `json:"storage_pointer"`
}

// TokenProperties carries the case and role encoded in a credential,
// rendered as decimal strings.
type TokenProperties struct {
	CaseID string `json:"case_id"`
	Role   string `json:"role"`
}

// TokenMetadata is the self-contained descriptive payload for a credential.
// It is a pure function of the token ID and the configured base image
// location; no external fetch is required to interpret it.
type TokenMetadata struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Image       string          `json:"image"`
	Properties  TokenProperties `json:"properties"`
}
