package interfaces

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// CredentialVerifier is the authorization seam between the notarization
// ledger and the credential registry. The ledger checks party credentials
// through this interface only, never by reaching into registry state.
type CredentialVerifier interface {
	// BalanceOf returns the quantity of the given credential held by holder.
	BalanceOf(holder common.Address, id TokenID) (uint64, error)
}

// CredentialRegistry issues non-transferrable case credentials and owns case
// identity derivation and role assignment.
type CredentialRegistry interface {
	CredentialVerifier

	// OpenCase derives a case ID from the ordered party pair and case name,
	// assigns the Party role to both parties, and issues one Party
	// credential each. Fails with ErrCaseAlreadyExists on re-derivation.
	OpenCase(partyA, partyB common.Address, caseName string) (CaseID, error)

	// DoesCaseExist reports whether a case ID has been created.
	DoesCaseExist(id CaseID) bool

	// RoleOf returns the current global role of an address.
	RoleOf(addr common.Address) Role

	// SafeTransferFrom always fails with ErrTransferNotAllowed.
	SafeTransferFrom(caller, from, to common.Address, id TokenID, amount uint64) error

	// SafeBatchTransferFrom always fails with ErrTransferNotAllowed.
	SafeBatchTransferFrom(caller, from, to common.Address, ids []TokenID, amounts []uint64) error

	// SetApprovalForAll always fails with ErrTransferNotAllowed.
	SetApprovalForAll(caller, operator common.Address, approved bool) error

	// IsApprovedForAll always reports false; approvals cannot be granted.
	IsApprovedForAll(owner, operator common.Address) bool

	// Metadata renders the self-contained metadata payload for a token ID.
	Metadata(id TokenID) TokenMetadata

	// URI renders the metadata payload as a self-contained data URI.
	URI(id TokenID) (string, error)

	// SetBaseImageLocation changes the base used for image locators in
	// subsequent metadata renders. Owner-only.
	SetBaseImageLocation(caller common.Address, base string) error

	// Owner returns the registry owner address.
	Owner() common.Address
}

// NotaryLedger records tamper-evident proofs of document existence scoped to
// a case, with deduplication and per-submission fee collection.
type NotaryLedger interface {
	// StoreDocumentHash records a document under a case. The caller must
	// hold a Party credential for the case, pay at least the configured
	// fee, and the (case, hash) pair must not already be recorded.
	StoreDocumentHash(caller common.Address, hash DocumentHash, caseID CaseID, storagePointer string, paid *big.Int) error

	// GetDocument returns the full record for a (hash, case) pair.
	GetDocument(hash DocumentHash, caseID CaseID) (Document, error)

	// GetDocumentsByUser returns every hash the address has filed, in
	// submission order.
	GetDocumentsByUser(addr common.Address) ([]DocumentHash, error)

	// GetDocumentsByCaseID returns every hash filed under the case, in
	// submission order.
	GetDocumentsByCaseID(caseID CaseID) ([]DocumentHash, error)

	// SetCredentialRegistry repoints the authorization dependency. Takes
	// effect for subsequent store calls. Owner-only.
	SetCredentialRegistry(caller, registryAddr common.Address, verifier CredentialVerifier) error

	// SetFee changes the notarization fee. Owner-only.
	SetFee(caller common.Address, fee *big.Int) error

	// TransferOwnership hands the ledger to a new owner. Fails with
	// ErrRenouncingOwnershipNotAllowed for the zero address. Owner-only.
	TransferOwnership(caller, newOwner common.Address) error

	// WithdrawFunds sweeps the accumulated fee balance to the current
	// owner and returns the swept amount. Owner-only.
	WithdrawFunds(caller common.Address) (*big.Int, error)

	// Fee returns the currently configured fee.
	Fee() *big.Int

	// Owner returns the current owner address.
	Owner() common.Address

	// CollectedBalance returns the accumulated, unswept fee balance.
	CollectedBalance() *big.Int

	// RegistryAddress returns the address of the credential registry the
	// ledger authorizes against.
	RegistryAddress() common.Address
}
