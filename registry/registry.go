package registry

import (
	"log/slog"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/lexproof/evidence-notary-backend/interfaces"
	"github.com/lexproof/evidence-notary-backend/metrics"
)

// caseIDModulus truncates the derivation digest to nine decimal digits.
// Kept verbatim for compatibility with the deployed derivation; the
// resulting IDs are not uniformly distributed over the full 32-bit range.
var caseIDModulus = big.NewInt(1_000_000_000)

// DeriveCaseID computes the deterministic case ID for an ordered party pair
// and case name. The pair is order-sensitive: (A,B,name) and (B,A,name)
// yield different IDs.
func DeriveCaseID(partyA, partyB common.Address, caseName string) interfaces.CaseID {
	digest := crypto.Keccak256(partyA.Bytes(), partyB.Bytes(), []byte(caseName))
	n := new(big.Int).SetBytes(digest)
	n.Mod(n, caseIDModulus)
	return interfaces.CaseID(uint32(n.Uint64()))
}

// CredentialRegistry is an in-memory implementation of
// interfaces.CredentialRegistry. All state is guarded by a single RWMutex;
// mutations happen only through the public entry points.
type CredentialRegistry struct {
	mu sync.RWMutex

	cases     map[interfaces.CaseID]struct{}
	roles     map[common.Address]interfaces.Role
	balances  map[common.Address]map[interfaces.TokenID]uint64
	imageBase string

	owner common.Address
	sink  interfaces.EventSink
	log   *slog.Logger
}

// NewCredentialRegistry creates a registry owned by the given address.
// imageBase is the base location used when rendering credential metadata.
func NewCredentialRegistry(owner common.Address, imageBase string, sink interfaces.EventSink, log *slog.Logger) *CredentialRegistry {
	if sink == nil {
		sink = interfaces.NopSink{}
	}

	return &CredentialRegistry{
		cases:     make(map[interfaces.CaseID]struct{}),
		roles:     make(map[common.Address]interfaces.Role),
		balances:  make(map[common.Address]map[interfaces.TokenID]uint64),
		imageBase: imageBase,
		owner:     owner,
		sink:      sink,
		log:       log,
	}
}

// OpenCase derives a case ID for the party pair, marks the case as existing,
// assigns the Party role to both parties, and issues one Party credential
// each. A case ID, once created, is permanent: re-deriving the same triple
// fails with ErrCaseAlreadyExists rather than overwriting.
func (r *CredentialRegistry) OpenCase(partyA, partyB common.Address, caseName string) (interfaces.CaseID, error) {
	caseID := DeriveCaseID(partyA, partyB, caseName)

	r.mu.Lock()
	if _, exists := r.cases[caseID]; exists {
		r.mu.Unlock()
		return 0, interfaces.ErrCaseAlreadyExists
	}

	// Role assignment is global per address, not case-scoped. A party in
	// one case overwrites whatever role the address held before.
	r.roles[partyA] = interfaces.RoleParty
	r.roles[partyB] = interfaces.RoleParty

	if err := r.issueCredentialLocked(partyA, caseID); err != nil {
		r.mu.Unlock()
		return 0, err
	}
	if err := r.issueCredentialLocked(partyB, caseID); err != nil {
		r.mu.Unlock()
		return 0, err
	}

	r.cases[caseID] = struct{}{}
	r.mu.Unlock()

	r.log.Info("Case opened",
		slog.String("caseID", caseID.String()),
		slog.String("partyA", partyA.Hex()),
		slog.String("partyB", partyB.Hex()))
	metrics.CasesOpened.Inc()

	r.sink.Publish(interfaces.CaseOpenedEvent{
		PartyA: partyA,
		PartyB: partyB,
		CaseID: caseID,
	})

	return caseID, nil
}

// DoesCaseExist reports whether the case ID has been created.
func (r *CredentialRegistry) DoesCaseExist(id interfaces.CaseID) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, exists := r.cases[id]
	return exists
}

// RoleOf returns the current global role of an address.
func (r *CredentialRegistry) RoleOf(addr common.Address) interfaces.Role {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.roles[addr]
}

// BalanceOf returns the quantity of the given credential held by holder.
func (r *CredentialRegistry) BalanceOf(holder common.Address, id interfaces.TokenID) (uint64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.balances[holder][id], nil
}

// issueCredentialLocked mints quantity 1 of the credential encoding the
// recipient's current global role and the case ID. This is the only path by
// which credentials are created. Caller must hold the write lock.
func (r *CredentialRegistry) issueCredentialLocked(recipient common.Address, caseID interfaces.CaseID) error {
	role := r.roles[recipient]
	if role == interfaces.RoleUnassigned {
		return interfaces.ErrRecipientHasNoRole
	}

	tokenID := interfaces.NewTokenID(caseID, role)
	if r.balances[recipient] == nil {
		r.balances[recipient] = make(map[interfaces.TokenID]uint64)
	}
	r.balances[recipient][tokenID] += 1

	metrics.CredentialsIssued.Inc()
	return nil
}

// SafeTransferFrom rejects every transfer attempt. Credentials are
// permanently soulbound, including for the holder and the registry owner.
func (r *CredentialRegistry) SafeTransferFrom(caller, from, to common.Address, id interfaces.TokenID, amount uint64) error {
	return interfaces.ErrTransferNotAllowed
}

// SafeBatchTransferFrom rejects every batch transfer attempt.
func (r *CredentialRegistry) SafeBatchTransferFrom(caller, from, to common.Address, ids []interfaces.TokenID, amounts []uint64) error {
	return interfaces.ErrTransferNotAllowed
}

// SetApprovalForAll rejects every approval attempt, regardless of caller.
func (r *CredentialRegistry) SetApprovalForAll(caller, operator common.Address, approved bool) error {
	return interfaces.ErrTransferNotAllowed
}

// IsApprovedForAll always reports false; approvals can never be granted.
func (r *CredentialRegistry) IsApprovedForAll(owner, operator common.Address) bool {
	return false
}

// SetBaseImageLocation changes the base used for image locators in
// subsequent metadata renders. Does not rewrite previously rendered
// payloads; rendering is always computed fresh.
func (r *CredentialRegistry) SetBaseImageLocation(caller common.Address, base string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if caller != r.owner {
		return interfaces.ErrNotOwner
	}

	r.imageBase = base
	return nil
}

// Owner returns the registry owner address.
func (r *CredentialRegistry) Owner() common.Address {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.owner
}
