package notary

import (
	"fmt"
	"log/slog"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/common"

	"github.com/lexproof/evidence-notary-backend/interfaces"
	"github.com/lexproof/evidence-notary-backend/metrics"
)

// DefaultFee is the notarization fee configured at deployment, in wei.
// Mutable by the owner thereafter.
var DefaultFee = big.NewInt(1_000_000_000_000_000)

// docKey is the uniqueness domain of the cabinet: the same hash may be
// re-filed under a different case, but not twice under the same case.
type docKey struct {
	caseID interfaces.CaseID
	hash   interfaces.DocumentHash
}

// Ledger is an in-memory implementation of interfaces.NotaryLedger. State
// is guarded by a single RWMutex; document submission is additionally
// serialized by a reentrancy guard around the external authorization call.
type Ledger struct {
	mu    sync.RWMutex
	guard reentrancyGuard

	documents map[docKey]interfaces.Document
	userDocs  map[common.Address][]interfaces.DocumentHash
	caseDocs  map[interfaces.CaseID][]interfaces.DocumentHash

	fee       *big.Int
	collected *big.Int

	owner        common.Address
	registryAddr common.Address
	verifier     interfaces.CredentialVerifier

	sink interfaces.EventSink
	log  *slog.Logger
}

// NewLedger creates a ledger owned by the given address, authorizing
// submissions against the provided credential verifier. The fee starts at
// DefaultFee.
func NewLedger(owner, registryAddr common.Address, verifier interfaces.CredentialVerifier, sink interfaces.EventSink, log *slog.Logger) *Ledger {
	if sink == nil {
		sink = interfaces.NopSink{}
	}

	return &Ledger{
		documents:    make(map[docKey]interfaces.Document),
		userDocs:     make(map[common.Address][]interfaces.DocumentHash),
		caseDocs:     make(map[interfaces.CaseID][]interfaces.DocumentHash),
		fee:          new(big.Int).Set(DefaultFee),
		collected:    new(big.Int),
		owner:        owner,
		registryAddr: registryAddr,
		verifier:     verifier,
		sink:         sink,
		log:          log,
	}
}

// StoreDocumentHash records a document under a case. The caller must hold
// at least one Party credential for the case, pay at least the configured
// fee, and the (case, hash) pair must not already be recorded. Overpayment
// is retained; there are no refunds.
//
// Every failure path releases the guard and leaves no state mutated.
func (l *Ledger) StoreDocumentHash(caller common.Address, hash interfaces.DocumentHash, caseID interfaces.CaseID, storagePointer string, paid *big.Int) error {
	if err := l.guard.acquire(); err != nil {
		metrics.StoreFailures.WithLabelValues("busy").Inc()
		return err
	}
	defer l.guard.release()

	// The authorization check is an external call made outside the state
	// lock; the guard alone serializes store operations across it.
	l.mu.RLock()
	verifier := l.verifier
	l.mu.RUnlock()

	partyToken := interfaces.NewTokenID(caseID, interfaces.RoleParty)
	balance, err := verifier.BalanceOf(caller, partyToken)
	if err != nil {
		metrics.StoreFailures.WithLabelValues("verifier").Inc()
		return fmt.Errorf("credential check failed: %w", err)
	}
	if balance == 0 {
		metrics.StoreFailures.WithLabelValues("unauthorized").Inc()
		return interfaces.ErrNotAuthorized
	}

	l.mu.Lock()
	if paid == nil || paid.Cmp(l.fee) < 0 {
		l.mu.Unlock()
		metrics.StoreFailures.WithLabelValues("fee").Inc()
		return interfaces.ErrInsufficientFee
	}

	key := docKey{caseID: caseID, hash: hash}
	if _, exists := l.documents[key]; exists {
		l.mu.Unlock()
		metrics.StoreFailures.WithLabelValues("duplicate").Inc()
		return interfaces.ErrDocumentAlreadyExists
	}

	l.documents[key] = interfaces.Document{
		Hash:           hash,
		Submitter:      caller,
		CaseID:         caseID,
		StoragePointer: storagePointer,
	}
	l.userDocs[caller] = append(l.userDocs[caller], hash)
	l.caseDocs[caseID] = append(l.caseDocs[caseID], hash)
	l.collected.Add(l.collected, paid)
	l.mu.Unlock()

	l.log.Info("Document filed",
		slog.String("hash", hash.String()),
		slog.String("caseID", caseID.String()),
		slog.String("submitter", caller.Hex()),
		slog.String("storagePointer", storagePointer))
	metrics.DocumentsFiled.Inc()
	paidApprox, _ := new(big.Float).SetInt(paid).Float64()
	metrics.FeesCollected.Add(paidApprox)

	l.sink.Publish(interfaces.DocumentFiledEvent{
		Hash:           hash,
		CaseID:         caseID,
		StoragePointer: storagePointer,
	})

	return nil
}

// GetDocument returns the full record for a (hash, case) pair, or
// ErrDocumentDoesNotExist if it was never filed.
func (l *Ledger) GetDocument(hash interfaces.DocumentHash, caseID interfaces.CaseID) (interfaces.Document, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	doc, exists := l.documents[docKey{caseID: caseID, hash: hash}]
	if !exists {
		return interfaces.Document{}, interfaces.ErrDocumentDoesNotExist
	}
	return doc, nil
}

// GetDocumentsByUser returns every hash the address has filed, in
// submission order, or ErrUserHasNoDocuments if it never filed.
func (l *Ledger) GetDocumentsByUser(addr common.Address) ([]interfaces.DocumentHash, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	hashes := l.userDocs[addr]
	if len(hashes) == 0 {
		return nil, interfaces.ErrUserHasNoDocuments
	}

	// Return a copy to prevent modification of internal state
	out := make([]interfaces.DocumentHash, len(hashes))
	copy(out, hashes)
	return out, nil
}

// GetDocumentsByCaseID returns every hash filed under the case, in
// submission order, or ErrCaseHasNoDocuments if the case is empty.
func (l *Ledger) GetDocumentsByCaseID(caseID interfaces.CaseID) ([]interfaces.DocumentHash, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	hashes := l.caseDocs[caseID]
	if len(hashes) == 0 {
		return nil, interfaces.ErrCaseHasNoDocuments
	}

	out := make([]interfaces.DocumentHash, len(hashes))
	copy(out, hashes)
	return out, nil
}

// Fee returns the currently configured notarization fee.
func (l *Ledger) Fee() *big.Int {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return new(big.Int).Set(l.fee)
}

// Owner returns the current owner address.
func (l *Ledger) Owner() common.Address {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return l.owner
}

// CollectedBalance returns the accumulated, unswept fee balance.
func (l *Ledger) CollectedBalance() *big.Int {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return new(big.Int).Set(l.collected)
}

// RegistryAddress returns the address of the credential registry the
// ledger authorizes against.
func (l *Ledger) RegistryAddress() common.Address {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return l.registryAddr
}
