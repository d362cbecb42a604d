package interfaces

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// Event is a notification emitted by a component after a successful commit.
type Event interface {
	// EventName returns a stable identifier for the notification kind.
	EventName() string
}

// EventSink receives component notifications. Publish must not fail the
// emitting operation; sinks log or drop on their own errors.
type EventSink interface {
	Publish(event Event)
}

// CaseOpenedEvent is emitted when a case is created and both party
// credentials have been issued.
type CaseOpenedEvent struct {
	PartyA common.Address
	PartyB common.Address
	CaseID CaseID
}

func (CaseOpenedEvent) EventName() string { return "CaseOpened" }

// DocumentFiledEvent is emitted when a document is committed to the cabinet.
type DocumentFiledEvent struct {
	Hash           DocumentHash
	CaseID         CaseID
	StoragePointer string
}

func (DocumentFiledEvent) EventName() string { return "DocumentFiled" }

// FeeChangedEvent is emitted when the owner changes the notarization fee.
type FeeChangedEvent struct {
	OldFee *big.Int
	NewFee *big.Int
}

func (FeeChangedEvent) EventName() string { return "FeeChanged" }

// RegistryAddressChangedEvent is emitted when the ledger's authorization
// dependency is repointed.
type RegistryAddressChangedEvent struct {
	OldAddress common.Address
	NewAddress common.Address
}

func (RegistryAddressChangedEvent) EventName() string { return "RegistryAddressChanged" }

// OwnershipTransferredEvent is emitted when the ledger changes owner.
type OwnershipTransferredEvent struct {
	OldOwner common.Address
	NewOwner common.Address
}

func (OwnershipTransferredEvent) EventName() string { return "OwnershipTransferred" }

// FundsWithdrawnEvent is emitted when the accumulated fee balance is swept.
type FundsWithdrawnEvent struct {
	To     common.Address
	Amount *big.Int
}

func (FundsWithdrawnEvent) EventName() string { return "FundsWithdrawn" }

// NopSink discards all events.
type NopSink struct{}

// Publish implements EventSink.
func (NopSink) Publish(Event) {}
