package notary

import (
	"log/slog"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/lexproof/evidence-notary-backend/interfaces"
)

// SetCredentialRegistry repoints the authorization dependency. Takes effect
// for the next store operation after commit, never retroactively.
func (l *Ledger) SetCredentialRegistry(caller, registryAddr common.Address, verifier interfaces.CredentialVerifier) error {
	l.mu.Lock()
	if caller != l.owner {
		l.mu.Unlock()
		return interfaces.ErrNotOwner
	}

	oldAddr := l.registryAddr
	l.registryAddr = registryAddr
	l.verifier = verifier
	l.mu.Unlock()

	l.log.Info("Credential registry repointed",
		slog.String("oldAddress", oldAddr.Hex()),
		slog.String("newAddress", registryAddr.Hex()))
	l.sink.Publish(interfaces.RegistryAddressChangedEvent{
		OldAddress: oldAddr,
		NewAddress: registryAddr,
	})

	return nil
}

// SetFee changes the notarization fee for subsequent submissions.
func (l *Ledger) SetFee(caller common.Address, fee *big.Int) error {
	l.mu.Lock()
	if caller != l.owner {
		l.mu.Unlock()
		return interfaces.ErrNotOwner
	}

	oldFee := l.fee
	l.fee = new(big.Int).Set(fee)
	l.mu.Unlock()

	l.log.Info("Fee changed",
		slog.String("oldFee", oldFee.String()),
		slog.String("newFee", fee.String()))
	l.sink.Publish(interfaces.FeeChangedEvent{
		OldFee: oldFee,
		NewFee: new(big.Int).Set(fee),
	})

	return nil
}

// TransferOwnership hands the ledger to a new owner. Ownership can never be
// abandoned: the zero address is rejected unconditionally.
func (l *Ledger) TransferOwnership(caller, newOwner common.Address) error {
	l.mu.Lock()
	if caller != l.owner {
		l.mu.Unlock()
		return interfaces.ErrNotOwner
	}
	if newOwner == (common.Address{}) {
		l.mu.Unlock()
		return interfaces.ErrRenouncingOwnershipNotAllowed
	}

	oldOwner := l.owner
	l.owner = newOwner
	l.mu.Unlock()

	l.log.Info("Ownership transferred",
		slog.String("oldOwner", oldOwner.Hex()),
		slog.String("newOwner", newOwner.Hex()))
	l.sink.Publish(interfaces.OwnershipTransferredEvent{
		OldOwner: oldOwner,
		NewOwner: newOwner,
	})

	return nil
}

// WithdrawFunds sweeps the entire accumulated fee balance to the current
// owner and returns the swept amount.
func (l *Ledger) WithdrawFunds(caller common.Address) (*big.Int, error) {
	l.mu.Lock()
	if caller != l.owner {
		l.mu.Unlock()
		return nil, interfaces.ErrNotOwner
	}

	swept := l.collected
	l.collected = new(big.Int)
	owner := l.owner
	l.mu.Unlock()

	l.log.Info("Funds withdrawn",
		slog.String("to", owner.Hex()),
		slog.String("amount", swept.String()))
	l.sink.Publish(interfaces.FundsWithdrawnEvent{
		To:     owner,
		Amount: new(big.Int).Set(swept),
	})

	return swept, nil
}
