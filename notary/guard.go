package notary

import (
	"go.uber.org/atomic"

	"github.com/lexproof/evidence-notary-backend/interfaces"
)

// reentrancyGuard permits at most one in-flight store operation. It is a
// reentrancy guard, not a thread mutex: the authorization check calls out
// to the credential registry, which in an adversarial setting could call
// back into the ledger before the first invocation commits.
//
// Acquire and release are scoped: every exit path of the guarded operation
// must release, or the operation deadlocks for all future callers.
type reentrancyGuard struct {
	busy atomic.Bool
}

// acquire marks an operation in flight. Fails with ErrBusy if one already is.
func (g *reentrancyGuard) acquire() error {
	if !g.busy.CompareAndSwap(false, true) {
		return interfaces.ErrBusy
	}
	return nil
}

// release clears the in-flight flag.
func (g *reentrancyGuard) release() {
	g.busy.Store(false)
}
