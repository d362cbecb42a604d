// Package notary implements the notarization ledger: an append-only cabinet
// of document-existence records with per-user and per-case indexes, fee
// collection, and owner administration.
//
// The package implements the interfaces.NotaryLedger interface. A document
// record binds a 32-byte content hash to the case it was filed under, the
// submitting address, and an off-chain storage pointer. The uniqueness
// domain is the (case, hash) pair: the same hash may be notarized under
// several cases, but never twice under the same one. Records are created
// exactly once and are immutable thereafter.
//
// # Authorization
//
// Document submission is gated on the credential registry: the caller must
// hold at least one Party credential for the target case. The check is an
// external call made through the interfaces.CredentialVerifier seam, so the
// verifier can be the in-process registry or a remote one.
//
// Because the verifier is external, submissions run under a reentrancy
// guard: at most one store operation is in flight at a time, and a second
// submission arriving while the first is between its authorization check
// and its commit fails with ErrBusy instead of observing half-applied
// state. Every failure path releases the guard and leaves the ledger
// unmodified.
//
// # Fees
//
// Each submission must pay at least the configured fee, denominated in wei.
// Overpayment is retained in full; there are no refunds. The accumulated
// balance is swept to the owner with WithdrawFunds.
//
// # Administration
//
// Fee changes, registry repointing, and ownership transfer are restricted
// to the owner. Ownership can never be abandoned: transferring to the zero
// address is rejected unconditionally.
package notary
