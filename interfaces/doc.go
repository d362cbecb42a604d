// Package interfaces defines the shared types, typed errors, and component
// contracts of the evidence notarization system.
//
// The system has two coupled components:
//
// CredentialRegistry owns case identity derivation, role assignment, and
// non-transferrable (soulbound) credential issuance. Case IDs are derived
// deterministically from the ordered party pair and case name; credentials
// encode the case and role in a composite token ID (caseID*10 + roleCode).
//
// NotaryLedger records tamper-evident proofs of document existence scoped to
// a case. Submissions are deduplicated per (case, hash) pair, charged a
// configurable fee, and guarded against reentrancy. The ledger authorizes
// submitters through the CredentialVerifier seam: a caller must hold at
// least one Party credential for the case it files under.
//
// All failures are explicit typed errors declared in this package; every
// error aborts the operation with no partial state mutation.
package interfaces
