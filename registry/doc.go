// Package registry implements the credential registry for the evidence
// notarization system: deterministic case identity derivation, global role
// assignment, and soulbound access credential issuance.
//
// The package implements the interfaces.CredentialRegistry interface. A case
// is opened between two party addresses under a human-readable name; the
// triple deterministically derives a numeric case ID, both parties receive
// the Party role, and each is issued one non-transferrable access credential
// scoped to the case.
//
// # Case identity
//
// Case IDs are derived by hashing the ordered party pair together with the
// case name and truncating the digest to nine decimal digits:
//
//	caseID = keccak256(partyA || partyB || caseName) mod 10^9
//
// The derivation is order-sensitive: opening (A, B, "name") and
// (B, A, "name") produces two distinct cases. Once a case ID exists it is
// permanent; re-deriving the same triple fails rather than overwriting.
//
// # Credentials
//
// Credential token IDs compose the case ID with a role code:
//
//	tokenID = caseID*10 + roleCode
//
// so both components can be decoded from the ID alone. Credentials are
// soulbound: every transfer and approval entry point fails unconditionally,
// for the holder, the registry owner, and third parties alike.
//
// Role assignment is global per address rather than case-scoped. An address
// that is a party in any case holds the Party role everywhere; the
// case-scoped distinction lives in the credential token IDs, not the role
// map.
//
// # Metadata
//
// Credential metadata is a pure function of the token ID and the configured
// base image location, rendered fresh on every request and exposed as a
// self-contained data:application/json;base64 URI.
//
// # Usage Example
//
//	sink := common.NewSlogEventSink(logger)
//	reg := registry.NewCredentialRegistry(owner, "ipfs://images/", sink, logger)
//
//	caseID, err := reg.OpenCase(partyA, partyB, "Smith v. Jones")
//	if err != nil {
//	    log.Fatalf("Failed to open case: %v", err)
//	}
//
//	// Both parties now hold one Party credential for the case
//	balance, _ := reg.BalanceOf(partyA, interfaces.NewTokenID(caseID, interfaces.RoleParty))
package registry
