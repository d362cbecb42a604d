// Package main (cmd/notary_client) implements a command-line client for the
// notarization server.
//
// Subcommands cover the full API surface: opening cases, notarizing
// documents by hash or by uploading evidence files, querying documents by
// user or case, inspecting credentials and roles, and the owner-only
// administration operations (fee changes, withdrawal, ownership transfer,
// registry repointing).
//
// The --caller flag sets the address requests act as; it is sent in the
// X-Notary-Caller header and is required for submissions and admin
// operations.
//
// Example usage:
//
//	notary-client open-case --party-a=0x11.. --party-b=0x22.. --case-name="Smith v. Jones"
//	notary-client store --caller=0x11.. --case-id=123456789 --evidence-file=affidavit.pdf
//	notary-client list-case --case-id=123456789
package main
