package interfaces

import "errors"

var (
	// ErrCaseAlreadyExists is returned when opening a case whose derived ID
	// is already marked as existing. Callers must treat this as "already
	// done", not as a transient failure.
	ErrCaseAlreadyExists = errors.New("case already exists")

	// ErrRecipientHasNoRole is returned when issuing a credential to an
	// address whose current role is Unassigned.
	ErrRecipientHasNoRole = errors.New("recipient has no role")

	// ErrTransferNotAllowed is returned by every credential transfer and
	// approval entry point. Credentials are permanently soulbound.
	ErrTransferNotAllowed = errors.New("credential transfer not allowed")

	// ErrBusy is returned when a store operation arrives while another is
	// in flight. Retryable once the in-flight call completes.
	ErrBusy = errors.New("store operation already in progress")

	// ErrInsufficientFee is returned when the paid amount is below the
	// configured notarization fee.
	ErrInsufficientFee = errors.New("insufficient notarization fee")

	// ErrNotAuthorized is returned when the caller holds no party
	// credential for the case it is filing under.
	ErrNotAuthorized = errors.New("caller holds no party credential for case")

	// ErrDocumentAlreadyExists is returned when the (case, hash) pair is
	// already present in the cabinet.
	ErrDocumentAlreadyExists = errors.New("document already exists for case")

	// ErrDocumentDoesNotExist is returned when looking up an unfiled
	// (case, hash) pair.
	ErrDocumentDoesNotExist = errors.New("document does not exist")

	// ErrUserHasNoDocuments is returned when a user has never filed.
	ErrUserHasNoDocuments = errors.New("user has no documents")

	// ErrCaseHasNoDocuments is returned when no document was filed under a case.
	ErrCaseHasNoDocuments = errors.New("case has no documents")

	// ErrNotOwner is returned when an owner-only operation is invoked by a
	// different address.
	ErrNotOwner = errors.New("caller is not the owner")

	// ErrRenouncingOwnershipNotAllowed is returned when ownership transfer
	// targets the zero address. Ownership can never be abandoned.
	ErrRenouncingOwnershipNotAllowed = errors.New("renouncing ownership is not allowed")
)
