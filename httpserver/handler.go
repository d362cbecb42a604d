package httpserver

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/big"
	"net/http"
	"strconv"

	"github.com/ethereum/go-ethereum/common"
	"github.com/go-chi/chi/v5"

	"github.com/lexproof/evidence-notary-backend/interfaces"
)

// Header constants used in HTTP requests.
const (
	// CallerHeader carries the hex address the request acts as. All
	// authorization decisions are made against this address.
	CallerHeader = "X-Notary-Caller"

	// maxBodySize is the maximum allowed request body size (1MB).
	maxBodySize = 1024 * 1024

	// maxEvidenceSize is the maximum allowed inline evidence payload (16MB).
	maxEvidenceSize = 16 * 1024 * 1024
)

// RequestError provides structured error information for HTTP responses.
type RequestError struct {
	// StatusCode is the HTTP status code to return.
	StatusCode int

	// Err is the underlying error.
	Err error
}

// Error returns the error message from the underlying error.
func (e *RequestError) Error() string {
	return e.Err.Error()
}

// statusForError maps the typed error taxonomy onto HTTP status codes.
func statusForError(err error) int {
	switch {
	case errors.Is(err, interfaces.ErrCaseAlreadyExists),
		errors.Is(err, interfaces.ErrDocumentAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, interfaces.ErrNotOwner),
		errors.Is(err, interfaces.ErrNotAuthorized),
		errors.Is(err, interfaces.ErrTransferNotAllowed),
		errors.Is(err, interfaces.ErrRecipientHasNoRole):
		return http.StatusForbidden
	case errors.Is(err, interfaces.ErrInsufficientFee):
		return http.StatusPaymentRequired
	case errors.Is(err, interfaces.ErrBusy):
		return http.StatusServiceUnavailable
	case errors.Is(err, interfaces.ErrDocumentDoesNotExist),
		errors.Is(err, interfaces.ErrUserHasNoDocuments),
		errors.Is(err, interfaces.ErrCaseHasNoDocuments):
		return http.StatusNotFound
	case errors.Is(err, interfaces.ErrRenouncingOwnershipNotAllowed):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// Handler processes HTTP requests for the notarization service. It fronts
// the credential registry, the notarization ledger, and the evidence
// storage backend.
type Handler struct {
	registry interfaces.CredentialRegistry
	ledger   interfaces.NotaryLedger
	evidence interfaces.StorageBackend
	log      *slog.Logger
}

// NewHandler creates a new HTTP request handler. evidence may be nil, in
// which case document submissions must carry a pre-computed hash and
// storage pointer instead of inline evidence bytes.
func NewHandler(registry interfaces.CredentialRegistry, ledger interfaces.NotaryLedger, evidence interfaces.StorageBackend, log *slog.Logger) *Handler {
	return &Handler{
		registry: registry,
		ledger:   ledger,
		evidence: evidence,
		log:      log,
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, err error) {
	h.log.Debug("Request failed", "err", err, slog.Int("status", status))
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

// callerAddress extracts and validates the caller address header.
func callerAddress(r *http.Request) (common.Address, error) {
	raw := r.Header.Get(CallerHeader)
	if raw == "" {
		return common.Address{}, fmt.Errorf("missing %s header", CallerHeader)
	}
	if !common.IsHexAddress(raw) {
		return common.Address{}, fmt.Errorf("invalid caller address: %s", raw)
	}
	return common.HexToAddress(raw), nil
}

func parseCaseID(raw string) (interfaces.CaseID, error) {
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid case ID %q: %w", raw, err)
	}
	return interfaces.CaseID(id), nil
}

type openCaseRequest struct {
	PartyA   string `json:"party_a"`
	PartyB   string `json:"party_b"`
	CaseName string `json:"case_name"`
}

type openCaseResponse struct {
	CaseID interfaces.CaseID `json:"case_id"`
}

// HandleOpenCase processes case-opening requests.
//
// URL format: POST /api/cases
// Request body: {"party_a": "0x..", "party_b": "0x..", "case_name": ".."}
func (h *Handler) HandleOpenCase(w http.ResponseWriter, r *http.Request) {
	var req openCaseRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodySize)).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}

	if !common.IsHexAddress(req.PartyA) || !common.IsHexAddress(req.PartyB) {
		h.writeError(w, http.StatusBadRequest, errors.New("party addresses must be valid hex addresses"))
		return
	}

	caseID, err := h.registry.OpenCase(common.HexToAddress(req.PartyA), common.HexToAddress(req.PartyB), req.CaseName)
	if err != nil {
		h.writeError(w, statusForError(err), err)
		return
	}

	h.writeJSON(w, http.StatusCreated, openCaseResponse{CaseID: caseID})
}

// HandleCaseExists reports whether a case ID has been created.
//
// URL format: GET /api/cases/{case_id}
func (h *Handler) HandleCaseExists(w http.ResponseWriter, r *http.Request) {
	caseID, err := parseCaseID(chi.URLParam(r, "case_id"))
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]any{
		"case_id": caseID,
		"exists":  h.registry.DoesCaseExist(caseID),
	})
}

// HandleCredentialMetadata renders the self-contained metadata payload for
// a credential token ID.
//
// URL format: GET /api/credentials/{token_id}/metadata
func (h *Handler) HandleCredentialMetadata(w http.ResponseWriter, r *http.Request) {
	tokenID, err := strconv.ParseUint(chi.URLParam(r, "token_id"), 10, 64)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, fmt.Errorf("invalid token ID: %w", err))
		return
	}

	h.writeJSON(w, http.StatusOK, h.registry.Metadata(interfaces.TokenID(tokenID)))
}

// HandleCredentialURI renders the metadata payload as a self-contained
// data:application/json;base64 URI.
//
// URL format: GET /api/credentials/{token_id}/uri
func (h *Handler) HandleCredentialURI(w http.ResponseWriter, r *http.Request) {
	tokenID, err := strconv.ParseUint(chi.URLParam(r, "token_id"), 10, 64)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, fmt.Errorf("invalid token ID: %w", err))
		return
	}

	uri, err := h.registry.URI(interfaces.TokenID(tokenID))
	if err != nil {
		h.writeError(w, statusForError(err), err)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{"uri": uri})
}

// HandleCredentialBalance returns the quantity of a credential held by an
// address.
//
// URL format: GET /api/credentials/{token_id}/holders/{address}
func (h *Handler) HandleCredentialBalance(w http.ResponseWriter, r *http.Request) {
	tokenID, err := strconv.ParseUint(chi.URLParam(r, "token_id"), 10, 64)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, fmt.Errorf("invalid token ID: %w", err))
		return
	}

	raw := chi.URLParam(r, "address")
	if !common.IsHexAddress(raw) {
		h.writeError(w, http.StatusBadRequest, fmt.Errorf("invalid address: %s", raw))
		return
	}

	balance, err := h.registry.BalanceOf(common.HexToAddress(raw), interfaces.TokenID(tokenID))
	if err != nil {
		h.writeError(w, statusForError(err), err)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]any{
		"token_id": tokenID,
		"holder":   common.HexToAddress(raw).Hex(),
		"balance":  balance,
	})
}

// HandleRole returns the current global role of an address.
//
// URL format: GET /api/roles/{address}
func (h *Handler) HandleRole(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "address")
	if !common.IsHexAddress(raw) {
		h.writeError(w, http.StatusBadRequest, fmt.Errorf("invalid address: %s", raw))
		return
	}

	role := h.registry.RoleOf(common.HexToAddress(raw))
	h.writeJSON(w, http.StatusOK, map[string]any{
		"address":   common.HexToAddress(raw).Hex(),
		"role":      role.String(),
		"role_code": uint8(role),
	})
}

type storeDocumentRequest struct {
	// Hash is the 64-char hex document digest. Required unless Evidence
	// is provided.
	Hash string `json:"hash,omitempty"`

	// CaseID the document is filed under.
	CaseID interfaces.CaseID `json:"case_id"`

	// StoragePointer locates the document bytes off-chain. Required
	// unless Evidence is provided.
	StoragePointer string `json:"storage_pointer,omitempty"`

	// Evidence is optional base64-encoded document content. When present
	// the service stores it in the evidence backend and derives both the
	// hash and the storage pointer.
	Evidence string `json:"evidence,omitempty"`

	// PaidWei is the fee payment in wei, as a decimal string.
	PaidWei string `json:"paid_wei"`
}

// HandleStoreDocument processes document notarization requests.
//
// URL format: POST /api/documents
// Required headers:
//   - X-Notary-Caller: hex address of the submitting party
func (h *Handler) HandleStoreDocument(w http.ResponseWriter, r *http.Request) {
	caller, err := callerAddress(r)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err)
		return
	}

	var req storeDocumentRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxEvidenceSize)).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}

	paid, ok := new(big.Int).SetString(req.PaidWei, 10)
	if !ok {
		h.writeError(w, http.StatusBadRequest, fmt.Errorf("invalid paid_wei amount: %q", req.PaidWei))
		return
	}

	var hash interfaces.DocumentHash
	pointer := req.StoragePointer

	if req.Evidence != "" {
		if h.evidence == nil {
			h.writeError(w, http.StatusBadRequest, errors.New("inline evidence not supported: no storage backend configured"))
			return
		}

		data, err := base64.StdEncoding.DecodeString(req.Evidence)
		if err != nil {
			h.writeError(w, http.StatusBadRequest, fmt.Errorf("invalid evidence encoding: %w", err))
			return
		}

		id, storedPointer, err := h.evidence.Store(r.Context(), data)
		if err != nil {
			h.writeError(w, http.StatusBadGateway, fmt.Errorf("evidence storage failed: %w", err))
			return
		}

		hash = interfaces.DocumentHash(id)
		pointer = storedPointer
	} else {
		hash, err = interfaces.NewDocumentHashFromHex(req.Hash)
		if err != nil {
			h.writeError(w, http.StatusBadRequest, err)
			return
		}
		if pointer == "" {
			h.writeError(w, http.StatusBadRequest, errors.New("storage_pointer is required without inline evidence"))
			return
		}
	}

	if err := h.ledger.StoreDocumentHash(caller, hash, req.CaseID, pointer, paid); err != nil {
		h.writeError(w, statusForError(err), err)
		return
	}

	h.writeJSON(w, http.StatusCreated, map[string]any{
		"hash":            hash.String(),
		"case_id":         req.CaseID,
		"storage_pointer": pointer,
	})
}

// HandleGetDocument returns the full record for a (case, hash) pair.
//
// URL format: GET /api/documents/{case_id}/{hash}
func (h *Handler) HandleGetDocument(w http.ResponseWriter, r *http.Request) {
	caseID, err := parseCaseID(chi.URLParam(r, "case_id"))
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err)
		return
	}

	hash, err := interfaces.NewDocumentHashFromHex(chi.URLParam(r, "hash"))
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err)
		return
	}

	doc, err := h.ledger.GetDocument(hash, caseID)
	if err != nil {
		h.writeError(w, statusForError(err), err)
		return
	}

	h.writeJSON(w, http.StatusOK, doc)
}

// HandleDocumentsByUser lists every hash an address has filed.
//
// URL format: GET /api/users/{address}/documents
func (h *Handler) HandleDocumentsByUser(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "address")
	if !common.IsHexAddress(raw) {
		h.writeError(w, http.StatusBadRequest, fmt.Errorf("invalid address: %s", raw))
		return
	}

	hashes, err := h.ledger.GetDocumentsByUser(common.HexToAddress(raw))
	if err != nil {
		h.writeError(w, statusForError(err), err)
		return
	}

	h.writeJSON(w, http.StatusOK, hashesResponse(hashes))
}

// HandleDocumentsByCase lists every hash filed under a case.
//
// URL format: GET /api/cases/{case_id}/documents
func (h *Handler) HandleDocumentsByCase(w http.ResponseWriter, r *http.Request) {
	caseID, err := parseCaseID(chi.URLParam(r, "case_id"))
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err)
		return
	}

	hashes, err := h.ledger.GetDocumentsByCaseID(caseID)
	if err != nil {
		h.writeError(w, statusForError(err), err)
		return
	}

	h.writeJSON(w, http.StatusOK, hashesResponse(hashes))
}

// HandleFetchEvidence streams stored evidence bytes back by content ID.
//
// URL format: GET /api/evidence/{id}
func (h *Handler) HandleFetchEvidence(w http.ResponseWriter, r *http.Request) {
	if h.evidence == nil {
		h.writeError(w, http.StatusNotFound, errors.New("no evidence storage backend configured"))
		return
	}

	id, err := interfaces.NewEvidenceIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err)
		return
	}

	data, err := h.evidence.Fetch(r.Context(), id)
	if err != nil {
		status := http.StatusBadGateway
		if errors.Is(err, interfaces.ErrContentNotFound) {
			status = http.StatusNotFound
		}
		h.writeError(w, status, err)
		return
	}

	w.Header().Set("Content-Type", "application/octet-stream")
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

func hashesResponse(hashes []interfaces.DocumentHash) map[string]any {
	out := make([]string, len(hashes))
	for i, h := range hashes {
		out[i] = h.String()
	}
	return map[string]any{"hashes": out}
}
