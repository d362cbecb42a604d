package httpserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/big"
	"net/http"

	"github.com/ethereum/go-ethereum/common"
)

// Administrative endpoints. Every operation is owner-gated inside the
// components; the handler only extracts the caller address and forwards it.

type setFeeRequest struct {
	FeeWei string `json:"fee_wei"`
}

// HandleSetFee changes the notarization fee.
//
// URL format: POST /api/admin/fee
func (h *Handler) HandleSetFee(w http.ResponseWriter, r *http.Request) {
	caller, err := callerAddress(r)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err)
		return
	}

	var req setFeeRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodySize)).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}

	fee, ok := new(big.Int).SetString(req.FeeWei, 10)
	if !ok || fee.Sign() < 0 {
		h.writeError(w, http.StatusBadRequest, fmt.Errorf("invalid fee_wei amount: %q", req.FeeWei))
		return
	}

	if err := h.ledger.SetFee(caller, fee); err != nil {
		h.writeError(w, statusForError(err), err)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{"fee_wei": fee.String()})
}

type setRegistryRequest struct {
	Address string `json:"address"`
}

// HandleSetRegistry repoints the ledger's authorization dependency. The
// in-process credential registry stays the verifier; the recorded address
// changes for subsequent calls.
//
// URL format: POST /api/admin/registry
func (h *Handler) HandleSetRegistry(w http.ResponseWriter, r *http.Request) {
	caller, err := callerAddress(r)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err)
		return
	}

	var req setRegistryRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodySize)).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}

	if !common.IsHexAddress(req.Address) {
		h.writeError(w, http.StatusBadRequest, fmt.Errorf("invalid registry address: %s", req.Address))
		return
	}

	if err := h.ledger.SetCredentialRegistry(caller, common.HexToAddress(req.Address), h.registry); err != nil {
		h.writeError(w, statusForError(err), err)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{"address": common.HexToAddress(req.Address).Hex()})
}

type transferOwnershipRequest struct {
	NewOwner string `json:"new_owner"`
}

// HandleTransferOwnership hands the ledger to a new owner.
//
// URL format: POST /api/admin/owner
func (h *Handler) HandleTransferOwnership(w http.ResponseWriter, r *http.Request) {
	caller, err := callerAddress(r)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err)
		return
	}

	var req transferOwnershipRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodySize)).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}

	if !common.IsHexAddress(req.NewOwner) {
		h.writeError(w, http.StatusBadRequest, fmt.Errorf("invalid owner address: %s", req.NewOwner))
		return
	}

	if err := h.ledger.TransferOwnership(caller, common.HexToAddress(req.NewOwner)); err != nil {
		h.writeError(w, statusForError(err), err)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{"owner": common.HexToAddress(req.NewOwner).Hex()})
}

// HandleWithdraw sweeps the accumulated fee balance to the current owner.
//
// URL format: POST /api/admin/withdraw
func (h *Handler) HandleWithdraw(w http.ResponseWriter, r *http.Request) {
	caller, err := callerAddress(r)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err)
		return
	}

	swept, err := h.ledger.WithdrawFunds(caller)
	if err != nil {
		h.writeError(w, statusForError(err), err)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{"amount_wei": swept.String()})
}

type setImageBaseRequest struct {
	Base string `json:"base"`
}

// HandleSetImageBase changes the base location used for credential image
// locators in subsequent metadata renders.
//
// URL format: POST /api/admin/image-base
func (h *Handler) HandleSetImageBase(w http.ResponseWriter, r *http.Request) {
	caller, err := callerAddress(r)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err)
		return
	}

	var req setImageBaseRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodySize)).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}
	if req.Base == "" {
		h.writeError(w, http.StatusBadRequest, errors.New("base must not be empty"))
		return
	}

	if err := h.registry.SetBaseImageLocation(caller, req.Base); err != nil {
		h.writeError(w, statusForError(err), err)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{"base": req.Base})
}

// HandleLedgerInfo exposes the ledger's configuration surface: current fee,
// owner, registry address, and unswept balance.
//
// URL format: GET /api/ledger
func (h *Handler) HandleLedgerInfo(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{
		"fee_wei":          h.ledger.Fee().String(),
		"owner":            h.ledger.Owner().Hex(),
		"registry_address": h.ledger.RegistryAddress().Hex(),
		"collected_wei":    h.ledger.CollectedBalance().String(),
	})
}
