// Package client provides an HTTP client for the notarization service API.
// It mirrors the server's JSON request and response shapes and injects the
// caller address header used for authorization.
package client

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"math/big"
	"net/http"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"github.com/lexproof/evidence-notary-backend/httpserver"
	"github.com/lexproof/evidence-notary-backend/interfaces"
)

// Client provides methods for interacting with the notarization API.
type Client struct {
	baseURL    string
	caller     common.Address
	httpClient *http.Client
}

// New creates a client for the notarization API.
//
// Parameters:
//   - baseURL: The base URL of the API server (e.g., "http://localhost:8080")
//   - caller: The address requests act as; sent in the caller header
//   - timeout: Request timeout duration (optional, default 30 seconds)
func New(baseURL string, caller common.Address, timeout ...time.Duration) *Client {
	clientTimeout := 30 * time.Second
	if len(timeout) > 0 {
		clientTimeout = timeout[0]
	}

	return &Client{
		baseURL: baseURL,
		caller:  caller,
		httpClient: &http.Client{
			Timeout: clientTimeout,
		},
	}
}

func (c *Client) doJSON(method, url string, reqBody any, out any) error {
	var bodyReader io.Reader
	if reqBody != nil {
		reqJSON, err := json.Marshal(reqBody)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(reqJSON)
	}

	req, err := http.NewRequest(method, url, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if reqBody != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set(httpserver.CallerHeader, c.caller.Hex())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("request failed with code %d: %s", resp.StatusCode, string(body))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

// OpenCase creates a new case between two parties and returns the derived
// case ID.
func (c *Client) OpenCase(partyA, partyB common.Address, caseName string) (interfaces.CaseID, error) {
	reqBody := map[string]string{
		"party_a":   partyA.Hex(),
		"party_b":   partyB.Hex(),
		"case_name": caseName,
	}

	var result struct {
		CaseID interfaces.CaseID `json:"case_id"`
	}
	if err := c.doJSON("POST", fmt.Sprintf("%s/api/cases", c.baseURL), reqBody, &result); err != nil {
		return 0, err
	}
	return result.CaseID, nil
}

// CaseExists reports whether the given case ID has been created.
func (c *Client) CaseExists(caseID interfaces.CaseID) (bool, error) {
	var result struct {
		Exists bool `json:"exists"`
	}
	if err := c.doJSON("GET", fmt.Sprintf("%s/api/cases/%d", c.baseURL, caseID), nil, &result); err != nil {
		return false, err
	}
	return result.Exists, nil
}

// CredentialMetadata fetches the rendered metadata for a credential token.
func (c *Client) CredentialMetadata(tokenID interfaces.TokenID) (interfaces.TokenMetadata, error) {
	var result interfaces.TokenMetadata
	err := c.doJSON("GET", fmt.Sprintf("%s/api/credentials/%d/metadata", c.baseURL, tokenID), nil, &result)
	return result, err
}

// CredentialURI fetches the credential metadata rendered as a
// data:application/json;base64 URI.
func (c *Client) CredentialURI(tokenID interfaces.TokenID) (string, error) {
	var result struct {
		URI string `json:"uri"`
	}
	if err := c.doJSON("GET", fmt.Sprintf("%s/api/credentials/%d/uri", c.baseURL, tokenID), nil, &result); err != nil {
		return "", err
	}
	return result.URI, nil
}

// CredentialBalance returns the quantity of a credential held by an address.
func (c *Client) CredentialBalance(holder common.Address, tokenID interfaces.TokenID) (uint64, error) {
	var result struct {
		Balance uint64 `json:"balance"`
	}
	url := fmt.Sprintf("%s/api/credentials/%d/holders/%s", c.baseURL, tokenID, holder.Hex())
	if err := c.doJSON("GET", url, nil, &result); err != nil {
		return 0, err
	}
	return result.Balance, nil
}

// RoleOf returns the global role name recorded for an address.
func (c *Client) RoleOf(addr common.Address) (string, error) {
	var result struct {
		Role string `json:"role"`
	}
	if err := c.doJSON("GET", fmt.Sprintf("%s/api/roles/%s", c.baseURL, addr.Hex()), nil, &result); err != nil {
		return "", err
	}
	return result.Role, nil
}

// StoredDocument describes a successful notarization.
type StoredDocument struct {
	Hash           string            `json:"hash"`
	CaseID         interfaces.CaseID `json:"case_id"`
	StoragePointer string            `json:"storage_pointer"`
}

// StoreDocument notarizes a pre-hashed document under a case. The fee
// payment is denominated in wei.
func (c *Client) StoreDocument(hash interfaces.DocumentHash, caseID interfaces.CaseID, storagePointer string, paid *big.Int) (StoredDocument, error) {
	reqBody := map[string]any{
		"hash":            hash.String(),
		"case_id":         caseID,
		"storage_pointer": storagePointer,
		"paid_wei":        paid.String(),
	}

	var result StoredDocument
	err := c.doJSON("POST", fmt.Sprintf("%s/api/documents", c.baseURL), reqBody, &result)
	return result, err
}

// StoreEvidence uploads raw evidence bytes and notarizes them in one call.
// The server stores the content, derives the document hash and storage
// pointer, and records the document under the case.
func (c *Client) StoreEvidence(data []byte, caseID interfaces.CaseID, paid *big.Int) (StoredDocument, error) {
	reqBody := map[string]any{
		"case_id":  caseID,
		"evidence": base64.StdEncoding.EncodeToString(data),
		"paid_wei": paid.String(),
	}

	var result StoredDocument
	err := c.doJSON("POST", fmt.Sprintf("%s/api/documents", c.baseURL), reqBody, &result)
	return result, err
}

// GetDocument fetches the full record for a (case, hash) pair.
func (c *Client) GetDocument(hash interfaces.DocumentHash, caseID interfaces.CaseID) (interfaces.Document, error) {
	var result interfaces.Document
	url := fmt.Sprintf("%s/api/documents/%d/%s", c.baseURL, caseID, hash.String())
	err := c.doJSON("GET", url, nil, &result)
	return result, err
}

// DocumentsByUser lists every document hash an address has filed.
func (c *Client) DocumentsByUser(addr common.Address) ([]string, error) {
	var result struct {
		Hashes []string `json:"hashes"`
	}
	url := fmt.Sprintf("%s/api/users/%s/documents", c.baseURL, addr.Hex())
	if err := c.doJSON("GET", url, nil, &result); err != nil {
		return nil, err
	}
	return result.Hashes, nil
}

// DocumentsByCase lists every document hash filed under a case.
func (c *Client) DocumentsByCase(caseID interfaces.CaseID) ([]string, error) {
	var result struct {
		Hashes []string `json:"hashes"`
	}
	url := fmt.Sprintf("%s/api/cases/%d/documents", c.baseURL, caseID)
	if err := c.doJSON("GET", url, nil, &result); err != nil {
		return nil, err
	}
	return result.Hashes, nil
}

// FetchEvidence downloads stored evidence bytes by content ID.
func (c *Client) FetchEvidence(id interfaces.EvidenceID) ([]byte, error) {
	url := fmt.Sprintf("%s/api/evidence/%s", c.baseURL, id.String())

	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("evidence request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("evidence request failed with code %d: %s", resp.StatusCode, string(body))
	}

	return io.ReadAll(resp.Body)
}

// LedgerInfo describes the ledger's current configuration surface.
type LedgerInfo struct {
	FeeWei          string `json:"fee_wei"`
	Owner           string `json:"owner"`
	RegistryAddress string `json:"registry_address"`
	CollectedWei    string `json:"collected_wei"`
}

// GetLedgerInfo fetches the current fee, owner, registry address, and
// unswept balance.
func (c *Client) GetLedgerInfo() (LedgerInfo, error) {
	var result LedgerInfo
	err := c.doJSON("GET", fmt.Sprintf("%s/api/ledger", c.baseURL), nil, &result)
	return result, err
}

// SetFee changes the notarization fee. The client's caller address must be
// the ledger owner.
func (c *Client) SetFee(fee *big.Int) error {
	reqBody := map[string]string{"fee_wei": fee.String()}
	return c.doJSON("POST", fmt.Sprintf("%s/api/admin/fee", c.baseURL), reqBody, nil)
}

// SetRegistry repoints the ledger's recorded registry address.
func (c *Client) SetRegistry(addr common.Address) error {
	reqBody := map[string]string{"address": addr.Hex()}
	return c.doJSON("POST", fmt.Sprintf("%s/api/admin/registry", c.baseURL), reqBody, nil)
}

// TransferOwnership hands the ledger to a new owner.
func (c *Client) TransferOwnership(newOwner common.Address) error {
	reqBody := map[string]string{"new_owner": newOwner.Hex()}
	return c.doJSON("POST", fmt.Sprintf("%s/api/admin/owner", c.baseURL), reqBody, nil)
}

// Withdraw sweeps the accumulated fee balance and returns the swept amount
// in wei.
func (c *Client) Withdraw() (*big.Int, error) {
	var result struct {
		AmountWei string `json:"amount_wei"`
	}
	if err := c.doJSON("POST", fmt.Sprintf("%s/api/admin/withdraw", c.baseURL), nil, &result); err != nil {
		return nil, err
	}

	amount, ok := new(big.Int).SetString(result.AmountWei, 10)
	if !ok {
		return nil, fmt.Errorf("invalid amount in response: %q", result.AmountWei)
	}
	return amount, nil
}

// SetImageBase changes the base location used for credential images.
func (c *Client) SetImageBase(base string) error {
	reqBody := map[string]string{"base": base}
	return c.doJSON("POST", fmt.Sprintf("%s/api/admin/image-base", c.baseURL), reqBody, nil)
}
