package notary

import (
	"errors"
	"io"
	"log/slog"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/lexproof/evidence-notary-backend/interfaces"
	"github.com/lexproof/evidence-notary-backend/registry"
)

var (
	testOwner        = common.HexToAddress("0x00000000000000000000000000000000000000aa")
	testRegistryAddr = common.HexToAddress("0x00000000000000000000000000000000000000bb")
	testSubmitter    = common.HexToAddress("0x1111111111111111111111111111111111111111")
	testStranger     = common.HexToAddress("0x2222222222222222222222222222222222222222")
)

const testCase = interfaces.CaseID(123456789)

func testHash(b byte) interfaces.DocumentHash {
	var h interfaces.DocumentHash
	h[0] = b
	return h
}

func newTestLedger(t *testing.T) (*Ledger, *registry.MockVerifier) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	verifier := new(registry.MockVerifier)
	return NewLedger(testOwner, testRegistryAddr, verifier, nil, logger), verifier
}

func allowParty(verifier *registry.MockVerifier, addr common.Address, caseID interfaces.CaseID) {
	verifier.On("BalanceOf", addr, interfaces.NewTokenID(caseID, interfaces.RoleParty)).Return(uint64(1), nil)
}

func TestStoreDocumentHash_Success(t *testing.T) {
	ledger, verifier := newTestLedger(t)
	allowParty(verifier, testSubmitter, testCase)

	hash := testHash(1)
	err := ledger.StoreDocumentHash(testSubmitter, hash, testCase, "ipfs://doc1", ledger.Fee())
	require.NoError(t, err)

	doc, err := ledger.GetDocument(hash, testCase)
	require.NoError(t, err)
	assert.Equal(t, hash, doc.Hash)
	assert.Equal(t, testSubmitter, doc.Submitter)
	assert.Equal(t, testCase, doc.CaseID)
	assert.Equal(t, "ipfs://doc1", doc.StoragePointer)

	assert.Equal(t, 0, ledger.CollectedBalance().Cmp(DefaultFee))
	verifier.AssertExpectations(t)
}

func TestStoreDocumentHash_Unauthorized(t *testing.T) {
	ledger, verifier := newTestLedger(t)
	verifier.On("BalanceOf", testStranger, mock.Anything).Return(uint64(0), nil)

	err := ledger.StoreDocumentHash(testStranger, testHash(1), testCase, "ipfs://doc1", ledger.Fee())
	assert.ErrorIs(t, err, interfaces.ErrNotAuthorized)

	_, err = ledger.GetDocument(testHash(1), testCase)
	assert.ErrorIs(t, err, interfaces.ErrDocumentDoesNotExist)
	assert.Equal(t, 0, ledger.CollectedBalance().Sign())
}

func TestStoreDocumentHash_VerifierError(t *testing.T) {
	ledger, verifier := newTestLedger(t)
	verifier.On("BalanceOf", testSubmitter, mock.Anything).Return(uint64(0), errors.New("registry unreachable"))

	err := ledger.StoreDocumentHash(testSubmitter, testHash(1), testCase, "ipfs://doc1", ledger.Fee())
	require.Error(t, err)
	assert.NotErrorIs(t, err, interfaces.ErrNotAuthorized)
}

func TestStoreDocumentHash_InsufficientFee(t *testing.T) {
	ledger, verifier := newTestLedger(t)
	allowParty(verifier, testSubmitter, testCase)

	short := new(big.Int).Sub(ledger.Fee(), big.NewInt(1))
	err := ledger.StoreDocumentHash(testSubmitter, testHash(1), testCase, "ipfs://doc1", short)
	assert.ErrorIs(t, err, interfaces.ErrInsufficientFee)

	err = ledger.StoreDocumentHash(testSubmitter, testHash(1), testCase, "ipfs://doc1", nil)
	assert.ErrorIs(t, err, interfaces.ErrInsufficientFee)

	assert.Equal(t, 0, ledger.CollectedBalance().Sign())
}

func TestStoreDocumentHash_OverpaymentRetained(t *testing.T) {
	ledger, verifier := newTestLedger(t)
	allowParty(verifier, testSubmitter, testCase)

	paid := new(big.Int).Mul(ledger.Fee(), big.NewInt(3))
	err := ledger.StoreDocumentHash(testSubmitter, testHash(1), testCase, "ipfs://doc1", paid)
	require.NoError(t, err)

	// The full payment is retained, not just the fee
	assert.Equal(t, 0, ledger.CollectedBalance().Cmp(paid))
}

func TestStoreDocumentHash_Duplicate(t *testing.T) {
	ledger, verifier := newTestLedger(t)
	allowParty(verifier, testSubmitter, testCase)

	hash := testHash(1)
	require.NoError(t, ledger.StoreDocumentHash(testSubmitter, hash, testCase, "ipfs://doc1", ledger.Fee()))

	// Same (case, hash) pair is rejected, even from a different submitter
	allowParty(verifier, testStranger, testCase)
	err := ledger.StoreDocumentHash(testStranger, hash, testCase, "ipfs://other", ledger.Fee())
	assert.ErrorIs(t, err, interfaces.ErrDocumentAlreadyExists)

	// The original record is untouched
	doc, err := ledger.GetDocument(hash, testCase)
	require.NoError(t, err)
	assert.Equal(t, testSubmitter, doc.Submitter)
	assert.Equal(t, "ipfs://doc1", doc.StoragePointer)
}

func TestStoreDocumentHash_SameHashDifferentCase(t *testing.T) {
	ledger, verifier := newTestLedger(t)
	otherCase := interfaces.CaseID(987654321)
	allowParty(verifier, testSubmitter, testCase)
	allowParty(verifier, testSubmitter, otherCase)

	hash := testHash(1)
	require.NoError(t, ledger.StoreDocumentHash(testSubmitter, hash, testCase, "ipfs://doc1", ledger.Fee()))
	require.NoError(t, ledger.StoreDocumentHash(testSubmitter, hash, otherCase, "ipfs://doc1", ledger.Fee()))

	doc1, err := ledger.GetDocument(hash, testCase)
	require.NoError(t, err)
	doc2, err := ledger.GetDocument(hash, otherCase)
	require.NoError(t, err)
	assert.Equal(t, testCase, doc1.CaseID)
	assert.Equal(t, otherCase, doc2.CaseID)
}

func TestStoreDocumentHash_GuardReleasedAfterFailure(t *testing.T) {
	ledger, verifier := newTestLedger(t)
	allowParty(verifier, testSubmitter, testCase)

	// A failed store must not leave the guard held
	err := ledger.StoreDocumentHash(testSubmitter, testHash(1), testCase, "ipfs://doc1", nil)
	assert.ErrorIs(t, err, interfaces.ErrInsufficientFee)

	err = ledger.StoreDocumentHash(testSubmitter, testHash(1), testCase, "ipfs://doc1", ledger.Fee())
	assert.NoError(t, err)
}

func TestDocumentIndexes_SubmissionOrder(t *testing.T) {
	ledger, verifier := newTestLedger(t)
	otherCase := interfaces.CaseID(987654321)
	allowParty(verifier, testSubmitter, testCase)
	allowParty(verifier, testSubmitter, otherCase)
	allowParty(verifier, testStranger, testCase)

	require.NoError(t, ledger.StoreDocumentHash(testSubmitter, testHash(1), testCase, "p1", ledger.Fee()))
	require.NoError(t, ledger.StoreDocumentHash(testSubmitter, testHash(2), otherCase, "p2", ledger.Fee()))
	require.NoError(t, ledger.StoreDocumentHash(testStranger, testHash(3), testCase, "p3", ledger.Fee()))

	// The user index spans cases, in submission order
	userHashes, err := ledger.GetDocumentsByUser(testSubmitter)
	require.NoError(t, err)
	assert.Equal(t, []interfaces.DocumentHash{testHash(1), testHash(2)}, userHashes)

	// The case index spans submitters, in submission order
	caseHashes, err := ledger.GetDocumentsByCaseID(testCase)
	require.NoError(t, err)
	assert.Equal(t, []interfaces.DocumentHash{testHash(1), testHash(3)}, caseHashes)
}

func TestGetters_NotFound(t *testing.T) {
	ledger, _ := newTestLedger(t)

	_, err := ledger.GetDocument(testHash(1), testCase)
	assert.ErrorIs(t, err, interfaces.ErrDocumentDoesNotExist)

	_, err = ledger.GetDocumentsByUser(testSubmitter)
	assert.ErrorIs(t, err, interfaces.ErrUserHasNoDocuments)

	_, err = ledger.GetDocumentsByCaseID(testCase)
	assert.ErrorIs(t, err, interfaces.ErrCaseHasNoDocuments)
}

func TestSetFee(t *testing.T) {
	ledger, _ := newTestLedger(t)

	err := ledger.SetFee(testStranger, big.NewInt(42))
	assert.ErrorIs(t, err, interfaces.ErrNotOwner)
	assert.Equal(t, 0, ledger.Fee().Cmp(DefaultFee))

	require.NoError(t, ledger.SetFee(testOwner, big.NewInt(42)))
	assert.Equal(t, 0, ledger.Fee().Cmp(big.NewInt(42)))
}

func TestSetFee_AppliesToSubsequentStores(t *testing.T) {
	ledger, verifier := newTestLedger(t)
	allowParty(verifier, testSubmitter, testCase)

	require.NoError(t, ledger.SetFee(testOwner, big.NewInt(0)))
	err := ledger.StoreDocumentHash(testSubmitter, testHash(1), testCase, "p1", big.NewInt(0))
	assert.NoError(t, err)
}

func TestTransferOwnership(t *testing.T) {
	ledger, _ := newTestLedger(t)

	err := ledger.TransferOwnership(testStranger, testStranger)
	assert.ErrorIs(t, err, interfaces.ErrNotOwner)

	require.NoError(t, ledger.TransferOwnership(testOwner, testStranger))
	assert.Equal(t, testStranger, ledger.Owner())

	// The previous owner immediately loses admin rights
	err = ledger.SetFee(testOwner, big.NewInt(1))
	assert.ErrorIs(t, err, interfaces.ErrNotOwner)
	require.NoError(t, ledger.SetFee(testStranger, big.NewInt(1)))
}

func TestTransferOwnership_ZeroAddressRejected(t *testing.T) {
	ledger, _ := newTestLedger(t)

	err := ledger.TransferOwnership(testOwner, common.Address{})
	assert.ErrorIs(t, err, interfaces.ErrRenouncingOwnershipNotAllowed)
	assert.Equal(t, testOwner, ledger.Owner())
}

func TestWithdrawFunds(t *testing.T) {
	ledger, verifier := newTestLedger(t)
	allowParty(verifier, testSubmitter, testCase)
	require.NoError(t, ledger.StoreDocumentHash(testSubmitter, testHash(1), testCase, "p1", ledger.Fee()))

	_, err := ledger.WithdrawFunds(testStranger)
	assert.ErrorIs(t, err, interfaces.ErrNotOwner)

	swept, err := ledger.WithdrawFunds(testOwner)
	require.NoError(t, err)
	assert.Equal(t, 0, swept.Cmp(DefaultFee))
	assert.Equal(t, 0, ledger.CollectedBalance().Sign())

	// A second sweep yields zero
	swept, err = ledger.WithdrawFunds(testOwner)
	require.NoError(t, err)
	assert.Equal(t, 0, swept.Sign())
}

func TestSetCredentialRegistry(t *testing.T) {
	ledger, _ := newTestLedger(t)
	newAddr := common.HexToAddress("0x00000000000000000000000000000000000000cc")
	newVerifier := new(registry.MockVerifier)

	err := ledger.SetCredentialRegistry(testStranger, newAddr, newVerifier)
	assert.ErrorIs(t, err, interfaces.ErrNotOwner)
	assert.Equal(t, testRegistryAddr, ledger.RegistryAddress())

	require.NoError(t, ledger.SetCredentialRegistry(testOwner, newAddr, newVerifier))
	assert.Equal(t, newAddr, ledger.RegistryAddress())

	// Stores now authorize against the new verifier
	newVerifier.On("BalanceOf", testSubmitter, mock.Anything).Return(uint64(1), nil)
	err = ledger.StoreDocumentHash(testSubmitter, testHash(1), testCase, "p1", ledger.Fee())
	assert.NoError(t, err)
	newVerifier.AssertExpectations(t)
}

func TestLedgerWithLiveRegistry(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	reg := registry.NewCredentialRegistry(testOwner, "ipfs://images/", nil, logger)
	ledger := NewLedger(testOwner, testRegistryAddr, reg, nil, logger)

	caseID, err := reg.OpenCase(testSubmitter, testStranger, "Smith v. Jones")
	require.NoError(t, err)

	// A case party may file; an outsider may not
	require.NoError(t, ledger.StoreDocumentHash(testSubmitter, testHash(1), caseID, "p1", ledger.Fee()))

	outsider := common.HexToAddress("0x4444444444444444444444444444444444444444")
	err = ledger.StoreDocumentHash(outsider, testHash(2), caseID, "p2", ledger.Fee())
	assert.ErrorIs(t, err, interfaces.ErrNotAuthorized)
}
