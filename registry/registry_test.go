package registry

import (
	"io"
	"log/slog"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexproof/evidence-notary-backend/interfaces"
)

var (
	testOwner  = common.HexToAddress("0x00000000000000000000000000000000000000aa")
	testPartyA = common.HexToAddress("0x1111111111111111111111111111111111111111")
	testPartyB = common.HexToAddress("0x2222222222222222222222222222222222222222")
	testOther  = common.HexToAddress("0x3333333333333333333333333333333333333333")
)

func newTestRegistry(t *testing.T) *CredentialRegistry {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewCredentialRegistry(testOwner, "ipfs://images/", nil, logger)
}

func TestDeriveCaseID_Deterministic(t *testing.T) {
	id1 := DeriveCaseID(testPartyA, testPartyB, "Smith v. Jones")
	id2 := DeriveCaseID(testPartyA, testPartyB, "Smith v. Jones")
	assert.Equal(t, id1, id2)

	// Nine decimal digits at most
	assert.Less(t, uint32(id1), uint32(1_000_000_000))
}

func TestDeriveCaseID_OrderSensitive(t *testing.T) {
	forward := DeriveCaseID(testPartyA, testPartyB, "Smith v. Jones")
	reversed := DeriveCaseID(testPartyB, testPartyA, "Smith v. Jones")
	assert.NotEqual(t, forward, reversed)

	renamed := DeriveCaseID(testPartyA, testPartyB, "Smith v. Jones II")
	assert.NotEqual(t, forward, renamed)
}

func TestOpenCase_Success(t *testing.T) {
	r := newTestRegistry(t)

	caseID, err := r.OpenCase(testPartyA, testPartyB, "Smith v. Jones")
	require.NoError(t, err)
	assert.True(t, r.DoesCaseExist(caseID))

	// Both parties got the Party role and exactly one Party credential
	assert.Equal(t, interfaces.RoleParty, r.RoleOf(testPartyA))
	assert.Equal(t, interfaces.RoleParty, r.RoleOf(testPartyB))

	partyToken := interfaces.NewTokenID(caseID, interfaces.RoleParty)
	balanceA, err := r.BalanceOf(testPartyA, partyToken)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), balanceA)

	balanceB, err := r.BalanceOf(testPartyB, partyToken)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), balanceB)

	// A bystander holds nothing and no role
	assert.Equal(t, interfaces.RoleUnassigned, r.RoleOf(testOther))
	balanceOther, err := r.BalanceOf(testOther, partyToken)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), balanceOther)
}

func TestOpenCase_Duplicate(t *testing.T) {
	r := newTestRegistry(t)

	caseID, err := r.OpenCase(testPartyA, testPartyB, "Smith v. Jones")
	require.NoError(t, err)

	_, err = r.OpenCase(testPartyA, testPartyB, "Smith v. Jones")
	assert.ErrorIs(t, err, interfaces.ErrCaseAlreadyExists)

	// First case is untouched: still exists, balances unchanged
	assert.True(t, r.DoesCaseExist(caseID))
	balance, err := r.BalanceOf(testPartyA, interfaces.NewTokenID(caseID, interfaces.RoleParty))
	require.NoError(t, err)
	assert.Equal(t, uint64(1), balance)
}

func TestOpenCase_SelfCase(t *testing.T) {
	r := newTestRegistry(t)

	// A party may open a case against itself; it receives both credentials,
	// which collapse onto one token ID.
	caseID, err := r.OpenCase(testPartyA, testPartyA, "Smith v. Smith")
	require.NoError(t, err)

	balance, err := r.BalanceOf(testPartyA, interfaces.NewTokenID(caseID, interfaces.RoleParty))
	require.NoError(t, err)
	assert.Equal(t, uint64(2), balance)
}

func TestOpenCase_SharedParty(t *testing.T) {
	r := newTestRegistry(t)

	case1, err := r.OpenCase(testPartyA, testPartyB, "Smith v. Jones")
	require.NoError(t, err)
	case2, err := r.OpenCase(testPartyA, testOther, "Smith v. Brown")
	require.NoError(t, err)

	// Credentials are case-scoped even though roles are not
	balance1, err := r.BalanceOf(testPartyA, interfaces.NewTokenID(case1, interfaces.RoleParty))
	require.NoError(t, err)
	assert.Equal(t, uint64(1), balance1)

	balance2, err := r.BalanceOf(testPartyA, interfaces.NewTokenID(case2, interfaces.RoleParty))
	require.NoError(t, err)
	assert.Equal(t, uint64(1), balance2)

	balanceCross, err := r.BalanceOf(testOther, interfaces.NewTokenID(case1, interfaces.RoleParty))
	require.NoError(t, err)
	assert.Equal(t, uint64(0), balanceCross)
}

func TestTransfers_AlwaysRejected(t *testing.T) {
	r := newTestRegistry(t)

	caseID, err := r.OpenCase(testPartyA, testPartyB, "Smith v. Jones")
	require.NoError(t, err)
	tokenID := interfaces.NewTokenID(caseID, interfaces.RoleParty)

	// Holder, owner, and a third party are all rejected alike
	for _, caller := range []common.Address{testPartyA, testOwner, testOther} {
		err = r.SafeTransferFrom(caller, testPartyA, testOther, tokenID, 1)
		assert.ErrorIs(t, err, interfaces.ErrTransferNotAllowed)

		err = r.SafeBatchTransferFrom(caller, testPartyA, testOther, []interfaces.TokenID{tokenID}, []uint64{1})
		assert.ErrorIs(t, err, interfaces.ErrTransferNotAllowed)

		err = r.SetApprovalForAll(caller, testOther, true)
		assert.ErrorIs(t, err, interfaces.ErrTransferNotAllowed)
	}

	assert.False(t, r.IsApprovedForAll(testPartyA, testOther))

	// Balances unchanged after all rejected attempts
	balance, err := r.BalanceOf(testPartyA, tokenID)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), balance)
}

func TestSetBaseImageLocation_OwnerGated(t *testing.T) {
	r := newTestRegistry(t)

	err := r.SetBaseImageLocation(testOther, "https://example.com/images/")
	assert.ErrorIs(t, err, interfaces.ErrNotOwner)

	err = r.SetBaseImageLocation(testOwner, "https://example.com/images/")
	require.NoError(t, err)

	caseID, err := r.OpenCase(testPartyA, testPartyB, "Smith v. Jones")
	require.NoError(t, err)

	meta := r.Metadata(interfaces.NewTokenID(caseID, interfaces.RoleParty))
	assert.Equal(t, "https://example.com/images/1.png", meta.Image)
}
