package registry

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/mock"

	"github.com/lexproof/evidence-notary-backend/interfaces"
)

// MockVerifier mocks the CredentialVerifier interface
type MockVerifier struct {
	mock.Mock
}

// BalanceOf mocks the BalanceOf method
func (m *MockVerifier) BalanceOf(holder common.Address, id interfaces.TokenID) (uint64, error) {
	args := m.Called(holder, id)
	return args.Get(0).(uint64), args.Error(1)
}
