package notary

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexproof/evidence-notary-backend/interfaces"
)

func TestReentrancyGuard(t *testing.T) {
	var g reentrancyGuard

	require.NoError(t, g.acquire())

	// Second acquisition while held reports busy
	err := g.acquire()
	assert.ErrorIs(t, err, interfaces.ErrBusy)

	g.release()
	assert.NoError(t, g.acquire())
}
