package storage

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexproof/evidence-notary-backend/interfaces"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestFileBackend_StoreAndFetch(t *testing.T) {
	backend, err := NewFileBackend(t.TempDir(), testLogger())
	require.NoError(t, err)

	ctx := context.Background()
	data := []byte("scanned contract, page 1")

	id, pointer, err := backend.Store(ctx, data)
	require.NoError(t, err)
	assert.Equal(t, interfaces.ComputeEvidenceID(data), id)
	assert.Contains(t, pointer, "file://")
	assert.Contains(t, pointer, id.String())

	fetched, err := backend.Fetch(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, data, fetched)
}

func TestFileBackend_StoreIdempotent(t *testing.T) {
	backend, err := NewFileBackend(t.TempDir(), testLogger())
	require.NoError(t, err)

	ctx := context.Background()
	data := []byte("same bytes twice")

	id1, pointer1, err := backend.Store(ctx, data)
	require.NoError(t, err)
	id2, pointer2, err := backend.Store(ctx, data)
	require.NoError(t, err)

	assert.Equal(t, id1, id2)
	assert.Equal(t, pointer1, pointer2)
}

func TestFileBackend_FetchMissing(t *testing.T) {
	backend, err := NewFileBackend(t.TempDir(), testLogger())
	require.NoError(t, err)

	missing := interfaces.ComputeEvidenceID([]byte("never stored"))
	_, err = backend.Fetch(context.Background(), missing)
	assert.ErrorIs(t, err, interfaces.ErrContentNotFound)
}

func TestFileBackend_Available(t *testing.T) {
	backend, err := NewFileBackend(t.TempDir(), testLogger())
	require.NoError(t, err)

	assert.True(t, backend.Available(context.Background()))
}
