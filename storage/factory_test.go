package storage

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexproof/evidence-notary-backend/interfaces"
)

func TestFactory_FileBackend(t *testing.T) {
	factory := NewStorageBackendFactory(testLogger())

	uri := interfaces.StorageBackendLocation(fmt.Sprintf("file://%s", t.TempDir()))
	require.NoError(t, uri.Validate())

	backend, err := factory.StorageBackendFor(uri)
	require.NoError(t, err)
	assert.IsType(t, &FileBackend{}, backend)
}

func TestFactory_IPFSBackend(t *testing.T) {
	factory := NewStorageBackendFactory(testLogger())

	backend, err := factory.StorageBackendFor("ipfs://127.0.0.1:5001")
	require.NoError(t, err)
	assert.IsType(t, &IPFSBackend{}, backend)

	// Default API port applies when omitted
	backend, err = factory.StorageBackendFor("ipfs://127.0.0.1")
	require.NoError(t, err)
	assert.Contains(t, backend.LocationURI(), "5001")
}

func TestFactory_S3Backend(t *testing.T) {
	factory := NewStorageBackendFactory(testLogger())

	backend, err := factory.StorageBackendFor("s3://access:secret@evidence-bucket/cases?region=eu-west-1")
	require.NoError(t, err)
	assert.IsType(t, &S3Backend{}, backend)
}

func TestFactory_InvalidURIs(t *testing.T) {
	factory := NewStorageBackendFactory(testLogger())

	for _, uri := range []interfaces.StorageBackendLocation{
		"ftp://example.com/evidence",
		"file://",
		"ipfs://",
		"s3://",
	} {
		_, err := factory.StorageBackendFor(uri)
		assert.ErrorIs(t, err, interfaces.ErrInvalidLocationURI, "uri: %s", uri)
	}
}
