package storage

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/lexproof/evidence-notary-backend/interfaces"
)

// FileBackend implements evidence storage on the local file system.
// Content is stored under a single directory, named by content ID.
type FileBackend struct {
	baseDir     string
	log         *slog.Logger
	locationURI string
}

// NewFileBackend creates a file storage backend rooted at baseDir,
// creating the directory if it does not exist.
func NewFileBackend(baseDir string, log *slog.Logger) (*FileBackend, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create base directory: %w", err)
	}

	return &FileBackend{
		baseDir:     baseDir,
		log:         log,
		locationURI: fmt.Sprintf("file://%s", baseDir),
	}, nil
}

// Fetch retrieves evidence bytes by content ID.
// Returns ErrContentNotFound if the file doesn't exist.
func (b *FileBackend) Fetch(ctx context.Context, id interfaces.EvidenceID) ([]byte, error) {
	filePath := b.getFilePath(id)

	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return nil, interfaces.ErrContentNotFound
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	b.log.Debug("Fetched evidence from file",
		slog.String("path", filePath),
		slog.Int("size", len(data)))

	return data, nil
}

// Store saves evidence bytes and returns the content ID and the file://
// storage pointer recorded in the ledger.
func (b *FileBackend) Store(ctx context.Context, data []byte) (interfaces.EvidenceID, string, error) {
	id := interfaces.ComputeEvidenceID(data)
	filePath := b.getFilePath(id)

	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return id, "", fmt.Errorf("failed to write file: %w", err)
	}

	pointer := fmt.Sprintf("file://%s", filePath)
	b.log.Debug("Stored evidence in file",
		slog.String("path", filePath),
		slog.String("evidenceID", id.String()))

	return id, pointer, nil
}

// Available checks if the base directory exists.
func (b *FileBackend) Available(ctx context.Context) bool {
	_, err := os.Stat(b.baseDir)
	if err != nil {
		b.log.Debug("File backend unavailable", "err", err)
		return false
	}
	return true
}

// Name returns a unique identifier for this storage backend.
func (b *FileBackend) Name() string {
	return fmt.Sprintf("file-%s", filepath.Base(b.baseDir))
}

// LocationURI returns the URI that identifies this storage backend.
func (b *FileBackend) LocationURI() string {
	return b.locationURI
}

func (b *FileBackend) getFilePath(id interfaces.EvidenceID) string {
	return filepath.Join(b.baseDir, id.String())
}
