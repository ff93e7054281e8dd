package service

import (
	"context"
	"errors"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/msp-aci-api/internal/dto"
	appErrors "github.com/noah-isme/msp-aci-api/pkg/errors"
	"github.com/noah-isme/msp-aci-api/pkg/storage"
)

const defaultArchiveRetention = 72 * time.Hour

type exportRenderer interface {
	Export(ctx context.Context, format ExportFormat) (*ExportFile, error)
}

type archiveStorage interface {
	Save(name string, data []byte) error
	Read(name string) ([]byte, error)
	CleanupOlderThan(ttl time.Duration) ([]string, error)
}

type linkSigner interface {
	Sign(name string) (string, time.Time, error)
	Verify(token string) (string, error)
}

// ArchiveServiceParams groups constructor dependencies.
type ArchiveServiceParams struct {
	Exports   exportRenderer
	Storage   archiveStorage
	Signer    linkSigner
	Retention time.Duration
	Logger    *zap.Logger
}

// ArchiveService keeps rendered compensation exports on disk and hands out
// expiring download links for them.
type ArchiveService struct {
	exports   exportRenderer
	storage   archiveStorage
	signer    linkSigner
	retention time.Duration
	logger    *zap.Logger
	newID     func() string
}

// NewArchiveService constructs an ArchiveService.
func NewArchiveService(params ArchiveServiceParams) *ArchiveService {
	retention := params.Retention
	if retention <= 0 {
		retention = defaultArchiveRetention
	}
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ArchiveService{
		exports:   params.Exports,
		storage:   params.Storage,
		signer:    params.Signer,
		retention: retention,
		logger:    logger,
		newID:     uuid.NewString,
	}
}

// Archive renders the current report in format, stores it and returns a
// signed download token.
func (s *ArchiveService) Archive(ctx context.Context, format ExportFormat) (*dto.ArchivedExport, error) {
	file, err := s.exports.Export(ctx, format)
	if err != nil {
		return nil, err
	}

	id := s.newID()
	name := id + "/" + file.Filename
	if err := s.storage.Save(name, file.Payload); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to archive export")
	}
	token, expiresAt, err := s.signer.Sign(name)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to sign download link")
	}

	s.logger.Info("export archived", zap.String("id", id), zap.String("format", string(format)), zap.Int("bytes", len(file.Payload)))
	return &dto.ArchivedExport{
		ID:        id,
		Filename:  file.Filename,
		Format:    string(format),
		Size:      len(file.Payload),
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}

// Open resolves a download token to the archived file.
func (s *ArchiveService) Open(_ context.Context, token string) (*ExportFile, error) {
	name, err := s.signer.Verify(token)
	switch {
	case errors.Is(err, storage.ErrTokenExpired):
		return nil, appErrors.Clone(appErrors.ErrGone, "download link expired")
	case err != nil:
		return nil, appErrors.Clone(appErrors.ErrNotFound, "download link not found")
	}

	payload, err := s.storage.Read(name)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, appErrors.Clone(appErrors.ErrGone, "archived export was purged")
	}
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to read archived export")
	}

	filename := path.Base(name)
	format := ExportFormat(strings.TrimPrefix(path.Ext(filename), "."))
	contentType, ok := exportContentTypes[format]
	if !ok {
		contentType = "application/octet-stream"
	}
	return &ExportFile{Filename: filename, ContentType: contentType, Payload: payload}, nil
}

// Sweep deletes archived exports older than the retention window.
func (s *ArchiveService) Sweep(_ context.Context) (int, error) {
	deleted, err := s.storage.CleanupOlderThan(s.retention)
	if len(deleted) > 0 {
		s.logger.Info("archived exports purged", zap.Int("count", len(deleted)))
	}
	return len(deleted), err
}

// RunRetention sweeps every interval until ctx is cancelled.
func (s *ArchiveService) RunRetention(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Hour
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := s.Sweep(ctx); err != nil {
				s.logger.Warn("archive sweep failed", zap.Error(err))
			}
		}
	}
}
