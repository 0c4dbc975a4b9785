package services

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"lexhub_backend/internal/config"
	"lexhub_backend/internal/logger"
	"lexhub_backend/internal/models"
	"lexhub_backend/internal/repositories"
	"lexhub_backend/internal/storage"
	"lexhub_backend/pkg/apperrors"
)

// purposeDirs partitions stored files by what they are for.
var purposeDirs = map[models.UploadPurpose]string{
	models.UploadPurposeHeadshot:     "headshots",
	models.UploadPurposeCV:           "cvs",
	models.UploadPurposeVerification: "verification",
}

type UploadService interface {
	// SaveFile stores an uploaded file under its purpose directory and
	// records it. Returns the upload with its public URL set.
	SaveFile(ctx context.Context, userID string, purpose models.UploadPurpose, header *multipart.FileHeader) (*models.Upload, error)

	// Open streams a stored file back by its relative path.
	Open(ctx context.Context, path string) (io.ReadCloser, *models.Upload, error)

	ListByUser(ctx context.Context, userID string) ([]models.Upload, error)
}

type UploadServiceImpl struct {
	store      storage.Storage
	uploadRepo repositories.UploadRepository
}

func NewUploadService(store storage.Storage, uploadRepo repositories.UploadRepository) UploadService {
	return &UploadServiceImpl{store: store, uploadRepo: uploadRepo}
}

func (s *UploadServiceImpl) SaveFile(ctx context.Context, userID string, purpose models.UploadPurpose, header *multipart.FileHeader) (*models.Upload, error) {
	dir, ok := purposeDirs[purpose]
	if !ok {
		return nil, apperrors.ErrInvalidOperation("upload", "Unknown upload purpose")
	}

	cfg := config.GetConfig()
	if header.Size > cfg.Upload.MaxSize {
		return nil, apperrors.ErrFileTooLarge
	}

	contentType := header.Header.Get("Content-Type")
	if !allowedType(contentType, cfg.Upload.AllowedTypes) {
		return nil, apperrors.ErrUnsupportedFileType
	}

	file, err := header.Open()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	path := fmt.Sprintf("%s/%s%s", dir, uuid.NewString(), ext)

	if err := s.store.Save(ctx, path, file, contentType); err != nil {
		return nil, apperrors.InternalError(err)
	}

	url, err := s.store.GetURL(ctx, path)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	upload := &models.Upload{
		UserID:      userID,
		Purpose:     purpose,
		FileName:    header.Filename,
		Path:        path,
		ContentType: contentType,
		Size:        header.Size,
		URL:         url,
	}
	if err := s.uploadRepo.Create(upload); err != nil {
		// The blob is orphaned without its record; remove it.
		_ = s.store.Delete(ctx, path)
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "file uploaded",
		"user_id", userID, "purpose", purpose, "path", path, "size", header.Size)
	return upload, nil
}

func (s *UploadServiceImpl) Open(ctx context.Context, path string) (io.ReadCloser, *models.Upload, error) {
	upload, err := s.uploadRepo.FindByPath(path)
	if err != nil {
		return nil, nil, apperrors.ErrNotFound(err)
	}

	reader, err := s.store.Get(ctx, upload.Path)
	if err != nil {
		return nil, nil, apperrors.ErrNotFound(err)
	}
	return reader, upload, nil
}

func (s *UploadServiceImpl) ListByUser(ctx context.Context, userID string) ([]models.Upload, error) {
	uploads, err := s.uploadRepo.FindByUser(userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return uploads, nil
}

func allowedType(contentType string, allowed []string) bool {
	for _, t := range allowed {
		if strings.EqualFold(t, contentType) {
			return true
		}
	}
	return false
}
