package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-api-template/internal/logger"
	"github.com/MKhiriev/go-api-template/internal/store"
	"github.com/MKhiriev/go-api-template/models"
)

const (
	// maxFileSize caps a single upload at 10 MB.
	maxFileSize = 10 << 20

	// maxBatchFiles caps one batch upload request.
	maxBatchFiles = 10
)

// fileService is the concrete implementation of FileService.
type fileService struct {
	fileStorage store.FileStorage
	logger      *logger.Logger
}

// NewFileService constructs a FileService on top of the given storage.
func NewFileService(fileStorage store.FileStorage, logger *logger.Logger) FileService {
	return &fileService{
		fileStorage: fileStorage,
		logger:      logger,
	}
}

// validateUpload enforces the per-file rules shared by single and batch
// uploads: a filename must be present, its extension must be on the
// allow-list and the content must fit under maxFileSize.
func validateUpload(upload models.FileUpload) error {
	if upload.Filename == "" {
		return ErrEmptyFilename
	}
	if !store.IsAllowedExtension(upload.Filename) {
		return fmt.Errorf("%w: %s", ErrUnsupportedFileType, upload.Filename)
	}
	if len(upload.Content) > maxFileSize {
		return fmt.Errorf("%w: %s exceeds %d bytes", ErrFileTooLarge, upload.Filename, maxFileSize)
	}
	return nil
}

// UploadFile validates and stores one file, returning its metadata.
func (s *fileService) UploadFile(ctx context.Context, upload models.FileUpload) (models.FileInfo, error) {
	log := logger.FromContext(ctx)

	if err := validateUpload(upload); err != nil {
		log.Error().Str("filename", upload.Filename).Err(err).Msg("upload rejected")
		return models.FileInfo{}, err
	}

	info, err := s.fileStorage.Save(upload.Filename, upload.ContentType, upload.Content)
	if err != nil {
		log.Err(err).Str("filename", upload.Filename).Msg("file save ended with error")
		return models.FileInfo{}, fmt.Errorf("file save ended with error: %w", err)
	}

	log.Debug().Str("file_id", info.FileID).Str("filename", upload.Filename).Msg("file uploaded")
	return info, nil
}

// UploadFiles stores up to maxBatchFiles files in one call. Per-file
// failures do not abort the batch; each rejected file is reported in
// FailedFiles with the reason, and the rest are stored normally. A batch
// over the size cap is rejected outright with ErrTooManyFiles.
func (s *fileService) UploadFiles(ctx context.Context, uploads []models.FileUpload) (models.BatchUploadResult, error) {
	log := logger.FromContext(ctx)

	if len(uploads) > maxBatchFiles {
		return models.BatchUploadResult{}, fmt.Errorf("%w: maximum %d files per batch", ErrTooManyFiles, maxBatchFiles)
	}

	result := models.BatchUploadResult{
		UploadedFiles: make([]models.FileInfo, 0, len(uploads)),
		FailedFiles:   make([]models.FileUploadError, 0),
	}
	for _, upload := range uploads {
		if err := validateUpload(upload); err != nil {
			result.FailedFiles = append(result.FailedFiles, models.FileUploadError{
				Filename: upload.Filename,
				Error:    err.Error(),
			})
			continue
		}

		info, err := s.fileStorage.Save(upload.Filename, upload.ContentType, upload.Content)
		if err != nil {
			log.Err(err).Str("filename", upload.Filename).Msg("file save ended with error")
			result.FailedFiles = append(result.FailedFiles, models.FileUploadError{
				Filename: upload.Filename,
				Error:    err.Error(),
			})
			continue
		}

		result.UploadedFiles = append(result.UploadedFiles, info)
	}

	result.TotalUploaded = len(result.UploadedFiles)
	result.TotalFailed = len(result.FailedFiles)

	log.Debug().Int("uploaded", result.TotalUploaded).Int("failed", result.TotalFailed).Msg("batch upload finished")
	return result, nil
}

// LookupFile resolves a file id to its metadata and absolute path for
// serving the content.
func (s *fileService) LookupFile(ctx context.Context, fileID string) (models.FileInfo, string, error) {
	log := logger.FromContext(ctx)

	info, path, err := s.fileStorage.Lookup(fileID)
	if err != nil {
		log.Err(err).Str("file_id", fileID).Msg("file lookup ended with error")
		return models.FileInfo{}, "", fmt.Errorf("file lookup ended with error: %w", err)
	}

	return info, path, nil
}

// DeleteFile removes a stored file from disk.
func (s *fileService) DeleteFile(ctx context.Context, fileID string) (models.FileDeleteResult, error) {
	log := logger.FromContext(ctx)

	if err := s.fileStorage.Delete(fileID); err != nil {
		log.Err(err).Str("file_id", fileID).Msg("file deletion ended with error")
		return models.FileDeleteResult{}, fmt.Errorf("file deletion ended with error: %w", err)
	}

	log.Debug().Str("file_id", fileID).Msg("file deleted")
	return models.FileDeleteResult{FileID: fileID, Deleted: true}, nil
}

// ListFiles returns metadata for every stored file.
func (s *fileService) ListFiles(ctx context.Context) (models.FileListResult, error) {
	log := logger.FromContext(ctx)

	files, err := s.fileStorage.List()
	if err != nil {
		log.Err(err).Msg("file listing ended with error")
		return models.FileListResult{}, fmt.Errorf("file listing ended with error: %w", err)
	}

	return models.FileListResult{Files: files, TotalCount: len(files)}, nil
}

// GetFileInfo returns metadata for one stored file without its content.
func (s *fileService) GetFileInfo(ctx context.Context, fileID string) (models.FileInfo, error) {
	log := logger.FromContext(ctx)

	info, err := s.fileStorage.Info(fileID)
	if err != nil {
		log.Err(err).Str("file_id", fileID).Msg("file info lookup ended with error")
		return models.FileInfo{}, fmt.Errorf("file info lookup ended with error: %w", err)
	}

	return info, nil
}

// GetUploadStats aggregates counts and sizes of the stored files by type.
func (s *fileService) GetUploadStats(ctx context.Context) (models.UploadStats, error) {
	log := logger.FromContext(ctx)

	stats, err := s.fileStorage.Stats()
	if err != nil {
		log.Err(err).Msg("upload statistics query ended with error")
		return models.UploadStats{}, fmt.Errorf("upload statistics query ended with error: %w", err)
	}

	return stats, nil
}
