package store

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/MKhiriev/go-api-template/internal/config"
	"github.com/MKhiriev/go-api-template/internal/logger"
	"github.com/MKhiriev/go-api-template/models"
)

// allowedExtensions is the fixed upload allow-list, partitioned into
// categories. Extensions outside every category are rejected on upload;
// files already on disk with an unknown extension are listed as "other".
var allowedExtensions = map[string][]string{
	"image":    {".jpg", ".jpeg", ".png", ".gif", ".bmp", ".webp"},
	"document": {".pdf", ".doc", ".docx", ".txt", ".rtf"},
	"archive":  {".zip", ".rar", ".7z", ".tar", ".gz"},
	"video":    {".mp4", ".avi", ".mov", ".wmv", ".flv"},
	"audio":    {".mp3", ".wav", ".flac", ".aac"},
}

// FileTypeOf returns the category of a filename by extension, or "other"
// when the extension belongs to no category.
func FileTypeOf(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	for fileType, extensions := range allowedExtensions {
		for _, allowed := range extensions {
			if ext == allowed {
				return fileType
			}
		}
	}
	return "other"
}

// IsAllowedExtension reports whether the filename's extension appears in
// any upload category.
func IsAllowedExtension(filename string) bool {
	return FileTypeOf(filename) != "other"
}

// fileStorage is the local-filesystem implementation of [FileStorage].
// Uploads live flat in one directory as "{uuid}{ext}"; no metadata is
// persisted anywhere, so everything reported about a file is derived from
// stat calls at read time. The original client-supplied filename is
// therefore only known in the upload response.
type fileStorage struct {
	dir    string
	logger *logger.Logger
}

// NewFileStorage constructs a [FileStorage] rooted at cfg.UploadDir,
// creating the directory if it does not exist.
func NewFileStorage(cfg config.Files, logger *logger.Logger) (FileStorage, error) {
	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		logger.Err(err).Str("dir", cfg.UploadDir).Msg("error creating upload directory")
		return nil, fmt.Errorf("error creating upload directory: %w", err)
	}

	logger.Debug().Str("dir", cfg.UploadDir).Msg("creating file storage")
	return &fileStorage{
		dir:    cfg.UploadDir,
		logger: logger,
	}, nil
}

// Save writes content under a fresh "{uuid}{ext}" name and returns the
// upload metadata. This is the only moment originalName is available; it
// is not recoverable afterwards.
func (s *fileStorage) Save(originalName, contentType string, content []byte) (models.FileInfo, error) {
	fileID := uuid.NewString()
	ext := strings.ToLower(filepath.Ext(originalName))
	filename := fileID + ext
	path := filepath.Join(s.dir, filename)

	if err := os.WriteFile(path, content, 0o644); err != nil {
		s.logger.Err(err).Str("func", "*fileStorage.Save").Str("filename", filename).Msg("failed to write file")
		return models.FileInfo{}, fmt.Errorf("failed to write file: %w", err)
	}

	return models.FileInfo{
		FileID:       fileID,
		OriginalName: originalName,
		Filename:     filename,
		FilePath:     path,
		FileSize:     int64(len(content)),
		FileType:     FileTypeOf(originalName),
		ContentType:  contentType,
		UploadTime:   time.Now().UTC(),
	}, nil
}

// Lookup glob-matches "{id}.*" inside the upload directory and returns the
// stat-derived metadata plus the matched path. Returns [ErrFileNotFound]
// when nothing matches.
func (s *fileStorage) Lookup(fileID string) (models.FileInfo, string, error) {
	matches, err := filepath.Glob(filepath.Join(s.dir, fileID+".*"))
	if err != nil {
		return models.FileInfo{}, "", fmt.Errorf("failed to search upload directory: %w", err)
	}
	if len(matches) == 0 {
		return models.FileInfo{}, "", ErrFileNotFound
	}

	path := matches[0]
	info, err := s.statFile(path)
	if err != nil {
		return models.FileInfo{}, "", err
	}

	return info, path, nil
}

// Delete removes the file matched by "{id}.*".
func (s *fileStorage) Delete(fileID string) error {
	_, path, err := s.Lookup(fileID)
	if err != nil {
		return err
	}

	if err = os.Remove(path); err != nil {
		s.logger.Err(err).Str("func", "*fileStorage.Delete").Str("file_id", fileID).Msg("failed to remove file")
		return fmt.Errorf("failed to remove file: %w", err)
	}

	return nil
}

// List returns metadata for every file in the upload directory.
func (s *fileStorage) List() ([]models.FileInfo, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read upload directory: %w", err)
	}

	files := make([]models.FileInfo, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, statErr := s.statFile(filepath.Join(s.dir, entry.Name()))
		if statErr != nil {
			// A file deleted between ReadDir and Stat is not an error.
			continue
		}
		files = append(files, info)
	}

	return files, nil
}

// Info returns stat-derived metadata for one file. The original filename
// is never persisted, so OriginalName is fabricated from the extension
// alone ("uploaded_file{ext}").
func (s *fileStorage) Info(fileID string) (models.FileInfo, error) {
	info, path, err := s.Lookup(fileID)
	if err != nil {
		return models.FileInfo{}, err
	}

	info.OriginalName = "uploaded_file" + strings.ToLower(filepath.Ext(path))
	info.ContentType = "application/octet-stream"
	info.FilePath = path

	return info, nil
}

// Stats aggregates file count and byte size per category over the whole
// upload directory.
func (s *fileStorage) Stats() (models.UploadStats, error) {
	files, err := s.List()
	if err != nil {
		return models.UploadStats{}, err
	}

	stats := models.UploadStats{
		TypeStatistics:  make(map[string]models.FileTypeStat),
		UploadDirectory: s.dir,
	}
	if abs, absErr := filepath.Abs(s.dir); absErr == nil {
		stats.UploadDirectory = abs
	}

	for _, f := range files {
		stats.TotalFiles++
		stats.TotalSize += f.FileSize

		typeStat := stats.TypeStatistics[f.FileType]
		typeStat.Count++
		typeStat.Size += f.FileSize
		stats.TypeStatistics[f.FileType] = typeStat
	}

	stats.TotalSizeMB = float64(stats.TotalSize) / (1024 * 1024)
	stats.TotalSizeMB = float64(int(stats.TotalSizeMB*100+0.5)) / 100

	return stats, nil
}

// statFile builds a [models.FileInfo] from one stat call. The filesystem
// only exposes a modification time, which doubles as the upload time for
// files that were never rewritten.
func (s *fileStorage) statFile(path string) (models.FileInfo, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return models.FileInfo{}, fmt.Errorf("failed to stat file: %w", err)
	}

	filename := filepath.Base(path)
	modTime := fi.ModTime().UTC()

	return models.FileInfo{
		FileID:       strings.TrimSuffix(filename, filepath.Ext(filename)),
		Filename:     filename,
		FileSize:     fi.Size(),
		FileType:     FileTypeOf(filename),
		UploadTime:   modTime,
		ModifiedTime: &modTime,
	}, nil
}
