package models

import "time"

// FileInfo describes a stored upload. Nothing is persisted in the
// database: every field is derived from the filesystem at read time,
// except OriginalName which is only known in the upload response.
type FileInfo struct {
	FileID       string     `json:"file_id"`
	OriginalName string     `json:"original_name,omitempty"`
	Filename     string     `json:"filename"`
	FilePath     string     `json:"file_path,omitempty"`
	FileSize     int64      `json:"file_size"`
	FileType     string     `json:"file_type"`
	ContentType  string     `json:"content_type,omitempty"`
	UploadTime   time.Time  `json:"upload_time"`
	ModifiedTime *time.Time `json:"modified_time,omitempty"`
}

// FileUpload is one incoming upload decoded from a multipart form.
type FileUpload struct {
	Filename    string
	ContentType string
	Content     []byte
}

// FileUploadError records one rejected file of a batch upload.
type FileUploadError struct {
	Filename string `json:"filename"`
	Error    string `json:"error"`
}

// BatchUploadResult is the payload of POST /api/v1/files/upload/multiple.
// A batch never fails as a whole: per-file failures are collected here.
type BatchUploadResult struct {
	UploadedFiles []FileInfo        `json:"uploaded_files"`
	FailedFiles   []FileUploadError `json:"failed_files"`
	TotalUploaded int               `json:"total_uploaded"`
	TotalFailed   int               `json:"total_failed"`
}

// FileListResult is the payload of GET /api/v1/files/list.
type FileListResult struct {
	Files      []FileInfo `json:"files"`
	TotalCount int        `json:"total_count"`
}

// FileTypeStat aggregates count and byte size for one file category.
type FileTypeStat struct {
	Count int   `json:"count"`
	Size  int64 `json:"size"`
}

// UploadStats is the payload of GET /api/v1/files/stats.
type UploadStats struct {
	TotalFiles      int                     `json:"total_files"`
	TotalSize       int64                   `json:"total_size"`
	TotalSizeMB     float64                 `json:"total_size_mb"`
	TypeStatistics  map[string]FileTypeStat `json:"type_statistics"`
	UploadDirectory string                  `json:"upload_directory"`
}

// FileDeleteResult is the payload of DELETE /api/v1/files/delete/{id}.
type FileDeleteResult struct {
	FileID  string `json:"file_id"`
	Deleted bool   `json:"deleted"`
}
