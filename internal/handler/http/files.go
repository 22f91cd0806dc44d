package http

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/MKhiriev/go-api-template/internal/logger"
	"github.com/MKhiriev/go-api-template/internal/store"
	"github.com/MKhiriev/go-api-template/models"
	"github.com/go-chi/chi/v5"
)

// maxMultipartMemory bounds how much of a multipart body is held in memory
// while parsing; the rest spills to temporary files.
const maxMultipartMemory = 32 << 20

func (h *Handler) uploadFile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		log.Err(err).Msg("invalid multipart form")
		writeError(w, http.StatusBadRequest, "Invalid multipart form", "")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		log.Err(err).Msg("missing file field")
		writeError(w, http.StatusBadRequest, "Missing file field", "")
		return
	}
	defer file.Close()

	upload, err := readUpload(file, header)
	if err != nil {
		log.Err(err).Msg("reading upload failed")
		writeError(w, http.StatusInternalServerError, "Reading upload failed", models.ErrCodeInternalServerError)
		return
	}

	info, err := h.services.FileService.UploadFile(ctx, upload)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, info, "File uploaded successfully")
}

func (h *Handler) uploadFiles(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		log.Err(err).Msg("invalid multipart form")
		writeError(w, http.StatusBadRequest, "Invalid multipart form", "")
		return
	}

	headers := r.MultipartForm.File["files"]
	if len(headers) == 0 {
		writeError(w, http.StatusBadRequest, "Missing files field", "")
		return
	}

	uploads := make([]models.FileUpload, 0, len(headers))
	for _, header := range headers {
		file, err := header.Open()
		if err != nil {
			log.Err(err).Str("filename", header.Filename).Msg("opening multipart file failed")
			writeError(w, http.StatusInternalServerError, "Reading upload failed", models.ErrCodeInternalServerError)
			return
		}

		upload, err := readUpload(file, header)
		file.Close()
		if err != nil {
			log.Err(err).Str("filename", header.Filename).Msg("reading upload failed")
			writeError(w, http.StatusInternalServerError, "Reading upload failed", models.ErrCodeInternalServerError)
			return
		}
		uploads = append(uploads, upload)
	}

	result, err := h.services.FileService.UploadFiles(ctx, uploads)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	message := fmt.Sprintf("Batch upload finished, uploaded: %d, failed: %d", result.TotalUploaded, result.TotalFailed)
	writeSuccess(w, http.StatusOK, result, message)
}

// downloadFile streams the stored content as an attachment. A missing file
// answers 200 with a null-data envelope rather than 404, matching the
// behaviour of the other file endpoints.
func (h *Handler) downloadFile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	info, path, err := h.services.FileService.LookupFile(ctx, chi.URLParam(r, "fileID"))
	if err != nil {
		if errors.Is(err, store.ErrFileNotFound) {
			writeSuccess(w, http.StatusOK, nil, "File not found")
			return
		}
		h.respondError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", info.Filename))
	http.ServeFile(w, r, path)
}

func (h *Handler) deleteFile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	result, err := h.services.FileService.DeleteFile(ctx, chi.URLParam(r, "fileID"))
	if err != nil {
		if errors.Is(err, store.ErrFileNotFound) {
			writeSuccess(w, http.StatusOK, nil, "File not found")
			return
		}
		h.respondError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, result, "File deleted successfully")
}

func (h *Handler) listFiles(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	result, err := h.services.FileService.ListFiles(ctx)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, result, "Files retrieved successfully")
}

func (h *Handler) fileInfo(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	info, err := h.services.FileService.GetFileInfo(ctx, chi.URLParam(r, "fileID"))
	if err != nil {
		if errors.Is(err, store.ErrFileNotFound) {
			writeSuccess(w, http.StatusOK, nil, "File not found")
			return
		}
		h.respondError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, info, "File info retrieved successfully")
}

func (h *Handler) uploadStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	stats, err := h.services.FileService.GetUploadStats(ctx)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, stats, "Upload statistics retrieved successfully")
}

func readUpload(file multipart.File, header *multipart.FileHeader) (models.FileUpload, error) {
	content, err := io.ReadAll(file)
	if err != nil {
		return models.FileUpload{}, err
	}

	return models.FileUpload{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Content:     content,
	}, nil
}
