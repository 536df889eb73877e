package api

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/observer/parley/internal/domain"
	"github.com/observer/parley/internal/metrics"
	"github.com/observer/parley/internal/storage"
)

// allowedUploadTypes is the attachment MIME allow-list: common image,
// document and audio formats.
var allowedUploadTypes = map[string]bool{
	"image/jpeg":         true,
	"image/png":          true,
	"image/gif":          true,
	"image/webp":         true,
	"application/pdf":    true,
	"text/plain":         true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
	"audio/mpeg": true,
	"audio/wav":  true,
	"audio/ogg":  true,
}

// UploadHandler stores chat attachments and serves them back.
type UploadHandler struct {
	store          storage.Store
	maxUploadBytes int64
	logger         *slog.Logger
}

// NewUploadHandler creates an upload handler over the given blob store.
func NewUploadHandler(store storage.Store, maxUploadBytes int64, logger *slog.Logger) *UploadHandler {
	return &UploadHandler{
		store:          store,
		maxUploadBytes: maxUploadBytes,
		logger:         logger,
	}
}

// Upload godoc
//
//	@Summary		Upload a file
//	@Description	Store a chat attachment and return the descriptor to embed in a file message
//	@Tags			uploads
//	@Accept			mpfd
//	@Produce		json
//	@Param			file	formData	file	true	"File to upload"
//	@Success		200		{object}	domain.FileInfo		"Stored file descriptor"
//	@Failure		400		{object}	map[string]string	"Missing file or disallowed type"
//	@Failure		413		{object}	map[string]string	"File exceeds the 10MB cap"
//	@Failure		500		{object}	map[string]string	"Storage failure"
//	@Router			/upload [post]
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	// Bound the whole request body, with headroom over the file cap for
	// the multipart framing
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes+1<<20)

	file, header, err := r.FormFile("file")
	if err != nil {
		metrics.UploadsTotal.WithLabelValues("rejected").Inc()
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			writeError(w, http.StatusRequestEntityTooLarge, "File too large. Maximum size is 10MB.")
			return
		}
		writeError(w, http.StatusBadRequest, "No file provided.")
		return
	}
	defer file.Close()

	if header.Size > h.maxUploadBytes {
		metrics.UploadsTotal.WithLabelValues("rejected").Inc()
		writeError(w, http.StatusRequestEntityTooLarge, "File too large. Maximum size is 10MB.")
		return
	}

	contentType := header.Header.Get("Content-Type")
	if !allowedUploadTypes[contentType] {
		metrics.UploadsTotal.WithLabelValues("rejected").Inc()
		writeError(w, http.StatusBadRequest, "File type not allowed.")
		return
	}

	// Store under a generated name, keeping the original extension
	uniqueFilename := uuid.NewString() + filepath.Ext(header.Filename)

	if err := h.store.Save(r.Context(), uniqueFilename, contentType, file, header.Size); err != nil {
		h.logger.Error("failed to store upload", "filename", header.Filename, "error", err)
		metrics.UploadsTotal.WithLabelValues("failed").Inc()
		writeError(w, http.StatusInternalServerError, "Upload failed")
		return
	}

	metrics.UploadsTotal.WithLabelValues("accepted").Inc()
	h.logger.Info("file uploaded", "filename", header.Filename, "stored_as", uniqueFilename, "size", header.Size)

	writeJSON(w, http.StatusOK, domain.FileInfo{
		ID:             uuid.NewString(),
		Filename:       header.Filename,
		UniqueFilename: uniqueFilename,
		URL:            "/uploads/" + uniqueFilename,
		Size:           header.Size,
		Type:           contentType,
		UploadedAt:     time.Now(),
	})
}

// Download godoc
//
//	@Summary		Download an uploaded file
//	@Description	Stream a stored upload, or redirect to a presigned URL when the bucket backend is active
//	@Tags			uploads
//	@Produce		octet-stream
//	@Param			filename	path		string				true	"Stored filename"
//	@Success		302			{string}	string				"Redirect to presigned URL"
//	@Failure		404			{object}	map[string]string	"Unknown file"
//	@Router			/uploads/{filename} [get]
func (h *UploadHandler) Download(w http.ResponseWriter, r *http.Request) {
	filename := r.PathValue("filename")

	url, err := h.store.DownloadURL(r.Context(), filename)
	if err != nil {
		h.logger.Error("failed to presign download", "filename", filename, "error", err)
		writeError(w, http.StatusInternalServerError, "Download failed")
		return
	}
	if url != "" {
		http.Redirect(w, r, url, http.StatusFound)
		return
	}

	rc, contentType, err := h.store.Open(r.Context(), filename)
	if err != nil {
		if errors.Is(err, domain.ErrObjectNotFound) {
			writeError(w, http.StatusNotFound, "File not found")
			return
		}
		h.logger.Error("failed to open upload", "filename", filename, "error", err)
		writeError(w, http.StatusInternalServerError, "Download failed")
		return
	}
	defer rc.Close()

	w.Header().Set("Content-Type", contentType)
	_, _ = io.Copy(w, rc)
}
