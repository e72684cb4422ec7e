package transport

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"storefront/internal/middleware"
	"storefront/internal/service"
	"storefront/internal/validation"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// maxUploadMemory bounds the in-memory portion of a multipart parse; larger
// parts spill to temp files.
const maxUploadMemory = 32 << 20

var unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9._-]`)

// UploadedFile describes one stored file
type UploadedFile struct {
	Filename     string `json:"filename"`
	OriginalName string `json:"original_name"`
	Size         int64  `json:"size"`
	URL          string `json:"url"`
}

// UploadHandler handles image uploads. Single files arrive under the form
// field "image", batches under "multipleImages".
type UploadHandler struct {
	uploadDir string
	logger    *zap.Logger
}

// NewUploadHandler creates a new UploadHandler storing files under uploadDir
func NewUploadHandler(uploadDir string, logger *zap.Logger) *UploadHandler {
	return &UploadHandler{
		uploadDir: uploadDir,
		logger:    logger,
	}
}

// RegisterRoutes registers upload routes; uploads require authentication
func (h *UploadHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Route("/api/uploads", func(r chi.Router) {
		r.Use(authMiddleware)
		r.Post("/image", h.UploadImage)
		r.Post("/images", h.UploadImages)
	})
}

// UploadImage stores a single validated image
func (h *UploadHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "Invalid multipart form", service.CodeValidation)
		return
	}

	var fh *multipart.FileHeader
	if files := r.MultipartForm.File["image"]; len(files) > 0 {
		fh = files[0]
	}

	if err := validation.ValidateImage(fh); err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, err.Error(), service.CodeValidation)
		return
	}

	stored, err := h.store(fh)
	if err != nil {
		h.logger.Error("Failed to store uploaded file", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "Unable to store file", service.CodeStore)
		return
	}

	middleware.RespondWithJSON(w, http.StatusCreated, service.OK("File uploaded successfully", stored))
}

// UploadImages stores a validated batch of images. The batch is
// all-or-nothing: one bad file rejects the whole request before anything is
// written.
func (h *UploadHandler) UploadImages(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "Invalid multipart form", service.CodeValidation)
		return
	}

	files := r.MultipartForm.File["multipleImages"]
	if err := validation.ValidateImageBatch(files); err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, err.Error(), service.CodeValidation)
		return
	}

	stored := make([]UploadedFile, 0, len(files))
	for _, fh := range files {
		f, err := h.store(fh)
		if err != nil {
			h.logger.Error("Failed to store uploaded file", zap.Error(err))
			middleware.RespondWithError(w, http.StatusInternalServerError, "Unable to store files", service.CodeStore)
			return
		}
		stored = append(stored, f)
	}

	middleware.RespondWithJSON(w, http.StatusCreated, service.OK("Files uploaded successfully", stored))
}

// store writes one file under a collision-proof name
func (h *UploadHandler) store(fh *multipart.FileHeader) (UploadedFile, error) {
	src, err := fh.Open()
	if err != nil {
		return UploadedFile{}, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	name := fmt.Sprintf("%s-%s", uuid.New().String(), sanitizeFilename(fh.Filename))
	path := filepath.Join(h.uploadDir, name)

	if err := os.MkdirAll(h.uploadDir, 0o755); err != nil {
		return UploadedFile{}, fmt.Errorf("failed to create upload directory: %w", err)
	}

	dst, err := os.Create(path)
	if err != nil {
		return UploadedFile{}, fmt.Errorf("failed to create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(path)
		return UploadedFile{}, fmt.Errorf("failed to write file: %w", err)
	}

	return UploadedFile{
		Filename:     name,
		OriginalName: fh.Filename,
		Size:         fh.Size,
		URL:          "/uploads/" + name,
	}, nil
}

// sanitizeFilename strips path components and any character outside a safe
// set
func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	name = unsafeFilenameChars.ReplaceAllString(name, "_")
	if name == "" || name == "." || name == ".." {
		name = "file"
	}
	if len(name) > 100 {
		ext := filepath.Ext(name)
		name = name[:100-len(ext)] + ext
	}
	return strings.ToLower(name)
}
