package validation

import (
	"errors"
	"mime/multipart"
)

// Upload limits. Unlike field validation, upload checks are fail-fast: the
// first violated constraint is returned immediately and a multi-file batch
// is rejected as a whole.
const (
	MaxFileSize   = 5 << 20 // 5 MB per file
	MaxBatchFiles = 10
)

var (
	ErrNoFile       = errors.New("No file uploaded")
	ErrNotAnImage   = errors.New("Only image files are allowed (jpeg, jpg, png, gif, webp)")
	ErrFileTooLarge = errors.New("File size must not exceed 5 MB")
	ErrTooManyFiles = errors.New("Cannot upload more than 10 files at once")
)

var allowedImageTypes = map[string]struct{}{
	"image/jpeg": {},
	"image/jpg":  {},
	"image/png":  {},
	"image/gif":  {},
	"image/webp": {},
}

// ValidateImage checks a single uploaded file: it must be present, carry an
// allowed image MIME type, and fit the per-file size ceiling.
func ValidateImage(fh *multipart.FileHeader) error {
	if fh == nil {
		return ErrNoFile
	}
	if _, ok := allowedImageTypes[fh.Header.Get("Content-Type")]; !ok {
		return ErrNotAnImage
	}
	if fh.Size > MaxFileSize {
		return ErrFileTooLarge
	}
	return nil
}

// ValidateImageBatch checks a multi-file upload as an all-or-nothing unit.
// The batch size limit is checked before any per-file constraint.
func ValidateImageBatch(fhs []*multipart.FileHeader) error {
	if len(fhs) == 0 {
		return ErrNoFile
	}
	if len(fhs) > MaxBatchFiles {
		return ErrTooManyFiles
	}
	for _, fh := range fhs {
		if err := ValidateImage(fh); err != nil {
			return err
		}
	}
	return nil
}
