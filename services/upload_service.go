package services

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"

	"news-portal/models"
)

// ErrUnsupportedImage is returned by uploaders when the file content is
// not one of the accepted image formats.
var ErrUnsupportedImage = errors.New("unsupported image content")

var allowedImageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

type UploadService struct {
	uploader ImageUploader
	maxSize  int64
	folder   string
}

// NewUploadService accepts a nil uploader; uploads are then reported
// as unavailable.
func NewUploadService(uploader ImageUploader, maxSize int64) *UploadService {
	return &UploadService{uploader: uploader, maxSize: maxSize, folder: "news-portal"}
}

func (s *UploadService) Enabled() bool {
	return s.uploader != nil
}

// ValidateImage checks extension and size before anything is read.
func (s *UploadService) ValidateImage(header *multipart.FileHeader) error {
	if header == nil {
		return models.ValidationError("image is required")
	}
	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedImageExts[ext] {
		return models.ValidationError("Invalid file type. Only jpg, jpeg, png, gif, webp allowed")
	}
	if header.Size > s.maxSize {
		return models.ValidationError(fmt.Sprintf("File too large (max %dMB)", s.maxSize/(1024*1024)))
	}
	return nil
}

func (s *UploadService) UploadImage(ctx context.Context, header *multipart.FileHeader, kind string) (*models.UploadResult, error) {
	if !s.Enabled() {
		return nil, models.UnavailableError("Image uploads are not configured")
	}
	if err := s.ValidateImage(header); err != nil {
		return nil, err
	}

	file, err := header.Open()
	if err != nil {
		return nil, models.ValidationError("failed to read image")
	}
	defer file.Close()

	folder := s.folder
	if kind = strings.Trim(strings.ToLower(kind), "/. "); kind == "avatars" || kind == "covers" {
		folder = s.folder + "/" + kind
	}

	url, publicID, err := s.uploader.UploadImage(ctx, file, header.Filename, folder)
	if errors.Is(err, ErrUnsupportedImage) {
		return nil, models.ValidationError("File content is not a supported image")
	}
	if err != nil {
		return nil, models.UpstreamError("failed to upload image", err)
	}
	return &models.UploadResult{URL: url, PublicID: publicID}, nil
}
