package libs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// CloudinaryUploader stores images on Cloudinary.
type CloudinaryUploader struct {
	cld *cloudinary.Cloudinary
	now func() time.Time
}

// NewCloudinaryUploader prefers a CLOUDINARY_URL and falls back to the
// separate cloud name, key and secret.
func NewCloudinaryUploader(cloudURL, cloudName, apiKey, apiSecret string) (*CloudinaryUploader, error) {
	var (
		cld *cloudinary.Cloudinary
		err error
	)
	switch {
	case cloudURL != "":
		cld, err = cloudinary.NewFromURL(cloudURL)
	case cloudName != "" && apiKey != "" && apiSecret != "":
		cld, err = cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	default:
		return nil, errors.New("cloudinary credentials not configured")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cloudinary: %w", err)
	}
	return &CloudinaryUploader{cld: cld, now: time.Now}, nil
}

func (u *CloudinaryUploader) UploadImage(ctx context.Context, file io.Reader, filename, folder string) (string, string, error) {
	file, _, err := sniffImage(file)
	if err != nil {
		return "", "", err
	}

	result, err := u.cld.Upload.Upload(ctx, file, uploader.UploadParams{
		PublicID:       publicID(filename, u.now()),
		Folder:         folder,
		ResourceType:   "image",
		Transformation: "q_auto,f_auto",
	})
	if err != nil {
		return "", "", fmt.Errorf("failed to upload to cloudinary: %w", err)
	}
	if result.Error.Message != "" {
		return "", "", fmt.Errorf("cloudinary rejected upload: %s", result.Error.Message)
	}

	url := result.SecureURL
	if url == "" {
		url = result.URL
	}
	if url == "" {
		return "", "", errors.New("cloudinary returned no url")
	}
	return url, result.PublicID, nil
}

// publicID turns "My Photo.PNG" into "1700000000_my_photo".
func publicID(filename string, at time.Time) string {
	base := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	base = strings.ToLower(strings.Join(strings.Fields(base), "_"))
	if base == "" || base == "." {
		base = "image"
	}
	return fmt.Sprintf("%d_%s", at.Unix(), base)
}
