package libs

import (
	"bytes"
	"fmt"
	"io"
	"net/http"

	"news-portal/services"
)

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// sniffImage checks the leading bytes of file against the allowed image
// types. The returned reader still yields the whole file.
func sniffImage(file io.Reader) (io.Reader, string, error) {
	head := make([]byte, 512)
	n, err := io.ReadFull(file, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return nil, "", fmt.Errorf("read image header: %w", err)
	}
	head = head[:n]

	contentType := http.DetectContentType(head)
	if !allowedImageTypes[contentType] {
		return nil, contentType, fmt.Errorf("%w: detected %s", services.ErrUnsupportedImage, contentType)
	}
	return io.MultiReader(bytes.NewReader(head), file), contentType, nil
}
