// Package imagex prepares entry photos for upload and names their blobs.
package imagex

import (
	"bytes"
	"fmt"
	"image"
	"strings"
	"time"

	"github.com/disintegration/imaging"
)

const (
	// JPEGQuality is the compression quality used for uploaded photos.
	JPEGQuality = 70
	// MaxDimension bounds the longer side of an uploaded photo.
	MaxDimension = 2048
)

// EncodeJPEG downsizes img to fit MaxDimension and encodes it as JPEG.
func EncodeJPEG(img image.Image, quality int) ([]byte, error) {
	if img == nil {
		return nil, fmt.Errorf("encode jpeg: nil image")
	}
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, fmt.Errorf("encode jpeg: empty image %dx%d", b.Dx(), b.Dy())
	}
	if b.Dx() > MaxDimension || b.Dy() > MaxDimension {
		img = imaging.Fit(img, MaxDimension, MaxDimension, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(quality)); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}
	return buf.Bytes(), nil
}

// Open decodes an image file, honoring EXIF orientation.
func Open(path string) (image.Image, error) {
	return imaging.Open(path, imaging.AutoOrientation(true))
}

// EntryImageKey names the blob for the index-th photo of an entry:
// entries/{partition}/{entryID}_image_{unix}_{index}.jpg
func EntryImageKey(partition, entryID string, ts time.Time, index int) string {
	return fmt.Sprintf("entries/%s/%s_image_%d_%d.jpg", partition, entryID, ts.Unix(), index)
}

// IsEntryImageKey reports whether key was produced by EntryImageKey.
func IsEntryImageKey(key string) bool {
	return strings.HasPrefix(key, "entries/") && strings.HasSuffix(key, ".jpg") && strings.Contains(key, "_image_")
}
