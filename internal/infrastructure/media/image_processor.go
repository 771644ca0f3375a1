// Package media provides image processing for design backgrounds.
package media

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/InkVite/inkvite-go/pkg/config"
	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
)

var dataURLPattern = regexp.MustCompile(`^data:image/(png|jpeg|jpg|webp);base64,`)

// ImageProcessor handles background image uploads for designs.
type ImageProcessor struct {
	basePath string
}

// NewImageProcessor creates a new ImageProcessor instance.
func NewImageProcessor(basePath string) *ImageProcessor {
	return &ImageProcessor{
		basePath: basePath,
	}
}

// ProcessBackgroundImage decodes a base64 data URL, downscales it to the
// configured maximum width, and stores it as WebP alongside a thumbnail.
// Returns the background and thumbnail URL paths.
func (p *ImageProcessor) ProcessBackgroundImage(data, designID string) (string, string, error) {
	if data == "" {
		return "", "", fmt.Errorf("empty base64 data")
	}
	if !dataURLPattern.MatchString(data) {
		return "", "", fmt.Errorf("unsupported image format")
	}

	b64Data := dataURLPattern.ReplaceAllString(data, "")
	decoded, err := base64.StdEncoding.DecodeString(b64Data)
	if err != nil {
		return "", "", fmt.Errorf("failed to decode base64: %w", err)
	}

	img, err := imaging.Decode(bytes.NewReader(decoded))
	if err != nil {
		return "", "", fmt.Errorf("failed to decode image: %w", err)
	}

	backgroundsDir := filepath.Join(p.basePath, "backgrounds")
	thumbsDir := filepath.Join(p.basePath, "thumbs")
	for _, dir := range []string{backgroundsDir, thumbsDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", "", fmt.Errorf("failed to create directory: %w", err)
		}
	}

	timestamp := time.Now().UnixMilli()
	basename := fmt.Sprintf("%s-%d", designID, timestamp)

	// Downscale oversized uploads; never upscale.
	if img.Bounds().Dx() > config.MaxBackgroundWidth {
		img = imaging.Resize(img, config.MaxBackgroundWidth, 0, imaging.Lanczos)
	}

	backgroundPath := filepath.Join(backgroundsDir, basename+".webp")
	if err := webp.Save(backgroundPath, img, &webp.Options{Quality: 85}); err != nil {
		return "", "", fmt.Errorf("failed to save background image: %w", err)
	}

	thumbnail := imaging.Resize(img, config.ThumbnailWidth, 0, imaging.Lanczos)
	thumbnailPath := filepath.Join(thumbsDir, basename+".webp")
	if err := webp.Save(thumbnailPath, thumbnail, &webp.Options{Quality: 80}); err != nil {
		os.Remove(backgroundPath)
		return "", "", fmt.Errorf("failed to save thumbnail: %w", err)
	}

	backgroundURL := toMediaURL("backgrounds", basename+".webp")
	thumbnailURL := toMediaURL("thumbs", basename+".webp")
	return backgroundURL, thumbnailURL, nil
}

// RemoveBackgroundImage deletes the stored background and thumbnail for the
// given media URLs. Missing files are not an error.
func (p *ImageProcessor) RemoveBackgroundImage(urls ...string) error {
	for _, url := range urls {
		if url == "" {
			continue
		}
		relative := strings.TrimPrefix(url, "/media/")
		path := filepath.Join(p.basePath, filepath.FromSlash(relative))
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove media file: %w", err)
		}
	}
	return nil
}

func toMediaURL(subdir, filename string) string {
	url := filepath.Join("/media", subdir, filename)
	return strings.ReplaceAll(url, "\\", "/")
}
