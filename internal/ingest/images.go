package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/slidesift/slidesift/internal/model"
	"github.com/slidesift/slidesift/internal/oracle"
)

var imageStems = []string{"slide%d", "slide_%d", "Slide%d", "Slide_%d"}
var imageExts = []string{".png", ".jpg", ".jpeg", ".PNG", ".JPG", ".JPEG"}

// FindSlideImage returns the path of an exported image for the given slide
// number inside dir, or "" when none exists.
func FindSlideImage(dir string, slideNum int) string {
	for _, stem := range imageStems {
		for _, ext := range imageExts {
			candidate := filepath.Join(dir, fmt.Sprintf(stem, slideNum)+ext)
			if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
				return candidate
			}
		}
	}
	return ""
}

// AttachImageText runs OCR over per-slide images in imageDir and stores the
// recognized text on each slide. Slides without a matching image are left
// untouched. A provider without vision support disables OCR for the whole
// run; a failed OCR call skips just that slide.
func AttachImageText(ctx context.Context, client *oracle.Client, imageDir string, slides []model.SlideText, log *slog.Logger) error {
	info, err := os.Stat(imageDir)
	if err != nil {
		return fmt.Errorf("image directory not found: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("image path %s is not a directory", imageDir)
	}

	for i := range slides {
		path := FindSlideImage(imageDir, slides[i].Number)
		if path == "" {
			continue
		}
		text, ok, err := client.ExtractImageText(ctx, path)
		if !ok {
			log.Info("provider has no vision support, skipping image text", "provider", client.Name())
			return nil
		}
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			log.Warn("image text extraction failed", "slide", slides[i].Number, "image", path, "error", err)
			continue
		}
		slides[i].ImageText = CleanText(text)
	}
	return nil
}
