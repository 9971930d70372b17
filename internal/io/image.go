package ioutils

import (
	"bytes"
	"context"
	"image"
	"image/jpeg"
	_ "image/png" // PNG decoder registration

	"golang.org/x/image/draw"
)

// ImageService turns downloaded card images into small local thumbnails.
//
// Card scans from the CDN are PNGs with transparent rounded corners. The
// service scales them down and re-encodes them as JPEG on a white
// background so the offline report stays light.
//
// Example usage:
//
//	svc := NewImageService()
//	thumb, err := svc.Thumbnail(ctx, pngData, 245)
type ImageService struct {
	quality int
}

// NewImageService creates a new ImageService with JPEG quality 90.
func NewImageService() *ImageService {
	return &ImageService{quality: 90}
}

// Thumbnail scales an image to fit within maxSize×maxSize and returns it as
// JPEG bytes.
//
// The aspect ratio is preserved. Images already smaller than maxSize keep
// their dimensions and are only re-encoded. The Catmull-Rom algorithm is
// used for high-quality resizing.
func (s *ImageService) Thumbnail(ctx context.Context, data []byte, maxSize int) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	width, height := fitWithin(bounds.Dx(), bounds.Dy(), maxSize)

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(dst, dst.Bounds(), image.White, image.Point{}, draw.Src)
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: s.quality}); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// fitWithin returns the largest dimensions not exceeding maxSize on either
// side that keep the width/height ratio.
func fitWithin(width, height, maxSize int) (int, int) {
	if maxSize <= 0 || (width <= maxSize && height <= maxSize) {
		return width, height
	}
	if width >= height {
		h := height * maxSize / width
		if h < 1 {
			h = 1
		}
		return maxSize, h
	}
	w := width * maxSize / height
	if w < 1 {
		w = 1
	}
	return w, maxSize
}
