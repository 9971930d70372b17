package ioutils

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeFileName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Pikachu SWSH143", "Pikachu SWSH143"},
		{"Keldeo GG07/GG70", "Keldeo GG07_GG70"},
		{"file:with:colons", "file_with_colons"},
		{"file<with>brackets", "file_with_brackets"},
		{"trailing dots...", "trailing dots"},
		{"multiple   spaces", "multiple spaces"},
		{"trailing spaces   ", "trailing spaces"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeFileName(tt.input))
		})
	}
}

func TestWriteFileAtomic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "data.json")

	require.NoError(t, WriteFileAtomic(path, []byte(`[1]`)))
	require.NoError(t, WriteFileAtomic(path, []byte(`[1,2]`)))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, `[1,2]`, string(data))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")
	assert.True(t, FileExists(path))
	assert.False(t, FileExists(filepath.Dir(path)))
}

func TestFitWithin(t *testing.T) {
	tests := []struct {
		name         string
		w, h, max    int
		wantW, wantH int
	}{
		{"portrait card", 734, 1024, 245, 175, 245},
		{"landscape", 1000, 500, 200, 200, 100},
		{"already small", 100, 140, 245, 100, 140},
		{"no limit", 734, 1024, 0, 734, 1024},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h := fitWithin(tt.w, tt.h, tt.max)
			assert.Equal(t, tt.wantW, w)
			assert.Equal(t, tt.wantH, h)
		})
	}
}

func TestImageService_Thumbnail(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 60, 84))
	for y := 0; y < 84; y++ {
		for x := 0; x < 60; x++ {
			src.Set(x, y, color.NRGBA{R: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, src))

	thumb, err := NewImageService().Thumbnail(context.Background(), buf.Bytes(), 42)
	require.NoError(t, err)

	img, err := jpeg.Decode(bytes.NewReader(thumb))
	require.NoError(t, err)
	assert.Equal(t, 30, img.Bounds().Dx())
	assert.Equal(t, 42, img.Bounds().Dy())
}

func TestImageService_ThumbnailRejectsGarbage(t *testing.T) {
	_, err := NewImageService().Thumbnail(context.Background(), []byte("not an image"), 42)
	assert.Error(t, err)
}
