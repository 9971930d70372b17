// Package ioutils provides file system and image processing utilities.
//
// This package contains functions for:
//   - Atomic file writes for the dataset and the report
//   - Filename sanitization for thumbnail names
//   - Directory creation
//   - Thumbnail generation for card images
//
// # File Operations
//
//	// Replace a file without ever leaving it half-written
//	err := ioutils.WriteFileAtomic("portfolio_data.json", data)
//
//	// Ensure directory exists
//	err := ioutils.EnsureDir("thumbnails")
//
// # Filename Sanitization
//
//	safe := ioutils.SanitizeFileName("Keldeo GG07/GG70") // "Keldeo GG07_GG70"
//
// # Image Processing
//
//	svc := ioutils.NewImageService()
//	thumb, _ := svc.Thumbnail(ctx, pngData, 245)
package ioutils
