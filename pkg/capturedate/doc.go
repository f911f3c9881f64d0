// Package capturedate determines the capture date of an image file.
//
// EXIF capture-time fields are consulted in priority order
// (DateTimeOriginal, DateTimeDigitized, DateTime); the filesystem
// modification time is used only as an opt-in fallback.
package capturedate
