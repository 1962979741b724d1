// Package image converts between raw image bytes and the data URIs stored on
// notebook entries, and downloads remote images for export.
package image
