package image

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

// DownloadOptions configures image download behavior
type DownloadOptions struct {
	MaxSizeBytes int64         // Maximum file size to download (0 = no limit)
	Timeout      time.Duration // Per-request timeout
}

// DefaultDownloadOptions returns sensible defaults for image downloads
func DefaultDownloadOptions() *DownloadOptions {
	return &DownloadOptions{
		MaxSizeBytes: 10 * 1024 * 1024, // 10MB
		Timeout:      30 * time.Second,
	}
}

// Downloader resolves entry images, inline or remote, into bytes
type Downloader struct {
	client  *http.Client
	options *DownloadOptions
}

// NewDownloader creates a new image downloader
func NewDownloader(client *http.Client, options *DownloadOptions) *Downloader {
	if options == nil {
		options = DefaultDownloadOptions()
	}
	if client == nil {
		client = &http.Client{Timeout: options.Timeout}
	}
	return &Downloader{
		client:  client,
		options: options,
	}
}

// Fetch returns the image referenced by src, which is either a data URI or an http(s) URL
func (d *Downloader) Fetch(ctx context.Context, src string) (*Image, error) {
	if IsDataURI(src) {
		return ParseDataURI(src)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to download image: status %d", resp.StatusCode)
	}

	var reader io.Reader = resp.Body
	if d.options.MaxSizeBytes > 0 {
		// Read one byte past the limit to detect oversized images
		reader = io.LimitReader(resp.Body, d.options.MaxSizeBytes+1)
	}

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}
	if d.options.MaxSizeBytes > 0 && int64(len(data)) > d.options.MaxSizeBytes {
		return nil, fmt.Errorf("image exceeds maximum size of %d bytes", d.options.MaxSizeBytes)
	}

	mimeType := resp.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = http.DetectContentType(data)
	}

	return &Image{MIMEType: mimeType, Data: data}, nil
}

// DownloadImage fetches src and writes it to outputPath
func (d *Downloader) DownloadImage(ctx context.Context, src, outputPath string) error {
	img, err := d.Fetch(ctx, src)
	if err != nil {
		return err
	}

	// Ensure directory exists
	dir := filepath.Dir(outputPath)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	if err := os.WriteFile(outputPath, img.Data, 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}
