package dataset

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"orgvet/pkg/sentinel"
)

// fetch downloads url enforcing the configured byte ceiling. The ceiling is
// checked mid-stream, so an unbounded or maliciously large response is
// abandoned as soon as it crosses the limit rather than buffered whole.
func (s *Store) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", sentinel.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %s returned %d", sentinel.ErrUnavailable, url, resp.StatusCode)
	}
	if resp.ContentLength > s.cfg.DownloadCeiling {
		return nil, fmt.Errorf("%w: declared size %d exceeds ceiling %d",
			sentinel.ErrIntegrity, resp.ContentLength, s.cfg.DownloadCeiling)
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, s.cfg.DownloadCeiling+1))
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", sentinel.ErrUnavailable, err)
	}
	if int64(len(raw)) > s.cfg.DownloadCeiling {
		return nil, fmt.Errorf("%w: response exceeds ceiling %d bytes",
			sentinel.ErrIntegrity, s.cfg.DownloadCeiling)
	}
	return raw, nil
}

// extractZip pulls the single data file out of an IRS archive. The declared
// uncompressed size is checked before extraction and the actual extracted
// byte count is measured against the same ceiling during extraction:
// archive headers are attacker-controllable, so the declaration alone
// cannot be trusted ("zip bomb" guard).
func extractZip(raw []byte, ceiling int64) ([]byte, error) {
	zr, err := zip.NewReader(bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		return nil, fmt.Errorf("%w: open archive: %v", sentinel.ErrIntegrity, err)
	}

	var file *zip.File
	for _, f := range zr.File {
		if f.FileInfo().IsDir() {
			continue
		}
		file = f
		break
	}
	if file == nil {
		return nil, fmt.Errorf("%w: archive contains no files", sentinel.ErrIntegrity)
	}

	if declared := int64(file.UncompressedSize64); declared > ceiling {
		return nil, fmt.Errorf("%w: declared uncompressed size %d exceeds ceiling %d",
			sentinel.ErrIntegrity, declared, ceiling)
	}

	rc, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", sentinel.ErrIntegrity, file.Name, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(io.LimitReader(rc, ceiling+1))
	if err != nil {
		return nil, fmt.Errorf("%w: extract %s: %v", sentinel.ErrIntegrity, file.Name, err)
	}
	if int64(len(data)) > ceiling {
		return nil, fmt.Errorf("%w: extracted size exceeds ceiling %d bytes",
			sentinel.ErrIntegrity, ceiling)
	}
	return data, nil
}
