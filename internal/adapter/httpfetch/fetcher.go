// Package httpfetch downloads one guide candidate with a bounded time
// budget. Every failure mode (transport error, bad status, undersized
// payload, broken compression) comes back as an error so the caller can
// move on to the next candidate; nothing here is fatal.
package httpfetch

import (
	"bytes"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/jgivc/epgfetch/internal/common"
	"github.com/jgivc/epgfetch/internal/config"
)

const gzipSuffix = ".gz"

type Fetcher struct {
	client  *http.Client
	minSize int64
	log     *slog.Logger
}

func New(cfg *config.FetcherConfig, log *slog.Logger) *Fetcher {
	return &Fetcher{
		client:  &http.Client{Timeout: cfg.Timeout},
		minSize: cfg.MinGuideSize,
		log:     log.With(slog.String("item", "Fetcher")),
	}
}

// Fetch issues one GET and returns the guide payload. URLs ending in
// .gz are decompressed before the size check: the acceptance threshold
// describes the guide document, not its transfer encoding. Bodies not
// strictly larger than the threshold are rejected regardless of status,
// small responses are almost always placeholder or error pages.
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("cannot build request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %d", common.ErrBadStatus, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("cannot read body: %w", err)
	}

	if strings.HasSuffix(url, gzipSuffix) {
		if data, err = decompress(data); err != nil {
			return nil, fmt.Errorf("%w: %s", common.ErrDecompress, err)
		}
	}

	if int64(len(data)) <= f.minSize {
		return nil, fmt.Errorf("%w: %d bytes", common.ErrPayloadTooSmall, len(data))
	}

	f.log.Debug("Fetched candidate", slog.String("url", url), slog.Int("size", len(data)))

	return data, nil
}

func decompress(data []byte) ([]byte, error) {
	zr, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer zr.Close()

	return io.ReadAll(zr)
}
