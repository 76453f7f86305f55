package httpfetch

import (
	"bytes"
	"compress/gzip"
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jgivc/epgfetch/internal/common"
	"github.com/jgivc/epgfetch/internal/config"
)

const testMinSize = 50000

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func newTestFetcher(timeout time.Duration) *Fetcher {
	return New(&config.FetcherConfig{Timeout: timeout, MinGuideSize: testMinSize}, testLogger())
}

func guidePayload(size int) []byte {
	payload := bytes.Repeat([]byte("x"), size)
	copy(payload, "<tv>")

	return payload
}

func gzipped(t *testing.T, data []byte) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err := zw.Write(data)
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	return buf.Bytes()
}

func TestFetchSizeThreshold(t *testing.T) {
	testCases := []struct {
		name        string
		size        int
		expectError error
	}{
		{name: "exactly at threshold rejected", size: testMinSize, expectError: common.ErrPayloadTooSmall},
		{name: "one byte over threshold accepted", size: testMinSize + 1},
		{name: "empty body rejected", size: 0, expectError: common.ErrPayloadTooSmall},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			payload := guidePayload(tc.size)
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write(payload)
			}))
			defer srv.Close()

			data, err := newTestFetcher(time.Second).Fetch(context.Background(), srv.URL+"/Brazil/brazil1.xml")
			if tc.expectError != nil {
				require.ErrorIs(t, err, tc.expectError)
				assert.Nil(t, data)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, payload, data)
		})
	}
}

func TestFetchRejectsNonSuccessStatus(t *testing.T) {
	// A large body does not rescue a failing status.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write(guidePayload(testMinSize + 100))
	}))
	defer srv.Close()

	_, err := newTestFetcher(time.Second).Fetch(context.Background(), srv.URL)
	require.ErrorIs(t, err, common.ErrBadStatus)
}

func TestFetchTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused

	_, err := newTestFetcher(time.Second).Fetch(context.Background(), srv.URL)
	require.Error(t, err)
}

func TestFetchTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
	}))
	defer srv.Close()

	_, err := newTestFetcher(50*time.Millisecond).Fetch(context.Background(), srv.URL)
	require.Error(t, err)
}

func TestFetchDecompressesGzipPayload(t *testing.T) {
	payload := guidePayload(testMinSize + 1)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, ".gz") {
			w.Write(gzipped(t, payload))

			return
		}

		http.NotFound(w, r)
	}))
	defer srv.Close()

	data, err := newTestFetcher(time.Second).Fetch(context.Background(), srv.URL+"/Brazil/brazil.xml.gz")
	require.NoError(t, err)
	assert.Equal(t, payload, data)
}

func TestFetchCorruptGzipRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(guidePayload(testMinSize + 1)) // not gzip at all
	}))
	defer srv.Close()

	_, err := newTestFetcher(time.Second).Fetch(context.Background(), srv.URL+"/Brazil/brazil.xml.gz")
	require.ErrorIs(t, err, common.ErrDecompress)
}

func TestFetchGzipThresholdAppliesToDecompressedBytes(t *testing.T) {
	// Compressed transfer size is tiny, decompressed guide is large.
	payload := guidePayload(testMinSize + 1)
	compressed := gzipped(t, payload)
	require.Less(t, len(compressed), testMinSize)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(compressed)
	}))
	defer srv.Close()

	data, err := newTestFetcher(time.Second).Fetch(context.Background(), srv.URL+"/guide.xml.gz")
	require.NoError(t, err)
	assert.Len(t, data, testMinSize+1)
}
