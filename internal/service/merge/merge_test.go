package merge

import (
	"compress/gzip"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jgivc/epgfetch/internal/common"
	"github.com/jgivc/epgfetch/internal/config"
)

func testService(fs afero.Fs) *Service {
	cfg := &config.MergerConfig{
		OutputDir:      "/epg_db",
		GuideFileName:  "guide.xml",
		MergedFileName: "merged.xml.gz",
	}
	log := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))

	return NewServiceWithFS(fs, cfg, log)
}

func writeGuide(t *testing.T, fs afero.Fs, slug, content string) {
	t.Helper()

	dir := filepath.Join("/epg_db", slug)
	require.NoError(t, fs.MkdirAll(dir, os.ModeDir))
	require.NoError(t, afero.WriteFile(fs, filepath.Join(dir, "guide.xml"), []byte(content), os.ModeAppend))
}

func gunzip(t *testing.T, fs afero.Fs, path string) string {
	t.Helper()

	f, err := fs.Open(path)
	require.NoError(t, err)
	defer f.Close()

	zr, err := gzip.NewReader(f)
	require.NoError(t, err)
	defer zr.Close()

	data, err := io.ReadAll(zr)
	require.NoError(t, err)

	return string(data)
}

func TestMergeConcatenatesInSortedOrder(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeGuide(t, fs, "Usa", "<tv>usa</tv>")
	writeGuide(t, fs, "Brazil", "<tv>brazil</tv>")
	writeGuide(t, fs, "France", "<tv>france</tv>")

	// A country dir without a guide file is skipped.
	require.NoError(t, fs.MkdirAll("/epg_db/Spain", os.ModeDir))

	path, err := testService(fs).Merge(context.Background())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/epg_db", "merged.xml.gz"), path)

	assert.Equal(t, "<tv>brazil</tv><tv>france</tv><tv>usa</tv>", gunzip(t, fs, path))
}

func TestMergeNoGuides(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/epg_db", os.ModeDir))

	_, err := testService(fs).Merge(context.Background())
	require.ErrorIs(t, err, common.ErrNoGuidesFoundError)
}

func TestMergeOverwritesPriorOutput(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeGuide(t, fs, "Brazil", "<tv>v1</tv>")

	svc := testService(fs)

	path, err := svc.Merge(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "<tv>v1</tv>", gunzip(t, fs, path))

	writeGuide(t, fs, "Brazil", "<tv>v2</tv>")
	path, err = svc.Merge(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "<tv>v2</tv>", gunzip(t, fs, path))

	// No temp file left behind.
	exists, err := afero.Exists(fs, path+".tmp")
	require.NoError(t, err)
	assert.False(t, exists)
}
