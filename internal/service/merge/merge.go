// Package merge concatenates all persisted guide files into a single
// gzipped stream. No XML-aware merging is attempted, consumers of the
// merged file handle the repeated document roots.
package merge

import (
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/afero"

	"github.com/jgivc/epgfetch/internal/common"
	"github.com/jgivc/epgfetch/internal/config"
)

const filePerm = 0644

type Service struct {
	fs  afero.Fs
	cfg *config.MergerConfig
	log *slog.Logger
}

func NewService(cfg *config.MergerConfig, log *slog.Logger) *Service {
	return NewServiceWithFS(afero.NewOsFs(), cfg, log)
}

func NewServiceWithFS(fs afero.Fs, cfg *config.MergerConfig, log *slog.Logger) *Service {
	return &Service{
		fs:  fs,
		cfg: cfg,
		log: log.With(slog.String("item", "MergeService")),
	}
}

// Merge writes the gzipped concatenation of every guide file under the
// output root, in sorted country order, via a temp file renamed into
// place. Returns the merged file path.
func (s *Service) Merge(ctx context.Context) (string, error) {
	paths, err := s.guidePaths()
	if err != nil {
		return "", err
	}

	if len(paths) == 0 {
		return "", common.ErrNoGuidesFoundError
	}

	outPath := filepath.Join(s.cfg.OutputDir, s.cfg.MergedFileName)
	tmpPath := outPath + ".tmp"

	if err := s.writeMerged(ctx, tmpPath, paths); err != nil {
		s.fs.Remove(tmpPath)

		return "", err
	}

	if err := s.fs.Rename(tmpPath, outPath); err != nil {
		return "", fmt.Errorf("cannot rename merged file: %w", err)
	}

	s.log.Info("Merged guides", slog.Int("count", len(paths)), slog.String("path", outPath))

	return outPath, nil
}

func (s *Service) guidePaths() ([]string, error) {
	dirs, err := afero.ReadDir(s.fs, s.cfg.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("cannot read output dir: %w", err)
	}

	var paths []string
	for _, dir := range dirs {
		if !dir.IsDir() {
			continue
		}

		path := filepath.Join(s.cfg.OutputDir, dir.Name(), s.cfg.GuideFileName)
		if exists, _ := afero.Exists(s.fs, path); exists {
			paths = append(paths, path)
		}
	}

	sort.Strings(paths)

	return paths, nil
}

func (s *Service) writeMerged(ctx context.Context, tmpPath string, paths []string) error {
	out, err := s.fs.OpenFile(tmpPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, filePerm)
	if err != nil {
		return fmt.Errorf("cannot create merged file: %w", err)
	}
	defer out.Close()

	zw := gzip.NewWriter(out)

	for _, path := range paths {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err := s.appendFile(zw, path); err != nil {
			return err
		}
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("cannot finish compression: %w", err)
	}

	return nil
}

func (s *Service) appendFile(w io.Writer, path string) error {
	in, err := s.fs.Open(path)
	if err != nil {
		return fmt.Errorf("cannot open guide file %s: %w", path, err)
	}
	defer in.Close()

	if _, err := io.Copy(w, in); err != nil {
		return fmt.Errorf("cannot append guide file %s: %w", path, err)
	}

	return nil
}
