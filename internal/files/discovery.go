package files

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/samber/lo"
)

// FileInfo represents information about a discovered dataset
type FileInfo struct {
	Path    string
	Name    string
	Size    int64
	ModTime time.Time
}

// Discovery finds dataset files by extension
type Discovery struct {
	extensions []string
	logger     *slog.Logger
}

// NewDiscovery creates a discovery that accepts the given extensions
// (".csv", ".xlsx"). Matching is case-insensitive.
func NewDiscovery(extensions []string, logger *slog.Logger) *Discovery {
	if logger == nil {
		logger = slog.Default()
	}
	return &Discovery{
		extensions: lo.Map(extensions, func(ext string, _ int) string { return strings.ToLower(ext) }),
		logger:     logger.With(slog.String("component", "file_discovery")),
	}
}

// IsDataset reports whether name carries an accepted extension
func (d *Discovery) IsDataset(name string) bool {
	return lo.Contains(d.extensions, strings.ToLower(filepath.Ext(name)))
}

// FindDatasets lists dataset files directly inside dir, sorted by name
func (d *Discovery) FindDatasets(dir string) ([]FileInfo, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	var files []FileInfo
	for _, entry := range entries {
		if entry.IsDir() || !d.IsDataset(entry.Name()) {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			d.logger.Warn("Skipping unreadable file",
				slog.String("name", entry.Name()),
				slog.String("error", err.Error()))
			continue
		}

		files = append(files, FileInfo{
			Path:    filepath.Join(dir, entry.Name()),
			Name:    entry.Name(),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].Name < files[j].Name
	})

	return files, nil
}

// FindFilesByPattern finds dataset files matching a glob pattern
func (d *Discovery) FindFilesByPattern(pattern string) ([]FileInfo, error) {
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid pattern %s: %w", pattern, err)
	}

	var files []FileInfo
	for _, match := range matches {
		info, err := os.Stat(match)
		if err != nil || info.IsDir() || !d.IsDataset(match) {
			continue
		}

		files = append(files, FileInfo{
			Path:    match,
			Name:    filepath.Base(match),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}

	return files, nil
}

// Expand resolves command line arguments into dataset paths. Directories
// are listed, glob patterns expanded, and anything else passes through
// unchanged so later validation can report it. Duplicates are removed
// keeping the first occurrence.
func (d *Discovery) Expand(args []string) ([]string, error) {
	var paths []string

	for _, arg := range args {
		if info, err := os.Stat(arg); err == nil && info.IsDir() {
			files, err := d.FindDatasets(arg)
			if err != nil {
				return nil, err
			}
			if len(files) == 0 {
				d.logger.Warn("No datasets found in directory", slog.String("directory", arg))
			}
			paths = append(paths, lo.Map(files, func(f FileInfo, _ int) string { return f.Path })...)
			continue
		}

		if strings.ContainsAny(arg, "*?[") {
			files, err := d.FindFilesByPattern(arg)
			if err != nil {
				return nil, err
			}
			if len(files) == 0 {
				return nil, fmt.Errorf("no datasets match %s", arg)
			}
			paths = append(paths, lo.Map(files, func(f FileInfo, _ int) string { return f.Path })...)
			continue
		}

		paths = append(paths, arg)
	}

	return lo.Uniq(paths), nil
}
