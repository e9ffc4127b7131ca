package validation

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// DefaultMaxUploadBytes is the largest dataset accepted by default (10 MiB)
const DefaultMaxUploadBytes int64 = 10 << 20

var (
	ErrUnsupportedExtension = errors.New("unsupported file extension")
	ErrFileTooLarge         = errors.New("file too large")
	ErrFileNotFound         = errors.New("file not found")
)

// InputFormat identifies how an accepted dataset must be read
type InputFormat string

const (
	InputCSV      InputFormat = "csv"
	InputWorkbook InputFormat = "xlsx"
)

// UploadRules constrains datasets before they reach the parser
type UploadRules struct {
	AllowedExtensions []string
	MaxBytes          int64
}

// DefaultUploadRules accepts .csv and .xlsx files up to 10 MiB
func DefaultUploadRules() UploadRules {
	return UploadRules{
		AllowedExtensions: []string{".csv", ".xlsx"},
		MaxBytes:          DefaultMaxUploadBytes,
	}
}

// FileValidator checks dataset names, sizes and paths
type FileValidator struct {
	rules  UploadRules
	logger *slog.Logger
}

// NewFileValidator creates a new file validator
func NewFileValidator(rules UploadRules, logger *slog.Logger) *FileValidator {
	if logger == nil {
		logger = slog.Default()
	}
	if rules.MaxBytes <= 0 {
		rules.MaxBytes = DefaultMaxUploadBytes
	}
	if len(rules.AllowedExtensions) == 0 {
		rules.AllowedExtensions = DefaultUploadRules().AllowedExtensions
	}
	return &FileValidator{
		rules:  rules,
		logger: logger.With(slog.String("component", "file_validator")),
	}
}

// Rules returns the rules the validator enforces
func (v *FileValidator) Rules() UploadRules {
	return v.rules
}

// ValidateUpload checks a dataset's file name and byte size and reports
// which reader it needs
func (v *FileValidator) ValidateUpload(name string, size int64) (InputFormat, error) {
	ext := strings.ToLower(filepath.Ext(name))

	allowed := false
	for _, a := range v.rules.AllowedExtensions {
		if strings.EqualFold(a, ext) {
			allowed = true
			break
		}
	}
	if !allowed {
		v.logger.Warn("Rejected dataset extension",
			slog.String("file", name),
			slog.String("extension", ext))
		return "", fmt.Errorf("%w: %q (allowed: %s)", ErrUnsupportedExtension, ext,
			strings.Join(v.rules.AllowedExtensions, ", "))
	}

	if size > v.rules.MaxBytes {
		v.logger.Warn("Rejected oversized dataset",
			slog.String("file", name),
			slog.Int64("size", size),
			slog.Int64("max_size", v.rules.MaxBytes))
		return "", fmt.Errorf("%w: %d bytes exceeds limit of %d", ErrFileTooLarge, size, v.rules.MaxBytes)
	}

	if ext == ".xlsx" {
		return InputWorkbook, nil
	}
	return InputCSV, nil
}

// ValidateFile checks that path is a readable regular file that passes
// the upload rules
func (v *FileValidator) ValidateFile(path string) (InputFormat, error) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		v.logger.Error("File does not exist",
			slog.String("file", path))
		return "", fmt.Errorf("%w: %s", ErrFileNotFound, path)
	}
	if err != nil {
		v.logger.Error("Failed to stat file",
			slog.String("file", path),
			slog.String("error", err.Error()))
		return "", fmt.Errorf("failed to stat file %s: %w", path, err)
	}
	if info.IsDir() {
		v.logger.Error("Path is a directory, not a file",
			slog.String("path", path))
		return "", fmt.Errorf("%s is a directory, not a file", path)
	}

	format, err := v.ValidateUpload(path, info.Size())
	if err != nil {
		return "", err
	}

	file, err := os.Open(path)
	if err != nil {
		v.logger.Error("File is not readable",
			slog.String("file", path),
			slog.String("error", err.Error()))
		return "", fmt.Errorf("file %s is not readable: %w", path, err)
	}
	file.Close()

	v.logger.Debug("File validated",
		slog.String("file", path),
		slog.Int64("size", info.Size()))
	return format, nil
}

// ValidateOutputDirectory ensures output directory exists or can be created
func (v *FileValidator) ValidateOutputDirectory(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		v.logger.Error("Failed to create output directory",
			slog.String("directory", dir),
			slog.String("error", err.Error()))
		return fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}

	testFile := filepath.Join(dir, ".write_test")
	file, err := os.Create(testFile)
	if err != nil {
		v.logger.Error("Output directory is not writable",
			slog.String("directory", dir),
			slog.String("error", err.Error()))
		return fmt.Errorf("output directory %s is not writable: %w", dir, err)
	}
	file.Close()
	os.Remove(testFile)

	v.logger.Debug("Output directory validated",
		slog.String("directory", dir))
	return nil
}
