package fileutil

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/rohmanhakim/weburl/pkg/failure"
)

// GetFileExtension extracts the file extension from a path, or empty string if none
func GetFileExtension(path string) string {
	ext := filepath.Ext(path)
	if ext == "" {
		return ""
	}
	// Remove the leading dot
	return strings.TrimPrefix(ext, ".")
}

// ReadFile reads a regular file. A missing file and a directory are reported
// with their own causes so callers can tell them apart from I/O failures.
func ReadFile(path string) ([]byte, failure.ClassifiedError) {
	info, err := os.Stat(path)
	if err != nil {
		cause := ErrCauseReadFailure
		if errors.Is(err, fs.ErrNotExist) {
			cause = ErrCauseNotFound
		}
		return nil, &FileError{
			Path:    path,
			Message: fmt.Sprintf("%v", err),
			Cause:   cause,
			Err:     err,
		}
	}
	if info.IsDir() {
		return nil, &FileError{
			Path:  path,
			Cause: ErrCauseIsDirectory,
		}
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, &FileError{
			Path:      path,
			Message:   fmt.Sprintf("%v", err),
			Retryable: true,
			Cause:     ErrCauseReadFailure,
			Err:       err,
		}
	}
	return content, nil
}
