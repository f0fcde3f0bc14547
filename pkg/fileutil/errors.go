package fileutil

import (
	"fmt"

	"github.com/rohmanhakim/weburl/pkg/failure"
)

type FileErrorCause string

const (
	ErrCauseNotFound    FileErrorCause = "file not found"
	ErrCauseIsDirectory FileErrorCause = "path is a directory"
	ErrCauseReadFailure FileErrorCause = "read failure"
)

type FileError struct {
	Path      string
	Message   string
	Retryable bool
	Cause     FileErrorCause
	Err       error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("file error: %s: %s", e.Cause, e.Path)
}

func (e *FileError) Severity() failure.Severity {
	if e.Retryable {
		return failure.SeverityRecoverable
	}
	return failure.SeverityFatal
}

func (e *FileError) Unwrap() error {
	return e.Err
}
