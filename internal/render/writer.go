package render

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// WriteError reports an output target the rendered page could not be
// stored at.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write report %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

// Writer persists a rendered page on disk.
type Writer interface {
	Write(ctx context.Context, page []byte) error
}

func NewWriter(pth string) Writer {
	return &writer{pth: pth}
}

type writer struct {
	pth string
}

// Write stores the page at the configured path, creating missing parent
// directories. An existing file is truncated.
func (w *writer) Write(ctx context.Context, page []byte) (err error) {
	// Check if the context is done to return early.
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}

	if dir := filepath.Dir(w.pth); dir != "" && dir != "." {
		if mkErr := mkdir(dir); mkErr != nil {
			return &WriteError{Path: w.pth, Err: mkErr}
		}
	}

	file, openErr := os.OpenFile(w.pth, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if openErr != nil {
		return &WriteError{Path: w.pth, Err: openErr}
	}

	defer func() {
		if syncErr := file.Sync(); syncErr != nil && err == nil {
			err = &WriteError{Path: w.pth, Err: syncErr}
		}

		_ = file.Close()
	}()

	if _, writeErr := file.Write(page); writeErr != nil {
		return &WriteError{Path: w.pth, Err: writeErr}
	}

	return nil
}

// mkdir checks if the provided path exists and creates it if it does not.
func mkdir(pth string) error {
	if _, err := os.Stat(pth); os.IsNotExist(err) {
		if err = os.MkdirAll(pth, os.ModePerm); err != nil {
			return fmt.Errorf("os.MkdirAll: %w", err)
		}
	}

	return nil
}
