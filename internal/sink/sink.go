// Package sink delivers rendered export files: to a local directory, an SFTP
// drop folder or an S3 bucket.
package sink

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Sink stores one named file and reports where it ended up.
type Sink interface {
	Save(ctx context.Context, name string, r io.Reader) (location string, err error)
}

// Local writes files into Dir, creating it when missing.
type Local struct {
	Dir string
}

func (l Local) Save(ctx context.Context, name string, r io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if name == "" || name != filepath.Base(name) {
		return "", fmt.Errorf("local: invalid file name %q", name)
	}

	dir := l.Dir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("local: mkdir %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+name+".*")
	if err != nil {
		return "", fmt.Errorf("local: create temp: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		return "", fmt.Errorf("local: write %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("local: close %s: %w", name, err)
	}

	dst := filepath.Join(dir, name)
	if err := os.Rename(tmp.Name(), dst); err != nil {
		return "", fmt.Errorf("local: rename %s: %w", name, err)
	}
	return dst, nil
}

// Multi saves the same content to every sink in order. All sinks are
// attempted; the returned location lists the ones that succeeded.
type Multi []Sink

func (m Multi) Save(ctx context.Context, name string, r io.Reader) (string, error) {
	if len(m) == 0 {
		return "", errors.New("sink: no destinations")
	}

	body, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("sink: read %s: %w", name, err)
	}

	var (
		locs []string
		errs []error
	)
	for _, s := range m {
		loc, err := s.Save(ctx, name, bytes.NewReader(body))
		if err != nil {
			errs = append(errs, err)
			continue
		}
		locs = append(locs, loc)
	}
	return strings.Join(locs, ", "), errors.Join(errs...)
}
