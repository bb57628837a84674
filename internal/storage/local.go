// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"
)

// LocalStore keeps artifacts under a directory on disk. File paths it
// returns are slash-separated and relative to that directory, the same
// shape S3Store uses for keys.
type LocalStore struct {
	root string
	now  Clock
}

// NewLocal creates a store rooted at dir, creating the directory if needed.
func NewLocal(dir string) (*LocalStore, error) {
	if err := os.MkdirAll(filepath.Join(dir, assetsPrefix), 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	return &LocalStore{root: dir, now: time.Now}, nil
}

// abs maps a relative artifact path onto the filesystem, refusing paths
// that leave the root.
func (l *LocalStore) abs(filePath string) (string, error) {
	clean := path.Clean("/" + filePath)[1:]
	if clean == "" || clean != filePath || !strings.HasPrefix(clean, assetsPrefix+"/") {
		return "", fmt.Errorf("invalid artifact path %q", filePath)
	}
	return filepath.Join(l.root, filepath.FromSlash(clean)), nil
}

// Save writes data to assets/<userID>/<millis>-<fileName> under the root.
func (l *LocalStore) Save(_ context.Context, data []byte, fileName, userID string) (File, error) {
	if err := validName(userID); err != nil {
		return File{}, err
	}
	if err := validName(fileName); err != nil {
		return File{}, err
	}

	dir := filepath.Join(l.root, filepath.FromSlash(userDir(userID)))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return File{}, fmt.Errorf("create user dir: %w", err)
	}

	name := uniqueName(l.now(), fileName)
	if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
		return File{}, fmt.Errorf("write asset %s: %w", name, err)
	}

	slog.Info("asset saved", "user_id", userID, "file_name", name, "backend", "local")
	return File{
		FilePath: path.Join(userDir(userID), name),
		FileName: name,
		FileSize: int64(len(data)),
	}, nil
}

// Read returns the bytes stored at filePath.
func (l *LocalStore) Read(_ context.Context, filePath string) ([]byte, error) {
	p, err := l.abs(filePath)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(p)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("read asset %s: %w", filePath, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("read asset %s: %w", filePath, err)
	}
	return data, nil
}

// Delete removes the file at filePath.
func (l *LocalStore) Delete(_ context.Context, filePath string) error {
	p, err := l.abs(filePath)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("delete asset %s: %w", filePath, ErrNotFound)
		}
		return fmt.Errorf("delete asset %s: %w", filePath, err)
	}
	slog.Info("asset deleted", "file_path", filePath, "backend", "local")
	return nil
}

// List returns every artifact stored for userID. A user with no
// directory yet has no artifacts.
func (l *LocalStore) List(_ context.Context, userID string) ([]File, error) {
	if err := validName(userID); err != nil {
		return nil, err
	}
	dir := filepath.Join(l.root, filepath.FromSlash(userDir(userID)))

	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("list assets: %w", err)
	}

	var files []File
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		info, err := e.Info()
		if err != nil {
			return nil, fmt.Errorf("stat asset %s: %w", e.Name(), err)
		}
		files = append(files, File{
			FilePath:  path.Join(userDir(userID), e.Name()),
			FileName:  e.Name(),
			FileSize:  info.Size(),
			CreatedAt: info.ModTime(),
		})
	}
	return files, nil
}
