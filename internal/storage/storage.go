// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package storage persists rendered documents. Artifacts live in a
// per-user namespace under a name prefixed with the generation time in
// milliseconds, so a regeneration never overwrites an earlier file.
// Two backends exist: S3-compatible object storage and a local directory.
package storage

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"
)

// ErrNotFound is returned by Read and Delete when no artifact exists at
// the given path.
var ErrNotFound = errors.New("artifact not found")

// assetsPrefix is the top-level namespace for generated documents.
const assetsPrefix = "assets"

// File describes one stored artifact.
type File struct {
	FilePath  string    `json:"-"`
	FileName  string    `json:"fileName"`
	FileSize  int64     `json:"fileSize"`
	CreatedAt time.Time `json:"createdAt,omitzero"`
}

// Store is implemented by every artifact backend.
type Store interface {
	Save(ctx context.Context, data []byte, fileName, userID string) (File, error)
	Read(ctx context.Context, filePath string) ([]byte, error)
	Delete(ctx context.Context, filePath string) error
	List(ctx context.Context, userID string) ([]File, error)
}

// Clock returns the current time. Backends take one so tests can pin the
// generated name prefix.
type Clock func() time.Time

// uniqueName prefixes fileName with the generation time in milliseconds.
func uniqueName(now time.Time, fileName string) string {
	return fmt.Sprintf("%d-%s", now.UnixMilli(), fileName)
}

// userDir returns the slash-separated namespace for userID.
func userDir(userID string) string {
	return path.Join(assetsPrefix, userID)
}

// validName rejects names that could escape the user namespace.
func validName(s string) error {
	if s == "" || s == "." || s == ".." || strings.ContainsAny(s, `/\`) {
		return fmt.Errorf("invalid path segment %q", s)
	}
	return nil
}
