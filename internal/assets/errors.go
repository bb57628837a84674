// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package assets

import (
	"errors"
	"fmt"
	"log/slog"
)

// Lookup failures. Callers map these to "not found" responses.
var (
	ErrTemplateNotFound = errors.New("unknown asset template")
	ErrUserNotFound     = errors.New("user not found")
	ErrAssetNotFound    = errors.New("asset not found")
)

// ErrAssetNotGenerated is returned when downloading a placeholder asset
// that has never been rendered.
var ErrAssetNotGenerated = errors.New("asset has not been generated yet")

// ValidationError reports caller input that was rejected before any side
// effect took place.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

// StorageError reports a failed read or write against the record store or
// the artifact store. Op names the step that failed.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// storageErr logs a failed store step and wraps it as a *StorageError.
func storageErr(op string, err error) error {
	slog.Error("asset storage failed", "op", op, "error", err)
	return &StorageError{Op: op, Err: err}
}
