// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package service implements market content resolution and content block
// synchronization on top of the store.
package service

import (
	"database/sql"
	"errors"
	"fmt"
)

// Service errors
var (
	ErrNotFound         = errors.New("not found")
	ErrInvalidEdit      = errors.New("invalid edit")
	ErrInvalidSelection = errors.New("invalid selection")
	ErrInvalidOwner     = errors.New("invalid owner")
)

// notFound maps sql.ErrNoRows to ErrNotFound with entity context and wraps
// any other error.
func notFound(err error, entity string, id int64) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s %d: %w", entity, id, ErrNotFound)
	}
	return fmt.Errorf("loading %s %d: %w", entity, id, err)
}
