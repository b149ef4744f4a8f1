// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package util provides small helpers shared by the store and the API.
package util

import (
	"database/sql"
	"strconv"
)

// NullID returns a valid sql.NullInt64 holding id.
func NullID(id int64) sql.NullInt64 {
	return sql.NullInt64{Int64: id, Valid: true}
}

// ParseID parses a positive decimal id. It reports false for empty input,
// non-numeric input and values <= 0.
func ParseID(s string) (int64, bool) {
	if s == "" {
		return 0, false
	}
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
