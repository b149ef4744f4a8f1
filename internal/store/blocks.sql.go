// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"time"

	"github.com/olegiv/corpsite/internal/model"
)

const blockColumns = `id, owner_type, owner_id, language, group_key, kind, title, content, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBlock(row rowScanner) (model.ContentBlock, error) {
	var (
		b         model.ContentBlock
		ownerType string
		kind      string
		created   timestamp
		updated   timestamp
	)
	err := row.Scan(&b.ID, &ownerType, &b.Owner.ID, &b.Language, &b.GroupKey, &kind,
		&b.Title, &b.Content, &created, &updated)
	b.Owner.Type = model.OwnerType(ownerType)
	b.Kind = model.BlockKind(kind)
	b.CreatedAt = created.Time
	b.UpdatedAt = updated.Time
	return b, err
}

func (q *Queries) queryBlocks(ctx context.Context, query string, args ...any) ([]model.ContentBlock, error) {
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var blocks []model.ContentBlock
	for rows.Next() {
		b, err := scanBlock(rows)
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, b)
	}
	return blocks, rows.Err()
}

const getContentBlock = `SELECT ` + blockColumns + ` FROM content_blocks WHERE id = ?`

func (q *Queries) GetContentBlock(ctx context.Context, id int64) (model.ContentBlock, error) {
	return scanBlock(q.db.QueryRowContext(ctx, getContentBlock, id))
}

const listBlocksByGroup = `SELECT ` + blockColumns + `
FROM content_blocks
WHERE owner_type = ? AND owner_id = ? AND group_key = ?
ORDER BY id`

// ListBlocksByGroup returns all language variants of one block group.
func (q *Queries) ListBlocksByGroup(ctx context.Context, owner model.Owner, groupKey int64) ([]model.ContentBlock, error) {
	return q.queryBlocks(ctx, listBlocksByGroup, string(owner.Type), owner.ID, groupKey)
}

const listBlocksByOwnerLanguage = `SELECT ` + blockColumns + `
FROM content_blocks
WHERE owner_type = ? AND owner_id = ? AND language = ?
ORDER BY group_key, id`

// ListBlocksByOwnerLanguage returns an owner's blocks in one language ordered by group key.
func (q *Queries) ListBlocksByOwnerLanguage(ctx context.Context, owner model.Owner, language string) ([]model.ContentBlock, error) {
	return q.queryBlocks(ctx, listBlocksByOwnerLanguage, string(owner.Type), owner.ID, language)
}

const listBlocksByOwner = `SELECT ` + blockColumns + `
FROM content_blocks
WHERE owner_type = ? AND owner_id = ?
ORDER BY group_key, id`

// ListBlocksByOwner returns all of an owner's blocks ordered by group key.
func (q *Queries) ListBlocksByOwner(ctx context.Context, owner model.Owner) ([]model.ContentBlock, error) {
	return q.queryBlocks(ctx, listBlocksByOwner, string(owner.Type), owner.ID)
}

const listAllBlocks = `SELECT ` + blockColumns + ` FROM content_blocks ORDER BY id`

func (q *Queries) ListAllBlocks(ctx context.Context) ([]model.ContentBlock, error) {
	return q.queryBlocks(ctx, listAllBlocks)
}

const createContentBlock = `
INSERT INTO content_blocks (owner_type, owner_id, language, group_key, kind, title, content, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
RETURNING ` + blockColumns

// CreateContentBlock inserts a block and returns the stored row.
func (q *Queries) CreateContentBlock(ctx context.Context, b model.ContentBlock) (model.ContentBlock, error) {
	now := time.Now()
	return scanBlock(q.db.QueryRowContext(ctx, createContentBlock,
		string(b.Owner.Type), b.Owner.ID, b.Language, b.GroupKey, string(b.Kind), b.Title, b.Content, now, now,
	))
}

const updateContentBlock = `
UPDATE content_blocks
SET kind = ?, title = ?, content = ?, updated_at = ?
WHERE id = ?
RETURNING ` + blockColumns

// UpdateContentBlock rewrites kind, title and content of an existing block in place.
func (q *Queries) UpdateContentBlock(ctx context.Context, b model.ContentBlock) (model.ContentBlock, error) {
	return scanBlock(q.db.QueryRowContext(ctx, updateContentBlock,
		string(b.Kind), b.Title, b.Content, time.Now(), b.ID,
	))
}

const updateContentBlockPayload = `
UPDATE content_blocks SET content = ? WHERE id = ?
`

// UpdateContentBlockPayload replaces the stored payload without touching updated_at.
func (q *Queries) UpdateContentBlockPayload(ctx context.Context, id int64, content string) error {
	_, err := q.db.ExecContext(ctx, updateContentBlockPayload, content, id)
	return err
}

const deleteContentBlock = `DELETE FROM content_blocks WHERE id = ?`

func (q *Queries) DeleteContentBlock(ctx context.Context, id int64) (int64, error) {
	res, err := q.db.ExecContext(ctx, deleteContentBlock, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

const deleteBlockGroup = `
DELETE FROM content_blocks WHERE owner_type = ? AND owner_id = ? AND group_key = ?
`

// DeleteBlockGroup removes every language variant of a group.
func (q *Queries) DeleteBlockGroup(ctx context.Context, owner model.Owner, groupKey int64) (int64, error) {
	res, err := q.db.ExecContext(ctx, deleteBlockGroup, string(owner.Type), owner.ID, groupKey)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

const countBlocksByOwner = `
SELECT COUNT(*) FROM content_blocks WHERE owner_type = ? AND owner_id = ?
`

func (q *Queries) CountBlocksByOwner(ctx context.Context, owner model.Owner) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, countBlocksByOwner, string(owner.Type), owner.ID).Scan(&n)
	return n, err
}

const maxGroupKey = `
SELECT COALESCE(MAX(group_key), 0) FROM content_blocks WHERE owner_type = ? AND owner_id = ?
`

// MaxGroupKey returns the highest group key used by an owner, or 0.
func (q *Queries) MaxGroupKey(ctx context.Context, owner model.Owner) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, maxGroupKey, string(owner.Type), owner.ID).Scan(&n)
	return n, err
}
